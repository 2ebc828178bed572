package i18n

var ptBRCatalog = &Catalog{
	locale: "pt-BR",
	messages: map[Code]string{
		codeUnknown: "ocorreu um erro inesperado",

		codeWordTooShort:      "a palavra deve ter pelo menos 1 caractere",
		codeWordTooLong:       "a palavra deve ter no máximo 42 caracteres",
		codeWordContainsSpace: "a palavra não pode conter espaços",

		codePaymentInsufficient: "pagamento insuficiente: taxa base {{.Base}} mais {{.PerChar}} por caractere além de {{.Threshold}} caracteres",
		codePaymentInvalid:      "o valor do pagamento não é um decimal válido",

		codeRequestInvalid: "o corpo da requisição não é um JSON válido",

		codeStoryNotFound: "a história {{.Index}} não existe",

		codeTreasuryUnauthorized: "somente o administrador do livro-razão pode acessar a tesouraria",
		codeContributorRequired:  "a identidade do contribuidor é obrigatória",
		codeGrantInvalid:         "a credencial do contribuidor é inválida",
		codeGrantExpired:         "a credencial do contribuidor está expirada",

		codeLedgerNotInitialized: "o livro-razão não foi inicializado",
		codeLedgerAlreadyInit:    "o livro-razão já foi inicializado",

		codeNotFound: "registro não encontrado",
	},
}
