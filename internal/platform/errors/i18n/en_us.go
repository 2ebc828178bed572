package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	codeUnknown              = "UNKNOWN"
	codeWordTooShort         = "WORD_TOO_SHORT"
	codeWordTooLong          = "WORD_TOO_LONG"
	codeWordContainsSpace    = "WORD_CONTAINS_SPACE"
	codePaymentInsufficient  = "PAYMENT_INSUFFICIENT"
	codePaymentInvalid       = "PAYMENT_INVALID"
	codeRequestInvalid       = "REQUEST_INVALID"
	codeStoryNotFound        = "STORY_NOT_FOUND"
	codeTreasuryUnauthorized = "TREASURY_UNAUTHORIZED"
	codeContributorRequired  = "CONTRIBUTOR_REQUIRED"
	codeGrantInvalid         = "GRANT_INVALID"
	codeGrantExpired         = "GRANT_EXPIRED"
	codeLedgerNotInitialized = "LEDGER_NOT_INITIALIZED"
	codeLedgerAlreadyInit    = "LEDGER_ALREADY_INITIALIZED"
	codeNotFound             = "NOT_FOUND"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		codeUnknown: "an unexpected error occurred",

		// Word validation errors. The wording is part of the public contract
		// and must not drift.
		codeWordTooShort:      "must be at least 1 character",
		codeWordTooLong:       "must be at most 42 characters",
		codeWordContainsSpace: "must not contain spaces",

		// Payment errors
		codePaymentInsufficient: "insufficient payment to {{.Action}}: base fee {{.Base}} plus {{.PerChar}} per character beyond {{.Threshold}} characters",
		codePaymentInvalid:      "payment amount is not a valid decimal",

		// Request decoding errors
		codeRequestInvalid: "request body is not valid JSON",

		// Story errors
		codeStoryNotFound: "story {{.Index}} does not exist",

		// Treasury/authorization errors
		codeTreasuryUnauthorized: "only the ledger administrator may access the treasury",
		codeContributorRequired:  "contributor identity is required",
		codeGrantInvalid:         "contributor grant is invalid",
		codeGrantExpired:         "contributor grant is expired",

		// Ledger lifecycle errors
		codeLedgerNotInitialized: "ledger is not initialized",
		codeLedgerAlreadyInit:    "ledger is already initialized",

		codeNotFound: "record not found",
	},
}
