// Package i18n provides localized catalogs for domain error messages.
package i18n

import (
	"strings"
	"text/template"

	"golang.org/x/text/language"
)

// Code mirrors the error code string form used as catalog keys.
type Code = string

// Catalog stores the localized messages for one locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

// Locale returns the catalog's BCP 47 locale tag.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the localized message for a code, applying metadata to
// {{.Key}} placeholders. Unknown codes fall back to a generic message.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	msg, ok := c.messages[code]
	if !ok {
		return c.messages[codeUnknown]
	}
	if len(metadata) == 0 || !strings.Contains(msg, "{{") {
		return msg
	}
	tmpl, err := template.New(code).Parse(msg)
	if err != nil {
		return msg
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, metadata); err != nil {
		return msg
	}
	return sb.String()
}

var catalogs = map[string]*Catalog{
	"en-US": enUSCatalog,
	"pt-BR": ptBRCatalog,
}

var (
	supportedTags = []language.Tag{
		language.AmericanEnglish,
		language.BrazilianPortuguese,
	}
	supportedLocales = []string{"en-US", "pt-BR"}
	matcher          = language.NewMatcher(supportedTags)
)

// GetCatalog returns the catalog for a locale, defaulting to en-US.
func GetCatalog(locale string) *Catalog {
	if catalog, ok := catalogs[locale]; ok {
		return catalog
	}
	return enUSCatalog
}

// MatchLocale resolves an Accept-Language header value to a supported locale.
func MatchLocale(acceptLanguage string) string {
	if strings.TrimSpace(acceptLanguage) == "" {
		return supportedLocales[0]
	}
	_, index := language.MatchStrings(matcher, acceptLanguage)
	return supportedLocales[index]
}
