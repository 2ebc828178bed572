package errors

import (
	"errors"
	"net/http"

	"github.com/Jdubedition/dapp-owaat/internal/platform/errors/i18n"
)

// DefaultLocale is the default locale for error messages.
const DefaultLocale = "en-US"

// HTTPPayload is the JSON error body returned to HTTP clients.
type HTTPPayload struct {
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// HandleHTTP converts domain errors to an HTTP status and response payload.
// It formats the user-facing message using the i18n catalog for the given
// locale, defaulting to en-US if the locale is empty.
func HandleHTTP(err error, locale string) (int, HTTPPayload) {
	if locale == "" {
		locale = DefaultLocale
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		catalog := i18n.GetCatalog(locale)
		userMsg := catalog.Format(string(appErr.Code), appErr.Metadata)
		return appErr.Code.HTTPStatus(), HTTPPayload{
			Code:     string(appErr.Code),
			Message:  userMsg,
			Metadata: appErr.Metadata,
		}
	}

	// Unknown error - return internal with generic message
	return http.StatusInternalServerError, HTTPPayload{
		Code:    string(CodeUnknown),
		Message: "an unexpected error occurred",
	}
}

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a domain error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// GetMetadata extracts metadata from an error if present.
// Returns nil if the error is not a domain error or has no metadata.
func GetMetadata(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Metadata
	}
	return nil
}
