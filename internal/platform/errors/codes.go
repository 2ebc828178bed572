// Package errors provides structured error handling with i18n support.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Word validation errors
	CodeWordTooShort      Code = "WORD_TOO_SHORT"
	CodeWordTooLong       Code = "WORD_TOO_LONG"
	CodeWordContainsSpace Code = "WORD_CONTAINS_SPACE"

	// Payment errors
	CodePaymentInsufficient Code = "PAYMENT_INSUFFICIENT"
	CodePaymentInvalid      Code = "PAYMENT_INVALID"

	// Request decoding errors
	CodeRequestInvalid Code = "REQUEST_INVALID"

	// Story errors
	CodeStoryNotFound Code = "STORY_NOT_FOUND"

	// Treasury/authorization errors
	CodeTreasuryUnauthorized Code = "TREASURY_UNAUTHORIZED"
	CodeContributorRequired  Code = "CONTRIBUTOR_REQUIRED"
	CodeGrantInvalid         Code = "GRANT_INVALID"
	CodeGrantExpired         Code = "GRANT_EXPIRED"

	// Ledger lifecycle errors
	CodeLedgerNotInitialized     Code = "LEDGER_NOT_INITIALIZED"
	CodeLedgerAlreadyInitialized Code = "LEDGER_ALREADY_INITIALIZED"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - validation failures, bad input
	case CodeWordTooShort,
		CodeWordTooLong,
		CodeWordContainsSpace,
		CodePaymentInvalid,
		CodeRequestInvalid:
		return http.StatusBadRequest

	// Payment required - insufficient attached value
	case CodePaymentInsufficient:
		return http.StatusPaymentRequired

	// Unauthorized - missing or unusable caller identity
	case CodeContributorRequired,
		CodeGrantInvalid,
		CodeGrantExpired:
		return http.StatusUnauthorized

	// Forbidden - caller identity lacks access
	case CodeTreasuryUnauthorized:
		return http.StatusForbidden

	// Not found - resource doesn't exist
	case CodeStoryNotFound,
		CodeNotFound:
		return http.StatusNotFound

	// Conflict - lifecycle state doesn't allow operation
	case CodeLedgerNotInitialized,
		CodeLedgerAlreadyInitialized:
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}
