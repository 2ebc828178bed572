package domain

import (
	"strings"

	apperrors "github.com/Jdubedition/dapp-owaat/internal/platform/errors"
)

const (
	// MinWordLength is the shortest accepted word, in bytes.
	MinWordLength = 1
	// MaxWordLength is the longest accepted word, in bytes.
	MaxWordLength = 42
)

// ValidateWord checks that a contributed word is storable. The checks run in
// a fixed order so the first violated rule determines the reported error:
// minimum length, maximum length, then the space ban. Length is counted in
// raw bytes; characters other than the ASCII space are not restricted.
func ValidateWord(word string) error {
	if len(word) < MinWordLength {
		return apperrors.New(apperrors.CodeWordTooShort, "must be at least 1 character")
	}
	if len(word) > MaxWordLength {
		return apperrors.New(apperrors.CodeWordTooLong, "must be at most 42 characters")
	}
	if strings.Contains(word, " ") {
		return apperrors.New(apperrors.CodeWordContainsSpace, "must not contain spaces")
	}
	return nil
}

// AppendWord joins a word onto existing space-joined text. An empty text
// becomes the word itself with no leading space.
func AppendWord(text, word string) string {
	if text == "" {
		return word
	}
	return text + " " + word
}
