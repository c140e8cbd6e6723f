package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	dErrors "bulletin/pkg/domain-errors"
)

// maxNameLength bounds the display name; longer input is rejected, not cut.
const maxNameLength = 256

// forbiddenNameRunes are rejected to keep names safe to store and render.
const forbiddenNameRunes = `/()"<>\{}`

// SubscriberName is a validated display name.
type SubscriberName struct {
	value string
}

// ParseSubscriberName constructs a SubscriberName from external input. The
// value is trimmed before validation.
//
// Errors: returns CodeValidation when the trimmed input is empty, longer than
// 256 characters, or contains control characters or any of / ( ) " < > \ { }.
func ParseSubscriberName(raw string) (SubscriberName, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return SubscriberName{}, dErrors.New(dErrors.CodeValidation, "name must not be empty")
	}
	if utf8.RuneCountInString(trimmed) > maxNameLength {
		return SubscriberName{}, dErrors.New(dErrors.CodeValidation, "name must not exceed 256 characters")
	}
	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return SubscriberName{}, dErrors.New(dErrors.CodeValidation, "name must not contain control characters")
		}
		if strings.ContainsRune(forbiddenNameRunes, r) {
			return SubscriberName{}, dErrors.New(dErrors.CodeValidation, "name contains a forbidden character")
		}
	}
	return SubscriberName{value: trimmed}, nil
}

// String returns the trimmed display name.
func (n SubscriberName) String() string {
	return n.value
}
