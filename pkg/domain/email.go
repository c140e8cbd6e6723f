// Package domain holds the validated value objects of the subscription core.
//
// Invariant: the parse functions are the only way to construct these types, so
// a value that exists has passed validation and never needs re-checking.
package domain

import (
	"net/mail"
	"strings"

	dErrors "bulletin/pkg/domain-errors"
)

// SubscriberEmail is a validated email address, safe to use as-is in outbound
// mail headers and persistence.
type SubscriberEmail struct {
	value string
}

// ParseSubscriberEmail constructs a SubscriberEmail from external input.
//
// Errors: returns CodeValidation when the input is empty, has no local/domain
// structure around "@", or fails the address syntax check.
func ParseSubscriberEmail(raw string) (SubscriberEmail, error) {
	if strings.TrimSpace(raw) == "" {
		return SubscriberEmail{}, dErrors.New(dErrors.CodeValidation, "email must not be empty")
	}

	at := strings.IndexByte(raw, '@')
	if at <= 0 || at == len(raw)-1 {
		return SubscriberEmail{}, dErrors.New(dErrors.CodeValidation, "email must have a local part and a domain separated by @")
	}

	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return SubscriberEmail{}, dErrors.New(dErrors.CodeValidation, "email is not a valid address")
	}

	return SubscriberEmail{value: raw}, nil
}

// String returns the address exactly as it was submitted.
func (e SubscriberEmail) String() string {
	return e.value
}
