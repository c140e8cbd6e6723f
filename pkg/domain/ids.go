package domain

import (
	"github.com/google/uuid"

	dErrors "bulletin/pkg/domain-errors"
)

// SubscriberID identifies a subscriber. Generated once at creation, immutable.
type SubscriberID uuid.UUID

// NewSubscriberID generates a fresh subscriber ID.
func NewSubscriberID() SubscriberID {
	return SubscriberID(uuid.New())
}

// ParseSubscriberID constructs a SubscriberID from its string form.
func ParseSubscriberID(s string) (SubscriberID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return SubscriberID{}, dErrors.New(dErrors.CodeValidation, "subscriber id must be a valid UUID")
	}
	return SubscriberID(parsed), nil
}

func (id SubscriberID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether the ID is unset.
func (id SubscriberID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}
