// Package models holds the subscriber entity and its lifecycle states.
package models

import (
	"time"

	"bulletin/pkg/domain"
)

// Status is the lifecycle state of a subscriber. The transition is monotone:
// pending_confirmation becomes confirmed and never goes back.
type Status string

const (
	StatusPending   Status = "pending_confirmation"
	StatusConfirmed Status = "confirmed"
)

// IsValid checks if the status is one of the supported enum values.
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Subscriber is a person who submitted the subscription form. A Subscriber
// value only exists with validated email and name; id and subscribed_at are
// set at creation and never change.
type Subscriber struct {
	ID           domain.SubscriberID
	Email        domain.SubscriberEmail
	Name         domain.SubscriberName
	SubscribedAt time.Time
	Status       Status
}

// NewPendingSubscriber creates a subscriber in pending state with a fresh id.
func NewPendingSubscriber(email domain.SubscriberEmail, name domain.SubscriberName, now time.Time) *Subscriber {
	return &Subscriber{
		ID:           domain.NewSubscriberID(),
		Email:        email,
		Name:         name,
		SubscribedAt: now,
		Status:       StatusPending,
	}
}
