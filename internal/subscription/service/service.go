// Package service orchestrates the subscription and confirmation flows. It
// owns the mapping from each originating subsystem (validation, storage,
// notification) into the client-facing error taxonomy.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bulletin/internal/platform/metrics"
	"bulletin/internal/subscription/models"
	"bulletin/pkg/domain"
	dErrors "bulletin/pkg/domain-errors"
	"bulletin/pkg/platform/sentinel"
)

// Store provides the non-transactional lookups and updates the confirmation
// flow needs.
type Store interface {
	FindSubscriberIDByToken(ctx context.Context, token string) (domain.SubscriberID, error)
	ConfirmSubscriber(ctx context.Context, id domain.SubscriberID) error
}

// TxStore is the store surface available inside a transaction. The subscriber
// insert and the token insert either both persist or neither does.
type TxStore interface {
	InsertSubscriber(ctx context.Context, subscriber *models.Subscriber) error
	InsertToken(ctx context.Context, token string, subscriberID domain.SubscriberID) error
}

// TxRunner provides the transactional boundary for subscription writes.
// Implementations wrap a database transaction or, in-memory, a coarse lock.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(store TxStore) error) error
}

// Notifier delivers the confirmation email through the provider.
type Notifier interface {
	Send(ctx context.Context, recipient domain.SubscriberEmail, subject, htmlBody, textBody string) error
}

// TokenGenerator produces opaque confirmation tokens.
type TokenGenerator interface {
	Generate() string
}

// Service implements the double-opt-in subscription workflow.
type Service struct {
	store    Store
	tx       TxRunner
	notifier Notifier
	tokens   TokenGenerator
	baseURL  string
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func New(
	store Store,
	tx TxRunner,
	notifier Notifier,
	tokens TokenGenerator,
	baseURL string,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		store:    store,
		tx:       tx,
		notifier: notifier,
		tokens:   tokens,
		baseURL:  baseURL,
		logger:   logger,
		metrics:  m,
	}
}

// Subscribe validates the raw form input, persists a pending subscriber with
// its confirmation token in one transaction, and mails the confirmation link.
//
// The commit and the email dispatch are deliberately not one atomic unit: a
// provider failure leaves the subscriber durably pending and surfaces as
// CodeUnexpected. There is no retry or compensation.
func (s *Service) Subscribe(ctx context.Context, rawEmail, rawName string) error {
	email, err := domain.ParseSubscriberEmail(rawEmail)
	if err != nil {
		return err
	}
	name, err := domain.ParseSubscriberName(rawName)
	if err != nil {
		return err
	}

	subscriber := models.NewPendingSubscriber(email, name, time.Now().UTC())
	confirmationToken := s.tokens.Generate()

	err = s.tx.RunInTx(ctx, func(store TxStore) error {
		if err := store.InsertSubscriber(ctx, subscriber); err != nil {
			return fmt.Errorf("insert subscriber: %w", err)
		}
		if err := store.InsertToken(ctx, confirmationToken, subscriber.ID); err != nil {
			return fmt.Errorf("insert confirmation token: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.Wrap(err, dErrors.CodeConflict, "email is already subscribed")
		}
		return dErrors.Wrap(err, dErrors.CodeDatabase, "persist pending subscription")
	}

	if s.metrics != nil {
		s.metrics.SubscriptionsCreated.Inc()
	}
	s.logger.InfoContext(ctx, "pending subscription stored",
		"subscriber_id", subscriber.ID.String(),
	)

	link := s.baseURL + "/subscriptions/confirm?subscription_token=" + confirmationToken
	if err := s.notifier.Send(ctx, subscriber.Email, welcomeSubject, htmlBody(link), textBody(link)); err != nil {
		if s.metrics != nil {
			s.metrics.ConfirmationEmailsFailed.Inc()
		}
		// The subscriber already exists in pending state; that is accepted.
		return dErrors.Wrap(err, dErrors.CodeUnexpected, "send confirmation email")
	}
	if s.metrics != nil {
		s.metrics.ConfirmationEmailsSent.Inc()
	}

	return nil
}

// Confirm resolves a confirmation token and marks its subscriber confirmed.
// Confirming an already-confirmed subscriber is a harmless no-op.
func (s *Service) Confirm(ctx context.Context, confirmationToken string) error {
	if confirmationToken == "" {
		return dErrors.New(dErrors.CodeValidation, "subscription token is required")
	}

	subscriberID, err := s.store.FindSubscriberIDByToken(ctx, confirmationToken)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeUnauthorized, "no subscriber matches the provided token")
		}
		return dErrors.Wrap(err, dErrors.CodeDatabase, "look up subscription token")
	}

	if err := s.store.ConfirmSubscriber(ctx, subscriberID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeDatabase, "mark subscriber as confirmed")
	}

	if s.metrics != nil {
		s.metrics.SubscriptionsConfirmed.Inc()
	}
	s.logger.InfoContext(ctx, "subscriber confirmed",
		"subscriber_id", subscriberID.String(),
	)
	return nil
}

const welcomeSubject = "Welcome!"

func textBody(link string) string {
	return "Welcome to our newsletter!\nVisit " + link + " to confirm your subscription."
}

func htmlBody(link string) string {
	return "Welcome to our newsletter!<br />Click <a href=\"" + link + "\">here</a> to confirm your subscription."
}
