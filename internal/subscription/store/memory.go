package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"bulletin/internal/subscription/models"
	"bulletin/internal/subscription/service"
	"bulletin/pkg/domain"
	"bulletin/pkg/platform/sentinel"
)

// Memory is an in-memory store for unit tests. It mirrors the sentinel
// behavior of the Postgres implementation, including all-or-nothing commits
// through RunInTx.
type Memory struct {
	mu          sync.Mutex
	subscribers map[domain.SubscriberID]*models.Subscriber
	emails      map[string]domain.SubscriberID
	tokens      map[string]domain.SubscriberID

	// TokenInsertErr, when set, fails the next token insert. Tests use it to
	// exercise rollback of the subscriber/token pair.
	TokenInsertErr error
}

func NewMemory() *Memory {
	return &Memory{
		subscribers: make(map[domain.SubscriberID]*models.Subscriber),
		emails:      make(map[string]domain.SubscriberID),
		tokens:      make(map[string]domain.SubscriberID),
	}
}

func (m *Memory) FindSubscriberIDByToken(_ context.Context, token string) (domain.SubscriberID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.tokens[token]
	if !ok {
		return domain.SubscriberID{}, sentinel.ErrNotFound
	}
	return id, nil
}

func (m *Memory) ConfirmSubscriber(_ context.Context, id domain.SubscriberID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if subscriber, ok := m.subscribers[id]; ok {
		subscriber.Status = models.StatusConfirmed
	}
	return nil
}

// RunInTx stages all writes and merges them only when fn succeeds.
func (m *Memory) RunInTx(_ context.Context, fn func(store service.TxStore) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	staged := &memoryTxStore{parent: m}
	if err := fn(staged); err != nil {
		return err
	}

	for id, subscriber := range staged.subscribers {
		m.subscribers[id] = subscriber
		m.emails[subscriber.Email.String()] = id
	}
	for token, id := range staged.tokens {
		m.tokens[token] = id
	}
	return nil
}

// Subscriber returns a copy of the stored subscriber, for test assertions.
func (m *Memory) Subscriber(id domain.SubscriberID) (models.Subscriber, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	subscriber, ok := m.subscribers[id]
	if !ok {
		return models.Subscriber{}, false
	}
	return *subscriber, true
}

// SubscriberByEmail returns a copy of the stored subscriber, for test assertions.
func (m *Memory) SubscriberByEmail(email string) (models.Subscriber, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.emails[email]
	if !ok {
		return models.Subscriber{}, false
	}
	return *m.subscribers[id], true
}

// Counts returns the number of subscriber and token rows, for test assertions.
func (m *Memory) Counts() (subscribers, tokens int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subscribers), len(m.tokens)
}

// TokensFor returns the tokens referencing the given subscriber.
func (m *Memory) TokensFor(id domain.SubscriberID) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []string
	for token, owner := range m.tokens {
		if owner == id {
			out = append(out, token)
		}
	}
	return out
}

type memoryTxStore struct {
	parent      *Memory
	subscribers map[domain.SubscriberID]*models.Subscriber
	tokens      map[string]domain.SubscriberID
}

func (s *memoryTxStore) InsertSubscriber(_ context.Context, subscriber *models.Subscriber) error {
	if _, exists := s.parent.emails[subscriber.Email.String()]; exists {
		return fmt.Errorf("%w: email already subscribed", sentinel.ErrConflict)
	}
	if s.subscribers == nil {
		s.subscribers = make(map[domain.SubscriberID]*models.Subscriber)
	}
	copied := *subscriber
	s.subscribers[subscriber.ID] = &copied
	return nil
}

func (s *memoryTxStore) InsertToken(_ context.Context, token string, subscriberID domain.SubscriberID) error {
	if s.parent.TokenInsertErr != nil {
		err := s.parent.TokenInsertErr
		s.parent.TokenInsertErr = nil
		return err
	}
	if _, exists := s.parent.tokens[token]; exists {
		return errors.New("duplicate subscription token")
	}
	if s.tokens == nil {
		s.tokens = make(map[string]domain.SubscriberID)
	}
	s.tokens[token] = subscriberID
	return nil
}
