// Package store provides the PostgreSQL and in-memory implementations of the
// subscription service's storage interfaces.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bulletin/internal/subscription/models"
	"bulletin/internal/subscription/service"
	"bulletin/pkg/domain"
	"bulletin/pkg/platform/sentinel"
)

const pgUniqueViolation = "23505"

// Postgres serves the confirmation flow's lookups and updates.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// FindSubscriberIDByToken resolves a confirmation token to its subscriber.
// Returns sentinel.ErrNotFound when no row matches.
func (p *Postgres) FindSubscriberIDByToken(ctx context.Context, token string) (domain.SubscriberID, error) {
	var id uuid.UUID
	err := p.pool.QueryRow(ctx,
		`SELECT subscriber_id FROM subscription_tokens WHERE subscription_token = $1`,
		token,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SubscriberID{}, sentinel.ErrNotFound
		}
		return domain.SubscriberID{}, fmt.Errorf("find subscriber by token: %w", err)
	}
	return domain.SubscriberID(id), nil
}

// ConfirmSubscriber flips the subscriber's status to confirmed. The update is
// unconditional, so re-confirming is a no-op by construction.
func (p *Postgres) ConfirmSubscriber(ctx context.Context, id domain.SubscriberID) error {
	_, err := p.pool.Exec(ctx,
		`UPDATE subscriptions SET status = $1 WHERE id = $2`,
		string(models.StatusConfirmed), uuid.UUID(id),
	)
	if err != nil {
		return fmt.Errorf("confirm subscriber: %w", err)
	}
	return nil
}

const defaultTxTimeout = 5 * time.Second

// PostgresTx runs subscription writes inside one database transaction. The
// connection is exclusively owned by the calling request between begin and
// commit or rollback, then returned to the pool.
type PostgresTx struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresTx(pool *pgxpool.Pool) *PostgresTx {
	return &PostgresTx{pool: pool, timeout: defaultTxTimeout}
}

func (t *PostgresTx) RunInTx(ctx context.Context, fn func(store service.TxStore) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transaction aborted: %w", err)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(&postgresTxStore{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type postgresTxStore struct {
	tx pgx.Tx
}

func (s *postgresTxStore) InsertSubscriber(ctx context.Context, subscriber *models.Subscriber) error {
	_, err := s.tx.Exec(ctx,
		`INSERT INTO subscriptions (id, email, name, subscribed_at, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.UUID(subscriber.ID),
		subscriber.Email.String(),
		subscriber.Name.String(),
		subscriber.SubscribedAt,
		string(subscriber.Status),
	)
	if err != nil {
		// A duplicate email is a client-actionable conflict; any other
		// uniqueness violation stays a plain storage failure.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && strings.Contains(pgErr.ConstraintName, "email") {
			return fmt.Errorf("%w: email already subscribed", sentinel.ErrConflict)
		}
		return err
	}
	return nil
}

func (s *postgresTxStore) InsertToken(ctx context.Context, token string, subscriberID domain.SubscriberID) error {
	_, err := s.tx.Exec(ctx,
		`INSERT INTO subscription_tokens (subscription_token, subscriber_id)
		 VALUES ($1, $2)`,
		token, uuid.UUID(subscriberID),
	)
	return err
}
