package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Dispatcher delivers one claimed message to its destination.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message) error
}

// TxBeginner abstracts pgxpool.Pool for testability.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store defines the data access required by the relay.
type Store interface {
	ClaimPending(ctx context.Context, tx pgx.Tx, limit int) ([]Message, error)
	MarkSent(ctx context.Context, tx pgx.Tx, id string) error
	MarkAttemptFailed(ctx context.Context, tx pgx.Tx, id string, maxAttempts int) error
}

// Relay polls the outbox and hands pending messages to the dispatcher.
// Delivery failures stay observable in the table instead of being dropped:
// each failed attempt is counted and the message is retried on a later drain
// until maxAttempts is exhausted.
type Relay struct {
	pool        TxBeginner
	repo        Store
	dispatcher  Dispatcher
	logger      *zap.Logger
	interval    time.Duration
	batchSize   int
	workers     int
	maxAttempts int
}

// NewRelay builds a Relay. A nil repo defaults to the pgx-backed Repository.
func NewRelay(pool TxBeginner, repo Store, dispatcher Dispatcher, logger *zap.Logger) *Relay {
	if repo == nil {
		repo = NewRepository()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Relay{
		pool:        pool,
		repo:        repo,
		dispatcher:  dispatcher,
		logger:      logger,
		interval:    2 * time.Second,
		batchSize:   10,
		workers:     4,
		maxAttempts: 5,
	}
}

// WithInterval overrides the polling interval.
func (r *Relay) WithInterval(d time.Duration) *Relay {
	if d > 0 {
		r.interval = d
	}
	return r
}

// WithBatchSize overrides how many messages one drain claims.
func (r *Relay) WithBatchSize(n int) *Relay {
	if n > 0 {
		r.batchSize = n
	}
	return r
}

// Run polls until the context is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			n, err := r.DrainOnce(ctx)
			if err != nil {
				r.logger.Error("outbox: drain", zap.Error(err))
				continue
			}
			if n > 0 {
				r.logger.Info("outbox: drained batch", zap.Int("count", n))
			}
		}
	}
}

// DrainOnce claims one batch, dispatches the messages concurrently, and marks
// each outcome inside the claiming transaction. Returns how many messages
// were claimed.
func (r *Relay) DrainOnce(ctx context.Context) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("outbox: begin drain tx: %w", err)
	}
	defer tx.Rollback(ctx)

	messages, err := r.repo.ClaimPending(ctx, tx, r.batchSize)
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	// Dispatch outside the tx methods: pgx.Tx is not safe for concurrent use,
	// so outcomes are collected first and written back sequentially.
	outcomes := make([]error, len(messages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, msg := range messages {
		g.Go(func() error {
			outcomes[i] = r.dispatcher.Dispatch(gctx, msg)
			return nil
		})
	}
	_ = g.Wait()

	for i, msg := range messages {
		if outcomes[i] != nil {
			r.logger.Warn("outbox: dispatch failed",
				zap.String("id", msg.ID),
				zap.String("topic", msg.Topic),
				zap.Int("attempt", msg.Attempts+1),
				zap.Error(outcomes[i]))
			if err := r.repo.MarkAttemptFailed(ctx, tx, msg.ID, r.maxAttempts); err != nil {
				return 0, err
			}
			continue
		}
		if err := r.repo.MarkSent(ctx, tx, msg.ID); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("outbox: commit drain tx: %w", err)
	}
	return len(messages), nil
}
