package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Repository performs outbox reads and writes inside caller-provided
// transactions, so enqueues commit atomically with the business write that
// produced them.
type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

// Enqueue inserts a pending message inside the active transaction.
func (r *Repository) Enqueue(ctx context.Context, tx pgx.Tx, topic string, payload map[string]any) error {
	if topic == "" {
		return fmt.Errorf("outbox: empty topic")
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("outbox: marshal payload: %w", err)
	}

	const insertSQL = `
		INSERT INTO outbox (topic, payload)
		VALUES ($1, $2)
	`

	if _, err := tx.Exec(ctx, insertSQL, topic, payloadBytes); err != nil {
		return fmt.Errorf("outbox: enqueue: %w", err)
	}
	return nil
}

// ClaimPending locks up to limit pending messages for delivery. SKIP LOCKED
// lets concurrent relay instances drain the table without contending on the
// same rows.
func (r *Repository) ClaimPending(ctx context.Context, tx pgx.Tx, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 10
	}

	const query = `
		SELECT id, topic, payload, status::text, attempts, created_at, sent_at
		FROM outbox
		WHERE status = 'pending'
		ORDER BY created_at ASC
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`

	rows, err := tx.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("outbox: claim pending: %w", err)
	}
	defer rows.Close()

	messages := make([]Message, 0, limit)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Topic, &m.Payload, &m.Status, &m.Attempts, &m.CreatedAt, &m.SentAt); err != nil {
			return nil, fmt.Errorf("outbox: scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("outbox: iterate messages: %w", err)
	}
	return messages, nil
}

// MarkSent records a successful delivery.
func (r *Repository) MarkSent(ctx context.Context, tx pgx.Tx, id string) error {
	const query = `
		UPDATE outbox
		SET status = 'sent', sent_at = now()
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("outbox: mark sent: %w", err)
	}
	return nil
}

// MarkAttemptFailed bumps the attempt counter and parks the message as failed
// once maxAttempts is reached; until then it stays pending for the next drain.
func (r *Repository) MarkAttemptFailed(ctx context.Context, tx pgx.Tx, id string, maxAttempts int) error {
	const query = `
		UPDATE outbox
		SET attempts = attempts + 1,
		    status = CASE WHEN attempts + 1 >= $2 THEN 'failed'::outbox_status ELSE 'pending'::outbox_status END
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, query, id, maxAttempts); err != nil {
		return fmt.Errorf("outbox: mark attempt failed: %w", err)
	}
	return nil
}
