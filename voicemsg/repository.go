package voicemsg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound signals the requested voice message does not exist.
var ErrNotFound = errors.New("voicemsg: not found")

// Repository provides access to voice-message records. The inquiry pipeline
// is the sole writer of the fields it owns (transcription, status, response
// text, response audio path).
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wires a pgxpool-backed repository implementation.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const recordColumns = `id, agent_id, media_url, transcription, transcription_status::text,
	response_text, response_audio_path, created_at, updated_at`

// GetByID fetches a voice message by its primary key.
func (r *Repository) GetByID(ctx context.Context, id string) (Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM voice_messages WHERE id = $1`, recordColumns)

	rec, err := scanRecord(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("voicemsg: get by id: %w", err)
	}
	return rec, nil
}

// SaveTranscription persists the transcription and moves the record to
// completed.
func (r *Repository) SaveTranscription(ctx context.Context, id, transcription string) error {
	const query = `
		UPDATE voice_messages
		SET transcription = $2,
		    transcription_status = 'completed',
		    updated_at = now()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, transcription)
	if err != nil {
		return fmt.Errorf("voicemsg: save transcription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkFailed sets the terminal failed status. The response fields are left
// untouched.
func (r *Repository) MarkFailed(ctx context.Context, id string) error {
	const query = `
		UPDATE voice_messages
		SET transcription_status = 'failed',
		    updated_at = now()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("voicemsg: mark failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveResponseText persists the formatted reply text.
func (r *Repository) SaveResponseText(ctx context.Context, id, text string) error {
	const query = `
		UPDATE voice_messages
		SET response_text = $2,
		    updated_at = now()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, text)
	if err != nil {
		return fmt.Errorf("voicemsg: save response text: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveResponseAudio persists the synthesized audio path inside the caller's
// transaction so it commits atomically with the dispatch outbox write.
func (r *Repository) SaveResponseAudio(ctx context.Context, tx pgx.Tx, id, path string) error {
	const query = `
		UPDATE voice_messages
		SET response_audio_path = $2,
		    updated_at = now()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, id, path)
	if err != nil {
		return fmt.Errorf("voicemsg: save response audio: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Create inserts a pending record for an inbound message.
func (r *Repository) Create(ctx context.Context, id, mediaURL string, agentID *string) (Record, error) {
	query := fmt.Sprintf(`
		INSERT INTO voice_messages (id, agent_id, media_url)
		VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3)
		RETURNING %s`, recordColumns)

	rec, err := scanRecord(r.pool.QueryRow(ctx, query, id, agentID, mediaURL))
	if err != nil {
		return Record{}, fmt.Errorf("voicemsg: create: %w", err)
	}
	return rec, nil
}

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(
		&rec.ID,
		&rec.AgentID,
		&rec.MediaURL,
		&rec.Transcription,
		&rec.TranscriptionStatus,
		&rec.ResponseText,
		&rec.ResponseAudioPath,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	return rec, err
}
