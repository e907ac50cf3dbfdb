package voicemsg

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"inquiryflow/test/infra"
)

func TestRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pgC, dsn, err := infra.StartPostgres16(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	defer pgC.Terminate(context.Background())

	pool, teardown, err := infra.ApplyMigrations(ctx, dsn, true)
	if err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	defer pool.Close()
	defer func() {
		if err := teardown(context.Background()); err != nil {
			t.Logf("teardown warning: %v", err)
		}
	}()

	repo := NewRepository(pool)

	rec, err := repo.Create(ctx, "", "https://media.example/abc", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.TranscriptionStatus != StatusPending {
		t.Fatalf("expected pending status, got %s", rec.TranscriptionStatus)
	}
	if rec.ResponseText != nil || rec.ResponseAudioPath != nil {
		t.Fatalf("response fields must start unset")
	}

	if err := repo.SaveTranscription(ctx, rec.ID, "a flat in yaba for rent"); err != nil {
		t.Fatalf("save transcription: %v", err)
	}

	got, err := repo.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.TranscriptionStatus != StatusCompleted {
		t.Fatalf("expected completed after transcription, got %s", got.TranscriptionStatus)
	}
	if got.Transcription == nil || *got.Transcription != "a flat in yaba for rent" {
		t.Fatalf("transcription not persisted: %v", got.Transcription)
	}

	if err := repo.SaveResponseText(ctx, rec.ID, "Great news! ..."); err != nil {
		t.Fatalf("save response text: %v", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := repo.SaveResponseAudio(ctx, tx, rec.ID, "data/audio/x.mp3"); err != nil {
		t.Fatalf("save response audio: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	got, err = repo.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.ResponseAudioPath == nil || *got.ResponseAudioPath != "data/audio/x.mp3" {
		t.Fatalf("audio path not persisted: %v", got.ResponseAudioPath)
	}

	// A failing rerun parks the record in the terminal failed state.
	if err := repo.MarkFailed(ctx, rec.ID); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	got, err = repo.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.TranscriptionStatus != StatusFailed {
		t.Fatalf("expected failed status, got %s", got.TranscriptionStatus)
	}

	if _, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.MarkFailed(ctx, "00000000-0000-0000-0000-000000000000"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing update, got %v", err)
	}
}
