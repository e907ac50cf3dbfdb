package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"inquiryflow/inquiry"
	"inquiryflow/outbox"
	"inquiryflow/property"
	"inquiryflow/voicemsg"
)

var (
	// ErrMissingMediaURL rejects a request before any side effect happens.
	ErrMissingMediaURL = errors.New("pipeline: missing media url")
	// ErrEmptyAudio signals the media download returned no payload.
	ErrEmptyAudio = errors.New("pipeline: empty audio payload")
	// ErrEmptyTranscription signals speech-to-text produced no text.
	ErrEmptyTranscription = errors.New("pipeline: empty transcription")
)

// MediaStore downloads the binary audio behind an inbound media URL.
type MediaStore interface {
	DownloadMedia(ctx context.Context, mediaURL string) ([]byte, error)
}

// Transcriber converts an audio payload to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// Synthesizer converts reply text to an audio payload. Best-effort: a failure
// degrades the reply to text-only.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// AudioStore persists synthesized audio and returns its path.
type AudioStore interface {
	SaveAudio(ctx context.Context, voiceMessageID string, audio []byte) (string, error)
}

// PropertyLookup resolves criteria to matching approved listings.
type PropertyLookup interface {
	Lookup(ctx context.Context, criteria property.SearchCriteria) ([]property.Record, error)
}

// VoiceMessages is the persistence surface the pipeline owns.
type VoiceMessages interface {
	GetByID(ctx context.Context, id string) (voicemsg.Record, error)
	SaveTranscription(ctx context.Context, id, transcription string) error
	MarkFailed(ctx context.Context, id string) error
	SaveResponseText(ctx context.Context, id, text string) error
	SaveResponseAudio(ctx context.Context, tx pgx.Tx, id, path string) error
}

// OutboxWriter enqueues the reply dispatch inside the active transaction.
type OutboxWriter interface {
	Enqueue(ctx context.Context, tx pgx.Tx, topic string, payload map[string]any) error
}

// TxBeginner abstracts pgxpool.Pool for testability.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Deps enumerates the constructor-injected collaborators.
type Deps struct {
	Pool        TxBeginner
	Messages    VoiceMessages
	Media       MediaStore
	Transcriber Transcriber
	Synthesizer Synthesizer
	Audio       AudioStore
	Lookup      PropertyLookup
	Outbox      OutboxWriter
	Logger      *zap.Logger
}

// Service sequences one voice inquiry from media download to reply dispatch.
type Service struct {
	deps Deps
}

// Result is what the caller of Process sees on success. Delivery of the reply
// is decoupled: the outbox relay dispatches it after Process returns.
type Result struct {
	Transcription string
	ResponseText  string
}

func NewService(deps Deps) *Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Service{deps: deps}
}

// Process runs the full pipeline for one inbound voice message. Any failure
// after side effects began marks the record failed; the record then sits in
// that terminal state until an external retranscribe re-invokes Process from
// scratch. There is no retry loop.
func (s *Service) Process(ctx context.Context, voiceMessageID, mediaURL string) (Result, error) {
	if mediaURL == "" {
		return Result{}, ErrMissingMediaURL
	}

	result, err := s.run(ctx, voiceMessageID, mediaURL)
	if err != nil {
		if voiceMessageID != "" {
			if markErr := s.deps.Messages.MarkFailed(ctx, voiceMessageID); markErr != nil {
				s.deps.Logger.Error("pipeline: mark failed",
					zap.String("voice_message_id", voiceMessageID),
					zap.Error(markErr))
			}
		}
		return Result{}, err
	}
	return result, nil
}

func (s *Service) run(ctx context.Context, voiceMessageID, mediaURL string) (Result, error) {
	audio, err := s.deps.Media.DownloadMedia(ctx, mediaURL)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: download media: %w", err)
	}
	if len(audio) == 0 {
		return Result{}, ErrEmptyAudio
	}

	transcription, err := s.deps.Transcriber.Transcribe(ctx, audio, voiceMessageID+".ogg")
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: transcribe: %w", err)
	}
	if strings.TrimSpace(transcription) == "" {
		return Result{}, ErrEmptyTranscription
	}

	if err := s.deps.Messages.SaveTranscription(ctx, voiceMessageID, transcription); err != nil {
		return Result{}, err
	}

	record, err := s.deps.Messages.GetByID(ctx, voiceMessageID)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: load voice message: %w", err)
	}

	criteria := inquiry.Extract(transcription)

	var responseText string
	results, err := s.deps.Lookup.Lookup(ctx, criteria)
	if err != nil {
		// Query-layer failures become a user-facing apology, never a raw error.
		s.deps.Logger.Warn("pipeline: property lookup",
			zap.String("voice_message_id", voiceMessageID),
			zap.Error(err))
		responseText = inquiry.LookupUnavailable
	} else {
		responseText = inquiry.Format(criteria, results)
	}

	if err := s.deps.Messages.SaveResponseText(ctx, voiceMessageID, responseText); err != nil {
		return Result{}, err
	}

	audioPath := s.synthesizeReply(ctx, voiceMessageID, responseText)

	tx, err := s.deps.Pool.Begin(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: begin dispatch tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.deps.Messages.SaveResponseAudio(ctx, tx, voiceMessageID, audioPath); err != nil {
		return Result{}, err
	}

	payload := map[string]any{
		"voice_message_id": voiceMessageID,
		"audio_path":       audioPath,
	}
	if record.AgentID != nil {
		payload["agent_id"] = *record.AgentID
	}
	if err := s.deps.Outbox.Enqueue(ctx, tx, outbox.TopicVoiceReply, payload); err != nil {
		return Result{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Result{}, fmt.Errorf("pipeline: commit dispatch tx: %w", err)
	}

	return Result{Transcription: transcription, ResponseText: responseText}, nil
}

// synthesizeReply is the one deliberately non-fatal stage: a synthesis or
// storage failure is logged and the reply ships text-only with an empty path.
func (s *Service) synthesizeReply(ctx context.Context, voiceMessageID, text string) string {
	audio, err := s.deps.Synthesizer.Synthesize(ctx, text)
	if err != nil {
		s.deps.Logger.Warn("pipeline: synthesize reply",
			zap.String("voice_message_id", voiceMessageID),
			zap.Error(err))
		return ""
	}

	path, err := s.deps.Audio.SaveAudio(ctx, voiceMessageID, audio)
	if err != nil {
		s.deps.Logger.Warn("pipeline: store reply audio",
			zap.String("voice_message_id", voiceMessageID),
			zap.Error(err))
		return ""
	}
	return path
}
