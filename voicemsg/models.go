package voicemsg

import "time"

// Status tracks one inbound audio message's transcription lifecycle.
// completed and failed are terminal; the pipeline never transitions a record
// back to pending. Re-processing is a fresh external trigger.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Record mirrors the voice_messages table.
// ResponseText and ResponseAudioPath are only ever set after
// TranscriptionStatus reaches completed; on pipeline failure the record is
// marked failed and the response fields stay unset.
type Record struct {
	ID                  string
	AgentID             *string
	MediaURL            string
	Transcription       *string
	TranscriptionStatus Status
	ResponseText        *string
	ResponseAudioPath   *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
