package outbox

import "time"

// Status is the delivery state of an outbox entry.
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// Message represents a transactional outbox entry awaiting delivery.
type Message struct {
	ID        string
	Topic     string
	Payload   []byte
	Status    Status
	Attempts  int
	CreatedAt time.Time
	SentAt    *time.Time
}

const (
	// TopicVoiceReply is enqueued when a formatted inquiry reply is ready to
	// be delivered back through the messaging gateway.
	TopicVoiceReply = "voice.reply"
)
