package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"inquiryflow/outbox"
)

// Client talks to the messaging gateway: authenticated media downloads for
// inbound voice notes, and outbound voice-reply dispatch.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient builds a gateway client rooted at baseURL.
func NewClient(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

// DownloadMedia fetches the binary audio payload behind a media URL using the
// gateway credentials.
func (c *Client) DownloadMedia(ctx context.Context, mediaURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, fmt.Errorf("whatsapp: build media request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whatsapp: download media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("whatsapp: failed to download audio: %d %s", resp.StatusCode, resp.Status)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("whatsapp: read media body: %w", err)
	}
	return audio, nil
}

// SendVoiceReply asks the gateway to deliver a processed reply back to the
// inquirer's conversation.
func (c *Client) SendVoiceReply(ctx context.Context, voiceMessageID, audioPath string) error {
	payload, err := json.Marshal(map[string]string{
		"voiceMessageId": voiceMessageID,
		"audioPath":      audioPath,
	})
	if err != nil {
		return fmt.Errorf("whatsapp: marshal reply: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/voice-replies", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("whatsapp: build reply request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: send reply: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whatsapp: reply rejected: %s: %s", resp.Status, string(errBody))
	}
	return nil
}

// Dispatch implements outbox.Dispatcher for voice-reply messages.
func (c *Client) Dispatch(ctx context.Context, msg outbox.Message) error {
	if msg.Topic != outbox.TopicVoiceReply {
		return fmt.Errorf("whatsapp: unknown outbox topic %q", msg.Topic)
	}

	var payload struct {
		VoiceMessageID string `json:"voice_message_id"`
		AudioPath      string `json:"audio_path"`
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("whatsapp: decode reply payload: %w", err)
	}
	if payload.VoiceMessageID == "" {
		return fmt.Errorf("whatsapp: reply payload missing voice message id")
	}

	return c.SendVoiceReply(ctx, payload.VoiceMessageID, payload.AudioPath)
}
