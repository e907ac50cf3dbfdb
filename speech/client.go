package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ErrEmptyAudio signals the synthesis service returned no audio payload.
var ErrEmptyAudio = errors.New("speech: empty audio payload")

// Client talks to the speech-to-text and text-to-speech services over HTTP.
type Client struct {
	httpClient    *http.Client
	transcribeURL string
	synthesizeURL string
	apiKey        string
}

// NewClient builds a speech client for the given service endpoints.
func NewClient(transcribeURL, synthesizeURL, apiKey string) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: 60 * time.Second},
		transcribeURL: transcribeURL,
		synthesizeURL: synthesizeURL,
		apiKey:        apiKey,
	}
}

// Transcribe submits an audio payload as multipart form data and returns the
// recognized text. Non-2xx responses surface the raw error body.
func (c *Client) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("speech: build multipart: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("speech: write audio part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("speech: close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.transcribeURL, &body)
	if err != nil {
		return "", fmt.Errorf("speech: build transcribe request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("speech: transcribe request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("speech: transcribe failed: %s: %s", resp.Status, string(errBody))
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("speech: decode transcription: %w", err)
	}
	return parsed.Text, nil
}

// Synthesize converts text to an audio payload. Callers treat failures here
// as non-fatal and fall back to a text-only reply.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("speech: marshal synthesis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.synthesizeURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("speech: build synthesize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech: synthesize request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("speech: synthesize failed: %s: %s", resp.Status, string(errBody))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("speech: read audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, ErrEmptyAudio
	}
	return audio, nil
}
