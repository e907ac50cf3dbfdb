package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DiskStore persists synthesized reply audio under a base directory. Re-runs
// of the same message write a fresh file instead of overwriting one a reader
// may be streaming.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the base directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage: empty audio directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create audio dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// SaveAudio writes the payload and returns the stored path.
func (s *DiskStore) SaveAudio(_ context.Context, voiceMessageID string, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("storage: empty audio payload")
	}

	name := fmt.Sprintf("%s-%s.mp3", voiceMessageID, uuid.NewString())
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return "", fmt.Errorf("storage: write audio file: %w", err)
	}
	return path, nil
}
