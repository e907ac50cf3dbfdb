package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the service.
type Config struct {
	DatabaseURL string
	DBMaxConns  int32

	HTTPAddr  string
	JWTSecret string

	WhatsAppBaseURL string
	WhatsAppToken   string

	TranscribeURL string
	SynthesizeURL string
	SpeechAPIKey  string

	AudioDir string

	RelayInterval  time.Duration
	RelayBatchSize int
}

// Load reads configuration from the environment, honoring a local .env file
// when present.
func Load() (Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DBMaxConns:      int32(envInt("DB_MAX_CONNS", 0)),
		HTTPAddr:        envString("HTTP_ADDR", ":8080"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		WhatsAppBaseURL: envString("WHATSAPP_BASE_URL", "https://graph.facebook.com/v19.0"),
		WhatsAppToken:   os.Getenv("WHATSAPP_TOKEN"),
		TranscribeURL:   os.Getenv("SPEECH_TRANSCRIBE_URL"),
		SynthesizeURL:   os.Getenv("SPEECH_SYNTHESIZE_URL"),
		SpeechAPIKey:    os.Getenv("SPEECH_API_KEY"),
		AudioDir:        envString("AUDIO_DIR", "data/audio"),
		RelayInterval:   envDuration("OUTBOX_RELAY_INTERVAL", 2*time.Second),
		RelayBatchSize:  envInt("OUTBOX_RELAY_BATCH", 10),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("config: DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("config: JWT_SECRET is required")
	}

	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
