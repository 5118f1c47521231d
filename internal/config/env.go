package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Settings holds the environment-derived configuration for the analysis
// pipeline.
type Settings struct {
	WhisperServerURL string
	WhisperCppBinary string
	WhisperCppModel  string
	OpenAIKey        string

	DatabasePath string
	ListenAddr   string

	TranscribeTimeout time.Duration
	HistoryCapacity   int
	Development       bool
}

// LoadEnv loads environment variables from a .env file when one exists.
// Missing files are not an error; system-wide environment still applies.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}
	return nil
}

// FromEnv builds Settings from the environment with sane defaults. Call
// LoadEnv first when .env support is wanted.
func FromEnv() (*Settings, error) {
	s := &Settings{
		WhisperServerURL:  getEnvOrDefault("SCAMSHIELD_WHISPER_SERVER_URL", "http://localhost:5000"),
		WhisperCppBinary:  os.Getenv("SCAMSHIELD_WHISPER_CPP_BINARY"),
		WhisperCppModel:   os.Getenv("SCAMSHIELD_WHISPER_CPP_MODEL"),
		OpenAIKey:         strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		DatabasePath:      getEnvOrDefault("SCAMSHIELD_DB_PATH", "data/scamshield.db"),
		ListenAddr:        getEnvOrDefault("SCAMSHIELD_LISTEN_ADDR", ":8080"),
		TranscribeTimeout: 5 * time.Minute,
		HistoryCapacity:   5,
		Development:       os.Getenv("SCAMSHIELD_DEV") == "true",
	}

	if raw := os.Getenv("SCAMSHIELD_TRANSCRIBE_TIMEOUT_SEC"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SCAMSHIELD_TRANSCRIBE_TIMEOUT_SEC: %w", err)
		}
		s.TranscribeTimeout = time.Duration(secs) * time.Second
	}
	if raw := os.Getenv("SCAMSHIELD_HISTORY_CAPACITY"); raw != "" {
		capacity, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SCAMSHIELD_HISTORY_CAPACITY: %w", err)
		}
		s.HistoryCapacity = capacity
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) validate() error {
	if err := ValidateURL(s.WhisperServerURL, "whisper server"); err != nil {
		return err
	}
	if err := ValidateTimeout(s.TranscribeTimeout, "transcription"); err != nil {
		return err
	}
	if s.HistoryCapacity <= 0 {
		return fmt.Errorf("history capacity must be positive")
	}
	if s.OpenAIKey != "" {
		if err := ValidateAPIKey(s.OpenAIKey, "OpenAI"); err != nil {
			return err
		}
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
