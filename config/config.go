package config

import (
	"fmt"
	"os"
)

// Config holds all provider credentials and server settings. It is loaded once
// at startup and treated as immutable afterwards; credential values must never
// be logged.
type Config struct {
	OpenAIAPIKey string
	GeminiAPIKey string

	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	PollyVoiceID       string
	PollyOutputFormat  string

	GoogleSpeechAPIKey string

	Port          string
	AudioSpoolDir string
}

// FromEnv builds a Config from environment variables. Required variables that
// are missing produce an error naming the variable; optional ones fall back to
// their defaults.
func FromEnv() (*Config, error) {
	cfg := &Config{
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSRegion:          os.Getenv("AWS_REGION"),
		PollyVoiceID:       os.Getenv("POLLY_VOICE_ID"),
		PollyOutputFormat:  os.Getenv("POLLY_OUTPUT_FORMAT"),
		GoogleSpeechAPIKey: os.Getenv("GOOGLE_SPEECH_API_KEY"),
		Port:               os.Getenv("PORT"),
		AudioSpoolDir:      os.Getenv("AUDIO_SPOOL_DIR"),
	}

	required := []struct {
		name  string
		value string
	}{
		{"OPENAI_API_KEY", cfg.OpenAIAPIKey},
		{"GEMINI_API_KEY", cfg.GeminiAPIKey},
		{"AWS_ACCESS_KEY_ID", cfg.AWSAccessKeyID},
		{"AWS_SECRET_ACCESS_KEY", cfg.AWSSecretAccessKey},
		{"GOOGLE_SPEECH_API_KEY", cfg.GoogleSpeechAPIKey},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, fmt.Errorf("%s must be set", r.name)
		}
	}

	if cfg.AWSRegion == "" {
		cfg.AWSRegion = "us-east-1"
	}
	if cfg.PollyVoiceID == "" {
		cfg.PollyVoiceID = "Joanna"
	}
	if cfg.PollyOutputFormat == "" {
		cfg.PollyOutputFormat = "mp3"
	}
	if cfg.Port == "" {
		cfg.Port = "5000"
	}
	if cfg.AudioSpoolDir == "" {
		cfg.AudioSpoolDir = os.TempDir()
	}

	return cfg, nil
}
