package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIPort  string
	LogLevel string

	OllamaURL            string
	OllamaModel          string
	OllamaTimeoutSeconds int

	NATSURL     string
	NATSSubject string

	MaxUploadBytes int64
	MinTextChars   int

	APIRateLimitRPS   float64
	APIRateLimitBurst int
	APIMaxInFlight    int
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		OllamaURL:            mustEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:          mustEnv("OLLAMA_MODEL", "llama3.1:8b"),
		OllamaTimeoutSeconds: mustEnvInt("OLLAMA_TIMEOUT_SECONDS", 120),

		// An empty NATS_URL disables event publishing entirely.
		NATSURL:     mustEnv("NATS_URL", ""),
		NATSSubject: mustEnv("NATS_SUBJECT", "resumes.parsed"),

		MaxUploadBytes: int64(mustEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
		MinTextChars:   mustEnvInt("MIN_TEXT_CHARS", 50),

		APIRateLimitRPS:   mustEnvFloat("API_RATE_LIMIT_RPS", 10),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 20),
		APIMaxInFlight:    mustEnvInt("API_MAX_IN_FLIGHT", 8),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
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

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
