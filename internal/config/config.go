package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port             string
	GameID           string
	Provider         string
	PollInterval     time.Duration
	CaptureRate      int
	AutosaveInterval time.Duration
	SnapshotMaxAge   time.Duration
	Session          SessionConfig
	Statsfeed        StatsfeedConfig
	Metrics          MetricsConfig
}

// SessionConfig selects and configures the session snapshot backend.
type SessionConfig struct {
	Backend   string // "redis" or "fs"
	Path      string // fs backend root
	RedisAddr string
	RedisDB   int
}

// StatsfeedConfig configures the upstream play-by-play API client.
type StatsfeedConfig struct {
	BaseURL string
	APIKey  string
}

// MetricsConfig configures telemetry export.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:             envOrDefault(envPort, defaultPort),
		GameID:           envOrDefault(envGameID, ""),
		Provider:         envOrDefault(envProvider, defaultProvider),
		PollInterval:     durationEnvOrDefault(envPollInterval, defaultPollInterval),
		CaptureRate:      intEnvOrDefault(envCaptureRate, defaultCaptureRate),
		AutosaveInterval: durationEnvOrDefault(envAutosaveInterval, defaultAutosaveInterval),
		SnapshotMaxAge:   durationEnvOrDefault(envSnapshotMaxAge, defaultSnapshotMaxAge),
		Session: SessionConfig{
			Backend:   envOrDefault(envSessionBackend, defaultSessionBackend),
			Path:      envOrDefault(envSessionPath, defaultSessionPath),
			RedisAddr: envOrDefault(envRedisAddr, defaultRedisAddr),
			RedisDB:   intEnvOrDefault(envRedisDB, 0),
		},
		Statsfeed: StatsfeedConfig{
			BaseURL: envOrDefault(envStatsfeedBaseURL, ""),
			APIKey:  envOrDefault(envStatsfeedAPIKey, ""),
		},
		Metrics: MetricsConfig{
			Enabled:      boolEnvOrDefault(envMetricsEnabled, false),
			Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
			ServiceName:  envOrDefault(envMetricsServiceName, defaultMetricsServiceName),
			OtlpEndpoint: envOrDefault(envMetricsOtlpEndpoint, ""),
			OtlpInsecure: boolEnvOrDefault(envMetricsOtlpInsecure, false),
		},
	}
}
