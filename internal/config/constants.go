package config

import "time"

const (
	envPort             = "PORT"
	envGameID           = "GAME_ID"
	envProvider         = "PROVIDER"
	envPollInterval     = "POLL_INTERVAL"
	envCaptureRate      = "CAPTURE_RATE"
	envAutosaveInterval = "AUTOSAVE_INTERVAL"
	envSnapshotMaxAge   = "SNAPSHOT_MAX_AGE"
	envSessionBackend   = "SESSION_BACKEND"
	envSessionPath      = "SESSION_PATH"
	envRedisAddr        = "REDIS_ADDR"
	envRedisDB          = "REDIS_DB"

	envStatsfeedBaseURL = "STATSFEED_BASE_URL"
	envStatsfeedAPIKey  = "STATSFEED_API_KEY"

	envMetricsEnabled      = "METRICS_ENABLED"
	envMetricsPort         = "METRICS_PORT"
	envMetricsServiceName  = "METRICS_SERVICE_NAME"
	envMetricsOtlpEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envMetricsOtlpInsecure = "OTEL_EXPORTER_OTLP_INSECURE"
)

const (
	defaultPort             = "8080"
	defaultProvider         = "fixture"
	defaultPollInterval     = 15 * time.Second
	defaultCaptureRate      = 2
	defaultAutosaveInterval = 10 * time.Second
	defaultSnapshotMaxAge   = 4 * time.Hour
	defaultSessionBackend   = "fs"
	defaultSessionPath      = "data/sessions"
	defaultRedisAddr        = "localhost:6379"

	defaultMetricsPort        = "9090"
	defaultMetricsServiceName = "scout-engine"
)
