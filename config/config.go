// Package config loads service configuration from the environment.
// A .env file is honoured in development; real environment variables win.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ServiceConfig identifies the running service instance.
type ServiceConfig struct {
	Name    string
	Version string
	Env     string
	Port    string
}

// LoggingConfig controls the global zerolog level.
type LoggingConfig struct {
	Level string
}

// DatabaseConfig holds the Postgres connection string.
type DatabaseConfig struct {
	URL string
}

// SessionConfig controls server-side session lifetime and the cookie
// the session token travels in.
type SessionConfig struct {
	TTLMinutes   int
	CookieName   string
	CookieSecure bool
}

// UploadConfig controls post image storage.
type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

// OpenAIConfig configures the content-generation collaborator.
// BaseURL is overridable so tests can point at a local server.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// TracingConfig controls the OTLP trace exporter.
type TracingConfig struct {
	Enabled    bool
	Endpoint   string
	SampleRate float64
}

// ProfilingConfig controls Pyroscope continuous profiling.
type ProfilingConfig struct {
	Enabled  bool
	Endpoint string
}

// ShutdownConfig controls graceful-shutdown behaviour.
type ShutdownConfig struct {
	TimeoutSeconds             int
	ReadinessDrainDelaySeconds int
}

// Config is the root configuration object, built once by Load.
type Config struct {
	Service   ServiceConfig
	Logging   LoggingConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Uploads   UploadConfig
	OpenAI    OpenAIConfig
	Tracing   TracingConfig
	Profiling ProfilingConfig
	Shutdown  ShutdownConfig
}

// Load reads configuration from the environment, applying defaults for
// everything that is optional. It never fails; Validate reports what is
// actually missing.
func Load() *Config {
	// Best effort: absence of a .env file is normal outside development.
	_ = godotenv.Load()

	return &Config{
		Service: ServiceConfig{
			Name:    getEnv("SERVICE_NAME", "minicms"),
			Version: getEnv("SERVICE_VERSION", "dev"),
			Env:     getEnv("APP_ENV", "development"),
			Port:    getEnv("PORT", "8080"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Session: SessionConfig{
			TTLMinutes:   getEnvInt("SESSION_TTL_MINUTES", 1440),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "cms_session"),
			CookieSecure: getEnvBool("SESSION_COOKIE_SECURE", false),
		},
		Uploads: UploadConfig{
			Dir:      getEnv("UPLOAD_DIR", "uploads"),
			MaxBytes: int64(getEnvInt("UPLOAD_MAX_BYTES", 2*1024*1024)),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Tracing: TracingConfig{
			Enabled:    getEnvBool("TRACING_ENABLED", false),
			Endpoint:   getEnv("TRACING_ENDPOINT", "localhost:4318"),
			SampleRate: getEnvFloat("TRACING_SAMPLE_RATE", 1.0),
		},
		Profiling: ProfilingConfig{
			Enabled:  getEnvBool("PROFILING_ENABLED", false),
			Endpoint: getEnv("PROFILING_ENDPOINT", "http://localhost:4040"),
		},
		Shutdown: ShutdownConfig{
			TimeoutSeconds:             getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 10),
			ReadinessDrainDelaySeconds: getEnvInt("READINESS_DRAIN_DELAY_SECONDS", 0),
		},
	}
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.Service.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if c.Session.TTLMinutes <= 0 {
		return errors.New("SESSION_TTL_MINUTES must be positive")
	}
	if c.Uploads.MaxBytes <= 0 {
		return errors.New("UPLOAD_MAX_BYTES must be positive")
	}
	return nil
}

// GetShutdownTimeoutDuration returns the HTTP shutdown timeout.
func (c *Config) GetShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.Shutdown.TimeoutSeconds) * time.Second
}

// GetReadinessDrainDelayDuration returns how long /ready should fail
// before the HTTP server begins shutting down.
func (c *Config) GetReadinessDrainDelayDuration() time.Duration {
	return time.Duration(c.Shutdown.ReadinessDrainDelaySeconds) * time.Second
}

// GetSessionTTLDuration returns the server-side session lifetime.
func (c *Config) GetSessionTTLDuration() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
