// Package config defines the configuration structure shared by the yrweather
// binaries. Configuration is loaded once at startup and is immutable
// thereafter.
//
// Values are resolved via a priority chain:
//
//	OS Environment (Highest) -> Dotenv File -> Struct Defaults (Lowest)
//
// Any missing required value or invalid format fails startup immediately.
package config

import "time"

// DefaultBaseURL is the root of the MET Norway weather API.
const DefaultBaseURL = "https://api.met.no/weatherapi/"

// Config is the top-level configuration struct.
// Sub-components receive only the specific config subsets they require.
type Config struct {
	// System Metadata
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// Domain Configurations
	Server ServerConfig
	MetAPI MetAPIConfig
	Cache  CacheConfig

	// Build Metadata (Injected via ldflags, not Env)
	Build BuildInfo
}

// ServerConfig holds the HTTP façade settings.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s" validate:"gt=0"`

	// CORSAllowedOrigins lists browser origins allowed to call the API.
	// "*" allows any origin.
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// MetAPIConfig holds the api.met.no client settings.
type MetAPIConfig struct {
	// UserAgent identifies the application to MET Norway, as their terms of
	// service require (e.g. "myapp/1.0 contact@example.com").
	UserAgent string        `envconfig:"YR_USER_AGENT" validate:"required"`
	BaseURL   string        `envconfig:"YR_BASE_URL" default:"https://api.met.no/weatherapi/" validate:"required,url"`
	Timeout   time.Duration `envconfig:"YR_HTTP_TIMEOUT" default:"30s" validate:"gt=0"`
}

// CacheConfig controls the on-disk HTTP response cache.
type CacheConfig struct {
	Enabled bool   `envconfig:"YR_CACHE_ENABLED" default:"true"`
	Path    string `envconfig:"YR_CACHE_PATH" default:"yr_cache.sqlite" validate:"required_if=Enabled true"`
}

// BuildInfo holds build-time metadata injected via ldflags.
// These values are NOT populated from environment variables.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// ConfigErrorType categorizes configuration loading failures to aid debugging.
type ConfigErrorType string

const (
	// ErrValidation indicates the configuration failed struct validation rules.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
	// ErrParsing indicates a failure when parsing environment variable values
	// into their target types.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
	// ErrDotenv indicates an explicitly named .env file could not be read.
	ErrDotenv ConfigErrorType = "DOTENV_FAILED"
)
