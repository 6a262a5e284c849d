package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// setMinimalTestEnv sets the only required variable for a valid Config.
// It uses t.Setenv so values are automatically cleaned up after the test.
func setMinimalTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("YR_USER_AGENT", "yrweather-test/1.0 test@example.com")
}

// TestLoadConfigDefaults verifies that LoadConfig fills struct defaults when
// only the User-Agent is provided.
func TestLoadConfigDefaults(t *testing.T) {
	setMinimalTestEnv(t)

	cfg, err := LoadConfig(writeDotenv(t, ""))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Environment != "local" {
		t.Errorf("Environment = %q, want %q", cfg.Environment, "local")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want default %q", cfg.Server.Port, "8080")
	}
	if cfg.Server.RequestTimeout != 30*time.Second {
		t.Errorf("Server.RequestTimeout = %v, want 30s", cfg.Server.RequestTimeout)
	}
	if len(cfg.Server.CORSAllowedOrigins) != 1 || cfg.Server.CORSAllowedOrigins[0] != "*" {
		t.Errorf("Server.CORSAllowedOrigins = %v, want [*]", cfg.Server.CORSAllowedOrigins)
	}
	if cfg.MetAPI.BaseURL != DefaultBaseURL {
		t.Errorf("MetAPI.BaseURL = %q, want %q", cfg.MetAPI.BaseURL, DefaultBaseURL)
	}
	if cfg.MetAPI.Timeout != 30*time.Second {
		t.Errorf("MetAPI.Timeout = %v, want 30s", cfg.MetAPI.Timeout)
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache.Enabled should default to true")
	}
	if cfg.Cache.Path != "yr_cache.sqlite" {
		t.Errorf("Cache.Path = %q, want default", cfg.Cache.Path)
	}
	if cfg.Build.Version != "dev" {
		t.Errorf("Build.Version = %q, want %q", cfg.Build.Version, "dev")
	}
}

// TestLoadConfigOverrides verifies environment values win over defaults.
func TestLoadConfigOverrides(t *testing.T) {
	setMinimalTestEnv(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("YR_BASE_URL", "http://localhost:9999/")
	t.Setenv("YR_HTTP_TIMEOUT", "5s")
	t.Setenv("YR_CACHE_ENABLED", "false")

	cfg, err := LoadConfig(writeDotenv(t, ""))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Environment != "prod" {
		t.Errorf("Environment = %q, want prod", cfg.Environment)
	}
	if cfg.MetAPI.BaseURL != "http://localhost:9999/" {
		t.Errorf("MetAPI.BaseURL = %q", cfg.MetAPI.BaseURL)
	}
	if cfg.MetAPI.Timeout != 5*time.Second {
		t.Errorf("MetAPI.Timeout = %v, want 5s", cfg.MetAPI.Timeout)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled should be false")
	}
}

// TestLoadConfigSetsUTC verifies that LoadConfig sets time.Local to UTC.
func TestLoadConfigSetsUTC(t *testing.T) {
	setMinimalTestEnv(t)

	originalLocal := time.Local
	t.Cleanup(func() {
		time.Local = originalLocal
	})
	oslo, err := time.LoadLocation("Europe/Oslo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	time.Local = oslo

	if _, err := LoadConfig(writeDotenv(t, "")); err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if time.Local != time.UTC {
		t.Errorf("time.Local = %v, want UTC", time.Local)
	}
}

// TestLoadConfigMissingUserAgent verifies that the User-Agent is mandatory.
func TestLoadConfigMissingUserAgent(t *testing.T) {
	t.Setenv("YR_USER_AGENT", "")

	_, err := LoadConfig(writeDotenv(t, ""))
	if err == nil {
		t.Fatal("expected error for missing YR_USER_AGENT")
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error should be *ConfigError, got %T", err)
	}
	if cfgErr.Type != ErrValidation {
		t.Errorf("ConfigError.Type = %q, want %q", cfgErr.Type, ErrValidation)
	}
	if !strings.Contains(err.Error(), "UserAgent") {
		t.Errorf("error should name the failing field, got %q", err.Error())
	}
}

// TestLoadConfigInvalidValues covers values that parse but fail validation,
// and values that do not parse at all.
func TestLoadConfigInvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		wantType ConfigErrorType
	}{
		{"unknown environment", "APP_ENV", "qa", ErrValidation},
		{"unknown log level", "LOG_LEVEL", "trace", ErrValidation},
		{"base url not a url", "YR_BASE_URL", "api.met.no", ErrValidation},
		{"timeout not a duration", "YR_HTTP_TIMEOUT", "soon", ErrParsing},
		{"cache flag not a bool", "YR_CACHE_ENABLED", "perhaps", ErrParsing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setMinimalTestEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig(writeDotenv(t, ""))
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if cfgErr.Type != tt.wantType {
				t.Errorf("ConfigError.Type = %q, want %q", cfgErr.Type, tt.wantType)
			}
		})
	}
}

// TestLoadConfigDotenv verifies that a named .env file supplies values but
// never overrides the process environment.
func TestLoadConfigDotenv(t *testing.T) {
	setMinimalTestEnv(t)
	t.Setenv("LOG_LEVEL", "warn")
	// Registered with t.Setenv so godotenv's os.Setenv is undone after the test.
	t.Setenv("YR_CACHE_PATH", "")
	os.Unsetenv("YR_CACHE_PATH")

	path := writeDotenv(t, "LOG_LEVEL=debug\nYR_CACHE_PATH=/tmp/yr-test.sqlite\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, process environment should win", cfg.LogLevel)
	}
	if cfg.Cache.Path != "/tmp/yr-test.sqlite" {
		t.Errorf("Cache.Path = %q, want value from .env", cfg.Cache.Path)
	}
}

// TestLoadConfigMissingDotenv verifies that an explicitly named file must exist.
func TestLoadConfigMissingDotenv(t *testing.T) {
	setMinimalTestEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
	if cfgErr.Type != ErrDotenv {
		t.Errorf("ConfigError.Type = %q, want %q", cfgErr.Type, ErrDotenv)
	}
}

// TestConfigErrorFormatting verifies Error() and Unwrap().
func TestConfigErrorFormatting(t *testing.T) {
	inner := errors.New("boom")
	err := &ConfigError{Type: ErrParsing, Message: "bad value", Err: inner}

	if got := err.Error(); got != "[PARSING_FAILED] bad value: boom" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}

	bare := &ConfigError{Type: ErrValidation, Message: "nope"}
	if got := bare.Error(); got != "[VALIDATION_FAILED] nope" {
		t.Errorf("Error() = %q", got)
	}
}

func writeDotenv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing .env: %v", err)
	}
	return path
}
