package config

import (
	"reflect"
	"testing"
)

// TestEnvconfigTags guards the public environment variable names; renaming
// one silently breaks deployments.
func TestEnvconfigTags(t *testing.T) {
	tests := []struct {
		typ   reflect.Type
		field string
		want  string
	}{
		{reflect.TypeOf(Config{}), "Environment", "APP_ENV"},
		{reflect.TypeOf(Config{}), "LogLevel", "LOG_LEVEL"},
		{reflect.TypeOf(ServerConfig{}), "Port", "PORT"},
		{reflect.TypeOf(ServerConfig{}), "RequestTimeout", "REQUEST_TIMEOUT"},
		{reflect.TypeOf(ServerConfig{}), "CORSAllowedOrigins", "CORS_ALLOWED_ORIGINS"},
		{reflect.TypeOf(MetAPIConfig{}), "UserAgent", "YR_USER_AGENT"},
		{reflect.TypeOf(MetAPIConfig{}), "BaseURL", "YR_BASE_URL"},
		{reflect.TypeOf(MetAPIConfig{}), "Timeout", "YR_HTTP_TIMEOUT"},
		{reflect.TypeOf(CacheConfig{}), "Enabled", "YR_CACHE_ENABLED"},
		{reflect.TypeOf(CacheConfig{}), "Path", "YR_CACHE_PATH"},
	}

	for _, tt := range tests {
		f, ok := tt.typ.FieldByName(tt.field)
		if !ok {
			t.Errorf("%s has no field %s", tt.typ.Name(), tt.field)
			continue
		}
		if got := f.Tag.Get("envconfig"); got != tt.want {
			t.Errorf("%s.%s envconfig tag = %q, want %q", tt.typ.Name(), tt.field, got, tt.want)
		}
	}
}

// TestBuildInfoHasNoEnvTags verifies build metadata cannot be overridden by
// environment variables.
func TestBuildInfoHasNoEnvTags(t *testing.T) {
	typ := reflect.TypeOf(BuildInfo{})
	for i := range typ.NumField() {
		if tag := typ.Field(i).Tag.Get("envconfig"); tag != "" {
			t.Errorf("BuildInfo.%s has envconfig tag %q", typ.Field(i).Name, tag)
		}
	}
}

func TestDefaultBaseURLMatchesTag(t *testing.T) {
	f, _ := reflect.TypeOf(MetAPIConfig{}).FieldByName("BaseURL")
	if got := f.Tag.Get("default"); got != DefaultBaseURL {
		t.Errorf("BaseURL default tag = %q, want %q", got, DefaultBaseURL)
	}
}
