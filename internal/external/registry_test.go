package external

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yrweather/internal/config"
	"yrweather/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Environment: "local",
		MetAPI: config.MetAPIConfig{
			UserAgent: testUserAgent,
			BaseURL:   baseURL,
			Timeout:   5 * time.Second,
		},
		Build: config.BuildInfo{Version: "1.0.0"},
	}
}

func TestNewClientRegistry_PopulatesEveryClient(t *testing.T) {
	met := newFakeMET(t)

	reg, err := NewClientRegistry(testConfig(met.URL), testLogger(), WithClock(fixedNow))
	require.NoError(t, err)
	defer reg.Close()

	assert.NotNil(t, reg.Locationforecast)
	assert.NotNil(t, reg.Textforecast)
	assert.NotNil(t, reg.Sunrise)
	assert.NotNil(t, reg.Radar)
	assert.NotNil(t, reg.Geosatellite)

	temp, ok, err := reg.Locationforecast.AirTemperature(context.Background(), 59.91, 10.75, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 8.4, temp, 1e-9)
}

func TestNewClientRegistry_MissingUserAgent(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1/")
	cfg.MetAPI.UserAgent = ""

	_, err := NewClientRegistry(cfg, testLogger())
	require.Error(t, err)
	assert.Equal(t, types.ErrCodeValidationMissingField, types.CodeOf(err))
}

func TestNewClientRegistry_AppendsBuildToUserAgent(t *testing.T) {
	var got string
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		got = r.Header.Get("User-Agent")
		return nil, io.ErrUnexpectedEOF
	})

	reg, err := NewClientRegistry(testConfig("http://met.invalid/"), testLogger(), WithTransport(rt))
	require.NoError(t, err)
	defer reg.Close()

	_, _ = reg.Radar.Options(context.Background())
	assert.Equal(t, testUserAgent+" yrweather/1.0.0", got)
}

func TestNewClientRegistry_CacheServesRepeatRequests(t *testing.T) {
	met := newFakeMET(t)
	cfg := testConfig(met.URL)
	cfg.Cache = config.CacheConfig{Enabled: true, Path: filepath.Join(t.TempDir(), "cache.sqlite")}

	// The fake server sends no Cache-Control, so force freshness on the way in.
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		resp, err := http.DefaultTransport.RoundTrip(r)
		if err == nil {
			resp.Header.Set("Cache-Control", "max-age=600")
		}
		return resp, err
	})

	reg, err := NewClientRegistry(cfg, testLogger(), WithTransport(rt))
	require.NoError(t, err)
	defer reg.Close()

	for range 3 {
		_, err := reg.Radar.AllStatuses(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, met.hitCount("/radar/2.0/status"))
}

func TestNewClientRegistry_CacheDisabled(t *testing.T) {
	met := newFakeMET(t)

	reg, err := NewClientRegistry(testConfig(met.URL), testLogger())
	require.NoError(t, err)
	defer reg.Close()

	for range 2 {
		_, err := reg.Radar.AllStatuses(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 2, met.hitCount("/radar/2.0/status"))
	assert.NoError(t, reg.Close(), "Close without a cache is a no-op")
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
