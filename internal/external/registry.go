package external

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"

	"yrweather/internal/cache"
	"yrweather/internal/config"
)

// ClientRegistry holds one client per api.met.no endpoint family. All clients
// share a BaseClient, so they share the User-Agent, the circuit breaker and
// the response cache.
type ClientRegistry struct {
	Locationforecast *LocationforecastClient
	Textforecast     *TextforecastClient
	Sunrise          *SunriseClient
	Radar            *RadarClient
	Geosatellite     *GeosatelliteClient

	store *cache.Store
}

// RegistryOption is a functional option for configuring a ClientRegistry.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	transport http.RoundTripper
	clock     func() time.Time
}

// WithTransport sets the round tripper beneath the cache layer. Defaults to
// http.DefaultTransport.
func WithTransport(rt http.RoundTripper) RegistryOption {
	return func(rc *registryConfig) {
		rc.transport = rt
	}
}

// WithClock sets the time source used to resolve "now" in forecasts.
func WithClock(now func() time.Time) RegistryOption {
	return func(rc *registryConfig) {
		rc.clock = now
	}
}

// NewClientRegistry initializes every endpoint client from configuration.
//
// When cfg.Cache.Enabled is set, responses are cached on disk and reused for
// as long as their Cache-Control headers allow. The choice is fixed for the
// lifetime of the registry.
func NewClientRegistry(cfg *config.Config, logger *slog.Logger, opts ...RegistryOption) (*ClientRegistry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	rc := &registryConfig{transport: http.DefaultTransport, clock: time.Now}
	for _, opt := range opts {
		opt(rc)
	}

	reg := &ClientRegistry{}
	transport := rc.transport

	if cfg.Cache.Enabled {
		path := cfg.Cache.Path
		if path == "" {
			path = cache.DefaultName
		}
		store, err := cache.Open(path, logger.With("component", "cache"))
		if err != nil {
			return nil, err
		}
		reg.store = store

		ct := httpcache.NewTransport(store)
		ct.Transport = rc.transport
		transport = ct
	}

	logger.Info("initializing met api clients",
		"base_url", cfg.MetAPI.BaseURL,
		"cache_enabled", cfg.Cache.Enabled,
		"cache_path", cfg.Cache.Path,
	)

	httpClient := &http.Client{Timeout: cfg.MetAPI.Timeout, Transport: transport}
	base, err := NewBaseClient(httpClient, cfg.MetAPI.BaseURL, userAgent(cfg),
		WithLogger(logger.With("client", "met-api")),
	)
	if err != nil {
		reg.Close()
		return nil, err
	}

	reg.Locationforecast, err = NewLocationforecastClient(base, LocationforecastConfig{
		Logger: logger.With("client", "locationforecast"),
		Clock:  rc.clock,
	})
	if err != nil {
		reg.Close()
		return nil, err
	}
	reg.Textforecast = NewTextforecastClient(base, TextforecastConfig{
		Logger: logger.With("client", "textforecast"),
		Clock:  rc.clock,
	})
	reg.Sunrise = NewSunriseClient(base, logger.With("client", "sunrise"))
	reg.Radar = NewRadarClient(base, logger.With("client", "radar"))
	reg.Geosatellite = NewGeosatelliteClient(base, logger.With("client", "geosatellite"))

	return reg, nil
}

// CacheEnabled reports whether responses are cached on disk.
func (r *ClientRegistry) CacheEnabled() bool {
	return r.store != nil
}

// PingCache checks the response cache database. It is a no-op when caching
// is disabled.
func (r *ClientRegistry) PingCache(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	return r.store.Ping(ctx)
}

// Close releases the response cache, if any.
func (r *ClientRegistry) Close() error {
	if r.store == nil {
		return nil
	}
	err := r.store.Close()
	r.store = nil
	return err
}

func userAgent(cfg *config.Config) string {
	ua := cfg.MetAPI.UserAgent
	if ua != "" && cfg.Build.Version != "" {
		ua += " " + cfg.Build.UserAgentSuffix()
	}
	return ua
}
