package external

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"yrweather/internal/radar"
	"yrweather/internal/types"
)

const (
	radarPath        = "radar/2.0/"
	radarOptionsPath = "radar/2.0/radaroptions"
	radarStatusPath  = "radar/2.0/status"
	satellitePath    = "geosatellite/1.4/"
)

// Image is a binary payload streamed from the API without buffering. The
// caller must Close it.
type Image struct {
	io.ReadCloser
	ContentType   string
	ContentLength int64
}

func newImage(resp *http.Response) *Image {
	return &Image{
		ReadCloser:    resp.Body,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
	}
}

// RadarClient retrieves radar composites and the radar network status.
type RadarClient struct {
	base   *BaseClient
	logger *slog.Logger
}

// NewRadarClient creates a RadarClient.
func NewRadarClient(base *BaseClient, logger *slog.Logger) *RadarClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &RadarClient{base: base, logger: logger}
}

// Image streams a radar image or animation.
func (c *RadarClient) Image(ctx context.Context, req radar.ImageRequest) (*Image, error) {
	if err := validateParams(req); err != nil {
		return nil, err
	}

	resp, err := c.base.Get(ctx, radarPath, req.Query())
	if err != nil {
		return nil, err
	}

	types.LoggerFromContext(ctx, c.logger).DebugContext(ctx, "radar image streaming",
		"area", string(req.Area),
		"type", string(req.Type),
		"content_type", resp.Header.Get("Content-Type"),
	)
	return newImage(resp), nil
}

// Options lists the products available per area.
func (c *RadarClient) Options(ctx context.Context) (radar.Options, error) {
	resp, err := c.base.Get(ctx, radarOptionsPath, nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	opts, err := radar.DecodeOptions(resp.Body)
	if err != nil {
		return nil, malformedResponse(radarOptionsPath, err)
	}
	return opts, nil
}

// AllStatuses returns the status of every radar site.
func (c *RadarClient) AllStatuses(ctx context.Context) (*radar.GlobalStatus, error) {
	resp, err := c.base.Get(ctx, radarStatusPath, nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	status, err := radar.DecodeStatus(resp.Body)
	if err != nil {
		return nil, malformedResponse(radarStatusPath, err)
	}
	return status, nil
}

// Status returns the status of one radar, matched by area or by site name.
// ok is false when no site matches.
func (c *RadarClient) Status(ctx context.Context, key string) (radar.Status, bool, error) {
	if key == "" {
		return radar.Status{}, false, types.NewAppError(types.ErrCodeValidationMissingField,
			"radar area or site name is required", nil)
	}

	all, err := c.AllStatuses(ctx)
	if err != nil {
		return radar.Status{}, false, err
	}
	s, ok := all.Lookup(key)
	return s, ok, nil
}

// GeosatelliteClient retrieves geostationary satellite images.
type GeosatelliteClient struct {
	base   *BaseClient
	logger *slog.Logger
}

// NewGeosatelliteClient creates a GeosatelliteClient.
func NewGeosatelliteClient(base *BaseClient, logger *slog.Logger) *GeosatelliteClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &GeosatelliteClient{base: base, logger: logger}
}

// Image streams a satellite image. Empty request fields take the API
// defaults (europe, infrared, normal).
func (c *GeosatelliteClient) Image(ctx context.Context, req radar.SatelliteRequest) (*Image, error) {
	if err := validateParams(req); err != nil {
		return nil, err
	}

	resp, err := c.base.Get(ctx, satellitePath, req.Query())
	if err != nil {
		return nil, err
	}

	types.LoggerFromContext(ctx, c.logger).DebugContext(ctx, "satellite image streaming",
		"area", string(req.Area),
		"type", string(req.Type),
	)
	return newImage(resp), nil
}
