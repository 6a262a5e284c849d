package external

import (
	"context"
	"io"
	"log/slog"

	"yrweather/internal/sunrise"
	"yrweather/internal/types"
)

const (
	sunPath  = "sunrise/3.0/sun"
	moonPath = "sunrise/3.0/moon"
)

// SunriseClient retrieves sun and moon rise/set events.
type SunriseClient struct {
	base   *BaseClient
	logger *slog.Logger
}

// NewSunriseClient creates a SunriseClient.
func NewSunriseClient(base *BaseClient, logger *slog.Logger) *SunriseClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &SunriseClient{base: base, logger: logger}
}

// SunEvents retrieves sunrise, sunset, solar noon and solar midnight.
func (c *SunriseClient) SunEvents(ctx context.Context, params sunrise.Params) (*sunrise.SunEvents, error) {
	var ev *sunrise.SunEvents
	err := c.get(ctx, sunPath, params, func(r io.Reader) (err error) {
		ev, err = sunrise.DecodeSunEvents(r)
		return err
	})
	return ev, err
}

// MoonEvents retrieves moonrise, moonset, high and low moon and the phase.
func (c *SunriseClient) MoonEvents(ctx context.Context, params sunrise.Params) (*sunrise.MoonEvents, error) {
	var ev *sunrise.MoonEvents
	err := c.get(ctx, moonPath, params, func(r io.Reader) (err error) {
		ev, err = sunrise.DecodeMoonEvents(r)
		return err
	})
	return ev, err
}

func (c *SunriseClient) get(ctx context.Context, path string, params sunrise.Params, decode func(io.Reader) error) error {
	if err := validateParams(params); err != nil {
		return err
	}

	resp, err := c.base.Get(ctx, path, params.Query())
	if err != nil {
		return err
	}
	defer closeBody(resp)

	if err := decode(resp.Body); err != nil {
		return malformedResponse(path, err)
	}

	types.LoggerFromContext(ctx, c.logger).DebugContext(ctx, "sunrise events fetched",
		"path", path,
		"date", params.Date,
	)
	return nil
}
