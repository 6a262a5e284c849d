package external

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"yrweather/internal/forecast"
	"yrweather/internal/types"
)

const locationforecastPath = "locationforecast/2.0/"

// LocationforecastConfig holds the configuration for a LocationforecastClient.
type LocationforecastConfig struct {
	Logger *slog.Logger
	// Clock is the time source for Now resolution. Defaults to time.Now.
	Clock func() time.Time
}

// ForecastParams selects a Locationforecast document.
type ForecastParams struct {
	Lat  float64            `validate:"latitude"`
	Lon  float64            `validate:"longitude"`
	Kind types.ForecastKind `validate:"omitempty,forecast_kind"`

	// Altitude is the ground height in whole meters. Nil lets the API use
	// its own terrain model.
	Altitude *int `validate:"omitempty,gte=-500,lte=9000"`
}

func (p ForecastParams) query() url.Values {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(p.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(p.Lon, 'f', -1, 64))
	if p.Altitude != nil {
		q.Set("altitude", strconv.Itoa(*p.Altitude))
	}
	return q
}

// LocationforecastClient retrieves point forecasts.
type LocationforecastClient struct {
	base   *BaseClient
	logger *slog.Logger
	clock  func() time.Time
}

// NewLocationforecastClient creates a LocationforecastClient. MET Norway
// rejects anonymous traffic to this API, so the base client must carry a
// User-Agent.
func NewLocationforecastClient(base *BaseClient, cfg LocationforecastConfig) (*LocationforecastClient, error) {
	if base.UserAgent() == "" {
		return nil, types.NewAppError(types.ErrCodeValidationMissingField,
			"a User-Agent is required for the Locationforecast API", nil)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &LocationforecastClient{base: base, logger: logger, clock: clock}, nil
}

// Forecast retrieves the complete or compact forecast for a location. An
// empty Kind selects complete.
func (c *LocationforecastClient) Forecast(ctx context.Context, params ForecastParams) (*forecast.Series, error) {
	if params.Kind == "" {
		params.Kind = types.ForecastComplete
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}
	return c.fetch(ctx, string(params.Kind), params.query())
}

// AirTemperature returns the air temperature for the current hour from the
// compact forecast. ok is false when the entry has no temperature.
func (c *LocationforecastClient) AirTemperature(ctx context.Context, lat, lon float64, altitude *int) (temp float64, ok bool, err error) {
	params := ForecastParams{Lat: lat, Lon: lon, Kind: types.ForecastCompact, Altitude: altitude}
	if err := validateParams(params); err != nil {
		return 0, false, err
	}

	series, err := c.fetch(ctx, string(types.ForecastCompact), params.query())
	if err != nil {
		return 0, false, err
	}
	t := series.Now().Instant.AirTemperature
	if t == nil {
		return 0, false, nil
	}
	return *t, true, nil
}

// InstantData returns the instant conditions for the current hour from the
// complete forecast.
func (c *LocationforecastClient) InstantData(ctx context.Context, lat, lon float64, altitude *int) (forecast.InstantDetails, error) {
	params := ForecastParams{Lat: lat, Lon: lon, Kind: types.ForecastComplete, Altitude: altitude}
	if err := validateParams(params); err != nil {
		return forecast.InstantDetails{}, err
	}

	series, err := c.fetch(ctx, string(types.ForecastComplete), params.query())
	if err != nil {
		return forecast.InstantDetails{}, err
	}
	return series.Now().Instant, nil
}

// Units returns the unit table the API currently uses. Units are the same
// for every location, so a fixed point is queried.
func (c *LocationforecastClient) Units(ctx context.Context) (forecast.Units, error) {
	series, err := c.fetch(ctx, string(types.ForecastComplete), ForecastParams{}.query())
	if err != nil {
		return forecast.Units{}, err
	}
	return series.Units, nil
}

func (c *LocationforecastClient) fetch(ctx context.Context, product string, query url.Values) (*forecast.Series, error) {
	path := locationforecastPath + product

	var doc map[string]any
	if err := c.base.GetJSON(ctx, path, query, &doc); err != nil {
		return nil, err
	}

	series, err := forecast.NewSeries(doc, forecast.WithClock(c.clock))
	if err != nil {
		return nil, malformedDocument(path, err)
	}

	types.LoggerFromContext(ctx, c.logger).DebugContext(ctx, "locationforecast resolved",
		"product", product,
		"entries", series.Len(),
		"skipped", series.Skipped(),
		"updated_at", series.UpdatedAt,
	)
	return series, nil
}
