package external

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"yrweather/internal/textforecast"
	"yrweather/internal/types"
)

const (
	textforecastPath      = "textforecast/2.0/"
	textforecastAreasPath = "textforecast/2.0/areas"
)

// TextforecastConfig holds the configuration for a TextforecastClient.
type TextforecastConfig struct {
	Logger *slog.Logger
	// Clock is the time source for current-period resolution.
	Clock func() time.Time
}

type textforecastParams struct {
	Kind types.TextForecastKind `validate:"required,text_kind"`
}

type areasParams struct {
	Type types.TextAreaType `validate:"required,area_type"`
}

// TextforecastClient retrieves the written forecasts for Norwegian land,
// coast and sea areas. Responses are XML.
type TextforecastClient struct {
	base   *BaseClient
	logger *slog.Logger
	clock  func() time.Time
}

// NewTextforecastClient creates a TextforecastClient.
func NewTextforecastClient(base *BaseClient, cfg TextforecastConfig) *TextforecastClient {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &TextforecastClient{base: base, logger: logger, clock: clock}
}

// Forecasts retrieves and normalizes one text forecast document.
func (c *TextforecastClient) Forecasts(ctx context.Context, kind types.TextForecastKind) (*textforecast.Forecasts, error) {
	if err := validateParams(textforecastParams{Kind: kind}); err != nil {
		return nil, err
	}

	doc, err := c.getXML(ctx, textforecastPath, url.Values{"forecast": {string(kind)}})
	if err != nil {
		return nil, err
	}

	f, err := textforecast.NewForecasts(doc, kind, textforecast.WithClock(c.clock))
	if err != nil {
		return nil, malformedDocument(textforecastPath, err)
	}

	types.LoggerFromContext(ctx, c.logger).DebugContext(ctx, "textforecast normalized",
		"kind", string(kind),
		"periods", len(f.Periods),
	)
	return f, nil
}

// Areas lists the forecast regions of one area type.
func (c *TextforecastClient) Areas(ctx context.Context, areaType types.TextAreaType) ([]textforecast.Area, error) {
	if err := validateParams(areasParams{Type: areaType}); err != nil {
		return nil, err
	}

	doc, err := c.getXML(ctx, textforecastAreasPath, url.Values{"type": {string(areaType)}})
	if err != nil {
		return nil, err
	}

	areas, err := textforecast.ParseAreas(doc)
	if err != nil {
		return nil, malformedDocument(textforecastAreasPath, err)
	}
	return areas, nil
}

func (c *TextforecastClient) getXML(ctx context.Context, path string, query url.Values) (map[string]any, error) {
	resp, err := c.base.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	doc, err := textforecast.DecodeXML(resp.Body)
	if err != nil {
		return nil, malformedResponse(path, err)
	}
	return doc, nil
}
