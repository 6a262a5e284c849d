// Package handlers contains the /v1 HTTP handlers of the yrweather API. Each
// handler depends on a small service interface satisfied by the clients in
// internal/external, so tests can substitute fakes.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"yrweather/internal/core"
	"yrweather/internal/external"
	"yrweather/internal/forecast"
	"yrweather/internal/types"
)

// ForecastService retrieves Locationforecast time series.
type ForecastService interface {
	Forecast(ctx context.Context, params external.ForecastParams) (*forecast.Series, error)
}

// ForecastHandler resolves point forecasts to a single hour.
type ForecastHandler struct {
	service ForecastService
	logger  *slog.Logger
}

// NewForecastHandler creates a ForecastHandler.
func NewForecastHandler(svc ForecastService, logger *slog.Logger) *ForecastHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ForecastHandler{service: svc, logger: logger}
}

// RegisterRoutes mounts the forecast endpoints.
func (h *ForecastHandler) RegisterRoutes(r chi.Router) {
	r.Route("/forecast", func(r chi.Router) {
		r.Get("/now", h.HandleNow)
		r.Get("/at", h.HandleAt)
		r.Get("/units", h.HandleUnits)
	})
}

// forecastData is the body of a resolved forecast response.
type forecastData struct {
	Entry    forecast.Entry    `json:"entry"`
	Geometry forecast.Geometry `json:"geometry"`
}

// HandleNow handles GET /v1/forecast/now?lat=&lon=[&altitude=][&kind=].
// It never reports absence: when the current hour is not in the series the
// first entry is returned.
func (h *ForecastHandler) HandleNow(w http.ResponseWriter, r *http.Request) {
	series, ok := h.fetch(w, r)
	if !ok {
		return
	}
	writeForecast(w, r, series, series.Now())
}

// HandleAt handles GET /v1/forecast/at?lat=&lon=&time=. A time the series
// does not cover yields 404 not_found_forecast_time.
func (h *ForecastHandler) HandleAt(w http.ResponseWriter, r *http.Request) {
	at, err := parseTime(r.URL.Query(), "time")
	if err != nil {
		core.Error(w, r, err)
		return
	}

	series, ok := h.fetch(w, r)
	if !ok {
		return
	}

	entry, found, err := series.At(at)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	if !found {
		core.Error(w, r, types.NewAppErrorWithDetails(types.ErrCodeNotFoundForecastTime,
			"forecast has no entry for the requested hour", nil,
			map[string]any{"hour": forecast.FormatTimestamp(forecast.RoundToNearestHour(at))}))
		return
	}
	writeForecast(w, r, series, entry)
}

// HandleUnits handles GET /v1/forecast/units?lat=&lon=.
func (h *ForecastHandler) HandleUnits(w http.ResponseWriter, r *http.Request) {
	series, ok := h.fetch(w, r)
	if !ok {
		return
	}
	core.JSON(w, r, http.StatusOK, core.APIResponse{
		Data: series.Units,
		Meta: &core.ResponseMeta{UpdatedAt: series.UpdatedAt},
	})
}

// fetch parses the location parameters and retrieves the series. On failure
// the error response has already been written.
func (h *ForecastHandler) fetch(w http.ResponseWriter, r *http.Request) (*forecast.Series, bool) {
	q := r.URL.Query()
	lat, lon, err := parseLatLon(q)
	if err != nil {
		core.Error(w, r, err)
		return nil, false
	}
	altitude, err := parseOptionalInt(q, "altitude")
	if err != nil {
		core.Error(w, r, err)
		return nil, false
	}

	series, err := h.service.Forecast(r.Context(), external.ForecastParams{
		Lat:      lat,
		Lon:      lon,
		Kind:     types.ForecastKind(q.Get("kind")),
		Altitude: altitude,
	})
	if err != nil {
		core.Error(w, r, err)
		return nil, false
	}
	return series, true
}

func writeForecast(w http.ResponseWriter, r *http.Request, series *forecast.Series, entry forecast.Entry) {
	core.JSON(w, r, http.StatusOK, core.APIResponse{
		Data: forecastData{Entry: entry, Geometry: series.Geometry},
		Meta: &core.ResponseMeta{UpdatedAt: series.UpdatedAt},
	})
}
