package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"yrweather/internal/core"
	"yrweather/internal/sunrise"
	"yrweather/internal/types"
)

// SunriseService retrieves sun and moon events.
type SunriseService interface {
	SunEvents(ctx context.Context, params sunrise.Params) (*sunrise.SunEvents, error)
	MoonEvents(ctx context.Context, params sunrise.Params) (*sunrise.MoonEvents, error)
}

// SunriseHandler serves sun and moon events for a location and date.
type SunriseHandler struct {
	service SunriseService
	logger  *slog.Logger
	clock   func() time.Time
}

// NewSunriseHandler creates a SunriseHandler. clock supplies the default
// date; nil selects time.Now.
func NewSunriseHandler(svc SunriseService, logger *slog.Logger, clock func() time.Time) *SunriseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = time.Now
	}
	return &SunriseHandler{service: svc, logger: logger, clock: clock}
}

func (h *SunriseHandler) RegisterRoutes(r chi.Router) {
	r.Get("/sun", h.HandleSun)
	r.Get("/moon", h.HandleMoon)
}

type sunData struct {
	*sunrise.SunEvents
	DayLengthSeconds *int64 `json:"day_length_seconds,omitempty"`
}

type moonData struct {
	*sunrise.MoonEvents
	PhaseName string `json:"phase_name,omitempty"`
}

// HandleSun handles GET /v1/sun?lat=&lon=[&date=][&offset=].
func (h *SunriseHandler) HandleSun(w http.ResponseWriter, r *http.Request) {
	params, err := h.params(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	ev, err := h.service.SunEvents(r.Context(), params)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	data := sunData{SunEvents: ev}
	if d, ok := ev.DayLength(); ok {
		secs := int64(d / time.Second)
		data.DayLengthSeconds = &secs
	}
	core.JSON(w, r, http.StatusOK, core.APIResponse{
		Data: data,
		Meta: &core.ResponseMeta{LicenseURL: ev.LicenseURL},
	})
}

// HandleMoon handles GET /v1/moon?lat=&lon=[&date=][&offset=].
func (h *SunriseHandler) HandleMoon(w http.ResponseWriter, r *http.Request) {
	params, err := h.params(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	ev, err := h.service.MoonEvents(r.Context(), params)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	data := moonData{MoonEvents: ev}
	if ev.Properties.Moonphase != nil {
		data.PhaseName = sunrise.PhaseName(*ev.Properties.Moonphase)
	}
	core.JSON(w, r, http.StatusOK, core.APIResponse{
		Data: data,
		Meta: &core.ResponseMeta{LicenseURL: ev.LicenseURL},
	})
}

// params defaults the date to today in UTC and leaves the offset empty, so
// times come back in UTC unless the caller asks otherwise.
func (h *SunriseHandler) params(r *http.Request) (sunrise.Params, error) {
	q := r.URL.Query()
	lat, lon, err := parseLatLon(q)
	if err != nil {
		return sunrise.Params{}, err
	}

	date := q.Get("date")
	if date == "" {
		date = h.clock().UTC().Format(types.DateLayout)
	}
	// An unescaped "+" in the query decodes to a space.
	offset := q.Get("offset")
	if strings.HasPrefix(offset, " ") {
		offset = "+" + offset[1:]
	}
	return sunrise.Params{Date: date, Lat: lat, Lon: lon, Offset: offset}, nil
}
