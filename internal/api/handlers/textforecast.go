package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"yrweather/internal/core"
	"yrweather/internal/textforecast"
	"yrweather/internal/types"
)

// TextForecastService retrieves normalized Textforecast documents.
type TextForecastService interface {
	Forecasts(ctx context.Context, kind types.TextForecastKind) (*textforecast.Forecasts, error)
}

// TextForecastHandler serves the period of a text forecast that applies now.
type TextForecastHandler struct {
	service TextForecastService
	logger  *slog.Logger
}

func NewTextForecastHandler(svc TextForecastService, logger *slog.Logger) *TextForecastHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextForecastHandler{service: svc, logger: logger}
}

func (h *TextForecastHandler) RegisterRoutes(r chi.Router) {
	r.Get("/textforecast/{kind}/now", h.HandleNow)
}

// HandleNow handles GET /v1/textforecast/{kind}/now. An unknown kind is
// rejected by the client before any upstream call.
func (h *TextForecastHandler) HandleNow(w http.ResponseWriter, r *http.Request) {
	kind := types.TextForecastKind(chi.URLParam(r, "kind"))

	f, err := h.service.Forecasts(r.Context(), kind)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	period, err := f.Now()
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{
		Data: period,
		Meta: &core.ResponseMeta{LicenseURL: f.LicenseURL},
	})
}
