package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"yrweather/internal/types"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()
	var resp APIErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp.Error
}

func TestJSON_WritesEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	JSON(rec, req, http.StatusOK, APIResponse{
		Data: map[string]float64{"air_temperature": 8.4},
		Meta: &ResponseMeta{UpdatedAt: "2023-10-12T08:00:00Z"},
	})

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	want := `{"data":{"air_temperature":8.4},"meta":{"updated_at":"2023-10-12T08:00:00Z"}}`
	if got := rec.Body.String(); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestJSON_MarshalFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	JSON(rec, req, http.StatusOK, map[string]any{"bad": make(chan int)})

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if got := decodeError(t, rec); got.Code != string(types.ErrCodeInternalUnexpected) {
		t.Errorf("code = %q", got.Code)
	}
}

func TestError_StatusMapping(t *testing.T) {
	tests := []struct {
		code   types.ErrorCode
		status int
	}{
		{types.ErrCodeValidationInvalidLat, http.StatusBadRequest},
		{types.ErrCodeValidationMissingField, http.StatusBadRequest},
		{types.ErrCodeNotFoundForecastTime, http.StatusNotFound},
		{types.ErrCodeNotFoundRoute, http.StatusNotFound},
		{types.ErrCodeUpstreamUnavailable, http.StatusBadGateway},
		{types.ErrCodeUpstreamMalformedDocument, http.StatusBadGateway},
		{types.ErrCodeUpstreamRateLimited, http.StatusServiceUnavailable},
		{types.ErrCodeInternalUnexpected, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(types.WithRequestID(req.Context(), "req-1"))

			Error(rec, req, types.NewAppError(tt.code, "boom", nil))

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			got := decodeError(t, rec)
			if got.Code != string(tt.code) || got.Message != "boom" || got.RequestID != "req-1" {
				t.Errorf("unexpected error detail %+v", got)
			}
		})
	}
}

func TestError_WrappedAppErrorKeepsDetails(t *testing.T) {
	appErr := types.NewAppErrorWithDetails(types.ErrCodeUpstreamStatus, "upstream returned 404",
		nil, map[string]any{"status": 404})
	rec := httptest.NewRecorder()

	Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), fmt.Errorf("fetching: %w", appErr))

	got := decodeError(t, rec)
	if got.Code != string(types.ErrCodeUpstreamStatus) {
		t.Errorf("code = %q", got.Code)
	}
	if got.Details["status"] != float64(404) {
		t.Errorf("details = %v", got.Details)
	}
}

func TestError_PlainErrorIsHidden(t *testing.T) {
	rec := httptest.NewRecorder()

	Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("secret connection string"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	got := decodeError(t, rec)
	if got.Message != "an unexpected error occurred" {
		t.Errorf("message leaked: %q", got.Message)
	}
}
