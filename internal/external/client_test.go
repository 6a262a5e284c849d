package external

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"yrweather/internal/types"

	"github.com/sony/gobreaker/v2"
)

const testUserAgent = "yrweather-test/1.0 test@example.com"

// newTestClient creates a BaseClient rooted at the given test server URL.
func newTestClient(t *testing.T, serverURL string, opts ...BaseClientOption) *BaseClient {
	t.Helper()
	c, err := NewBaseClient(&http.Client{Timeout: 5 * time.Second}, serverURL, testUserAgent, opts...)
	if err != nil {
		t.Fatalf("NewBaseClient: %v", err)
	}
	return c
}

func appErrorCode(t *testing.T, err error) types.ErrorCode {
	t.Helper()
	var appErr *types.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *types.AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func TestDo_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	resp, err := client.Get(context.Background(), "test", nil)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if string(body) != `{"status":"ok"}` {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestDo_InjectsHeaders(t *testing.T) {
	var receivedTraceID, receivedUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedTraceID = r.Header.Get("X-B3-TraceId")
		receivedUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	ctx := types.WithRequestID(context.Background(), "trace-abc-123")
	resp, err := client.Get(ctx, "test", nil)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	resp.Body.Close()

	if receivedTraceID != "trace-abc-123" {
		t.Errorf("expected trace ID 'trace-abc-123', got '%s'", receivedTraceID)
	}
	if receivedUA != testUserAgent {
		t.Errorf("expected User-Agent %q, got %q", testUserAgent, receivedUA)
	}
}

func TestURL_ResolvesBeneathBase(t *testing.T) {
	tests := []struct {
		base string
		path string
		want string
	}{
		{"https://api.met.no/weatherapi/", "locationforecast/2.0/compact", "https://api.met.no/weatherapi/locationforecast/2.0/compact"},
		{"https://api.met.no/weatherapi", "radar/2.0/status", "https://api.met.no/weatherapi/radar/2.0/status"},
		{"http://127.0.0.1:8080", "textforecast/2.0/", "http://127.0.0.1:8080/textforecast/2.0/"},
	}

	for _, tt := range tests {
		c, err := NewBaseClient(nil, tt.base, testUserAgent)
		if err != nil {
			t.Fatalf("NewBaseClient(%q): %v", tt.base, err)
		}
		if got := c.URL(tt.path, nil); got != tt.want {
			t.Errorf("URL(%q) with base %q = %q, want %q", tt.path, tt.base, got, tt.want)
		}
	}
}

func TestNewBaseClient_RejectsRelativeBase(t *testing.T) {
	_, err := NewBaseClient(nil, "api.met.no/weatherapi", testUserAgent)
	if err == nil {
		t.Fatal("expected error for base url without scheme")
	}
	if code := appErrorCode(t, err); code != types.ErrCodeValidationInvalidArgument {
		t.Errorf("expected %s, got %s", types.ErrCodeValidationInvalidArgument, code)
	}
}

func TestDo_DoesNotRetry(t *testing.T) {
	var callCount atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("backend down"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	resp, err := client.Get(context.Background(), "test", nil)
	if resp != nil {
		t.Error("expected nil response on 500")
	}
	if code := appErrorCode(t, err); code != types.ErrCodeUpstreamUnavailable {
		t.Errorf("expected error code %s, got %s", types.ErrCodeUpstreamUnavailable, code)
	}
	if calls := callCount.Load(); calls != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", calls)
	}

	var appErr *types.AppError
	errors.As(err, &appErr)
	if appErr.Details["body"] != "backend down" {
		t.Errorf("expected body in details, got %v", appErr.Details)
	}
}

func TestDo_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   types.ErrorCode
	}{
		{http.StatusBadRequest, types.ErrCodeUpstreamStatus},
		{http.StatusNotFound, types.ErrCodeUpstreamStatus},
		{http.StatusForbidden, types.ErrCodeUpstreamStatus},
		{http.StatusTooManyRequests, types.ErrCodeUpstreamRateLimited},
		{http.StatusBadGateway, types.ErrCodeUpstreamUnavailable},
		{http.StatusServiceUnavailable, types.ErrCodeUpstreamUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			_, err := newTestClient(t, server.URL).Get(context.Background(), "test", nil)
			if code := appErrorCode(t, err); code != tt.want {
				t.Errorf("status %d: expected %s, got %s", tt.status, tt.want, code)
			}

			var appErr *types.AppError
			errors.As(err, &appErr)
			if appErr.Details["status"] != tt.status {
				t.Errorf("expected status %d in details, got %v", tt.status, appErr.Details["status"])
			}
		})
	}
}

func TestDo_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(t, url).Get(context.Background(), "test", nil)
	if code := appErrorCode(t, err); code != types.ErrCodeUpstreamUnavailable {
		t.Errorf("expected error code %s, got %s", types.ErrCodeUpstreamUnavailable, code)
	}
}

func TestDo_CircuitBreakerOpensAfterThreshold(t *testing.T) {
	var callCount atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	// Create a circuit breaker that opens after 3 consecutive failures
	// for faster testing.
	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "test-open",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
	})
	client := newTestClient(t, server.URL, WithBreaker(breaker))

	for i := 0; i < 4; i++ {
		_, _ = client.Get(context.Background(), "test", nil)
	}

	// At this point we've had 4 consecutive failures. The breaker should now be open.
	serverCallsBefore := callCount.Load()

	resp, err := client.Get(context.Background(), "test", nil)
	if resp != nil {
		resp.Body.Close()
		t.Error("expected nil response when circuit breaker is open")
	}
	if code := appErrorCode(t, err); code != types.ErrCodeUpstreamRateLimited {
		t.Errorf("expected error code %s, got %s", types.ErrCodeUpstreamRateLimited, code)
	}

	if after := callCount.Load(); after != serverCallsBefore {
		t.Errorf("expected no additional server calls when breaker is open, got %d more",
			after-serverCallsBefore)
	}
}

func TestDo_ClientErrorsDoNotTripBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name: "test-4xx",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 1
		},
	})
	client := newTestClient(t, server.URL, WithBreaker(breaker))

	for i := 0; i < 5; i++ {
		_, err := client.Get(context.Background(), "test", nil)
		if code := appErrorCode(t, err); code != types.ErrCodeUpstreamStatus {
			t.Fatalf("attempt %d: expected %s, got %s", i, types.ErrCodeUpstreamStatus, code)
		}
	}
	if state := breaker.State(); state != gobreaker.StateClosed {
		t.Errorf("expected breaker closed after 4xx responses, got %s", state)
	}
}

func TestGetJSON_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type": "Feature",`))
	}))
	defer server.Close()

	var out map[string]any
	err := newTestClient(t, server.URL).GetJSON(context.Background(), "test", nil, &out)
	if code := appErrorCode(t, err); code != types.ErrCodeUpstreamMalformedResponse {
		t.Errorf("expected error code %s, got %s", types.ErrCodeUpstreamMalformedResponse, code)
	}
}
