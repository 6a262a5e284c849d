package core

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type mockHealthProbe struct {
	name     string
	checkErr error
	delay    time.Duration
	panics   bool
}

func (m *mockHealthProbe) Name() string { return m.name }

func (m *mockHealthProbe) Check(ctx context.Context) error {
	if m.panics {
		panic("boom")
	}
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			// Simulate a probe that ignores cancellation long enough to miss
			// the deadline.
			time.Sleep(50 * time.Millisecond)
			return ctx.Err()
		}
	}
	return m.checkErr
}

func runHealth(t *testing.T, probes ...HealthProbe) (int, healthResponse) {
	t.Helper()
	srv := newTestServer(t)
	srv.HealthProbes = probes

	rec := httptest.NewRecorder()
	srv.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var resp healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return rec.Code, resp
}

func TestHandleHealth_NoProbes(t *testing.T) {
	code, resp := runHealth(t)
	if code != http.StatusOK {
		t.Errorf("expected status 200, got %d", code)
	}
	if resp.Status != "healthy" || resp.Version != "1.2.3" {
		t.Errorf("unexpected response %+v", resp)
	}
	if len(resp.Components) != 0 {
		t.Errorf("expected no components, got %v", resp.Components)
	}
}

func TestHandleHealth_AllHealthy(t *testing.T) {
	code, resp := runHealth(t, &mockHealthProbe{name: "cache"}, ProbeFunc{
		ProbeName: "disk",
		Fn:        func(context.Context) error { return nil },
	})
	if code != http.StatusOK {
		t.Errorf("expected status 200, got %d", code)
	}
	for _, name := range []string{"cache", "disk"} {
		if resp.Components[name].Status != "healthy" {
			t.Errorf("component %q: got %+v", name, resp.Components[name])
		}
	}
}

func TestHandleHealth_Unhealthy(t *testing.T) {
	tests := []struct {
		name    string
		probe   *mockHealthProbe
		message string
	}{
		{"error", &mockHealthProbe{name: "cache", checkErr: errors.New("database is locked")}, "database is locked"},
		{"panic", &mockHealthProbe{name: "cache", panics: true}, "probe panicked: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := runHealth(t, &mockHealthProbe{name: "other"}, tt.probe)
			if code != http.StatusServiceUnavailable {
				t.Errorf("expected status 503, got %d", code)
			}
			if resp.Status != "unhealthy" {
				t.Errorf("expected status 'unhealthy', got %q", resp.Status)
			}
			comp := resp.Components["cache"]
			if comp.Status != "unhealthy" || comp.Message != tt.message {
				t.Errorf("cache component = %+v, want message %q", comp, tt.message)
			}
			if resp.Components["other"].Status != "healthy" {
				t.Errorf("other component = %+v", resp.Components["other"])
			}
		})
	}
}

func TestHandleHealth_Timeout(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for the health check deadline")
	}
	code, resp := runHealth(t, &mockHealthProbe{name: "slow", delay: 10 * time.Second})
	if code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", code)
	}
	if msg := resp.Components["slow"].Message; msg != "health check timed out" {
		t.Errorf("slow component message = %q", msg)
	}
}
