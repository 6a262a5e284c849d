// Package external provides the clients for the api.met.no endpoint families.
// All outbound HTTP calls are routed through the BaseClient, which enforces
// consistent behavior: circuit breaking, User-Agent and trace propagation,
// and mapping of upstream failures to types.AppError.
package external

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"yrweather/internal/types"

	"github.com/gregjones/httpcache"
	"github.com/sony/gobreaker/v2"
)

// DefaultBaseURL is the root of the MET Norway weather API.
const DefaultBaseURL = "https://api.met.no/weatherapi/"

// maxErrorBody bounds how much of an error response is kept in AppError details.
const maxErrorBody = 2048

// BaseClient wraps an *http.Client and a circuit breaker. The endpoint clients
// embed a *BaseClient to inherit this behavior.
//
// BaseClient does not retry. A failed call is reported to the caller once.
type BaseClient struct {
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker[*http.Response]
	baseURL   *url.URL
	userAgent string
	logger    *slog.Logger
}

// BaseClientOption is a functional option for configuring a BaseClient.
type BaseClientOption func(*BaseClient)

// WithLogger sets the logger used for debug-level request tracing.
func WithLogger(logger *slog.Logger) BaseClientOption {
	return func(c *BaseClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithBreaker replaces the default circuit breaker. This is useful for
// testing or when sharing a breaker across clients.
func WithBreaker(breaker *gobreaker.CircuitBreaker[*http.Response]) BaseClientOption {
	return func(c *BaseClient) {
		c.breaker = breaker
	}
}

// NewBreaker returns the circuit breaker used by default. It opens after more
// than five consecutive failures and probes again after 30 seconds.
func NewBreaker(name string) *gobreaker.CircuitBreaker[*http.Response] {
	return gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil
		},
	})
}

// NewBaseClient creates a BaseClient rooted at baseURL. An empty baseURL
// selects DefaultBaseURL. A nil httpClient selects http.DefaultClient.
func NewBaseClient(httpClient *http.Client, baseURL, userAgent string, opts ...BaseClientOption) (*BaseClient, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, types.InvalidArgument("base url %q is not an absolute url", baseURL)
	}
	// Relative endpoint paths resolve beneath the base only with a trailing slash.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	bc := &BaseClient{
		client:    httpClient,
		breaker:   NewBreaker("met-api"),
		baseURL:   u,
		userAgent: strings.TrimSpace(userAgent),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(bc)
	}
	return bc, nil
}

// UserAgent returns the User-Agent sent with every request.
func (c *BaseClient) UserAgent() string {
	return c.userAgent
}

// URL resolves an endpoint path and query against the base URL.
func (c *BaseClient) URL(path string, query url.Values) string {
	u := c.baseURL.ResolveReference(&url.URL{Path: path})
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// Do executes the HTTP request with:
//  1. Trace ID injection (X-B3-TraceId from context)
//  2. User-Agent header injection
//  3. Circuit breaker wrapping
//  4. Error mapping to types.AppError
//
// Any non-2xx response is returned as an error; on success the caller is
// responsible for closing the response body.
func (c *BaseClient) Do(req *http.Request) (*http.Response, error) {
	if traceID := types.GetRequestID(req.Context()); traceID != "" {
		req.Header.Set("X-B3-TraceId", traceID)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		r, doErr := c.client.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		// 5xx and 429 count against the breaker; other statuses are the
		// caller's problem, not the upstream's.
		if r.StatusCode >= 500 || r.StatusCode == http.StatusTooManyRequests {
			return r, fmt.Errorf("upstream returned %d", r.StatusCode)
		}
		return r, nil
	})

	logger := types.LoggerFromContext(req.Context(), c.logger)
	if resp != nil {
		logger.DebugContext(req.Context(), "met api request",
			"url", req.URL.String(),
			"status", resp.StatusCode,
			"cache", resp.Header.Get(httpcache.XFromCache) != "",
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}

	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
		}
		return nil, c.mapError(resp, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, statusError(resp)
	}
	return resp, nil
}

// Get issues a GET for path with the given query.
func (c *BaseClient) Get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path, query), nil)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalUnexpected,
			"failed to create request", err)
	}
	return c.Do(req)
}

// GetJSON issues a GET for path and decodes the JSON body into out.
func (c *BaseClient) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.Get(ctx, path, query)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return malformedResponse(path, err)
	}
	return nil
}

// mapError translates breaker and transport failures into AppErrors.
func (c *BaseClient) mapError(resp *http.Response, err error) *types.AppError {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return types.NewAppError(
			types.ErrCodeUpstreamRateLimited,
			"circuit breaker is open; upstream service unavailable",
			err,
		)
	}

	if resp != nil {
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return types.NewAppErrorWithDetails(
				types.ErrCodeUpstreamRateLimited,
				"upstream rate limit exceeded",
				err,
				map[string]any{"status": resp.StatusCode},
			)
		case resp.StatusCode >= 500:
			return types.NewAppErrorWithDetails(
				types.ErrCodeUpstreamUnavailable,
				fmt.Sprintf("upstream returned %d", resp.StatusCode),
				err,
				map[string]any{"status": resp.StatusCode, "body": readErrorBody(resp)},
			)
		}
	}

	// Transport failure (DNS, refused connection, timeout, cancellation).
	return types.NewAppError(
		types.ErrCodeUpstreamUnavailable,
		"upstream request failed",
		err,
	)
}

// statusError reports a non-2xx response the breaker did not count.
func statusError(resp *http.Response) *types.AppError {
	return types.NewAppErrorWithDetails(
		types.ErrCodeUpstreamStatus,
		fmt.Sprintf("upstream returned %d", resp.StatusCode),
		nil,
		map[string]any{"status": resp.StatusCode, "body": readErrorBody(resp)},
	)
}

// closeBody drains what is left of the body before closing it. The caching
// transport only stores a response that was read to EOF.
func closeBody(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func readErrorBody(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return strings.TrimSpace(string(b))
}

func malformedResponse(path string, err error) *types.AppError {
	return types.NewAppErrorWithDetails(
		types.ErrCodeUpstreamMalformedResponse,
		"failed to decode upstream response",
		err,
		map[string]any{"path": path},
	)
}

// malformedDocument wraps a document that decoded but did not have the
// expected shape.
func malformedDocument(path string, err error) *types.AppError {
	return types.NewAppErrorWithDetails(
		types.ErrCodeUpstreamMalformedDocument,
		"upstream document has unexpected shape",
		err,
		map[string]any{"path": path},
	)
}
