// Package api is the typed HTTP client for the marketplace backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"regexp"
	"strings"
	"time"

	apperrors "myhair/internal/errors"
	"myhair/internal/telemetry"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

// DefaultSessionPath is the "who am I" endpoint.
const DefaultSessionPath = "/api/auth/check"

const maxBodyBytes = 4 << 20

// Client handles backend API interactions. The session cookie is kept in
// the client's cookie jar.
type Client struct {
	BaseURL     string
	SessionPath string
	HTTPClient  *http.Client
	limiter     *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.HTTPClient.Timeout = d }
}

// WithSessionPath overrides the session check endpoint, e.g. "/api/me".
func WithSessionPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.SessionPath = path
		}
	}
}

// WithRateLimit caps outgoing requests per second. A non-positive limit
// disables the limiter.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithTransport swaps the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.HTTPClient.Transport = rt }
}

// NewClient creates a new backend client.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	c := &Client{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		SessionPath: DefaultSessionPath,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Jar:     jar,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// do sends one request and decodes a 2xx JSON body into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	op := method + " " + path
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return apperrors.NetworkError(op, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	endpoint := endpointLabel(path)
	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		telemetry.TrackAPIRequest(method, endpoint, 0, time.Since(start))
		return apperrors.NetworkError(op, err)
	}
	defer resp.Body.Close()
	telemetry.TrackAPIRequest(method, endpoint, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return apperrors.NetworkError(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		telemetry.LogDebug("backend refused request", "op", op, "status", resp.StatusCode, "request_id", req.Header.Get("X-Request-ID"))
		return apperrors.NewAPIError(resp.StatusCode, reasonFrom(data))
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	return c.do(ctx, method, path, body, "application/json", out)
}

// reasonFrom extracts the backend's human-readable reason from an error
// body, or "" when there is none.
func reasonFrom(data []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}

var numericSegment = regexp.MustCompile(`/\d+(/|$)`)

// endpointLabel strips the query and numeric ids so metric labels stay bounded.
func endpointLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	for numericSegment.MatchString(path) {
		path = numericSegment.ReplaceAllString(path, "/{id}$1")
	}
	return path
}
