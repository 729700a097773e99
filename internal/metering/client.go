package metering

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/smallbiznis/meterdash/internal/observability/tracing"
)

const defaultBaseURL = "https://api.metronome.com"
const defaultUserAgent = "meterdash/0.1"

// Recorder receives upstream request outcomes for metrics.
type Recorder interface {
	RecordUpstreamRequest(ctx context.Context, endpoint string, status int)
}

// Config wires authentication, base URL, and instrumentation for the API client.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	UserAgent  string
	Retry      RetryConfig
	Recorder   Recorder
}

// Client provides typed helpers for the remote metering/billing API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	userAgent  string
	retry      RetryConfig
	recorder   Recorder
}

// NewClient validates the configuration and returns a ready-to-use Client.
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("metering: api key required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		baseURL:    normalized,
		apiKey:     trimBearer(cfg.APIKey),
		httpClient: httpClient,
		userAgent:  ua,
		retry:      cfg.Retry.normalized(),
		recorder:   cfg.Recorder,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("metering: base URL required")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("metering: invalid base URL: %w", err)
	}
	if u.Scheme == "" {
		return "", errors.New("metering: base URL missing scheme (http/https)")
	}
	if u.Host == "" {
		return "", errors.New("metering: base URL missing host")
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	// Request paths carry their own version prefix, so a version segment on
	// the base URL would double up as /v1/v1/... on every call.
	if idx := strings.LastIndex(u.Path, "/"); idx >= 0 && isVersionSegment(u.Path[idx+1:]) {
		u.Path = u.Path[:idx]
	}
	return strings.TrimSuffix(u.String(), "/"), nil
}

func isVersionSegment(segment string) bool {
	if len(segment) < 2 || segment[0] != 'v' {
		return false
	}
	for _, r := range segment[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func trimBearer(token string) string {
	token = strings.TrimSpace(token)
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}

// CallOption customizes a single API call.
type CallOption func(*callOptions)

type callOptions struct {
	apiKey string
}

// WithBearerToken overrides the process-wide credential for one call.
func WithBearerToken(token string) CallOption {
	return func(o *callOptions) {
		o.apiKey = trimBearer(token)
	}
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any, opts ...CallOption) error {
	target := path
	if len(query) > 0 {
		target = path + "?" + query.Encode()
	}
	req, err := c.newJSONRequest(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil, out, opts...)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any, opts ...CallOption) error {
	var body []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = encoded
	}
	req, err := c.newJSONRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return c.do(req, body, out, opts...)
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	tracing.Inject(ctx, req.Header)
	return req, nil
}

// do sends the request, retrying per the configured policy, and decodes the
// JSON response into out. The request body is re-seeded from rawBody on each
// attempt. Retries are disabled by default (MaxAttempts 1).
func (c *Client) do(req *http.Request, rawBody []byte, out any, opts ...CallOption) error {
	options := callOptions{apiKey: c.apiKey}
	for _, opt := range opts {
		opt(&options)
	}

	var lastErr error
	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if delay := c.retry.backoffDelay(attempt); delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-req.Context().Done():
				timer.Stop()
				return req.Context().Err()
			case <-timer.C:
			}
		}
		if rawBody != nil {
			req.Body = io.NopCloser(bytes.NewReader(rawBody))
		}
		req.Header.Set("Authorization", "Bearer "+options.apiKey)
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.record(req.Context(), req.URL.Path, 0)
			lastErr = &APIError{Message: err.Error()}
			continue
		}
		c.record(req.Context(), req.URL.Path, resp.StatusCode)
		if resp.StatusCode >= 400 {
			apiErr := decodeAPIError(resp)
			resp.Body.Close()
			lastErr = apiErr
			if !retryableStatus(resp.StatusCode) {
				return lastErr
			}
			continue
		}
		err = decodeBody(resp, out)
		resp.Body.Close()
		return err
	}
	return lastErr
}

func (c *Client) record(ctx context.Context, endpoint string, status int) {
	if c.recorder == nil {
		return
	}
	c.recorder.RecordUpstreamRequest(ctx, endpoint, status)
}

func decodeBody(resp *http.Response, out any) error {
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("metering: decode response: %w", err)
	}
	return nil
}

func retryableStatus(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}

func (c *Client) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}
