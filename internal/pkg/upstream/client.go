package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/staffsight/attendance-insights-go/internal/pkg/metrics"
)

// Client talks to the upstream HRIS backend that owns the authoritative
// attendance data. Every call is read-through: nothing is stored here.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	pageSize   int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithPageSize overrides the default page size for the event fetcher.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 100

func NewClient(baseURL, token string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		pageSize:   DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx upstream response, carrying the status code and
// whatever error body the backend managed to produce.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream API error [%d] %s: %s", e.StatusCode, e.Code, e.Message)
}

// errorBody is the error half of the upstream response envelope.
type errorBody struct {
	Message string `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// do issues one request and decodes the response envelope. A transport
// failure or non-2xx status returns an error; a 2xx body that cannot be
// decoded returns an empty envelope rather than failing, keeping report
// rendering tolerant of shape drift.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*envelope, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(path, "transport_error").Inc()
		return nil, fmt.Errorf("upstream request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(path, "transport_error").Inc()
		return nil, fmt.Errorf("read upstream response %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequests.WithLabelValues(path, "http_error").Inc()
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: "UPSTREAM_ERROR"}
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil {
			if eb.Error != nil {
				apiErr.Code = eb.Error.Code
				apiErr.Message = eb.Error.Message
			} else {
				apiErr.Message = eb.Message
			}
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return nil, apiErr
	}

	metrics.UpstreamRequests.WithLabelValues(path, "ok").Inc()

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// Tolerate malformed success bodies: the caller sees an empty
		// result, not an error.
		return &envelope{}, nil
	}
	return &env, nil
}
