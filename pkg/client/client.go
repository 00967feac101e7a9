// Package client is a Go client for the classifyd HTTP API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"classifyd/pkg/types"
)

// DefaultTimeout bounds each request unless overridden with WithTimeout.
const DefaultTimeout = 30 * time.Second

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Detail     string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("classifyd: %d %s (request %s)", e.StatusCode, e.Detail, e.RequestID)
	}
	return fmt.Sprintf("classifyd: %d %s", e.StatusCode, e.Detail)
}

// Client talks to one classifyd server. It is safe for concurrent use.
type Client struct {
	http *resty.Client
}

// Option configures a Client.
type Option func(*resty.Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) { c.SetTimeout(d) }
}

// WithRetry retries transport failures and 5xx responses up to n times.
func WithRetry(n int, wait time.Duration) Option {
	return func(c *resty.Client) {
		c.SetRetryCount(n).SetRetryWaitTime(wait).AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || (r != nil && r.StatusCode() >= http.StatusInternalServerError)
		})
	}
}

// New returns a client for the server at baseURL, e.g. http://localhost:8000.
func New(baseURL string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(DefaultTimeout).
		SetHeader("Accept", "application/json")
	for _, o := range opts {
		o(rc)
	}
	return &Client{http: rc}
}

// Predict classifies text with the given model using its dedicated route.
func (c *Client) Predict(ctx context.Context, model types.ModelID, text string) (types.Prediction, error) {
	var out types.Prediction
	err := c.do(ctx, http.MethodPost, "/"+string(model), types.PredictRequest{Text: text}, &out)
	return out, err
}

// Health returns the server health report.
func (c *Client) Health(ctx context.Context) (types.HealthResponse, error) {
	var out types.HealthResponse
	err := c.do(ctx, http.MethodGet, "/health", nil, &out)
	return out, err
}

// Models lists the loaded models.
func (c *Client) Models(ctx context.Context) ([]types.ModelInfo, error) {
	var out types.ModelsResponse
	if err := c.do(ctx, http.MethodGet, "/models", nil, &out); err != nil {
		return nil, err
	}
	return out.Models, nil
}

// Status returns serving counters.
func (c *Client) Status(ctx context.Context) (types.StatusResponse, error) {
	var out types.StatusResponse
	err := c.do(ctx, http.MethodGet, "/status", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var apiErr types.ErrorResponse
	req := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-Id", uuid.NewString()).
		SetResult(result).
		SetError(&apiErr)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	res, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if res.IsError() {
		detail := apiErr.Detail
		if detail == "" {
			detail = strings.TrimSpace(res.String())
		}
		if detail == "" {
			detail = http.StatusText(res.StatusCode())
		}
		return &APIError{
			StatusCode: res.StatusCode(),
			Detail:     detail,
			RequestID:  res.Header().Get("X-Request-Id"),
		}
	}
	return nil
}
