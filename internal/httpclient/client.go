package httpclient

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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"userhub/internal/logging"
)

type Client struct {
	baseURL *url.URL
	client  *http.Client
	logger  logging.Logger
}

// New creates an instrumented JSON client.
// baseURL should be like "http://localhost:3000" (no trailing slash).
func New(baseURL string, timeout time.Duration, logger logging.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse baseURL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parse baseURL: %q is not an absolute URL", baseURL)
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &loggingTransport{
			next:   otelhttp.NewTransport(http.DefaultTransport),
			logger: logger,
		},
	}

	return &Client{
		baseURL: u,
		client:  httpClient,
		logger:  logger,
	}, nil
}

// loggingTransport logs every outgoing request before it is dispatched.
type loggingTransport struct {
	next   http.RoundTripper
	logger logging.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.logger.Info(fmt.Sprintf("Making %s request to %s", strings.ToUpper(req.Method), req.URL.Path),
		"method", req.Method,
		"url", req.URL.String(),
	)
	return t.next.RoundTrip(req)
}

// buildURL joins the base URL with a relative path and optional query parameters.
func (c *Client) buildURL(path string, query url.Values) (string, error) {
	rel, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse path: %w", err)
	}

	u := c.baseURL.ResolveReference(rel)
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// Do sends payload (when non-nil) as JSON and decodes a JSON response into out
// (when non-nil). Every returned error is an *APIError.
func (c *Client) Do(ctx context.Context, method, path string, payload any, out any) error {
	urlStr, err := c.buildURL(path, nil)
	if err != nil {
		return clientFailure(err)
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return clientFailure(fmt.Errorf("marshal payload: %w", err))
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, body)
	if err != nil {
		return clientFailure(fmt.Errorf("new request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("Network Error", "method", method, "path", path, "error", err)
		return networkFailure(err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return clientFailure(fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode >= 400 {
		apiErr := serverFailure(resp.StatusCode, respBody)
		c.logger.Error("API Error",
			"status", resp.StatusCode,
			"method", method,
			"path", path,
			"message", apiErr.Message,
		)
		return apiErr
	}

	if len(respBody) == 0 || out == nil {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return clientFailure(fmt.Errorf("unmarshal body: %w", err))
	}

	return nil
}

// GetJSON performs a GET and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// PostJSON sends a JSON body and decodes a JSON response into out.
func (c *Client) PostJSON(ctx context.Context, path string, payload any, out any) error {
	return c.Do(ctx, http.MethodPost, path, payload, out)
}

// PutJSON sends a JSON body and decodes a JSON response into out.
func (c *Client) PutJSON(ctx context.Context, path string, payload any, out any) error {
	return c.Do(ctx, http.MethodPut, path, payload, out)
}

// DeleteJSON performs a DELETE and decodes the JSON response into out.
func (c *Client) DeleteJSON(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}
