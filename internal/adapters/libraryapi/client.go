// Package libraryapi is the HTTP client for the remote library
// management REST API. It owns the wire formats; everything above it
// works with domain types.
package libraryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/openshelf/library-admin/internal/errors"
)

const defaultTimeout = 15 * time.Second

// Config groups construction parameters for Client.
type Config struct {
	// BaseURL is the upstream API root, e.g. "https://api.example.com/api/v1".
	BaseURL string

	// Timeout bounds each upstream call. Zero means the default.
	Timeout time.Duration

	// HTTPClient overrides the transport (tests). When set, Timeout is
	// the caller's responsibility.
	HTTPClient *http.Client

	Logger *slog.Logger
}

// Client talks to the upstream library API. It is stateless: the
// upstream session cookie is passed per call, never stored here.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a Client.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("libraryapi: base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("libraryapi: invalid base URL: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{baseURL: base, http: httpClient, logger: logger}, nil
}

// callParams groups the inputs of one upstream call.
type callParams struct {
	method string
	path   string
	query  url.Values
	cookie string // raw upstream Cookie header value; empty for public calls
	body   any    // JSON-encoded when non-nil
}

// errorBody is the upstream's error envelope. Some endpoints use
// "message", others "error"; whichever is present wins.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e errorBody) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// call performs one upstream request, decodes a 2xx body into out (when
// non-nil), and maps non-2xx responses to Upstream errors carrying the
// server's message verbatim.
func (c *Client) call(ctx context.Context, p callParams, out any) error {
	resp, err := c.send(ctx, p)
	if err != nil {
		return err
	}
	defer c.discard(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.asError(resp)
	}

	if out == nil {
		return nil
	}
	if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
		return apperrors.Wrapf(decodeErr, apperrors.ErrCodeUpstream,
			"decode %s %s response", p.method, p.path)
	}
	return nil
}

// send performs the request and returns the raw response. The caller
// owns the body.
func (c *Client) send(ctx context.Context, p callParams) (*http.Response, error) {
	var body io.Reader
	if p.body != nil {
		buf, err := json.Marshal(p.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s request: %w", p.method, p.path, err)
		}
		body = bytes.NewReader(buf)
	}

	target := c.baseURL + p.path
	if len(p.query) > 0 {
		target += "?" + p.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, p.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", p.method, p.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if p.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if p.cookie != "" {
		req.Header.Set("Cookie", p.cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeUpstream,
			"call %s %s", p.method, p.path)
	}
	return resp, nil
}

// asError reads an error response into an Upstream AppError.
func (c *Client) asError(resp *http.Response) error {
	var envelope errorBody
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		if msg := envelope.text(); msg != "" {
			return apperrors.Upstream(msg)
		}
	}
	return apperrors.Upstream(fmt.Sprintf("upstream returned %s", resp.Status))
}

// discard drains and closes a response body so connections get reused.
func (c *Client) discard(body io.ReadCloser) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		c.logger.Debug("drain response body failed", "error", err)
	}
	if err := body.Close(); err != nil {
		c.logger.Debug("close response body failed", "error", err)
	}
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("limit", fmt.Sprintf("%d", limit))
	return q
}
