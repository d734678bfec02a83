// Package client implements HTTP communication with the remote finance API.
// This file provides the transport core: request construction, bearer
// credential attachment, outbound throttling, and the classification of
// every transport or protocol failure into the canonical error taxonomy
// before it can reach a caller.
package client

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

	"golang.org/x/time/rate"

	"github.com/centavo-app/centavo/internal/apierr"
	"github.com/centavo-app/centavo/internal/errdefs"
	"github.com/centavo-app/centavo/internal/logging"
)

const (
	// DefaultTimeout bounds one boundary exchange end to end.
	DefaultTimeout = 15 * time.Second

	// maxResponseBytes caps how much of a response body is read. Failure
	// bodies are small; anything larger is not worth classifying.
	maxResponseBytes = 1 << 20

	userAgent = "Centavo-Gateway/1.0"
)

// Config is the explicit client configuration. It is a plain value passed to
// New rather than a process-wide singleton, so tests can point a client at a
// mock transport without touching shared state.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// RequestsPerSecond throttles outbound traffic to the remote API; zero
	// disables the limiter.
	RequestsPerSecond float64
	Burst             int
}

// Client talks to the remote finance API. It holds no per-user state: the
// bearer credential is an argument on every call, derived by the caller from
// the per-request cookie jar.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	limiter    *rate.Limiter
	log        *logging.Logger
}

// New creates a client for the configured base URL.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base URL must use http or https, got %q", base.Scheme)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConnsPerHost: 2,
			},
		},
		baseURL: base,
		limiter: limiter,
		log:     logging.GetClientLogger(),
	}, nil
}

// do executes one JSON exchange against the remote API. On any failure it
// returns a taxonomy-classified error; raw transport errors never escape.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, payload, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return errdefs.ErrGatewayTimeout.Wrapf(err, "request throttled past deadline")
		}
	}

	req, err := c.newRequest(ctx, method, path, token, query, payload)
	if err != nil {
		return errdefs.ErrInternal.Wrapf(err, "failed to create request")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errdefs.ErrServiceUnavailable.Wrapf(err, "failed to read response body")
	}

	c.log.Debug("api request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode >= 400 {
		return apierr.FromResponse(resp.StatusCode, body)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errdefs.ErrInternal.Wrapf(err, "failed to parse response body")
	}
	return nil
}

// newRequest builds the outbound request with standard headers and, when a
// session credential is present, the bearer authorization header.
func (c *Client) newRequest(ctx context.Context, method, path, token string, query url.Values, payload any) (*http.Request, error) {
	rel, err := url.Parse(path)
	if err != nil {
		return nil, err
	}
	target := c.baseURL.ResolveReference(rel)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// classifyTransportError maps request-execution failures onto the taxonomy:
// deadline overruns become gateway timeouts, everything else an unavailable
// backend.
func (c *Client) classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errdefs.ErrGatewayTimeout.Wrapf(err, "request timed out")
	}
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return errdefs.ErrGatewayTimeout.Wrapf(err, "request timed out")
	}
	return errdefs.ErrServiceUnavailable.Wrapf(err, "request failed")
}
