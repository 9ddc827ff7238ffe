package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/xmidt-org/httpaux/roundtrip"
	"go.uber.org/zap"

	"github.com/vesselfinder/client-go/internal/apierrors"
)

// DefaultBaseURL is the public VesselFinder API endpoint.
const DefaultBaseURL = "https://api.vesselfinder.com"

// ErrorModeStatus is the status code the server uses for application
// errors when error mode is requested.
const ErrorModeStatus = http.StatusConflict

// Client is the HTTP API client. It holds no per-call state and is safe
// for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	errorMode  bool
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures the API client.
type Option func(*Client)

// WithBaseURL sets the base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithErrorMode asks the server to report application errors with a 409
// status instead of embedding them in the payload.
func WithErrorMode(enabled bool) Option {
	return func(c *Client) {
		c.errorMode = enabled
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a new API client.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, apierrors.ErrMissingAPIKey
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	// Copy so the caller's client is never modified.
	hc := *c.httpClient
	hc.Transport = logTransport(c.logger, hc.Transport)
	c.httpClient = &hc

	return c, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ErrorMode reports whether error mode is enabled.
func (c *Client) ErrorMode() bool {
	return c.errorMode
}

func (c *Client) url(resource string) string {
	return c.baseURL + "/" + resource
}

// logTransport wraps next with debug logging. The query string is never
// logged because it carries the API key.
func logTransport(logger *zap.Logger, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return roundtrip.Func(func(req *http.Request) (*http.Response, error) {
		start := time.Now()
		resp, err := next.RoundTrip(req)

		fields := []zap.Field{
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.String("request_id", req.Header.Get(HeaderRequestID)),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			logger.Debug("vesselfinder request failed", append(fields, zap.Error(err))...)
			return resp, err
		}

		logger.Debug("vesselfinder request", append(fields, zap.Int("status", resp.StatusCode))...)
		return resp, nil
	})
}
