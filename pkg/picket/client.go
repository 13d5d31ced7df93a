package picket

import (
	"strings"
	"time"

	"picketapi/internal/infrastructure/httpclient"
	"picketapi/pkg/config"
	"picketapi/pkg/metrics"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// APIVersion is the API version the client speaks.
	APIVersion = "v1"
	// DefaultBaseURL is the production endpoint.
	DefaultBaseURL = "https://picketapi.com/api/" + APIVersion
	// DefaultUserAgent identifies this client to the API.
	DefaultUserAgent = "Picket Go Client"
)

// ErrMissingAPIKey is returned by New when no API key is given.
var ErrMissingAPIKey = errors.New("picket: api key is required")

// Client talks to the Picket API. It is immutable after construction and safe for concurrent use.
type Client struct {
	apiKey    string
	baseURL   string
	userAgent string
	http      *httpclient.Client
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

type options struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL points the client at another endpoint, e.g. a staging or test server.
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(o *options) { o.userAgent = userAgent }
}

// WithTimeout sets the timeout used for calls whose context has no deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) { o.timeout = timeout }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics records every call in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// New creates a Client authenticating with apiKey.
func New(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	o := options{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		timeout:   httpclient.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.baseURL == "" {
		o.baseURL = DefaultBaseURL
	}
	if o.userAgent == "" {
		o.userAgent = DefaultUserAgent
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	logger := o.logger.Named("picket")
	return &Client{
		apiKey:    apiKey,
		baseURL:   strings.TrimRight(o.baseURL, "/"),
		userAgent: o.userAgent,
		http:      httpclient.NewClient(o.timeout, logger),
		logger:    logger,
		metrics:   o.metrics,
	}, nil
}

// NewFromConfig creates a Client from loaded configuration. opts are applied after the
// configuration, so they take precedence.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("picket: nil config")
	}

	base := []Option{
		WithBaseURL(cfg.BaseURL),
		WithUserAgent(cfg.UserAgent),
		WithTimeout(cfg.RequestTimeout()),
	}
	if cfg.Logging.Level != "" {
		logger, err := cfg.Logging.Build()
		if err != nil {
			return nil, errors.Wrap(err, "picket: failed to build logger")
		}
		base = append(base, WithLogger(logger))
	}

	return New(cfg.APIKey, append(base, opts...)...)
}

// BaseURL returns the endpoint requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Headers returns the fixed headers sent with every request.
func (c *Client) Headers() map[string]string {
	return map[string]string{
		"User-Agent":   c.userAgent,
		"Content-Type": "application/json",
	}
}
