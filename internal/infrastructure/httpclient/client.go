package httpclient

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// DefaultTimeout is used when the caller's context carries no deadline.
const DefaultTimeout = 10 * time.Second

// Request describes a single outbound POST.
type Request struct {
	URL      string
	Body     []byte
	Headers  map[string]string
	Username string
	Password string
}

// Response is the raw outcome of a request. Body is owned by the caller.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client sends requests over fasthttp.
type Client struct {
	client  *fasthttp.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient creates a new Client. A zero timeout falls back to DefaultTimeout, a nil logger to a no-op one.
func NewClient(timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		client: &fasthttp.Client{
			NoDefaultUserAgentHeader: true,
			// paths arrive already escaped
			DisablePathNormalizing: true,
		},
		timeout: timeout,
		logger:  logger.Named("http"),
	}
}

// Timeout returns the fallback timeout applied to requests.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Post sends r as a POST and returns the status code and a copy of the response body.
func (c *Client) Post(ctx context.Context, r Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrapf(err, "request to %s not sent", r.URL)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(r.URL)
	req.Header.SetMethod(fasthttp.MethodPost)
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	if r.Username != "" || r.Password != "" {
		req.Header.Set(fasthttp.HeaderAuthorization, BasicAuth(r.Username, r.Password))
	}
	req.SetBody(r.Body)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	c.logger.Debug("Sending request", zap.String("url", r.URL), zap.Int("bodySize", len(r.Body)))

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Failed to execute request", zap.String("url", r.URL), zap.Error(err))
			return nil, errors.Wrapf(err, "failed to execute request to %s", r.URL)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Error("Failed to execute request (with default timeout)", zap.String("url", r.URL), zap.Duration("timeout", c.timeout), zap.Error(err))
			return nil, errors.Wrapf(err, "failed to execute request to %s with default timeout", r.URL)
		}
	}

	body := append([]byte(nil), resp.Body()...)
	c.logger.Debug("Received response",
		zap.String("url", r.URL),
		zap.Int("statusCode", resp.StatusCode()),
		zap.Int("bodySize", len(body)))

	return &Response{StatusCode: resp.StatusCode(), Body: body}, nil
}

// BasicAuth renders the value of an HTTP Basic Authorization header.
func BasicAuth(username, password string) string {
	var b strings.Builder
	b.WriteString("Basic ")
	b.WriteString(base64.StdEncoding.EncodeToString([]byte(username + ":" + password)))
	return b.String()
}
