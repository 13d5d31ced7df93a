package picket

import (
	"context"
	"errors"
	"strings"
	"time"

	"picketapi/internal/infrastructure/httpclient"
	"picketapi/internal/naming"
	"picketapi/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

// UseNumber keeps token balances exact.
var json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

func isSuccessfulStatusCode(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// post sends params to path and returns the parsed JSON body of a successful response.
// A body that is not JSON yields *TransportDecodeError; a JSON body with a non-2xx status
// yields *APIError.
func (c *Client) post(ctx context.Context, path string, params Params) (any, error) {
	url := c.url(path)

	body, err := json.Marshal(naming.ToWireKeys(params))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to encode request body for %s", path)
	}

	resp, err := c.http.Post(ctx, httpclient.Request{
		URL:      url,
		Body:     body,
		Headers:  c.Headers(),
		Username: c.apiKey,
	})
	if err != nil {
		return nil, err
	}

	var data any
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		c.logger.Warn("Response body is not JSON",
			zap.String("url", url),
			zap.Int("statusCode", resp.StatusCode),
			zap.ByteString("responseBody", resp.Body))
		return nil, &TransportDecodeError{StatusCode: resp.StatusCode, Body: string(resp.Body), Err: err}
	}

	if !isSuccessfulStatusCode(resp.StatusCode) {
		return nil, newAPIError(resp.StatusCode, data)
	}
	return data, nil
}

// call runs one operation end to end: post, decode, record.
func call[T any](ctx context.Context, c *Client, operation, path string, params Params, decode func(any) (*T, error)) (*T, error) {
	start := time.Now()

	var result *T
	data, err := c.post(ctx, path, params)
	if err == nil {
		result, err = decode(data)
	}

	elapsed := time.Since(start)
	outcome := outcomeOf(err)
	c.metrics.Observe(operation, outcome, elapsed)

	if err != nil {
		fields := []zap.Field{
			zap.String("operation", operation),
			zap.String("path", path),
			zap.String("outcome", outcome),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			fields = append(fields, zap.Int("statusCode", apiErr.StatusCode), zap.String("code", apiErr.Code))
		}
		c.logger.Warn("Picket API call failed", fields...)
		return nil, err
	}

	c.logger.Debug("Picket API call succeeded",
		zap.String("operation", operation),
		zap.String("path", path),
		zap.Duration("elapsed", elapsed))
	return result, nil
}

func outcomeOf(err error) string {
	var (
		apiErr       *APIError
		transportErr *TransportDecodeError
		decodeErr    *DecodeError
	)
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.As(err, &apiErr):
		return metrics.OutcomeAPIError
	case errors.As(err, &transportErr):
		return metrics.OutcomeTransportDecodeError
	case errors.As(err, &decodeErr):
		return metrics.OutcomeDecodeError
	default:
		return metrics.OutcomeTransportError
	}
}
