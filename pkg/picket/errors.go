package picket

import (
	"errors"
	"fmt"
)

var errMissingField = errors.New("missing required field")

// APIError is returned when the API answers with a JSON body and a non-2xx status.
type APIError struct {
	Message    string `json:"msg"`
	Code       string `json:"code"`
	StatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

// TransportDecodeError is returned when the response body is not valid JSON,
// whatever the status code. Error returns the raw body text.
type TransportDecodeError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportDecodeError) Error() string {
	return e.Body
}

func (e *TransportDecodeError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a successful response lacks a field the result type needs,
// or carries a value of the wrong shape.
type DecodeError struct {
	Type  string
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("picket: decode %s: field %q: %v", e.Type, e.Field, e.Err)
	}
	return fmt.Sprintf("picket: decode %s: %v", e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func newAPIError(statusCode int, body any) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if obj, ok := body.(map[string]any); ok {
		apiErr.Message = stringField(obj, "msg")
		apiErr.Code = stringField(obj, "code")
	}
	return apiErr
}

func stringField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
