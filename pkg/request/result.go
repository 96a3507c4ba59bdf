package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Reason used for every envelope produced by a failed dispatch.
const dispatchFailureReason = "Error"

// ErrorEnvelope is the failure side of a [Result].
//
// Code is 500 with Reason "Error" for transport, encoding and decoding failures (Extra holds the error),
// or the HTTP status for non-2xx responses (Extra holds the normalized response body).
type ErrorEnvelope struct {
	Code   int    `json:"code"`
	Reason string `json:"reason"`
	Extra  any    `json:"extra,omitempty"`
}

// Error implements error.
func (e *ErrorEnvelope) Error() string {
	if err, ok := e.Extra.(error); ok {
		return fmt.Sprintf("%d %s: %v", e.Code, e.Reason, err)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Reason)
}

// Unwrap exposes Extra when it is an error, so [errors.Is] sees through the envelope.
func (e *ErrorEnvelope) Unwrap() error {
	if err, ok := e.Extra.(error); ok {
		return err
	}
	return nil
}

// MarshalJSON renders Extra as its message when it is an error, since most error values have no exported fields.
func (e *ErrorEnvelope) MarshalJSON() ([]byte, error) {
	type envelope ErrorEnvelope
	out := envelope(*e)
	if err, ok := e.Extra.(error); ok {
		out.Extra = err.Error()
	}
	return json.Marshal(out)
}

// NewFailure wraps err in the generic 500 envelope.
func NewFailure(err error) *ErrorEnvelope {
	return &ErrorEnvelope{Code: http.StatusInternalServerError, Reason: dispatchFailureReason, Extra: err}
}

// Result holds either a decoded success value or an [ErrorEnvelope], never both.
type Result[T any] struct {
	Value T
	Err   *ErrorEnvelope
}

// Ok wraps a success value.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail wraps an envelope.
func Fail[T any](env *ErrorEnvelope) Result[T] {
	return Result[T]{Err: env}
}

// OK reports whether the result is a success.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Unwrap returns the value, or the zero value and the envelope as an error.
func (r Result[T]) Unwrap() (T, error) {
	if r.Err != nil {
		var zero T
		return zero, r.Err
	}
	return r.Value, nil
}

// Convert re-decodes a normalized JSON tree into T.
//
// Failures are reported as the generic 500 envelope. An envelope on r is carried over unchanged.
func Convert[T any](r Result[any]) Result[T] {
	if r.Err != nil {
		return Fail[T](r.Err)
	}

	if v, ok := r.Value.(T); ok {
		return Ok(v)
	}

	var out T
	if r.Value == nil {
		return Ok(out)
	}

	data, err := json.Marshal(r.Value)
	if err != nil {
		return Fail[T](NewFailure(fmt.Errorf("failed to encode response: %w", err)))
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return Fail[T](NewFailure(fmt.Errorf("failed to decode response: %w", err)))
	}
	return Ok(out)
}

// AsEnvelope extracts an [ErrorEnvelope] from err, if any.
func AsEnvelope(err error) (*ErrorEnvelope, bool) {
	var env *ErrorEnvelope
	if errors.As(err, &env) {
		return env, true
	}
	return nil, false
}
