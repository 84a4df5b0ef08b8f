// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput means the caller supplied an empty or whitespace-only scenario.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration means the extractor cannot call the completion API,
	// typically because no credential is configured.
	ErrConfiguration = errors.New("configuration error")

	// ErrMalformedResponse means the model's text was not a usable signal object.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrInternal covers anything unexpected.
	ErrInternal = errors.New("internal error")
)

// UpstreamError reports a failed call to the completion API. Status is the
// HTTP status the API returned, or 0 when no response was received. Body is
// the raw error body.
type UpstreamError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("completion API unreachable: %v", e.Err)
	}
	return fmt.Sprintf("completion API returned %d: %s", e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Kind names a failure class at the transport boundary.
type Kind string

const (
	KindInvalidInput  Kind = "invalid_input"
	KindConfiguration Kind = "configuration_error"
	KindUpstream      Kind = "upstream_error"
	KindMalformed     Kind = "malformed_response"
	KindInternal      Kind = "internal_error"
)

// KindOf classifies err. Errors that match none of the package's failure
// classes are internal. KindOf(nil) returns "".
func KindOf(err error) Kind {
	var upErr *UpstreamError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.As(err, &upErr):
		return KindUpstream
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformed
	default:
		return KindInternal
	}
}

func malformedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}
