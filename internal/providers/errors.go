package providers

import (
	"errors"
	"fmt"
)

// UpstreamUnavailableError captures transport failures and non-success
// responses from the upstream feed. It is the only error kind the retrying
// decorator considers transient.
type UpstreamUnavailableError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *UpstreamUnavailableError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s upstream unavailable (status=%d)", e.Provider, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s upstream unavailable: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s upstream unavailable", e.Provider)
}

func (e *UpstreamUnavailableError) Unwrap() error {
	return e.Err
}

// AsUpstreamUnavailable attempts to unwrap an error into an UpstreamUnavailableError.
func AsUpstreamUnavailable(err error) (*UpstreamUnavailableError, bool) {
	var uuErr *UpstreamUnavailableError
	if errors.As(err, &uuErr) {
		return uuErr, true
	}
	return nil, false
}

// UpstreamMalformedError reports a response body that could not be decoded
// into the expected envelope shape. Mis-parsing silently is worse than
// failing, so this is surfaced as a hard, non-retried failure.
type UpstreamMalformedError struct {
	Provider string
	Err      error
}

func (e *UpstreamMalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s upstream response malformed: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s upstream response malformed", e.Provider)
}

func (e *UpstreamMalformedError) Unwrap() error {
	return e.Err
}

// AsUpstreamMalformed attempts to unwrap an error into an UpstreamMalformedError.
func AsUpstreamMalformed(err error) (*UpstreamMalformedError, bool) {
	var umErr *UpstreamMalformedError
	if errors.As(err, &umErr) {
		return umErr, true
	}
	return nil, false
}
