package pos

import (
	"fmt"
	"time"
)

// TimeoutError reports that a dispatch was aborted after the configured timeout.
type TimeoutError struct {
	Endpoint string
	Timeout  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("pos dispatch to %s timed out after %s", e.Endpoint, e.Timeout)
}

// HTTPStatusError reports a non-2xx response from the remote POS endpoint.
type HTTPStatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("pos endpoint %s returned status %d", e.Endpoint, e.StatusCode)
}

// NetworkError reports a transport-level failure reaching the POS endpoint.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("pos endpoint %s unreachable: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
