package api

import (
	"errors"
	"fmt"
)

// Fetch failure kinds. Callers decide per call site whether a failure
// aborts the enclosing operation or only drops one item.
var (
	// ErrNetwork is returned when the request errors before a response is
	// received (DNS, connection refused, timeout, cancelled context).
	ErrNetwork = errors.New("network failure")

	// ErrBadResponse is matched by *StatusError for any non-2xx response.
	ErrBadResponse = errors.New("bad response")

	// ErrDecode is returned when a body is not valid JSON, is larger than
	// the configured limit, or does not have the expected shape.
	ErrDecode = errors.New("decode failure")

	// ErrInvalidURL is returned when a URL is not an absolute http(s) URL.
	ErrInvalidURL = errors.New("invalid URL: expected absolute http or https URL")

	// ErrInvalidProxyAddress is returned when the SOCKS5 proxy address is
	// not in "host:port" format.
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")
)

// StatusError reports a response whose status code is not 2xx.
type StatusError struct {
	URL        string
	StatusCode int
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: GET %s: status %d", ErrBadResponse, e.URL, e.StatusCode)
}

// Is makes errors.Is(err, ErrBadResponse) true for any *StatusError.
func (e *StatusError) Is(target error) bool {
	return target == ErrBadResponse
}
