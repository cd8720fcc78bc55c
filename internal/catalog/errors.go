package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError is returned when the request could not be completed or the
// catalog answered with a non-2xx status. StatusCode is 0 for transport
// failures.
type NetworkError struct {
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 && e.Err == nil {
		return fmt.Sprintf("catalog api status %d", e.StatusCode)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog api status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("catalog request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError is returned when a 2xx response body is not valid JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("catalog response is not valid JSON: %v", e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }

// IsNetwork reports whether err is (or wraps) a *NetworkError.
func IsNetwork(err error) bool {
	var e *NetworkError
	return errors.As(err, &e)
}

// IsDecode reports whether err is (or wraps) a *DecodeError.
func IsDecode(err error) bool {
	var e *DecodeError
	return errors.As(err, &e)
}

// IsNotFound reports whether err is a *NetworkError with HTTP 404.
func IsNotFound(err error) bool {
	var e *NetworkError
	return errors.As(err, &e) && e.StatusCode == http.StatusNotFound
}
