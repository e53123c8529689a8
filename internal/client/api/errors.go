package api

import (
	"errors"
	"fmt"
)

var (
	ErrTimeout = errors.New("request timeout")
	ErrHTTP    = errors.New("http error")
	ErrUnknown = errors.New("unknown error")
)

// TimeoutError is returned when the configured timeout elapses before the
// response has been read.
type TimeoutError struct{}

func (e *TimeoutError) Error() string { return "Request timeout" }

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	Status     int
	StatusText string
	// Message is the text shown to the user (see Error).
	Message string
	// Code is an optional machine-readable code from the error body.
	Code string
}

func (e *HTTPError) Error() string { return e.Message }

func (e *HTTPError) Is(target error) bool { return target == ErrHTTP }

// UnknownError wraps any other transport failure: DNS, refused
// connections, caller cancellation, unencodable bodies.
type UnknownError struct {
	Err error
}

func (e *UnknownError) Error() string {
	if e.Err == nil {
		return "Network request failed"
	}
	return fmt.Sprintf("Network request failed: %v", e.Err)
}

func (e *UnknownError) Unwrap() error { return e.Err }

func (e *UnknownError) Is(target error) bool { return target == ErrUnknown }
