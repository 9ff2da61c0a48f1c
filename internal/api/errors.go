package api

import "fmt"

// RequestError reports a transport failure or a non-2xx response. Err is set
// for transport failures, StatusCode and Status otherwise.
type RequestError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	return fmt.Sprintf("API error: %s", e.Status)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// DecodeError reports a response body that does not have the expected shape.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to parse response: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
