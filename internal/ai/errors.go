package ai

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyQuestion     = errors.New("question is empty")
	ErrAPIRejected       = errors.New("request rejected by the API")
	ErrMalformedResponse = errors.New("malformed response")
	ErrTransport         = errors.New("transport failure")
)

// APIRejectedError is returned when the provider answers with a status other than 200
type APIRejectedError struct {
	StatusCode int
	Body       string // Response body, verbatim
	Request    string // The offending request, pretty-printed
}

func (e *APIRejectedError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", ErrAPIRejected, e.StatusCode, e.Body)
}

func (e *APIRejectedError) Unwrap() error {
	return ErrAPIRejected
}

// MalformedResponseError is returned when a 200 response does not have the expected shape
type MalformedResponseError struct {
	Body   string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMalformedResponse, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return ErrMalformedResponse
}

// TransportError wraps a network or I/O failure raised by a Transport
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", ErrTransport, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// Kind is a coarse classification of exchange failures, suitable for logs and user-facing messages
type Kind string

const (
	KindNone              Kind = ""
	KindEmptyQuestion     Kind = "empty_question"
	KindAPIRejected       Kind = "api_rejected"
	KindMalformedResponse Kind = "malformed_response"
	KindTransport         Kind = "transport"
	KindUnknown           Kind = "unknown"
)

// KindOf classifies err
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrEmptyQuestion):
		return KindEmptyQuestion
	case errors.Is(err, ErrAPIRejected):
		return KindAPIRejected
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformedResponse
	case errors.Is(err, ErrTransport):
		return KindTransport
	default:
		return KindUnknown
	}
}
