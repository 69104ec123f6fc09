// Package ai maintains a multi-turn conversation with the Gemini generateContent API: it turns the conversation into
// request payloads, validates responses and folds them back into the conversation history.
package ai

import "context"

// Transport submits a serialized request payload and returns the response status and body. Implementations make a
// single attempt. A non-nil error means no status was obtained.
type Transport interface {
	Post(ctx context.Context, payload []byte) (statusCode int, body string, err error)
}

// Interaction is the result of one successful exchange
type Interaction struct {
	RequestText  string // Pretty-printed request payload
	ResponseText string // Raw response body
	Answer       string // Text of the first part of the first candidate
}
