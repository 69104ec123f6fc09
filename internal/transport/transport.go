package transport

import (
	"net/http"
)

// APIKeyTransport authenticates requests to the Generative Language API with an API key header
type APIKeyTransport struct {
	base   http.RoundTripper
	apiKey string
}

func WithAPIKey(base http.RoundTripper, apiKey string) *APIKeyTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &APIKeyTransport{base: base, apiKey: apiKey}
}

func (t *APIKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request
	req = req.Clone(req.Context())
	req.Header.Set("x-goog-api-key", t.apiKey)
	return t.base.RoundTrip(req)
}
