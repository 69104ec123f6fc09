// Package transport posts generateContent requests to the Gemini HTTP API.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 60 * time.Second
)

// Config holds the endpoint and credentials for a Client. Exactly one of APIKey and AccessToken is expected; the API
// key wins if both are set.
type Config struct {
	BaseURL     string
	Model       string
	APIKey      string
	AccessToken string // OAuth2 bearer token
	Timeout     time.Duration
}

// Client sends serialized payloads to the generateContent endpoint of one model. It makes exactly one attempt per call.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// New creates a Client from cfg
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("model is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL '%s'", cfg.BaseURL)
	}
	endpoint := base.JoinPath("v1beta", "models", cfg.Model+":generateContent").String()

	var httpClient *http.Client
	switch {
	case cfg.APIKey != "":
		httpClient = &http.Client{Transport: WithAPIKey(nil, cfg.APIKey)}
	case cfg.AccessToken != "":
		tokenSource := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cfg.AccessToken},
		)
		httpClient = oauth2.NewClient(ctx, tokenSource)
	default:
		return nil, fmt.Errorf("either an API key or an access token is required")
	}
	httpClient.Timeout = cfg.Timeout

	return NewWithHTTPClient(httpClient, endpoint), nil
}

// NewWithHTTPClient creates a Client that posts to endpoint using httpClient as-is
func NewWithHTTPClient(httpClient *http.Client, endpoint string) *Client {
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
	}
}

// Endpoint returns the URL requests are posted to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Post sends payload and returns the response status and body. The body is returned verbatim regardless of status.
func (c *Client) Post(ctx context.Context, payload []byte) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, string(body), nil
}
