// Package config provides configuration management for geminichat.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cchalm/geminichat/internal/transport"
)

// Environment variable names
const (
	KeyAPIKey           = "GEMINI_API_KEY"
	KeyAccessToken      = "GEMINI_ACCESS_TOKEN"
	KeyModel            = "GEMINI_MODEL"
	KeyBaseURL          = "GEMINI_BASE_URL"
	KeyTimeout          = "GEMINI_TIMEOUT"
	KeySystemRole       = "SYSTEM_ROLE"
	KeyTelemetryEnabled = "TELEMETRY_ENABLED"
	KeyOTLPEndpoint     = "OTLP_ENDPOINT"
	KeyDebug            = "DEBUG"
)

// Config holds the configuration for a chat session
type Config struct {
	GeminiAPIKey      string
	GeminiAccessToken string
	Model             string
	BaseURL           string
	Timeout           time.Duration
	SystemRole        string

	TelemetryEnabled bool
	OTLPEndpoint     string

	Debug bool
}

// Load resolves configuration from, in increasing priority: defaults, a .env file in the working directory,
// environment variables, and any of flags that were explicitly set. Flags are bound by their environment variable name
// lowercased with dashes, e.g. --gemini-model binds GEMINI_MODEL.
func Load(flags *pflag.FlagSet) (Config, error) {
	// A missing .env file is normal
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault(KeyModel, transport.DefaultModel)
	v.SetDefault(KeyBaseURL, transport.DefaultBaseURL)
	v.SetDefault(KeyTimeout, transport.DefaultTimeout)
	v.SetDefault(KeyTelemetryEnabled, false)
	v.SetDefault(KeyDebug, false)

	for _, key := range []string{
		KeyAPIKey, KeyAccessToken, KeyModel, KeyBaseURL, KeyTimeout,
		KeySystemRole, KeyTelemetryEnabled, KeyOTLPEndpoint, KeyDebug,
	} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("failed to bind environment variable '%s': %w", key, err)
		}
		if flags == nil {
			continue
		}
		if f := flags.Lookup(flagName(key)); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("failed to bind flag '%s': %w", f.Name, err)
			}
		}
	}

	cfg := Config{
		GeminiAPIKey:      v.GetString(KeyAPIKey),
		GeminiAccessToken: v.GetString(KeyAccessToken),
		Model:             v.GetString(KeyModel),
		BaseURL:           v.GetString(KeyBaseURL),
		Timeout:           v.GetDuration(KeyTimeout),
		SystemRole:        v.GetString(KeySystemRole),
		TelemetryEnabled:  v.GetBool(KeyTelemetryEnabled),
		OTLPEndpoint:      v.GetString(KeyOTLPEndpoint),
		Debug:             v.GetBool(KeyDebug),
	}
	return cfg, nil
}

// Validate checks if the required configuration is present
func (c Config) Validate() error {
	if c.GeminiAPIKey == "" && c.GeminiAccessToken == "" {
		return fmt.Errorf("missing required environment variable: %s or %s", KeyAPIKey, KeyAccessToken)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("missing model: set %s", KeyModel)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%s must be positive, got %s", KeyTimeout, c.Timeout)
	}
	return nil
}

// Transport returns the transport configuration derived from c
func (c Config) Transport() transport.Config {
	return transport.Config{
		BaseURL:     c.BaseURL,
		Model:       c.Model,
		APIKey:      c.GeminiAPIKey,
		AccessToken: c.GeminiAccessToken,
		Timeout:     c.Timeout,
	}
}

func flagName(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "-")
}
