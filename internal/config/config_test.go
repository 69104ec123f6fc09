package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/cchalm/geminichat/internal/transport"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		KeyAPIKey, KeyAccessToken, KeyModel, KeyBaseURL, KeyTimeout,
		KeySystemRole, KeyTelemetryEnabled, KeyOTLPEndpoint, KeyDebug,
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	require.Equal(t, transport.DefaultModel, cfg.Model)
	require.Equal(t, transport.DefaultBaseURL, cfg.BaseURL)
	require.Equal(t, transport.DefaultTimeout, cfg.Timeout)
	require.False(t, cfg.TelemetryEnabled)
	require.False(t, cfg.Debug)
	require.Empty(t, cfg.SystemRole)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(KeyAPIKey, "key")
	t.Setenv(KeyModel, "gemini-pro")
	t.Setenv(KeyTimeout, "15s")
	t.Setenv(KeySystemRole, "You are a pirate.")
	t.Setenv(KeyTelemetryEnabled, "true")

	cfg, err := Load(nil)
	require.NoError(t, err)

	require.Equal(t, "key", cfg.GeminiAPIKey)
	require.Equal(t, "gemini-pro", cfg.Model)
	require.Equal(t, 15*time.Second, cfg.Timeout)
	require.Equal(t, "You are a pirate.", cfg.SystemRole)
	require.True(t, cfg.TelemetryEnabled)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FlagOverridesEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(KeyModel, "from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("gemini-model", "", "")
	require.NoError(t, flags.Parse([]string{"--gemini-model=from-flag"}))

	cfg, err := Load(flags)
	require.NoError(t, err)
	require.Equal(t, "from-flag", cfg.Model)
}

func TestLoad_UnsetFlagDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(KeyModel, "from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("gemini-model", "", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(flags)
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.Model)
}

func TestValidate(t *testing.T) {
	valid := Config{GeminiAPIKey: "k", Model: "m", Timeout: time.Second}
	require.NoError(t, valid.Validate())

	withToken := valid
	withToken.GeminiAPIKey = ""
	withToken.GeminiAccessToken = "t"
	require.NoError(t, withToken.Validate())

	noCredentials := valid
	noCredentials.GeminiAPIKey = ""
	require.Error(t, noCredentials.Validate())

	noModel := valid
	noModel.Model = " "
	require.Error(t, noModel.Validate())

	noTimeout := valid
	noTimeout.Timeout = 0
	require.Error(t, noTimeout.Validate())
}
