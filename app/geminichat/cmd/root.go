package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cchalm/geminichat/internal/config"
	"github.com/cchalm/geminichat/internal/transport"
)

var rootCmd = &cobra.Command{
	Use:   "geminichat",
	Short: "Hold a multi-turn conversation with a Gemini model",
	Long: `geminichat keeps a conversation with a Gemini model over the generateContent API.
The system role is chosen once, before the first question, and stays fixed for the
rest of the conversation.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("gemini-model", transport.DefaultModel, "Gemini model name ("+config.KeyModel+")")
	flags.String("gemini-base-url", transport.DefaultBaseURL, "Generative Language API base URL ("+config.KeyBaseURL+")")
	flags.Duration("gemini-timeout", transport.DefaultTimeout, "Timeout for a single request ("+config.KeyTimeout+")")
	flags.Bool("telemetry-enabled", false, "Export traces over OTLP/HTTP ("+config.KeyTelemetryEnabled+")")
	flags.String("otlp-endpoint", "", "OTLP/HTTP traces endpoint URL ("+config.KeyOTLPEndpoint+")")
	flags.Bool("debug", false, "Enable debug logging ("+config.KeyDebug+")")
}
