package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cchalm/geminichat/internal/config"
)

// loadConfig resolves configuration from the environment, an optional .env file and the command's flags
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
