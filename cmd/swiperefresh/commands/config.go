package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agiangrant/swiperefresh"
)

// loadConfig reads the file named by --config, or returns the defaults.
func loadConfig(cmd *cobra.Command) (swiperefresh.Config, string, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return swiperefresh.DefaultConfig(), "", nil
	}
	cfg, err := swiperefresh.LoadConfig(path)
	if err != nil {
		return swiperefresh.Config{}, path, fmt.Errorf("load config: %w", err)
	}
	return cfg, path, nil
}

// NewConfigCmd prints the effective configuration as TOML.
func NewConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration the layout would run with.

Without --config this is the platform default, which makes a good starting
point for a configuration file:

  swiperefresh config > swiperefresh.toml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := cfg.Encode()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
