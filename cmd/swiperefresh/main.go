package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agiangrant/swiperefresh/cmd/swiperefresh/commands"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "swiperefresh",
		Short: "Pull-to-refresh controller playground",
		Long: `swiperefresh drives a pull-to-refresh layout from the terminal.

Run the interactive demo, replay a scripted pull headlessly, or print the
configuration the layout would use.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate("swiperefresh version {{.Version}}\n")
	rootCmd.PersistentFlags().String("config", "", "Path to a TOML configuration file")

	rootCmd.AddCommand(
		commands.NewDemoCmd(),
		commands.NewSimulateCmd(),
		commands.NewConfigCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
