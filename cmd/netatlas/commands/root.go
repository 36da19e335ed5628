package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/netatlas/netatlas/internal/logging"
)

const Version = "0.1.0"

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "netatlas",
	Short: "NetAtlas - Cloud Network Topology Mapping",
	Long: `NetAtlas ingests flat cloud network topology graphs and reshapes them into
a containment hierarchy (network -> subnet -> resource) annotated with observed
traffic and allowed-but-unused permission gaps.`,
	Version: Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level (debug, info, warn, error, fatal)")

	// Add subcommands
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(mockCmd)
	rootCmd.AddCommand(initConfigCmd)
}

// HandleError prints error and exits
func HandleError(err error, msg string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
		os.Exit(1)
	}
}

// setupLog initializes the logging system
func setupLog(level string) error {
	return logging.Initialize(level)
}
