package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netatlas/netatlas/internal/config"
)

var initConfigPath string

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write a starter configuration file with the built-in defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.WriteDefault(initConfigPath); err != nil {
			return err
		}
		fmt.Printf("Wrote default configuration to %s\n", initConfigPath)
		return nil
	},
}

func init() {
	initConfigCmd.Flags().StringVar(&initConfigPath, "path", "netatlas.yaml", "Where to write the configuration file")
}
