package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Print the configuration after --config, --difficulty and --bounded
are applied. The output is valid input for --config.

Examples:
  arcade config > my-flappy.yaml
  arcade config --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadFlappyConfig()
		if err != nil {
			return err
		}
		out, err := config.MarshalFlappy(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}
