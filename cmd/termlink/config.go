package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/termlink/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective rules as YAML",
	Long: `Print the rules the game would use after applying the search order:
--config, ~/.termlink/configs/termhack.yaml, ./configs/termhack.yaml,
then the built-in defaults. Redirect the output to start a custom file.

Examples:
  termlink config > ~/.termlink/configs/termhack.yaml
  termlink config --defaults`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults, ignoring config files")
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := config.DefaultTermhackConfig()
	if !flagConfigDefaults {
		var err error
		if cfg, err = loadConfig(); err != nil {
			return err
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot encode rules: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
