// termlink is a terminal-hacking password puzzle for the terminal.
//
// Usage:
//
//	termlink play                 - Hack a terminal (difficulty menu)
//	termlink play -d expert       - Start an expert round directly
//	termlink serve                - Start SSH server for remote play
//	termlink scores               - Show the scoreboard
//	termlink difficulties         - List configured difficulties
//	termlink dump                 - Print a generated puzzle as text
//	termlink config               - Print the effective rules as YAML
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 30)
//	--seed <value>      - Set RNG seed for reproducible puzzles
//	--db <path>         - Set database path (default: ~/.termlink/rounds.db)
//	--config <path>     - Use a custom rules file
//	--log-level <level> - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/termlink/internal/config"
	"github.com/vovakirdan/termlink/internal/games/termhack"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "termlink"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "termlink",
	Short: "Termlink - Hack terminals in your terminal",
	Long: `Termlink is a password-guessing puzzle played on a simulated
terminal memory dump. Pick a word, read its likeness to the password,
and use bracket pairs to remove duds or restore your attempts.

Available commands:
  play          - Hack a terminal
  serve         - Start SSH server for remote play
  scores        - View high scores and statistics
  difficulties  - Show the configured difficulties
  dump          - Print a generated puzzle as plain text
  config        - Print the effective rules

Examples:
  termlink play
  termlink play --difficulty master
  termlink serve --ssh :2222
  termlink dump --difficulty expert --seed 42 --reveal`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(level)
		termhack.SetConfigPath(flagConfig)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.termlink/rounds.db", "Path to rounds database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(difficultiesCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig returns the effective rules for this invocation.
func loadConfig() (config.TermhackConfig, error) {
	cfg, err := config.LoadTermhack(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("cannot load rules: %w", err)
	}
	return cfg, nil
}

// checkDifficulty rejects names the rules do not define. Empty is allowed.
func checkDifficulty(cfg config.TermhackConfig, name string) error {
	if name == "" {
		return nil
	}
	if _, ok := cfg.Difficulty(name); !ok {
		return fmt.Errorf("unknown difficulty %q (want one of %v)", name, cfg.DifficultyNames())
	}
	return nil
}
