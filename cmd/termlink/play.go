package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/termlink/internal/core"
	"github.com/vovakirdan/termlink/internal/games/termhack"
	"github.com/vovakirdan/termlink/internal/platform/tui"
	"github.com/vovakirdan/termlink/internal/registry"
	"github.com/vovakirdan/termlink/internal/storage"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Hack a terminal",
	Long: `Start the terminal-hacking puzzle.

Controls:
  Arrows/WASD/HJKL  - Move the cursor (or the menu selection)
  Mouse             - Hover to highlight, click to submit
  Enter/Space       - Submit the word or bracket under the cursor
  R                 - New puzzle (back to the difficulty menu)
  P                 - Pause
  Ctrl+S            - Save a screenshot to ~/.termlink/screenshots
  Q/Ctrl+C          - Quit

Examples:
  termlink play
  termlink play --difficulty expert
  termlink play --seed 42 --config ./my-rules.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&flagDifficulty, "difficulty", "d", "", "Start a round at this difficulty, skipping the menu")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := checkDifficulty(cfg, flagDifficulty); err != nil {
		return err
	}
	termhack.SetDifficultyPreset(termhack.Difficulty(flagDifficulty))

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(termhack.GameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open rounds database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, rc, func(r storage.Round, err error) {
		if err != nil {
			logger.Warn("could not record round", "error", err)
		}
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}
