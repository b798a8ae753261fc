package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/termlink/internal/config"
	"github.com/vovakirdan/termlink/internal/games/termhack"
	"github.com/vovakirdan/termlink/internal/platform/tui"
	"github.com/vovakirdan/termlink/internal/storage"
)

var (
	flagScoresPlain  bool
	flagScoresMode   string
	flagScoresPlayer string
	flagScoresClear  bool
	flagScoresLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and statistics",
	Long: `Display the best won rounds and per-difficulty statistics.

On a terminal the interactive scoreboard opens; use --plain (or pipe
the output) for a text listing.

Examples:
  termlink scores
  termlink scores --plain --difficulty expert
  termlink scores --plain --player alice
  termlink scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print a text listing instead of the interactive scoreboard")
	scoresCmd.Flags().StringVarP(&flagScoresMode, "difficulty", "d", "", "Only show this difficulty")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Show recent rounds of this player")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded rounds")
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of rounds to list")
}

func runScores(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := checkDifficulty(cfg, flagScoresMode); err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRounds(termhack.GameID); err != nil {
			return err
		}
		fmt.Println("All rounds deleted.")
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !flagScoresPlain && flagScoresPlayer == "" && term.IsTerminal(fd) {
		width, height, err := term.GetSize(fd)
		if err != nil {
			width, height = 80, 24
		}
		return tui.RunScoreboard(store, termhack.GameID, cfg.Difficulties, width, height)
	}

	if flagScoresPlayer != "" {
		return printPlayerRounds(store, flagScoresPlayer)
	}
	return printScores(store, cfg)
}

func printScores(store *storage.Store, cfg config.TermhackConfig) error {
	rounds, err := store.TopRounds(termhack.GameID, flagScoresMode, flagScoresLimit)
	if err != nil {
		return err
	}

	title := "All difficulties"
	if flagScoresMode != "" {
		title = termhack.Label(cfg, termhack.Difficulty(flagScoresMode))
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No terminals cracked yet.")
		fmt.Println()
		fmt.Println("Play 'termlink play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-9s  %-6s  %-7s  %s\n", "Rank", "Player", "Mode", "Score", "Guesses", "Date")
	fmt.Printf("  %-4s  %-12s  %-9s  %-6s  %-7s  %s\n", "----", "------", "----", "-----", "-------", "----")
	for i, r := range rounds {
		fmt.Printf("  %-4d  %-12s  %-9s  %-6d  %-7d  %s\n",
			i+1, r.Player, r.Mode, r.Score, r.Moves, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if high, err := store.HighScore(termhack.GameID, flagScoresMode); err == nil {
		fmt.Printf("Best: %d\n", high)
	}

	stats, err := store.StatsByMode(termhack.GameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("  %-9s  %-6s  %-4s  %-5s  %s\n", "Mode", "Played", "Won", "Rate", "Avg guesses")
	for _, d := range cfg.Difficulties {
		s, ok := stats[d.Name]
		if !ok {
			continue
		}
		fmt.Printf("  %-9s  %-6d  %-4d  %3.0f%%  %.1f\n", d.Name, s.Played, s.Won, s.WinRate()*100, s.AvgMoves)
	}
	return nil
}

func printPlayerRounds(store *storage.Store, player string) error {
	rounds, err := store.PlayerRounds(player, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Recent rounds - %s\n", player)
	fmt.Println()
	if len(rounds) == 0 {
		fmt.Println("No rounds recorded.")
		return nil
	}

	for _, r := range rounds {
		outcome := "LOCKED"
		if r.Won {
			outcome = "GRANTED"
		}
		fmt.Printf("  %s  %-9s  %-7s  %5d pts  %d guesses\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Mode, outcome, r.Score, r.Moves)
	}
	return nil
}
