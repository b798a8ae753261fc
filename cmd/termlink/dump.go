package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/termlink/internal/games/termhack"
)

var (
	flagDumpDifficulty string
	flagDumpReveal     bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print a generated puzzle as plain text",
	Long: `Generate one puzzle and print its memory dump without starting a game.
The same --seed and rules always produce the same dump.

Examples:
  termlink dump
  termlink dump --difficulty master --seed 7
  termlink dump --seed 7 --reveal   # Mark the password`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&flagDumpDifficulty, "difficulty", "d", "", "Difficulty (default: first configured)")
	dumpCmd.Flags().BoolVar(&flagDumpReveal, "reveal", false, "Mark the password under its line and print it")
}

func runDump(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := checkDifficulty(cfg, flagDumpDifficulty); err != nil {
		return err
	}

	d := termhack.Difficulty(flagDumpDifficulty)
	if d == "" {
		d = termhack.Difficulties(cfg)[0]
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	gen, err := termhack.NewGenerator(cfg, nil, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	layout := gen.Generate(d)
	out := layout.Dump(flagDumpReveal)

	width := 0
	for _, line := range strings.Split(out, "\n") {
		width = max(width, len([]rune(line)))
	}
	fd := int(os.Stdout.Fd())
	if w, _, err := term.GetSize(fd); err == nil && w < width {
		logger.Warn("terminal narrower than the dump", "width", w, "need", width)
	}

	fmt.Printf("%s  seed %d  %d words of %d letters\n\n",
		strings.ToUpper(termhack.Label(cfg, d)), seed, len(layout.Words), layout.WordLength)
	fmt.Print(out)
	if flagDumpReveal {
		fmt.Printf("\nPassword: %s\n", layout.CorrectWord())
	}
	return nil
}
