package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var difficultiesCmd = &cobra.Command{
	Use:   "difficulties",
	Short: "List the configured difficulties",
	Long:  `Shows each difficulty with its word length and word count ranges.`,
	Args:  cobra.NoArgs,
	RunE:  runDifficulties,
}

func runDifficulties(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(cfg.Difficulties) == 0 {
		fmt.Println("No difficulties configured.")
		return nil
	}

	maxNameLen := 4 // "Name" header
	for _, d := range cfg.Difficulties {
		maxNameLen = max(maxNameLen, len(d.Name))
	}

	fmt.Printf("  %-*s  %-9s  %-7s  %s\n", maxNameLen, "Name", "Label", "Letters", "Words")
	fmt.Printf("  %-*s  %-9s  %-7s  %s\n", maxNameLen, "----", "-----", "-------", "-----")
	for _, d := range cfg.Difficulties {
		fmt.Printf("  %-*s  %-9s  %-7s  %s\n", maxNameLen, d.Name, d.Label, d.WordLength, d.WordCount)
	}

	fmt.Println()
	fmt.Println("Run 'termlink play --difficulty <name>' to start directly.")
	return nil
}
