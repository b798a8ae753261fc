package termhack

import (
	"github.com/samber/lo"

	"github.com/vovakirdan/termlink/internal/config"
)

// Difficulty names a preset controlling word length and word count.
type Difficulty string

// Built-in difficulties. Custom configs may define others.
const (
	Novice   Difficulty = "novice"
	Advanced Difficulty = "advanced"
	Expert   Difficulty = "expert"
	Master   Difficulty = "master"
)

// Difficulties returns the configured difficulties in order.
func Difficulties(cfg config.TermhackConfig) []Difficulty {
	return lo.Map(cfg.Difficulties, func(d config.DifficultySpec, _ int) Difficulty {
		return Difficulty(d.Name)
	})
}

// Tier returns the 1-based position of d in the configured order,
// or 0 when d is unknown.
func Tier(cfg config.TermhackConfig, d Difficulty) int {
	_, idx, ok := lo.FindIndexOf(cfg.Difficulties, func(s config.DifficultySpec) bool {
		return s.Name == string(d)
	})
	if !ok {
		return 0
	}
	return idx + 1
}

// Label returns the display label for d, falling back to its name.
func Label(cfg config.TermhackConfig, d Difficulty) string {
	if s, ok := cfg.Difficulty(string(d)); ok && s.Label != "" {
		return s.Label
	}
	return string(d)
}
