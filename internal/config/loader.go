package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTermhack loads the puzzle configuration.
// Search order: customPath -> ~/.termlink/configs/termhack.yaml -> ./configs/termhack.yaml -> embedded default
func LoadTermhack(customPath string) (TermhackConfig, error) {
	var cfg TermhackConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("termhack.yaml"); userCfgPath != "" {
		if parsed, ok := tryLoad(userCfgPath); ok {
			return parsed, nil
		}
	}

	// Try local configs directory
	if parsed, ok := tryLoad(filepath.Join("configs", "termhack.yaml")); ok {
		return parsed, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultTermhackYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultTermhackConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads and validates an optional config file.
// Missing, unreadable or invalid files are skipped.
func tryLoad(path string) (TermhackConfig, bool) {
	var cfg TermhackConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".termlink", "configs", filename)
}

// Validate checks the configuration for values the generator cannot honor.
// All problems are reported together.
func (c TermhackConfig) Validate() error {
	var errs []error
	g, r := c.Grid, c.Rules

	if g.LinesPerColumn <= 0 {
		errs = append(errs, fmt.Errorf("grid.lines_per_column must be positive, got %d", g.LinesPerColumn))
	}
	if g.CharsPerLine <= 0 {
		errs = append(errs, fmt.Errorf("grid.chars_per_line must be positive, got %d", g.CharsPerLine))
	}
	if g.Filler == "" {
		errs = append(errs, errors.New("grid.filler must not be empty"))
	}
	if len([]rune(g.RemovedFiller)) != 1 {
		errs = append(errs, fmt.Errorf("grid.removed_filler must be a single character, got %q", g.RemovedFiller))
	}
	errs = append(errs, checkRange("grid.address_base", g.AddressBase, 0)...)
	if g.AddressStride <= 0 {
		errs = append(errs, fmt.Errorf("grid.address_stride must be positive, got %d", g.AddressStride))
	}

	if r.Attempts <= 0 {
		errs = append(errs, fmt.Errorf("rules.attempts must be positive, got %d", r.Attempts))
	}
	errs = append(errs, checkRange("rules.bracket_groups", r.BracketGroups, 0)...)
	errs = append(errs, checkRange("rules.bracket_inner", r.BracketInner, 1)...)
	if r.BracketInner.Max+2 > g.CharsPerLine {
		errs = append(errs, fmt.Errorf("rules.bracket_inner max %d does not fit a %d-char line", r.BracketInner.Max, g.CharsPerLine))
	}
	if r.PlacementRetries <= 0 {
		errs = append(errs, fmt.Errorf("rules.placement_retries must be positive, got %d", r.PlacementRetries))
	}
	if r.ResetChance < 0 || r.ResetChance > 1 {
		errs = append(errs, fmt.Errorf("rules.reset_chance must be within [0, 1], got %g", r.ResetChance))
	}
	if r.DefaultLength <= 0 || r.DefaultLength > g.CharsPerLine {
		errs = append(errs, fmt.Errorf("rules.default_length must be within [1, %d], got %d", g.CharsPerLine, r.DefaultLength))
	}

	if len(c.Difficulties) == 0 {
		errs = append(errs, errors.New("at least one difficulty is required"))
	}
	seen := make(map[string]bool)
	for i, d := range c.Difficulties {
		field := fmt.Sprintf("difficulties[%d]", i)
		if d.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name must not be empty", field))
		} else if seen[d.Name] {
			errs = append(errs, fmt.Errorf("%s: duplicate difficulty %q", field, d.Name))
		}
		seen[d.Name] = true

		errs = append(errs, checkRange(field+".word_length", d.WordLength, 1)...)
		if d.WordLength.Max > g.CharsPerLine {
			errs = append(errs, fmt.Errorf("%s.word_length max %d exceeds line width %d", field, d.WordLength.Max, g.CharsPerLine))
		}
		errs = append(errs, checkRange(field+".word_count", d.WordCount, 1)...)
		if d.WordCount.Max > g.TotalLines() {
			errs = append(errs, fmt.Errorf("%s.word_count max %d exceeds line count %d", field, d.WordCount.Max, g.TotalLines()))
		}
	}

	return errors.Join(errs...)
}

// checkRange reports an inverted range or a lower bound below floor.
func checkRange(field string, r IntRange, floor int) []error {
	var errs []error
	if r.Min > r.Max {
		errs = append(errs, fmt.Errorf("%s: min %d greater than max %d", field, r.Min, r.Max))
	}
	if r.Min < floor {
		errs = append(errs, fmt.Errorf("%s: min %d below %d", field, r.Min, floor))
	}
	return errs
}
