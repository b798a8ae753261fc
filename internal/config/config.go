// Package config provides YAML-based game configuration loading and
// validation for the terminal-hacking puzzle.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// TermhackConfig contains all configuration for the terminal-hacking puzzle.
type TermhackConfig struct {
	Grid         GridConfig       `yaml:"grid"`
	Rules        RulesConfig      `yaml:"rules"`
	Difficulties []DifficultySpec `yaml:"difficulties"`
}

// GridConfig defines the shape and noise of the memory dump.
type GridConfig struct {
	LinesPerColumn int      `yaml:"lines_per_column"`
	CharsPerLine   int      `yaml:"chars_per_line"`
	Filler         string   `yaml:"filler"`         // Noise alphabet
	RemovedFiller  string   `yaml:"removed_filler"` // Replaces the letters of a removed dud
	AddressBase    IntRange `yaml:"address_base"`   // First line address is drawn from this range
	AddressStride  int      `yaml:"address_stride"`
}

// RulesConfig defines attempts and bracket-trick parameters.
type RulesConfig struct {
	Attempts         int      `yaml:"attempts"`
	BracketGroups    IntRange `yaml:"bracket_groups"`
	BracketInner     IntRange `yaml:"bracket_inner"`
	PlacementRetries int      `yaml:"placement_retries"`
	ResetChance      float64  `yaml:"reset_chance"` // Chance a bracket trick resets attempts instead of removing a dud
	DefaultLength    int      `yaml:"default_length"`
}

// DifficultySpec maps a difficulty name to its word length and word count.
type DifficultySpec struct {
	Name       string   `yaml:"name"`
	Label      string   `yaml:"label"`
	WordLength IntRange `yaml:"word_length"`
	WordCount  IntRange `yaml:"word_count"`
}

// IntRange is an inclusive integer range. In YAML it is written either as a
// single value (fixed) or as a two-item sequence [min, max].
type IntRange struct {
	Min int
	Max int
}

// Fixed returns a range containing exactly n.
func Fixed(n int) IntRange {
	return IntRange{Min: n, Max: n}
}

// Span returns the inclusive range [lo, hi].
func Span(lo, hi int) IntRange {
	return IntRange{Min: lo, Max: hi}
}

// IsFixed reports whether the range holds a single value.
func (r IntRange) IsFixed() bool {
	return r.Min == r.Max
}

// Contains reports whether n lies within the range.
func (r IntRange) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// String formats the range as "n" or "min-max".
func (r IntRange) String() string {
	if r.IsFixed() {
		return fmt.Sprintf("%d", r.Min)
	}
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// UnmarshalYAML accepts a scalar or a [min, max] sequence.
func (r *IntRange) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var n int
		if err := value.Decode(&n); err != nil {
			return fmt.Errorf("line %d: range value: %w", value.Line, err)
		}
		*r = Fixed(n)
		return nil
	case yaml.SequenceNode:
		var bounds []int
		if err := value.Decode(&bounds); err != nil {
			return fmt.Errorf("line %d: range bounds: %w", value.Line, err)
		}
		if len(bounds) != 2 {
			return fmt.Errorf("line %d: range needs exactly 2 bounds, got %d", value.Line, len(bounds))
		}
		*r = Span(bounds[0], bounds[1])
		return nil
	default:
		return fmt.Errorf("line %d: range must be a number or [min, max]", value.Line)
	}
}

// MarshalYAML writes fixed ranges as scalars and the rest as flow sequences.
func (r IntRange) MarshalYAML() (any, error) {
	if r.IsFixed() {
		return r.Min, nil
	}
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, n := range []int{r.Min, r.Max} {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: fmt.Sprintf("%d", n),
		})
	}
	return node, nil
}

// TotalLines returns the number of lines across both columns.
func (g GridConfig) TotalLines() int {
	return g.LinesPerColumn * 2
}

// Difficulty returns the spec with the given name.
func (c TermhackConfig) Difficulty(name string) (DifficultySpec, bool) {
	for _, d := range c.Difficulties {
		if d.Name == name {
			return d, true
		}
	}
	return DifficultySpec{}, false
}

// DifficultyNames returns the configured difficulty names in order.
func (c TermhackConfig) DifficultyNames() []string {
	names := make([]string, len(c.Difficulties))
	for i, d := range c.Difficulties {
		names[i] = d.Name
	}
	return names
}
