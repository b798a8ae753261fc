package config

import (
	_ "embed"
)

//go:embed defaults/termhack.yaml
var defaultTermhackYAML []byte

// DefaultFiller is the noise alphabet of the memory dump.
const DefaultFiller = `!@#$%^&*()_+-={}[]|;:'"<>,.?/~`

// DefaultTermhackConfig returns the default puzzle configuration.
func DefaultTermhackConfig() TermhackConfig {
	return TermhackConfig{
		Grid: GridConfig{
			LinesPerColumn: 20,
			CharsPerLine:   16,
			Filler:         DefaultFiller,
			RemovedFiller:  ".",
			AddressBase:    Span(0xF000, 0xFF00),
			AddressStride:  0x10,
		},
		Rules: RulesConfig{
			Attempts:         4,
			BracketGroups:    Span(6, 12),
			BracketInner:     Span(1, 5),
			PlacementRetries: 50,
			ResetChance:      0.4,
			DefaultLength:    4,
		},
		Difficulties: []DifficultySpec{
			{Name: "novice", Label: "Novice", WordLength: Fixed(4), WordCount: Span(8, 10)},
			{Name: "advanced", Label: "Advanced", WordLength: Span(5, 6), WordCount: Span(10, 12)},
			{Name: "expert", Label: "Expert", WordLength: Span(7, 8), WordCount: Span(12, 14)},
			{Name: "master", Label: "Master", WordLength: Span(9, 11), WordCount: Span(14, 16)},
		},
	}
}
