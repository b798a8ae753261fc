package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg TermhackConfig
	if err := yaml.Unmarshal(defaultTermhackYAML, &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}

	if diff := cmp.Diff(DefaultTermhackConfig(), cfg); diff != "" {
		t.Errorf("embedded defaults drifted from DefaultTermhackConfig (-want +got):\n%s", diff)
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultTermhackConfig().Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestIntRangeUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    IntRange
		wantErr bool
	}{
		{name: "scalar", input: "v: 4", want: Fixed(4)},
		{name: "sequence", input: "v: [5, 6]", want: Span(5, 6)},
		{name: "hex bounds", input: "v: [0xF000, 0xFF00]", want: Span(0xF000, 0xFF00)},
		{name: "block sequence", input: "v:\n  - 7\n  - 8", want: Span(7, 8)},
		{name: "three bounds", input: "v: [1, 2, 3]", wantErr: true},
		{name: "mapping", input: "v: {min: 1}", wantErr: true},
		{name: "not a number", input: "v: four", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc struct {
				V IntRange `yaml:"v"`
			}
			err := yaml.Unmarshal([]byte(tt.input), &doc)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", doc.V)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if doc.V != tt.want {
				t.Errorf("got %+v, want %+v", doc.V, tt.want)
			}
		})
	}
}

func TestIntRangeMarshalRoundTrip(t *testing.T) {
	cfg := DefaultTermhackConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	if !strings.Contains(string(data), "word_length: 4\n") {
		t.Errorf("fixed range should marshal as scalar:\n%s", data)
	}
	if !strings.Contains(string(data), "word_count: [8, 10]") {
		t.Errorf("range should marshal as flow sequence:\n%s", data)
	}

	var back TermhackConfig
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(cfg, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TermhackConfig)
		substr string
	}{
		{
			name:   "word longer than line",
			mutate: func(c *TermhackConfig) { c.Difficulties[3].WordLength = Span(9, 17) },
			substr: "exceeds line width",
		},
		{
			name:   "inverted count range",
			mutate: func(c *TermhackConfig) { c.Difficulties[0].WordCount = Span(10, 8) },
			substr: "greater than max",
		},
		{
			name:   "too many words",
			mutate: func(c *TermhackConfig) { c.Difficulties[0].WordCount = Span(8, 41) },
			substr: "exceeds line count",
		},
		{
			name:   "duplicate difficulty",
			mutate: func(c *TermhackConfig) { c.Difficulties[1].Name = "novice" },
			substr: "duplicate difficulty",
		},
		{
			name:   "reset chance above one",
			mutate: func(c *TermhackConfig) { c.Rules.ResetChance = 1.5 },
			substr: "reset_chance",
		},
		{
			name:   "empty filler",
			mutate: func(c *TermhackConfig) { c.Grid.Filler = "" },
			substr: "filler",
		},
		{
			name:   "no attempts",
			mutate: func(c *TermhackConfig) { c.Rules.Attempts = 0 },
			substr: "attempts",
		},
		{
			name:   "no difficulties",
			mutate: func(c *TermhackConfig) { c.Difficulties = nil },
			substr: "at least one difficulty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTermhackConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("error %q should mention %q", err, tt.substr)
			}
		})
	}
}

func TestLoadTermhackCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	custom := DefaultTermhackConfig()
	custom.Rules.Attempts = 6
	custom.Difficulties = custom.Difficulties[:1]

	data, err := yaml.Marshal(custom)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadTermhack(path)
	if err != nil {
		t.Fatalf("LoadTermhack failed: %v", err)
	}
	if cfg.Rules.Attempts != 6 {
		t.Errorf("Attempts = %d, want 6", cfg.Rules.Attempts)
	}
	if got := cfg.DifficultyNames(); len(got) != 1 || got[0] != "novice" {
		t.Errorf("DifficultyNames() = %v, want [novice]", got)
	}
}

func TestLoadTermhackCustomPathErrors(t *testing.T) {
	if _, err := LoadTermhack(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("rules:\n  attempts: 0\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadTermhack(path); err == nil {
		t.Error("invalid custom config should fail validation")
	}
}

func TestDifficultyLookup(t *testing.T) {
	cfg := DefaultTermhackConfig()

	d, ok := cfg.Difficulty("expert")
	if !ok {
		t.Fatal("expert should exist")
	}
	if d.WordLength != Span(7, 8) {
		t.Errorf("expert word length = %v, want 7-8", d.WordLength)
	}
	if _, ok := cfg.Difficulty("legendary"); ok {
		t.Error("unknown difficulty should not be found")
	}
}
