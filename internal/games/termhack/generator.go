package termhack

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/termlink/internal/config"
)

// bracketPairs are the opener/closer pairs used for bracket tricks.
var bracketPairs = [][2]rune{
	{'(', ')'},
	{'[', ']'},
	{'{', '}'},
	{'<', '>'},
}

// Generator builds randomized puzzle layouts.
// It is not safe for concurrent use; each game owns one.
type Generator struct {
	cfg    config.TermhackConfig
	words  map[int][]string
	rng    *rand.Rand
	filler []rune
}

// NewGenerator validates the configuration against the word lists and
// returns a generator drawing from rng. A nil words map selects the
// built-in lists.
//
// Every length a difficulty can resolve to must have a non-empty list,
// directly or through the default-length fallback, and no word may be
// wider than a line.
func NewGenerator(cfg config.TermhackConfig, words map[int][]string, rng *rand.Rand) (*Generator, error) {
	if rng == nil {
		return nil, errors.New("termhack: nil random source")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("termhack: invalid config: %w", err)
	}
	if words == nil {
		words = wordLists
	}

	g := &Generator{
		cfg:    cfg,
		words:  words,
		rng:    rng,
		filler: []rune(cfg.Grid.Filler),
	}

	for _, d := range cfg.Difficulties {
		for n := d.WordLength.Min; n <= d.WordLength.Max; n++ {
			list, _ := g.listFor(n)
			if len(list) == 0 {
				return nil, fmt.Errorf("termhack: difficulty %q: no words of length %d or %d", d.Name, n, cfg.Rules.DefaultLength)
			}
			for _, w := range list {
				if len([]rune(w)) > cfg.Grid.CharsPerLine {
					return nil, fmt.Errorf("termhack: difficulty %q: word %q wider than %d-char line", d.Name, w, cfg.Grid.CharsPerLine)
				}
			}
		}
	}

	return g, nil
}

// Config returns the configuration the generator was built with.
func (g *Generator) Config() config.TermhackConfig {
	return g.cfg
}

// listFor returns the list for length n, falling back to the default length.
func (g *Generator) listFor(n int) ([]string, int) {
	if list := g.words[n]; len(list) > 0 {
		return list, n
	}
	n = g.cfg.Rules.DefaultLength
	return g.words[n], n
}

// randIn draws uniformly from the inclusive range.
func (g *Generator) randIn(r config.IntRange) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + g.rng.Intn(r.Max-r.Min+1)
}

func (g *Generator) randomFiller() rune {
	return g.filler[g.rng.Intn(len(g.filler))]
}

// Generate builds a new layout for d. Unknown difficulties use the first
// configured one. Generate never fails: words that do not fit are skipped
// and bracket groups that cannot be placed are dropped.
func (g *Generator) Generate(d Difficulty) *Layout {
	spec, ok := g.cfg.Difficulty(string(d))
	if !ok {
		spec = g.cfg.Difficulties[0]
	}
	grid := g.cfg.Grid
	total := grid.TotalLines()
	width := grid.CharsPerLine

	length := g.randIn(spec.WordLength)
	list, length := g.listFor(length)
	count := min(g.randIn(spec.WordCount), len(list))

	sampled := make([]string, count)
	for i, idx := range g.rng.Perm(len(list))[:count] {
		sampled[i] = list[idx]
	}

	l := &Layout{
		LinesPerColumn: grid.LinesPerColumn,
		CharsPerLine:   width,
		WordLength:     length,
		Addresses:      make([]string, total),
		lines:          make([][]rune, total),
	}
	for i := range l.lines {
		l.lines[i] = make([]rune, width)
		for col := range l.lines[i] {
			l.lines[i][col] = g.randomFiller()
		}
	}

	g.placeWords(l, sampled)
	if len(l.Words) > 0 {
		l.Correct = l.Words[g.rng.Intn(len(l.Words))].ID
	}
	g.placeBrackets(l)

	base := g.randIn(grid.AddressBase)
	for i := range l.Addresses {
		l.Addresses[i] = fmt.Sprintf("0x%04X", base+i*grid.AddressStride)
	}

	return l
}

// placeWords puts at most one word per line, visiting lines in shuffled order.
func (g *Generator) placeWords(l *Layout, words []string) {
	order := g.rng.Perm(l.TotalLines())
	next := 0
	for _, w := range words {
		if next >= len(order) {
			return
		}
		runes := []rune(w)
		if len(runes) > l.CharsPerLine {
			continue
		}
		line := order[next]
		next++

		start := g.rng.Intn(l.CharsPerLine - len(runes) + 1)
		copy(l.lines[line][start:], runes)
		l.Words = append(l.Words, WordGroup{
			ID:   WordID(len(l.Words) + 1),
			Text: w,
			Span: Span{Line: line, Start: start, Len: len(runes)},
		})
	}
}

// placeBrackets injects bracket groups into untagged stretches of noise.
func (g *Generator) placeBrackets(l *Layout) {
	rules := g.cfg.Rules
	want := g.randIn(rules.BracketGroups)

	for i := 0; i < want; i++ {
		pair := bracketPairs[g.rng.Intn(len(bracketPairs))]
		inner := g.randIn(rules.BracketInner)
		span, ok := g.findFreeSpan(l, inner+2)
		if !ok {
			continue
		}

		row := l.lines[span.Line]
		row[span.Start] = pair[0]
		for col := span.Start + 1; col < span.End()-1; col++ {
			row[col] = g.randomFiller()
		}
		row[span.End()-1] = pair[1]

		l.Brackets = append(l.Brackets, BracketGroup{
			ID:    BracketID(len(l.Brackets) + 1),
			Open:  pair[0],
			Close: pair[1],
			Span:  span,
		})
	}
}

// findFreeSpan tries a bounded number of random same-line spans of size n
// that overlap no word or bracket.
func (g *Generator) findFreeSpan(l *Layout, n int) (Span, bool) {
	if n > l.CharsPerLine {
		return Span{}, false
	}
	for i, end := 0, g.cfg.Rules.PlacementRetries; i < end; i++ {
		s := Span{
			Line:  g.rng.Intn(l.TotalLines()),
			Start: g.rng.Intn(l.CharsPerLine - n + 1),
			Len:   n,
		}
		if g.spanFree(l, s) {
			return s, true
		}
	}
	return Span{}, false
}

func (g *Generator) spanFree(l *Layout, s Span) bool {
	for _, w := range l.Words {
		if w.Span.Overlaps(s) {
			return false
		}
	}
	for _, b := range l.Brackets {
		if b.Span.Overlaps(s) {
			return false
		}
	}
	return true
}
