package termhack

import (
	"fmt"
	"strings"
)

// WordID identifies a placed candidate word. Zero means no word.
type WordID int

// BracketID identifies a bracket-trick group. Zero means no bracket.
type BracketID int

// Pos addresses a single character in the full line sequence.
type Pos struct {
	Line int
	Col  int
}

// Span is a contiguous run of characters within one line.
type Span struct {
	Line  int
	Start int
	Len   int
}

// End returns the column just past the span.
func (s Span) End() int {
	return s.Start + s.Len
}

// Contains reports whether p lies inside the span.
func (s Span) Contains(p Pos) bool {
	return p.Line == s.Line && p.Col >= s.Start && p.Col < s.End()
}

// Overlaps reports whether two spans share at least one cell.
func (s Span) Overlaps(o Span) bool {
	return s.Line == o.Line && s.Start < o.End() && o.Start < s.End()
}

// Cell is one grid character with the live group it belongs to.
// At most one of Word and Bracket is non-zero.
type Cell struct {
	Char    rune
	Word    WordID
	Bracket BracketID
}

// Interactive reports whether clicking the cell does anything.
func (c Cell) Interactive() bool {
	return c.Word != 0 || c.Bracket != 0
}

// HexLine is one rendered line: its display address and its cells.
type HexLine struct {
	Address string
	Cells   []Cell
}

// Text returns the line's characters.
func (h HexLine) Text() string {
	var sb strings.Builder
	for _, c := range h.Cells {
		sb.WriteRune(c.Char)
	}
	return sb.String()
}

// WordGroup is a placed candidate word.
type WordGroup struct {
	ID      WordID
	Text    string
	Span    Span
	Removed bool // Erased by a bracket trick; no longer guessable
}

// BracketGroup is a bracket-trick span: opener, noise, closer.
type BracketGroup struct {
	ID    BracketID
	Open  rune
	Close rune
	Span  Span
	Spent bool // Already triggered; characters stay as inert noise
}

// Layout is a generated memory dump. Words and brackets own their spans;
// per-cell tags are derived from them on lookup.
type Layout struct {
	LinesPerColumn int
	CharsPerLine   int
	WordLength     int
	Addresses      []string
	Words          []WordGroup
	Brackets       []BracketGroup
	Correct        WordID

	lines [][]rune
}

// TotalLines returns the number of lines across both columns.
func (l *Layout) TotalLines() int {
	return len(l.lines)
}

// Char returns the character at p, or 0 when p is out of range.
func (l *Layout) Char(p Pos) rune {
	if !l.inBounds(p) {
		return 0
	}
	return l.lines[p.Line][p.Col]
}

// Line returns the characters of line i.
func (l *Layout) Line(i int) string {
	if i < 0 || i >= len(l.lines) {
		return ""
	}
	return string(l.lines[i])
}

// SpanText recovers the characters covered by s.
func (l *Layout) SpanText(s Span) string {
	if s.Line < 0 || s.Line >= len(l.lines) || s.Start < 0 || s.End() > l.CharsPerLine {
		return ""
	}
	return string(l.lines[s.Line][s.Start:s.End()])
}

// CellAt returns the cell at p with its live word or bracket tag.
// Removed words and spent brackets no longer tag their cells.
func (l *Layout) CellAt(p Pos) Cell {
	if !l.inBounds(p) {
		return Cell{}
	}
	c := Cell{Char: l.lines[p.Line][p.Col]}
	for _, w := range l.Words {
		if !w.Removed && w.Span.Contains(p) {
			c.Word = w.ID
			return c
		}
	}
	for _, b := range l.Brackets {
		if !b.Spent && b.Span.Contains(p) {
			c.Bracket = b.ID
			return c
		}
	}
	return c
}

// Word returns the word group with the given id.
func (l *Layout) Word(id WordID) (*WordGroup, bool) {
	for i := range l.Words {
		if l.Words[i].ID == id {
			return &l.Words[i], true
		}
	}
	return nil, false
}

// Bracket returns the bracket group with the given id.
func (l *Layout) Bracket(id BracketID) (*BracketGroup, bool) {
	for i := range l.Brackets {
		if l.Brackets[i].ID == id {
			return &l.Brackets[i], true
		}
	}
	return nil, false
}

// CorrectWord returns the password text.
func (l *Layout) CorrectWord() string {
	if w, ok := l.Word(l.Correct); ok {
		return w.Text
	}
	return ""
}

// Lines materializes every line with derived cell tags.
func (l *Layout) Lines() []HexLine {
	out := make([]HexLine, len(l.lines))
	for i := range l.lines {
		cells := make([]Cell, len(l.lines[i]))
		for col := range cells {
			cells[col] = l.CellAt(Pos{Line: i, Col: col})
		}
		out[i] = HexLine{Address: l.Addresses[i], Cells: cells}
	}
	return out
}

// Left returns the first column of lines.
func (l *Layout) Left() []HexLine {
	return l.Lines()[:l.LinesPerColumn]
}

// Right returns the second column of lines.
func (l *Layout) Right() []HexLine {
	return l.Lines()[l.LinesPerColumn:]
}

// removeWord erases a word's characters and untags it.
func (l *Layout) removeWord(id WordID, filler rune) {
	w, ok := l.Word(id)
	if !ok || w.Removed {
		return
	}
	for col := w.Span.Start; col < w.Span.End(); col++ {
		l.lines[w.Span.Line][col] = filler
	}
	w.Removed = true
}

// spendBracket untags a bracket group, leaving its characters in place.
func (l *Layout) spendBracket(id BracketID) {
	if b, ok := l.Bracket(id); ok {
		b.Spent = true
	}
}

// clone returns a deep copy so generated layouts can be replayed.
func (l *Layout) clone() *Layout {
	c := *l
	c.Addresses = append([]string(nil), l.Addresses...)
	c.Words = append([]WordGroup(nil), l.Words...)
	c.Brackets = append([]BracketGroup(nil), l.Brackets...)
	c.lines = make([][]rune, len(l.lines))
	for i := range l.lines {
		c.lines[i] = append([]rune(nil), l.lines[i]...)
	}
	return &c
}

func (l *Layout) inBounds(p Pos) bool {
	return p.Line >= 0 && p.Line < len(l.lines) && p.Col >= 0 && p.Col < l.CharsPerLine
}

// Dump renders the layout as plain text, two columns side by side.
// With reveal set, the password is marked with '^' on the following row.
func (l *Layout) Dump(reveal bool) string {
	var sb strings.Builder
	var pw Span
	if w, ok := l.Word(l.Correct); ok && reveal {
		pw = w.Span
	}

	for row := 0; row < l.LinesPerColumn; row++ {
		left, right := row, row+l.LinesPerColumn
		fmt.Fprintf(&sb, "%s %s  %s %s\n", l.Addresses[left], l.Line(left), l.Addresses[right], l.Line(right))

		if reveal && pw.Len > 0 && (pw.Line == left || pw.Line == right) {
			offset := len(l.Addresses[left]) + 1 + pw.Start
			if pw.Line == right {
				offset += l.CharsPerLine + 2 + len(l.Addresses[right]) + 1
			}
			sb.WriteString(strings.Repeat(" ", offset))
			sb.WriteString(strings.Repeat("^", pw.Len))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
