package termhack

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/termlink/internal/config"
	"github.com/vovakirdan/termlink/internal/core"
)

const (
	headerRows = 3 // Title, prompt, attempts
	columnGap  = 2
	logGap     = 3
)

// geometry is the screen placement of the terminal, derived from the
// grid configuration and screen width.
type geometry struct {
	x0     int // Left edge of the content
	gridY  int // Row of the first grid line
	addrW  int
	leftX  int // First cell column of the left column
	rightX int // First cell column of the right column
	logX   int
	logW   int
	width  int // Minimum screen width
	height int // Minimum screen height
}

func computeGeometry(cfg config.TermhackConfig, screenW int) geometry {
	grid := cfg.Grid
	lastAddr := grid.AddressBase.Max + (grid.TotalLines()-1)*grid.AddressStride
	addrW := len(fmt.Sprintf("0x%04X", max(lastAddr, 0)))

	longest := 0
	for _, d := range cfg.Difficulties {
		longest = max(longest, d.WordLength.Max)
	}
	logW := max(len(">TERMINAL LOCKED"), len(">Password was: ")+longest)

	colW := addrW + 1 + grid.CharsPerLine
	contentW := colW*2 + columnGap + logGap + logW

	g := geometry{
		x0:     max((screenW-contentW)/2, 0),
		gridY:  headerRows,
		addrW:  addrW,
		logW:   logW,
		width:  contentW,
		height: headerRows + grid.LinesPerColumn + 1,
	}
	g.leftX = g.x0 + addrW + 1
	g.rightX = g.x0 + colW + columnGap + addrW + 1
	g.logX = g.x0 + colW*2 + columnGap + logGap
	return g
}

// gridPosAt maps screen coordinates to a grid position.
func (g *Game) gridPosAt(x, y int) (Pos, bool) {
	lpc := g.cfg.Grid.LinesPerColumn
	width := g.cfg.Grid.CharsPerLine
	left := core.NewRect(g.geo.leftX, g.geo.gridY, width, lpc)
	right := core.NewRect(g.geo.rightX, g.geo.gridY, width, lpc)
	switch {
	case left.Contains(x, y):
		return Pos{Line: y - left.Y, Col: x - left.X}, true
	case right.Contains(x, y):
		return Pos{Line: lpc + y - right.Y, Col: x - right.X}, true
	}
	return Pos{}, false
}

// screenPos maps a grid position to screen coordinates.
func (g *Game) screenPos(p Pos) (int, int) {
	lpc := g.cfg.Grid.LinesPerColumn
	if p.Line >= lpc {
		return g.geo.rightX + p.Col, g.geo.gridY + p.Line - lpc
	}
	return g.geo.leftX + p.Col, g.geo.gridY + p.Line
}

// menuTop returns the row of the first difficulty entry.
func (g *Game) menuTop() int {
	return max((g.screenH-len(g.cfg.Difficulties))/2, 4)
}

// menuItemAt returns the difficulty entry on row y.
func (g *Game) menuItemAt(_, y int) (int, bool) {
	i := y - g.menuTop()
	if i < 0 || i >= len(g.cfg.Difficulties) {
		return 0, false
	}
	return i, true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		g.renderError(dst)
		return
	}

	// Check screen size
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.m.Snapshot()
	switch snap.Phase {
	case PhaseIdle:
		g.renderMenu(dst)
		return
	case PhaseWon, PhaseLost:
		g.renderHeader(dst, snap)
		g.renderResult(dst, snap)
		return
	}

	g.renderHeader(dst, snap)
	g.renderColumn(dst, snap, snap.Left, 0)
	g.renderColumn(dst, snap, snap.Right, g.cfg.Grid.LinesPerColumn)
	g.renderLog(dst, snap)
	g.renderFooter(dst, "arrows/mouse: select  enter/click: submit  r: new puzzle  p: pause  q: quit")

	if g.paused {
		g.renderBanner(dst, []string{"PAUSED", "", "p: resume"}, core.ColorAmberBright)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorAmber)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", g.geo.width, g.geo.height), core.ColorAmberDim)
}

// renderError shows why the puzzle could not be set up.
func (g *Game) renderError(dst *core.Screen) {
	lines := append([]string{"TERMINAL MALFUNCTION", ""}, strings.Split(g.err.Error(), "\n")...)
	y := max((g.screenH-len(lines))/2, 0)
	for i, line := range lines {
		dst.DrawTextColored(1, y+i, line, core.ColorRed)
	}
}

// renderMenu draws the idle screen with the difficulty picker.
func (g *Game) renderMenu(dst *core.Screen) {
	top := g.menuTop()
	dst.DrawTextCentered(top-4, "TERMINAL HACKING", core.ColorAmberBright)
	dst.DrawTextCentered(top-2, "Select difficulty to begin", core.ColorAmber)

	for i, d := range g.cfg.Difficulties {
		label := fmt.Sprintf("%-9s %2s letters, %s words", d.Label, d.WordLength, d.WordCount)
		color := core.ColorAmberDim
		if i == g.menuIndex {
			label = "> " + label + " <"
			color = core.ColorHighlight
		} else {
			label = "  " + label + "  "
		}
		dst.DrawTextCentered(top+i, label, color)
	}

	g.renderFooter(dst, "up/down: choose  enter/click: start  q: quit")
}

// renderHeader draws the title, prompt and attempts line.
func (g *Game) renderHeader(dst *core.Screen, snap Snapshot) {
	x := g.geo.x0
	dst.DrawTextColored(x, 0, "ROBCO INDUSTRIES (TM) TERMLINK PROTOCOL", core.ColorAmberBright)

	prompt := "ENTER PASSWORD NOW"
	if snap.AttemptsLeft == 1 && snap.Phase == PhasePlaying {
		prompt = "!!! WARNING: LOCKOUT IMMINENT !!!"
	}
	dst.DrawTextColored(x, 1, prompt, core.ColorAmber)

	noun := "ATTEMPTS"
	if snap.AttemptsLeft == 1 {
		noun = "ATTEMPT"
	}
	attempts := fmt.Sprintf("%d %s LEFT:", snap.AttemptsLeft, noun)
	dst.DrawTextColored(x, 2, attempts, core.ColorAmber)
	for i, end := 0, snap.MaxAttempts; i < end; i++ {
		r := '□'
		if i < snap.AttemptsLeft {
			r = '■'
		}
		dst.SetColored(x+len(attempts)+1+i*2, 2, r, core.ColorAmberBright)
	}

	if g.flash != "" {
		dst.DrawTextColored(g.geo.logX, 2, g.flash, g.flashColor)
	}

	label := strings.ToUpper(Label(g.cfg, snap.Difficulty))
	dst.DrawTextColored(g.geo.logX+g.geo.logW-len(label), 0, label, core.ColorAmberDim)
}

// renderColumn draws one column of address-labeled lines.
func (g *Game) renderColumn(dst *core.Screen, snap Snapshot, lines []HexLine, offset int) {
	for row, line := range lines {
		x, y := g.screenPos(Pos{Line: offset + row})
		dst.DrawTextColored(x-len(line.Address)-1, y, line.Address, core.ColorAmberDim)

		for col, c := range line.Cells {
			dst.SetColored(x+col, y, c.Char, g.cellColor(snap, Pos{Line: offset + row, Col: col}, c))
		}
	}
}

func (g *Game) cellColor(snap Snapshot, p Pos, c Cell) core.Color {
	switch {
	case c.Word != 0 && c.Word == snap.HoveredWord:
		return core.ColorHighlight
	case c.Bracket != 0 && c.Bracket == snap.HoveredBracket:
		return core.ColorHighlight
	case p == g.cursor:
		return core.ColorHighlight
	case c.Word != 0:
		return core.ColorAmberBright
	default:
		return core.ColorAmber
	}
}

// renderLog draws the feedback panel, newest lines at the bottom, with the
// hovered selection on the prompt line.
func (g *Game) renderLog(dst *core.Screen, snap Snapshot) {
	lpc := g.cfg.Grid.LinesPerColumn
	promptY := g.geo.gridY + lpc - 1
	visible := lpc - 1

	log := snap.Log
	if len(log) > visible {
		log = log[len(log)-visible:]
	}
	y := promptY - len(log)
	for i, line := range log {
		dst.DrawTextColored(g.geo.logX, y+i, line, logColor(line))
	}

	dst.DrawTextColored(g.geo.logX, promptY, ">"+g.hoverText(snap), core.ColorAmberBright)
}

// hoverText returns the characters of the hovered word or bracket.
func (g *Game) hoverText(snap Snapshot) string {
	l := g.m.Layout()
	if l == nil {
		return ""
	}
	if w, ok := l.Word(snap.HoveredWord); ok && !w.Removed {
		return l.SpanText(w.Span)
	}
	if b, ok := l.Bracket(snap.HoveredBracket); ok && !b.Spent {
		return l.SpanText(b.Span)
	}
	return string(l.Char(g.cursor))
}

func logColor(line string) core.Color {
	switch {
	case strings.Contains(line, "denied"), strings.Contains(line, "LOCKED"):
		return core.ColorRed
	case strings.Contains(line, "match"), strings.Contains(line, "accessed"):
		return core.ColorAmberBright
	default:
		return core.ColorAmber
	}
}

// renderResult draws the won/lost screen.
func (g *Game) renderResult(dst *core.Screen, snap Snapshot) {
	lines := []string{"ACCESS GRANTED", "", "Password accepted."}
	color := core.ColorAmberBright
	if snap.Phase == PhaseLost {
		lines = []string{"TERMINAL LOCKED", "", "Password was: " + snap.CorrectWord}
		color = core.ColorBrightRed
	}
	lines = append(lines,
		fmt.Sprintf("Guesses: %d", len(snap.Guesses)),
		fmt.Sprintf("Score: %d", Score(g.cfg, snap.Difficulty, snap.AttemptsLeft, snap.Phase == PhaseWon)),
	)
	g.renderBanner(dst, lines, color)
	g.renderLog(dst, snap)
	g.renderFooter(dst, "enter: play again  r: new puzzle  q: quit")
}

// renderBanner draws a boxed message over the grid.
func (g *Game) renderBanner(dst *core.Screen, lines []string, c core.Color) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	w += 4
	h := len(lines) + 2
	colsW := g.geo.logX - logGap - g.geo.x0
	box := core.NewRect(g.geo.x0+(colsW-w)/2, g.geo.gridY+(g.cfg.Grid.LinesPerColumn-h)/2, w, h)

	for y := box.Y; y < box.Bottom(); y++ {
		dst.DrawHLine(box.X, y, box.W, ' ', core.ColorDefault)
	}
	dst.DrawBox(box, c)
	for i, l := range lines {
		x := box.X + (box.W-len([]rune(l)))/2
		dst.DrawTextColored(x, box.Y+1+i, l, c)
	}
}

func (g *Game) renderFooter(dst *core.Screen, text string) {
	dst.DrawTextColored(g.geo.x0, g.geo.height-1, text, core.ColorAmberDim)
}
