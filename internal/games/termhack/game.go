// Package termhack implements the terminal-hacking password puzzle: a
// generator for hex memory dumps seeded with candidate words and bracket
// tricks, a round state machine, and the arcade adapter that drives them
// from platform input.
package termhack

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/termlink/internal/config"
	"github.com/vovakirdan/termlink/internal/core"
	"github.com/vovakirdan/termlink/internal/registry"
)

// GameID is the registry identifier.
const GameID = "termhack"

// Package-level variables for config
var (
	configPath       string
	difficultyPreset Difficulty
)

// SetConfigPath sets a custom rules file. Empty uses the default search order.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset makes every Reset start a round at d directly,
// skipping the difficulty menu. Empty restores the menu.
func SetDifficultyPreset(d Difficulty) {
	difficultyPreset = d
}

// GetDifficultyPreset returns the currently selected preset.
func GetDifficultyPreset() Difficulty {
	return difficultyPreset
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// Game adapts the puzzle machine to the arcade platform.
type Game struct {
	cfg    config.TermhackConfig
	loaded bool
	err    error // Config or word-list problem; shown instead of the game

	rng *rand.Rand
	m   *Machine

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool
	geo      geometry

	tickRate   int
	paused     bool
	menuIndex  int
	cursor     Pos
	flash      string
	flashColor core.Color
	flashTicks int
}

// New creates a game that loads its rules on first Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game using cfg instead of loading rules.
func NewWithConfig(cfg config.TermhackConfig) *Game {
	return &Game{cfg: cfg, loaded: true}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Terminal Hacking"
}

// Reset reseeds the puzzle source and returns to the difficulty menu,
// or straight into a round when a preset is selected.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.paused = false
	g.menuIndex = 0
	g.cursor = Pos{}
	g.clearFlash()

	if !g.loaded {
		cfg, err := config.LoadTermhack(configPath)
		if err != nil {
			g.err = err
			g.m = nil
			g.Resize(rc.ScreenW, rc.ScreenH)
			return
		}
		g.cfg = cfg
		g.loaded = true
	}

	gen, err := NewGenerator(g.cfg, nil, g.rng)
	if err != nil {
		g.err = err
		g.m = nil
		g.Resize(rc.ScreenW, rc.ScreenH)
		return
	}
	g.err = nil
	g.m = NewMachine(gen)
	g.Resize(rc.ScreenW, rc.ScreenH)

	if difficultyPreset != "" {
		if tier := Tier(g.cfg, difficultyPreset); tier > 0 {
			g.menuIndex = tier - 1
			g.m.Start(difficultyPreset)
		}
	}
}

// Resize adapts the layout to new screen dimensions without touching the round.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.geo = computeGeometry(g.cfg, w)
	g.tooSmall = w < g.geo.width || h < g.geo.height
}

// Machine exposes the underlying state machine.
func (g *Game) Machine() *Machine {
	return g.m
}

// Step applies one frame of input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.flashTicks > 0 {
		g.flashTicks--
		if g.flashTicks == 0 {
			g.clearFlash()
		}
	}

	if g.m == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) && g.m.Phase() == PhasePlaying {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	switch g.m.Phase() {
	case PhaseIdle:
		g.stepMenu(in)
	case PhasePlaying:
		g.stepPlaying(in)
	case PhaseWon, PhaseLost:
		g.stepResult(in)
	}

	return core.StepResult{State: g.State()}
}

// stepMenu handles the difficulty picker.
func (g *Game) stepMenu(in core.InputFrame) {
	diffs := Difficulties(g.cfg)
	if len(diffs) == 0 {
		return
	}

	switch {
	case in.Has(core.ActionUp):
		g.menuIndex = (g.menuIndex - 1 + len(diffs)) % len(diffs)
	case in.Has(core.ActionDown):
		g.menuIndex = (g.menuIndex + 1) % len(diffs)
	}

	if in.Pointer.Moved {
		if i, ok := g.menuItemAt(in.Pointer.X, in.Pointer.Y); ok {
			g.menuIndex = i
			if in.Pointer.Clicked {
				g.startRound(diffs[i])
				return
			}
		}
	}

	if in.Has(core.ActionConfirm) {
		g.startRound(diffs[g.menuIndex])
	}
}

// stepPlaying moves the grid cursor and submits clicks.
func (g *Game) stepPlaying(in core.InputFrame) {
	if in.Has(core.ActionRestart) {
		g.m.Reset()
		g.clearFlash()
		return
	}

	moved := true
	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionDown):
		g.moveCursor(1, 0)
	case in.Has(core.ActionLeft):
		g.moveCursor(0, -1)
	case in.Has(core.ActionRight):
		g.moveCursor(0, 1)
	default:
		moved = false
	}
	if moved {
		g.m.Hover(g.m.CellAt(g.cursor))
	}

	if in.Pointer.Moved {
		if p, ok := g.gridPosAt(in.Pointer.X, in.Pointer.Y); ok {
			g.cursor = p
			g.m.Hover(g.m.CellAt(p))
			if in.Pointer.Clicked {
				g.click(p)
				return
			}
		} else {
			g.m.Hover(Cell{})
		}
	}

	if in.Has(core.ActionConfirm) {
		g.click(g.cursor)
	}
}

// stepResult handles the won/lost screens.
func (g *Game) stepResult(in core.InputFrame) {
	switch {
	case in.Has(core.ActionRestart), in.Has(core.ActionBack):
		g.m.Reset()
	case in.Has(core.ActionConfirm), in.Pointer.Clicked:
		g.startRound(g.m.Difficulty())
	}
}

func (g *Game) startRound(d Difficulty) {
	g.m.Start(d)
	g.cursor = Pos{}
	g.clearFlash()
	g.m.Hover(g.m.CellAt(g.cursor))
}

// click submits the cell at p and flashes the outcome.
func (g *Game) click(p Pos) {
	logLen := len(g.m.Log())
	result := g.m.Click(p)
	log := g.m.Log()
	if len(log) == logLen {
		return
	}

	switch {
	case g.m.Phase() == PhaseWon:
		g.setFlash("ACCESS GRANTED", core.ColorAmberBright)
	case g.m.Phase() == PhaseLost:
		g.setFlash("LOCKOUT INITIATED", core.ColorBrightRed)
	case result == ClickWord:
		last, _ := g.m.LastGuess()
		g.setFlash(fmt.Sprintf("ENTRY DENIED %d/%d", last.Likeness, len([]rune(last.Word))), core.ColorRed)
	case result == ClickBracket:
		g.setFlash(strings.TrimPrefix(log[len(log)-1], ">"), core.ColorAmberBright)
	}

	if g.m.Phase() == PhasePlaying {
		g.m.Hover(g.m.CellAt(p))
	}
}

func (g *Game) setFlash(msg string, c core.Color) {
	g.flash = msg
	g.flashColor = c
	g.flashTicks = g.tickRate
}

func (g *Game) clearFlash() {
	g.flash = ""
	g.flashTicks = 0
}

// moveCursor steps the grid cursor. Moving past a column edge crosses
// into the other column on the same row.
func (g *Game) moveCursor(dRow, dCol int) {
	lpc := g.cfg.Grid.LinesPerColumn
	width := g.cfg.Grid.CharsPerLine

	side := g.cursor.Line / lpc
	row := core.Clamp(g.cursor.Line%lpc+dRow, 0, lpc-1)
	col := g.cursor.Col + dCol
	switch {
	case col < 0 && side == 1:
		side, col = 0, width-1
	case col >= width && side == 0:
		side, col = 1, 0
	}
	col = core.Clamp(col, 0, width-1)

	g.cursor = Pos{Line: side*lpc + row, Col: col}
}

// State returns the platform view of the round.
func (g *Game) State() core.GameState {
	if g.m == nil {
		return core.GameState{Idle: true}
	}
	phase := g.m.Phase()
	won := phase == PhaseWon
	return core.GameState{
		Score:    Score(g.cfg, g.m.Difficulty(), g.m.Attempts(), won),
		GameOver: won || phase == PhaseLost,
		Paused:   g.paused,
		Won:      won,
		Idle:     phase == PhaseIdle,
		Mode:     string(g.m.Difficulty()),
		Moves:    g.m.Guesses(),
	}
}

// Score rates a finished round: a base plus a bonus per attempt left,
// multiplied by the difficulty tier. Lost rounds score zero.
func Score(cfg config.TermhackConfig, d Difficulty, attemptsLeft int, won bool) int {
	if !won {
		return 0
	}
	return (100 + 50*attemptsLeft) * max(Tier(cfg, d), 1)
}
