package termhack

import (
	"strings"
	"testing"

	"github.com/vovakirdan/termlink/internal/config"
	"github.com/vovakirdan/termlink/internal/core"
	"github.com/vovakirdan/termlink/internal/registry"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := NewWithConfig(config.DefaultTermhackConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: seed})
	if g.Machine() == nil {
		t.Fatalf("Reset failed: %v", g.err)
	}
	return g
}

func press(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func clickAt(g *Game, x, y int) core.StepResult {
	in := core.NewInputFrame()
	in.ClickAt(x, y)
	return g.Step(in)
}

func render(g *Game) string {
	screen := core.NewScreen(g.screenW, g.screenH)
	g.Render(screen)
	return screen.String()
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatalf("%q should be registered", GameID)
	}
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.Title() != "Terminal Hacking" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestGameMenuStartsRound(t *testing.T) {
	g := newTestGame(t, 1)
	if st := g.State(); !st.Idle {
		t.Fatal("new game should wait on the menu")
	}

	press(g, core.ActionDown)
	res := press(g, core.ActionConfirm)

	if g.Machine().Phase() != PhasePlaying {
		t.Fatalf("phase = %s, want playing", g.Machine().Phase())
	}
	if res.State.Mode != string(Advanced) || res.State.Idle {
		t.Errorf("state = %+v, want advanced round", res.State)
	}
}

func TestGameMenuWraps(t *testing.T) {
	g := newTestGame(t, 1)
	press(g, core.ActionUp)
	press(g, core.ActionConfirm)

	if g.Machine().Difficulty() != Master {
		t.Errorf("difficulty = %s, want master", g.Machine().Difficulty())
	}
}

func TestGameMenuClick(t *testing.T) {
	g := newTestGame(t, 1)
	clickAt(g, 40, g.menuTop()+2)

	if g.Machine().Phase() != PhasePlaying || g.Machine().Difficulty() != Expert {
		t.Errorf("click on third entry: %s/%s, want playing/expert", g.Machine().Phase(), g.Machine().Difficulty())
	}
}

func TestGameDifficultyPreset(t *testing.T) {
	SetDifficultyPreset(Expert)
	defer SetDifficultyPreset("")

	g := newTestGame(t, 2)
	if g.Machine().Phase() != PhasePlaying || g.Machine().Difficulty() != Expert {
		t.Errorf("preset: %s/%s, want playing/expert", g.Machine().Phase(), g.Machine().Difficulty())
	}
}

func TestGameCursorCrossesColumns(t *testing.T) {
	g := newTestGame(t, 3)
	press(g, core.ActionConfirm)

	for i := 0; i < 16; i++ {
		press(g, core.ActionRight)
	}
	if want := (Pos{Line: 20, Col: 0}); g.cursor != want {
		t.Fatalf("cursor = %+v, want %+v", g.cursor, want)
	}

	press(g, core.ActionLeft)
	if want := (Pos{Line: 0, Col: 15}); g.cursor != want {
		t.Errorf("cursor = %+v, want %+v", g.cursor, want)
	}

	press(g, core.ActionUp)
	if g.cursor.Line != 0 {
		t.Errorf("cursor should stop at the top row, got %+v", g.cursor)
	}
	for i := 0; i < 30; i++ {
		press(g, core.ActionDown)
	}
	if g.cursor.Line != 19 {
		t.Errorf("cursor should stop at the bottom row, got %+v", g.cursor)
	}
}

func TestGameCursorHovers(t *testing.T) {
	g := newTestGame(t, 4)
	press(g, core.ActionConfirm)

	w := g.Machine().Layout().Words[0]
	g.cursor = Pos{Line: w.Span.Line, Col: w.Span.Start - 1}
	if w.Span.Start == 0 {
		g.cursor.Col = 1
		press(g, core.ActionLeft)
	} else {
		press(g, core.ActionRight)
	}

	if s := g.Machine().Snapshot(); s.HoveredWord != w.ID {
		t.Errorf("HoveredWord = %d, want %d", s.HoveredWord, w.ID)
	}
}

func TestGameMouseGuess(t *testing.T) {
	g := newTestGame(t, 5)
	press(g, core.ActionConfirm)

	l := g.Machine().Layout()
	var dud WordGroup
	for _, w := range l.Words {
		if w.ID != l.Correct {
			dud = w
			break
		}
	}

	x, y := g.screenPos(Pos{Line: dud.Span.Line, Col: dud.Span.Start})
	res := clickAt(g, x, y)

	if res.State.Moves != 1 || g.Machine().Attempts() != 3 {
		t.Errorf("after wrong click: moves %d, attempts %d", res.State.Moves, g.Machine().Attempts())
	}
	if !strings.HasPrefix(g.flash, "ENTRY DENIED") {
		t.Errorf("flash = %q, want denial", g.flash)
	}
}

func TestGameMouseOffGridClearsHover(t *testing.T) {
	g := newTestGame(t, 5)
	press(g, core.ActionConfirm)
	g.Machine().Hover(Cell{Word: 1})

	in := core.NewInputFrame()
	in.MoveTo(0, 0)
	g.Step(in)

	if s := g.Machine().Snapshot(); s.HoveredWord != 0 {
		t.Errorf("HoveredWord = %d, want 0", s.HoveredWord)
	}
}

func TestGameWinScoreAndReplay(t *testing.T) {
	g := newTestGame(t, 6)
	press(g, core.ActionConfirm)

	l := g.Machine().Layout()
	w, _ := l.Word(l.Correct)
	g.cursor = Pos{Line: w.Span.Line, Col: w.Span.Start}
	res := press(g, core.ActionConfirm)

	if !res.State.GameOver || !res.State.Won {
		t.Fatalf("state = %+v, want won", res.State)
	}
	if want := (100 + 50*4) * 1; res.State.Score != want {
		t.Errorf("Score = %d, want %d", res.State.Score, want)
	}
	if !strings.Contains(render(g), "ACCESS GRANTED") {
		t.Error("result screen should announce access")
	}

	press(g, core.ActionConfirm)
	if g.Machine().Phase() != PhasePlaying || g.Machine().Difficulty() != Novice {
		t.Errorf("replay: %s/%s", g.Machine().Phase(), g.Machine().Difficulty())
	}

	press(g, core.ActionRestart)
	if !g.State().Idle {
		t.Error("restart should return to the menu")
	}
}

func TestGameLoss(t *testing.T) {
	g := newTestGame(t, 7)
	press(g, core.ActionConfirm)

	m := g.Machine()
	for _, w := range m.Layout().Words {
		if w.ID != m.Layout().Correct && m.Phase() == PhasePlaying {
			m.GuessWord(w.ID)
		}
	}

	st := g.State()
	if !st.GameOver || st.Won || st.Score != 0 {
		t.Errorf("state = %+v, want lost with zero score", st)
	}

	out := render(g)
	if !strings.Contains(out, "TERMINAL LOCKED") || !strings.Contains(out, "Password was: "+m.Layout().CorrectWord()) {
		t.Errorf("result screen should reveal the password:\n%s", out)
	}

	press(g, core.ActionRestart)
	if !g.State().Idle {
		t.Error("restart should return to the menu")
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, 8)
	press(g, core.ActionConfirm)

	res := press(g, core.ActionPause)
	if !res.State.Paused {
		t.Fatal("should be paused")
	}
	press(g, core.ActionRight)
	if g.cursor != (Pos{}) {
		t.Error("input should be ignored while paused")
	}
	if !strings.Contains(render(g), "PAUSED") {
		t.Error("paused screen should say so")
	}

	if res := press(g, core.ActionPause); res.State.Paused {
		t.Error("should be unpaused")
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, 9)

	menu := render(g)
	for _, want := range []string{"TERMINAL HACKING", "Select difficulty to begin", "Novice", "Master"} {
		if !strings.Contains(menu, want) {
			t.Errorf("menu should contain %q", want)
		}
	}

	press(g, core.ActionConfirm)
	out := render(g)
	for _, want := range []string{"ROBCO INDUSTRIES (TM) TERMLINK PROTOCOL", "ENTER PASSWORD NOW", "4 ATTEMPTS LEFT", "■ ■ ■ ■"} {
		if !strings.Contains(out, want) {
			t.Errorf("grid screen should contain %q", want)
		}
	}
	l := g.Machine().Layout()
	if !strings.Contains(out, l.Addresses[0]+" "+l.Line(0)) {
		t.Errorf("grid screen should show the first line %q", l.Addresses[0]+" "+l.Line(0))
	}
}

func TestGameTooSmall(t *testing.T) {
	g := NewWithConfig(config.DefaultTermhackConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 30, Seed: 1})

	if !strings.Contains(render(g), "Window too small") {
		t.Error("small screen should show a warning")
	}
	press(g, core.ActionConfirm)
	if g.Machine().Phase() != PhaseIdle {
		t.Error("input should be ignored on a small screen")
	}

	g.Resize(80, 24)
	press(g, core.ActionConfirm)
	if g.Machine().Phase() != PhasePlaying {
		t.Error("resizing should make the game playable")
	}
}

func TestGameResizeKeepsRound(t *testing.T) {
	g := newTestGame(t, 10)
	press(g, core.ActionConfirm)
	before := g.Machine().Layout()

	g.Resize(120, 40)

	if g.Machine().Layout() != before || g.Machine().Phase() != PhasePlaying {
		t.Error("resize should not touch the round")
	}
}

func TestGameDeterministic(t *testing.T) {
	a := newTestGame(t, 11)
	b := newTestGame(t, 11)
	press(a, core.ActionConfirm)
	press(b, core.ActionConfirm)

	if a.Machine().Layout().Dump(true) != b.Machine().Layout().Dump(true) {
		t.Error("same seed should produce the same puzzle")
	}
}

func TestGameBadConfig(t *testing.T) {
	cfg := config.DefaultTermhackConfig()
	cfg.Rules.Attempts = 0
	g := NewWithConfig(cfg)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1})

	if g.Machine() != nil {
		t.Fatal("invalid config should not produce a machine")
	}
	if !strings.Contains(render(g), "TERMINAL MALFUNCTION") {
		t.Error("invalid config should be shown on screen")
	}
	if st := press(g, core.ActionConfirm).State; !st.Idle {
		t.Errorf("state = %+v, want idle", st)
	}
}

func TestScore(t *testing.T) {
	cfg := config.DefaultTermhackConfig()

	tests := []struct {
		d        Difficulty
		attempts int
		won      bool
		want     int
	}{
		{Novice, 4, true, 300},
		{Novice, 1, true, 150},
		{Advanced, 2, true, 400},
		{Master, 4, true, 1200},
		{Master, 0, false, 0},
		{"custom", 1, true, 150},
	}

	for _, tt := range tests {
		if got := Score(cfg, tt.d, tt.attempts, tt.won); got != tt.want {
			t.Errorf("Score(%s, %d, %v) = %d, want %d", tt.d, tt.attempts, tt.won, got, tt.want)
		}
	}
}
