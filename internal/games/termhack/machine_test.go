package termhack

import (
	"math/rand"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/termlink/internal/config"
)

func newTestMachine(t *testing.T, cfg config.TermhackConfig, words map[int][]string, seed int64) *Machine {
	t.Helper()
	gen, err := NewGenerator(cfg, words, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}
	return NewMachine(gen)
}

func startedMachine(t *testing.T, seed int64) *Machine {
	t.Helper()
	m := newTestMachine(t, config.DefaultTermhackConfig(), nil, seed)
	m.Start(Novice)
	if m.Phase() != PhasePlaying {
		t.Fatalf("Start: phase = %s, want playing", m.Phase())
	}
	return m
}

// duds returns the ids of live words that are not the password.
func duds(m *Machine) []WordID {
	var ids []WordID
	for _, w := range m.Layout().Words {
		if !w.Removed && w.ID != m.Layout().Correct {
			ids = append(ids, w.ID)
		}
	}
	return ids
}

// fillerPos returns a position holding neither a word nor a bracket.
func fillerPos(t *testing.T, m *Machine) Pos {
	t.Helper()
	l := m.Layout()
	for line, end := 0, l.TotalLines(); line < end; line++ {
		for col := 0; col < l.CharsPerLine; col++ {
			p := Pos{Line: line, Col: col}
			if !l.CellAt(p).Interactive() {
				return p
			}
		}
	}
	t.Fatal("no filler cell in layout")
	return Pos{}
}

func TestMachineInitialState(t *testing.T) {
	m := newTestMachine(t, config.DefaultTermhackConfig(), nil, 1)
	s := m.Snapshot()

	if s.Phase != PhaseIdle {
		t.Errorf("Phase = %s, want idle", s.Phase)
	}
	if s.AttemptsLeft != 4 {
		t.Errorf("AttemptsLeft = %d, want 4", s.AttemptsLeft)
	}
	if s.Difficulty != Novice {
		t.Errorf("Difficulty = %s, want novice", s.Difficulty)
	}
	if len(s.Left) != 0 || len(s.Right) != 0 || len(s.Log) != 0 {
		t.Error("idle machine should have an empty grid and log")
	}
	if s.CorrectWord != "" {
		t.Error("password should not be exposed while idle")
	}
}

func TestMachineStart(t *testing.T) {
	m := startedMachine(t, 1)
	s := m.Snapshot()

	if s.AttemptsLeft != 4 {
		t.Errorf("AttemptsLeft = %d, want 4", s.AttemptsLeft)
	}
	if len(s.Left) != 20 || len(s.Right) != 20 {
		t.Errorf("columns = %d/%d, want 20/20", len(s.Left), len(s.Right))
	}
	if s.CorrectWord != "" {
		t.Error("password should stay hidden while playing")
	}
	if s.WordLength != 4 {
		t.Errorf("WordLength = %d, want 4", s.WordLength)
	}
}

func TestMachineStartUnknownDifficultyIsNoop(t *testing.T) {
	m := newTestMachine(t, config.DefaultTermhackConfig(), nil, 1)
	before := m.Snapshot()

	m.Start("legendary")

	if diff := cmp.Diff(before, m.Snapshot()); diff != "" {
		t.Errorf("unknown difficulty changed state (-before +after):\n%s", diff)
	}
}

func TestMachineStartWhilePlayingRestarts(t *testing.T) {
	m := startedMachine(t, 2)
	m.GuessWord(duds(m)[0])
	old := m.Layout()

	m.Start(Expert)

	s := m.Snapshot()
	if s.Phase != PhasePlaying || s.Difficulty != Expert {
		t.Errorf("phase/difficulty = %s/%s, want playing/expert", s.Phase, s.Difficulty)
	}
	if s.AttemptsLeft != 4 || len(s.Guesses) != 0 || len(s.Log) != 0 {
		t.Errorf("restart should clear the round: attempts %d, guesses %d, log %d", s.AttemptsLeft, len(s.Guesses), len(s.Log))
	}
	if m.Layout() == old {
		t.Error("restart should generate a new layout")
	}
}

func TestMachineCorrectGuessWins(t *testing.T) {
	m := startedMachine(t, 3)
	ids := duds(m)
	for _, id := range ids[:3] {
		m.GuessWord(id)
	}
	if m.Attempts() != 1 {
		t.Fatalf("Attempts = %d, want 1 before the winning guess", m.Attempts())
	}

	m.Hover(Cell{Word: m.Layout().Correct})
	m.GuessWord(m.Layout().Correct)

	s := m.Snapshot()
	if s.Phase != PhaseWon {
		t.Fatalf("Phase = %s, want won", s.Phase)
	}
	if s.AttemptsLeft != 1 {
		t.Errorf("AttemptsLeft = %d, want 1", s.AttemptsLeft)
	}
	if s.HoveredWord != 0 || s.HoveredBracket != 0 {
		t.Error("winning should clear hover")
	}
	if s.CorrectWord != m.Layout().CorrectWord() {
		t.Errorf("CorrectWord = %q, want it revealed", s.CorrectWord)
	}

	want := []string{">" + s.CorrectWord, ">Exact match!", ">Please wait", ">while system", ">is accessed."}
	if got := s.Log[len(s.Log)-5:]; !slices.Equal(got, want) {
		t.Errorf("success log = %q, want %q", got, want)
	}
	last := s.Guesses[len(s.Guesses)-1]
	if last.Likeness != len(s.CorrectWord) {
		t.Errorf("winning likeness = %d, want %d", last.Likeness, len(s.CorrectWord))
	}
}

func TestMachineFourWrongGuessesLose(t *testing.T) {
	m := startedMachine(t, 4)
	correct := m.Layout().CorrectWord()

	for i, id := range duds(m)[:4] {
		m.GuessWord(id)
		if i < 3 && m.Phase() != PhasePlaying {
			t.Fatalf("guess %d: phase = %s, want playing", i+1, m.Phase())
		}
	}

	s := m.Snapshot()
	if s.Phase != PhaseLost {
		t.Fatalf("Phase = %s, want lost", s.Phase)
	}
	if s.AttemptsLeft != 0 {
		t.Errorf("AttemptsLeft = %d, want 0", s.AttemptsLeft)
	}
	if !slices.Contains(s.Log, ">Password was: "+correct) {
		t.Errorf("log should reveal the password %q: %q", correct, s.Log)
	}
	if !slices.Contains(s.Log, ">TERMINAL LOCKED") {
		t.Errorf("log should announce the lockout: %q", s.Log)
	}
	if s.CorrectWord != correct {
		t.Errorf("CorrectWord = %q, want %q", s.CorrectWord, correct)
	}
}

func TestMachineWrongGuessLog(t *testing.T) {
	m := startedMachine(t, 5)
	id := duds(m)[0]
	w, _ := m.Layout().Word(id)
	likeness := Likeness(w.Text, m.Layout().CorrectWord())

	m.GuessWord(id)

	s := m.Snapshot()
	want := []string{">" + w.Text, ">Entry denied.", ">Likeness=" + strconv.Itoa(likeness)}
	if !slices.Equal(s.Log, want) {
		t.Errorf("log = %q, want %q", s.Log, want)
	}
	if s.AttemptsLeft != 3 {
		t.Errorf("AttemptsLeft = %d, want 3", s.AttemptsLeft)
	}
	if diff := cmp.Diff([]Guess{{Word: w.Text, Likeness: likeness}}, s.Guesses); diff != "" {
		t.Errorf("guess history mismatch (-want +got):\n%s", diff)
	}
}

func TestMachineRepeatedGuessIsNoop(t *testing.T) {
	m := startedMachine(t, 6)
	id := duds(m)[0]
	m.GuessWord(id)
	before := m.Snapshot()

	m.GuessWord(id)
	w, _ := m.Layout().Word(id)
	m.Click(Pos{Line: w.Span.Line, Col: w.Span.Start})

	if diff := cmp.Diff(before, m.Snapshot()); diff != "" {
		t.Errorf("repeated guess changed state (-before +after):\n%s", diff)
	}
}

func TestMachineInvalidActionsAreNoops(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) *Machine
		action func(m *Machine)
	}{
		{
			name:   "guess while idle",
			setup:  func(t *testing.T) *Machine { return newTestMachine(t, config.DefaultTermhackConfig(), nil, 1) },
			action: func(m *Machine) { m.GuessWord(1) },
		},
		{
			name:   "bracket while idle",
			setup:  func(t *testing.T) *Machine { return newTestMachine(t, config.DefaultTermhackConfig(), nil, 1) },
			action: func(m *Machine) { m.BracketTrick(1) },
		},
		{
			name:   "unknown word id",
			setup:  func(t *testing.T) *Machine { return startedMachine(t, 7) },
			action: func(m *Machine) { m.GuessWord(999) },
		},
		{
			name:   "unknown bracket id",
			setup:  func(t *testing.T) *Machine { return startedMachine(t, 7) },
			action: func(m *Machine) { m.BracketTrick(999) },
		},
		{
			name:   "zero ids",
			setup:  func(t *testing.T) *Machine { return startedMachine(t, 7) },
			action: func(m *Machine) { m.Dispatch(GuessAction{}); m.Dispatch(BracketAction{}) },
		},
		{
			name: "guess after win",
			setup: func(t *testing.T) *Machine {
				m := startedMachine(t, 8)
				m.GuessWord(m.Layout().Correct)
				return m
			},
			action: func(m *Machine) { m.GuessWord(duds(m)[0]) },
		},
		{
			name: "bracket after loss",
			setup: func(t *testing.T) *Machine {
				m := startedMachine(t, 9)
				for _, id := range duds(m)[:4] {
					m.GuessWord(id)
				}
				return m
			},
			action: func(m *Machine) { m.BracketTrick(m.Layout().Brackets[0].ID) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.setup(t)
			before := m.Snapshot()
			tt.action(m)
			if diff := cmp.Diff(before, m.Snapshot()); diff != "" {
				t.Errorf("state changed (-before +after):\n%s", diff)
			}
		})
	}
}

func TestMachineClickFiller(t *testing.T) {
	m := startedMachine(t, 10)
	before := m.Snapshot()

	if got := m.Click(fillerPos(t, m)); got != ClickNone {
		t.Errorf("Click(filler) = %s, want none", got)
	}
	if diff := cmp.Diff(before, m.Snapshot()); diff != "" {
		t.Errorf("filler click changed state (-before +after):\n%s", diff)
	}
}

func TestMachineClickWhileIdle(t *testing.T) {
	m := newTestMachine(t, config.DefaultTermhackConfig(), nil, 1)
	if got := m.Click(Pos{}); got != ClickNone {
		t.Errorf("Click while idle = %s, want none", got)
	}
}

func TestMachineBracketTrick(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		m := startedMachine(t, seed)
		b := m.Layout().Brackets[0]
		pos := Pos{Line: b.Span.Line, Col: b.Span.Start + b.Span.Len/2}
		logLen := len(m.Log())

		if got := m.Click(pos); got != ClickBracket {
			t.Fatalf("seed %d: Click(bracket) = %s, want bracket", seed, got)
		}

		s := m.Snapshot()
		if s.Phase != PhasePlaying {
			t.Errorf("seed %d: bracket trick left playing: %s", seed, s.Phase)
		}
		if len(s.Log) != logLen+1 {
			t.Fatalf("seed %d: bracket trick logged %d lines, want 1", seed, len(s.Log)-logLen)
		}
		if last := s.Log[len(s.Log)-1]; last != ">Tries reset." && last != ">Dud removed." {
			t.Errorf("seed %d: unexpected log line %q", seed, last)
		}
		if got := m.Click(pos); got == ClickBracket {
			t.Errorf("seed %d: spent bracket still reports bracket", seed)
		}
		if got := m.CellAt(pos); got.Char != m.Layout().Char(pos) || got.Bracket != 0 {
			t.Errorf("seed %d: spent bracket cell = %+v, want inert noise", seed, got)
		}
	}
}

func TestMachineBracketResetsAttempts(t *testing.T) {
	cfg := config.DefaultTermhackConfig()
	cfg.Rules.ResetChance = 1
	m := newTestMachine(t, cfg, nil, 11)
	m.Start(Novice)
	m.GuessWord(duds(m)[0])
	m.GuessWord(duds(m)[1])

	m.BracketTrick(m.Layout().Brackets[0].ID)

	s := m.Snapshot()
	if s.AttemptsLeft != 4 {
		t.Errorf("AttemptsLeft = %d, want 4", s.AttemptsLeft)
	}
	if last := s.Log[len(s.Log)-1]; last != ">Tries reset." {
		t.Errorf("last log = %q, want >Tries reset.", last)
	}
	if len(s.Removed) != 0 {
		t.Errorf("reset branch removed words: %v", s.Removed)
	}
}

func TestMachineBracketRemovesDud(t *testing.T) {
	cfg := config.DefaultTermhackConfig()
	cfg.Rules.ResetChance = 0
	m := newTestMachine(t, cfg, nil, 12)
	m.Start(Novice)
	m.GuessWord(duds(m)[0])
	dudsBefore := len(duds(m))

	m.BracketTrick(m.Layout().Brackets[0].ID)

	s := m.Snapshot()
	if last := s.Log[len(s.Log)-1]; last != ">Dud removed." {
		t.Fatalf("last log = %q, want >Dud removed.", last)
	}
	if s.AttemptsLeft != 3 {
		t.Errorf("dud removal should not touch attempts: %d", s.AttemptsLeft)
	}
	if len(s.Removed) != 1 || len(duds(m)) != dudsBefore-1 {
		t.Fatalf("Removed = %v, duds %d -> %d", s.Removed, dudsBefore, len(duds(m)))
	}

	id := s.Removed[0]
	if id == m.Layout().Correct {
		t.Fatal("the password was removed")
	}
	w, _ := m.Layout().Word(id)
	if text := m.Layout().SpanText(w.Span); text != strings.Repeat(".", w.Span.Len) {
		t.Errorf("removed word reads %q, want dots", text)
	}
	if c := m.CellAt(Pos{Line: w.Span.Line, Col: w.Span.Start}); c.Word != 0 {
		t.Errorf("removed word still tags its cells: %+v", c)
	}

	before := m.Snapshot()
	m.GuessWord(id)
	if diff := cmp.Diff(before, m.Snapshot()); diff != "" {
		t.Errorf("guessing a removed word changed state (-before +after):\n%s", diff)
	}
}

func TestMachineBracketWithoutDudsResets(t *testing.T) {
	cfg := config.DefaultTermhackConfig()
	cfg.Rules.ResetChance = 0
	cfg.Difficulties = cfg.Difficulties[:1]
	m := newTestMachine(t, cfg, map[int][]string{4: {"SOLO"}}, 13)
	m.Start(Novice)

	if got := len(m.Layout().Words); got != 1 {
		t.Fatalf("placed %d words, want 1", got)
	}
	m.BracketTrick(m.Layout().Brackets[0].ID)

	if last := m.Log()[len(m.Log())-1]; last != ">Tries reset." {
		t.Errorf("last log = %q, want >Tries reset.", last)
	}
}

func TestMachineHover(t *testing.T) {
	m := newTestMachine(t, config.DefaultTermhackConfig(), nil, 14)

	m.Hover(Cell{Word: 3, Bracket: 0})
	if s := m.Snapshot(); s.HoveredWord != 3 {
		t.Errorf("hover while idle: HoveredWord = %d, want 3", s.HoveredWord)
	}

	m.Start(Novice)
	if s := m.Snapshot(); s.HoveredWord != 0 || s.HoveredBracket != 0 {
		t.Error("start should clear hover")
	}

	b := m.Layout().Brackets[0]
	m.Hover(m.CellAt(Pos{Line: b.Span.Line, Col: b.Span.Start}))
	before := m.Snapshot()
	if before.HoveredBracket != b.ID || before.HoveredWord != 0 {
		t.Errorf("hovered = %d/%d, want 0/%d", before.HoveredWord, before.HoveredBracket, b.ID)
	}

	m.Hover(Cell{})
	after := m.Snapshot()
	if after.HoveredWord != 0 || after.HoveredBracket != 0 {
		t.Error("hovering nothing should clear both ids")
	}

	// Hover changes nothing else.
	after.HoveredBracket = b.ID
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("hover changed other state (-before +after):\n%s", diff)
	}
}

func TestMachineReset(t *testing.T) {
	fresh := newTestMachine(t, config.DefaultTermhackConfig(), nil, 1).Snapshot()

	tests := []struct {
		name  string
		setup func(m *Machine)
	}{
		{name: "idle", setup: func(m *Machine) {}},
		{name: "playing", setup: func(m *Machine) {
			m.Start(Advanced)
			m.GuessWord(duds(m)[0])
			m.Hover(Cell{Word: 1})
		}},
		{name: "won", setup: func(m *Machine) {
			m.Start(Novice)
			m.GuessWord(m.Layout().Correct)
		}},
		{name: "lost", setup: func(m *Machine) {
			m.Start(Master)
			for _, id := range duds(m)[:4] {
				m.GuessWord(id)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, config.DefaultTermhackConfig(), nil, 99)
			tt.setup(m)
			m.Reset()

			if diff := cmp.Diff(fresh, m.Snapshot()); diff != "" {
				t.Errorf("reset state mismatch (-want +got):\n%s", diff)
			}
			if m.Layout() != nil {
				t.Error("reset should drop the layout")
			}
		})
	}
}

func TestMachineReplayAfterRound(t *testing.T) {
	m := startedMachine(t, 15)
	m.GuessWord(m.Layout().Correct)

	m.Start(Novice)
	if m.Phase() != PhasePlaying || m.Attempts() != 4 || len(m.Log()) != 0 {
		t.Errorf("replay: phase %s, attempts %d, log %d", m.Phase(), m.Attempts(), len(m.Log()))
	}
}

func TestClickResultString(t *testing.T) {
	tests := []struct {
		c    ClickResult
		want string
	}{
		{ClickNone, "none"},
		{ClickWord, "word"},
		{ClickBracket, "bracket"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}
