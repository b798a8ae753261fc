package termhack

import (
	"context"
	"fmt"
	"slices"

	"github.com/looplab/fsm"
	"github.com/samber/lo"
)

// Phase is the coarse round state.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhasePlaying Phase = "playing"
	PhaseWon     Phase = "won"
	PhaseLost    Phase = "lost"
)

// Phase machine events.
const (
	eventStart = "start"
	eventWin   = "win"
	eventLose  = "lose"
)

// Guess is one scored attempt.
type Guess struct {
	Word     string
	Likeness int
}

// Action is an input to Machine.Dispatch.
type Action interface {
	isAction()
}

// StartAction generates a new puzzle and begins a round.
type StartAction struct {
	Difficulty Difficulty
}

// GuessAction submits the word with the given id.
type GuessAction struct {
	Word WordID
}

// BracketAction triggers the bracket trick with the given id.
type BracketAction struct {
	Bracket BracketID
}

// HoverAction sets the hovered ids. Zero ids clear the hover.
type HoverAction struct {
	Word    WordID
	Bracket BracketID
}

// ResetAction returns to the idle state.
type ResetAction struct{}

func (StartAction) isAction()   {}
func (GuessAction) isAction()   {}
func (BracketAction) isAction() {}
func (HoverAction) isAction()   {}
func (ResetAction) isAction()   {}

// ClickResult reports which branch a click took.
type ClickResult int

const (
	ClickNone ClickResult = iota
	ClickWord
	ClickBracket
)

func (c ClickResult) String() string {
	switch c {
	case ClickWord:
		return "word"
	case ClickBracket:
		return "bracket"
	default:
		return "none"
	}
}

// Machine holds one game's state. All changes go through Dispatch; invalid
// actions (wrong phase, stale ids, repeated guesses) leave it unchanged.
// A Machine is not safe for concurrent use.
type Machine struct {
	gen   *Generator
	phase *fsm.FSM

	difficulty     Difficulty
	attempts       int
	layout         *Layout
	guesses        []Guess
	log            []string
	removed        []WordID
	hoveredWord    WordID
	hoveredBracket BracketID
}

// NewMachine returns an idle machine generating puzzles with gen.
func NewMachine(gen *Generator) *Machine {
	m := &Machine{gen: gen}
	m.phase = fsm.NewFSM(
		string(PhaseIdle),
		fsm.Events{
			{Name: eventStart, Src: []string{string(PhaseIdle), string(PhaseWon), string(PhaseLost)}, Dst: string(PhasePlaying)},
			{Name: eventWin, Src: []string{string(PhasePlaying)}, Dst: string(PhaseWon)},
			{Name: eventLose, Src: []string{string(PhasePlaying)}, Dst: string(PhaseLost)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, _ *fsm.Event) {
				m.clearHover()
			},
		},
	)
	m.resetFields()
	return m
}

// Dispatch applies a single action.
func (m *Machine) Dispatch(a Action) {
	switch a := a.(type) {
	case StartAction:
		m.start(a.Difficulty)
	case GuessAction:
		m.guess(a.Word)
	case BracketAction:
		m.bracket(a.Bracket)
	case HoverAction:
		m.hoveredWord, m.hoveredBracket = a.Word, a.Bracket
	case ResetAction:
		m.reset()
	}
}

// Start begins a new round at difficulty d.
func (m *Machine) Start(d Difficulty) { m.Dispatch(StartAction{Difficulty: d}) }

// GuessWord submits the word with the given id.
func (m *Machine) GuessWord(id WordID) { m.Dispatch(GuessAction{Word: id}) }

// BracketTrick triggers the bracket group with the given id.
func (m *Machine) BracketTrick(id BracketID) { m.Dispatch(BracketAction{Bracket: id}) }

// Hover sets the hovered ids from a cell's tags. The zero Cell clears them.
func (m *Machine) Hover(c Cell) { m.Dispatch(HoverAction{Word: c.Word, Bracket: c.Bracket}) }

// Reset returns to the idle initial state.
func (m *Machine) Reset() { m.Dispatch(ResetAction{}) }

// Click resolves the cell at p and guesses or triggers it.
func (m *Machine) Click(p Pos) ClickResult {
	if m.layout == nil {
		return ClickNone
	}
	cell := m.layout.CellAt(p)
	switch {
	case cell.Word != 0:
		m.GuessWord(cell.Word)
		return ClickWord
	case cell.Bracket != 0:
		m.BracketTrick(cell.Bracket)
		return ClickBracket
	default:
		return ClickNone
	}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return Phase(m.phase.Current())
}

// Difficulty returns the difficulty of the current or last round.
func (m *Machine) Difficulty() Difficulty {
	return m.difficulty
}

// Attempts returns the attempts left.
func (m *Machine) Attempts() int {
	return m.attempts
}

// Guesses returns the number of scored guesses this round.
func (m *Machine) Guesses() int {
	return len(m.guesses)
}

// Log returns a copy of the feedback log.
func (m *Machine) Log() []string {
	return slices.Clone(m.log)
}

// LastGuess returns the most recent scored guess.
func (m *Machine) LastGuess() (Guess, bool) {
	if len(m.guesses) == 0 {
		return Guess{}, false
	}
	return m.guesses[len(m.guesses)-1], true
}

// CellAt returns the cell at p, or the zero Cell when no puzzle is loaded.
func (m *Machine) CellAt(p Pos) Cell {
	if m.layout == nil {
		return Cell{}
	}
	return m.layout.CellAt(p)
}

// Layout returns the current puzzle, or nil when idle.
func (m *Machine) Layout() *Layout {
	return m.layout
}

// Snapshot is a read-only copy of the machine state.
type Snapshot struct {
	Phase          Phase
	Difficulty     Difficulty
	AttemptsLeft   int
	MaxAttempts    int
	Left           []HexLine
	Right          []HexLine
	HoveredWord    WordID
	HoveredBracket BracketID
	Log            []string
	Guesses        []Guess
	Removed        []WordID
	WordLength     int
	CorrectWord    string // Set only once the round is over
}

// Snapshot returns a copy of the current state.
func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{
		Phase:          m.Phase(),
		Difficulty:     m.difficulty,
		AttemptsLeft:   m.attempts,
		MaxAttempts:    m.maxAttempts(),
		HoveredWord:    m.hoveredWord,
		HoveredBracket: m.hoveredBracket,
		Log:            slices.Clone(m.log),
		Guesses:        slices.Clone(m.guesses),
		Removed:        slices.Clone(m.removed),
		WordLength:     m.gen.cfg.Rules.DefaultLength,
	}
	if m.layout != nil {
		s.Left = m.layout.Left()
		s.Right = m.layout.Right()
		s.WordLength = m.layout.WordLength
		if s.Phase == PhaseWon || s.Phase == PhaseLost {
			s.CorrectWord = m.layout.CorrectWord()
		}
	}
	return s
}

func (m *Machine) maxAttempts() int {
	return m.gen.cfg.Rules.Attempts
}

func (m *Machine) start(d Difficulty) {
	if _, ok := m.gen.cfg.Difficulty(string(d)); !ok {
		return
	}
	if m.Phase() == PhasePlaying {
		m.phase.SetState(string(PhaseIdle))
	}

	m.resetFields()
	m.difficulty = d
	m.layout = m.gen.Generate(d)
	m.fire(eventStart)
}

func (m *Machine) guess(id WordID) {
	if m.Phase() != PhasePlaying {
		return
	}
	w, ok := m.layout.Word(id)
	if !ok || w.Removed {
		return
	}
	text := m.layout.SpanText(w.Span)
	if lo.ContainsBy(m.guesses, func(g Guess) bool { return g.Word == text }) {
		return
	}

	correct := m.layout.CorrectWord()
	likeness := Likeness(text, correct)
	m.guesses = append(m.guesses, Guess{Word: text, Likeness: likeness})

	if text == correct {
		m.log = append(m.log, ">"+text, ">Exact match!", ">Please wait", ">while system", ">is accessed.")
		m.fire(eventWin)
		return
	}

	m.attempts--
	if m.attempts <= 0 {
		m.attempts = 0
		m.log = append(m.log,
			">"+text,
			">Entry denied.",
			fmt.Sprintf(">Likeness=%d", likeness),
			">TERMINAL LOCKED",
			">Password was: "+correct,
		)
		m.fire(eventLose)
		return
	}
	m.log = append(m.log, ">"+text, ">Entry denied.", fmt.Sprintf(">Likeness=%d", likeness))
}

func (m *Machine) bracket(id BracketID) {
	if m.Phase() != PhasePlaying {
		return
	}
	b, ok := m.layout.Bracket(id)
	if !ok || b.Spent {
		return
	}
	m.layout.spendBracket(id)

	rules := m.gen.cfg.Rules
	roll := m.gen.rng.Float64()
	duds := lo.Filter(m.layout.Words, func(w WordGroup, _ int) bool {
		return !w.Removed && w.ID != m.layout.Correct
	})

	if roll < rules.ResetChance || len(duds) == 0 {
		m.attempts = rules.Attempts
		m.log = append(m.log, ">Tries reset.")
		return
	}

	dud := duds[m.gen.rng.Intn(len(duds))]
	m.layout.removeWord(dud.ID, []rune(m.gen.cfg.Grid.RemovedFiller)[0])
	m.removed = append(m.removed, dud.ID)
	m.log = append(m.log, ">Dud removed.")
}

func (m *Machine) reset() {
	m.phase.SetState(string(PhaseIdle))
	m.resetFields()
}

// resetFields restores every round field to its idle value.
func (m *Machine) resetFields() {
	if len(m.gen.cfg.Difficulties) > 0 {
		m.difficulty = Difficulty(m.gen.cfg.Difficulties[0].Name)
	}
	m.attempts = m.maxAttempts()
	m.layout = nil
	m.guesses = nil
	m.log = nil
	m.removed = nil
	m.clearHover()
}

func (m *Machine) clearHover() {
	m.hoveredWord = 0
	m.hoveredBracket = 0
}

// fire triggers a phase event. Callers check the source phase first;
// a rejected event leaves the phase unchanged.
func (m *Machine) fire(event string) {
	_ = m.phase.Event(context.Background(), event)
}

// Likeness counts index-aligned matching characters, up to the length of
// the shorter word.
func Likeness(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n := 0
	for i, end := 0, min(len(ra), len(rb)); i < end; i++ {
		if ra[i] == rb[i] {
			n++
		}
	}
	return n
}
