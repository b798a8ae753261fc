package registry

import (
	"testing"

	"github.com/vovakirdan/termlink/internal/core"
)

type stubGame struct {
	id    string
	w, h  int
	state core.GameState
}

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(cfg core.RuntimeConfig) { g.w, g.h = cfg.ScreenW, cfg.ScreenH }
func (g *stubGame) Resize(w, h int) { g.w, g.h = w, h }
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{State: g.state} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return g.state }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_create", func() Game { return &stubGame{id: "stub_create"} })

	if !Exists("stub_create") {
		t.Fatal("registered game should exist")
	}
	g, err := Create("stub_create")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "stub_create" {
		t.Errorf("ID() = %q, want stub_create", g.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "stub_create" {
			found = true
			if info.Title != "Stub stub_create" {
				t.Errorf("Title = %q, want Stub stub_create", info.Title)
			}
		}
	}
	if !found {
		t.Error("List should include the registered game")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game"); err == nil {
		t.Error("Create should fail for an unknown ID")
	}
	if Exists("no_such_game") {
		t.Error("Exists should be false for an unknown ID")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
}

func TestListSorted(t *testing.T) {
	Register("stub_b", func() Game { return &stubGame{id: "stub_b"} })
	Register("stub_a", func() Game { return &stubGame{id: "stub_a"} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}
