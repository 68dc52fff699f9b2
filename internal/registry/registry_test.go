package registry

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-create", func() Game { return &stubGame{id: "stub-create"} })

	if !Exists("stub-create") {
		t.Fatal("registered game not found")
	}

	a, err := Create("stub-create")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, _ := Create("stub-create")
	if a == b {
		t.Error("Create returned the same instance twice")
	}
	if a.ID() != "stub-create" {
		t.Errorf("ID = %q, want stub-create", a.ID())
	}
}

func TestCreateUnknown(t *testing.T) {
	if Exists("no-such-game") {
		t.Fatal("unexpected registration")
	}
	if _, err := Create("no-such-game"); err == nil {
		t.Error("expected error for unknown game")
	}
}

func TestRegisterTwicePanics(t *testing.T) {
	Register("stub-twice", func() Game { return &stubGame{id: "stub-twice"} })

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("stub-twice", func() Game { return &stubGame{id: "stub-twice"} })
}
