package flappy

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGameStartsIdle(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	state := g.State()
	if !state.Idle() {
		t.Fatalf("new game should be idle, got %+v", state)
	}

	// Ticks without input leave the bird alone
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Engine().Bird().Y != 400 {
		t.Errorf("idle steps moved the bird to %g", g.Engine().Bird().Y)
	}
}

func TestGameStartOnJumpOrConfirm(t *testing.T) {
	for _, a := range []core.Action{core.ActionJump, core.ActionConfirm} {
		g := New()
		g.Reset(testRuntime(1))

		res := g.Step(input(a))
		if !res.State.Playing {
			t.Errorf("%s should start the run", a)
		}
	}
}

func TestGameDeterminism(t *testing.T) {
	// Same seed and inputs must produce identical runs
	seed := int64(12345)

	inputSequence := make([]core.InputFrame, 400)
	for i := range inputSequence {
		inputSequence[i] = core.NewInputFrame()
		if i == 0 || i%18 == 0 {
			inputSequence[i].Set(core.ActionJump)
		}
	}

	run := func() (*Game, core.GameState) {
		g := New()
		g.Reset(testRuntime(seed))
		var state core.GameState
		for _, in := range inputSequence {
			state = g.Step(in).State
			if state.GameOver {
				break
			}
		}
		return g, state
	}

	g1, state1 := run()
	g2, state2 := run()

	if state1.Score != state2.Score {
		t.Errorf("scores differ: %d vs %d", state1.Score, state2.Score)
	}
	if g1.Engine().Ticks() != g2.Engine().Ticks() {
		t.Errorf("tick counts differ: %d vs %d", g1.Engine().Ticks(), g2.Engine().Ticks())
	}
	if g1.Engine().Bird() != g2.Engine().Bird() {
		t.Errorf("bird states differ: %+v vs %+v", g1.Engine().Bird(), g2.Engine().Bird())
	}

	p1, p2 := g1.Engine().Pipes(), g2.Engine().Pipes()
	if len(p1) != len(p2) {
		t.Fatalf("pipe counts differ: %d vs %d", len(p1), len(p2))
	}
	for i := range p1 {
		if p1[i].GapTop != p2[i].GapTop {
			t.Errorf("pipe %d gap differs: %g vs %g", i, p1[i].GapTop, p2[i].GapTop)
		}
	}
}

func TestGameRunEndsOnGround(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))
	g.Step(input(core.ActionJump))

	endedTicks := 0
	for i := 0; i < 200; i++ {
		if g.Step(core.NewInputFrame()).Ended {
			endedTicks++
		}
	}

	if endedTicks != 1 {
		t.Errorf("Ended reported %d times, expected 1", endedTicks)
	}
	state := g.State()
	if !state.GameOver || state.Playing {
		t.Errorf("expected game over, got %+v", state)
	}
}

func TestGamePause(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))
	g.Step(input(core.ActionJump))

	g.Step(input(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}

	yBefore := g.Engine().Bird().Y
	g.Step(input(core.ActionJump))
	g.Step(core.NewInputFrame())
	if g.Engine().Bird().Y != yBefore {
		t.Errorf("bird moved while paused: %g -> %g", yBefore, g.Engine().Bird().Y)
	}

	g.Step(input(core.ActionPause))
	if g.State().Paused {
		t.Error("game should be unpaused")
	}
}

func TestGameResetKeepsHighScoreAndSound(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	g.Step(input(core.ActionToggleSound))
	g.run.RecordHighScore(9)

	g.Reset(testRuntime(2))

	state := g.State()
	if state.HighScore != 9 {
		t.Errorf("HighScore = %d, expected 9", state.HighScore)
	}
	if state.SoundEnabled {
		t.Error("sound preference should survive Reset()")
	}
	if !state.Idle() {
		t.Error("Reset() should return to idle")
	}
}

func TestGameRender(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !strings.Contains(screen.String(), "FLAPPY BIRD") {
		t.Error("idle screen should show instructions")
	}

	g.Step(input(core.ActionJump))
	for i := 0; i < 200 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over screen should say so")
	}
	if strings.Contains(screen.String(), "FLAPPY BIRD") {
		t.Error("instructions should be gone after the run started")
	}
}

func TestGameRenderBird(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))
	g.Step(input(core.ActionJump))
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	found := false
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			if screen.GetCell(x, y).Color == core.ColorOrange {
				found = true
			}
		}
	}
	if !found {
		t.Error("expected the bird's beak on screen")
	}
}
