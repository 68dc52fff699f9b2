// Package flappy implements the Flappy Bird engine and its host adapter.
// The player keeps a falling bird airborne and threads it through gaps in
// pipes that scroll in from the right.
package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// Game adapts the engine to the registry.Game contract used by the host.
type Game struct {
	engine  *Engine
	run     *RunState
	cfg     config.FlappyConfig
	runtime core.RuntimeConfig
	paused  bool
}

// configPath stores the custom config path set via CLI
var configPath string

// cueSink receives audio cues for every game created after it is set.
var cueSink CueSink

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetCueSink routes audio cues of new games to sink.
func SetCueSink(sink CueSink) {
	cueSink = sink
}

// New creates a new Flappy Bird game instance.
func New() *Game {
	return &Game{run: NewRunState()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Reset reloads the config and returns to the instructions screen.
// The high score and sound preference carry over.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false

	cfg, err := config.LoadFlappy(configPath)
	if err != nil {
		cfg = config.DefaultFlappyConfig()
	}
	g.cfg = cfg

	rng := rand.New(rand.NewSource(runtime.Seed))
	engine, err := NewEngine(cfg, g.run, rng, cueSink)
	if err != nil {
		// Defaults always validate
		engine, _ = NewEngine(config.DefaultFlappyConfig(), g.run, rng, cueSink)
		g.cfg = config.DefaultFlappyConfig()
	}
	g.engine = engine
	g.engine.Reset()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionToggleSound) {
		g.run.ToggleSound()
	}

	switch g.run.Phase() {
	case PhaseIdle:
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
			g.engine.Start()
		}
		return core.StepResult{State: g.State()}

	case PhaseGameOver:
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionJump) {
		g.engine.Jump()
	}
	res := g.engine.Tick()

	return core.StepResult{State: g.State(), Ended: res.Ended}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:        g.run.Score(),
		HighScore:    g.run.HighScore(),
		Playing:      g.run.Playing(),
		GameOver:     g.run.GameOver(),
		Paused:       g.paused,
		SoundEnabled: g.run.SoundEnabled(),
		NewBest:      g.run.NewBest(),
	}
}

// Engine exposes the underlying simulation.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Register the game with the registry
func init() {
	registry.Register("flappy", func() registry.Game {
		return New()
	})
}
