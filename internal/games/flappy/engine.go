package flappy

import (
	"slices"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Cue is a sound effect requested by the engine.
type Cue int

const (
	CueJump Cue = iota
	CueHit
	CueScore
)

// String returns a human-readable name for the cue.
func (c Cue) String() string {
	switch c {
	case CueJump:
		return "Jump"
	case CueHit:
		return "Hit"
	case CueScore:
		return "Score"
	default:
		return "Unknown"
	}
}

// CueSink receives fire-and-forget cue requests. Cue must not block
// the caller.
type CueSink interface {
	Cue(Cue)
}

// BirdState is the bird's vertical motion. Its x position is fixed by config.
type BirdState struct {
	Y        float64 // Top edge in world units, y grows downward
	Velocity float64 // Units per tick, positive is falling
	Rotation float64 // Degrees, negative is nose up
}

// TickResult reports what happened during one tick.
type TickResult struct {
	Scored  int  // Pipes passed this tick
	Spawned bool // Whether a pipe appeared
	Ended   bool // Whether this tick ended the run
}

// Engine advances the simulation one tick at a time: gravity, rotation,
// scrolling, pipe spawning, collisions and scoring. It performs no I/O.
type Engine struct {
	cfg    config.FlappyConfig
	run    *RunState
	bird   BirdState
	scroll float64
	pipes  *PipeSpawner
	cues   CueSink
	ticks  int
}

// NewEngine validates cfg and builds an engine in its initial world state.
// A nil run gets a fresh RunState; cues may be nil.
func NewEngine(cfg config.FlappyConfig, run *RunState, rng RandomSource, cues CueSink) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if run == nil {
		run = NewRunState()
	}
	e := &Engine{
		cfg:   cfg,
		run:   run,
		pipes: NewPipeSpawner(cfg, rng),
		cues:  cues,
	}
	e.resetWorld()
	return e, nil
}

func (e *Engine) resetWorld() {
	e.bird = BirdState{Y: e.cfg.World.ScreenHeight / 2}
	e.scroll = 0
	e.ticks = 0
	e.pipes.Reset()
}

// Start resets the world and begins a run.
func (e *Engine) Start() {
	e.resetWorld()
	e.run.Start()
}

// Reset returns the world to its initial state and the run to idle.
func (e *Engine) Reset() {
	e.resetWorld()
	e.run.Reset()
}

// Jump applies the flap impulse. A jump while falling is boosted by the
// reactive multiplier. Outside of an active run it does nothing and
// reports false.
func (e *Engine) Jump() bool {
	if !e.run.Active() {
		return false
	}
	p := e.cfg.Physics
	force := p.JumpForce
	if e.bird.Velocity > 0 {
		force *= p.ReactiveJumpMultiplier
	}
	e.bird.Velocity = force
	e.bird.Rotation = p.JumpAngle
	e.cue(CueJump)
	return true
}

// Tick advances the simulation by one step. Nothing changes unless a run
// is active.
func (e *Engine) Tick() TickResult {
	var res TickResult
	if !e.run.Active() {
		return res
	}
	e.ticks++

	startY := e.bird.Y
	e.stepBird()

	e.scroll += e.cfg.Pipes.Speed
	res.Spawned = e.pipes.Update(e.scroll)

	if e.hitsBoundary(startY) {
		e.end(&res)
		return res
	}

	hitbox := e.Hitbox()
	for i := range e.pipes.pipes {
		pipe := &e.pipes.pipes[i]
		if e.hitsPipe(hitbox, *pipe) {
			e.end(&res)
			return res
		}
		if !pipe.Passed && pipe.ScreenX(e.scroll)+e.cfg.Pipes.Width < hitbox.X {
			pipe.Passed = true
			e.run.IncrementScore()
			res.Scored++
			e.cue(CueScore)
		}
	}
	return res
}

// stepBird integrates gravity and eases rotation toward a velocity-derived
// target.
func (e *Engine) stepBird() {
	p := e.cfg.Physics
	e.bird.Velocity += p.Gravity
	e.bird.Y += e.bird.Velocity

	target := core.ClampF(e.bird.Velocity*p.RotationGain, p.MinAngle, p.MaxAngle)
	e.bird.Rotation += (target - e.bird.Rotation) * p.RotationSmoothing
}

// hitsBoundary checks the ceiling (at tick start or after the move) and
// the ground.
func (e *Engine) hitsBoundary(startY float64) bool {
	floor := e.cfg.World.ScreenHeight - e.cfg.World.GroundHeight
	return startY <= 0 || e.bird.Y <= 0 || e.bird.Y+e.cfg.Bird.Size >= floor
}

// hitsPipe tests the hitbox against both halves of a pipe pair.
func (e *Engine) hitsPipe(hitbox core.RectF, p PipePair) bool {
	return core.Overlaps(hitbox, p.TopRect(e.scroll, e.cfg)) ||
		core.Overlaps(hitbox, p.BottomRect(e.scroll, e.cfg))
}

func (e *Engine) end(res *TickResult) {
	if e.run.End() {
		res.Ended = true
		e.cue(CueHit)
	}
}

func (e *Engine) cue(c Cue) {
	if e.cues != nil && e.run.SoundEnabled() {
		e.cues.Cue(c)
	}
}

// Hitbox returns the bird's collision rectangle, inset from its drawn bounds.
func (e *Engine) Hitbox() core.RectF {
	b := e.cfg.Bird
	return core.NewRectF(b.X, e.bird.Y, b.Size, b.Size).Inset(b.HitboxInset)
}

func (e *Engine) Bird() BirdState             { return e.bird }
func (e *Engine) Scroll() float64             { return e.scroll }
func (e *Engine) Ticks() int                  { return e.ticks }
func (e *Engine) Run() *RunState              { return e.run }
func (e *Engine) Config() config.FlappyConfig { return e.cfg }
func (e *Engine) Phase() Phase                { return e.run.Phase() }

// Pipes returns a snapshot of the live pipes, oldest first.
func (e *Engine) Pipes() []PipePair {
	return slices.Clone(e.pipes.Pipes())
}
