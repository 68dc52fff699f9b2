package flappy

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// RandomSource yields uniformly distributed floats in [0, 1).
// *rand.Rand satisfies it; tests supply fixed sequences.
type RandomSource interface {
	Float64() float64
}

// PipePair is one obstacle: a top pipe down to GapTop and a bottom pipe
// from GapTop + gap to the ground.
type PipePair struct {
	ID          int64   // Monotonic, derived from spawn time
	SpawnOffset float64 // World x where the pipe lives; screen x = SpawnOffset - scroll
	GapTop      float64 // Height of the top pipe
	Passed      bool    // Whether the bird has cleared this pipe (for scoring)
}

// ScreenX returns the pipe's left edge in screen space.
func (p PipePair) ScreenX(scroll float64) float64 {
	return p.SpawnOffset - scroll
}

// GapBottom returns the y where the bottom pipe starts.
func (p PipePair) GapBottom(gap float64) float64 {
	return p.GapTop + gap
}

// TopRect returns the collision rectangle for the top pipe.
func (p PipePair) TopRect(scroll float64, cfg config.FlappyConfig) core.RectF {
	return core.NewRectF(p.ScreenX(scroll), 0, cfg.Pipes.Width, p.GapTop)
}

// BottomRect returns the collision rectangle for the bottom pipe.
// It runs to the bottom of the screen, behind the ground.
func (p PipePair) BottomRect(scroll float64, cfg config.FlappyConfig) core.RectF {
	bottomY := p.GapBottom(cfg.Pipes.Gap)
	return core.NewRectF(p.ScreenX(scroll), bottomY, cfg.Pipes.Width, cfg.World.ScreenHeight-bottomY)
}

// PipeSpawner decides when pipes appear, how high their gaps sit and when
// they are dropped. Cadence depends only on scroll distance, so spacing is
// identical regardless of frame timing.
type PipeSpawner struct {
	cfg     config.FlappyConfig
	rng     RandomSource
	now     func() time.Time
	spawned int // Spawn boundaries crossed so far
	lastID  int64
	pipes   []PipePair
}

// NewPipeSpawner creates a spawner. A nil rng falls back to a time-seeded source.
func NewPipeSpawner(cfg config.FlappyConfig, rng RandomSource) *PipeSpawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &PipeSpawner{
		cfg:   cfg,
		rng:   rng,
		now:   time.Now,
		pipes: make([]PipePair, 0, 8),
	}
}

// Reset clears all pipes and the spawn counter.
func (s *PipeSpawner) Reset() {
	s.pipes = s.pipes[:0]
	s.spawned = 0
}

// Update spawns one pipe when scroll has crossed the next spawn boundary,
// pruning pipes that fell far behind at the same moment. It reports
// whether a pipe was spawned.
func (s *PipeSpawner) Update(scroll float64) bool {
	index := int(math.Floor(scroll / s.cfg.Pipes.SpawnDistance))
	if index <= s.spawned {
		return false
	}
	s.spawned++

	s.prune(scroll)
	s.pipes = append(s.pipes, s.Spawn(scroll))
	return true
}

// Spawn creates a pipe one screen width ahead of scroll with a random gap.
func (s *PipeSpawner) Spawn(scroll float64) PipePair {
	lo, hi := s.cfg.GapRange()
	return PipePair{
		ID:          s.nextID(),
		SpawnOffset: scroll + s.cfg.World.ScreenWidth,
		GapTop:      lo + s.rng.Float64()*(hi-lo),
	}
}

// prune drops pipes more than a screen plus the despawn margin behind.
func (s *PipeSpawner) prune(scroll float64) {
	limit := s.cfg.World.ScreenWidth + s.cfg.Pipes.DespawnMargin
	kept := s.pipes[:0]
	for _, p := range s.pipes {
		if scroll-p.SpawnOffset < limit {
			kept = append(kept, p)
		}
	}
	s.pipes = kept
}

// nextID returns a time-based id that never repeats or goes backwards.
func (s *PipeSpawner) nextID() int64 {
	id := s.now().UnixNano()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Pipes returns the live pipes. The slice is owned by the spawner.
func (s *PipeSpawner) Pipes() []PipePair {
	return s.pipes
}
