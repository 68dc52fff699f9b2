package flappy

// Phase is the lifecycle of a run.
type Phase int

const (
	PhaseIdle     Phase = iota // Waiting on the instructions screen
	PhasePlaying               // Ticks advance the simulation
	PhaseGameOver              // Latched after the first collision
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhasePlaying:
		return "Playing"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// RunState holds the flags and counters of a play session. It is owned by
// the game controller and handed to the engine by pointer; nothing in here
// is persisted, the high score lives only as long as the process.
type RunState struct {
	playing      bool
	gameOver     bool
	soundEnabled bool
	score        int
	highScore    int
	newBest      bool
}

// NewRunState returns an idle run with sound enabled.
func NewRunState() *RunState {
	return &RunState{soundEnabled: true}
}

// Start begins a new run with a zero score.
func (r *RunState) Start() {
	r.playing = true
	r.gameOver = false
	r.score = 0
	r.newBest = false
}

// End latches game over and folds the score into the high score.
// Only the first call of a run has an effect; it reports whether this
// call ended the run.
func (r *RunState) End() bool {
	if !r.playing || r.gameOver {
		return false
	}
	r.playing = false
	r.gameOver = true
	r.newBest = r.RecordHighScore(r.score)
	return true
}

// Reset returns to idle and clears the score. High score and sound
// preference survive.
func (r *RunState) Reset() {
	r.playing = false
	r.gameOver = false
	r.score = 0
	r.newBest = false
}

// IncrementScore adds one point to a run in progress.
func (r *RunState) IncrementScore() {
	if !r.Active() {
		return
	}
	r.score++
}

// RecordHighScore raises the high score if score beats it and reports
// whether it did.
func (r *RunState) RecordHighScore(score int) bool {
	if score <= r.highScore {
		return false
	}
	r.highScore = score
	return true
}

// ToggleSound flips the sound preference and returns the new value.
func (r *RunState) ToggleSound() bool {
	r.soundEnabled = !r.soundEnabled
	return r.soundEnabled
}

// Active reports whether ticks should advance the simulation.
func (r *RunState) Active() bool { return r.playing && !r.gameOver }

func (r *RunState) Playing() bool      { return r.playing }
func (r *RunState) GameOver() bool     { return r.gameOver }
func (r *RunState) Score() int         { return r.score }
func (r *RunState) HighScore() int     { return r.highScore }
func (r *RunState) SoundEnabled() bool { return r.soundEnabled }

// NewBest reports whether the finished run raised the high score.
func (r *RunState) NewBest() bool { return r.newBest }

// Phase derives the lifecycle phase from the flags.
func (r *RunState) Phase() Phase {
	switch {
	case r.gameOver:
		return PhaseGameOver
	case r.playing:
		return PhasePlaying
	default:
		return PhaseIdle
	}
}
