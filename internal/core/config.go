package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score        int  // Current score
	HighScore    int  // Best score this process has seen
	Playing      bool // Whether a run is in progress
	GameOver     bool // Whether the run has ended
	Paused       bool // Whether the host is skipping ticks
	SoundEnabled bool // Whether audio cues are requested
	NewBest      bool // Whether the finished run raised the high score
}

// Idle reports whether no run is in progress and none has just ended.
func (s GameState) Idle() bool {
	return !s.Playing && !s.GameOver
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State GameState

	// Ended is true only on the tick that finished the run.
	Ended bool
}
