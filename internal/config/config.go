// Package config provides YAML-based game configuration loading and
// validation, plus the leaderboard connection settings.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when loaded values cannot drive a game.
var ErrInvalidConfig = errors.New("config: invalid flappy config")

// FlappyConfig contains all configuration for the Flappy Bird game.
// Distances are world units (pixels of a 400x800 playfield); the
// platform scales them to terminal cells when rendering.
type FlappyConfig struct {
	World   FlappyWorld   `yaml:"world"`
	Bird    FlappyBird    `yaml:"bird"`
	Physics FlappyPhysics `yaml:"physics"`
	Pipes   FlappyPipes   `yaml:"pipes"`
}

// FlappyWorld defines the playfield metrics.
type FlappyWorld struct {
	ScreenWidth  float64 `yaml:"screen_width"`
	ScreenHeight float64 `yaml:"screen_height"`
	GroundHeight float64 `yaml:"ground_height"`
}

// FlappyBird defines the bird sprite and hit-box.
type FlappyBird struct {
	X           float64 `yaml:"x"`
	Size        float64 `yaml:"size"`
	HitboxInset float64 `yaml:"hitbox_inset"` // Shrink applied to every side of the sprite
}

// FlappyPhysics defines per-tick physics parameters.
type FlappyPhysics struct {
	Gravity                float64 `yaml:"gravity"`
	JumpForce              float64 `yaml:"jump_force"`
	ReactiveJumpMultiplier float64 `yaml:"reactive_jump_multiplier"` // Applied when jumping while falling
	JumpAngle              float64 `yaml:"jump_angle"`
	RotationGain           float64 `yaml:"rotation_gain"`
	MinAngle               float64 `yaml:"min_angle"`
	MaxAngle               float64 `yaml:"max_angle"`
	RotationSmoothing      float64 `yaml:"rotation_smoothing"`
}

// FlappyPipes defines pipe geometry and spawn cadence.
type FlappyPipes struct {
	Width         float64 `yaml:"width"`
	Gap           float64 `yaml:"gap"`
	Speed         float64 `yaml:"speed"`
	SpawnDistance float64 `yaml:"spawn_distance"`
	MinMargin     float64 `yaml:"min_margin"`
	DespawnMargin float64 `yaml:"despawn_margin"` // Extra distance past one screen before a pipe is pruned
}

// GapRange returns the interval the top of a gap is drawn from.
func (c FlappyConfig) GapRange() (lo, hi float64) {
	lo = c.Pipes.MinMargin
	hi = c.World.ScreenHeight - c.Pipes.Gap - c.Pipes.MinMargin - c.World.GroundHeight
	return lo, hi
}

// Validate reports configuration that would make the simulation
// meaningless, such as an empty gap-height range.
func (c FlappyConfig) Validate() error {
	switch {
	case c.World.ScreenWidth <= 0 || c.World.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen must have positive size, got %gx%g",
			ErrInvalidConfig, c.World.ScreenWidth, c.World.ScreenHeight)
	case c.Bird.Size <= 0:
		return fmt.Errorf("%w: bird size must be positive", ErrInvalidConfig)
	case c.Bird.HitboxInset < 0 || 2*c.Bird.HitboxInset >= c.Bird.Size:
		return fmt.Errorf("%w: hitbox inset %g leaves no hit-box for bird size %g",
			ErrInvalidConfig, c.Bird.HitboxInset, c.Bird.Size)
	case c.Pipes.Width <= 0 || c.Pipes.Gap <= 0:
		return fmt.Errorf("%w: pipe width and gap must be positive", ErrInvalidConfig)
	case c.Pipes.Speed <= 0:
		return fmt.Errorf("%w: pipe speed must be positive", ErrInvalidConfig)
	case c.Pipes.SpawnDistance <= 0:
		return fmt.Errorf("%w: spawn distance must be positive", ErrInvalidConfig)
	case c.Physics.JumpForce >= 0:
		return fmt.Errorf("%w: jump force must be negative (upward), got %g",
			ErrInvalidConfig, c.Physics.JumpForce)
	case c.Physics.ReactiveJumpMultiplier < 1:
		return fmt.Errorf("%w: reactive jump multiplier must be at least 1, got %g",
			ErrInvalidConfig, c.Physics.ReactiveJumpMultiplier)
	case c.Physics.RotationSmoothing < 0 || c.Physics.RotationSmoothing > 1:
		return fmt.Errorf("%w: rotation smoothing must be within [0, 1]", ErrInvalidConfig)
	case c.Physics.MinAngle > c.Physics.MaxAngle:
		return fmt.Errorf("%w: min angle above max angle", ErrInvalidConfig)
	}

	lo, hi := c.GapRange()
	if hi <= lo {
		return fmt.Errorf("%w: screen height %g must exceed gap %g + 2x margin %g + ground %g",
			ErrInvalidConfig, c.World.ScreenHeight, c.Pipes.Gap, c.Pipes.MinMargin, c.World.GroundHeight)
	}
	return nil
}
