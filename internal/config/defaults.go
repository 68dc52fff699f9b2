package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default Flappy Bird configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: FlappyWorld{
			ScreenWidth:  400,
			ScreenHeight: 800,
			GroundHeight: 100,
		},
		Bird: FlappyBird{
			X:           100, // A quarter of the screen width
			Size:        40,
			HitboxInset: 10,
		},
		Physics: FlappyPhysics{
			Gravity:                0.6,
			JumpForce:              -8,
			ReactiveJumpMultiplier: 1.15,
			JumpAngle:              -35,
			RotationGain:           4.5,
			MinAngle:               -35,
			MaxAngle:               90,
			RotationSmoothing:      0.12,
		},
		Pipes: FlappyPipes{
			Width:         70,
			Gap:           200,
			Speed:         4.5,
			SpawnDistance: 300,
			MinMargin:     100,
			DespawnMargin: 200,
		},
	}
}

// DefaultFlappyYAML returns the embedded default YAML.
func DefaultFlappyYAML() []byte {
	return defaultFlappyYAML
}
