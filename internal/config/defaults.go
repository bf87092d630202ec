package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the hard-coded flappy configuration.
// It mirrors defaults/flappy.yaml and backs it up if the embed fails to parse.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: FlappyPhysics{
			Gravity:        -2000,
			UpSpeed:        500,
			AngleAmplitude: 0.8,
		},
		Obstacles: FlappyObstacles{
			PoolSize:     10,
			Gap:          500,
			Margin:       100,
			SpawnOffset:  200,
			Opening:      220,
			MaxOffsetY:   180,
			InitialSpeed: 200,
			TargetSpeed:  400,
			RampDuration: 120,
		},
		Collision: FlappyCollision{
			Interval: 1.0,
		},
		Player: FlappyPlayer{
			X: 0,
		},
		Field: FlappyField{
			Width:  1280,
			Height: 720,
		},
		Assets: FlappyAssets{
			Player: "sprites/bird.png",
			Pipe:   "sprites/pipe.png",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "flappy":
		return defaultFlappyYAML
	default:
		return nil
	}
}
