// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade platform.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains all configuration for the flappy simulation.
// Distances are world units (sprite pixels), times are seconds.
type FlappyConfig struct {
	Physics   FlappyPhysics   `yaml:"physics"`
	Obstacles FlappyObstacles `yaml:"obstacles"`
	Collision FlappyCollision `yaml:"collision"`
	Player    FlappyPlayer    `yaml:"player"`
	Field     FlappyField     `yaml:"field"`
	Assets    FlappyAssets    `yaml:"assets"`
}

// FlappyPhysics defines the player's physics parameters.
type FlappyPhysics struct {
	Gravity        float64 `yaml:"gravity"`         // vertical acceleration, negative = down
	UpSpeed        float64 `yaml:"up_speed"`        // vertical velocity while jump is held
	AngleAmplitude float64 `yaml:"angle_amplitude"` // tilt per unit of v.y/up_speed
}

// FlappyObstacles defines the obstacle pool and its motion.
type FlappyObstacles struct {
	PoolSize             int     `yaml:"pool_size"`
	Gap                  float64 `yaml:"gap"`          // horizontal distance between units
	Margin               float64 `yaml:"margin"`       // beyond half the field width before recycling
	SpawnOffset          float64 `yaml:"spawn_offset"` // first unit's distance past the right edge
	Opening              float64 `yaml:"opening"`      // vertical opening between the pipes
	MaxOffsetY           float64 `yaml:"max_offset_y"` // random vertical shift range of a unit
	InitialSpeed         float64 `yaml:"initial_speed"`
	TargetSpeed          float64 `yaml:"target_speed"`
	RampDuration         float64 `yaml:"ramp_duration"`
	RerandomizeOnRecycle bool    `yaml:"rerandomize_on_recycle"`
}

// FlappyCollision defines the collision check cadence.
type FlappyCollision struct {
	Interval float64 `yaml:"interval"`
	Bounds   bool    `yaml:"bounds"` // leaving the field vertically also ends the run
}

// FlappyPlayer defines player placement.
type FlappyPlayer struct {
	X float64 `yaml:"x"` // fixed horizontal position, also the scoring line
}

// FlappyField is the visible field in world units.
type FlappyField struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FlappyAssets names the sprites used for drawing and sizing.
type FlappyAssets struct {
	Player string `yaml:"player"`
	Pipe   string `yaml:"pipe"`
}

// LeftBoundary returns the x below which an obstacle is recycled.
func (c FlappyConfig) LeftBoundary() float64 {
	return -(c.Field.Width/2 + c.Obstacles.Margin)
}

// RampAcceleration returns the horizontal acceleration of an obstacle during
// the speed ramp. Obstacles move left, so a speed-up is a negative value.
func (c FlappyConfig) RampAcceleration() float64 {
	o := c.Obstacles
	if o.RampDuration <= 0 {
		return 0
	}
	return -(o.TargetSpeed - o.InitialSpeed) / o.RampDuration
}

// Validate reports every invalid field of the configuration.
func (c FlappyConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Physics.UpSpeed > 0, "physics.up_speed must be positive, got %v", c.Physics.UpSpeed)
	check(c.Obstacles.PoolSize > 0, "obstacles.pool_size must be positive, got %d", c.Obstacles.PoolSize)
	check(c.Obstacles.Gap > 0, "obstacles.gap must be positive, got %v", c.Obstacles.Gap)
	check(c.Obstacles.Margin >= 0, "obstacles.margin must not be negative, got %v", c.Obstacles.Margin)
	check(c.Obstacles.Opening > 0, "obstacles.opening must be positive, got %v", c.Obstacles.Opening)
	check(c.Obstacles.MaxOffsetY >= 0, "obstacles.max_offset_y must not be negative, got %v", c.Obstacles.MaxOffsetY)
	check(c.Obstacles.InitialSpeed > 0, "obstacles.initial_speed must be positive, got %v", c.Obstacles.InitialSpeed)
	check(c.Obstacles.TargetSpeed >= c.Obstacles.InitialSpeed,
		"obstacles.target_speed (%v) must be at least initial_speed (%v)", c.Obstacles.TargetSpeed, c.Obstacles.InitialSpeed)
	check(c.Obstacles.RampDuration >= 0, "obstacles.ramp_duration must not be negative, got %v", c.Obstacles.RampDuration)
	check(c.Collision.Interval > 0, "collision.interval must be positive, got %v", c.Collision.Interval)
	check(c.Field.Width > 0 && c.Field.Height > 0, "field must have a positive size, got %vx%v", c.Field.Width, c.Field.Height)
	check(c.Assets.Player != "", "assets.player must be set")
	check(c.Assets.Pipe != "", "assets.pipe must be set")

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid flappy config: %w", errors.Join(errs...))
}
