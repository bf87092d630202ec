package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means "keep config".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// speedScaleForPreset returns the multiplier applied to obstacle speeds.
func speedScaleForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.75
	case DifficultyHard:
		return 1.3
	default:
		return 1.0
	}
}

// ApplyFlappyPreset modifies the obstacle speed ramp for a difficulty preset.
// Fixed disables the ramp: obstacles keep their initial speed for the whole run.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}

	o := &cfg.Obstacles
	if preset == DifficultyFixed {
		o.TargetSpeed = o.InitialSpeed
		o.RampDuration = 0
		return
	}

	scale := speedScaleForPreset(preset)
	o.InitialSpeed *= scale
	o.TargetSpeed *= scale

	// Hard reaches top speed sooner, easy later.
	switch preset {
	case DifficultyEasy:
		o.RampDuration *= 1.5
	case DifficultyHard:
		o.RampDuration *= 0.5
	}
}
