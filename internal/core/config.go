package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frontend ticks per second (default 60)
	Seed     int64 // RNG seed for the obstacle layout
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

// GameState is the externally visible state of a game.
type GameState struct {
	Score    int    // Current score
	GameOver bool   // Whether the run has ended
	Ticks    uint64 // Ticks simulated while playing
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
