package sim

import (
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// State is the game lifecycle state.
type State int

const (
	Playing State = iota
	GameOver
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Context is the per-run simulation context handed to every phase.
// The scheduler owns it; phases only mutate the fields they are responsible for.
type Context struct {
	Config config.FlappyConfig
	Log    *log.Logger

	// Field is the visible field size in world units.
	Field core.Vec2
	// Delta is the elapsed time of the current tick in seconds.
	Delta float64
	// Input is the input polled for the current tick.
	Input core.InputFrame
	// Tick counts the ticks simulated while Playing.
	Tick uint64

	Score int
	State State

	// Recycled lists the units moved by the recycler in the current tick.
	Recycled []donburi.Entity
}

// Playing reports whether gameplay phases may run.
func (c *Context) Playing() bool {
	return c.State == Playing
}

// EndGame moves Playing to GameOver. It reports whether a transition
// happened; GameOver is terminal.
func (c *Context) EndGame() bool {
	if c.State != Playing {
		return false
	}
	c.State = GameOver
	return true
}

// LeftBoundary is the x below which obstacles are recycled for the current field.
func (c *Context) LeftBoundary() float64 {
	return -(c.Field.X/2 + c.Config.Obstacles.Margin)
}
