package sim

import (
	"math/rand"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Layout places obstacle units. It is deterministic for a seed.
type Layout struct {
	obstacles config.FlappyObstacles
	rng       *rand.Rand
}

// NewLayout creates a layout drawing vertical offsets from seed.
func NewLayout(cfg config.FlappyObstacles, seed int64) *Layout {
	return &Layout{
		obstacles: cfg,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// UnitX is the starting x of unit i for a field: just past the right edge,
// spaced by the gap.
func (l *Layout) UnitX(i int, field core.Vec2) float64 {
	return field.X/2 + l.obstacles.SpawnOffset + float64(i)*l.obstacles.Gap
}

// OffsetY draws a vertical offset uniformly in [-MaxOffsetY, MaxOffsetY].
func (l *Layout) OffsetY() float64 {
	return (l.rng.Float64()*2 - 1) * l.obstacles.MaxOffsetY
}

// SegmentOffsets returns the top and bottom segment offsets for a pipe of
// the given height.
func (l *Layout) SegmentOffsets(pipeHeight float64) (top, bottom core.Vec2) {
	dy := l.obstacles.Opening/2 + pipeHeight/2
	return core.V2(0, dy), core.V2(0, -dy)
}
