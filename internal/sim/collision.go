package sim

import (
	"math"

	"github.com/yohamta/donburi"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// CollisionSystem tests the player against every collider segment, at most
// once per configured interval. It keeps its own accumulator.
type CollisionSystem struct {
	acc   float64
	boxes []segmentBox
}

type segmentBox struct {
	box    core.Box
	parent donburi.Entity
}

// NewCollisionSystem creates a collision phase with an empty accumulator.
func NewCollisionSystem() *CollisionSystem {
	return &CollisionSystem{}
}

func (*CollisionSystem) Name() string { return "collision" }

func (c *CollisionSystem) Run(s *Store, ctx *Context) {
	interval := ctx.Config.Collision.Interval
	c.acc += ctx.Delta
	if c.acc < interval {
		return
	}
	c.acc -= interval
	if c.acc >= interval {
		c.acc = math.Mod(c.acc, interval)
	}

	player, ok := s.Player()
	if !ok {
		return
	}
	pbox, ok := s.Bounds(player)
	if !ok {
		return
	}

	c.boxes = c.boxes[:0]
	s.colliders.Each(s.World, func(e *donburi.Entry) {
		if b, ok := s.Bounds(e); ok {
			c.boxes = append(c.boxes, segmentBox{box: b, parent: Collider.Get(e).Parent})
		}
	})

	for _, sb := range c.boxes {
		if !pbox.Overlaps(sb.box) {
			continue
		}
		if ctx.EndGame() {
			index := -1
			if unit, ok := s.Resolve(sb.parent); ok && unit.HasComponent(Obstacle) {
				index = Obstacle.Get(unit).Index
			}
			ctx.Log.Info("collision", "tick", ctx.Tick, "score", ctx.Score, "obstacle", index)
		}
		return
	}

	if ctx.Config.Collision.Bounds && outOfField(pbox, ctx.Field) && ctx.EndGame() {
		ctx.Log.Info("collision", "tick", ctx.Tick, "score", ctx.Score, "bounds", true, "y", pbox.Center.Y)
	}
}

// outOfField reports whether b lies entirely above or below the field.
func outOfField(b core.Box, field core.Vec2) bool {
	return b.Min().Y > field.Y/2 || b.Max().Y < -field.Y/2
}
