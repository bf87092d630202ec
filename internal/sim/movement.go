package sim

import (
	"math"

	"github.com/yohamta/donburi"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// JumpSystem maps a held jump to an upward velocity override.
type JumpSystem struct{}

func (JumpSystem) Name() string { return "jump" }

func (JumpSystem) Run(s *Store, ctx *Context) {
	if !ctx.Input.Has(core.ActionJump) {
		return
	}
	player, ok := s.Player()
	if !ok {
		return
	}
	Motion.Get(player).Velocity.Y = ctx.Config.Physics.UpSpeed
}

// MovementSystem integrates velocity from acceleration, then position from
// the new velocity (explicit Euler).
type MovementSystem struct{}

func (MovementSystem) Name() string { return "movement" }

func (MovementSystem) Run(s *Store, ctx *Context) {
	dt := ctx.Delta
	s.movers.Each(s.World, func(e *donburi.Entry) {
		m := Motion.Get(e)
		m.Velocity = m.Velocity.Add(m.Acceleration.Scale(dt))
		if e.HasComponent(Ramp) {
			settleRamp(Ramp.Get(e), m, dt)
		}
		t := Transform.Get(e)
		t.Position = t.Position.Add(m.Velocity.Scale(dt))
	})
}

// settleRamp counts down the ramp and pins the horizontal speed to the
// target once it runs out.
func settleRamp(r *RampData, m *MotionData, dt float64) {
	if m.Acceleration.X == 0 {
		return
	}
	r.Remaining -= dt
	if r.Remaining > 0 {
		return
	}
	r.Remaining = 0
	m.Acceleration.X = 0
	m.Velocity.X = math.Copysign(r.TargetSpeed, m.Velocity.X)
}

// OrientationSystem tilts the player with its vertical velocity.
type OrientationSystem struct{}

func (OrientationSystem) Name() string { return "orientation" }

func (OrientationSystem) Run(s *Store, ctx *Context) {
	player, ok := s.Player()
	if !ok {
		return
	}
	Transform.Get(player).Rotation = Tilt(Motion.Get(player).Velocity.Y, ctx.Config.Physics.UpSpeed, ctx.Config.Physics.AngleAmplitude)
}

// Tilt returns the facing angle for a vertical velocity, bounded to ±π/2.
func Tilt(vy, upSpeed, amplitude float64) float64 {
	if upSpeed == 0 {
		return 0
	}
	return core.ClampF(vy/upSpeed*amplitude, -math.Pi/2, math.Pi/2)
}
