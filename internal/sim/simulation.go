package sim

import (
	"cmp"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/flappy-arcade/internal/assets"
	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// AssetSource resolves sprite paths to handles and reports their sizes.
// *assets.Catalog implements it.
type AssetSource interface {
	Load(path string) (assets.Handle, error)
	Size(h assets.Handle) (core.Vec2, error)
}

// Options configures a simulation run.
type Options struct {
	Seed   int64
	Logger *log.Logger
}

// Drawable is everything a renderer needs to present one sprite.
type Drawable struct {
	Handle   assets.Handle
	Position core.Vec2 // center, world space
	Size     core.Vec2
	Rotation float64
	FlipY    bool
	Player   bool
}

// EntitySnapshot is the mutable state of one moving entity.
type EntitySnapshot struct {
	ID       donburi.Entity
	Position core.Vec2
	Velocity core.Vec2
	Rotation float64
}

// Snapshot is a comparable copy of the whole simulation state.
type Snapshot struct {
	Score    int
	State    State
	Entities []EntitySnapshot
}

// Simulation is one run of the game: a store, its context and the phase
// scheduler. Restarting means building a new Simulation.
type Simulation struct {
	store     *Store
	ctx       *Context
	scheduler *Scheduler
}

// New resolves the sprites, spawns the player and the obstacle pool, and
// returns a simulation in the Playing state.
func New(cfg config.FlappyConfig, src AssetSource, opts Options) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	playerSprite, playerSize, err := resolveSprite(src, cfg.Assets.Player)
	if err != nil {
		return nil, fmt.Errorf("sim: resolve player sprite: %w", err)
	}
	pipeSprite, pipeSize, err := resolveSprite(src, cfg.Assets.Pipe)
	if err != nil {
		return nil, fmt.Errorf("sim: resolve pipe sprite: %w", err)
	}

	store := NewStore()
	layout := NewLayout(cfg.Obstacles, opts.Seed)
	ctx := &Context{
		Config: cfg,
		Log:    logger,
		Field:  core.V2(cfg.Field.Width, cfg.Field.Height),
		Input:  core.NewInputFrame(),
		State:  Playing,
	}

	spawnPlayer(store.World, cfg, playerSprite, playerSize)
	for i := 0; i < cfg.Obstacles.PoolSize; i++ {
		spawnObstacle(store.World, cfg, layout, ctx.Field, i, pipeSprite, pipeSize)
	}

	logger.Debug("simulation ready", "seed", opts.Seed, "pool", cfg.Obstacles.PoolSize,
		"player", playerSize, "pipe", pipeSize)

	return &Simulation{
		store: store,
		ctx:   ctx,
		scheduler: NewScheduler(
			JumpSystem{},
			MovementSystem{},
			OrientationSystem{},
			NewRecycleSystem(layout),
			NewCollisionSystem(),
			NewScoringSystem(),
		),
	}, nil
}

func resolveSprite(src AssetSource, path string) (assets.Handle, core.Vec2, error) {
	h, err := src.Load(path)
	if err != nil {
		return 0, core.Vec2{}, err
	}
	size, err := src.Size(h)
	if err != nil {
		return 0, core.Vec2{}, err
	}
	return h, size, nil
}

func spawnPlayer(w donburi.World, cfg config.FlappyConfig, h assets.Handle, size core.Vec2) {
	e := w.Entry(w.Create(PlayerTag, Transform, Motion, Geometry, Sprite))
	Transform.SetValue(e, TransformData{Position: core.V2(cfg.Player.X, 0)})
	Motion.SetValue(e, MotionData{Acceleration: core.V2(0, cfg.Physics.Gravity)})
	Geometry.SetValue(e, GeometryData{Size: size})
	Sprite.SetValue(e, SpriteData{Handle: h})
}

func spawnObstacle(w donburi.World, cfg config.FlappyConfig, layout *Layout, field core.Vec2, i int, h assets.Handle, size core.Vec2) {
	x := layout.UnitX(i, field)
	unit := w.Entry(w.Create(Obstacle, Transform, Motion, Ramp))
	Obstacle.SetValue(unit, ObstacleData{Index: i, InitialX: x})
	Transform.SetValue(unit, TransformData{Position: core.V2(x, layout.OffsetY())})
	Motion.SetValue(unit, MotionData{
		Velocity:     core.V2(-cfg.Obstacles.InitialSpeed, 0),
		Acceleration: core.V2(cfg.RampAcceleration(), 0),
	})
	Ramp.SetValue(unit, RampData{Remaining: cfg.Obstacles.RampDuration, TargetSpeed: cfg.Obstacles.TargetSpeed})

	top, bottom := layout.SegmentOffsets(size.Y)
	for _, seg := range []struct {
		offset core.Vec2
		flip   bool
	}{{top, true}, {bottom, false}} {
		e := w.Entry(w.Create(Collider, Geometry, Sprite))
		Collider.SetValue(e, ColliderData{Parent: unit.Entity(), Offset: seg.offset})
		Geometry.SetValue(e, GeometryData{Size: size})
		Sprite.SetValue(e, SpriteData{Handle: h, FlipY: seg.flip})
	}
}

// Tick advances the simulation by dt seconds with the input held at polling
// time. Negative or NaN deltas are treated as zero. Ticks after GameOver
// change nothing.
func (s *Simulation) Tick(dt float64, in core.InputFrame) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	s.ctx.Delta = dt
	s.ctx.Input = in
	s.ctx.Recycled = s.ctx.Recycled[:0]
	if s.ctx.Playing() {
		s.ctx.Tick++
	}
	s.scheduler.Run(s.store, s.ctx)
}

// Resize sets the visible field size, which moves the recycling boundary.
func (s *Simulation) Resize(field core.Vec2) {
	if field.X <= 0 || field.Y <= 0 {
		return
	}
	s.ctx.Field = field
}

// Field returns the visible field size in world units.
func (s *Simulation) Field() core.Vec2 { return s.ctx.Field }

func (s *Simulation) Score() int { return s.ctx.Score }

func (s *Simulation) State() State { return s.ctx.State }

// Ticks returns the number of ticks simulated while Playing.
func (s *Simulation) Ticks() uint64 { return s.ctx.Tick }

// Player returns the player's transform and motion.
func (s *Simulation) Player() (TransformData, MotionData) {
	p, ok := s.store.Player()
	if !ok {
		return TransformData{}, MotionData{}
	}
	return *Transform.Get(p), *Motion.Get(p)
}

// ObstacleCount returns the size of the obstacle pool.
func (s *Simulation) ObstacleCount() int {
	return s.store.ObstacleCount()
}

// Sprites returns the drawables in paint order, obstacles first.
func (s *Simulation) Sprites() []Drawable {
	var out []Drawable
	s.store.sprites.Each(s.store.World, func(e *donburi.Entry) {
		pos, ok := s.store.WorldPosition(e)
		if !ok {
			return
		}
		sp := Sprite.Get(e)
		d := Drawable{
			Handle:   sp.Handle,
			Position: pos,
			Size:     Geometry.Get(e).Size,
			FlipY:    sp.FlipY,
			Player:   e.HasComponent(PlayerTag),
		}
		if e.HasComponent(Transform) {
			d.Rotation = Transform.Get(e).Rotation
		}
		out = append(out, d)
	})
	slices.SortStableFunc(out, func(a, b Drawable) int {
		switch {
		case a.Player == b.Player:
			return cmp.Compare(a.Position.X, b.Position.X)
		case a.Player:
			return 1
		default:
			return -1
		}
	})
	return out
}

// Snapshot copies the score, the state and every moving entity, ordered by id.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{Score: s.ctx.Score, State: s.ctx.State}
	s.store.movers.Each(s.store.World, func(e *donburi.Entry) {
		t := Transform.Get(e)
		snap.Entities = append(snap.Entities, EntitySnapshot{
			ID:       e.Entity(),
			Position: t.Position,
			Velocity: Motion.Get(e).Velocity,
			Rotation: t.Rotation,
		})
	})
	slices.SortFunc(snap.Entities, func(a, b EntitySnapshot) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return snap
}
