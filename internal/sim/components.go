// Package sim is the flappy simulation core: an entity store of typed
// fragments, the gameplay phases that mutate it, and the scheduler that runs
// those phases once per tick while the game is Playing.
//
// World space is y-up with the origin at the center of the visible field.
// The player sits at a fixed x and obstacles scroll toward it from the right.
package sim

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/vovakirdan/flappy-arcade/internal/assets"
	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// TransformData is an entity's world position and rotation (radians, CCW).
type TransformData struct {
	Position core.Vec2
	Rotation float64
}

// MotionData is the velocity/acceleration pair integrated every tick.
type MotionData struct {
	Velocity     core.Vec2
	Acceleration core.Vec2
}

// RampData bounds an obstacle's speed-up: once Remaining reaches zero the
// horizontal acceleration is dropped and the speed pinned to TargetSpeed.
type RampData struct {
	Remaining   float64
	TargetSpeed float64
}

// GeometryData is the full bounding size used for overlap tests.
type GeometryData struct {
	Size core.Vec2
}

// ColliderData marks a segment owned by an obstacle unit. The segment's world
// position is always the parent's position plus Offset.
type ColliderData struct {
	Parent donburi.Entity
	Offset core.Vec2
}

// SpriteData links an entity to its visual.
type SpriteData struct {
	Handle assets.Handle
	FlipY  bool
}

// ObstacleData identifies a pooled obstacle unit.
type ObstacleData struct {
	Index    int
	InitialX float64
}

var (
	Transform = donburi.NewComponentType[TransformData]()
	Motion    = donburi.NewComponentType[MotionData]()
	Ramp      = donburi.NewComponentType[RampData]()
	Geometry  = donburi.NewComponentType[GeometryData]()
	Collider  = donburi.NewComponentType[ColliderData]()
	Sprite    = donburi.NewComponentType[SpriteData]()
	Obstacle  = donburi.NewComponentType[ObstacleData]()
	PlayerTag = donburi.NewTag()
)

// Store is the entity store shared by all phases, with the fragment queries
// they need. Queries are built per store so that several simulations can
// live side by side.
type Store struct {
	World donburi.World

	movers    *donburi.Query
	players   *donburi.Query
	obstacles *donburi.Query
	colliders *donburi.Query
	sprites   *donburi.Query
}

// NewStore creates an empty entity store.
func NewStore() *Store {
	return &Store{
		World:     donburi.NewWorld(),
		movers:    donburi.NewQuery(filter.Contains(Transform, Motion)),
		players:   donburi.NewQuery(filter.Contains(PlayerTag, Transform, Motion, Geometry)),
		obstacles: donburi.NewQuery(filter.Contains(Obstacle, Transform)),
		colliders: donburi.NewQuery(filter.Contains(Collider, Geometry)),
		sprites:   donburi.NewQuery(filter.Contains(Sprite, Geometry)),
	}
}

// Player returns the player entry. There is exactly one.
func (s *Store) Player() (*donburi.Entry, bool) {
	var found *donburi.Entry
	s.players.Each(s.World, func(e *donburi.Entry) {
		if found == nil {
			found = e
		}
	})
	return found, found != nil
}

// Obstacles returns every obstacle unit entry.
func (s *Store) Obstacles() []*donburi.Entry {
	var out []*donburi.Entry
	s.obstacles.Each(s.World, func(e *donburi.Entry) {
		out = append(out, e)
	})
	return out
}

// ObstacleCount returns the number of obstacle units in the store.
func (s *Store) ObstacleCount() int {
	return s.obstacles.Count(s.World)
}

// Resolve returns the entry for id, or false if the entity no longer exists.
func (s *Store) Resolve(id donburi.Entity) (*donburi.Entry, bool) {
	if !s.World.Valid(id) {
		return nil, false
	}
	return s.World.Entry(id), true
}

// WorldPosition returns an entry's world-space position. Collider segments
// are resolved through their parent; everything else reads its transform.
func (s *Store) WorldPosition(e *donburi.Entry) (core.Vec2, bool) {
	if e.HasComponent(Collider) {
		col := Collider.Get(e)
		parent, ok := s.Resolve(col.Parent)
		if !ok || !parent.HasComponent(Transform) {
			return core.Vec2{}, false
		}
		return Transform.Get(parent).Position.Add(col.Offset), true
	}
	if e.HasComponent(Transform) {
		return Transform.Get(e).Position, true
	}
	return core.Vec2{}, false
}

// Bounds returns the world-space bounding box of an entry with geometry.
func (s *Store) Bounds(e *donburi.Entry) (core.Box, bool) {
	pos, ok := s.WorldPosition(e)
	if !ok || !e.HasComponent(Geometry) {
		return core.Box{}, false
	}
	return core.NewBox(pos, Geometry.Get(e).Size), true
}
