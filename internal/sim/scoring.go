package sim

import (
	"cmp"
	"slices"

	"github.com/yohamta/donburi"
)

// ScoringSystem awards a point each time the next unit in order crosses
// the player's x.
//
// The order starts sorted by initial x and is re-sorted by current x after
// any tick that recycled a unit. The cursor follows the tracked unit's
// identity across a re-sort, so a crossing is never counted twice.
type ScoringSystem struct {
	order  []donburi.Entity
	cursor int
}

// NewScoringSystem creates a tracker. The order is built on its first run.
func NewScoringSystem() *ScoringSystem {
	return &ScoringSystem{}
}

func (*ScoringSystem) Name() string { return "scoring" }

func (sc *ScoringSystem) Run(s *Store, ctx *Context) {
	if sc.order == nil {
		sc.build(s)
	}
	if len(sc.order) == 0 {
		return
	}
	if len(ctx.Recycled) > 0 && !sc.resync(s) {
		ctx.Log.Error("scoring order does not resolve", "cursor", sc.cursor, "tick", ctx.Tick)
		return
	}

	id := sc.order[sc.cursor]
	unit, ok := s.Resolve(id)
	if !ok {
		ctx.Log.Error("scoring cursor does not resolve", "cursor", sc.cursor, "entity", id, "tick", ctx.Tick)
		return
	}
	if Transform.Get(unit).Position.X < ctx.Config.Player.X {
		ctx.Score++
		sc.cursor = (sc.cursor + 1) % len(sc.order)
		ctx.Log.Debug("scored", "score", ctx.Score, "obstacle", Obstacle.Get(unit).Index)
	}
}

func (sc *ScoringSystem) build(s *Store) {
	units := s.Obstacles()
	slices.SortFunc(units, func(a, b *donburi.Entry) int {
		return cmp.Compare(Obstacle.Get(a).InitialX, Obstacle.Get(b).InitialX)
	})
	sc.order = make([]donburi.Entity, len(units))
	for i, u := range units {
		sc.order[i] = u.Entity()
	}
	sc.cursor = 0
}

// resync re-sorts the order by current x and moves the cursor to wherever
// the tracked unit landed. It reports false if any unit no longer resolves.
func (sc *ScoringSystem) resync(s *Store) bool {
	xs := make(map[donburi.Entity]float64, len(sc.order))
	for _, id := range sc.order {
		unit, ok := s.Resolve(id)
		if !ok {
			return false
		}
		xs[id] = Transform.Get(unit).Position.X
	}

	tracked := sc.order[sc.cursor]
	slices.SortStableFunc(sc.order, func(a, b donburi.Entity) int {
		return cmp.Compare(xs[a], xs[b])
	})
	sc.cursor = slices.Index(sc.order, tracked)
	return true
}
