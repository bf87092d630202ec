package sim

import (
	"cmp"
	"slices"

	"github.com/yohamta/donburi"
)

// RecycleSystem moves units that left the field on the left to the back of
// the sequence, so a fixed pool yields an endless field.
type RecycleSystem struct {
	layout *Layout
}

// NewRecycleSystem creates the recycler. The layout is used only when
// units are re-randomized on recycle.
func NewRecycleSystem(layout *Layout) *RecycleSystem {
	return &RecycleSystem{layout: layout}
}

func (*RecycleSystem) Name() string { return "recycle" }

func (r *RecycleSystem) Run(s *Store, ctx *Context) {
	units := s.Obstacles()
	if len(units) == 0 {
		return
	}

	// Ascending x keeps the cyclic order of the pool when several units
	// recycle in one tick.
	slices.SortFunc(units, func(a, b *donburi.Entry) int {
		return cmp.Compare(Transform.Get(a).Position.X, Transform.Get(b).Position.X)
	})
	front := Transform.Get(units[len(units)-1]).Position.X
	boundary := ctx.LeftBoundary()
	gap := ctx.Config.Obstacles.Gap

	for _, u := range units {
		t := Transform.Get(u)
		if t.Position.X >= boundary {
			break
		}
		t.Position.X = front + gap
		if ctx.Config.Obstacles.RerandomizeOnRecycle && r.layout != nil {
			t.Position.Y = r.layout.OffsetY()
		}
		front = t.Position.X
		ctx.Recycled = append(ctx.Recycled, u.Entity())
		ctx.Log.Debug("recycled obstacle", "index", Obstacle.Get(u).Index, "x", front, "y", t.Position.Y)
	}
}
