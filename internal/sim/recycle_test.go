package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// placeUnits moves unit i to xs[i], keeping its vertical offset.
func placeUnits(t *testing.T, s *Simulation, xs []float64) {
	t.Helper()
	for _, u := range s.store.Obstacles() {
		i := Obstacle.Get(u).Index
		if i >= len(xs) {
			t.Fatalf("no position for unit %d", i)
		}
		Transform.Get(u).Position.X = xs[i]
	}
}

func unitPositions(s *Simulation) map[int]core.Vec2 {
	out := make(map[int]core.Vec2)
	for _, u := range s.store.Obstacles() {
		out[Obstacle.Get(u).Index] = Transform.Get(u).Position
	}
	return out
}

func TestRecyclePlacement(t *testing.T) {
	tests := []struct {
		name     string
		xs       []float64
		want     map[int]float64
		recycled int
	}{
		{
			name:     "single",
			xs:       []float64{-745, 100, 600, 1100, 1600, 2100, 2600, 3100, 3600, 4100},
			want:     map[int]float64{0: 4600, 9: 4100},
			recycled: 1,
		},
		{
			name:     "chained",
			xs:       []float64{-800, -750, 600, 1100, 1600, 2100, 2600, 3100, 3600, 4100},
			want:     map[int]float64{0: 4600, 1: 5100},
			recycled: 2,
		},
		{
			name:     "chained out of index order",
			xs:       []float64{-750, -800, 600, 1100, 1600, 2100, 2600, 3100, 3600, 4100},
			want:     map[int]float64{1: 4600, 0: 5100},
			recycled: 2,
		},
		{
			name:     "on the boundary stays",
			xs:       []float64{-740, 100, 600, 1100, 1600, 2100, 2600, 3100, 3600, 4100},
			want:     map[int]float64{0: -740},
			recycled: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSim(t, testConfig())
			placeUnits(t, s, tt.xs)
			before := unitPositions(s)

			NewRecycleSystem(nil).Run(s.store, s.ctx)

			after := unitPositions(s)
			for i, x := range tt.want {
				if after[i].X != x {
					t.Errorf("unit %d x = %v, want %v", i, after[i].X, x)
				}
			}
			for i := range before {
				if after[i].Y != before[i].Y {
					t.Errorf("unit %d y changed from %v to %v", i, before[i].Y, after[i].Y)
				}
			}
			if len(s.ctx.Recycled) != tt.recycled {
				t.Errorf("recycled %d units, want %d", len(s.ctx.Recycled), tt.recycled)
			}
		})
	}
}

func TestRecycleRerandomizes(t *testing.T) {
	cfg := testConfig()
	cfg.Obstacles.RerandomizeOnRecycle = true
	s := newTestSim(t, cfg)
	placeUnits(t, s, []float64{-745, 100, 600, 1100, 1600, 2100, 2600, 3100, 3600, 4100})
	before := unitPositions(s)[0]

	NewRecycleSystem(NewLayout(cfg.Obstacles, 99)).Run(s.store, s.ctx)

	after := unitPositions(s)[0]
	if after.X != 4600 {
		t.Errorf("x = %v, want 4600", after.X)
	}
	if after.Y == before.Y {
		t.Errorf("y = %v was not redrawn", after.Y)
	}
	if math.Abs(after.Y) > cfg.Obstacles.MaxOffsetY {
		t.Errorf("y = %v outside ±%v", after.Y, cfg.Obstacles.MaxOffsetY)
	}
}

func TestRecycleKeepsSpacing(t *testing.T) {
	cfg := neverCollide(testConfig())
	s := newTestSim(t, cfg)
	for i := 0; i < 30000; i++ {
		s.Tick(1.0/60, core.NewInputFrame())
	}

	xs := make([]float64, 0, cfg.Obstacles.PoolSize)
	for _, p := range unitPositions(s) {
		xs = append(xs, p.X)
	}
	minX, maxX := xs[0], xs[0]
	for _, x := range xs {
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
	}
	span := float64(cfg.Obstacles.PoolSize-1) * cfg.Obstacles.Gap
	if math.Abs(maxX-minX-span) > 1e-6 {
		t.Errorf("pool span = %v, want %v", maxX-minX, span)
	}
	if minX < s.ctx.LeftBoundary() {
		t.Errorf("unit left behind at %v", minX)
	}
}
