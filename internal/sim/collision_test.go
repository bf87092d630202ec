package sim

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// fixture puts unit 0 at pos and parks the rest of the pool far to the right.
// With default sizes the bottom segment of a unit at (0, 270) is centered
// on the player at the origin.
func fixture(t *testing.T, s *Simulation, pos core.Vec2) {
	t.Helper()
	for _, u := range s.store.Obstacles() {
		tr := Transform.Get(u)
		if Obstacle.Get(u).Index == 0 {
			tr.Position = pos
			continue
		}
		tr.Position = core.V2(10000+float64(Obstacle.Get(u).Index)*500, 0)
	}
}

func TestCollisionDetection(t *testing.T) {
	tests := []struct {
		name string
		unit core.Vec2
		want State
	}{
		{"overlap", core.V2(0, 270), GameOver},
		{"top segment", core.V2(0, -270), GameOver},
		{"through the opening", core.V2(0, 0), Playing},
		{"touching right edge", core.V2(43, 270), Playing},
		{"touching top edge", core.V2(0, 442), Playing},
		{"just inside", core.V2(42.5, 270), GameOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSim(t, testConfig())
			fixture(t, s, tt.unit)
			s.ctx.Delta = 1.0

			NewCollisionSystem().Run(s.store, s.ctx)

			if s.State() != tt.want {
				t.Errorf("State() = %v, want %v", s.State(), tt.want)
			}
		})
	}
}

func TestCollisionThrottle(t *testing.T) {
	s := newTestSim(t, testConfig())
	fixture(t, s, core.V2(0, 270))
	c := NewCollisionSystem()

	for i := 0; i < 3; i++ {
		s.ctx.Delta = 0.3
		c.Run(s.store, s.ctx)
		if s.State() != Playing {
			t.Fatalf("checked after %d short ticks", i+1)
		}
	}
	s.ctx.Delta = 0.3
	c.Run(s.store, s.ctx)
	if s.State() != GameOver {
		t.Errorf("State() = %v after the interval elapsed, want GameOver", s.State())
	}
}

func TestCollisionCarriesAtMostOneInterval(t *testing.T) {
	s := newTestSim(t, testConfig())
	fixture(t, s, core.V2(5000, 0))
	c := NewCollisionSystem()

	s.ctx.Delta = 5
	c.Run(s.store, s.ctx)
	if c.acc >= s.ctx.Config.Collision.Interval {
		t.Errorf("accumulator = %v after a long tick, want < %v", c.acc, s.ctx.Config.Collision.Interval)
	}

	// A carried-over backlog would trigger a check on this tick.
	fixture(t, s, core.V2(0, 270))
	s.ctx.Delta = 0.5
	c.Run(s.store, s.ctx)
	if s.State() != Playing {
		t.Error("collision checked before a full interval elapsed")
	}
}

func TestCollisionEndsTickAndLogs(t *testing.T) {
	cfg := testConfig()
	cfg.Physics.Gravity = 0
	var buf bytes.Buffer
	s, err := New(cfg, newFakeAssets(), Options{Logger: log.New(&buf)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	// After one second the unit sits just left of the player, overlapping it.
	fixture(t, s, core.V2(200, 270))

	s.Tick(1.0, core.NewInputFrame())

	if s.State() != GameOver {
		t.Fatalf("State() = %v, want GameOver", s.State())
	}
	if s.Score() != 0 {
		t.Errorf("Score() = %d, scoring must not run after the collision", s.Score())
	}
	if !strings.Contains(buf.String(), "collision") {
		t.Errorf("log = %q, want a collision line", buf.String())
	}
}

func TestCollisionFieldBounds(t *testing.T) {
	tests := []struct {
		name    string
		bounded bool
		playerY float64
		want    State
	}{
		{"unbounded far below", false, -5000, Playing},
		{"bounded inside", true, 300, Playing},
		{"bounded partly out", true, 365, Playing},
		{"bounded above", true, 400, GameOver},
		{"bounded below", true, -400, GameOver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Collision.Bounds = tt.bounded
			s := newTestSim(t, cfg)
			fixture(t, s, core.V2(5000, 0))
			player, _ := s.store.Player()
			Transform.Get(player).Position.Y = tt.playerY
			s.ctx.Delta = 1.0

			NewCollisionSystem().Run(s.store, s.ctx)

			if s.State() != tt.want {
				t.Errorf("State() = %v, want %v", s.State(), tt.want)
			}
		})
	}
}
