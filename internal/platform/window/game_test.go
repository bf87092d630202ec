package window

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/flappy-arcade/internal/assets"
	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/sim"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

func TestFieldFor(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want core.Vec2
	}{
		{"wide", 1280, 720, core.V2(720*1280.0/720, 720)},
		{"square", 500, 500, core.V2(720, 720)},
		{"narrow", 360, 720, core.V2(360, 720)},
		{"minimized", 0, 0, core.V2(720, 720)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fieldFor(720, tt.w, tt.h); got != tt.want {
				t.Errorf("fieldFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWorldToScreen(t *testing.T) {
	field := core.V2(1280, 720)
	tests := []struct {
		p    core.Vec2
		x, y float64
	}{
		{core.V2(0, 0), 640, 360},
		{core.V2(-640, 360), 0, 0},
		{core.V2(640, -360), 1280, 720},
		{core.V2(100, 50), 740, 310},
	}
	for _, tt := range tests {
		x, y := worldToScreen(tt.p, field)
		if x != tt.x || y != tt.y {
			t.Errorf("worldToScreen(%v) = (%v, %v), want (%v, %v)", tt.p, x, y, tt.x, tt.y)
		}
	}
}

// boundedConfig scores a few units, then ends the run on the first
// collision check because the player has fallen out of the field.
func boundedConfig() config.FlappyConfig {
	cfg := config.DefaultFlappyConfig()
	cfg.Collision.Interval = 30
	cfg.Collision.Bounds = true
	return cfg
}

func TestGameSavesRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	defer store.Close()

	g, err := NewGame(boundedConfig(), assets.NewCatalog(assets.Builtin()), Options{
		Store:      store,
		Seed:       7,
		Difficulty: "normal",
	})
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}

	idle := core.NewInputFrame()
	for range 400 {
		g.step(idle, 0.1)
	}
	s := g.Simulation()
	if s.State() != sim.GameOver {
		t.Fatalf("state = %v, want game over", s.State())
	}
	if s.Score() == 0 {
		t.Fatal("no units crossed before the collision check")
	}

	runs, err := store.TopScores(gameID, 10)
	if err != nil {
		t.Fatalf("TopScores() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(runs))
	}
	r := runs[0]
	if r.RunID != g.RunID() || r.Score != s.Score() || r.Frontend != "window" || r.Seed != 7 || r.Ticks != s.Ticks() {
		t.Errorf("saved run = %+v", r)
	}
}

func TestGameRestart(t *testing.T) {
	g, err := NewGame(boundedConfig(), assets.NewCatalog(assets.Builtin()), Options{})
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}
	seeds := []int64{11, 12}
	g.seeds = func() int64 {
		s := seeds[0]
		seeds = seeds[1:]
		return s
	}
	first := g.RunID()

	for range 400 {
		g.step(core.NewInputFrame(), 0.1)
	}
	if err := g.start(); err != nil {
		t.Fatalf("start() error = %v", err)
	}
	if g.RunID() == first {
		t.Error("restart kept the run id")
	}
	if g.Simulation().State() != sim.Playing || g.Simulation().Score() != 0 {
		t.Errorf("restarted run not fresh: %v, score %d", g.Simulation().State(), g.Simulation().Score())
	}
	if g.seed != 11 {
		t.Errorf("seed = %d, want 11", g.seed)
	}
}

func TestNewGameMissingSprite(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Assets.Pipe = "sprites/nope.png"
	if _, err := NewGame(cfg, assets.NewCatalog(assets.Builtin()), Options{}); err == nil {
		t.Error("NewGame() accepted a missing sprite")
	}
}
