package sim

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/flappy-arcade/internal/assets"
	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

// fakeAssets sizes sprites without touching a file system.
type fakeAssets struct {
	sizes map[string]core.Vec2
	paths []string
}

func newFakeAssets() *fakeAssets {
	return &fakeAssets{sizes: map[string]core.Vec2{
		"bird": core.V2(34, 24),
		"pipe": core.V2(52, 320),
	}}
}

func (f *fakeAssets) Load(path string) (assets.Handle, error) {
	if _, ok := f.sizes[path]; !ok {
		return 0, errors.New("not found")
	}
	f.paths = append(f.paths, path)
	return assets.Handle(len(f.paths)), nil
}

func (f *fakeAssets) Size(h assets.Handle) (core.Vec2, error) {
	if h <= 0 || int(h) > len(f.paths) {
		return core.Vec2{}, assets.ErrUnknownHandle
	}
	return f.sizes[f.paths[h-1]], nil
}

func testConfig() config.FlappyConfig {
	cfg := config.DefaultFlappyConfig()
	cfg.Assets.Player = "bird"
	cfg.Assets.Pipe = "pipe"
	return cfg
}

func newTestSim(t *testing.T, cfg config.FlappyConfig) *Simulation {
	t.Helper()
	s, err := New(cfg, newFakeAssets(), Options{Seed: 7})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

// neverCollide keeps the collision phase from firing during long runs.
func neverCollide(cfg config.FlappyConfig) config.FlappyConfig {
	cfg.Collision.Interval = 1e12
	return cfg
}

func TestNewBuiltinAssets(t *testing.T) {
	cat := assets.NewCatalog(assets.Builtin())
	s, err := New(config.DefaultFlappyConfig(), cat, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if s.State() != Playing {
		t.Errorf("State() = %v, want Playing", s.State())
	}
	if s.Score() != 0 {
		t.Errorf("Score() = %d, want 0", s.Score())
	}
	if got := s.ObstacleCount(); got != 10 {
		t.Errorf("ObstacleCount() = %d, want 10", got)
	}
	// one player plus two segments per unit
	if got := len(s.Sprites()); got != 21 {
		t.Errorf("len(Sprites()) = %d, want 21", got)
	}
}

func TestNewMissingSprite(t *testing.T) {
	cfg := testConfig()
	cfg.Assets.Player = "missing"
	_, err := New(cfg, newFakeAssets(), Options{})
	if err == nil {
		t.Fatal("New() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "sim: resolve player sprite") {
		t.Errorf("error = %q, want player sprite context", err)
	}

	cfg = testConfig()
	cfg.Assets.Pipe = "missing"
	if _, err := New(cfg, newFakeAssets(), Options{}); err == nil || !strings.Contains(err.Error(), "pipe sprite") {
		t.Errorf("New() error = %v, want pipe sprite error", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Obstacles.PoolSize = 0
	if _, err := New(cfg, newFakeAssets(), Options{}); err == nil {
		t.Error("New() accepted a zero pool size")
	}
}

func TestInitialLayout(t *testing.T) {
	cfg := testConfig()
	s := newTestSim(t, cfg)

	units := s.store.Obstacles()
	byIndex := make(map[int]core.Vec2)
	for _, u := range units {
		byIndex[Obstacle.Get(u).Index] = Transform.Get(u).Position
	}
	for i := 0; i < cfg.Obstacles.PoolSize; i++ {
		pos, ok := byIndex[i]
		if !ok {
			t.Fatalf("unit %d missing", i)
		}
		wantX := cfg.Field.Width/2 + cfg.Obstacles.SpawnOffset + float64(i)*cfg.Obstacles.Gap
		if pos.X != wantX {
			t.Errorf("unit %d x = %v, want %v", i, pos.X, wantX)
		}
		if math.Abs(pos.Y) > cfg.Obstacles.MaxOffsetY {
			t.Errorf("unit %d y = %v, outside ±%v", i, pos.Y, cfg.Obstacles.MaxOffsetY)
		}
	}

	player, motion := s.Player()
	if player.Position != core.V2(cfg.Player.X, 0) {
		t.Errorf("player position = %v, want (%v, 0)", player.Position, cfg.Player.X)
	}
	if motion.Acceleration != core.V2(0, cfg.Physics.Gravity) {
		t.Errorf("player acceleration = %v, want gravity", motion.Acceleration)
	}
}

func TestSegmentsFollowParent(t *testing.T) {
	s := newTestSim(t, testConfig())
	s.Tick(0.5, core.NewInputFrame())

	units := make(map[int]core.Vec2)
	for _, u := range s.store.Obstacles() {
		units[Obstacle.Get(u).Index] = Transform.Get(u).Position
	}
	for _, d := range s.Sprites() {
		if d.Player {
			continue
		}
		matched := false
		for _, pos := range units {
			if d.Position.X == pos.X && approx(math.Abs(d.Position.Y-pos.Y), 110+160) {
				matched = true
				break
			}
		}
		if !matched {
			t.Errorf("segment at %v does not sit at a unit offset", d.Position)
		}
	}
}

func TestSpritesPaintPlayerLast(t *testing.T) {
	s := newTestSim(t, testConfig())
	sprites := s.Sprites()
	if !sprites[len(sprites)-1].Player {
		t.Error("player is not painted last")
	}
	flipped := 0
	for _, d := range sprites {
		if d.FlipY {
			flipped++
		}
	}
	if flipped != 10 {
		t.Errorf("flipped segments = %d, want 10", flipped)
	}
}

func TestDeterministicForSeed(t *testing.T) {
	cfg := neverCollide(testConfig())
	run := func(seed int64) Snapshot {
		s, err := New(cfg, newFakeAssets(), Options{Seed: seed})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		for i := 0; i < 600; i++ {
			in := core.NewInputFrame()
			if i%20 < 4 {
				in.Set(core.ActionJump)
			}
			s.Tick(1.0/60, in)
		}
		return s.Snapshot()
	}

	if a, b := run(42), run(42); !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different runs")
	}
	if a, b := run(1), run(2); reflect.DeepEqual(a, b) {
		t.Error("different seeds produced identical runs")
	}
}

func TestTerminalGating(t *testing.T) {
	s := newTestSim(t, testConfig())
	for i := 0; i < 30; i++ {
		s.Tick(1.0/60, core.NewInputFrame())
	}
	if !s.ctx.EndGame() {
		t.Fatal("EndGame() = false from Playing")
	}
	if s.ctx.EndGame() {
		t.Error("EndGame() = true from GameOver")
	}

	before := s.Snapshot()
	ticks := s.Ticks()
	for i := 0; i < 120; i++ {
		s.Tick(1.0/60, core.Held(core.ActionJump))
	}
	if after := s.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("state changed after GameOver:\nbefore %+v\nafter  %+v", before, after)
	}
	if s.Ticks() != ticks {
		t.Errorf("Ticks() = %d after GameOver, want %d", s.Ticks(), ticks)
	}
	if s.State() != GameOver {
		t.Errorf("State() = %v, want GameOver", s.State())
	}
}

func TestTickIgnoresBadDelta(t *testing.T) {
	s := newTestSim(t, testConfig())
	before := s.Snapshot()
	s.Tick(-1, core.NewInputFrame())
	s.Tick(math.NaN(), core.NewInputFrame())
	after := s.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Error("negative or NaN delta moved the world")
	}
}

func TestPoolSizeInvariant(t *testing.T) {
	cfg := neverCollide(testConfig())
	s := newTestSim(t, cfg)
	for i := 0; i < 20000; i++ {
		s.Tick(1.0/60, core.NewInputFrame())
	}
	if got := s.ObstacleCount(); got != cfg.Obstacles.PoolSize {
		t.Errorf("ObstacleCount() = %d, want %d", got, cfg.Obstacles.PoolSize)
	}
	if got := len(s.Sprites()); got != 2*cfg.Obstacles.PoolSize+1 {
		t.Errorf("len(Sprites()) = %d, want %d", got, 2*cfg.Obstacles.PoolSize+1)
	}
}

func TestResizeMovesBoundary(t *testing.T) {
	s := newTestSim(t, testConfig())
	if got := s.ctx.LeftBoundary(); got != -740 {
		t.Fatalf("LeftBoundary() = %v, want -740", got)
	}
	s.Resize(core.V2(400, 300))
	if got := s.ctx.LeftBoundary(); got != -300 {
		t.Errorf("LeftBoundary() after resize = %v, want -300", got)
	}
	s.Resize(core.V2(0, 300))
	if s.Field() != core.V2(400, 300) {
		t.Errorf("Field() = %v, empty resize must be ignored", s.Field())
	}
}

func TestSchedulerOrder(t *testing.T) {
	s := newTestSim(t, testConfig())
	want := []string{"jump", "movement", "orientation", "recycle", "collision", "scoring"}
	if got := s.scheduler.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("phases = %v, want %v", got, want)
	}
}

type countingPhase struct {
	name  string
	runs  int
	ends  bool
	trace *[]string
}

func (p *countingPhase) Name() string { return p.name }

func (p *countingPhase) Run(_ *Store, ctx *Context) {
	p.runs++
	*p.trace = append(*p.trace, p.name)
	if p.ends {
		ctx.EndGame()
	}
}

func TestSchedulerStopsAfterGameOver(t *testing.T) {
	var trace []string
	first := &countingPhase{name: "first", trace: &trace}
	ender := &countingPhase{name: "ender", ends: true, trace: &trace}
	last := &countingPhase{name: "last", trace: &trace}
	sc := NewScheduler(first, ender, last)
	ctx := &Context{}

	sc.Run(NewStore(), ctx)
	sc.Run(NewStore(), ctx)

	if want := []string{"first", "ender"}; !reflect.DeepEqual(trace, want) {
		t.Errorf("trace = %v, want %v", trace, want)
	}
	if ctx.State != GameOver {
		t.Errorf("State = %v, want GameOver", ctx.State)
	}
}

func TestStateString(t *testing.T) {
	if Playing.String() != "playing" || GameOver.String() != "game over" {
		t.Errorf("unexpected names %q %q", Playing, GameOver)
	}
	if State(9).String() != "unknown" {
		t.Errorf("State(9) = %q", State(9))
	}
}
