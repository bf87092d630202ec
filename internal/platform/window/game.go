// Package window runs the flappy simulation in a desktop window using
// Ebitengine. Sprites are drawn from the same catalog the simulation
// sizes its colliders with.
package window

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/flappy-arcade/internal/assets"
	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/sim"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

const gameID = "flappy"

var skyColor = color.RGBA{0x4e, 0xc0, 0xca, 0xff}

// Options configures the window frontend.
type Options struct {
	Store      *storage.Store // nil disables score saving
	Settings   *SettingsManager
	Logger     *log.Logger
	Difficulty string
	Seed       int64 // 0 picks a seed per run
	Title      string
}

// Game is an ebiten.Game driving one simulation at a time.
type Game struct {
	cfg     config.FlappyConfig
	catalog *assets.Catalog
	opts    Options
	logger  *log.Logger

	sim    *sim.Simulation
	runID  uuid.UUID
	seed   int64
	saved  bool
	field  core.Vec2
	outW   int
	outH   int
	images map[assets.Handle]*ebiten.Image
	seeds  func() int64
}

// NewGame creates the window game and starts the first run.
func NewGame(cfg config.FlappyConfig, catalog *assets.Catalog, opts Options) (*Game, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Settings == nil {
		opts.Settings = NewSettingsManager(nil, opts.Logger)
	}
	g := &Game{
		cfg:     cfg,
		catalog: catalog,
		opts:    opts,
		logger:  opts.Logger,
		field:   core.V2(cfg.Field.Width, cfg.Field.Height),
		images:  make(map[assets.Handle]*ebiten.Image),
		seeds:   newSeed,
	}
	if err := g.start(); err != nil {
		return nil, err
	}
	return g, nil
}

// start replaces the simulation with a fresh run.
func (g *Game) start() error {
	seed := g.opts.Seed
	if seed == 0 {
		seed = g.seeds()
	}
	s, err := sim.New(g.cfg, g.catalog, sim.Options{Seed: seed, Logger: g.logger})
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	s.Resize(g.field)
	g.sim = s
	g.seed = seed
	g.runID = uuid.New()
	g.saved = false
	g.logger.Info("run started", "run", g.runID, "seed", seed, "frontend", "window")
	return nil
}

// step advances the run and records it once it is over.
func (g *Game) step(in core.InputFrame, dt float64) {
	g.sim.Tick(dt, in)
	if g.sim.State() == sim.GameOver && !g.saved {
		g.saved = true
		g.saveRun()
	}
}

func (g *Game) saveRun() {
	logger := g.logger.With("run", g.runID, "score", g.sim.Score())
	if g.opts.Store == nil || g.sim.Score() == 0 {
		logger.Info("run over")
		return
	}
	_, _, err := g.opts.Store.SaveRun(storage.Run{
		RunID:      g.runID,
		GameID:     gameID,
		Score:      g.sim.Score(),
		Seed:       g.seed,
		Ticks:      g.sim.Ticks(),
		Difficulty: g.opts.Difficulty,
		Frontend:   "window",
	})
	if err != nil {
		logger.Error("cannot save run", "err", err)
		return
	}
	logger.Info("run saved")
}

// Update reads the keyboard and advances the simulation by one ebiten tick.
func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.toggleFullscreen()
	case inpututil.IsKeyJustPressed(ebiten.KeyR) && g.sim.State() == sim.GameOver:
		return g.start()
	}

	in := core.NewInputFrame()
	if ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) ||
		ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		in.Set(core.ActionJump)
	}
	g.step(in, 1/float64(ebiten.TPS()))
	return nil
}

func (g *Game) toggleFullscreen() {
	on := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(on)
	g.opts.Settings.SetFullscreen(on)
	if err := g.opts.Settings.Save(); err != nil {
		g.logger.Warn("cannot save window settings", "err", err)
	}
}

// Draw paints the field, every sprite and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)

	for _, d := range g.sim.Sprites() {
		img, err := g.image(d.Handle)
		if err != nil {
			g.logger.Error("cannot draw sprite", "handle", d.Handle, "err", err)
			continue
		}
		screen.DrawImage(img, g.spriteOptions(d, img.Bounds()))
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("Score: %d", g.sim.Score()))
	if g.sim.State() == sim.GameOver {
		msg := fmt.Sprintf("GAME OVER  score %d\nR restart  Q quit", g.sim.Score())
		ebitenutil.DebugPrintAt(screen, msg, int(g.field.X)/2-60, int(g.field.Y)/2-16)
	}
}

// spriteOptions places a sprite by its center. The world is y-up and the
// screen is y-down, so rotations flip sign.
func (g *Game) spriteOptions(d sim.Drawable, bounds image.Rectangle) *ebiten.DrawImageOptions {
	op := &ebiten.DrawImageOptions{}
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	op.GeoM.Translate(-w/2, -h/2)
	sx, sy := d.Size.X/w, d.Size.Y/h
	if d.FlipY {
		sy = -sy
	}
	op.GeoM.Scale(sx, sy)
	op.GeoM.Rotate(-d.Rotation)
	x, y := worldToScreen(d.Position, g.field)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterNearest
	return op
}

// image decodes a sprite on first use.
func (g *Game) image(h assets.Handle) (*ebiten.Image, error) {
	if img, ok := g.images[h]; ok {
		return img, nil
	}
	f, err := g.catalog.Open(h)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("window: decode %s: %w", g.catalog.Path(h), err)
	}
	img := ebiten.NewImageFromImage(src)
	g.images[h] = img
	return img, nil
}

// Layout keeps the field height fixed and widens the field with the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.outW || outsideHeight != g.outH {
		g.outW, g.outH = outsideWidth, outsideHeight
		g.field = fieldFor(g.cfg.Field.Height, outsideWidth, outsideHeight)
		g.sim.Resize(g.field)
		if !ebiten.IsFullscreen() {
			g.opts.Settings.SetSize(outsideWidth, outsideHeight)
		}
	}
	return int(g.field.X), int(g.field.Y)
}

// Simulation returns the current run.
func (g *Game) Simulation() *sim.Simulation {
	return g.sim
}

// RunID returns the id of the current run.
func (g *Game) RunID() uuid.UUID {
	return g.runID
}

// fieldFor is the field that fills a w×h window at the given height.
func fieldFor(height float64, w, h int) core.Vec2 {
	if w <= 0 || h <= 0 {
		return core.V2(height, height)
	}
	return core.V2(height*float64(w)/float64(h), height)
}

// worldToScreen maps a y-up, centered world point to screen pixels.
func worldToScreen(p, field core.Vec2) (float64, float64) {
	return p.X + field.X/2, field.Y/2 - p.Y
}

func newSeed() int64 {
	return time.Now().UnixNano()
}

// Run opens the window and blocks until it is closed.
func Run(cfg config.FlappyConfig, catalog *assets.Catalog, opts Options) error {
	g, err := NewGame(cfg, catalog, opts)
	if err != nil {
		return err
	}
	settings := g.opts.Settings.Settings()
	title := opts.Title
	if title == "" {
		title = "Flappy Bird"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(settings.Width, settings.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(settings.Fullscreen)

	err = ebiten.RunGame(g)
	if serr := g.opts.Settings.Save(); serr != nil {
		g.logger.Warn("cannot save window settings", "err", serr)
	}
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
