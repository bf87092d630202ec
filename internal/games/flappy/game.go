// Package flappy adapts the flappy simulation to the terminal frontend.
// It owns a sim.Simulation per run and draws it into a character screen.
package flappy

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/sim"
)

// Visual characters for rendering
const (
	PlayerLevel   = '▶'
	PlayerClimb   = '▲'
	PlayerDive    = '▼'
	PlayerBody    = '●'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
)

// hudRows is the number of screen rows above the playfield.
const hudRows = 1

// tiltThreshold is the rotation (radians) past which the player glyph
// shows a climb or a dive.
const tiltThreshold = 0.35

// Game runs the flappy simulation inside a terminal screen.
type Game struct {
	cfg    config.FlappyConfig
	assets sim.AssetSource
	logger *log.Logger

	sim     *sim.Simulation
	runtime core.RuntimeConfig
}

// New creates a flappy game. The simulation is built on Reset.
func New(cfg config.FlappyConfig, assets sim.AssetSource, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{cfg: cfg, assets: assets, logger: logger}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Reset builds a fresh simulation. This is the only way back to Playing.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	s, err := sim.New(g.cfg, g.assets, sim.Options{Seed: cfg.Seed, Logger: g.logger})
	if err != nil {
		return fmt.Errorf("flappy: %w", err)
	}
	g.sim = s
	g.runtime = cfg
	g.Resize(cfg.ScreenW, cfg.ScreenH)
	return nil
}

// Step advances the simulation by dt seconds.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	if g.sim == nil {
		return core.StepResult{}
	}
	g.sim.Tick(dt, in)
	return core.StepResult{State: g.State()}
}

// Resize fits the simulated field to the terminal. The field height is
// fixed by config; the width follows the terminal's aspect, counting a
// cell as twice as tall as it is wide.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	if g.sim == nil || w <= 0 || h <= hudRows {
		return
	}
	rows := float64(h - hudRows)
	height := g.cfg.Field.Height
	g.sim.Resize(core.V2(float64(w)*height/(2*rows), height))
}

// Simulation exposes the current run.
func (g *Game) Simulation() *sim.Simulation {
	return g.sim
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.sim.Score(),
		GameOver: g.sim.State() == sim.GameOver,
		Ticks:    g.sim.Ticks(),
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}

	vp := newViewport(g.sim.Field(), dst.Width(), dst.Height())
	for _, d := range g.sim.Sprites() {
		if d.Player {
			g.drawPlayer(dst, vp, d)
		} else {
			drawPipe(dst, vp, d)
		}
	}

	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", g.sim.Score()))

	if g.sim.State() == sim.GameOver {
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  R restart  |  Q quit", g.sim.Score()))
	}
}

// drawPipe fills a segment's cells and caps the end facing the opening.
func drawPipe(dst *core.Screen, vp viewport, d sim.Drawable) {
	r, ok := vp.rect(core.NewBox(d.Position, d.Size))
	if !ok {
		return
	}
	dst.DrawRect(r, PipeChar, core.ColorGreen)
	if d.FlipY {
		dst.DrawHLine(r.X, r.Bottom()-1, r.W, PipeCapTop, core.ColorGreen)
	} else {
		dst.DrawHLine(r.X, r.Y, r.W, PipeCapBottom, core.ColorGreen)
	}
}

func (g *Game) drawPlayer(dst *core.Screen, vp viewport, d sim.Drawable) {
	r, ok := vp.rect(core.NewBox(d.Position, d.Size))
	if !ok {
		// Off the field: pin a marker to the edge it left through.
		x := core.Clamp(vp.col(d.Position.X), 0, dst.Width()-1)
		if d.Position.Y > 0 {
			dst.SetColored(x, hudRows, PlayerClimb, core.ColorYellow)
		} else {
			dst.SetColored(x, dst.Height()-1, PlayerDive, core.ColorYellow)
		}
		return
	}

	head := PlayerLevel
	switch {
	case d.Rotation > tiltThreshold:
		head = PlayerClimb
	case d.Rotation < -tiltThreshold:
		head = PlayerDive
	}
	dst.DrawRect(r, PlayerBody, core.ColorYellow)
	dst.SetColored(r.Right()-1, r.Y+r.H/2, head, core.ColorYellow)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len([]rune(title)))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len([]rune(subtitle)))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// viewport maps world space (y-up, origin at the field center) onto the
// playfield rows of a screen.
type viewport struct {
	field      core.Vec2
	cols, rows int
}

func newViewport(field core.Vec2, w, h int) viewport {
	return viewport{field: field, cols: w, rows: h - hudRows}
}

func (v viewport) col(x float64) int {
	return int(math.Floor((x + v.field.X/2) * float64(v.cols) / v.field.X))
}

func (v viewport) row(y float64) int {
	return hudRows + int(math.Floor((v.field.Y/2-y)*float64(v.rows)/v.field.Y))
}

// rect converts a world box to cells, clipped to the playfield. Anything
// visible covers at least one cell.
func (v viewport) rect(b core.Box) (core.Rect, bool) {
	lo, hi := b.Min(), b.Max()
	x0, x1 := v.col(lo.X), v.col(hi.X)
	y0, y1 := v.row(hi.Y), v.row(lo.Y)
	if x1 == x0 {
		x1++
	}
	if y1 == y0 {
		y1++
	}

	x0, x1 = core.Clamp(x0, 0, v.cols), core.Clamp(x1, 0, v.cols)
	y0, y1 = core.Clamp(y0, hudRows, hudRows+v.rows), core.Clamp(y1, hudRows, hudRows+v.rows)
	if x1 <= x0 || y1 <= y0 {
		return core.Rect{}, false
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0), true
}

// Register the game with the registry
func init() {
	registry.Register("flappy", func(env registry.Env) registry.Game {
		return New(env.Flappy, env.Assets, env.Logger)
	})
}
