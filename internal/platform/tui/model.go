package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

// Options configures the terminal frontend.
type Options struct {
	Store      *storage.Store // nil disables score saving
	Logger     *log.Logger
	Difficulty string
	HoldWindow time.Duration
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keys       GameKeyMap
	hold       *HoldTracker
	lastTick   time.Time
	gameState  core.GameState
	runID      uuid.UUID
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a Bubble Tea model and starts the first run.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) (Model, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	m := Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:   opts,
		config: cfg,
		keys:   DefaultGameKeyMap(),
		hold:   NewHoldTracker(opts.HoldWindow),
	}
	if err := m.start(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// start resets the game for a new run.
func (m *Model) start() error {
	if err := m.game.Reset(m.config); err != nil {
		return err
	}
	m.runID = uuid.New()
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.lastTick = time.Time{}
	m.hold.Release()
	m.opts.Logger.Info("run started", "run", m.runID, "game", m.game.ID(), "seed", m.config.Seed)
	return nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch m.keys.MapKey(msg) {
	case core.ActionQuit, core.ActionBack:
		m.quitting = true
		return m, tea.Quit
	case core.ActionJump:
		m.hold.Press(core.ActionJump, now)
	case core.ActionRestart:
		if m.gameState.GameOver {
			return m.restart()
		}
	}

	return m, nil
}

// restart begins a new run with a fresh seed.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.config.Seed = time.Now().UnixNano()
	if err := m.start(); err != nil {
		m.opts.Logger.Error("restart failed", "err", err)
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events. The run keeps going.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick advances the simulation by the real time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameDelta(m.lastTick, now, m.config.TickRate)
	m.lastTick = now

	result := m.game.Step(m.hold.Frame(now), dt.Seconds())
	m.gameState = result.State

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveRun()
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) saveRun() {
	logger := m.opts.Logger.With("run", m.runID, "score", m.gameState.Score)
	if m.opts.Store == nil || m.gameState.Score == 0 {
		logger.Info("run over")
		return
	}
	_, _, err := m.opts.Store.SaveRun(storage.Run{
		RunID:      m.runID,
		GameID:     m.game.ID(),
		Score:      m.gameState.Score,
		Seed:       m.config.Seed,
		Ticks:      m.gameState.Ticks,
		Difficulty: m.opts.Difficulty,
		Frontend:   "tui",
	})
	if err != nil {
		// The game continues regardless.
		logger.Error("cannot save run", "err", err)
		return
	}
	logger.Info("run saved")
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("cannot create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// State returns the game state as of the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// RunID returns the id of the current run.
func (m Model) RunID() uuid.UUID {
	return m.runID
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model, err := NewModel(game, cfg, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
