package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

// stubGame records what the model feeds it.
type stubGame struct {
	resets  int
	resized [2]int
	steps   []stubStep
	state   core.GameState
}

type stubStep struct {
	jump bool
	dt   float64
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) error {
	g.resets++
	g.state = core.GameState{}
	return nil
}

func (g *stubGame) Step(in core.InputFrame, dt float64) core.StepResult {
	g.steps = append(g.steps, stubStep{jump: in.Has(core.ActionJump), dt: dt})
	g.state.Ticks++
	return core.StepResult{State: g.state}
}

func (g *stubGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub") }

func (g *stubGame) State() core.GameState { return g.state }

func newTestModel(t *testing.T, game *stubGame, opts Options) Model {
	t.Helper()
	m, err := NewModel(game, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 50, Seed: 1}, opts)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm, cmd
}

func TestModelStartsRun(t *testing.T) {
	game := &stubGame{}
	m := newTestModel(t, game, Options{})
	if game.resets != 1 {
		t.Errorf("resets = %d, want 1", game.resets)
	}
	if m.RunID() == uuid.Nil {
		t.Error("run id not assigned")
	}
	if m.Init() == nil {
		t.Error("Init() did not start the tick loop")
	}
}

func TestModelVariableDelta(t *testing.T) {
	game := &stubGame{}
	m := newTestModel(t, game, Options{})
	t0 := time.Now()

	m, _ = update(t, m, TickMsg(t0))
	m, _ = update(t, m, TickMsg(t0.Add(30*time.Millisecond)))
	m, _ = update(t, m, TickMsg(t0.Add(10*time.Second)))

	want := []float64{0.02, 0.03, maxFrameDelta.Seconds()}
	if len(game.steps) != len(want) {
		t.Fatalf("steps = %d, want %d", len(game.steps), len(want))
	}
	for i, w := range want {
		if d := game.steps[i].dt - w; d > 1e-9 || d < -1e-9 {
			t.Errorf("step %d dt = %v, want %v", i, game.steps[i].dt, w)
		}
	}
	if m.State().Ticks != 3 {
		t.Errorf("Ticks = %d, want 3", m.State().Ticks)
	}
}

func TestModelHeldJump(t *testing.T) {
	game := &stubGame{}
	m := newTestModel(t, game, Options{HoldWindow: 100 * time.Millisecond})
	now := time.Now()

	next, _ := m.handleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, now)
	m = next.(Model)
	m, _ = update(t, m, TickMsg(now.Add(50*time.Millisecond)))
	m, _ = update(t, m, TickMsg(now.Add(150*time.Millisecond)))

	if !game.steps[0].jump {
		t.Error("jump not held inside the window")
	}
	if game.steps[1].jump {
		t.Error("jump still held after the window")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, &stubGame{}, Options{})
	m, cmd := update(t, m, runeKey("q"))
	if cmd == nil {
		t.Fatal("quit key returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit key did not quit")
	}
	if m.View() != "" {
		t.Error("View() not empty after quitting")
	}
}

func TestModelRestartOnlyAfterGameOver(t *testing.T) {
	game := &stubGame{}
	m := newTestModel(t, game, Options{})
	first := m.RunID()

	m, _ = update(t, m, runeKey("r"))
	if game.resets != 1 {
		t.Fatalf("restart while playing: resets = %d", game.resets)
	}

	game.state.GameOver = true
	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, runeKey("r"))
	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}
	if m.RunID() == first {
		t.Error("restart kept the run id")
	}
	if m.State().GameOver {
		t.Error("state still game over after restart")
	}
}

func TestModelSavesRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	defer store.Close()

	game := &stubGame{}
	m := newTestModel(t, game, Options{Store: store, Difficulty: "hard"})
	game.state = core.GameState{Score: 5, GameOver: true}

	now := time.Now()
	m, _ = update(t, m, TickMsg(now))
	m, _ = update(t, m, TickMsg(now.Add(20*time.Millisecond)))

	runs, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatalf("TopScores() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(runs))
	}
	r := runs[0]
	if r.RunID != m.RunID() || r.Score != 5 || r.Frontend != "tui" || r.Difficulty != "hard" || r.Seed != 1 {
		t.Errorf("saved run = %+v", r)
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	game := &stubGame{}
	m := newTestModel(t, game, Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if game.resized != [2]int{100, 30} {
		t.Errorf("game resized to %v", game.resized)
	}
	if game.resets != 1 {
		t.Errorf("resize reset the game")
	}
	if !strings.Contains(m.View(), "stub") {
		t.Errorf("View() = %q", m.View())
	}
}
