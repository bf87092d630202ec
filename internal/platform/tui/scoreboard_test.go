package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(nil, "flappy", "Flappy Bird", 80, 24)
	view := m.View()
	if !strings.Contains(view, "No scores recorded yet") {
		t.Errorf("View() = %q", view)
	}
	if !strings.Contains(view, "no runs yet") {
		t.Errorf("summary missing from %q", view)
	}
}

func TestScoreboardRows(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	defer store.Close()
	for _, score := range []int{3, 9, 6} {
		if _, _, err := store.SaveRun(storage.Run{GameID: "flappy", Score: score, Frontend: "tui"}); err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
	}

	m := NewScoreboardModel(store, "flappy", "Flappy Bird", 100, 30)
	rows := m.table.Rows()
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][1] != "9" || rows[2][1] != "3" {
		t.Errorf("rows not sorted by score: %v", rows)
	}
	if !strings.Contains(m.View(), "3 runs") {
		t.Errorf("summary missing from view")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	var m tea.Model = NewScoreboardModel(nil, "flappy", "Flappy Bird", 80, 24)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || !m.(ScoreboardModel).IsGoingBack() {
		t.Error("esc did not go back")
	}

	m = NewScoreboardModel(nil, "flappy", "Flappy Bird", 80, 24)
	m, _ = m.Update(runeKey("q"))
	if !m.(ScoreboardModel).IsQuitting() {
		t.Error("q did not quit")
	}
}
