// Package tui provides the Bubble Tea frontend for the arcade.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameDelta caps a single simulation step, so a stalled terminal does
// not teleport the world forward.
const maxFrameDelta = 250 * time.Millisecond

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta is the time elapsed between two ticks. The first tick of a
// run assumes one nominal interval.
func frameDelta(prev, now time.Time, tickRate int) time.Duration {
	if prev.IsZero() {
		if tickRate <= 0 {
			tickRate = 60
		}
		return time.Second / time.Duration(tickRate)
	}
	d := now.Sub(prev)
	switch {
	case d < 0:
		return 0
	case d > maxFrameDelta:
		return maxFrameDelta
	}
	return d
}
