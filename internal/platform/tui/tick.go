// Package tui runs typefall in a terminal with Bubble Tea.
// It owns the frame clock, key bindings, the world-to-cell projection and
// the SSH server that hosts one game per session.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(frameStep(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameStep is the simulated time one tick advances the game by.
func frameStep(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}
