// Package tui provides the Bubble Tea front end for the sprite editor.
// It maps keys and mouse events onto an editor.Session, draws the canvas
// with lipgloss and serves the same model over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// PlayTickMsg advances the animation preview by one frame.
type PlayTickMsg time.Time

// playTickCmd returns a Bubble Tea command that sends one tick after a
// frame at the given rate.
func playTickCmd(fps int) tea.Cmd {
	if fps < 1 {
		fps = 1
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return PlayTickMsg(t)
	})
}
