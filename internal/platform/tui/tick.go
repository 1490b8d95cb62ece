// Package tui provides the Bubble Tea front end for beambox, both for a
// local terminal and for SSH sessions served through Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusTimeout is how long a status line stays on screen.
const statusTimeout = 4 * time.Second

// clearStatusMsg clears the status line if it is still the one with id.
type clearStatusMsg struct {
	id int
}

// clearStatusCmd returns a command that fires once the status line for id
// has been visible long enough.
func clearStatusCmd(id int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}
