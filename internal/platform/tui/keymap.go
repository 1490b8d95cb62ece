package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the play screen.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	SideUp    key.Binding
	SideDown  key.Binding
	Fire      key.Binding
	NextBeam  key.Binding
	PrevBeam  key.Binding
	NextRound key.Binding
	Reveal    key.Binding
	History   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Fire, k.NextBeam, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.SideUp, k.SideDown},
		{k.Fire, k.NextBeam, k.PrevBeam},
		{k.NextRound, k.History, k.Reveal},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("←/h", "move back"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("→/l", "move on"),
		),
		SideUp: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "previous side"),
		),
		SideDown: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "next side"),
		),
		Fire: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "fire"),
		),
		NextBeam: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next beam"),
		),
		PrevBeam: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev beam"),
		),
		NextRound: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next round"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "reveal"),
		),
		History: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "shots"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Ring moves a cursor around the ring of prize tiles. Tiles are indexed
// clockwise from the top-left, matching board tile ids.
type Ring struct {
	Length int
	Index  int
}

func (r Ring) size() int {
	return 4 * r.Length
}

// Move shifts the cursor by n tiles, wrapping around the corners.
func (r Ring) Move(n int) Ring {
	if r.size() == 0 {
		return r
	}
	r.Index = ((r.Index+n)%r.size() + r.size()) % r.size()
	return r
}

// Side returns which side of the board the cursor is on, 0 for the top.
func (r Ring) Side() int {
	if r.Length == 0 {
		return 0
	}
	return r.Index / r.Length
}

// JumpSide moves to the same offset on a neighbouring side.
func (r Ring) JumpSide(n int) Ring {
	return r.Move(n * r.Length)
}
