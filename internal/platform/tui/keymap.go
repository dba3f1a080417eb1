package tui

import "github.com/charmbracelet/bubbles/key"

// GameKeyMap defines the control bindings of the game screen. Every other
// printable key is typed into the word buffer, so control keys stay off
// the letter rows.
type GameKeyMap struct {
	Advance key.Binding
	Pause   key.Binding
	Restart key.Binding
	Results key.Binding
	Up      key.Binding
	Down    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultGameKeyMap returns the default bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Advance: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start/next level"),
		),
		Pause: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "restart"),
		),
		Results: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "results"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "scroll down"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Restart, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Advance, k.Pause, k.Restart},
		{k.Results, k.Up, k.Down},
		{k.Help, k.Quit},
	}
}
