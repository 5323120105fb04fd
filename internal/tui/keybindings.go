package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the TUI.
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding

	// Dive
	Tap      key.Binding
	TapIndex key.Binding
	Surface  key.Binding

	// Completion
	Again key.Binding
	Quit  key.Binding

	Help key.Binding
}

// DefaultKeyMap provides the default key bindings for the TUI.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "dive"),
	),
	Tap: key.NewBinding(
		key.WithKeys(" ", "space", "enter"),
		key.WithHelp("space", "tap newest"),
	),
	TapIndex: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "tap card"),
	),
	Surface: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "surface"),
	),
	Again: key.NewBinding(
		key.WithKeys("r", "enter"),
		key.WithHelp("r", "dive again"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}

// DiveKeys is the help.KeyMap shown under the lock screen.
type DiveKeys struct {
	KeyMap
}

// ShortHelp implements help.KeyMap.
func (k DiveKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Tap, k.Surface, k.Help}
}

// FullHelp implements help.KeyMap.
func (k DiveKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tap, k.TapIndex},
		{k.Surface, k.Help},
	}
}
