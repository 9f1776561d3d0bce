package monitor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap holds the only keys the dashboard reacts to.
type keyMap struct {
	Quit    key.Binding
	Retreat key.Binding
	Advance key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	Retreat: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "previous view"),
	),
	Advance: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next view"),
	),
}

// DecodeKey maps a key press to an Input. Unbound keys decode to InputNone.
func DecodeKey(msg tea.KeyMsg) Input {
	switch {
	case key.Matches(msg, keys.Quit):
		return InputQuit
	case key.Matches(msg, keys.Retreat):
		return InputRetreat
	case key.Matches(msg, keys.Advance):
		return InputAdvance
	default:
		return InputNone
	}
}
