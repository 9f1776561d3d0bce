package monitor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected Input
	}{
		{"q quits", runeKey('q'), InputQuit},
		{"left retreats", tea.KeyMsg{Type: tea.KeyLeft}, InputRetreat},
		{"right advances", tea.KeyMsg{Type: tea.KeyRight}, InputAdvance},
		{"capital Q ignored", runeKey('Q'), InputNone},
		{"ctrl+c ignored", tea.KeyMsg{Type: tea.KeyCtrlC}, InputNone},
		{"esc ignored", tea.KeyMsg{Type: tea.KeyEsc}, InputNone},
		{"up ignored", tea.KeyMsg{Type: tea.KeyUp}, InputNone},
		{"down ignored", tea.KeyMsg{Type: tea.KeyDown}, InputNone},
		{"enter ignored", tea.KeyMsg{Type: tea.KeyEnter}, InputNone},
		{"tab ignored", tea.KeyMsg{Type: tea.KeyTab}, InputNone},
		{"letter ignored", runeKey('h'), InputNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DecodeKey(tt.msg))
		})
	}
}

func TestKeyBindings_HaveHelp(t *testing.T) {
	for _, b := range []struct {
		name string
		help string
	}{
		{"quit", keys.Quit.Help().Key},
		{"retreat", keys.Retreat.Help().Key},
		{"advance", keys.Advance.Help().Key},
	} {
		assert.NotEmpty(t, b.help, b.name)
	}
}
