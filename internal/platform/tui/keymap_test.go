package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ball-breaker/internal/core"
)

func TestMapKey(t *testing.T) {
	keys := DefaultGameKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionPrimary},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionPrimary},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"d", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}}, core.ActionRight},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSkip},
		{"p", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}, core.ActionPause},
		{"r", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, core.ActionRestart},
		{"quit is handled by the model", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, core.ActionNone},
		{"tab is handled by the model", tea.KeyMsg{Type: tea.KeyTab}, core.ActionNone},
		{"unbound", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.MapKey(tt.msg); got != tt.expected {
				t.Errorf("MapKey(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
			}
		})
	}
}
