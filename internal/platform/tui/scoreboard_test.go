package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/ball-breaker/internal/registry"
	"github.com/vovakirdan/ball-breaker/internal/storage"
)

var testInfo = registry.GameInfo{ID: "ballbreaker", Title: "Ball Breaker"}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestScoreboardTabs(t *testing.T) {
	store := openTestStore(t)
	_, err := store.SaveSession(storage.SessionRecord{
		GameID: "ballbreaker", Source: "play", Won: true, Score: 777, SpinsUsed: 4, DurationMs: 65000,
	})
	require.NoError(t, err)

	m := NewScoreboardModel(store, testInfo, 100, 30)
	view := m.View()
	assert.Contains(t, view, "HIGH SCORES - Ball Breaker")
	assert.Contains(t, view, "Top scores")
	assert.Contains(t, view, "777")
	assert.Contains(t, view, "1 games")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	assert.Equal(t, tabSessions, m.tab)
	view = m.View()
	assert.Contains(t, view, "won")
	assert.Contains(t, view, "1:05")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, tabTopScores, next.(ScoreboardModel).tab)
}

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(nil, testInfo, 80, 24)
	assert.Contains(t, m.View(), "No games recorded yet")
}

func TestScoreboardBack(t *testing.T) {
	m := NewScoreboardModel(nil, testInfo, 80, 24)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, next.(ScoreboardModel).IsGoingBack())
	assert.NotNil(t, cmd, "standalone scoreboard quits on back")

	m.embedded = true
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, next.(ScoreboardModel).IsGoingBack())
	assert.Nil(t, cmd)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", formatDuration(0))
	assert.Equal(t, "1:05", formatDuration(65400))
	assert.Equal(t, "12:00", formatDuration(720000))
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "   abcd", centerText("abcd", 10))
	assert.Equal(t, "toolong", centerText("toolong", 4))
	assert.True(t, strings.HasSuffix(centerText("x", 5), "x"))
}
