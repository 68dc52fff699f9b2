package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

func sessionUpdate(m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(SessionModel), cmd
}

func TestSessionFlow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	board, _ := testBoard()
	m := NewSessionModel(flappy.New(), board, testConfig(), "alice")
	assert.Nil(t, m.Init())
	assert.Contains(t, m.View(), "Play")

	m, cmd := sessionUpdate(m, enterKey)
	require.Equal(t, screenGame, m.screen)
	require.NotNil(t, cmd)
	assert.Equal(t, "alice", m.play.Username())
	assert.Contains(t, m.View(), "FLAPPY BIRD")

	m, _ = sessionUpdate(m, escKey)
	require.Equal(t, screenMenu, m.screen)

	m, cmd = sessionUpdate(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, screenScores, m.screen)
	assert.NotNil(t, cmd)

	m, _ = sessionUpdate(m, escKey)
	require.Equal(t, screenMenu, m.screen)

	m, cmd = sessionUpdate(m, runeKey('q'))
	isQuit(t, cmd)
	assert.Empty(t, m.View())
}

func TestSessionIgnoresTicksOutsideGame(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	m := NewSessionModel(flappy.New(), nil, testConfig(), "bob")

	m, cmd := sessionUpdate(m, TickMsg{Loop: 1})
	assert.Nil(t, cmd)
	assert.Equal(t, screenMenu, m.screen)
}

func TestSessionKeepsEditedName(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	board, _ := testBoard()
	m := NewSessionModel(flappy.New(), board, testConfig(), "alice")
	m, _ = sessionUpdate(m, enterKey)

	m.play.name.SetValue("ace")
	m, _ = sessionUpdate(m, escKey)

	assert.Equal(t, "ace", m.Username())
}

func TestSessionResizeReachesMenu(t *testing.T) {
	m := NewSessionModel(flappy.New(), nil, testConfig(), "bob")
	m, _ = sessionUpdate(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.menu.Config().ScreenW)
	assert.Equal(t, 40, m.config.ScreenH)
}
