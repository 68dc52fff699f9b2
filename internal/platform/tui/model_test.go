package tui

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
)

var (
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testBoard() (*leaderboard.Board, *leaderboard.Memory) {
	mem := leaderboard.NewMemory()
	return leaderboard.NewBoard(mem, log.New(io.Discard), time.Second), mem
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func newTestModel(t *testing.T, board *leaderboard.Board) (Model, *flappy.Game) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	game := flappy.New()
	m := NewModel(game, board, testConfig(), "tester")
	require.NotNil(t, m.Init())
	return m, game
}

func press(m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func tick(m Model) (Model, tea.Cmd) {
	next, cmd := m.Update(TickMsg{Time: time.Now(), Loop: m.loop})
	return next.(Model), cmd
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

// playUntilOver starts a run and lets the bird fall until it ends,
// returning the command of the final tick.
func playUntilOver(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	m, _ = press(m, spaceKey)
	m, _ = tick(m)
	require.True(t, m.GameState().Playing)

	for range 500 {
		var cmd tea.Cmd
		m, cmd = tick(m)
		if m.GameState().GameOver {
			return m, cmd
		}
	}
	t.Fatal("run never ended")
	return m, nil
}

func isQuit(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelStartsIdle(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = tick(m)

	assert.True(t, m.GameState().Idle())
	assert.Contains(t, m.View(), "FLAPPY BIRD")
	assert.Contains(t, m.View(), "leaderboard offline")
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	m, game := newTestModel(t, nil)
	m, _ = press(m, spaceKey)
	m, _ = tick(m)
	m, _ = tick(m)
	ticks := game.Engine().Ticks()

	update(m, TickMsg{Loop: m.loop + 1000})
	assert.Equal(t, ticks, game.Engine().Ticks())
}

func TestModelEndOfRunFetchesRank(t *testing.T) {
	board, mem := testBoard()
	_, err := mem.Submit(context.Background(), "ace", 10)
	require.NoError(t, err)

	m, _ := newTestModel(t, board)
	m, cmd := playUntilOver(t, m)

	assert.Contains(t, m.View(), "ranking...")

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	require.Len(t, batch, 2)
	msg := batch[1]()
	require.IsType(t, rankMsg{}, msg)

	m = update(m, msg)
	assert.True(t, m.rankKnown)
	assert.Equal(t, 2, m.rank)
	assert.Contains(t, m.View(), "WORLD RANK #2")
}

func TestModelIgnoresStaleRank(t *testing.T) {
	board, _ := testBoard()
	m, _ := newTestModel(t, board)
	m, _ = playUntilOver(t, m)

	m = update(m, rankMsg{run: m.run + 1, rank: 7, ok: true})
	assert.False(t, m.rankKnown)
}

func TestModelSubmitsOnce(t *testing.T) {
	board, mem := testBoard()
	m, _ := newTestModel(t, board)
	m, _ = playUntilOver(t, m)
	assert.Contains(t, m.View(), "name: tester")

	m, focus := press(m, enterKey)
	require.True(t, m.name.Focused())
	assert.NotNil(t, focus)

	m, _ = press(m, runeKey('1'))
	assert.Equal(t, "tester1", m.Username())

	m, cmd := press(m, enterKey)
	require.NotNil(t, cmd)
	assert.Equal(t, submitPending, m.submit)
	assert.False(t, m.name.Focused())

	m = update(m, cmd())
	assert.Equal(t, submitDone, m.submit)
	assert.Contains(t, m.View(), "SCORE SUBMITTED!")

	entries, err := mem.TopScores(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "tester1", entries[0].Username)
	assert.Equal(t, m.GameState().Score, entries[0].Score)

	m, cmd = press(m, enterKey)
	assert.Nil(t, cmd)
	assert.False(t, m.name.Focused())
	assert.Equal(t, 1, mem.Len())
}

func TestModelRejectsBlankName(t *testing.T) {
	board, mem := testBoard()
	m, _ := newTestModel(t, board)
	m, _ = playUntilOver(t, m)

	m, _ = press(m, enterKey)
	m.name.SetValue("   ")
	m, cmd := press(m, enterKey)

	assert.Nil(t, cmd)
	assert.Equal(t, submitIdle, m.submit)
	assert.NotEmpty(t, m.notice)
	assert.Equal(t, 0, mem.Len())
}

func TestModelFailedSubmitCanRetry(t *testing.T) {
	board, _ := testBoard()
	m, _ := newTestModel(t, board)
	m, _ = playUntilOver(t, m)

	m = update(m, submitMsg{run: m.run, ok: false})
	assert.Equal(t, submitFailed, m.submit)
	assert.True(t, m.canSubmit())
	assert.Contains(t, m.View(), "could not submit score")
}

func TestModelOfflineSkipsLeaderboard(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, cmd := playUntilOver(t, m)

	_, isBatch := cmd().(tea.BatchMsg)
	assert.False(t, isBatch)
	assert.Contains(t, m.View(), "leaderboard offline")

	m, _ = press(m, enterKey)
	assert.False(t, m.name.Focused())
}

func TestModelRestartReturnsToIdle(t *testing.T) {
	board, _ := testBoard()
	m, _ := newTestModel(t, board)
	m, _ = playUntilOver(t, m)
	best := m.GameState().HighScore

	m, cmd := press(m, runeKey('r'))
	assert.Nil(t, cmd)
	assert.True(t, m.GameState().Idle())
	assert.Equal(t, best, m.GameState().HighScore)
	assert.Equal(t, int64(0), m.run)
	assert.Equal(t, submitIdle, m.submit)
}

func TestModelBackFromIdle(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, cmd := press(m, escKey)

	isQuit(t, cmd)
	assert.True(t, m.BackToMenu())
	assert.Equal(t, OutcomeMenu, m.Outcome())
	assert.Empty(t, m.View())
}

func TestModelEscPausesBeforeLeaving(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = press(m, spaceKey)
	m, _ = tick(m)

	m, cmd := press(m, escKey)
	assert.Nil(t, cmd)
	m, _ = tick(m)
	require.True(t, m.GameState().Paused)

	m, cmd = press(m, escKey)
	isQuit(t, cmd)
	assert.True(t, m.BackToMenu())
}

func TestModelScoresKey(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = press(m, spaceKey)
	m, _ = tick(m)
	m, cmd := press(m, runeKey('l'))
	assert.Nil(t, cmd, "leaderboard key is ignored mid-run")

	m, _ = newTestModel(t, nil)
	m, cmd = press(m, runeKey('l'))
	isQuit(t, cmd)
	assert.True(t, m.WantsScoreboard())
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, cmd := press(m, runeKey('q'))

	isQuit(t, cmd)
	assert.True(t, m.IsQuitting())
	assert.Equal(t, OutcomeQuit, m.Outcome())
}

func TestModelToggleSound(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = tick(m)
	require.True(t, m.GameState().SoundEnabled)

	m, _ = press(m, runeKey('m'))
	m, _ = tick(m)
	assert.False(t, m.GameState().SoundEnabled)
}

func TestModelResizeKeepsRun(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = press(m, spaceKey)
	m, _ = tick(m)

	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = tick(m)

	assert.True(t, m.GameState().Playing)
	assert.Equal(t, 100, m.screen.Width())
	assert.Equal(t, 30-statusRows, m.screen.Height())
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "Quit", OutcomeQuit.String())
	assert.Equal(t, "Menu", OutcomeMenu.String())
	assert.Equal(t, "Leaderboard", OutcomeLeaderboard.String())
	assert.Equal(t, "Unknown", Outcome(42).String())
}
