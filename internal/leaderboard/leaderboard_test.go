package leaderboard_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// failingBackend returns err from every call.
type failingBackend struct {
	err   error
	calls int
}

func (f *failingBackend) TopScores(context.Context, int) ([]leaderboard.Entry, error) {
	f.calls++
	return nil, f.err
}

func (f *failingBackend) Submit(context.Context, string, int) (leaderboard.Entry, error) {
	f.calls++
	return leaderboard.Entry{}, f.err
}

func (f *failingBackend) Delete(context.Context, string) error {
	f.calls++
	return f.err
}

func (f *failingBackend) CountAbove(context.Context, int) (int, error) {
	f.calls++
	return 0, f.err
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "alice", "alice", false},
		{"trimmed", "  bob \t", "bob", false},
		{"max length", strings.Repeat("x", 15), strings.Repeat("x", 15), false},
		{"multibyte counted as runes", "ñandú-ñandú-ñan", "ñandú-ñandú-ñan", false},
		{"empty", "", "", true},
		{"only spaces", "   ", "", true},
		{"too long", strings.Repeat("x", 16), "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := leaderboard.ValidateUsername(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, leaderboard.ErrInvalidUsername)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMemoryTopScoresOrder(t *testing.T) {
	ctx := context.Background()
	m := leaderboard.NewMemory()

	for _, s := range []int{50, 10, 90} {
		_, err := m.Submit(ctx, "p", s)
		require.NoError(t, err)
	}

	top, err := m.TopScores(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []int{90, 50, 10}, scores(top))

	top, err = m.TopScores(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{90, 50}, scores(top))
}

func TestMemorySubmitAssignsIDs(t *testing.T) {
	ctx := context.Background()
	m := leaderboard.NewMemory()

	a, err := m.Submit(ctx, "alice", 3)
	require.NoError(t, err)
	b, err := m.Submit(ctx, "bob", 3)
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())
	assert.Equal(t, 2, m.Len())
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	m := leaderboard.NewMemory()

	e, err := m.Submit(ctx, "alice", 7)
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, e.ID))
	assert.Equal(t, 0, m.Len())
	assert.ErrorIs(t, m.Delete(ctx, e.ID), leaderboard.ErrNotFound)
}

func TestMemoryCountAbove(t *testing.T) {
	ctx := context.Background()
	m := leaderboard.NewMemory()
	for _, s := range []int{5, 10, 10, 20} {
		_, err := m.Submit(ctx, "p", s)
		require.NoError(t, err)
	}

	tests := []struct {
		score int
		want  int
	}{
		{25, 0},
		{20, 0},
		{10, 1},
		{7, 3},
		{0, 4},
	}
	for _, tc := range tests {
		got, err := m.CountAbove(ctx, tc.score)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "score %d", tc.score)
	}
}

func TestMemoryHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := leaderboard.NewMemory().TopScores(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBoardRank(t *testing.T) {
	ctx := context.Background()
	m := leaderboard.NewMemory()
	board := leaderboard.NewBoard(m, quietLogger(), time.Second)

	for _, s := range []int{30, 20, 10} {
		require.True(t, board.Submit(ctx, "p", s))
	}

	rank, ok := board.Rank(ctx, 25)
	assert.True(t, ok)
	assert.Equal(t, 2, rank)

	rank, ok = board.Rank(ctx, 100)
	assert.True(t, ok)
	assert.Equal(t, 1, rank)

	rank, ok = board.Rank(ctx, 10)
	assert.True(t, ok)
	assert.Equal(t, 3, rank, "ties do not push the rank down")
}

func TestBoardSubmitValidatesUsername(t *testing.T) {
	ctx := context.Background()
	m := leaderboard.NewMemory()
	board := leaderboard.NewBoard(m, quietLogger(), 0)

	assert.False(t, board.Submit(ctx, "   ", 5))
	assert.False(t, board.Submit(ctx, strings.Repeat("a", 16), 5))
	assert.Equal(t, 0, m.Len())

	assert.True(t, board.Submit(ctx, "  carol  ", 5))
	top := board.Top(ctx, 10)
	require.Len(t, top, 1)
	assert.Equal(t, "carol", top[0].Username)
}

func TestBoardNotConfigured(t *testing.T) {
	ctx := context.Background()
	board := leaderboard.NewBoard(nil, quietLogger(), 0)

	assert.False(t, board.Configured())

	top := board.Top(ctx, 10)
	assert.NotNil(t, top)
	assert.Empty(t, top)

	assert.False(t, board.Submit(ctx, "dave", 1))
	assert.False(t, board.Delete(ctx, "id"))

	rank, ok := board.Rank(ctx, 1)
	assert.False(t, ok)
	assert.Zero(t, rank)
}

func TestBoardSwallowsBackendErrors(t *testing.T) {
	ctx := context.Background()
	backend := &failingBackend{err: errors.New("connection refused")}
	board := leaderboard.NewBoard(backend, quietLogger(), time.Second)

	assert.Empty(t, board.Top(ctx, 10))
	assert.False(t, board.Submit(ctx, "erin", 9))
	assert.False(t, board.Delete(ctx, "x"))
	_, ok := board.Rank(ctx, 9)
	assert.False(t, ok)

	assert.Equal(t, 4, backend.calls)
}

func TestBoardDeleteMissing(t *testing.T) {
	board := leaderboard.NewBoard(leaderboard.NewMemory(), quietLogger(), 0)
	assert.False(t, board.Delete(context.Background(), "missing"))
}

func scores(entries []leaderboard.Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Score
	}
	return out
}
