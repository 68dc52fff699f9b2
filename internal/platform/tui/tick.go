// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI loop, input mapping, the leaderboard screens
// and the SSH session flow.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Loop identifies the
// tick chain so a model ignores ticks left over from an earlier one.
type TickMsg struct {
	Time time.Time
	Loop int64
}

var sequence atomic.Int64

// nextID returns a process-wide unique id for tick loops and async requests.
func nextID() int64 {
	return sequence.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, loop int64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Loop: loop}
	})
}
