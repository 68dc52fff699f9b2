package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// statusRows is the number of terminal rows below the playfield.
const statusRows = 3

// Outcome tells the caller where the player wanted to go when the game exited.
type Outcome int

const (
	OutcomeQuit Outcome = iota
	OutcomeMenu
	OutcomeLeaderboard
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeQuit:
		return "Quit"
	case OutcomeMenu:
		return "Menu"
	case OutcomeLeaderboard:
		return "Leaderboard"
	default:
		return "Unknown"
	}
}

type submitState int

const (
	submitIdle submitState = iota
	submitPending
	submitDone
	submitFailed
)

// rankMsg carries the world rank of a finished run.
type rankMsg struct {
	run  int64
	rank int
	ok   bool
}

// submitMsg reports whether a finished run's score was stored.
type submitMsg struct {
	run int64
	ok  bool
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	board      *leaderboard.Board
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	name       textinput.Model

	loop      int64 // Current tick chain
	run       int64 // Id of the last finished run
	rank      int
	rankKnown bool
	submit    submitState
	notice    string

	outcome Outcome
	done    bool
}

// NewModel creates a new Bubble Tea model for the given game. username
// prefills the name field shown after a run.
func NewModel(game registry.Game, board *leaderboard.Board, cfg core.RuntimeConfig, username string) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	name := textinput.New()
	name.Prompt = "name: "
	name.Placeholder = "ENTER YOUR NAME"
	name.CharLimit = leaderboard.MaxUsernameLen
	name.Width = leaderboard.MaxUsernameLen + 1
	name.SetValue(strings.TrimSpace(username))

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		board:      board,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       h,
		name:       name,
		loop:       nextID(),
	}
}

func playHeight(h int) int {
	return core.Max(1, h-statusRows)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()

	case rankMsg:
		if msg.run == m.run {
			m.rank, m.rankKnown = msg.rank, msg.ok
		}
		return m, nil

	case submitMsg:
		if msg.run != m.run {
			return m, nil
		}
		if msg.ok {
			m.submit = submitDone
			m.notice = ""
		} else {
			m.submit = submitFailed
			m.notice = "could not submit score"
		}
		return m, nil
	}

	if m.name.Focused() {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.finish(OutcomeQuit)
	}

	if m.name.Focused() {
		switch msg.Type {
		case tea.KeyEnter:
			return m.submitScore()
		case tea.KeyEsc:
			m.name.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}

	keys := m.keyMapper.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Scores) && !m.gameState.Playing:
		return m.finish(OutcomeLeaderboard)
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		return m.finish(OutcomeQuit)
	}

	switch {
	case m.gameState.GameOver:
		switch action {
		case core.ActionRestart:
			return m.restart(), nil
		case core.ActionBack:
			return m.finish(OutcomeMenu)
		case core.ActionConfirm:
			if m.canSubmit() {
				m.notice = ""
				return m, m.name.Focus()
			}
			return m, nil
		}
	case m.gameState.Idle():
		if action == core.ActionBack {
			return m.finish(OutcomeMenu)
		}
	case action == core.ActionBack:
		// Esc pauses a run first and leaves on the second press.
		if m.gameState.Paused {
			return m.finish(OutcomeMenu)
		}
		action = core.ActionPause
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events. The run keeps going; only
// the drawing area changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	cmds := []tea.Cmd{tickCmd(m.config.TickRate, m.loop)}
	if result.Ended {
		m.run = nextID()
		m.rank, m.rankKnown = 0, false
		m.submit = submitIdle
		m.notice = ""
		if m.board.Configured() {
			cmds = append(cmds, m.fetchRank(m.gameState.Score))
		}
	}
	return m, tea.Batch(cmds...)
}

// restart returns to the instructions screen with a fresh seed.
func (m Model) restart() Model {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.inputFrame.Clear()
	m.run = 0
	m.rank, m.rankKnown = 0, false
	m.submit = submitIdle
	m.notice = ""
	m.name.Blur()
	return m
}

func (m Model) finish(o Outcome) (tea.Model, tea.Cmd) {
	m.outcome = o
	m.done = true
	m.name.Blur()
	return m, tea.Quit
}

func (m Model) canSubmit() bool {
	return m.board.Configured() && (m.submit == submitIdle || m.submit == submitFailed)
}

// submitScore stores the finished run's score under the entered name.
// A run is submitted at most once.
func (m Model) submitScore() (tea.Model, tea.Cmd) {
	if !m.canSubmit() {
		m.name.Blur()
		return m, nil
	}
	name, err := leaderboard.ValidateUsername(m.name.Value())
	if err != nil {
		m.notice = fmt.Sprintf("name must be 1-%d characters", leaderboard.MaxUsernameLen)
		return m, nil
	}
	m.name.SetValue(name)
	m.name.Blur()
	m.submit = submitPending
	m.notice = ""

	board, run, score := m.board, m.run, m.gameState.Score
	return m, func() tea.Msg {
		return submitMsg{run: run, ok: board.Submit(context.Background(), name, score)}
	}
}

func (m Model) fetchRank(score int) tea.Cmd {
	board, run := m.board, m.run
	return func() tea.Msg {
		rank, ok := board.Rank(context.Background(), score)
		return rankMsg{run: run, rank: rank, ok: ok}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir, err := config.ExpandHome(filepath.Join("~", ".flappy", "screenshots"))
	if err != nil {
		return
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.done {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.statusView()
}

// statusView renders the rows under the playfield: leaderboard status,
// the name field and key help.
func (m Model) statusView() string {
	var top, middle string

	switch {
	case m.gameState.GameOver:
		top = m.rankView()
		middle = m.submitView()
	case m.gameState.Paused:
		top = accentStyle.Render("PAUSED")
	case m.gameState.Idle():
		if m.board.Configured() {
			top = dimStyle.Render("press l for the leaderboard")
		} else {
			top = dimStyle.Render("leaderboard offline")
		}
	}

	var keys help.KeyMap = m.keyMapper.Keys()
	if m.gameState.GameOver {
		keys = gameOverHelp{keys: m.keyMapper.Keys()}
	}

	lines := []string{top, middle, m.help.View(keys)}
	for i, l := range lines {
		lines[i] = centerText(l, m.config.ScreenW)
	}
	return strings.Join(lines, "\n")
}

func (m Model) rankView() string {
	switch {
	case !m.board.Configured():
		return dimStyle.Render("leaderboard offline")
	case m.rankKnown:
		return accentStyle.Render(fmt.Sprintf("WORLD RANK #%d", m.rank))
	default:
		return dimStyle.Render("ranking...")
	}
}

func (m Model) submitView() string {
	if !m.board.Configured() {
		return ""
	}
	switch m.submit {
	case submitPending:
		return dimStyle.Render("submitting...")
	case submitDone:
		return successStyle.Render("SCORE SUBMITTED!")
	}

	hint := "enter: submit score"
	if m.name.Focused() {
		hint = "enter: send  esc: cancel"
	}
	line := m.name.View() + "  " + dimStyle.Render(hint)
	if m.notice != "" {
		line += "  " + errorStyle.Render(m.notice)
	}
	return line
}

// Outcome returns where the player asked to go when the model exited.
func (m Model) Outcome() Outcome {
	return m.outcome
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.done && m.outcome == OutcomeQuit
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.done && m.outcome == OutcomeMenu
}

// WantsScoreboard returns true if user requested the leaderboard.
func (m Model) WantsScoreboard() bool {
	return m.done && m.outcome == OutcomeLeaderboard
}

// Username returns the name in the score field, trimmed.
func (m Model) Username() string {
	return strings.TrimSpace(m.name.Value())
}

// GameState returns the state observed on the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given game and returns where
// the player wanted to go next.
func Run(game registry.Game, board *leaderboard.Board, cfg core.RuntimeConfig, username string) (Outcome, error) {
	model := NewModel(game, board, cfg, username)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return OutcomeQuit, err
	}
	m, ok := finalModel.(Model)
	if !ok {
		return OutcomeQuit, nil
	}
	return m.Outcome(), nil
}
