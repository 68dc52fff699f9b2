package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full session flow inside one program:
// menu -> game -> leaderboard -> menu. It is the top-level model of an
// SSH session. The game instance lives as long as the session, so the
// high score and sound preference carry across runs.
type SessionModel struct {
	board    *leaderboard.Board
	config   core.RuntimeConfig
	username string
	game     registry.Game
	screen   sessionScreen
	menu     MenuModel
	play     Model
	scores   ScoreboardModel
	quitting bool
}

// NewSessionModel creates a new session model starting at the menu.
func NewSessionModel(game registry.Game, board *leaderboard.Board, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		board:    board,
		config:   cfg,
		username: username,
		game:     game,
		menu:     NewMenuModel(board, cfg, 0),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session. When a screen hands over, the
// command it returned (its tea.Quit) is dropped.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch m.menu.Selected() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit
	case ChoicePlay:
		return m.startGame()
	case ChoiceLeaderboard:
		return m.openScores()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.play.Update(msg)
	if play, ok := next.(Model); ok {
		m.play = play
	}
	if name := m.play.Username(); name != "" {
		m.username = name
	}

	switch {
	case m.play.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.play.BackToMenu():
		return m.openMenu()
	case m.play.WantsScoreboard():
		return m.openScores()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if scores, ok := next.(ScoreboardModel); ok {
		m.scores = scores
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		return m.openMenu()
	}
	return m, cmd
}

func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	m.config = m.menu.Config()
	m.play = NewModel(m.game, m.board, m.config, m.username)
	m.screen = screenGame
	return m, m.play.Init()
}

func (m SessionModel) openMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.board, m.config, m.game.State().HighScore)
	m.screen = screenMenu
	return m, m.menu.Init()
}

func (m SessionModel) openScores() (tea.Model, tea.Cmd) {
	m.scores = NewScoreboardModel(m.board, m.config.ScreenW, m.config.ScreenH)
	m.screen = screenScores
	return m, m.scores.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.play.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Username returns the name the session will prefill for the next run.
func (m SessionModel) Username() string {
	return m.username
}
