package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
	"github.com/vovakirdan/tui-flappy/internal/leaderboard/rest"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// app holds what every command shares: a logger and the leaderboard.
type app struct {
	logger  *log.Logger
	board   *leaderboard.Board
	store   *storage.Store // Set only for the sqlite backend
	closers []io.Closer
}

// newApp builds the logger and opens the leaderboard. Interactive commands
// own the terminal, so they log only when --log-file is given.
func newApp(interactive bool) (*app, error) {
	a := &app{}

	logger, err := a.newLogger(interactive)
	if err != nil {
		return nil, err
	}
	a.logger = logger
	return a, nil
}

func (a *app) newLogger(interactive bool) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		path, err := config.ExpandHome(flagLogFile)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		a.closers = append(a.closers, f)
		w = f
	case interactive:
		w = io.Discard
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
	}), nil
}

// openBoard connects the configured leaderboard backend.
func (a *app) openBoard() error {
	cfg := config.DefaultLeaderboardConfig()
	cfg.Backend = flagBackend
	cfg.DBPath = flagDBPath
	cfg.URL = flagURL
	cfg.Table = ""
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	var backend leaderboard.Backend
	switch cfg.Backend {
	case config.BackendSQLite:
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		a.store = store
		a.closers = append(a.closers, store)
		backend = store
	case config.BackendREST:
		client, err := rest.New(cfg, nil)
		if err != nil {
			return err
		}
		a.logger.Debug("using REST leaderboard", "endpoint", client.Endpoint())
		backend = client
	case config.BackendMemory:
		backend = leaderboard.NewMemory()
	}

	a.board = leaderboard.NewBoard(backend, a.logger, cfg.Timeout)
	return nil
}

// openBoardOrWarn opens the leaderboard and keeps going offline on failure.
func (a *app) openBoardOrWarn() {
	if err := a.openBoard(); err != nil {
		a.logger.Warn("leaderboard offline", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: leaderboard offline: %v\n", err)
	}
}

// runtimeConfig sizes the game to the current terminal.
func (a *app) runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// Close releases the store and the log file.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		//nolint:errcheck // Best-effort cleanup on exit
		a.closers[i].Close()
	}
}

// mustApp is newApp for commands that cannot run without it.
func mustApp(interactive bool) *app {
	a, err := newApp(interactive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return a
}
