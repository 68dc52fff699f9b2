package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Leaderboard backend names accepted by LeaderboardConfig.Backend.
const (
	BackendSQLite = "sqlite"
	BackendREST   = "rest"
	BackendMemory = "memory"
)

// Environment variables consulted when flags leave a field empty.
const (
	EnvLeaderboardBackend = "FLAPPY_LEADERBOARD_BACKEND"
	EnvLeaderboardURL     = "FLAPPY_LEADERBOARD_URL"
	EnvLeaderboardKey     = "FLAPPY_LEADERBOARD_KEY"
	EnvLeaderboardTable   = "FLAPPY_LEADERBOARD_TABLE"
)

// LeaderboardConfig selects and configures the scored-entries service.
type LeaderboardConfig struct {
	Backend string        // sqlite, rest or memory
	DBPath  string        // sqlite file, "~" expanded
	URL     string        // REST base URL, e.g. https://project.supabase.co
	APIKey  string        // REST anon key
	Table   string        // REST table name
	Timeout time.Duration // Per-request timeout for REST calls
}

// DefaultLeaderboardConfig returns a local sqlite leaderboard.
func DefaultLeaderboardConfig() LeaderboardConfig {
	return LeaderboardConfig{
		Backend: BackendSQLite,
		DBPath:  "~/.flappy/scores.db",
		Table:   "scores",
		Timeout: 5 * time.Second,
	}
}

// ApplyEnv fills empty fields from the environment. An explicitly chosen
// backend wins over the environment; a configured URL selects the REST
// backend when no backend was named.
func (c *LeaderboardConfig) ApplyEnv() {
	if c.URL == "" {
		c.URL = GetEnv(EnvLeaderboardURL, "")
	}
	if c.APIKey == "" {
		c.APIKey = GetEnv(EnvLeaderboardKey, "")
	}
	if c.Table == "" {
		c.Table = GetEnv(EnvLeaderboardTable, "scores")
	}
	if c.Backend == "" {
		fallback := BackendSQLite
		if c.URL != "" {
			fallback = BackendREST
		}
		c.Backend = GetEnv(EnvLeaderboardBackend, fallback)
	}
	c.Backend = strings.ToLower(c.Backend)
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
}

// Validate checks that the selected backend has what it needs.
func (c LeaderboardConfig) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("config: sqlite leaderboard needs a database path")
		}
	case BackendREST:
		if c.URL == "" || c.APIKey == "" {
			return fmt.Errorf("config: rest leaderboard needs %s and %s", EnvLeaderboardURL, EnvLeaderboardKey)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("config: unknown leaderboard backend %q", c.Backend)
	}
	return nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
