// flappy is a terminal Flappy Bird with a shared leaderboard.
//
// Usage:
//
//	flappy                   - Start with the main menu
//	flappy play              - Play right away
//	flappy leaderboard       - Browse the top scores
//	flappy scores <command>  - Manage leaderboard entries
//	flappy serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--config <path>      - Custom game config YAML
//	--backend <name>     - Leaderboard backend: sqlite, rest or memory
//	--db <path>          - Set database path (default: ~/.flappy/scores.db)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register it
	_ "github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagBackend  string
	flagDBPath   string
	flagURL      string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird in your terminal",
	Long: `Flappy Bird for the terminal: keep the bird in the air and thread it
through the gaps between pipes. Scores go to a shared leaderboard.

Available commands:
  play         - Play right away
  menu         - Main menu (default)
  leaderboard  - Browse the top scores
  scores       - Manage leaderboard entries
  serve        - Start SSH server for remote play

Leaderboard backends:
  sqlite  - Local database file (default)
  rest    - PostgREST/Supabase table, set FLAPPY_LEADERBOARD_URL and FLAPPY_LEADERBOARD_KEY
  memory  - In-process only, lost on exit

Examples:
  flappy
  flappy play --seed 42
  flappy leaderboard --backend rest
  flappy scores list --search ann --sort recent
  flappy serve --ssh :2222`,
	Run: runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Leaderboard backend: sqlite, rest or memory (env FLAPPY_LEADERBOARD_BACKEND)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "REST leaderboard base URL (env FLAPPY_LEADERBOARD_URL)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (interactive commands log nowhere otherwise)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
