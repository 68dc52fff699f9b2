package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var leaderboardCmd = &cobra.Command{
	Use:     "leaderboard",
	Aliases: []string{"lb"},
	Short:   "Browse the top scores",
	Long: `Show the top 20 leaderboard entries in an interactive table.

Controls:
  Up/Down/j/k  - Scroll
  R            - Refresh
  Esc/Q        - Quit`,
	Args: cobra.NoArgs,
	Run:  runLeaderboard,
}

func runLeaderboard(_ *cobra.Command, _ []string) {
	a := mustApp(true)
	defer a.Close()
	a.openBoardOrWarn()

	cfg := a.runtimeConfig()
	if _, err := tui.RunScoreboard(a.board, cfg.ScreenW, cfg.ScreenH); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
