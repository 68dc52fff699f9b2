package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the main menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab/L        - Leaderboard
  Q            - Quit

Examples:
  flappy menu
  flappy menu --fps 30
  flappy menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound output")
	menuCmd.Flags().StringVar(&flagName, "name", "", "Name to prefill for the leaderboard (default $USER)")
	rootCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound output")
	rootCmd.Flags().StringVar(&flagName, "name", "", "Name to prefill for the leaderboard (default $USER)")
}

func runMenu(_ *cobra.Command, _ []string) {
	a := mustApp(true)
	defer a.Close()
	a.openBoardOrWarn()

	game, stop, err := prepareGame(a)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer stop()

	cfg := a.runtimeConfig()
	for {
		result, menuErr := tui.RunMenu(a.board, cfg, game.State().HighScore)
		if menuErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", menuErr)
			return
		}
		cfg = result.Config

		showBoard := result.Choice == tui.ChoiceLeaderboard
		switch result.Choice {
		case tui.ChoiceQuit:
			return
		case tui.ChoicePlay:
			outcome, runErr := tui.Run(game, a.board, cfg, playerName())
			if runErr != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
				return
			}
			if outcome == tui.OutcomeQuit {
				return
			}
			showBoard = outcome == tui.OutcomeLeaderboard
		}

		if showBoard {
			goBack, sbErr := tui.RunScoreboard(a.board, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
				return
			}
			if !goBack {
				return
			}
		}
	}
}
