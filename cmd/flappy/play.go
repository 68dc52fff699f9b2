package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var (
	flagMute bool
	flagName string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play right away",
	Long: `Start a game without going through the menu.

Controls:
  Space/Up/W  - Flap (also starts a run)
  Enter       - Start, or edit and submit your name after a run
  P           - Pause
  M           - Sound on/off
  R           - Try again (after game over)
  L/Tab       - Leaderboard (before or after a run)
  Esc/B       - Pause, then back
  Q/Ctrl+C    - Quit

Examples:
  flappy play
  flappy play --seed 42 --fps 30
  flappy play --config ./my-flappy.yaml --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound output")
	playCmd.Flags().StringVar(&flagName, "name", "", "Name to prefill for the leaderboard (default $USER)")
}

// prepareGame wires config and audio into the registered game.
// The returned function stops audio.
func prepareGame(a *app) (registry.Game, func(), error) {
	if err := checkGameConfig(); err != nil {
		return nil, nil, err
	}

	stop := func() {}
	if !flagMute {
		player := audio.NewPlayer(a.logger)
		if err := player.Start(); err != nil {
			a.logger.Warn("sound disabled", "error", err)
		} else {
			flappy.SetCueSink(player)
			stop = player.Close
		}
	}

	game, err := registry.Create("flappy")
	if err != nil {
		stop()
		return nil, nil, err
	}
	return game, stop, nil
}

// checkGameConfig points the game at --config and loads it once, so a
// bad config file fails the command instead of being replaced by defaults.
func checkGameConfig() error {
	flappy.SetConfigPath(flagConfig)
	_, err := config.LoadFlappy(flagConfig)
	return err
}

func playerName() string {
	if flagName != "" {
		return flagName
	}
	return config.GetEnv("USER", "")
}

func runPlay(_ *cobra.Command, _ []string) {
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
		outcome, runErr := tui.Run(game, a.board, cfg, playerName())
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			return
		}
		if outcome != tui.OutcomeLeaderboard {
			return
		}

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
