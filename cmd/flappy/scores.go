package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
)

var (
	flagLimit  int
	flagSearch string
	flagSort   string
	flagYes    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Manage leaderboard entries",
	Long: `Inspect and administer the leaderboard from the command line.

Examples:
  flappy scores top --limit 10
  flappy scores rank 25
  flappy scores list --search ann --sort recent
  flappy scores submit ann 31
  flappy scores delete 3f1c...
  flappy scores stats
  flappy scores clear --yes`,
}

var scoresTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the best scores",
	Args:  cobra.NoArgs,
	Run:   runScoresTop,
}

var scoresRankCmd = &cobra.Command{
	Use:   "rank <score>",
	Short: "Show the rank a score would take",
	Args:  cobra.ExactArgs(1),
	Run:   runScoresRank,
}

var scoresListCmd = &cobra.Command{
	Use:   "list",
	Short: "List up to 100 entries with search and sorting",
	Args:  cobra.NoArgs,
	Run:   runScoresList,
}

var scoresSubmitCmd = &cobra.Command{
	Use:   "submit <name> <score>",
	Short: "Add an entry",
	Args:  cobra.ExactArgs(2),
	Run:   runScoresSubmit,
}

var scoresDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry by id",
	Args:  cobra.ExactArgs(1),
	Run:   runScoresDelete,
}

var scoresStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics of the local database",
	Args:  cobra.NoArgs,
	Run:   runScoresStats,
}

var scoresClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every entry of the local database",
	Args:  cobra.NoArgs,
	Run:   runScoresClear,
}

func init() {
	scoresTopCmd.Flags().IntVar(&flagLimit, "limit", leaderboard.DefaultTopLimit, "Number of entries to show")
	scoresListCmd.Flags().StringVar(&flagSearch, "search", "", "Only names containing this text (case-insensitive)")
	scoresListCmd.Flags().StringVar(&flagSort, "sort", "score", "Sort order: score or recent")
	scoresClearCmd.Flags().BoolVar(&flagYes, "yes", false, "Confirm deleting all entries")

	scoresCmd.AddCommand(scoresTopCmd, scoresRankCmd, scoresListCmd, scoresSubmitCmd,
		scoresDeleteCmd, scoresStatsCmd, scoresClearCmd)
}

// scoresApp opens the leaderboard or exits.
func scoresApp() *app {
	a := mustApp(false)
	if err := a.openBoard(); err != nil {
		a.Close()
		fmt.Fprintf(os.Stderr, "Error opening leaderboard: %v\n", err)
		os.Exit(1)
	}
	return a
}

func fail(a *app, format string, args ...any) {
	a.Close()
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func printEntries(entries []leaderboard.Entry) {
	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-*s  %-6s  %-16s  %s\n", "Rank", leaderboard.MaxUsernameLen, "Name", "Score", "Date", "ID")
	fmt.Printf("  %-4s  %-*s  %-6s  %-16s  %s\n", "----", leaderboard.MaxUsernameLen, "----", "-----", "----", "--")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-*s  %-6d  %-16s  %s\n",
			i+1, leaderboard.MaxUsernameLen, e.Username, e.Score,
			e.CreatedAt.Local().Format("2006-01-02 15:04"), e.ID)
	}
}

func runScoresTop(_ *cobra.Command, _ []string) {
	a := scoresApp()
	defer a.Close()

	fmt.Println("Leaderboard")
	fmt.Println()
	printEntries(a.board.Top(context.Background(), flagLimit))
}

func runScoresRank(_ *cobra.Command, args []string) {
	a := scoresApp()
	defer a.Close()

	score, err := strconv.Atoi(args[0])
	if err != nil || score < 0 {
		fail(a, "invalid score %q", args[0])
	}
	rank, ok := a.board.Rank(context.Background(), score)
	if !ok {
		fail(a, "could not compute rank")
	}
	fmt.Printf("A score of %d ranks #%d\n", score, rank)
}

func runScoresList(_ *cobra.Command, _ []string) {
	a := scoresApp()
	defer a.Close()

	order, err := leaderboard.ParseSortOrder(flagSort)
	if err != nil {
		fail(a, "%v", err)
	}
	entries := a.board.List(context.Background(), leaderboard.ListOptions{
		Search: flagSearch,
		Sort:   order,
	})
	printEntries(entries)
}

func runScoresSubmit(_ *cobra.Command, args []string) {
	a := scoresApp()
	defer a.Close()

	score, err := strconv.Atoi(args[1])
	if err != nil || score < 0 {
		fail(a, "invalid score %q", args[1])
	}
	if _, err := leaderboard.ValidateUsername(args[0]); err != nil {
		fail(a, "%v", err)
	}
	if !a.board.Submit(context.Background(), args[0], score) {
		fail(a, "could not submit score")
	}
	fmt.Println("Score submitted.")
}

func runScoresDelete(_ *cobra.Command, args []string) {
	a := scoresApp()
	defer a.Close()

	if !a.board.Delete(context.Background(), args[0]) {
		fail(a, "could not delete %s", args[0])
	}
	fmt.Printf("Deleted %s\n", args[0])
}

func runScoresStats(_ *cobra.Command, _ []string) {
	a := scoresApp()
	defer a.Close()

	if a.store == nil {
		fail(a, "stats need the sqlite backend")
	}
	stats, err := a.store.Stats(context.Background())
	if err != nil {
		fail(a, "%v", err)
	}

	fmt.Printf("Entries:     %d\n", stats.Count)
	fmt.Printf("Players:     %d\n", stats.Players)
	fmt.Printf("High score:  %d\n", stats.HighScore)
	fmt.Printf("Average:     %.1f\n", stats.AvgScore)
	fmt.Printf("Total:       %d\n", stats.TotalScore)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
}

func runScoresClear(_ *cobra.Command, _ []string) {
	a := scoresApp()
	defer a.Close()

	if a.store == nil {
		fail(a, "clear needs the sqlite backend")
	}
	if !flagYes {
		fail(a, "refusing to delete all entries without --yes")
	}
	n, err := a.store.ClearScores(context.Background())
	if err != nil {
		fail(a, "%v", err)
	}
	a.logger.Info("scores cleared", "count", n)
	fmt.Printf("Deleted %d entries.\n", n)
}
