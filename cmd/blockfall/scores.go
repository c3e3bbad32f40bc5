package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagScoresAll   bool
	flagScoresClear bool
	flagScoresRun   string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top 10 high scores for a mode, or a summary of every
mode that has been played when no mode is given.

Examples:
  blockfall scores
  blockfall scores marathon
  blockfall scores sprint --all
  blockfall scores --run 1f0c9a2e-...
  blockfall scores ultra --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "List every recorded run instead of the top 10")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the mode")
	scoresCmd.Flags().StringVar(&flagScoresRun, "run", "", "Show a single run by its ID")
}

func runScores(cmd *cobra.Command, args []string) {
	modeID := ""
	if len(args) > 0 {
		modeID = args[0]
		if !registry.Exists(modeID) {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
			fmt.Fprintln(os.Stderr, "Run 'blockfall list' to see available modes.")
			os.Exit(1)
		}
	}
	if flagScoresClear && modeID == "" {
		fmt.Fprintln(os.Stderr, "Error: --clear needs a mode")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	switch {
	case flagScoresRun != "":
		err = printRun(store, flagScoresRun)
	case flagScoresClear:
		err = store.ClearScores(modeID)
		if err == nil {
			fmt.Printf("Cleared scores for %s.\n", registry.Title(modeID))
		}
	case modeID == "":
		err = printSummary(store)
	default:
		err = printModeScores(store, modeID, flagScoresAll)
	}

	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printRun(store *storage.Store, runID string) error {
	e, err := store.ScoreByRun(runID)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("no run with ID %q", runID)
	}
	fmt.Printf("Run:   %s\n", e.RunID)
	fmt.Printf("Mode:  %s\n", registry.Title(e.Mode))
	fmt.Printf("Score: %d\n", e.Score)
	fmt.Printf("Lines: %d\n", e.Lines)
	fmt.Printf("Date:  %s\n", e.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

func printSummary(store *storage.Store) error {
	stats, err := store.GetAllModesStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	modes := make([]string, 0, len(stats))
	for mode := range stats {
		modes = append(modes, mode)
	}
	sort.Strings(modes)

	fmt.Printf("  %-12s  %-6s  %-10s  %-10s  %-6s  %s\n", "Mode", "Games", "Best", "Average", "Lines", "Last played")
	fmt.Printf("  %-12s  %-6s  %-10s  %-10s  %-6s  %s\n", "----", "-----", "----", "-------", "-----", "-----------")
	for _, mode := range modes {
		s := stats[mode]
		fmt.Printf("  %-12s  %-6d  %-10d  %-10.0f  %-6d  %s\n",
			mode, s.GamesCount, s.HighScore, s.AvgScore, s.BestLines, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printModeScores(store *storage.Store, modeID string, all bool) error {
	var (
		scores []storage.ScoreEntry
		err    error
	)
	if all {
		scores, err = store.AllScores(modeID)
	} else {
		scores, err = store.TopScores(modeID, 10)
	}
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", registry.Title(modeID))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'blockfall play %s' to set the first high score!\n", modeID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-16s  %s\n", "Rank", "Score", "Lines", "Date", "Run")
	fmt.Printf("  %-4s  %-10s  %-6s  %-16s  %s\n", "----", "-----", "-----", "----", "---")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-10d  %-6d  %-16s  %s\n", i+1, e.Score, e.Lines, e.CreatedAt.Format("2006-01-02 15:04"), e.RunID)
	}

	stats, err := store.GetModeStats(modeID)
	if err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Games played: %d  Average: %.0f  Best lines: %d\n",
			stats.GamesCount, stats.AvgScore, stats.BestLines)
	}
	return nil
}
