package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ttc24/2048-Duel/internal/config"
	"github.com/ttc24/2048-Duel/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show recorded runs and level statistics",
	Long: `Without arguments, show aggregate statistics for every level that
has recorded runs. With a level, show the top 10 runs for that level.

Examples:
  duel scores
  duel scores 7`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 1 {
		level, convErr := strconv.Atoi(args[0])
		if convErr != nil || level < 1 || level > config.TierCount {
			fmt.Fprintf(os.Stderr, "Error: level must be between 1 and %d\n", config.TierCount)
			os.Exit(1)
		}
		showLevelRuns(store, level)
		return
	}

	showAllStats(store)
}

// showLevelRuns prints the top runs for one level.
func showLevelRuns(store *storage.Store, level int) {
	runs, err := store.TopRuns(level, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Top runs - level %d\n", level)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'duel calibrate %d' or 'duel play --level %d' first.\n", level, level)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %-6s  %s\n", "Rank", "Score", "Max tile", "Moves", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %-6s  %s\n", "----", "-----", "--------", "-----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-10d  %-8d  %-6d  %s\n",
			i+1, r.Score, r.MaxTile, r.Moves, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	high, err := store.HighScore(level)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", high)
	}
}

// showAllStats prints aggregate statistics per level.
func showAllStats(store *storage.Store) {
	all, err := store.GetAllLevelStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'duel calibrate <level>' or 'duel play' first.")
		return
	}

	levels := make([]int, 0, len(all))
	for level := range all {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	fmt.Println("Level statistics")
	fmt.Println()
	fmt.Printf("  %-5s  %-5s  %-10s  %-10s  %-9s  %s\n",
		"Level", "Runs", "High", "Mean", "Best tile", "Wins")
	for _, level := range levels {
		s := all[level]
		fmt.Printf("  %-5d  %-5d  %-10d  %-10.1f  %-9d  %d\n",
			s.Level, s.RunsCount, s.HighScore, s.AvgScore, s.BestTile, s.Wins)
	}
}
