package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ttc24/2048-Duel/internal/config"
	"github.com/ttc24/2048-Duel/internal/sim"
	"github.com/ttc24/2048-Duel/internal/storage"
)

var flagCalGames int

var calibrateCmd = &cobra.Command{
	Use:   "calibrate <level>",
	Short: "Run a batch of seeded games and report statistics",
	Long: `Play a batch of full games at one difficulty level and print the
aggregate statistics. Use it to check that a tier lands where its
score ceiling says it should. Runs are saved to the runs database.

Examples:
  duel calibrate 5
  duel calibrate 1 --games 100
  duel calibrate 10 --games 20 --seed 7`,
	Args: cobra.ExactArgs(1),
	Run:  runCalibrate,
}

func init() {
	calibrateCmd.Flags().IntVar(&flagCalGames, "games", 30, "Number of games to play")
}

func runCalibrate(cmd *cobra.Command, args []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "calibrate"})

	level, err := strconv.Atoi(args[0])
	if err != nil || level < 1 || level > config.TierCount {
		fmt.Fprintf(os.Stderr, "Error: level must be between 1 and %d\n", config.TierCount)
		os.Exit(1)
	}

	tiers, err := config.LoadTiers(flagTiersPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tier table: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger.Info("starting calibration", "level", level, "games", flagCalGames, "seed", seed)

	runner := sim.NewRunner(tiers, nil)
	results := make([]sim.Result, 0, flagCalGames)

	for i := 0; i < flagCalGames; i++ {
		res := runner.Play(level, seed+int64(i)*1000)
		results = append(results, res)

		logger.Info("game finished",
			"game", i+1,
			"score", res.Score,
			"maxTile", res.MaxTile,
			"moves", res.Moves,
		)

		if store != nil {
			//nolint:errcheck // Best-effort save
			store.SaveRun(storage.RunEntry{
				Level:      level,
				Seed:       res.Seed,
				Score:      res.Score,
				MaxTile:    res.MaxTile,
				Moves:      res.Moves,
				Won:        res.Won,
				DurationMS: res.Duration.Milliseconds(),
			})
		}
	}

	stats := sim.Summarize(results)

	fmt.Println()
	fmt.Printf("Calibration: level %d over %d games\n", level, stats.Games)
	fmt.Printf("  Mean score: %.1f\n", stats.MeanScore)
	fmt.Printf("  Max score:  %d\n", stats.MaxScore)
	fmt.Printf("  Max tile:   %d\n", stats.MaxTile)
	fmt.Printf("  2048 wins:  %d\n", stats.Wins)
}
