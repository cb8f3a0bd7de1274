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

var flagDuelGames int

var duelCmd = &cobra.Command{
	Use:   "duel <levelA> <levelB>",
	Short: "Race two difficulty levels against each other",
	Long: `Play both levels against identical tile spawn streams and compare
final scores. Each game uses a fresh seed; results are saved to the
runs database.

Examples:
  duel duel 3 8
  duel duel 5 10 --games 20
  duel duel 1 2 --games 50 --seed 7`,
	Args: cobra.ExactArgs(2),
	Run:  runDuel,
}

func init() {
	duelCmd.Flags().IntVar(&flagDuelGames, "games", 10, "Number of games to play")
}

func runDuel(cmd *cobra.Command, args []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "duel"})

	levelA, levelB, err := parseLevels(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
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

	runner := sim.NewRunner(tiers, nil)
	winsA, winsB, draws := 0, 0, 0

	for i := 0; i < flagDuelGames; i++ {
		gameSeed := seed + int64(i)*1000
		res := runner.Duel(levelA, levelB, gameSeed)

		switch res.Winner {
		case levelA:
			winsA++
		case levelB:
			winsB++
		default:
			draws++
		}

		logger.Info("game finished",
			"game", i+1,
			"scoreA", res.A.Score,
			"scoreB", res.B.Score,
			"winner", res.Winner,
		)

		if store != nil {
			//nolint:errcheck // Best-effort save, the duel continues regardless
			store.SaveDuel(storage.DuelEntry{
				LevelA: levelA,
				LevelB: levelB,
				ScoreA: res.A.Score,
				ScoreB: res.B.Score,
				Winner: res.Winner,
				Seed:   gameSeed,
			})
		}
	}

	fmt.Println()
	fmt.Printf("Duel: level %d vs level %d (%d games)\n", levelA, levelB, flagDuelGames)
	fmt.Printf("  Level %-2d wins: %d\n", levelA, winsA)
	fmt.Printf("  Level %-2d wins: %d\n", levelB, winsB)
	fmt.Printf("  Draws:         %d\n", draws)
}

// parseLevels validates the two positional level arguments.
func parseLevels(args []string) (int, int, error) {
	levelA, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid level %q", args[0])
	}
	levelB, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid level %q", args[1])
	}
	if levelA < 1 || levelA > config.TierCount || levelB < 1 || levelB > config.TierCount {
		return 0, 0, fmt.Errorf("levels must be between 1 and %d", config.TierCount)
	}
	if levelA == levelB {
		return 0, 0, fmt.Errorf("levels must differ")
	}
	return levelA, levelB, nil
}
