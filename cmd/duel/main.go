// duel is a 2048 engine that plays at ten difficulty levels, from a
// pushover to a near-optimal expectimax player.
//
// Usage:
//
//	duel play               - Watch the engine play in the terminal
//	duel duel <a> <b>       - Race two levels on identical spawns
//	duel calibrate <level>  - Run a batch of games and report stats
//	duel tiers              - Show the difficulty tier table
//	duel scores             - Show recorded runs and level stats
//	duel serve              - Start SSH server for remote watching
//
// Global flags:
//
//	--seed <value>  - Set RNG seed for reproducible games
//	--db <path>     - Set database path (default: ~/.2048duel/runs.db)
//	--tiers <path>  - Path to a custom tier table YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed      int64
	flagDBPath    string
	flagTiersPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "duel",
	Short: "2048 Duel - an AI that plays 2048 at ten difficulty levels",
	Long: `2048 Duel is a 2048-playing engine with a ten-tier difficulty ladder.
Low tiers search shallowly, pick noisy moves, and sabotage themselves
past a score ceiling; the top tier plays full expectimax with no
handicaps.

Available commands:
  play       - Watch the engine play in your terminal
  duel       - Race two difficulty levels on identical tile spawns
  calibrate  - Run seeded game batches and report statistics
  tiers      - Show the difficulty tier table
  scores     - View recorded runs and per-level statistics
  serve      - Start SSH server for remote watching

Examples:
  duel play --level 7
  duel duel 3 8 --games 20
  duel calibrate 5 --games 50
  duel serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.2048duel/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagTiersPath, "tiers", "", "Path to custom tier table YAML")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(duelCmd)
	rootCmd.AddCommand(calibrateCmd)
	rootCmd.AddCommand(tiersCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
