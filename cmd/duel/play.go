package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ttc24/2048-Duel/internal/config"
	"github.com/ttc24/2048-Duel/internal/storage"
	"github.com/ttc24/2048-Duel/internal/tui"
)

var flagPlayLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Watch the engine play 2048",
	Long: `Open a terminal view of the engine playing 2048 at the chosen level.

Controls:
  P/Space    - Pause
  R          - Restart with a fresh seed
  + / -      - Speed up / slow down
  ] / [      - Raise / lower the difficulty level
  Q/Ctrl+C   - Quit

Finished games are saved to the runs database.

Examples:
  duel play
  duel play --level 10
  duel play --level 3 --seed 42`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagPlayLevel, "level", 5, "Difficulty level (1-10)")
}

func runPlay(cmd *cobra.Command, args []string) {
	tiers, err := config.LoadTiers(flagTiersPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tier table: %v\n", err)
		os.Exit(1)
	}

	if flagPlayLevel < 1 || flagPlayLevel > len(tiers) {
		fmt.Fprintf(os.Stderr, "Error: level must be between 1 and %d\n", len(tiers))
		os.Exit(1)
	}

	// The watch model handles resize itself; the early size check just
	// catches terminals too small for the board.
	if w, _, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil && w < 40 {
		fmt.Fprintln(os.Stderr, "Error: terminal too narrow, need at least 40 columns")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	runErr := tui.Run(tui.WatchConfig{
		Level: flagPlayLevel,
		Seed:  flagSeed,
		Tiers: tiers,
		Store: store,
	})
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
