package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ttc24/2048-Duel/internal/config"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Show the difficulty tier table",
	Long: `Print the active difficulty tier table, one row per level.

The table comes from --tiers if given, then ~/.2048duel/tiers.yaml,
then ./configs/tiers.yaml, then the built-in defaults.

Examples:
  duel tiers
  duel tiers --tiers ./my-tiers.yaml`,
	Run: runTiers,
}

func runTiers(cmd *cobra.Command, args []string) {
	tiers, err := config.LoadTiers(flagTiersPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tier table: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Difficulty tiers")
	fmt.Println()
	fmt.Printf("  %-5s  %-5s  %-5s  %-7s  %-7s  %-5s  %-4s  %-6s  %-5s  %s\n",
		"Level", "Depth", "Boost", "Time ms", "Sample", "Cache", "Eps", "Temp", "Noise", "Ceiling")

	for _, t := range tiers {
		cache := "off"
		if t.CacheEnabled {
			cache = "on"
		}
		sample := fmt.Sprintf("%d", t.SampleK)
		if t.FullChance {
			sample = "full"
		}
		ceiling := "none"
		if t.Ceiling != nil {
			ceiling = fmt.Sprintf("%d +%d doom %.2f",
				t.Ceiling.Threshold, t.Ceiling.Span, t.Ceiling.MaxDoom)
		}

		fmt.Printf("  %-5d  %-5d  %-5d  %-7d  %-7s  %-5s  %-4.2f  %-6.2f  %-5.0f  %s\n",
			t.Level, t.Depth, t.Boost, t.TimeBudgetMS, sample, cache,
			t.Epsilon, t.Temperature, t.Noise, ceiling)
	}
}
