// Package config provides YAML-based loading and validation of the
// difficulty tier table, so deployments can recalibrate the ten levels
// without a rebuild.
package config

import (
	"fmt"

	"github.com/ttc24/2048-Duel/internal/engine"
)

// TiersConfig is the on-disk form of the difficulty tier table.
type TiersConfig struct {
	Tiers []TierConfig `yaml:"tiers"`
}

// TierConfig mirrors engine.Tier for YAML.
type TierConfig struct {
	Level        int            `yaml:"level"`
	Depth        int            `yaml:"depth"`
	Boost        int            `yaml:"boost"`
	TimeBudgetMS int            `yaml:"time_budget_ms"`
	SampleK      int            `yaml:"sample_k"`
	FullChance   bool           `yaml:"full_chance"`
	Cache        bool           `yaml:"cache"`
	Epsilon      float64        `yaml:"epsilon"`
	Temperature  float64        `yaml:"temperature"`
	Noise        float64        `yaml:"noise"`
	Ceiling      *CeilingConfig `yaml:"ceiling"`
}

// CeilingConfig mirrors engine.Ceiling for YAML.
type CeilingConfig struct {
	Threshold int     `yaml:"threshold"`
	Span      int     `yaml:"span"`
	MaxDoom   float64 `yaml:"max_doom"`
}

// TierCount is the required number of difficulty levels.
const TierCount = 10

// Validate checks the table shape: exactly ten tiers numbered 1-10,
// sane per-tier ranges, and strength strictly increasing with level.
func (c TiersConfig) Validate() error {
	if len(c.Tiers) != TierCount {
		return fmt.Errorf("config: want %d tiers, got %d", TierCount, len(c.Tiers))
	}

	for i, tier := range c.Tiers {
		if tier.Level != i+1 {
			return fmt.Errorf("config: tier %d has level %d, want %d", i, tier.Level, i+1)
		}
		if tier.Depth < 1 {
			return fmt.Errorf("config: level %d: depth must be >= 1", tier.Level)
		}
		if tier.Boost < 0 {
			return fmt.Errorf("config: level %d: boost must be >= 0", tier.Level)
		}
		if tier.TimeBudgetMS <= 0 {
			return fmt.Errorf("config: level %d: time budget must be positive", tier.Level)
		}
		if tier.SampleK < 1 {
			return fmt.Errorf("config: level %d: sample breadth must be >= 1", tier.Level)
		}
		if tier.Epsilon < 0 || tier.Epsilon > 1 {
			return fmt.Errorf("config: level %d: epsilon %v outside [0, 1]", tier.Level, tier.Epsilon)
		}
		if tier.Temperature < 0 {
			return fmt.Errorf("config: level %d: temperature must be >= 0", tier.Level)
		}
		if tier.Noise < 0 {
			return fmt.Errorf("config: level %d: noise must be >= 0", tier.Level)
		}
		if ceil := tier.Ceiling; ceil != nil {
			if ceil.Threshold < 0 || ceil.Span <= 0 {
				return fmt.Errorf("config: level %d: ceiling needs threshold >= 0 and span > 0", tier.Level)
			}
			if ceil.MaxDoom < 0 || ceil.MaxDoom > 1 {
				return fmt.Errorf("config: level %d: max doom %v outside [0, 1]", tier.Level, ceil.MaxDoom)
			}
		}
	}

	for i := 1; i < len(c.Tiers); i++ {
		prev, cur := c.Tiers[i-1], c.Tiers[i]
		if cur.Depth+cur.Boost < prev.Depth+prev.Boost {
			return fmt.Errorf("config: level %d: total depth below level %d", cur.Level, prev.Level)
		}
		if cur.TimeBudgetMS <= prev.TimeBudgetMS {
			return fmt.Errorf("config: level %d: time budget not above level %d", cur.Level, prev.Level)
		}
		if cur.SampleK <= prev.SampleK {
			return fmt.Errorf("config: level %d: sample breadth not above level %d", cur.Level, prev.Level)
		}
		if cur.Epsilon >= prev.Epsilon {
			return fmt.Errorf("config: level %d: epsilon not below level %d", cur.Level, prev.Level)
		}
		if cur.Temperature >= prev.Temperature {
			return fmt.Errorf("config: level %d: temperature not below level %d", cur.Level, prev.Level)
		}
		if cur.Noise >= prev.Noise {
			return fmt.Errorf("config: level %d: noise not below level %d", cur.Level, prev.Level)
		}
	}
	return nil
}

// Engine converts the table into engine tiers. Call Validate first.
func (c TiersConfig) Engine() []engine.Tier {
	tiers := make([]engine.Tier, len(c.Tiers))
	for i, tc := range c.Tiers {
		tier := engine.Tier{
			Level:        tc.Level,
			Depth:        tc.Depth,
			Boost:        tc.Boost,
			TimeBudgetMS: tc.TimeBudgetMS,
			SampleK:      tc.SampleK,
			FullChance:   tc.FullChance,
			CacheEnabled: tc.Cache,
			Epsilon:      tc.Epsilon,
			Temperature:  tc.Temperature,
			Noise:        tc.Noise,
		}
		if tc.Ceiling != nil {
			tier.Ceiling = &engine.Ceiling{
				Threshold: tc.Ceiling.Threshold,
				Span:      tc.Ceiling.Span,
				MaxDoom:   tc.Ceiling.MaxDoom,
			}
		}
		tiers[i] = tier
	}
	return tiers
}
