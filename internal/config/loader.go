package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ttc24/2048-Duel/internal/engine"
)

// LoadTiers loads the difficulty tier table.
// Search order: customPath -> ~/.2048duel/tiers.yaml -> ./configs/tiers.yaml -> embedded default.
// A table from any source must pass validation; only an explicitly
// requested file reports its errors, fallback candidates are skipped.
func LoadTiers(customPath string) ([]engine.Tier, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		tiers, err := parseTiers(data)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return tiers, nil
	}

	if userPath := userConfigPath("tiers.yaml"); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if tiers, err := parseTiers(data); err == nil {
				return tiers, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "tiers.yaml")); err == nil {
		if tiers, err := parseTiers(data); err == nil {
			return tiers, nil
		}
	}

	tiers, err := parseTiers(defaultTiersYAML)
	if err != nil {
		// The embedded table is validated by tests; fall back to the
		// compiled-in defaults if it is ever broken.
		return engine.DefaultTiers(), nil
	}
	return tiers, nil
}

// parseTiers unmarshals and validates a YAML tier table.
func parseTiers(data []byte) ([]engine.Tier, error) {
	var cfg TiersConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse tiers: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg.Engine(), nil
}

// userConfigPath returns the path to a user config file, or empty if
// the home directory is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".2048duel", filename)
}
