package config

import (
	_ "embed"
)

//go:embed defaults/tiers.yaml
var defaultTiersYAML []byte

// DefaultTiersYAML returns the embedded default tier table.
func DefaultTiersYAML() []byte {
	return defaultTiersYAML
}
