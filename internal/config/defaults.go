package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default engine configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Rules: TetrisRules{
			// NES-like curve at 60 ticks per second
			GravityFrames: []int{48, 43, 38, 33, 28, 23, 18, 13, 8, 6, 5, 5, 5, 4, 4, 4, 3, 3, 3, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 1},
			LockDelay:     30,
			LockResets:    15,
			ClearDelay:    20,
			Ghost:         true,
		},
		Scoring: TetrisScoring{
			Single:   100,
			Double:   300,
			Triple:   500,
			Tetris:   800,
			SoftDrop: 1,
			HardDrop: 2,
		},
		Input: TetrisInput{
			RepeatDelay: 20,
		},
		Difficulty: DifficultyConfig{
			Enabled:       true,
			StartLevel:    1,
			LinesPerLevel: 10,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultTetrisYAML
}
