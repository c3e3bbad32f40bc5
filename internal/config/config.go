// Package config provides YAML-based engine configuration loading and
// difficulty management for blockfall.
package config

// TetrisConfig contains all configuration for the falling-block engine and its hosts.
type TetrisConfig struct {
	Rules      TetrisRules      `yaml:"rules"`
	Scoring    TetrisScoring    `yaml:"scoring"`
	Input      TetrisInput      `yaml:"input"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TetrisRules defines timing parameters, all measured in ticks.
type TetrisRules struct {
	GravityFrames []int `yaml:"gravity_frames"` // Ticks per row for level 1, 2, ...; last entry repeats
	LockDelay     int   `yaml:"lock_delay"`     // Ticks a grounded piece waits before locking
	LockResets    int   `yaml:"lock_resets"`    // Moves/rotations allowed to restart the lock delay
	ClearDelay    int   `yaml:"clear_delay"`    // Ticks full rows stay flagged before collapsing
	Ghost         bool  `yaml:"ghost"`          // Draw the landing position of the active piece
}

// TetrisScoring defines points awarded by the engine.
// Line awards are multiplied by the current level.
type TetrisScoring struct {
	Single   uint32 `yaml:"single"`
	Double   uint32 `yaml:"double"`
	Triple   uint32 `yaml:"triple"`
	Tetris   uint32 `yaml:"tetris"`
	SoftDrop uint32 `yaml:"soft_drop"` // Per row
	HardDrop uint32 `yaml:"hard_drop"` // Per row
}

// TetrisInput defines host-side auto-repeat behavior.
type TetrisInput struct {
	RepeatDelay int `yaml:"repeat_delay"` // Ticks a shift/soft-drop key is held before it repeats
}

// DifficultyConfig defines the level progression system.
type DifficultyConfig struct {
	Enabled       bool `yaml:"enabled"`         // false keeps the start level for the whole game
	StartLevel    int  `yaml:"start_level"`     // 1-based
	LinesPerLevel int  `yaml:"lines_per_level"` // Lines needed to advance one level
}

// LineScore returns the award for clearing n lines at once (before the level multiplier).
func (s TetrisScoring) LineScore(n int) uint32 {
	switch {
	case n <= 0:
		return 0
	case n == 1:
		return s.Single
	case n == 2:
		return s.Double
	case n == 3:
		return s.Triple
	default:
		return s.Tetris
	}
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// StartLevelForPreset returns the start level for a difficulty preset.
func StartLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 1
	case DifficultyNormal:
		return 5
	case DifficultyHard:
		return 10
	default:
		return 1
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
