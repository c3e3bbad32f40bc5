package config

// DifficultyManager calculates the current level from cleared lines.
type DifficultyManager struct {
	cfg        DifficultyConfig
	startLevel int
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	d := &DifficultyManager{cfg: cfg}
	d.SetStartLevel(cfg.StartLevel)
	return d
}

// SetStartLevel overrides the start level. Values below 1 are raised to 1.
func (d *DifficultyManager) SetStartLevel(level int) {
	d.startLevel = max(level, 1)
}

// SetEnabled enables or disables level progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether level progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.LinesPerLevel > 0
}

// StartLevel returns the level a new game begins at.
func (d *DifficultyManager) StartLevel() int {
	return d.startLevel
}

// Level returns the current level after the given number of cleared lines.
func (d *DifficultyManager) Level(lines uint32) int {
	if !d.IsEnabled() {
		return d.startLevel
	}
	return d.startLevel + int(lines)/d.cfg.LinesPerLevel
}

// GravityFrames returns ticks per row for a level from a per-level table.
// Levels past the end of the table use its last entry.
func GravityFrames(table []int, level int) int {
	if len(table) == 0 {
		return 1
	}
	idx := min(max(level-1, 0), len(table)-1)
	return max(table[idx], 1)
}
