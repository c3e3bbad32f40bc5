package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the user and local config directories.
const ConfigFile = "tetris.yaml"

// LoadTetris loads engine configuration.
// Search order: customPath -> ~/.blockfall/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default
// Sections a file leaves out keep their default values.
func LoadTetris(customPath string) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if c, ok := tryLoad(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryLoad(filepath.Join("configs", ConfigFile)); ok {
		return c, nil
	}

	// Use embedded default YAML
	cfg = TetrisConfig{}
	if err := yaml.Unmarshal(defaultTetrisYAML, &cfg); err != nil {
		return DefaultTetrisConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads and validates a config file, ignoring any failure.
func tryLoad(path string) (TetrisConfig, bool) {
	cfg := DefaultTetrisConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if cfg.Validate() != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockfall", "configs", filename)
}

// Validate reports settings the engine cannot run with.
func (c TetrisConfig) Validate() error {
	var errs []error
	if len(c.Rules.GravityFrames) == 0 {
		errs = append(errs, errors.New("rules.gravity_frames must not be empty"))
	}
	for i, f := range c.Rules.GravityFrames {
		if f <= 0 {
			errs = append(errs, fmt.Errorf("rules.gravity_frames[%d] must be positive", i))
			continue
		}
		if i > 0 && f > c.Rules.GravityFrames[i-1] {
			errs = append(errs, fmt.Errorf("rules.gravity_frames[%d] is slower than the level before it", i))
		}
	}
	if c.Rules.LockDelay < 0 || c.Rules.ClearDelay < 0 || c.Rules.LockResets < 0 {
		errs = append(errs, errors.New("rules delays must not be negative"))
	}
	if c.Difficulty.StartLevel < 0 {
		errs = append(errs, errors.New("difficulty.start_level must not be negative"))
	}
	return errors.Join(errs...)
}

// ApplyTetrisPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Difficulty.Enabled = !IsFixedPreset(preset)
	if cfg.Difficulty.Enabled {
		cfg.Difficulty.StartLevel = StartLevelForPreset(preset)
	}

	// Faster lock on hard, more forgiving on easy
	switch preset {
	case DifficultyEasy:
		cfg.Rules.LockDelay = 45
	case DifficultyHard:
		cfg.Rules.LockDelay = 20
		cfg.Rules.LockResets = 8
	}
}
