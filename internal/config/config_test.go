package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg TetrisConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultTetrisConfig()) {
		t.Errorf("embedded defaults drifted from DefaultTetrisConfig():\n got %+v\nwant %+v", cfg, DefaultTetrisConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadTetrisCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := `
rules:
  gravity_frames: [10, 5, 1]
  lock_delay: 12
  clear_delay: 0
scoring:
  single: 40
difficulty:
  enabled: true
  start_level: 3
  lines_per_level: 5
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris() failed: %v", err)
	}
	if cfg.Rules.LockDelay != 12 {
		t.Errorf("LockDelay = %d, expected 12", cfg.Rules.LockDelay)
	}
	if len(cfg.Rules.GravityFrames) != 3 {
		t.Errorf("GravityFrames = %v, expected 3 entries", cfg.Rules.GravityFrames)
	}
	if cfg.Scoring.Single != 40 {
		t.Errorf("Single = %d, expected 40", cfg.Scoring.Single)
	}
	if cfg.Difficulty.StartLevel != 3 {
		t.Errorf("StartLevel = %d, expected 3", cfg.Difficulty.StartLevel)
	}
}

func TestLoadTetrisKeepsOmittedSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("rules: {gravity_frames: [20], lock_delay: 7}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	def := DefaultTetrisConfig()
	cfg, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg.Rules.GravityFrames, []int{20}) {
		t.Errorf("GravityFrames = %v, expected [20]", cfg.Rules.GravityFrames)
	}
	if cfg.Rules.LockDelay != 7 {
		t.Errorf("LockDelay = %d, expected 7", cfg.Rules.LockDelay)
	}
	if !cfg.Rules.Ghost {
		t.Error("Ghost = false, expected omitted ghost to stay true")
	}
	if cfg.Rules.LockResets != def.Rules.LockResets || cfg.Rules.ClearDelay != def.Rules.ClearDelay {
		t.Errorf("LockResets/ClearDelay = %d/%d, expected defaults %d/%d",
			cfg.Rules.LockResets, cfg.Rules.ClearDelay, def.Rules.LockResets, def.Rules.ClearDelay)
	}
	if cfg.Scoring != def.Scoring {
		t.Errorf("Scoring = %+v, expected defaults %+v", cfg.Scoring, def.Scoring)
	}
	if cfg.Input.RepeatDelay != 20 {
		t.Errorf("RepeatDelay = %d, expected 20", cfg.Input.RepeatDelay)
	}
	if cfg.Difficulty != def.Difficulty {
		t.Errorf("Difficulty = %+v, expected defaults %+v", cfg.Difficulty, def.Difficulty)
	}
}

func TestLoadTetrisCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadTetris(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("rules: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTetris(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("rules:\n  gravity_frames: [5, 10]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTetris(invalid); err == nil {
		t.Error("expected validation error for increasing gravity table")
	}
}

func TestLoadTetrisSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded default
	cfg, err := LoadTetris("")
	if err != nil {
		t.Fatalf("LoadTetris() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultTetrisConfig()) {
		t.Error("expected embedded defaults when no config files exist")
	}

	// Local ./configs overrides embedded
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	local := "rules:\n  gravity_frames: [20]\n  lock_delay: 7\n"
	if err := os.WriteFile(filepath.Join("configs", ConfigFile), []byte(local), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadTetris("")
	if cfg.Rules.LockDelay != 7 {
		t.Errorf("LockDelay = %d, expected 7 from ./configs", cfg.Rules.LockDelay)
	}
	if cfg.Scoring.Single != 100 {
		t.Errorf("Single = %d, expected default 100 from partial ./configs", cfg.Scoring.Single)
	}

	// User config overrides local
	userDir := filepath.Join(home, ".blockfall", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	user := "rules:\n  gravity_frames: [20]\n  lock_delay: 9\n"
	if err := os.WriteFile(filepath.Join(userDir, ConfigFile), []byte(user), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadTetris("")
	if cfg.Rules.LockDelay != 9 {
		t.Errorf("LockDelay = %d, expected 9 from user config", cfg.Rules.LockDelay)
	}
}

func TestApplyTetrisPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		enabled     bool
		startLevel  int
		lockDelay   int
		description string
	}{
		{DifficultyEasy, true, 1, 45, "easy starts at level 1 with long lock"},
		{DifficultyNormal, true, 5, 30, "normal starts at level 5"},
		{DifficultyHard, true, 10, 20, "hard starts at level 10 with short lock"},
		{DifficultyFixed, false, 1, 30, "fixed keeps start level and disables progression"},
		{"", true, 1, 30, "empty preset leaves config alone"},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			ApplyTetrisPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("%s: Enabled = %v, expected %v", tc.description, cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.StartLevel != tc.startLevel {
				t.Errorf("%s: StartLevel = %d, expected %d", tc.description, cfg.Difficulty.StartLevel, tc.startLevel)
			}
			if cfg.Rules.LockDelay != tc.lockDelay {
				t.Errorf("%s: LockDelay = %d, expected %d", tc.description, cfg.Rules.LockDelay, tc.lockDelay)
			}
		})
	}
}

func TestLineScore(t *testing.T) {
	s := DefaultTetrisConfig().Scoring
	tests := []struct {
		lines    int
		expected uint32
	}{
		{0, 0},
		{1, 100},
		{2, 300},
		{3, 500},
		{4, 800},
		{5, 800},
	}
	for _, tc := range tests {
		if got := s.LineScore(tc.lines); got != tc.expected {
			t.Errorf("LineScore(%d) = %d, expected %d", tc.lines, got, tc.expected)
		}
	}
}
