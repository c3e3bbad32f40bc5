package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	_ "github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store) GameModel {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Seed = 1
	m, err := NewGameModel("marathon", config.DefaultTetrisConfig(), store, cfg)
	if err != nil {
		t.Fatalf("NewGameModel: %v", err)
	}
	return m
}

func step(m GameModel, msgs ...tea.Msg) GameModel {
	var next tea.Model = m
	for _, msg := range msgs {
		next, _ = next.(GameModel).Update(msg)
	}
	return next.(GameModel)
}

func TestNewGameModelUnknownMode(t *testing.T) {
	_, err := NewGameModel("nope", config.DefaultTetrisConfig(), nil, core.DefaultConfig())
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestHardDropScoresOnTick(t *testing.T) {
	m := newTestModel(t, nil)

	m = step(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.State().Score != 0 {
		t.Fatal("keys must not act before the next tick")
	}

	m = step(m, TickMsg{})
	if m.State().Score == 0 {
		t.Error("hard drop should score on the next tick")
	}
}

func TestPauseFreezesGame(t *testing.T) {
	m := newTestModel(t, nil)

	m = step(m, runeKey('p'))
	if !m.State().Paused {
		t.Fatal("expected paused")
	}

	before := *m.frame
	m = step(m, tea.KeyMsg{Type: tea.KeyDown}, TickMsg{}, TickMsg{})
	if *m.frame != before {
		t.Error("frame changed while paused")
	}

	m = step(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back should be allowed while paused")
	}
}

func TestGameOverSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	for i := 0; i < 10000 && !m.State().GameOver; i++ {
		m = step(m, space, TickMsg{})
	}
	if !m.State().GameOver {
		t.Fatal("stacking hard drops should end the game")
	}

	// Extra ticks after game over must not save again
	m = step(m, TickMsg{}, TickMsg{})

	scores, err := store.AllScores("marathon")
	if err != nil {
		t.Fatalf("AllScores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores, expected 1", len(scores))
	}
	if scores[0].Score != m.State().Score || scores[0].Mode != "marathon" {
		t.Errorf("saved %+v, state %+v", scores[0], m.State())
	}

	m = step(m, runeKey('r'), TickMsg{})
	if m.State().GameOver || m.State().Score != 0 {
		t.Error("restart should start a fresh game")
	}
}
