package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/bridge"
	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// blinkTicks is the half-period of the clearing-row flash.
const blinkTicks = 4

// GameModel hosts one adapter inside Bubble Tea. Keys pressed between ticks are
// collected into an input frame and fed to the adapter on the next tick.
type GameModel struct {
	modeID     string
	rules      config.TetrisConfig
	bridge     *bridge.Bridge
	frame      *bridge.Frame
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	highScore  int
	ticks      int
	quitting   bool
	backToMenu bool
	scoreSaved bool
	err        error
}

// NewGameModel creates a game model for a registered mode.
func NewGameModel(modeID string, rules config.TetrisConfig, store *storage.Store, cfg core.RuntimeConfig) (GameModel, error) {
	m := GameModel{
		modeID:     modeID,
		rules:      rules,
		frame:      &bridge.Frame{},
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
	}
	if err := m.newGame(cfg.Seed); err != nil {
		return GameModel{}, err
	}
	return m, nil
}

// newGame constructs a fresh adapter. Restarting never reuses the old one.
func (m *GameModel) newGame(seed int64) error {
	b, err := registry.Open(m.modeID, core.NewRandSource(seed), m.rules)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	b.Rendering()
	m.bridge = b
	*m.frame = b.Snapshot()
	m.gameState = core.GameState{}
	m.scoreSaved = false
	m.ticks = 0
	if m.store != nil {
		if hs, err := m.store.HighScore(m.modeID); err == nil {
			m.highScore = hs
		}
	}
	return nil
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionPause:
		if !m.gameState.GameOver {
			m.gameState.Paused = !m.gameState.Paused
		}
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
		}
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleTick advances the adapter by one step and refreshes the frame.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}
	m.ticks++

	if m.gameState.GameOver {
		if m.inputFrame.Has(core.ActionRestart) {
			if err := m.newGame(time.Now().UnixNano()); err != nil {
				m.err = err
			}
		}
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	if m.gameState.Paused {
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	m.bridge.TickKeys(m.inputFrame.Keys())
	m.bridge.Rendering()
	*m.frame = m.bridge.Snapshot()

	m.gameState.Score = int(m.frame.Score)
	m.gameState.Lines = int(m.frame.Lines)
	m.gameState.GameOver = m.frame.GameOver

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScore records the run once. Failures are logged and the game continues.
func (m *GameModel) saveScore() {
	m.scoreSaved = true
	if m.store == nil || m.gameState.Score == 0 {
		return
	}
	runID, err := m.store.SaveScore(m.modeID, m.gameState.Score, m.gameState.Lines)
	if err != nil {
		log.Warn("could not save score", "mode", m.modeID, "error", err)
		return
	}
	log.Debug("score saved", "mode", m.modeID, "run", runID, "score", m.gameState.Score)
	m.highScore = max(m.highScore, m.gameState.Score)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".blockfall", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.modeID, timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

func (m *GameModel) draw() {
	DrawFrame(m.screen, m.frame, HUD{
		Title:     strings.ToUpper(m.modeID),
		HighScore: m.highScore,
		Paused:    m.gameState.Paused,
		Blink:     (m.ticks/blinkTicks)%2 == 0,
	})
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return "Error: " + m.err.Error()
	}

	m.draw()
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keyMapper.Keys())
}

// State returns the host-side summary of the current run.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for one mode.
func Run(modeID string, rules config.TetrisConfig, store *storage.Store, cfg core.RuntimeConfig) error {
	model, err := NewGameModel(modeID, rules, store, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		standalone{model},
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}

// standalone quits the program where a session would return to the menu.
type standalone struct {
	GameModel
}

func (s standalone) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := s.GameModel.Update(msg)
	s.GameModel = next.(GameModel)
	if s.BackToMenu() {
		return s, tea.Quit
	}
	return s, cmd
}
