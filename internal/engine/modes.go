package engine

import (
	"github.com/vovakirdan/blockfall/internal/bridge"
	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// Mode describes the end condition of a run.
type Mode struct {
	ID    string
	Title string
	// LineGoal ends the game once this many lines are cleared. Zero means none.
	LineGoal uint32
	// TickLimit ends the game after this many ticks. Zero means none.
	TickLimit uint64
}

// Built-in modes.
var (
	Marathon = Mode{ID: "marathon", Title: "Marathon"}
	Sprint   = Mode{ID: "sprint", Title: "Sprint (40 lines)", LineGoal: 40}
	Ultra    = Mode{ID: "ultra", Title: "Ultra (3 minutes)", TickLimit: 3 * 60 * 60}
)

func init() {
	for _, m := range []Mode{Marathon, Sprint, Ultra} {
		registry.Register(m.ID, m.Title, func(rand bridge.RandSource, cfg config.TetrisConfig) bridge.Engine {
			return New(rand, m, cfg)
		})
	}
}
