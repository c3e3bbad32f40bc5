package core

import "github.com/vovakirdan/blockfall/internal/bridge"

// repeats marks keys that auto-repeat while held. The rest fire once per press.
var repeats = [bridge.KeyCount]bool{
	bridge.KeyLeft:     true,
	bridge.KeyRight:    true,
	bridge.KeySoftDrop: true,
}

// Repeater turns held-key state into per-tick key presses. Rotations, hard drop
// and hold fire on the first held tick only. Shifts and soft drop fire on the
// first held tick and then on every tick once held longer than Delay ticks.
type Repeater struct {
	Delay int
	held  [bridge.KeyCount]int
}

// NewRepeater creates a repeater with the given delay in ticks.
func NewRepeater(delay int) *Repeater {
	return &Repeater{Delay: delay}
}

// Step consumes the keys held during this tick and returns the keys to feed
// into the adapter.
func (r *Repeater) Step(held bridge.Keys) bridge.Keys {
	var out bridge.Keys
	for i, down := range held {
		if !down {
			r.held[i] = 0
			continue
		}
		r.held[i]++
		out[i] = r.held[i] == 1 || (repeats[i] && r.held[i] > r.Delay)
	}
	return out
}
