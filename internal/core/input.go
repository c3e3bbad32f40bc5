package core

import "github.com/vovakirdan/blockfall/internal/bridge"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows hosts to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // Left arrow, A - shift left
	ActionRight            // Right arrow, D - shift right
	ActionHardDrop         // Space, Up arrow - drop and lock
	ActionSoftDrop         // Down arrow, S - drop one row
	ActionRotateCW         // X, W - rotate clockwise
	ActionRotateCCW        // Z - rotate counter-clockwise
	ActionHold             // C, Shift - swap with the held piece
	ActionConfirm          // Enter - confirm selection in menu
	ActionBack             // B, Escape - go back to menu
	ActionRestart          // R key - restart game after game over
	ActionQuit             // Q, Ctrl+C - exit game/session
	ActionPause            // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionHardDrop:
		return "HardDrop"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionHold:
		return "Hold"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// keyActions maps adapter key slots to the actions that drive them.
var keyActions = [bridge.KeyCount]Action{
	bridge.KeyLeft:      ActionLeft,
	bridge.KeyRight:     ActionRight,
	bridge.KeyHardDrop:  ActionHardDrop,
	bridge.KeySoftDrop:  ActionSoftDrop,
	bridge.KeyRotateCW:  ActionRotateCW,
	bridge.KeyRotateCCW: ActionRotateCCW,
	bridge.KeyHold:      ActionHold,
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// Keys converts the frame into the adapter's ordered input vector.
// Non-game actions are ignored.
func (f InputFrame) Keys() bridge.Keys {
	var k bridge.Keys
	for i, a := range keyActions {
		k[i] = f.Has(a)
	}
	return k
}

// FrameFromKeys builds an input frame from an input vector.
func FrameFromKeys(k bridge.Keys) InputFrame {
	f := NewInputFrame()
	for i, a := range keyActions {
		if k[i] {
			f.Set(a)
		}
	}
	return f
}
