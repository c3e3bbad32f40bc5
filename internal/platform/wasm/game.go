package wasm

import "github.com/vovakirdan/blockfall/internal/bridge"

// tickKeys maps the arguments of tick, given in adapter key order, to key
// state. Missing trailing arguments count as released and extras are ignored.
func tickKeys(args []bool) bridge.Keys {
	var k bridge.Keys
	for i := range min(len(args), int(bridge.KeyCount)) {
		k[i] = args[i]
	}
	return k
}

// accessors returns the scalar getters and buffer addresses of a game object,
// keyed by their JavaScript method name.
func accessors(b *bridge.Bridge) map[string]func() any {
	return map[string]func() any{
		"get_score":          func() any { return b.Score() },
		"get_clearlines":     func() any { return b.ClearLines() },
		"is_gameover":        func() any { return b.IsGameOver() },
		"can_use_hold":       func() any { return b.CanUseHold() },
		"get_interval_ratio": func() any { return b.IntervalRatio() },

		"field_ptr": func() any { return int(uintptr(b.FieldPtr())) },
		"clear_ptr": func() any { return int(uintptr(b.ClearPtr())) },
		"next_ptr":  func() any { return int(uintptr(b.NextPtr())) },
		"hold_ptr":  func() any { return int(uintptr(b.HoldPtr())) },
	}
}

// buffers returns the views copied out by the field, clear, next and hold methods.
func buffers(b *bridge.Bridge) map[string]func() []byte {
	return map[string]func() []byte{
		"field": b.Field,
		"clear": b.Clear,
		"next":  b.Next,
		"hold":  b.Hold,
	}
}
