package wasm

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/bridge"
	"github.com/vovakirdan/blockfall/internal/config"
	_ "github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
)

func TestTickKeys(t *testing.T) {
	tests := []struct {
		name string
		args []bool
		want bridge.Keys
	}{
		{"no arguments", nil, bridge.Keys{}},
		{"left only", []bool{true}, bridge.Keys{bridge.KeyLeft: true}},
		{
			"argument order",
			[]bool{false, true, false, true, false, true, false},
			bridge.Keys{bridge.KeyRight: true, bridge.KeySoftDrop: true, bridge.KeyRotateCCW: true},
		},
		{
			"hold is seventh",
			[]bool{false, false, false, false, false, false, true},
			bridge.Keys{bridge.KeyHold: true},
		},
		{
			"extras ignored",
			[]bool{false, false, true, false, false, false, false, true, true},
			bridge.Keys{bridge.KeyHardDrop: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tickKeys(tc.args))
		})
	}
}

func newTestBridge(t *testing.T) *bridge.Bridge {
	t.Helper()
	b, err := registry.Open("marathon", func() uint32 { return 7 }, config.DefaultTetrisConfig())
	require.NoError(t, err)
	return b
}

func TestAccessorNames(t *testing.T) {
	b := newTestBridge(t)

	names := make([]string, 0)
	for name := range accessors(b) {
		names = append(names, name)
	}
	for name := range buffers(b) {
		names = append(names, name)
	}
	sort.Strings(names)

	assert.Equal(t, []string{
		"can_use_hold", "clear", "clear_ptr", "field", "field_ptr",
		"get_clearlines", "get_interval_ratio", "get_score",
		"hold", "hold_ptr", "is_gameover", "next", "next_ptr",
	}, names)
}

func TestAccessorsReadAdapter(t *testing.T) {
	b := newTestBridge(t)
	b.Rendering()
	get := accessors(b)

	assert.Equal(t, uint32(0), get["get_score"]())
	assert.Equal(t, uint32(0), get["get_clearlines"]())
	assert.Equal(t, false, get["is_gameover"]())
	assert.Equal(t, true, get["can_use_hold"]())
	assert.Equal(t, b.IntervalRatio(), get["get_interval_ratio"]())

	assert.Equal(t, int(uintptr(b.FieldPtr())), get["field_ptr"]())
	assert.Equal(t, int(uintptr(b.ClearPtr())), get["clear_ptr"]())
	assert.Equal(t, int(uintptr(b.NextPtr())), get["next_ptr"]())
	assert.Equal(t, int(uintptr(b.HoldPtr())), get["hold_ptr"]())
}

func TestBufferViews(t *testing.T) {
	b := newTestBridge(t)
	b.Rendering()
	views := buffers(b)

	tests := []struct {
		name string
		size int
	}{
		{"field", bridge.FieldLen},
		{"clear", bridge.ClearLen},
		{"next", bridge.NextLen},
		{"hold", bridge.HoldLen},
	}
	for _, tc := range tests {
		assert.Len(t, views[tc.name](), tc.size, tc.name)
	}

	// Views follow the adapter after the next rendering
	b.TickKeys(tickKeys([]bool{false, false, true}))
	b.Rendering()
	assert.Equal(t, b.Field(), views["field"]())
}
