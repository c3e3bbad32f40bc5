package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
)

type failingWriter struct{ after int }

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.after <= 0 {
		return 0, errors.New("disk full")
	}
	f.after--
	return len(p), nil
}

func TestWriteGrid(t *testing.T) {
	tests := []struct {
		name  string
		buf   []byte
		width int
		want  string
	}{
		{"single digits", []byte{0, 1, 2, 3, 4, 5, 6, 7}, 4, "0123\n4567\n"},
		{"two digit values", []byte{0, 12, 3, 255}, 2, "0 12\n3 255\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeGrid(&buf, tc.buf, tc.width))
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestWriteGridReturnsWriteError(t *testing.T) {
	err := writeGrid(&failingWriter{after: 1}, []byte{0, 1, 2, 3, 4, 5}, 2)
	assert.EqualError(t, err, "disk full")
}

func TestWriteDumpReturnsWriteError(t *testing.T) {
	b, err := registry.Open("marathon", core.NewRandSource(7), config.DefaultTetrisConfig())
	require.NoError(t, err)
	b.Rendering()

	assert.Error(t, writeDump(&failingWriter{}, b))
}

func TestRunScriptIsRepeatable(t *testing.T) {
	dump := func() string {
		rules := config.DefaultTetrisConfig()
		b, err := registry.Open("marathon", core.NewRandSource(7), rules)
		require.NoError(t, err)

		runScript(b, core.NewRepeater(rules.Input.RepeatDelay), 400, 20)
		b.Rendering()

		var buf bytes.Buffer
		require.NoError(t, writeDump(&buf, b))
		return buf.String()
	}

	first := dump()
	assert.Equal(t, first, dump())

	assert.Contains(t, first, "field:\n")
	assert.Contains(t, first, "next[2]:\n")
	assert.Contains(t, first, "interval_ratio:")
	// 20 field rows + 20 clear rows + 3*4 next rows + 4 hold rows
	grid := 0
	for _, line := range strings.Split(first, "\n") {
		if len(line) == 10 || len(line) == 4 {
			if strings.Trim(line, "0123456789") == "" {
				grid++
			}
		}
	}
	assert.Equal(t, 56, grid)
}

func TestRunScriptStopsAtGameOver(t *testing.T) {
	rules := config.DefaultTetrisConfig()
	b, err := registry.Open("marathon", core.NewRandSource(3), rules)
	require.NoError(t, err)

	// Tapping hard drop every other tick stacks pieces in the middle until the well tops out
	ran := runScript(b, core.NewRepeater(rules.Input.RepeatDelay), 100000, 2)
	assert.True(t, b.IsGameOver())
	assert.Less(t, ran, 100000)
}
