// Package bridge exposes a falling-block engine to a host that reads flat byte buffers.
// A Bridge owns exactly one engine and four fixed-size output buffers. The host drives
// it with Tick, repacks engine state with Rendering, then reads the buffers in place.
package bridge

// Board dimensions and buffer lengths.
const (
	Rows         = 20
	Cols         = 10
	PreviewSize  = 4
	PreviewCells = PreviewSize * PreviewSize
	PreviewSlots = 3

	FieldLen = Rows * Cols
	ClearLen = Rows * Cols
	NextLen  = PreviewSlots * PreviewCells
	HoldLen  = PreviewCells
)

// RandSource returns one unsigned 32-bit value per call.
// It is supplied by the host and handed to the engine untouched.
type RandSource func() uint32

// Cell is one board or preview square: a color index and a clearing flag.
type Cell struct {
	color    uint8
	clearing bool
}

// NewCell creates a cell with the given color index and clearing flag.
func NewCell(color uint8, clearing bool) Cell {
	return Cell{color: color, clearing: clearing}
}

// Color returns the cell's color index.
func (c Cell) Color() uint8 {
	return c.color
}

// IsClearing reports whether the cell belongs to a line being removed.
func (c Cell) IsClearing() bool {
	return c.clearing
}

// Board is the visible well, row 0 at the top.
type Board [Rows][Cols]Cell

// Preview is the 4x4 silhouette of an upcoming or held piece.
type Preview [PreviewSize][PreviewSize]Cell

// Key indexes a Keys vector. The order is fixed and shared with every host.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyHardDrop
	KeySoftDrop
	KeyRotateCW
	KeyRotateCCW
	KeyHold
	KeyCount
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyHardDrop:
		return "hard-drop"
	case KeySoftDrop:
		return "soft-drop"
	case KeyRotateCW:
		return "rotate-cw"
	case KeyRotateCCW:
		return "rotate-ccw"
	case KeyHold:
		return "hold"
	default:
		return "unknown"
	}
}

// Keys is the control state for exactly one tick.
type Keys [KeyCount]bool

// Input is the named form of Keys.
type Input struct {
	Left      bool
	Right     bool
	HardDrop  bool
	SoftDrop  bool
	RotateCW  bool
	RotateCCW bool
	Hold      bool
}

// Keys converts the input to its ordered vector.
func (in Input) Keys() Keys {
	return Keys{
		KeyLeft:      in.Left,
		KeyRight:     in.Right,
		KeyHardDrop:  in.HardDrop,
		KeySoftDrop:  in.SoftDrop,
		KeyRotateCW:  in.RotateCW,
		KeyRotateCCW: in.RotateCCW,
		KeyHold:      in.Hold,
	}
}

// Mask packs the vector into one byte, bit i set for key i.
func (k Keys) Mask() uint8 {
	var m uint8
	for i, down := range k {
		if down {
			m |= 1 << i
		}
	}
	return m
}

// KeysFromMask unpacks a byte produced by Mask. Bits above KeyCount are ignored.
func KeysFromMask(m uint8) Keys {
	var k Keys
	for i := range k {
		k[i] = m&(1<<i) != 0
	}
	return k
}

// Engine is the capability set the bridge needs from a rules engine.
// Views returned by Field, Next and Hold are borrowed until the next call.
type Engine interface {
	Field() *Board
	Next(i int) *Preview
	Hold() *Preview

	Score() uint32
	ClearLines() uint32
	IsGameOver() bool
	CanUseHold() bool
	IntervalRatio() float32

	// Tick advances the engine by one logical update.
	Tick(keys Keys)
}

// Builder constructs an engine around a random source.
type Builder func(rand RandSource) Engine
