package bridge

import (
	"unsafe"
)

// Bridge owns one engine and the buffers the host reads.
// It is not safe for concurrent use; a single host loop sequences every call.
type Bridge struct {
	engine Engine

	field [FieldLen]byte
	clear [ClearLen]byte
	next  [NextLen]byte
	hold  [HoldLen]byte
}

// New constructs the engine with rand and returns a bridge with all-zero buffers.
// The process-wide diagnostic hook is installed on first use.
func New(rand RandSource, build Builder) *Bridge {
	installHook()
	defer guard("new")

	return &Bridge{engine: build(rand)}
}

// Rendering repacks the current engine state into the output buffers.
// Every byte of every buffer is rewritten; the engine is not mutated.
func (b *Bridge) Rendering() {
	defer guard("rendering")

	board := b.engine.Field()
	for n := range FieldLen {
		cell := board[n/Cols][n%Cols]
		b.field[n] = cell.Color()
		if cell.IsClearing() {
			b.clear[n] = 1
		} else {
			b.clear[n] = 0
		}
	}

	for p := range PreviewSlots {
		writePreview(b.next[PreviewCells*p:PreviewCells*(p+1)], b.engine.Next(p))
	}

	writePreview(b.hold[:], b.engine.Hold())
}

// writePreview copies preview colors row-major into dst.
func writePreview(dst []byte, pv *Preview) {
	for m := range PreviewCells {
		dst[m] = pv[m/PreviewSize][m%PreviewSize].Color()
	}
}

// Tick forwards one input vector to the engine. Buffers are left untouched;
// call Rendering to observe the result.
func (b *Bridge) Tick(left, right, hardDrop, softDrop, rotateCW, rotateCCW, hold bool) {
	b.TickKeys(Keys{left, right, hardDrop, softDrop, rotateCW, rotateCCW, hold})
}

// TickInput is Tick with named flags.
func (b *Bridge) TickInput(in Input) {
	b.TickKeys(in.Keys())
}

// TickKeys is Tick with an ordered vector.
func (b *Bridge) TickKeys(keys Keys) {
	defer guard("tick")

	b.engine.Tick(keys)
}

// Score returns the current score.
func (b *Bridge) Score() uint32 {
	return b.engine.Score()
}

// ClearLines returns the cumulative number of cleared lines.
func (b *Bridge) ClearLines() uint32 {
	return b.engine.ClearLines()
}

// IsGameOver reports whether the game has ended. Once true it stays true.
func (b *Bridge) IsGameOver() bool {
	return b.engine.IsGameOver()
}

// CanUseHold reports whether the hold slot is usable for the current piece.
func (b *Bridge) CanUseHold() bool {
	return b.engine.CanUseHold()
}

// IntervalRatio returns the engine's drop speed scalar, in (0, 1], smaller is faster.
func (b *Bridge) IntervalRatio() float32 {
	return b.engine.IntervalRatio()
}

// FieldPtr returns the address of the FieldLen-byte field buffer.
// The memory is valid only until the next Tick or Rendering call.
func (b *Bridge) FieldPtr() unsafe.Pointer {
	return unsafe.Pointer(&b.field[0])
}

// ClearPtr returns the address of the ClearLen-byte clear buffer.
func (b *Bridge) ClearPtr() unsafe.Pointer {
	return unsafe.Pointer(&b.clear[0])
}

// NextPtr returns the address of the NextLen-byte next buffer.
func (b *Bridge) NextPtr() unsafe.Pointer {
	return unsafe.Pointer(&b.next[0])
}

// HoldPtr returns the address of the HoldLen-byte hold buffer.
func (b *Bridge) HoldPtr() unsafe.Pointer {
	return unsafe.Pointer(&b.hold[0])
}

// Field returns a read-only view of the field buffer. Callers must not write to it.
func (b *Bridge) Field() []byte { return b.field[:] }

// Clear returns a read-only view of the clear buffer.
func (b *Bridge) Clear() []byte { return b.clear[:] }

// Next returns a read-only view of the next buffer.
func (b *Bridge) Next() []byte { return b.next[:] }

// Hold returns a read-only view of the hold buffer.
func (b *Bridge) Hold() []byte { return b.hold[:] }

// Frame is a copy of the buffers and accessors taken at one instant.
type Frame struct {
	Field [FieldLen]byte
	Clear [ClearLen]byte
	Next  [NextLen]byte
	Hold  [HoldLen]byte

	Score         uint32
	Lines         uint32
	GameOver      bool
	CanUseHold    bool
	IntervalRatio float32
}

// Snapshot copies the last rendered buffers and the current accessor values.
// Unlike the views it stays valid across later calls.
func (b *Bridge) Snapshot() Frame {
	return Frame{
		Field:         b.field,
		Clear:         b.clear,
		Next:          b.next,
		Hold:          b.hold,
		Score:         b.Score(),
		Lines:         b.ClearLines(),
		GameOver:      b.IsGameOver(),
		CanUseHold:    b.CanUseHold(),
		IntervalRatio: b.IntervalRatio(),
	}
}
