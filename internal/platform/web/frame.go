package web

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/vovakirdan/blockfall/internal/bridge"
)

// Frame flag bits.
const (
	FlagGameOver   = 1 << 0
	FlagCanUseHold = 1 << 1
)

// Byte offsets of a frame. All integers are little-endian.
const (
	offScore = 0
	offLines = 4
	offFlags = 8
	offRatio = 9
	offField = 13
	offClear = offField + bridge.FieldLen
	offNext  = offClear + bridge.ClearLen
	offHold  = offNext + bridge.NextLen

	// FrameLen is the size of one encoded frame.
	FrameLen = offHold + bridge.HoldLen
)

// ErrShortFrame is returned when decoding fewer than FrameLen bytes.
var ErrShortFrame = errors.New("web: short frame")

// AppendFrame appends the wire encoding of f to dst.
func AppendFrame(dst []byte, f *bridge.Frame) []byte {
	var flags byte
	if f.GameOver {
		flags |= FlagGameOver
	}
	if f.CanUseHold {
		flags |= FlagCanUseHold
	}

	dst = binary.LittleEndian.AppendUint32(dst, f.Score)
	dst = binary.LittleEndian.AppendUint32(dst, f.Lines)
	dst = append(dst, flags)
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f.IntervalRatio))
	dst = append(dst, f.Field[:]...)
	dst = append(dst, f.Clear[:]...)
	dst = append(dst, f.Next[:]...)
	return append(dst, f.Hold[:]...)
}

// DecodeFrame parses one encoded frame.
func DecodeFrame(buf []byte) (bridge.Frame, error) {
	var f bridge.Frame
	if len(buf) < FrameLen {
		return f, ErrShortFrame
	}

	f.Score = binary.LittleEndian.Uint32(buf[offScore:])
	f.Lines = binary.LittleEndian.Uint32(buf[offLines:])
	f.GameOver = buf[offFlags]&FlagGameOver != 0
	f.CanUseHold = buf[offFlags]&FlagCanUseHold != 0
	f.IntervalRatio = math.Float32frombits(binary.LittleEndian.Uint32(buf[offRatio:]))
	copy(f.Field[:], buf[offField:offClear])
	copy(f.Clear[:], buf[offClear:offNext])
	copy(f.Next[:], buf[offNext:offHold])
	copy(f.Hold[:], buf[offHold:FrameLen])
	return f, nil
}
