package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// palette maps the engine's one-byte color indices to terminal colors:
// empty, gray, transparent, then I O S Z J L T.
var palette = [...]Color{
	ColorDefault,
	ColorGray,
	ColorDefault,
	ColorBrightCyan,
	ColorBrightYellow,
	ColorBrightGreen,
	ColorBrightRed,
	ColorBrightBlue,
	ColorOrange,
	ColorMagenta,
}

// PaletteColor returns the terminal color for an engine color index.
// Unknown indices render in the default color.
func PaletteColor(idx uint8) Color {
	if int(idx) >= len(palette) {
		return ColorDefault
	}
	return palette[idx]
}
