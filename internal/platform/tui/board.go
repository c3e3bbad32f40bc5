package tui

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/bridge"
	"github.com/vovakirdan/blockfall/internal/core"
)

// Board layout in screen cells. Every block is two characters wide.
const (
	cellW = 2

	boxW      = bridge.PreviewSize*cellW + 2
	boxH      = bridge.PreviewSize + 2
	wellW     = bridge.Cols*cellW + 2
	wellH     = bridge.Rows + 2
	wellX     = boxW + 1
	nextX     = wellX + wellW + 1
	panelY    = boxH + 1
	layoutW   = nextX + boxW
	layoutH   = wellH
	nextSlots = bridge.PreviewSlots
)

// HUD carries host-side state drawn next to the adapter's buffers.
type HUD struct {
	Title     string
	HighScore int
	Paused    bool
	Blink     bool // clearing rows flash on alternating phases
}

// LayoutSize returns the minimum screen size needed by DrawFrame.
func LayoutSize() (w, h int) {
	return layoutW, layoutH
}

// DrawFrame draws one rendered frame centred on the screen: hold box and stats
// on the left, the well in the middle and the next queue on the right.
func DrawFrame(s *core.Screen, f *bridge.Frame, hud HUD) {
	s.Clear()
	if s.Width() < layoutW || s.Height() < layoutH {
		s.DrawTextCentered(s.Height()/2, "Terminal too small")
		return
	}
	ox := (s.Width() - layoutW) / 2
	oy := (s.Height() - layoutH) / 2

	// Hold
	hold := core.NewRect(ox, oy, boxW, boxH)
	s.DrawBox(hold, core.ColorGray)
	s.DrawText(hold.X+2, hold.Y, "HOLD")
	for m, idx := range f.Hold {
		color := core.PaletteColor(idx)
		if idx != 2 && !f.CanUseHold {
			color = core.ColorGray
		}
		drawPreviewCell(s, hold.X+1+(m%4)*cellW, hold.Y+1+m/4, idx, color)
	}

	// Well
	well := core.NewRect(ox+wellX, oy, wellW, wellH)
	s.DrawBox(well, core.ColorWhite)
	for n, idx := range f.Field {
		x := well.X + 1 + (n%bridge.Cols)*cellW
		y := well.Y + 1 + n/bridge.Cols
		drawFieldCell(s, x, y, idx, f.Clear[n] == 1, hud.Blink)
	}

	// Next queue, soonest piece on top
	for p := range nextSlots {
		box := core.NewRect(ox+nextX, oy+p*boxH, boxW, boxH)
		s.DrawBox(box, core.ColorGray)
		if p == 0 {
			s.DrawText(box.X+2, box.Y, "NEXT")
		}
		for m := range bridge.PreviewCells {
			idx := f.Next[p*bridge.PreviewCells+m]
			drawPreviewCell(s, box.X+1+(m%4)*cellW, box.Y+1+m/4, idx, core.PaletteColor(idx))
		}
	}

	drawPanel(s, ox, oy+panelY, f, hud)

	switch {
	case f.GameOver:
		drawOverlay(s, well, "GAME OVER", "r restart  b menu")
	case hud.Paused:
		drawOverlay(s, well, "PAUSED", "p resume")
	}
}

func drawFieldCell(s *core.Screen, x, y int, idx uint8, clearing, blink bool) {
	switch {
	case clearing && blink:
		drawBlock(s, x, y, "░░", core.ColorBrightWhite)
	case idx == 0:
		drawBlock(s, x, y, " .", core.ColorGray)
	case idx == 1:
		drawBlock(s, x, y, "[]", core.ColorGray)
	default:
		drawBlock(s, x, y, "██", core.PaletteColor(idx))
	}
}

func drawPreviewCell(s *core.Screen, x, y int, idx uint8, color core.Color) {
	if idx == 2 || idx == 0 {
		return
	}
	drawBlock(s, x, y, "██", color)
}

func drawBlock(s *core.Screen, x, y int, glyph string, color core.Color) {
	s.DrawTextColored(x, y, glyph, color)
}

func drawPanel(s *core.Screen, x, y int, f *bridge.Frame, hud HUD) {
	speed := "-"
	if f.IntervalRatio > 0 {
		speed = fmt.Sprintf("%.1fx", 1/f.IntervalRatio)
	}
	rows := []struct {
		label, value string
	}{
		{"SCORE", fmt.Sprintf("%d", f.Score)},
		{"LINES", fmt.Sprintf("%d", f.Lines)},
		{"SPEED", speed},
		{"BEST", fmt.Sprintf("%d", max(hud.HighScore, int(f.Score)))},
	}
	if title := []rune(hud.Title); len(title) > 0 {
		s.DrawTextColored(x+1, y, string(title[:min(len(title), boxW-1)]), core.ColorBrightYellow)
		y += 2
	}
	for i, r := range rows {
		s.DrawTextColored(x+1, y+i*2, r.label, core.ColorGray)
		s.DrawText(x+1, y+i*2+1, r.value)
	}
}

func drawOverlay(s *core.Screen, well core.Rect, title, hint string) {
	mid := well.Y + well.H/2
	inner := well.W - 2
	s.DrawRect(core.NewRect(well.X+1, mid-1, inner, 4), ' ', core.ColorDefault)
	s.DrawTextColored(well.X+1+(inner-len(title))/2, mid, title, core.ColorBrightRed)
	s.DrawTextColored(well.X+1+(inner-len(hint))/2, mid+1, hint, core.ColorGray)
}
