package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/blockfall/internal/bridge"
	"github.com/vovakirdan/blockfall/internal/core"
)

func emptyFrame() *bridge.Frame {
	f := &bridge.Frame{CanUseHold: true, IntervalRatio: 1}
	for i := range f.Next {
		f.Next[i] = 2
	}
	for i := range f.Hold {
		f.Hold[i] = 2
	}
	return f
}

func newBoardScreen() *core.Screen {
	w, h := LayoutSize()
	return core.NewScreen(w, h)
}

func TestDrawFrameWell(t *testing.T) {
	s := newBoardScreen()
	f := emptyFrame()
	f.Field[0] = 3  // I at top-left
	f.Field[15] = 1 // ghost at row 1, col 5

	DrawFrame(s, f, HUD{})

	x0, y0 := wellX+1, 1
	if c := s.GetCell(x0, y0); c.Rune != '█' || c.Color != core.PaletteColor(3) {
		t.Errorf("block cell = %q/%d", c.Rune, c.Color)
	}
	if got := string([]rune{s.Get(x0+5*cellW, y0+1), s.Get(x0+5*cellW+1, y0+1)}); got != "[]" {
		t.Errorf("ghost cell = %q", got)
	}
	if got := string([]rune{s.Get(x0+2, y0), s.Get(x0+3, y0)}); got != " ." {
		t.Errorf("empty cell = %q", got)
	}
}

func TestDrawFrameClearingBlink(t *testing.T) {
	f := emptyFrame()
	for n := range bridge.Cols {
		f.Field[19*bridge.Cols+n] = 5
		f.Clear[19*bridge.Cols+n] = 1
	}
	x, y := wellX+1, bridge.Rows

	s := newBoardScreen()
	DrawFrame(s, f, HUD{Blink: true})
	if r := s.Get(x, y); r != '░' {
		t.Errorf("blink phase rune = %q, expected ░", r)
	}

	DrawFrame(s, f, HUD{Blink: false})
	if c := s.GetCell(x, y); c.Rune != '█' || c.Color != core.PaletteColor(5) {
		t.Errorf("steady phase cell = %q/%d", c.Rune, c.Color)
	}
}

func TestDrawFrameHoldGrayedWhenUnavailable(t *testing.T) {
	f := emptyFrame()
	f.Hold[5] = 9 // row 1, col 1
	x, y := 1+cellW, 2

	s := newBoardScreen()
	DrawFrame(s, f, HUD{})
	if c := s.GetCell(x, y); c.Color != core.PaletteColor(9) {
		t.Errorf("available hold color = %d", c.Color)
	}

	f.CanUseHold = false
	DrawFrame(s, f, HUD{})
	if c := s.GetCell(x, y); c.Rune != '█' || c.Color != core.ColorGray {
		t.Errorf("unavailable hold cell = %q/%d, expected gray block", c.Rune, c.Color)
	}
	// Transparent cells stay empty
	if r := s.Get(1, 1); r != ' ' {
		t.Errorf("transparent hold cell = %q", r)
	}
}

func TestDrawFrameNextOrder(t *testing.T) {
	f := emptyFrame()
	f.Next[0] = 3                    // slot 0
	f.Next[2*bridge.PreviewCells] = 9 // slot 2

	s := newBoardScreen()
	DrawFrame(s, f, HUD{})

	if c := s.GetCell(nextX+1, 1); c.Color != core.PaletteColor(3) {
		t.Errorf("top next box color = %d, expected the soonest piece", c.Color)
	}
	if c := s.GetCell(nextX+1, 2*boxH+1); c.Color != core.PaletteColor(9) {
		t.Errorf("bottom next box color = %d", c.Color)
	}
}

func TestDrawFrameOverlays(t *testing.T) {
	s := newBoardScreen()
	f := emptyFrame()

	DrawFrame(s, f, HUD{Paused: true})
	if !strings.Contains(s.String(), "PAUSED") {
		t.Error("paused overlay missing")
	}

	f.GameOver = true
	DrawFrame(s, f, HUD{Paused: true})
	out := s.String()
	if !strings.Contains(out, "GAME OVER") || strings.Contains(out, "PAUSED") {
		t.Error("game over overlay should replace the pause overlay")
	}
}

func TestDrawFrameOverlayBlanksWell(t *testing.T) {
	f := emptyFrame()
	for n := range f.Field {
		f.Field[n] = 4
	}
	mid := wellH / 2

	s := newBoardScreen()
	DrawFrame(s, f, HUD{Paused: true})
	for x := wellX + 1; x < wellX+wellW-1; x++ {
		if c := s.GetCell(x, mid-1); c.Rune != ' ' || c.Color != core.ColorDefault {
			t.Fatalf("overlay row above title at x=%d = %q/%d, expected blank", x, c.Rune, c.Color)
		}
	}
	// Rows outside the overlay keep the stack
	if c := s.GetCell(wellX+1, mid-2); c.Rune != '█' {
		t.Errorf("row above overlay = %q, expected a block", c.Rune)
	}
}

func TestDrawFramePanel(t *testing.T) {
	s := newBoardScreen()
	f := emptyFrame()
	f.Score = 1200
	f.Lines = 7
	f.IntervalRatio = 0.5

	DrawFrame(s, f, HUD{Title: "MARATHON", HighScore: 900})
	out := s.String()
	for _, want := range []string{"MARATHON", "SCORE", "1200", "LINES", "2.0x", "BEST"} {
		if !strings.Contains(out, want) {
			t.Errorf("panel missing %q", want)
		}
	}
}

func TestDrawFrameTooSmall(t *testing.T) {
	s := core.NewScreen(20, 10)
	DrawFrame(s, emptyFrame(), HUD{})
	if !strings.Contains(s.String(), "Terminal too small") {
		t.Error("expected size warning")
	}
}
