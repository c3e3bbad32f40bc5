// Package engine implements a guideline-style falling-block rules engine that
// satisfies bridge.Engine. It is deterministic for a given random source and
// input sequence.
package engine

import (
	"github.com/vovakirdan/blockfall/internal/bridge"
	"github.com/vovakirdan/blockfall/internal/config"
)

const (
	// HiddenRows sit above the visible field and hold spawning pieces.
	HiddenRows = 2
	// WellRows is the full height of the well including hidden rows.
	WellRows = bridge.Rows + HiddenRows
	// Cols is the well width.
	Cols = bridge.Cols

	bagSize = int(kindCount)
)

// Game holds the complete state of one run.
type Game struct {
	rand  bridge.RandSource
	mode  Mode
	rules config.TetrisRules
	score config.TetrisScoring
	diff  *config.DifficultyManager

	well       [WellRows][Cols]uint8
	clearing   [WellRows]bool
	clearTimer int

	active    piece
	hasActive bool
	queue     []Kind

	held    Kind
	hasHeld bool
	canHold bool

	points uint32
	lines  uint32
	level  int
	ticks  uint64

	gravityCounter int
	lockCounter    int
	lockResets     int
	lowestRow      int

	gameOver bool

	// Views handed to the adapter, refreshed after every state change.
	board    bridge.Board
	next     [bridge.PreviewSlots]bridge.Preview
	holdView bridge.Preview
}

// New creates a game for a mode. The first bag is drawn from rand immediately.
func New(rand bridge.RandSource, mode Mode, cfg config.TetrisConfig) *Game {
	g := &Game{
		rand:    rand,
		mode:    mode,
		rules:   cfg.Rules,
		score:   cfg.Scoring,
		diff:    config.NewDifficultyManager(cfg.Difficulty),
		canHold: true,
	}
	g.level = g.diff.Level(0)
	g.fillQueue()
	g.spawn(g.popQueue())
	g.refresh()
	return g
}

// Mode returns the mode this game was created for.
func (g *Game) Mode() Mode { return g.mode }

// Score implements bridge.Engine.
func (g *Game) Score() uint32 { return g.points }

// ClearLines implements bridge.Engine.
func (g *Game) ClearLines() uint32 { return g.lines }

// IsGameOver implements bridge.Engine.
func (g *Game) IsGameOver() bool { return g.gameOver }

// CanUseHold implements bridge.Engine.
func (g *Game) CanUseHold() bool { return g.canHold }

// IntervalRatio reports the current gravity interval relative to the first level.
func (g *Game) IntervalRatio() float32 {
	first := config.GravityFrames(g.rules.GravityFrames, 1)
	cur := config.GravityFrames(g.rules.GravityFrames, g.level)
	return float32(cur) / float32(first)
}

// Field implements bridge.Engine.
func (g *Game) Field() *bridge.Board { return &g.board }

// Next implements bridge.Engine. Slots outside 0..2 read as empty.
func (g *Game) Next(i int) *bridge.Preview {
	if i < 0 || i >= bridge.PreviewSlots {
		var empty bridge.Preview
		fillPreview(&empty, nil)
		return &empty
	}
	return &g.next[i]
}

// Hold implements bridge.Engine.
func (g *Game) Hold() *bridge.Preview { return &g.holdView }

// Tick advances the game by one frame.
func (g *Game) Tick(keys bridge.Keys) {
	if g.gameOver {
		return
	}
	g.ticks++
	defer g.refresh()
	defer g.checkGoals()

	if g.clearTimer > 0 {
		g.clearTimer--
		if g.clearTimer == 0 {
			g.collapse()
			g.spawn(g.popQueue())
		}
		return
	}
	if !g.hasActive {
		return
	}

	if keys[bridge.KeyHold] && g.canHold {
		g.doHold()
		if g.gameOver {
			return
		}
	}

	if keys[bridge.KeyRotateCW] {
		g.rotate(0)
	}
	if keys[bridge.KeyRotateCCW] {
		g.rotate(1)
	}

	switch {
	case keys[bridge.KeyLeft] && !keys[bridge.KeyRight]:
		g.shift(-1)
	case keys[bridge.KeyRight] && !keys[bridge.KeyLeft]:
		g.shift(1)
	}

	if keys[bridge.KeyHardDrop] {
		dropped := 0
		for g.tryMove(1, 0) {
			dropped++
		}
		g.points += uint32(dropped) * g.score.HardDrop
		g.lock()
		return
	}

	if keys[bridge.KeySoftDrop] && g.tryMove(1, 0) {
		g.points += g.score.SoftDrop
		g.gravityCounter = 0
		g.descended()
	}

	g.gravityCounter++
	if g.gravityCounter >= config.GravityFrames(g.rules.GravityFrames, g.level) {
		g.gravityCounter = 0
		if g.tryMove(1, 0) {
			g.descended()
		}
	}

	if g.grounded() {
		g.lockCounter++
		if g.lockCounter >= g.rules.LockDelay {
			g.lock()
		}
	} else {
		g.lockCounter = 0
	}
}

func (g *Game) fillQueue() {
	for len(g.queue) < bagSize {
		var bag [bagSize]Kind
		for i := range bag {
			bag[i] = Kind(i)
		}
		for i := bagSize - 1; i > 0; i-- {
			j := int(g.rand() % uint32(i+1))
			bag[i], bag[j] = bag[j], bag[i]
		}
		g.queue = append(g.queue, bag[:]...)
	}
}

func (g *Game) popQueue() Kind {
	k := g.queue[0]
	g.queue = g.queue[1:]
	g.fillQueue()
	return k
}

// spawn places a new piece above the visible field. If it overlaps the stack the
// game ends (block out); otherwise it drops one row when there is room.
func (g *Game) spawn(k Kind) {
	g.active = piece{kind: k, col: (Cols - boxSize[k]) / 2}
	g.hasActive = true
	g.gravityCounter = 0
	g.lockCounter = 0
	g.lockResets = 0
	if !g.fits(g.active) {
		g.gameOver = true
		return
	}
	g.tryMove(1, 0)
	g.lowestRow = g.active.row
}

func (g *Game) fits(p piece) bool {
	for _, c := range p.cells() {
		if c.Col < 0 || c.Col >= Cols || c.Row < 0 || c.Row >= WellRows {
			return false
		}
		if g.well[c.Row][c.Col] != ColorEmpty {
			return false
		}
	}
	return true
}

func (g *Game) tryMove(dRow, dCol int) bool {
	p := g.active
	p.row += dRow
	p.col += dCol
	if !g.fits(p) {
		return false
	}
	g.active = p
	return true
}

func (g *Game) grounded() bool {
	p := g.active
	p.row++
	return !g.fits(p)
}

// descended resets lock state once the piece reaches a new lowest row.
func (g *Game) descended() {
	if g.active.row > g.lowestRow {
		g.lowestRow = g.active.row
		g.lockCounter = 0
		g.lockResets = 0
	}
}

// moved spends one lock reset when a grounded piece moves or rotates.
func (g *Game) moved() {
	if g.lockCounter > 0 && g.lockResets < g.rules.LockResets {
		g.lockResets++
		g.lockCounter = 0
	}
}

func (g *Game) shift(dCol int) {
	if g.tryMove(0, dCol) {
		g.moved()
	}
}

func (g *Game) rotate(dir int) {
	if g.active.kind == KindO {
		return
	}
	from := g.active.rot
	to := (from + 1) & 3
	if dir == 1 {
		to = (from + 3) & 3
	}
	for _, k := range kicksFor(g.active.kind, from, dir) {
		p := g.active
		p.rot = to
		p.col += k.dx
		p.row -= k.dy
		if g.fits(p) {
			g.active = p
			g.moved()
			return
		}
	}
}

func (g *Game) doHold() {
	cur := g.active.kind
	if g.hasHeld {
		g.spawn(g.held)
	} else {
		g.spawn(g.popQueue())
	}
	g.held = cur
	g.hasHeld = true
	g.canHold = false
}

// lock writes the active piece into the well, scores full rows and spawns the
// next piece unless a clear delay is pending.
func (g *Game) lock() {
	cells := g.active.cells()
	above := true
	for _, c := range cells {
		g.well[c.Row][c.Col] = g.active.kind.Color()
		if c.Row >= HiddenRows {
			above = false
		}
	}
	g.hasActive = false
	g.canHold = true
	if above {
		g.gameOver = true
		return
	}

	n := 0
	for r := range WellRows {
		if g.rowFull(r) {
			g.clearing[r] = true
			n++
		}
	}
	if n == 0 {
		g.spawn(g.popQueue())
		return
	}

	g.points += g.score.LineScore(n) * uint32(g.level)
	g.lines += uint32(n)
	g.level = g.diff.Level(g.lines)

	if g.rules.ClearDelay > 0 {
		g.clearTimer = g.rules.ClearDelay
		return
	}
	g.collapse()
	g.spawn(g.popQueue())
}

func (g *Game) rowFull(r int) bool {
	for _, c := range g.well[r] {
		if c == ColorEmpty {
			return false
		}
	}
	return true
}

// collapse removes rows flagged as clearing and shifts the rest down.
func (g *Game) collapse() {
	dst := WellRows - 1
	for src := WellRows - 1; src >= 0; src-- {
		if g.clearing[src] {
			continue
		}
		g.well[dst] = g.well[src]
		dst--
	}
	for ; dst >= 0; dst-- {
		g.well[dst] = [Cols]uint8{}
	}
	g.clearing = [WellRows]bool{}
}

// checkGoals ends the run once the mode's target is reached. A line goal waits
// for the clear animation so the final rows are shown collapsing.
func (g *Game) checkGoals() {
	if g.gameOver {
		return
	}
	if g.mode.LineGoal > 0 && g.lines >= g.mode.LineGoal && g.clearTimer == 0 {
		g.gameOver = true
	}
	if g.mode.TickLimit > 0 && g.ticks >= g.mode.TickLimit {
		g.gameOver = true
	}
}

// ghost returns the active piece moved down as far as it fits.
func (g *Game) ghost() piece {
	p := g.active
	for {
		q := p
		q.row++
		if !g.fits(q) {
			return p
		}
		p = q
	}
}

func (g *Game) refresh() {
	for r := range bridge.Rows {
		wr := r + HiddenRows
		for c := range Cols {
			g.board[r][c] = bridge.NewCell(g.well[wr][c], g.clearing[wr])
		}
	}
	if g.hasActive && !g.gameOver {
		if g.rules.Ghost {
			g.paint(g.ghost(), ColorGhost)
		}
		g.paint(g.active, g.active.kind.Color())
	}

	for i := range g.next {
		k := g.queue[i]
		fillPreview(&g.next[i], &k)
	}
	if g.hasHeld {
		k := g.held
		fillPreview(&g.holdView, &k)
	} else {
		fillPreview(&g.holdView, nil)
	}
}

func (g *Game) paint(p piece, color uint8) {
	for _, c := range p.cells() {
		r := c.Row - HiddenRows
		if r < 0 {
			continue
		}
		g.board[r][c.Col] = bridge.NewCell(color, false)
	}
}

// fillPreview draws a kind in spawn orientation, centred in a 4x4 box.
// A nil kind yields an all-transparent preview.
func fillPreview(dst *bridge.Preview, k *Kind) {
	for r := range bridge.PreviewSize {
		for c := range bridge.PreviewSize {
			dst[r][c] = bridge.NewCell(ColorNone, false)
		}
	}
	if k == nil {
		return
	}
	off := Point{Row: 1, Col: 0}
	switch *k {
	case KindI:
		off = Point{}
	case KindO:
		off = Point{Row: 1, Col: 1}
	}
	for _, p := range spawnCells[*k] {
		dst[p.Row+off.Row][p.Col+off.Col] = bridge.NewCell(k.Color(), false)
	}
}
