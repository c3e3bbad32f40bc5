package engine

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindS
	KindZ
	KindJ
	KindL
	KindT
	kindCount
)

// Color indices shared with the hosts through the bridge buffers.
const (
	ColorEmpty uint8 = 0 // empty board cell
	ColorGhost uint8 = 1 // landing preview, also the host's "hold unavailable" tint
	ColorNone  uint8 = 2 // transparent preview cell
)

// Color returns the palette index of a kind: I=3 through T=9.
func (k Kind) Color() uint8 {
	return uint8(k) + 3
}

func (k Kind) String() string {
	return [...]string{"I", "O", "S", "Z", "J", "L", "T"}[k]
}

// Point is a (row, col) offset inside a piece's bounding box.
type Point struct {
	Row, Col int
}

// boxSize is the side of each kind's rotation box.
var boxSize = [kindCount]int{4, 2, 3, 3, 3, 3, 3}

// spawnCells are the rotation-0 layouts.
var spawnCells = [kindCount][4]Point{
	KindI: {{1, 0}, {1, 1}, {1, 2}, {1, 3}},
	KindO: {{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	KindS: {{0, 1}, {0, 2}, {1, 0}, {1, 1}},
	KindZ: {{0, 0}, {0, 1}, {1, 1}, {1, 2}},
	KindJ: {{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	KindL: {{0, 2}, {1, 0}, {1, 1}, {1, 2}},
	KindT: {{0, 1}, {1, 0}, {1, 1}, {1, 2}},
}

// shapes[kind][rot] holds the four cells for each rotation state.
var shapes [kindCount][4][4]Point

func init() {
	for k := range kindCount {
		n := boxSize[k]
		cells := spawnCells[k]
		for rot := range 4 {
			shapes[k][rot] = cells
			for i, p := range cells {
				cells[i] = Point{Row: p.Col, Col: n - 1 - p.Row}
			}
		}
	}
}

// Cells returns the occupied box offsets of a kind in a rotation state (0..3).
func Cells(k Kind, rot int) [4]Point {
	return shapes[k][rot&3]
}

// kick is an SRS offset with y pointing up.
type kick struct {
	dx, dy int
}

// Wall kick tables indexed by [from rotation][direction], direction 0 = cw, 1 = ccw.
var jlstzKicks = [4][2][5]kick{
	{ // 0
		{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}}, // 0->R
		{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},    // 0->L
	},
	{ // R
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}}, // R->2
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}}, // R->0
	},
	{ // 2
		{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},    // 2->L
		{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}}, // 2->R
	},
	{ // L
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}}, // L->0
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}}, // L->2
	},
}

var iKicks = [4][2][5]kick{
	{
		{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}}, // 0->R
		{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}}, // 0->L
	},
	{
		{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}}, // R->2
		{{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}}, // R->0
	},
	{
		{{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}}, // 2->L
		{{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}}, // 2->R
	},
	{
		{{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}}, // L->0
		{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}}, // L->2
	},
}

func kicksFor(k Kind, from, dir int) [5]kick {
	if k == KindI {
		return iKicks[from&3][dir]
	}
	return jlstzKicks[from&3][dir]
}

// piece is the falling tetromino. row/col locate the box's top-left corner in the well.
type piece struct {
	kind Kind
	rot  int
	row  int
	col  int
}

func (p piece) cells() [4]Point {
	out := shapes[p.kind][p.rot&3]
	for i := range out {
		out[i].Row += p.row
		out[i].Col += p.col
	}
	return out
}
