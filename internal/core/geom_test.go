package core

import "testing"

func TestRectEdges(t *testing.T) {
	tests := []struct {
		name          string
		r             Rect
		right, bottom int
	}{
		{"well with border", NewRect(11, 0, 22, 22), 33, 22},
		{"preview box", NewRect(0, 0, 10, 6), 10, 6},
		{"third next box", NewRect(34, 12, 10, 6), 44, 18},
		{"empty", NewRect(3, 4, 0, 0), 3, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Right(); got != tc.right {
				t.Errorf("Right() = %d, expected %d", got, tc.right)
			}
			if got := tc.r.Bottom(); got != tc.bottom {
				t.Errorf("Bottom() = %d, expected %d", got, tc.bottom)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name                string
		val, lo, hi, expect int
	}{
		{"cursor inside list", 2, 0, 4, 2},
		{"cursor above first", -1, 0, 4, 0},
		{"cursor past last", 7, 0, 4, 4},
		{"single entry", 3, 0, 0, 0},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expect {
			t.Errorf("%s: Clamp(%d, %d, %d) = %d, expected %d", tc.name, tc.val, tc.lo, tc.hi, got, tc.expect)
		}
	}
}
