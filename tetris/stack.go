package tetris

import "image/color"

const (
	Rows = 24
	Cols = 10
)

// Cell is a single square of the stack. The zero value is an empty cell;
// a locked cell carries the color of the tetromino that filled it.
type Cell struct {
	color  color.RGBA
	locked bool
}

// Locked returns a cell filled with c.
func Locked(c color.RGBA) Cell { return Cell{color: c, locked: true} }

func (c Cell) IsLocked() bool { return c.locked }

// Color returns the cell color and whether the cell is locked.
func (c Cell) Color() (color.RGBA, bool) { return c.color, c.locked }

// Stack is the playfield: 24 rows x 10 columns.
// Columns are 0 > 9 left to right.
// Rows are 0 > 23 top to bottom, row 23 being the floor.
type Stack [Rows][Cols]Cell

// isCollision reports whether t placed with its 4x4 box at (row, col)
// overlaps a wall, the floor or a locked cell.
//
// Walls and floor are checked for every occupied cell. Locked cells are only
// checked for rows >= 0 so a tetromino may sit partially above the stack.
//
// .	0 1 2 3 4 5 6 7 8 9			0 1 2 3
// -1	X X X O X X X X X X		0	O X X X
// 0	X X X O O O X X X X		1	O O O X
// 1	X X X X X X X X X X		2	X X X X
func (s *Stack) isCollision(t *Tetromino, row, col int) bool {
	for r, cells := range t.Shape {
		for c, occupied := range cells {
			if !occupied {
				continue
			}
			y, x := row+r, col+c
			if x < 0 || x >= Cols || y >= Rows {
				return true
			}
			if y >= 0 && s[y][x].locked {
				return true
			}
		}
	}
	return false
}

// toStack writes the occupied cells of t at (row, col) into the stack.
// Cells outside the stack are dropped.
func (s *Stack) toStack(t *Tetromino, row, col int) {
	for r, cells := range t.Shape {
		for c, occupied := range cells {
			if !occupied {
				continue
			}
			y, x := row+r, col+c
			if y >= 0 && y < Rows && x >= 0 && x < Cols {
				s[y][x] = Locked(t.Color)
			}
		}
	}
}

// clearLines removes every full row and shifts the rows above it down,
// returning how many rows were removed.
//
// Rows are scanned once from the floor up. A row that receives a full row
// from above in the same pass is not examined again, so of two adjacent
// full rows only the lower one is removed.
func (s *Stack) clearLines() int {
	var cleared int
	for r := Rows - 1; r >= 0; r-- {
		if !s.isFull(r) {
			continue
		}
		for i := r; i >= 1; i-- {
			s[i] = s[i-1]
		}
		s[0] = [Cols]Cell{}
		cleared++
	}
	return cleared
}

func (s *Stack) isFull(r int) bool {
	for _, c := range s[r] {
		if !c.locked {
			return false
		}
	}
	return true
}

// isGameOver reports whether any cell of the top row is locked.
func (s *Stack) isGameOver() bool {
	for _, c := range s[0] {
		if c.locked {
			return true
		}
	}
	return false
}
