package tetris

import (
	"image/color"
	"math/rand/v2"
)

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	I Kind = iota
	J
	L
	O
	S
	T
	Z
)

var kindNames = [...]string{"I", "J", "L", "O", "S", "T", "Z"}

func (k Kind) String() string {
	if k < I || k > Z {
		return "?"
	}
	return kindNames[k]
}

// Shape is the 4x4 occupancy pattern of a tetromino, indexed [row][col]
// with row 0 at the top.
type Shape [4][4]bool

type Tetromino struct {
	Kind  Kind
	Color color.RGBA
	Shape Shape
}

/*
.	Shape

.	0 1 2 3

0	X X O X

1	X X O X

2	X X O X

3	X X O X
*/
func newI() Tetromino {
	return Tetromino{
		Kind:  I,
		Color: color.RGBA{R: 100, G: 20, B: 40, A: 255},
		Shape: Shape{
			{false, false, true, false},
			{false, false, true, false},
			{false, false, true, false},
			{false, false, true, false},
		},
	}
}

/*
.	Shape

.	0 1 2 3

0	O X X X

1	O O O X
*/
func newJ() Tetromino {
	return Tetromino{
		Kind:  J,
		Color: color.RGBA{R: 10, G: 200, B: 40, A: 255},
		Shape: Shape{
			{true, false, false, false},
			{true, true, true, false},
		},
	}
}

/*
.	Shape

.	0 1 2 3

0	X X O X

1	O O O X
*/
func newL() Tetromino {
	return Tetromino{
		Kind:  L,
		Color: color.RGBA{R: 10, G: 20, B: 240, A: 255},
		Shape: Shape{
			{false, false, true, false},
			{true, true, true, false},
		},
	}
}

/*
.	Shape

.	0 1 2 3

0	O O X X

1	O O X X
*/
func newO() Tetromino {
	return Tetromino{
		Kind:  O,
		Color: color.RGBA{R: 200, G: 200, B: 40, A: 255},
		Shape: Shape{
			{true, true, false, false},
			{true, true, false, false},
		},
	}
}

/*
.	Shape

.	0 1 2 3

0	X O O X

1	O O X X
*/
func newS() Tetromino {
	return Tetromino{
		Kind:  S,
		Color: color.RGBA{R: 200, G: 20, B: 200, A: 255},
		Shape: Shape{
			{false, true, true, false},
			{true, true, false, false},
		},
	}
}

/*
.	Shape

.	0 1 2 3

0	X O X X

1	O O O X
*/
func newT() Tetromino {
	return Tetromino{
		Kind:  T,
		Color: color.RGBA{R: 20, G: 200, B: 200, A: 255},
		Shape: Shape{
			{false, true, false, false},
			{true, true, true, false},
		},
	}
}

/*
.	Shape

.	0 1 2 3

0	O O X X

1	X O O X
*/
func newZ() Tetromino {
	return Tetromino{
		Kind:  Z,
		Color: color.RGBA{R: 200, G: 100, B: 20, A: 255},
		Shape: Shape{
			{true, true, false, false},
			{false, true, true, false},
		},
	}
}

var kindMap = map[Kind]func() Tetromino{
	I: newI,
	J: newJ,
	L: newL,
	O: newO,
	S: newS,
	T: newT,
	Z: newZ,
}

// New returns the spawn state of the given kind. Unknown kinds yield an I.
func New(k Kind) Tetromino {
	f, ok := kindMap[k]
	if !ok {
		return newI()
	}
	return f()
}

// Random draws one of the seven kinds with uniform probability. Draws are
// independent, so the same kind may repeat any number of times.
func Random(r *rand.Rand) Tetromino {
	return New(Kind(r.IntN(len(kindMap))))
}

// rotate turns the shape a quarter turn: cell (r, c) moves to (c, 3-r).
func (t *Tetromino) rotate() {
	var rotated Shape
	for r := range 4 {
		for c := range 4 {
			rotated[c][3-r] = t.Shape[r][c]
		}
	}
	t.Shape = rotated
}

// Cells returns the (row, col) offsets of the occupied cells inside the 4x4 box.
func (t Tetromino) Cells() [][2]int {
	cells := make([][2]int, 0, 4)
	for r, row := range t.Shape {
		for c, v := range row {
			if v {
				cells = append(cells, [2]int{r, c})
			}
		}
	}
	return cells
}
