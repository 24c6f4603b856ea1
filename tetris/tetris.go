// Package tetris contains the logic of the game: the stack, the falling
// tetromino, collisions, wall kicks, line clears and scoring.
package tetris

import "math/rand/v2"

// Action is a player command applied to the falling tetromino.
type Action string

const (
	MoveLeft  Action = "left"   // Moves the Tetromino one step to the left.
	MoveRight Action = "right"  // Moves the Tetromino one step to the right.
	MoveDown  Action = "down"   // Moves the Tetromino one step down.
	Rotate    Action = "rotate" // Rotates the Tetromino a quarter turn.
)

const (
	SpawnRow = 0
	SpawnCol = 3
)

// kicks are the column offsets tried, in order, after a rotation.
var kicks = [...]int{0, 1, -1, 2, -2}

// Tetris is the game state. Row and Col locate the top left corner of the
// falling tetromino's 4x4 box and may be negative.
type Tetris struct {
	GameOver  bool
	Stack     Stack
	Points    int
	Tetromino Tetromino
	Next      Tetromino
	Row       int
	Col       int

	rand *rand.Rand
}

func newTetris(r *rand.Rand) *Tetris {
	return &Tetris{
		Tetromino: Random(r),
		Next:      Random(r),
		Row:       SpawnRow,
		Col:       SpawnCol,
		rand:      r,
	}
}

func (t *Tetris) action(a Action) {
	switch a {
	case MoveLeft:
		t.left()
	case MoveRight:
		t.right()
	case MoveDown:
		t.down()
	case Rotate:
		t.rotate()
	}
}

func (t *Tetris) left() {
	if !t.Stack.isCollision(&t.Tetromino, t.Row, t.Col-1) {
		t.Col--
	}
}

func (t *Tetris) right() {
	if !t.Stack.isCollision(&t.Tetromino, t.Row, t.Col+1) {
		t.Col++
	}
}

// down moves the tetromino one row. Being blocked afterwards does not lock
// it; only gravity does.
func (t *Tetris) down() {
	if !t.Stack.isCollision(&t.Tetromino, t.Row+1, t.Col) {
		t.Row++
	}
}

// rotate turns the tetromino and looks for the first free column in kicks.
// When none is free the shape is restored and the column is left untouched.
func (t *Tetris) rotate() {
	col, shape := t.Col, t.Tetromino.Shape
	t.Tetromino.rotate()
	for _, k := range kicks {
		if !t.Stack.isCollision(&t.Tetromino, t.Row, col+k) {
			t.Col = col + k
			return
		}
	}
	t.Tetromino.Shape = shape
}

// fall is one gravity step. It moves the tetromino down or, when it can't
// fall any further, locks it and starts the next round. It returns whether
// the tetromino was locked and how many lines that cleared.
func (t *Tetris) fall() (bool, int) {
	if !t.Stack.isCollision(&t.Tetromino, t.Row+1, t.Col) {
		t.Row++
		return false, 0
	}
	return true, t.lock()
}

func (t *Tetris) lock() int {
	t.Stack.toStack(&t.Tetromino, t.Row, t.Col)
	cleared := t.Stack.clearLines()
	t.GameOver = t.Stack.isGameOver()
	t.Points += score(cleared)
	t.Tetromino = t.Next
	t.Next = Random(t.rand)
	t.Row, t.Col = SpawnRow, SpawnCol
	return cleared
}

// score is awarded on every lock, even when no lines are cleared.
func score(lines int) int { return lines*10 + 1 }

// copy returns a detached copy of the state. Stack and shapes are arrays so
// the struct copy is already deep.
func (t *Tetris) copy() Tetris {
	c := *t
	c.rand = nil
	return c
}
