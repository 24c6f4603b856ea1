package tetris

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

const (
	// GravityDelay is how long the tetromino rests on a row before falling.
	GravityDelay = 500 * time.Millisecond
	// CellSize is the side of a cell in pixels. Text positions handed to the
	// Renderer are expressed in the same pixel space.
	CellSize = 30

	previewRow = 2
	previewCol = Cols + 1
)

var (
	Black = color.RGBA{A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red   = color.RGBA{R: 230, G: 41, B: 55, A: 255}
)

// Key is one of the keys the game listens to.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyDown
	KeyUp
)

// Input reports keys pressed since the previous frame. It must be edge
// triggered: a held key is pressed once.
type Input interface {
	IsKeyPressed(Key) bool
}

// Renderer draws a frame. Rows and columns are cells, x and y are pixels.
type Renderer interface {
	ClearBackground(color.RGBA)
	DrawCell(row, col int, c color.RGBA)
	DrawText(s string, x, y, size int, c color.RGBA)
}

// Listener is notified at the end of every lock cycle.
type Listener interface {
	Locked(cleared, points int)
	GameOver(points int)
}

// Ticker paces the frames of a frontend.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

// NewTicker returns a Ticker backed by a time.Ticker.
func NewTicker(d time.Duration) Ticker {
	return &wrappedTicker{ticker: time.NewTicker(d)}
}

func (t *wrappedTicker) C() <-chan time.Time { return t.ticker.C }
func (t *wrappedTicker) Stop()               { t.ticker.Stop() }

type Options struct {
	Logger    *slog.Logger
	Rand      *rand.Rand
	Listeners []Listener
}

// Game runs the frame loop over a Tetris state. It is not safe for
// concurrent use; a single goroutine owns it.
type Game struct {
	ID string

	tetris    *Tetris
	logger    *slog.Logger
	listeners []Listener
	lastTick  time.Duration
	halted    bool
}

func NewGame(o *Options) *Game {
	if o == nil {
		o = &Options{}
	}
	r := o.Rand
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec
	}
	l := o.Logger
	if l == nil {
		l = slog.Default()
	}
	id := uuid.NewString()
	return &Game{
		ID:        id,
		tetris:    newTetris(r),
		logger:    l.With(slog.String("game", id)),
		listeners: o.Listeners,
	}
}

// Frame runs one frame at time now, measured from a monotonic clock started
// with the game. It applies at most one key, draws, and advances gravity.
// Once the game over frame has been drawn it returns false and every later
// call is a no-op.
func (g *Game) Frame(in Input, r Renderer, now time.Duration) bool {
	if g.halted {
		return false
	}
	g.Input(in)
	g.Draw(r)
	if g.tetris.GameOver {
		g.halted = true
		g.logger.Info("game halted", slog.Int("points", g.tetris.Points))
		return false
	}
	g.Tick(now)
	return true
}

// Input applies the first pressed key in the order Left, Right, Down, Up.
func (g *Game) Input(in Input) {
	if g.halted {
		return
	}
	switch {
	case in.IsKeyPressed(KeyLeft):
		g.tetris.action(MoveLeft)
	case in.IsKeyPressed(KeyRight):
		g.tetris.action(MoveRight)
	case in.IsKeyPressed(KeyDown):
		g.tetris.action(MoveDown)
	case in.IsKeyPressed(KeyUp):
		g.tetris.action(Rotate)
	}
}

// Tick advances gravity when more than GravityDelay passed since the last
// step. At most one step happens per call.
func (g *Game) Tick(now time.Duration) {
	if g.halted || now-g.lastTick <= GravityDelay {
		return
	}
	g.lastTick = now
	kind := g.tetris.Tetromino.Kind
	locked, cleared := g.tetris.fall()
	if !locked {
		return
	}
	g.logger.Debug("tetromino locked",
		slog.String("kind", kind.String()),
		slog.Int("cleared", cleared),
		slog.Int("points", g.tetris.Points),
	)
	for _, l := range g.listeners {
		l.Locked(cleared, g.tetris.Points)
	}
	if g.tetris.GameOver {
		g.logger.Info("game over", slog.Int("points", g.tetris.Points))
		for _, l := range g.listeners {
			l.GameOver(g.tetris.Points)
		}
	}
}

// Draw renders the stack, the falling tetromino, the next tetromino and the
// points, plus the game over message when the game has ended.
func (g *Game) Draw(r Renderer) {
	t := g.tetris
	r.ClearBackground(Black)
	for row := range t.Stack {
		for col, cell := range t.Stack[row] {
			if c, ok := cell.Color(); ok {
				r.DrawCell(row, col, c)
			}
		}
	}

	// cells above or left of the stack are not drawn.
	for _, rc := range t.Tetromino.Cells() {
		row, col := t.Row+rc[0], t.Col+rc[1]
		if row >= 0 && row < Rows && col >= 0 && col < Cols {
			r.DrawCell(row, col, t.Tetromino.Color)
		}
	}

	r.DrawText("Next:", previewCol*CellSize, (previewRow-1)*CellSize+5, 20, White)
	for _, rc := range t.Next.Cells() {
		r.DrawCell(previewRow+rc[0], previewCol+rc[1], t.Next.Color)
	}

	r.DrawText(fmt.Sprintf("Points: %d", t.Points), previewCol*CellSize, 8*CellSize+10, 20, White)

	if t.GameOver {
		r.DrawText("Game Over!", CellSize, 10*CellSize, 40, Red)
	}
}

// Over reports whether the game has ended.
func (g *Game) Over() bool { return g.tetris.GameOver }

// Snapshot returns a copy of the current state that's safe to keep.
func (g *Game) Snapshot() Tetris { return g.tetris.copy() }
