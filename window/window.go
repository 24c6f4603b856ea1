// Package window plays the game in a desktop window drawn by ebiten.
package window

import (
	"image/color"
	"log/slog"
	"time"

	"blockfall/tetris"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	Title = "Blockfall"

	// Width leaves room for the side panel right of the stack.
	Width  = (tetris.Cols + 6) * tetris.CellSize
	Height = tetris.Rows * tetris.CellSize

	// height of basicfont.Face7x13, used to scale text to the requested size.
	faceHeight = 13
	faceAscent = 11
)

var playfield = color.RGBA{R: 40, G: 40, B: 40, A: 255}

type Options struct {
	Logger    *slog.Logger
	Listeners []tetris.Listener
}

// Window is an ebiten.Game. ebiten calls Update and Draw separately, so
// the game's frame is split: input and gravity in Update, drawing in Draw.
type Window struct {
	logger *slog.Logger
	game   *tetris.Game
	start  time.Time
	now    func() time.Duration
	keys   tetris.Input
	screen *ebiten.Image
}

func New(o *Options) *Window {
	if o == nil {
		o = &Options{}
	}
	l := o.Logger
	if l == nil {
		l = slog.Default()
	}
	w := &Window{
		logger: l,
		game:   tetris.NewGame(&tetris.Options{Logger: l, Listeners: o.Listeners}),
		start:  time.Now(),
		keys:   keys{},
	}
	w.now = func() time.Duration { return time.Since(w.start) }
	return w
}

// Update applies one input command and gravity. The window stays open with
// the final board once the game is over, until Escape or the close button.
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		w.logger.Info("player quit", slog.String("game", w.game.ID))
		return ebiten.Termination
	}
	if w.game.Over() {
		return nil
	}
	w.game.Input(w.keys)
	w.game.Tick(w.now())
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	w.screen = screen
	w.game.Draw(w)
	w.screen = nil
}

func (w *Window) Layout(_, _ int) (int, int) {
	return Width, Height
}

func (w *Window) ClearBackground(c color.RGBA) {
	w.screen.Fill(c)
	vector.DrawFilledRect(w.screen, 0, 0, tetris.Cols*tetris.CellSize, Height, playfield, false)
}

func (w *Window) DrawCell(row, col int, c color.RGBA) {
	x, y := float32(col*tetris.CellSize), float32(row*tetris.CellSize)
	vector.DrawFilledRect(w.screen, x, y, tetris.CellSize, tetris.CellSize, tetris.Black, false)
	vector.DrawFilledRect(w.screen, x+1, y+1, tetris.CellSize-2, tetris.CellSize-2, c, false)
}

// DrawText draws s with its top left corner at (x, y), size pixels tall.
func (w *Window) DrawText(s string, x, y, size int, c color.RGBA) {
	scale := float64(size) / faceHeight
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y)+faceAscent*scale)
	op.ColorScale.ScaleWithColor(c)
	text.DrawWithOptions(w.screen, s, basicfont.Face7x13, op)
}

// keys reads the arrow keys, one press per key stroke.
type keys struct{}

var keyMap = map[tetris.Key]ebiten.Key{
	tetris.KeyLeft:  ebiten.KeyArrowLeft,
	tetris.KeyRight: ebiten.KeyArrowRight,
	tetris.KeyDown:  ebiten.KeyArrowDown,
	tetris.KeyUp:    ebiten.KeyArrowUp,
}

func (keys) IsKeyPressed(k tetris.Key) bool {
	ek, ok := keyMap[k]
	return ok && inpututil.IsKeyJustPressed(ek)
}
