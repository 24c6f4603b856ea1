package terminal

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/template"
	"time"

	"blockfall/tetris"

	"github.com/eiannone/keyboard"
	"golang.org/x/term"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[?25h\r\n"
	resetPos   = "\033[H" // Reset cursor position to 0,0

	// width is the number of cells per row: the stack plus the side panel.
	width = 20

	minCols = 2*width + 2
	minRows = tetris.Rows + 3

	frameRate = time.Second / 60
)

//go:embed "layout.tmpl"
var layout string

type Options struct {
	Writer    io.Writer
	Logger    *slog.Logger
	Listeners []tetris.Listener
}

// Terminal plays the game on an ANSI terminal. Keys are read through the
// keyboard package, which also puts the console in raw mode.
type Terminal struct {
	writer       io.Writer
	logger       *slog.Logger
	template     *template.Template
	game         *tetris.Game
	ticker       tetris.Ticker
	keysEventsCh <-chan keyboard.KeyEvent
	frame        *frame
	now          func() time.Duration
}

func New(o *Options) (*Terminal, error) {
	fd := int(os.Stdout.Fd()) //nolint:gosec
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdout is not a terminal")
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to read terminal size: %w", err)
	}
	if cols < minCols || rows < minRows {
		return nil, fmt.Errorf("terminal is %dx%d, it needs at least %dx%d", cols, rows, minCols, minRows)
	}
	tp, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	kc, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	var w io.Writer = os.Stdout
	if o.Writer != nil {
		w = o.Writer
	}
	l := o.Logger
	if l == nil {
		l = slog.Default()
	}
	start := time.Now()
	return &Terminal{
		writer:       w,
		logger:       l,
		template:     tp,
		game:         tetris.NewGame(&tetris.Options{Logger: l, Listeners: o.Listeners}),
		ticker:       tetris.NewTicker(frameRate),
		keysEventsCh: kc,
		frame:        &frame{},
		now:          func() time.Duration { return time.Since(start) },
	}, nil
}

// Run plays until the game is over or the player quits.
func (t *Terminal) Run() error {
	fmt.Fprint(t.writer, hideCursor)
	defer fmt.Fprint(t.writer, showCursor)
	defer t.ticker.Stop()

	t.logger.Info("game started", slog.String("game", t.game.ID))
	in := newInput()
	for range t.ticker.C() {
		quit, err := in.collect(t.keysEventsCh)
		if err != nil {
			return err
		}
		if quit {
			t.logger.Info("player quit", slog.String("game", t.game.ID))
			return nil
		}
		more := t.game.Frame(in, t.frame, t.now())
		t.render()
		if !more {
			return nil
		}
	}
	return nil
}

// Close releases the keyboard and restores the console.
func (t *Terminal) Close() {
	if err := keyboard.Close(); err != nil {
		t.logger.Error("unable to close keyboard", slog.String("error", err.Error()))
	}
}

func (t *Terminal) render() {
	fmt.Fprint(t.writer, resetPos)
	if err := t.template.Execute(t.writer, t.frame); err != nil {
		t.logger.Error("unable to execute template", slog.String("error", err.Error()))
	}
}

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"stack": stackCells,
		"panel": panelCells,
	}

	// the console is in raw mode so new lines don't automatically transform into carriage return.
	// to fix that we add a carriage return to every new line in the layout.
	l := strings.ReplaceAll(layout, "\n", "\r\n")
	l = strings.ReplaceAll(l, "Blockfall", "\033[1mBlockfall\033[0m")
	return template.New("layout").Funcs(funcMap).Parse(l)
}

func stackCells(row [width]string) string { return strings.Join(row[:tetris.Cols], "") }
func panelCells(row [width]string) string { return strings.Join(row[tetris.Cols:], "") }

// frame is a tetris.Renderer that keeps one rendered string per cell. Every
// cell is two characters wide.
type frame struct {
	Rows [tetris.Rows][width]string
}

// ClearBackground blanks every cell. The terminal's own background is kept.
func (f *frame) ClearBackground(color.RGBA) {
	for r := range f.Rows {
		for c := range f.Rows[r] {
			f.Rows[r][c] = "  "
		}
	}
}

func (f *frame) DrawCell(row, col int, c color.RGBA) {
	if row < 0 || row >= tetris.Rows || col < 0 || col >= width {
		return
	}
	f.Rows[row][col] = fmt.Sprintf("\x1b[7m%s[]\x1b[0m", fg(c))
}

// DrawText places s on the cell containing pixel (x, y). Text is clipped at
// the right edge; size can't be honored on a terminal.
func (f *frame) DrawText(s string, x, y, _ int, c color.RGBA) {
	row, col := y/tetris.CellSize, x/tetris.CellSize
	if row < 0 || row >= tetris.Rows || col < 0 {
		return
	}
	runes := []rune(s)
	if len(runes)%2 != 0 {
		runes = append(runes, ' ')
	}
	for i := 0; i < len(runes) && col < width; i += 2 {
		f.Rows[row][col] = fmt.Sprintf("%s%s\x1b[0m", fg(c), string(runes[i:i+2]))
		col++
	}
}

func fg(c color.RGBA) string {
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
}

// input is the set of keys pressed since the previous frame.
type input struct {
	pressed map[tetris.Key]bool
}

func newInput() *input { return &input{pressed: make(map[tetris.Key]bool)} }

func (in *input) IsKeyPressed(k tetris.Key) bool { return in.pressed[k] }

// collect forgets the previous frame's keys and drains every event queued
// since. A terminal only reports presses, so each event is one press; held
// keys repeat at the terminal's auto-repeat rate.
func (in *input) collect(ch <-chan keyboard.KeyEvent) (bool, error) {
	clear(in.pressed)
	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return false, errors.New("keyboard events channel closed unexpectedly")
			}
			if event.Err != nil {
				return false, fmt.Errorf("keyboard event: %w", event.Err)
			}
			switch {
			case event.Key == keyboard.KeyCtrlC || event.Key == keyboard.KeyEsc || event.Rune == 'q':
				return true, nil
			case event.Key == keyboard.KeyArrowLeft || event.Rune == 'a':
				in.pressed[tetris.KeyLeft] = true
			case event.Key == keyboard.KeyArrowRight || event.Rune == 'd':
				in.pressed[tetris.KeyRight] = true
			case event.Key == keyboard.KeyArrowDown || event.Rune == 's':
				in.pressed[tetris.KeyDown] = true
			case event.Key == keyboard.KeyArrowUp || event.Rune == 'w':
				in.pressed[tetris.KeyUp] = true
			}
		default:
			return false, nil
		}
	}
}
