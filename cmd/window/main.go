package main

import (
	"log"
	"log/slog"
	"os"

	"blockfall/audio"
	"blockfall/tetris"
	"blockfall/window"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	sounds := audio.New(logger)
	if err := sounds.Init(); err != nil {
		logger.Warn("playing without sound", slog.String("error", err.Error()))
	}
	defer sounds.Close()

	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	w := window.New(&window.Options{
		Logger:    logger,
		Listeners: []tetris.Listener{sounds},
	})
	if err := ebiten.RunGame(w); err != nil {
		log.Fatalf("failed to run game: %v", err)
	}
}
