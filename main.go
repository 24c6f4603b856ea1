package main

import (
	"fmt"
	"log/slog"
	"os"

	"blockfall/audio"
	"blockfall/terminal"
	"blockfall/tetris"
)

func main() {
	// the board owns stdout, logs go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if err := run(logger); err != nil {
		logger.Error("game stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	sounds := audio.New(logger)
	if err := sounds.Init(); err != nil {
		logger.Warn("playing without sound", slog.String("error", err.Error()))
	}
	defer sounds.Close()

	t, err := terminal.New(&terminal.Options{
		Logger:    logger,
		Listeners: []tetris.Listener{sounds},
	})
	if err != nil {
		return fmt.Errorf("unable to start the terminal: %w", err)
	}
	defer t.Close()

	return t.Run()
}
