package tetris

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"
)

// MockTicker is a mock implementation of the ticker interface.
type MockTicker struct {
	ch   chan time.Time
	stop bool
	mu   sync.Mutex
}

func NewMockTicker() *MockTicker          { return &MockTicker{ch: make(chan time.Time)} }
func (m *MockTicker) C() <-chan time.Time { return m.ch }
func (m *MockTicker) Tick()               { m.ch <- time.Now() }
func (m *MockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}
func (m *MockTicker) IsStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}

// NewTestTetris creates a Tetris with an empty stack where both the current
// and the next tetromino are of the given kind.
func NewTestTetris(k Kind) *Tetris {
	return &Tetris{
		Tetromino: New(k),
		Next:      New(k),
		Row:       SpawnRow,
		Col:       SpawnCol,
		rand:      rand.New(rand.NewPCG(1, 2)),
	}
}

// NewTestGame creates a game over t with a discarded logger.
func NewTestGame(t *Tetris, l ...Listener) *Game {
	return &Game{
		ID:        "test",
		tetris:    t,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		listeners: l,
	}
}
