// Package audio plays synthesized sound effects for game events.
package audio

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	lockNote  = 196.0 // G3
	clearNote = 523.3 // C5
)

// Sounds is a tetris.Listener that plays a blip on every lock, a rising
// arpeggio when lines are cleared and a falling sweep on game over.
// Until Init succeeds every call is a no-op.
type Sounds struct {
	mu          sync.Mutex
	logger      *slog.Logger
	mixer       *beep.Mixer
	initialized bool
}

func New(l *slog.Logger) *Sounds {
	if l == nil {
		l = slog.Default()
	}
	return &Sounds{
		logger: l,
		mixer:  &beep.Mixer{},
	}
}

// Init opens the speaker.
func (s *Sounds) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Close stops every sound and releases the speaker.
func (s *Sounds) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.initialized = false
}

func (s *Sounds) Locked(cleared, _ int) {
	s.play(lockSound(cleared))
}

func (s *Sounds) GameOver(points int) {
	s.logger.Debug("playing game over sound", slog.Int("points", points))
	s.play(gameOverSound())
}

func (s *Sounds) play(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// lockSound is a short low blip, or one rising note per cleared line.
func lockSound(cleared int) beep.Streamer {
	if cleared == 0 {
		return quiet(newTone(lockNote, lockNote, 60*time.Millisecond))
	}
	notes := make([]beep.Streamer, 0, cleared)
	for i := range cleared {
		f := clearNote * math.Pow(1.25, float64(i))
		notes = append(notes, newTone(f, f, 80*time.Millisecond))
	}
	return quiet(beep.Seq(notes...))
}

func gameOverSound() beep.Streamer {
	return quiet(newTone(440, 110, 600*time.Millisecond))
}

func quiet(st beep.Streamer) beep.Streamer {
	return &effects.Volume{Streamer: st, Base: 2, Volume: -2}
}

// tone is a sine sweeping linearly from one frequency to another, faded out
// over its duration so it ends without a click.
type tone struct {
	from, to float64
	phase    float64
	n, pos   int
}

func newTone(from, to float64, d time.Duration) *tone {
	return &tone{from: from, to: to, n: sampleRate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.n {
		return 0, false
	}
	var n int
	for i := range samples {
		if t.pos >= t.n {
			break
		}
		progress := float64(t.pos) / float64(t.n)
		freq := t.from + (t.to-t.from)*progress
		v := math.Sin(2*math.Pi*t.phase) * (1 - progress)
		samples[i][0], samples[i][1] = v, v

		t.phase += freq / float64(sampleRate)
		t.phase -= math.Floor(t.phase)
		t.pos++
		n++
	}
	return n, true
}

func (t *tone) Err() error { return nil }
