package tone

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// Meter wraps a beep.Streamer and keeps a decaying peak level of the
// samples that pass through, so the renderer can show that audio is live.
// Stream runs on the speaker goroutine; Level is read from the game loop.
type Meter struct {
	Source beep.Streamer
	Decay  float64

	mu   sync.RWMutex
	peak float64
}

func NewMeter(src beep.Streamer, decay float64) *Meter {
	return &Meter{Source: src, Decay: decay}
}

func (m *Meter) Stream(samples [][2]float64) (int, bool) {
	n, ok := m.Source.Stream(samples)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.peak *= m.Decay
	for i := 0; i < n; i++ {
		mono := math.Abs(samples[i][0]+samples[i][1]) * 0.5
		if mono > m.peak {
			m.peak = mono
		}
	}
	return n, ok
}

func (m *Meter) Err() error { return m.Source.Err() }

// Level returns the current peak in [0, 1].
func (m *Meter) Level() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.peak > 1 {
		return 1
	}
	return m.peak
}
