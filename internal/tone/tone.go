// Package tone synthesizes the short chirps played for packet traffic.
package tone

import (
	"fmt"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/generators"

	"github.com/iburimskiy/ring-visualization/internal/ring"
)

const (
	SentFreq    = 880
	ArrivedFreq = 440
	Length      = 90 * time.Millisecond

	// Volume is in halvings of amplitude.
	DefaultVolume = -1.5
)

// Chirp returns a sine tone of the given frequency that fades out linearly
// over d, then ends.
func Chirp(sr beep.SampleRate, freq int, d time.Duration) (beep.Streamer, error) {
	osc, err := generators.SinTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("%d Hz tone: %w", freq, err)
	}

	total := sr.N(d)
	return &fadeOut{Streamer: beep.Take(total, osc), total: total}, nil
}

// fadeOut scales its source by an envelope falling linearly from 1 to 0
// over total samples.
type fadeOut struct {
	beep.Streamer
	pos, total int
}

func (f *fadeOut) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.Streamer.Stream(samples)
	for i := 0; i < n; i++ {
		env := 1 - float64(f.pos)/float64(f.total)
		samples[i][0] *= env
		samples[i][1] *= env
		f.pos++
	}
	return n, ok
}

// WithVolume scales s. Volume 0 leaves it unchanged; each -1 halves it.
func WithVolume(s beep.Streamer, volume float64) beep.Streamer {
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   volume,
	}
}

// ForEvent picks the chirp for a packet event.
func ForEvent(sr beep.SampleRate, e ring.Event) (beep.Streamer, error) {
	freq := SentFreq
	if e.Kind == ring.PacketArrived {
		freq = ArrivedFreq
	}

	s, err := Chirp(sr, freq, Length)
	if err != nil {
		return nil, err
	}
	return WithVolume(s, DefaultVolume), nil
}
