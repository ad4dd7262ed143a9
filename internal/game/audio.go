package game

import (
	"fmt"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/lthibault/log"

	"github.com/iburimskiy/ring-visualization/internal/config"
	"github.com/iburimskiy/ring-visualization/internal/ring"
	"github.com/iburimskiy/ring-visualization/internal/tone"
)

const meterDecay = 0.85

// audio plays a chirp for every packet event. Chirps are mixed into one
// long-lived pipeline: mixer -> ctrl -> meter -> speaker.
type audio struct {
	sr    beep.SampleRate
	mixer *beep.Mixer
	ctrl  *beep.Ctrl
	meter *tone.Meter
	log   log.Logger
	muted bool
}

func newAudio(l log.Logger) (*audio, error) {
	sr := beep.SampleRate(config.ToneSampleRate)
	if err := speaker.Init(sr, sr.N(config.ToneBufferPeriod)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	mixer := &beep.Mixer{}
	ctrl := &beep.Ctrl{Streamer: mixer}
	a := &audio{
		sr:    sr,
		mixer: mixer,
		ctrl:  ctrl,
		meter: tone.NewMeter(ctrl, meterDecay),
		log:   l,
	}

	speaker.Play(a.meter)
	l.WithField("sample_rate", int(sr)).Debug("audio ready")
	return a, nil
}

// HandleEvent queues the chirp for e unless sound is muted.
func (a *audio) HandleEvent(e ring.Event) {
	if a.muted {
		return
	}
	s, err := tone.ForEvent(a.sr, e)
	if err != nil {
		a.log.WithError(err).Warn("chirp skipped")
		return
	}
	speaker.Lock()
	a.mixer.Add(s)
	speaker.Unlock()
}

func (a *audio) toggleMute() bool {
	speaker.Lock()
	a.muted = !a.muted
	a.ctrl.Paused = a.muted
	if a.muted {
		a.mixer.Clear()
	}
	speaker.Unlock()
	return a.muted
}

func (a *audio) isMuted() bool { return a.muted }

func (a *audio) level() float64 { return a.meter.Level() }

func (a *audio) close() {
	speaker.Lock()
	a.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
}
