package tone_test

import (
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/generators"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/ring-visualization/internal/ring"
	"github.com/iburimskiy/ring-visualization/internal/tone"
)

const sr = beep.SampleRate(44100)

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()

	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func chirp(t *testing.T, freq int, d time.Duration) beep.Streamer {
	t.Helper()

	s, err := tone.Chirp(sr, freq, d)
	require.NoError(t, err)
	return s
}

func TestChirpLength(t *testing.T) {
	t.Parallel()

	samples := drain(t, chirp(t, tone.SentFreq, tone.Length))
	require.Len(t, samples, sr.N(tone.Length))
	require.InDelta(t, 0, samples[0][0], 1e-12, "sine starts at zero")

	for i, s := range samples {
		require.LessOrEqual(t, s[0], 1.0, "sample %d", i)
		require.GreaterOrEqual(t, s[0], -1.0, "sample %d", i)
		require.Equal(t, s[0], s[1], "sample %d should be mono", i)
	}
}

func TestChirpFadesOut(t *testing.T) {
	t.Parallel()

	samples := drain(t, chirp(t, tone.ArrivedFreq, 100*time.Millisecond))

	peak := func(s [][2]float64) (p float64) {
		for _, v := range s {
			if v[0] > p {
				p = v[0]
			}
		}
		return
	}

	q := len(samples) / 4
	require.Greater(t, peak(samples[:q]), peak(samples[3*q:]))
}

func TestChirpIsFadedSinTone(t *testing.T) {
	t.Parallel()

	osc, err := generators.SinTone(sr, tone.SentFreq)
	require.NoError(t, err)
	raw := drain(t, beep.Take(sr.N(tone.Length), osc))
	faded := drain(t, chirp(t, tone.SentFreq, tone.Length))
	require.Len(t, faded, len(raw))

	for i := range raw {
		env := 1 - float64(i)/float64(len(raw))
		require.InDelta(t, raw[i][0]*env, faded[i][0], 1e-12, "sample %d", i)
	}
}

func TestChirpRejectsAliasedFrequency(t *testing.T) {
	t.Parallel()

	_, err := tone.Chirp(sr, int(sr), tone.Length)
	require.Error(t, err, "a tone at the sample rate cannot be synthesized")
}

func TestMeter(t *testing.T) {
	t.Parallel()

	m := tone.NewMeter(chirp(t, tone.SentFreq, tone.Length), 0.5)
	require.Zero(t, m.Level())

	buf := make([][2]float64, 512)
	n, ok := m.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 512, n)
	require.Greater(t, m.Level(), 0.5)
	require.LessOrEqual(t, m.Level(), 1.0)
	require.NoError(t, m.Err())
}

func TestForEvent(t *testing.T) {
	t.Parallel()

	s, err := tone.ForEvent(sr, ring.Event{Kind: ring.PacketSent})
	require.NoError(t, err)
	a, err := tone.ForEvent(sr, ring.Event{Kind: ring.PacketArrived})
	require.NoError(t, err)

	sent, arrived := drain(t, s), drain(t, a)
	require.Len(t, sent, sr.N(tone.Length))
	require.Len(t, arrived, sr.N(tone.Length))
	require.NotEqual(t, sent[10], arrived[10], "sent and arrived chirps differ in pitch")
}
