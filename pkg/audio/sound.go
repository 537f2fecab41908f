package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const (
	noteDuration = 70 * time.Millisecond
	effectGain   = -2
)

var (
	lineClearNotes = []float64{523.25, 659.25, 783.99, 1046.50}
	gameOverNotes  = []float64{392.00, 329.63, 261.63, 196.00}
)

// gain converts a linear volume in [0, 1] into the exponent of an
// effects.Volume with base 10, the same 20*log10(v) decibel mapping divided
// back by 20.
func gain(v float64) (volume float64, silent bool) {
	if v <= 0 {
		return 0, true
	}

	db := 20 * math.Log10(v)
	return db / 20, false
}

// setGain clamps v to [0, 1], applies it to vol and returns the clamped
// value.
func setGain(vol *effects.Volume, v float64) float64 {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}

	vol.Volume, vol.Silent = gain(v)
	return v
}

func (s *Service) tone(freq float64, d time.Duration) beep.Streamer {
	n := s.sampleRate.N(d)

	sine, err := generators.SineTone(s.sampleRate, freq)
	if err != nil {
		return beep.Silence(n)
	}

	return beep.Take(n, &effects.Volume{Streamer: sine, Base: 2, Volume: effectGain})
}

func (s *Service) melody(notes []float64) beep.Streamer {
	streamers := make([]beep.Streamer, len(notes))
	for i, freq := range notes {
		streamers[i] = s.tone(freq, noteDuration)
	}

	return beep.Seq(streamers...)
}

// lineClearSound plays one rising note per cleared row.
func (s *Service) lineClearSound(lines int) beep.Streamer {
	if lines < 1 {
		lines = 1
	} else if lines > len(lineClearNotes) {
		lines = len(lineClearNotes)
	}

	return s.melody(lineClearNotes[:lines])
}

func (s *Service) gameOverSound() beep.Streamer {
	return s.melody(gameOverNotes)
}
