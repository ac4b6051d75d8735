package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ToneGenerator generates a sine tone with a linear fade-out over its duration.
type ToneGenerator struct {
	sr    beep.SampleRate
	freq  float64
	pos   int
	total int
}

// NewToneGenerator creates a tone generator.
func NewToneGenerator(sr beep.SampleRate, freq float64, duration time.Duration) *ToneGenerator {
	return &ToneGenerator{
		sr:    sr,
		freq:  freq,
		total: max(sr.N(duration), 1),
	}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.sr)
		envelope := 1 - float64(g.pos)/float64(g.total)
		sample := 0.3 * envelope * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}
