package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// chimeDuration is the length of the power-up chime.
const chimeDuration = 600 * time.Millisecond

// HumGenerator produces the engine hum: a low sawtooth-ish tone with a slow
// wobble. It never ends; bound it with beep.Take when a finite
// stream is needed.
type HumGenerator struct {
	sr  beep.SampleRate
	pos int
}

// NewHumGenerator creates a hum generator.
func NewHumGenerator(sr beep.SampleRate) *HumGenerator {
	return &HumGenerator{sr: sr}
}

func (g *HumGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// 55Hz base with two harmonics, wobbling at 6Hz
		wobble := 0.8 + 0.2*math.Sin(2*math.Pi*6*t)
		sample := 0.0
		sample += 0.20 * math.Sin(2*math.Pi*55*t)
		sample += 0.10 * math.Sin(2*math.Pi*110*t)
		sample += 0.05 * math.Sin(2*math.Pi*165*t)
		sample *= wobble

		// Fade in over the first 50ms
		sample *= math.Min(t/0.05, 1)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *HumGenerator) Err() error {
	return nil
}

// ChimeGenerator produces the power-up chime: a tone sweeping from 440Hz to
// 1320Hz over chimeDuration with a decaying envelope.
type ChimeGenerator struct {
	sr    beep.SampleRate
	pos   int
	total int
	phase float64
}

// NewChimeGenerator creates a chime generator.
func NewChimeGenerator(sr beep.SampleRate) *ChimeGenerator {
	return &ChimeGenerator{sr: sr, total: sr.N(chimeDuration)}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		p := math.Min(float64(g.pos)/float64(g.total), 1)
		freq := 440 + 880*p
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		if g.phase > 2*math.Pi {
			g.phase -= 2 * math.Pi
		}

		envelope := (1 - p) * math.Min(float64(g.pos)/float64(g.sr)/0.01, 1)
		sample := 0.3 * envelope * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}
