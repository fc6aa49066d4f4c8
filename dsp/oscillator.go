package dsp

import (
	"fmt"
	"math"
)

// Oscillator is a numerically controlled sine oscillator. Phase is kept
// normalized in turns [0, 1) and wrapped on every advance, so it never
// accumulates floating-point magnitude over long runs.
type Oscillator struct {
	phase float64 // normalized turns in [0, 1)
	step  float64 // turns per sample

	freq       float64
	sampleRate float64
}

// NewOscillator creates an oscillator at the given frequency. The frequency
// must lie strictly between 0 and the Nyquist frequency.
func NewOscillator(freq, sampleRate float64) (*Oscillator, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("oscillator: sample rate must be positive, got %v", sampleRate)
	}
	if freq <= 0 || freq >= sampleRate/2 {
		return nil, fmt.Errorf("oscillator: frequency must be in (0, %v), got %v", sampleRate/2, freq)
	}

	return &Oscillator{
		step:       freq / sampleRate,
		freq:       freq,
		sampleRate: sampleRate,
	}, nil
}

// Evaluate returns sin(2π·harmonic·phase) for the current phase without
// advancing it. Harmonics read between two Advance calls are therefore
// phase-locked to the fundamental.
func (o *Oscillator) Evaluate(harmonic int) float64 {
	return math.Sin(2 * math.Pi * float64(harmonic) * o.phase)
}

// Advance moves the phase forward by one sample period, wrapped modulo
// one full cycle.
func (o *Oscillator) Advance() {
	_, o.phase = math.Modf(o.phase + o.step)
}

// Phase returns the current normalized phase in [0, 1).
func (o *Oscillator) Phase() float64 { return o.phase }

// Freq returns the configured fundamental frequency in Hz.
func (o *Oscillator) Freq() float64 { return o.freq }

// Reset returns the phase to zero.
func (o *Oscillator) Reset() { o.phase = 0 }
