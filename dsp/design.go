package dsp

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
)

// Lowpass returns coefficients for a resonant second-order low-pass
// (RBJ cookbook). The gain at the cutoff frequency equals q, so q = 1/√2
// gives the classic -3 dB point while larger values produce a resonant
// peak just below cutoff.
func Lowpass(cutoff, q, sampleRate float64) (biquad.Coefficients, error) {
	if sampleRate <= 0 {
		return biquad.Coefficients{}, fmt.Errorf("lowpass: sample rate must be positive, got %v", sampleRate)
	}
	if cutoff <= 0 || cutoff >= sampleRate/2 {
		return biquad.Coefficients{}, fmt.Errorf("lowpass: cutoff must be in (0, %v), got %v", sampleRate/2, cutoff)
	}
	if q <= 0 {
		return biquad.Coefficients{}, fmt.Errorf("lowpass: q must be positive, got %v", q)
	}

	w0 := 2 * math.Pi * cutoff / sampleRate
	alpha := math.Sin(w0) / (2 * q)
	cosw0 := math.Cos(w0)

	a0 := 1 + alpha

	return biquad.Coefficients{
		B0: (1 - cosw0) / 2 / a0,
		B1: (1 - cosw0) / a0,
		B2: (1 - cosw0) / 2 / a0,
		A1: -2 * cosw0 / a0,
		A2: (1 - alpha) / a0,
	}, nil
}

// Preemphasis returns coefficients for the FM transmission-side emphasis
// network with time constant tau (50 µs in Europe, 75 µs in the US).
//
// The design is the exact inverse of the receiver's one-pole de-emphasis
// y[n] = y[n-1] + alpha·(x[n] - y[n-1]) with alpha = dt/(tau+dt), giving
// unity gain at DC and a high-frequency boost that tracks the analog
// sqrt(1+(2πfτ)²) curve closely at broadcast sample rates.
func Preemphasis(tau, sampleRate float64) (biquad.Coefficients, error) {
	if sampleRate <= 0 {
		return biquad.Coefficients{}, fmt.Errorf("preemphasis: sample rate must be positive, got %v", sampleRate)
	}
	if tau <= 0 {
		return biquad.Coefficients{}, fmt.Errorf("preemphasis: time constant must be positive, got %v", tau)
	}

	dt := 1 / sampleRate
	alpha := dt / (tau + dt)

	return biquad.Coefficients{
		B0: 1 / alpha,
		B1: -(1 - alpha) / alpha,
	}, nil
}
