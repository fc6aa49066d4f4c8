package dsp

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
)

// magnitudeAt evaluates |H(e^jw)| of a single biquad section at freq.
func magnitudeAt(c biquad.Coefficients, freq, sampleRate float64) float64 {
	w := 2 * math.Pi * freq / sampleRate
	z1 := cmplx.Exp(complex(0, -w))
	z2 := z1 * z1
	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := complex(1, 0) + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2
	return cmplx.Abs(num / den)
}

func TestLowpassRejectsInvalidParams(t *testing.T) {
	cases := []struct {
		name            string
		cutoff, q, rate float64
	}{
		{"zero cutoff", 0, 0.707, 192000},
		{"cutoff at nyquist", 96000, 0.707, 192000},
		{"cutoff above nyquist", 120000, 0.707, 192000},
		{"zero q", 15000, 0, 192000},
		{"negative q", 15000, -1, 192000},
		{"zero sample rate", 15000, 0.707, 0},
	}
	for _, tc := range cases {
		if _, err := Lowpass(tc.cutoff, tc.q, tc.rate); err == nil {
			t.Errorf("%s: expected design error", tc.name)
		}
	}
}

func TestPreemphasisRejectsInvalidParams(t *testing.T) {
	if _, err := Preemphasis(0, 192000); err == nil {
		t.Errorf("zero tau: expected design error")
	}
	if _, err := Preemphasis(-50e-6, 192000); err == nil {
		t.Errorf("negative tau: expected design error")
	}
	if _, err := Preemphasis(50e-6, 0); err == nil {
		t.Errorf("zero sample rate: expected design error")
	}
}

func TestLowpassCutoffGainEqualsQ(t *testing.T) {
	const sampleRate = 192000.0

	// Butterworth q: classic -3 dB point at cutoff.
	c, err := Lowpass(15000, math.Sqrt2/2, sampleRate)
	if err != nil {
		t.Fatalf("Lowpass: %v", err)
	}
	db := 20 * math.Log10(magnitudeAt(c, 15000, sampleRate))
	if math.Abs(db-(-3.01)) > 0.05 {
		t.Fatalf("cutoff attenuation: got=%.3f dB want=-3.01 dB", db)
	}

	// Resonant q: gain at cutoff equals q.
	c, err = Lowpass(15000, 5.0, sampleRate)
	if err != nil {
		t.Fatalf("Lowpass: %v", err)
	}
	if mag := magnitudeAt(c, 15000, sampleRate); math.Abs(mag-5.0) > 1e-9 {
		t.Fatalf("resonant cutoff gain: got=%v want=5", mag)
	}
}

func TestLowpassAttenuatesAboveCutoff(t *testing.T) {
	const sampleRate = 192000.0
	c, err := Lowpass(15000, 5.0, sampleRate)
	if err != nil {
		t.Fatalf("Lowpass: %v", err)
	}

	passband := magnitudeAt(c, 1000, sampleRate)
	peak := magnitudeAt(c, 15000, sampleRate)
	pilotBand := magnitudeAt(c, 19000, sampleRate)
	subBand := magnitudeAt(c, 38000, sampleRate)

	if math.Abs(20*math.Log10(passband)) > 0.5 {
		t.Fatalf("passband gain not flat: %.3f dB", 20*math.Log10(passband))
	}
	if pilotBand >= peak {
		t.Fatalf("rolloff not past resonance at pilot frequency: pilot=%v peak=%v", pilotBand, peak)
	}
	if subBand >= pilotBand {
		t.Fatalf("rolloff not monotone above pilot: 38 kHz=%v 19 kHz=%v", subBand, pilotBand)
	}
	if db := 20 * math.Log10(subBand); db > -14 {
		t.Fatalf("insufficient attenuation at 38 kHz: got=%.1f dB want < -14 dB", db)
	}
}

func TestLowpassOutputStaysBounded(t *testing.T) {
	c, err := Lowpass(15000, 5.0, 192000)
	if err != nil {
		t.Fatalf("Lowpass: %v", err)
	}
	sec := biquad.NewSection(c)

	rng := rand.New(rand.NewSource(1))
	const n = 1_000_000
	for i := 0; i < n; i++ {
		y := sec.ProcessSample(2*rng.Float64() - 1)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			t.Fatalf("non-finite output at sample %d", i)
		}
		if math.Abs(y) > 100 {
			t.Fatalf("output diverged at sample %d: %v", i, y)
		}
	}
}

func TestPreemphasisBoostsHighFrequencies(t *testing.T) {
	const (
		tau        = 50e-6
		sampleRate = 192000.0
	)
	c, err := Preemphasis(tau, sampleRate)
	if err != nil {
		t.Fatalf("Preemphasis: %v", err)
	}

	low := magnitudeAt(c, 1000, sampleRate)
	high := magnitudeAt(c, 15000, sampleRate)
	if high <= low {
		t.Fatalf("no high-frequency boost: 15 kHz=%v 1 kHz=%v", high, low)
	}

	// Unity at DC, analog sqrt(1+(2πfτ)²) tracking across the audio band.
	if dc := magnitudeAt(c, 1e-3, sampleRate); math.Abs(dc-1) > 1e-6 {
		t.Fatalf("DC gain: got=%v want=1", dc)
	}
	for _, f := range []float64{1000, 5000, 10000, 15000} {
		analog := math.Sqrt(1 + math.Pow(2*math.Pi*f*tau, 2))
		got := magnitudeAt(c, f, sampleRate)
		if math.Abs(got-analog)/analog > 0.06 {
			t.Fatalf("boost at %.0f Hz: got=%v analog=%v", f, got, analog)
		}
	}
}

func TestPreemphasisInvertsDeemphasis(t *testing.T) {
	const (
		tau        = 50e-6
		sampleRate = 192000.0
	)
	c, err := Preemphasis(tau, sampleRate)
	if err != nil {
		t.Fatalf("Preemphasis: %v", err)
	}
	sec := biquad.NewSection(c)

	// One-pole receiver de-emphasis, as a receiver implements it.
	dt := 1 / sampleRate
	alpha := dt / (tau + dt)
	var prev float64

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10000; i++ {
		x := 2*rng.Float64() - 1
		pre := sec.ProcessSample(x)
		prev += alpha * (pre - prev)
		if math.Abs(prev-x) > 1e-9 {
			t.Fatalf("sample %d: emphasis/de-emphasis not inverse: got=%v want=%v", i, prev, x)
		}
	}
}
