package mpx

import (
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"

	"github.com/cwbudde/algo-mpx/dsp"
)

// Encoder turns a stereo program signal into the FM composite baseband,
// one sample at a time. It owns the pilot oscillator and one
// preemphasis→lowpass cascade per channel; all state is allocated at
// construction and only mutated by processing calls.
type Encoder struct {
	pilot  *dsp.Oscillator
	left   *biquad.Chain
	right  *biquad.Chain
	stereo bool
}

// NewEncoder builds an encoder from validated parameters. Invalid
// configuration is reported here, before any audio flows.
func NewEncoder(p *Params) (*Encoder, error) {
	if p == nil {
		return nil, fmt.Errorf("mpx: nil params")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rate := float64(p.SampleRate)
	pilot, err := dsp.NewOscillator(p.PilotFreq, rate)
	if err != nil {
		return nil, err
	}
	pre, err := dsp.Preemphasis(p.EmphasisTau, rate)
	if err != nil {
		return nil, err
	}
	lp, err := dsp.Lowpass(p.LowpassCutoff, p.LowpassQ, rate)
	if err != nil {
		return nil, err
	}

	cascade := []biquad.Coefficients{pre, lp}
	return &Encoder{
		pilot:  pilot,
		left:   biquad.NewChain(cascade),
		right:  biquad.NewChain(cascade),
		stereo: p.Stereo,
	}, nil
}

// ProcessSample encodes one sample pair plus one external multiplex sample
// into one composite sample. Both oscillator harmonics are read from the
// same phase before the oscillator advances, keeping the 38 kHz subcarrier
// phase-locked to the pilot.
func (e *Encoder) ProcessSample(l, r, ext float64) float64 {
	pilot := e.pilot.Evaluate(1)
	subcarrier := e.pilot.Evaluate(2)
	e.pilot.Advance()

	fl := e.left.ProcessSample(l)
	fr := e.right.ProcessSample(r)

	return Multiplex(fl, fr, pilot, subcarrier, ext, e.stereo)
}

// ProcessBlock encodes equal-length slices of left, right and external
// multiplex samples into out. Zero-alloc.
func (e *Encoder) ProcessBlock(left, right, ext, out []float64) {
	n := len(out)
	if n == 0 {
		return
	}
	_ = left[n-1]
	_ = right[n-1]
	_ = ext[n-1]
	for i := 0; i < n; i++ {
		out[i] = e.ProcessSample(left[i], right[i], ext[i])
	}
}

// Stereo reports whether the encoder emits the full stereo multiplex.
func (e *Encoder) Stereo() bool { return e.stereo }

// Reset clears all filter delay lines and returns the pilot phase to zero.
func (e *Encoder) Reset() {
	e.pilot.Reset()
	e.left.Reset()
	e.right.Reset()
}
