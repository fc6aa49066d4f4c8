package mpx

import "fmt"

// Injection levels of the composite components, as fractions of full
// deviation: mono and stereo-difference share the program budget equally,
// the pilot sits at the standard low reference level.
const (
	MonoLevel   = 0.45
	PilotLevel  = 0.09
	StereoLevel = 0.45
)

// Params holds all encoder parameters.
type Params struct {
	// SampleRate is the processing rate in Hz. It has to be high enough to
	// represent the 38 kHz subcarrier sidebands (and 57 kHz RDS when an
	// external MPX stream is mixed in).
	SampleRate int

	// Stereo selects full multiplex encoding. When false the composite
	// carries only the mono sum (plus any external MPX stream); no pilot
	// is transmitted.
	Stereo bool

	PilotFreq     float64 // pilot tone in Hz, subcarrier is its 2nd harmonic
	LowpassCutoff float64 // program band limit in Hz
	LowpassQ      float64 // band-limiter resonance
	EmphasisTau   float64 // preemphasis time constant in seconds

	// BlockSize is the number of composite samples exchanged with the I/O
	// collaborators per iteration.
	BlockSize int
}

// NewDefaultParams returns the standard FM broadcast configuration.
func NewDefaultParams() *Params {
	return &Params{
		SampleRate:    192000,
		Stereo:        true,
		PilotFreq:     19000,
		LowpassCutoff: 15000,
		LowpassQ:      5.0,
		EmphasisTau:   50e-6,
		BlockSize:     768,
	}
}

// Validate reports the first configuration error, if any. All checks are
// repeated by the component constructors; validating up front turns them
// into a single startup failure.
func (p *Params) Validate() error {
	if p.SampleRate <= 0 {
		return fmt.Errorf("mpx: sample rate must be positive, got %d", p.SampleRate)
	}
	nyquist := float64(p.SampleRate) / 2
	if p.PilotFreq <= 0 || p.PilotFreq >= nyquist {
		return fmt.Errorf("mpx: pilot frequency must be in (0, %v), got %v", nyquist, p.PilotFreq)
	}
	if p.LowpassCutoff <= 0 || p.LowpassCutoff >= nyquist {
		return fmt.Errorf("mpx: lowpass cutoff must be in (0, %v), got %v", nyquist, p.LowpassCutoff)
	}
	if p.LowpassQ <= 0 {
		return fmt.Errorf("mpx: lowpass q must be positive, got %v", p.LowpassQ)
	}
	if p.EmphasisTau <= 0 {
		return fmt.Errorf("mpx: emphasis time constant must be positive, got %v", p.EmphasisTau)
	}
	if p.BlockSize <= 0 {
		return fmt.Errorf("mpx: block size must be positive, got %d", p.BlockSize)
	}
	return nil
}
