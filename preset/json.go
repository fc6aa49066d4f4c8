// Package preset loads encoder parameters from JSON files, applying partial
// overrides on top of the standard broadcast defaults.
package preset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/algo-mpx/mpx"
)

// File is the JSON schema for encoder presets. All fields are optional;
// absent fields keep their defaults. The emphasis time constant is given
// in microseconds (50 in Europe, 75 in the US).
type File struct {
	SampleRate    *int     `json:"sample_rate"`
	Stereo        *bool    `json:"stereo"`
	PilotFreq     *float64 `json:"pilot_freq"`
	LowpassCutoff *float64 `json:"lowpass_cutoff"`
	LowpassQ      *float64 `json:"lowpass_q"`
	EmphasisUs    *float64 `json:"emphasis_us"`
	BlockSize     *int     `json:"block_size"`
}

// LoadJSON loads a preset JSON file and applies it on top of default params.
func LoadJSON(path string) (*mpx.Params, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}

	p := mpx.NewDefaultParams()
	if err := ApplyFile(p, &f); err != nil {
		return nil, err
	}
	return p, nil
}

// ApplyFile applies a parsed preset file onto an existing params object.
func ApplyFile(dst *mpx.Params, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination params")
	}
	if f == nil {
		return nil
	}

	if f.SampleRate != nil {
		if *f.SampleRate <= 0 {
			return fmt.Errorf("sample_rate must be > 0")
		}
		dst.SampleRate = *f.SampleRate
	}
	if f.Stereo != nil {
		dst.Stereo = *f.Stereo
	}
	if f.PilotFreq != nil {
		if *f.PilotFreq <= 0 {
			return fmt.Errorf("pilot_freq must be > 0")
		}
		dst.PilotFreq = *f.PilotFreq
	}
	if f.LowpassCutoff != nil {
		if *f.LowpassCutoff <= 0 {
			return fmt.Errorf("lowpass_cutoff must be > 0")
		}
		dst.LowpassCutoff = *f.LowpassCutoff
	}
	if f.LowpassQ != nil {
		if *f.LowpassQ <= 0 {
			return fmt.Errorf("lowpass_q must be > 0")
		}
		dst.LowpassQ = *f.LowpassQ
	}
	if f.EmphasisUs != nil {
		if *f.EmphasisUs <= 0 {
			return fmt.Errorf("emphasis_us must be > 0")
		}
		dst.EmphasisTau = *f.EmphasisUs * 1e-6
	}
	if f.BlockSize != nil {
		if *f.BlockSize <= 0 {
			return fmt.Errorf("block_size must be > 0")
		}
		dst.BlockSize = *f.BlockSize
	}

	// Cross-field constraints (against Nyquist) are caught here rather
	// than at first use.
	return dst.Validate()
}
