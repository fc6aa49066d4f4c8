// mpx-file encodes a stereo WAV file into an FM composite (MPX) WAV file,
// optionally mixing in a pre-rendered external multiplex stream (e.g. RDS).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-mpx/internal/wavio"
	"github.com/cwbudde/algo-mpx/mpx"
	"github.com/cwbudde/algo-mpx/preset"
)

func main() {
	input := flag.String("input", "", "Stereo program WAV file (required)")
	mpxPath := flag.String("mpx", "", "External multiplex WAV file (optional)")
	output := flag.String("output", "mpx.wav", "Composite output WAV file")
	presetPath := flag.String("preset", "", "Preset JSON file (optional)")
	sampleRate := flag.Int("sample-rate", 0, "Processing sample rate in Hz (overrides preset)")
	stereo := flag.Bool("stereo", true, "Enable stereo multiplex encoding")
	flag.Parse()

	if *input == "" {
		fmt.Fprintf(os.Stderr, "Error: -input is required\n")
		flag.Usage()
		os.Exit(1)
	}

	params := mpx.NewDefaultParams()
	if *presetPath != "" {
		p, err := preset.LoadJSON(*presetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading preset %q: %v\n", *presetPath, err)
			os.Exit(1)
		}
		params = p
	}
	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	applyOverrides(params, *sampleRate, *stereo, setFlags["stereo"])

	enc, err := mpx.NewEncoder(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	left, right, rate, err := wavio.ReadStereo(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", *input, err)
		os.Exit(1)
	}
	if left, err = wavio.ResampleIfNeeded(left, rate, params.SampleRate); err != nil {
		fmt.Fprintf(os.Stderr, "Error resampling: %v\n", err)
		os.Exit(1)
	}
	if right, err = wavio.ResampleIfNeeded(right, rate, params.SampleRate); err != nil {
		fmt.Fprintf(os.Stderr, "Error resampling: %v\n", err)
		os.Exit(1)
	}

	ext := make([]float64, len(left))
	if *mpxPath != "" {
		extIn, extRate, err := wavio.ReadMono(*mpxPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", *mpxPath, err)
			os.Exit(1)
		}
		if extIn, err = wavio.ResampleIfNeeded(extIn, extRate, params.SampleRate); err != nil {
			fmt.Fprintf(os.Stderr, "Error resampling: %v\n", err)
			os.Exit(1)
		}
		copy(ext, extIn)
	}

	fmt.Printf("Encoding %d frames at %d Hz (stereo=%v, pilot=%.0f Hz)...\n",
		len(left), params.SampleRate, params.Stereo, params.PilotFreq)

	composite := make([]float64, len(left))
	for pos := 0; pos < len(left); pos += params.BlockSize {
		end := pos + params.BlockSize
		if end > len(left) {
			end = len(left)
		}
		enc.ProcessBlock(left[pos:end], right[pos:end], ext[pos:end], composite[pos:end])
	}

	if err := wavio.WriteMono(*output, composite, params.SampleRate); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", *output, err)
		os.Exit(1)
	}
	fmt.Printf("Successfully wrote %s (%d frames)\n", *output, len(composite))
}

// applyOverrides layers explicit command-line values over preset params.
// The stereo flag only applies when the user actually passed it, so a
// preset's stereo choice survives the flag default.
func applyOverrides(p *mpx.Params, sampleRate int, stereo, stereoSet bool) {
	if sampleRate > 0 {
		p.SampleRate = sampleRate
	}
	if stereoSet {
		p.Stereo = stereo
	}
}
