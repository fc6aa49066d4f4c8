package mpx

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-mpx/analysis"
)

// encodeTone runs a 1 kHz left-only tone through a freshly built encoder
// for one second and returns the composite signal.
func encodeTone(t *testing.T, p *Params) []float64 {
	t.Helper()

	enc, err := NewEncoder(p)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	n := p.SampleRate
	left := make([]float64, n)
	for i := range left {
		left[i] = math.Sin(2 * math.Pi * 1000 * float64(i) / float64(p.SampleRate))
	}
	right := make([]float64, n)
	ext := make([]float64, n)
	out := make([]float64, n)

	for pos := 0; pos < n; pos += p.BlockSize {
		end := pos + p.BlockSize
		if end > n {
			end = n
		}
		enc.ProcessBlock(left[pos:end], right[pos:end], ext[pos:end], out[pos:end])
	}
	return out
}

func TestCompositeSpectrumStereo(t *testing.T) {
	p := NewDefaultParams()
	composite := encodeTone(t, p)

	const fftSize = 16384
	mags, err := analysis.AverageMagnitudes(composite, fftSize)
	if err != nil {
		t.Fatalf("AverageMagnitudes: %v", err)
	}
	binHz := analysis.BinHz(fftSize, p.SampleRate)

	// Quiet reference band well away from program, pilot, subcarrier and
	// RDS regions.
	noise := analysis.BandPowerDB(mags, binHz, 70000, 90000)

	// Program energy at 1 kHz (mono sum band).
	if db := analysis.BandPowerDB(mags, binHz, 900, 1100); db-noise < 30 {
		t.Fatalf("missing 1 kHz program energy: got=%.1f dB noise=%.1f dB", db, noise)
	}

	// Discrete pilot tone at 19 kHz.
	pilot := analysis.PeakFrequency(mags, binHz, 18000, 20000)
	if math.Abs(pilot-p.PilotFreq) > binHz {
		t.Fatalf("pilot peak: got=%v want=%v±%v", pilot, p.PilotFreq, binHz)
	}
	if db := analysis.BandPowerDB(mags, binHz, 18900, 19100); db-noise < 30 {
		t.Fatalf("pilot not prominent: got=%.1f dB noise=%.1f dB", db, noise)
	}

	// DSB-SC stereo difference: sidebands at 38 kHz ± 1 kHz, suppressed
	// carrier at 38 kHz itself.
	lower := analysis.BandPowerDB(mags, binHz, 36900, 37100)
	upper := analysis.BandPowerDB(mags, binHz, 38900, 39100)
	carrier := analysis.BandPowerDB(mags, binHz, 37950, 38050)
	if lower-noise < 25 || upper-noise < 25 {
		t.Fatalf("missing subcarrier sidebands: lower=%.1f upper=%.1f noise=%.1f dB", lower, upper, noise)
	}
	if lower-carrier < 15 || upper-carrier < 15 {
		t.Fatalf("subcarrier not suppressed: lower=%.1f upper=%.1f carrier=%.1f dB", lower, upper, carrier)
	}
}

func TestCompositeSpectrumMonoHasNoPilot(t *testing.T) {
	p := NewDefaultParams()
	p.Stereo = false
	composite := encodeTone(t, p)

	const fftSize = 16384
	mags, err := analysis.AverageMagnitudes(composite, fftSize)
	if err != nil {
		t.Fatalf("AverageMagnitudes: %v", err)
	}
	binHz := analysis.BinHz(fftSize, p.SampleRate)

	noise := analysis.BandPowerDB(mags, binHz, 70000, 90000)

	if db := analysis.BandPowerDB(mags, binHz, 900, 1100); db-noise < 30 {
		t.Fatalf("missing 1 kHz program energy: got=%.1f dB noise=%.1f dB", db, noise)
	}
	if db := analysis.BandPowerDB(mags, binHz, 18900, 19100); db-noise > 20 {
		t.Fatalf("pilot energy present in mono mode: got=%.1f dB noise=%.1f dB", db, noise)
	}
	if db := analysis.BandPowerDB(mags, binHz, 36000, 40000); db-noise > 20 {
		t.Fatalf("subcarrier energy present in mono mode: got=%.1f dB noise=%.1f dB", db, noise)
	}
}
