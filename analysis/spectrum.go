// Package analysis provides FFT-based spectrum measurements used to verify
// composite multiplex signals: averaged STFT magnitudes, band power and
// peak-frequency estimation.
package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/cwbudde/algo-fft"
)

// AverageMagnitudes returns Hann-windowed STFT magnitudes averaged across
// half-overlapping frames. The result has fftSize/2 bins covering DC up to
// (exclusive) the Nyquist frequency.
func AverageMagnitudes(signal []float64, fftSize int) ([]float64, error) {
	if fftSize <= 0 {
		return nil, fmt.Errorf("analysis: fft size must be positive, got %d", fftSize)
	}
	if len(signal) < fftSize {
		return nil, fmt.Errorf("analysis: signal shorter than fft size: %d < %d", len(signal), fftSize)
	}

	plan, err := algofft.NewPlanReal64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("analysis: fft plan: %w", err)
	}

	hann := make([]float64, fftSize)
	for i := range hann {
		hann[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(fftSize-1))
	}

	nBins := fftSize / 2
	avg := make([]float64, nBins)
	spec := make([]complex128, fftSize/2+1)
	buf := make([]float64, fftSize)

	hop := fftSize / 2
	frames := 0
	for pos := 0; pos+fftSize <= len(signal); pos += hop {
		for i := 0; i < fftSize; i++ {
			buf[i] = signal[pos+i] * hann[i]
		}
		plan.Forward(spec, buf)
		for k := 0; k < nBins; k++ {
			avg[k] += cmplx.Abs(spec[k])
		}
		frames++
	}

	scale := 1.0 / float64(frames)
	for k := range avg {
		avg[k] *= scale
	}
	return avg, nil
}

// BinHz returns the bin spacing in Hz for the given FFT size and sample rate.
func BinHz(fftSize, sampleRate int) float64 {
	return float64(sampleRate) / float64(fftSize)
}

// BandPowerDB returns the mean power of the bins in [loHz, hiHz] in dB.
// DC is excluded. Returns -240 dB for an empty band.
func BandPowerDB(mags []float64, binHz, loHz, hiHz float64) float64 {
	loK, hiK := bandBins(len(mags), binHz, loHz, hiHz)
	if loK > hiK {
		return -240
	}

	var sum float64
	for k := loK; k <= hiK; k++ {
		sum += mags[k] * mags[k]
	}
	mean := sum / float64(hiK-loK+1)
	return 10 * math.Log10(math.Max(mean, 1e-24))
}

// PeakFrequency returns the frequency of the strongest bin in [loHz, hiHz].
func PeakFrequency(mags []float64, binHz, loHz, hiHz float64) float64 {
	loK, hiK := bandBins(len(mags), binHz, loHz, hiHz)
	if loK > hiK {
		return 0
	}

	peakK := loK
	for k := loK + 1; k <= hiK; k++ {
		if mags[k] > mags[peakK] {
			peakK = k
		}
	}
	return float64(peakK) * binHz
}

func bandBins(nBins int, binHz, loHz, hiHz float64) (int, int) {
	loK := int(loHz / binHz)
	hiK := int(hiHz / binHz)
	if loK < 1 {
		loK = 1
	}
	if hiK >= nBins {
		hiK = nBins - 1
	}
	return loK, hiK
}
