// Package wavio reads and writes WAV files as float64 sample slices and
// resamples them to the encoder's processing rate.
package wavio

import (
	"fmt"
	"os"
	"path/filepath"

	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

// ReadStereo decodes a WAV file into separate left/right channels scaled to
// [-1, 1]. Mono files are duplicated into both channels.
func ReadStereo(path string) (left, right []float64, sampleRate int, err error) {
	buf, err := readPCM(path)
	if err != nil {
		return nil, nil, 0, err
	}

	ch := buf.Format.NumChannels
	frames := len(buf.Data) / ch
	scale := pcmScale(buf.SourceBitDepth)

	left = make([]float64, frames)
	right = make([]float64, frames)
	for i := 0; i < frames; i++ {
		left[i] = float64(buf.Data[i*ch]) * scale
		if ch > 1 {
			right[i] = float64(buf.Data[i*ch+1]) * scale
		} else {
			right[i] = left[i]
		}
	}
	return left, right, buf.Format.SampleRate, nil
}

// ReadMono decodes a WAV file into a single channel scaled to [-1, 1],
// averaging all channels.
func ReadMono(path string) ([]float64, int, error) {
	buf, err := readPCM(path)
	if err != nil {
		return nil, 0, err
	}

	ch := buf.Format.NumChannels
	frames := len(buf.Data) / ch
	scale := pcmScale(buf.SourceBitDepth)

	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < ch; c++ {
			sum += float64(buf.Data[i*ch+c])
		}
		out[i] = sum / float64(ch) * scale
	}
	return out, buf.Format.SampleRate, nil
}

func readPCM(path string) (*audio.Float32Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid wav file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, fmt.Errorf("invalid wav buffer: %s", path)
	}
	return buf, nil
}

func pcmScale(bitDepth int) float64 {
	if bitDepth <= 0 {
		bitDepth = 16
	}
	return 1.0 / float64(int64(1)<<(bitDepth-1))
}

// WriteMono writes a single-channel 16-bit WAV file. Samples are clamped
// to [-1, 1] before conversion.
func WriteMono(path string, samples []float64, sampleRate int) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	defer enc.Close()

	data := make([]float32, len(samples))
	for i, v := range samples {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		data[i] = float32(v)
	}

	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	return enc.Write(buf)
}

// ResampleIfNeeded converts a channel between sample rates; it returns the
// input unchanged when the rates already match.
func ResampleIfNeeded(in []float64, fromRate, toRate int) ([]float64, error) {
	if fromRate == toRate {
		return in, nil
	}
	r, err := dspresample.NewForRates(
		float64(fromRate),
		float64(toRate),
		dspresample.WithQuality(dspresample.QualityBest),
	)
	if err != nil {
		return nil, err
	}
	return r.Process(in), nil
}
