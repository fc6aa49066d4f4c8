package mpx

import (
	"context"
	"fmt"
)

// BlockSource supplies one fixed-size block of samples per call, filling
// dst completely. Implementations report device failure through the error.
type BlockSource interface {
	ReadBlock(dst []float64) error
}

// BlockSink consumes one fixed-size block of samples per call.
type BlockSink interface {
	WriteBlock(src []float64) error
}

// Streamer drives the encoder between blocking block-oriented I/O
// collaborators. All buffers are allocated once; the per-block path does
// not touch the heap.
type Streamer struct {
	enc     *Encoder
	audioIn BlockSource
	mpxIn   BlockSource // nil when no external MPX stream is configured
	out     BlockSink

	interleaved []float64 // 2*blockSize, L/R interleaved
	left        []float64
	right       []float64
	mpxBuf      []float64 // stays zero when mpxIn is nil
	composite   []float64
}

// NewStreamer wires an encoder to its I/O collaborators. audioIn must fill
// interleaved stereo blocks of 2*blockSize values; mpxIn, when non-nil,
// mono blocks of blockSize values.
func NewStreamer(enc *Encoder, audioIn BlockSource, mpxIn BlockSource, out BlockSink, blockSize int) (*Streamer, error) {
	if enc == nil {
		return nil, fmt.Errorf("mpx: nil encoder")
	}
	if audioIn == nil || out == nil {
		return nil, fmt.Errorf("mpx: audio input and composite output are required")
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("mpx: block size must be positive, got %d", blockSize)
	}

	return &Streamer{
		enc:         enc,
		audioIn:     audioIn,
		mpxIn:       mpxIn,
		out:         out,
		interleaved: make([]float64, 2*blockSize),
		left:        make([]float64, blockSize),
		right:       make([]float64, blockSize),
		mpxBuf:      make([]float64, blockSize),
		composite:   make([]float64, blockSize),
	}, nil
}

// Run processes blocks until the context is cancelled or an I/O collaborator
// fails. Cancellation is observed once per block boundary and yields a nil
// return; device failures are returned wrapped, with the current block
// discarded rather than partially written.
func (s *Streamer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if err := s.audioIn.ReadBlock(s.interleaved); err != nil {
			return fmt.Errorf("mpx: audio input: %w", err)
		}
		if s.mpxIn != nil {
			if err := s.mpxIn.ReadBlock(s.mpxBuf); err != nil {
				return fmt.Errorf("mpx: mpx input: %w", err)
			}
		}

		Deinterleave(s.interleaved, s.left, s.right)
		s.enc.ProcessBlock(s.left, s.right, s.mpxBuf, s.composite)

		if err := s.out.WriteBlock(s.composite); err != nil {
			return fmt.Errorf("mpx: composite output: %w", err)
		}
	}
}

// Deinterleave splits an interleaved stereo buffer into left and right.
// len(src) must be 2*len(left) and len(left) == len(right).
func Deinterleave(src, left, right []float64) {
	n := len(left)
	if n == 0 {
		return
	}
	_ = right[n-1]
	_ = src[2*n-1]
	for i := 0; i < n; i++ {
		left[i] = src[2*i]
		right[i] = src[2*i+1]
	}
}
