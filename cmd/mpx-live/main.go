// mpx-live encodes a stereo capture device into an FM composite (MPX)
// baseband stream in real time, writing it to a playback device feeding
// the transmitter. An optional second capture device supplies an external
// multiplex stream (e.g. an RDS generator).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gordonklaus/portaudio"

	"github.com/cwbudde/algo-mpx/mpx"
	"github.com/cwbudde/algo-mpx/preset"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	inputName := flag.String("input", "", "Capture device name (default device if empty)")
	outputName := flag.String("output", "", "Playback device name (default device if empty)")
	mpxName := flag.String("mpx", "", "External MPX capture device name (disabled if empty)")
	presetPath := flag.String("preset", "", "Preset JSON file (optional)")
	sampleRate := flag.Int("sample-rate", 0, "Processing sample rate in Hz (overrides preset)")
	stereo := flag.Bool("stereo", true, "Enable stereo multiplex encoding")
	flag.Parse()

	fmt.Println("mpx-live (FM stereo multiplex encoder) version 1.0")

	params := mpx.NewDefaultParams()
	if *presetPath != "" {
		p, err := preset.LoadJSON(*presetPath)
		if err != nil {
			return fmt.Errorf("loading preset %q: %w", *presetPath, err)
		}
		params = p
	}
	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	applyOverrides(params, *sampleRate, *stereo, setFlags["stereo"])

	enc, err := mpx.NewEncoder(params)
	if err != nil {
		return err
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}
	defer portaudio.Terminate()

	rate := float64(params.SampleRate)
	blockSize := params.BlockSize

	in, err := openCapture(*inputName, 2, rate, blockSize)
	if err != nil {
		return fmt.Errorf("opening capture device: %w", err)
	}
	defer in.close()

	out, err := openPlayback(*outputName, rate, blockSize)
	if err != nil {
		return fmt.Errorf("opening playback device: %w", err)
	}
	defer out.close()

	var mpxIn mpx.BlockSource
	if *mpxName != "" {
		mc, err := openCapture(*mpxName, 1, rate, blockSize)
		if err != nil {
			return fmt.Errorf("opening MPX capture device: %w", err)
		}
		defer mc.close()
		if err := mc.stream.Start(); err != nil {
			return fmt.Errorf("starting MPX capture: %w", err)
		}
		mpxIn = mc
	}

	if err := in.stream.Start(); err != nil {
		return fmt.Errorf("starting capture: %w", err)
	}
	if err := out.stream.Start(); err != nil {
		return fmt.Errorf("starting playback: %w", err)
	}

	streamer, err := mpx.NewStreamer(enc, in, mpxIn, out, blockSize)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Running at %d Hz, block size %d (stereo=%v). Press Ctrl+C to stop.\n",
		params.SampleRate, blockSize, params.Stereo)

	if err := streamer.Run(ctx); err != nil {
		return err
	}
	fmt.Println("\nReceived stop signal.")
	return nil
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

// captureStream adapts a blocking portaudio capture stream to mpx.BlockSource.
type captureStream struct {
	stream *portaudio.Stream
	buf    []float32
}

func (s *captureStream) ReadBlock(dst []float64) error {
	if err := s.stream.Read(); err != nil {
		return err
	}
	for i, v := range s.buf {
		dst[i] = float64(v)
	}
	return nil
}

func (s *captureStream) close() { s.stream.Close() }

// playbackStream adapts a blocking portaudio playback stream to mpx.BlockSink.
type playbackStream struct {
	stream *portaudio.Stream
	buf    []float32
}

func (s *playbackStream) WriteBlock(src []float64) error {
	for i, v := range src {
		s.buf[i] = float32(v)
	}
	return s.stream.Write()
}

func (s *playbackStream) close() { s.stream.Close() }

func openCapture(name string, channels int, rate float64, blockSize int) (*captureStream, error) {
	buf := make([]float32, channels*blockSize)

	if name == "" {
		stream, err := portaudio.OpenDefaultStream(channels, 0, rate, blockSize, buf)
		if err != nil {
			return nil, err
		}
		return &captureStream{stream: stream, buf: buf}, nil
	}

	dev, err := findDevice(name)
	if err != nil {
		return nil, err
	}
	p := portaudio.HighLatencyParameters(dev, nil)
	p.Input.Channels = channels
	p.SampleRate = rate
	p.FramesPerBuffer = blockSize
	stream, err := portaudio.OpenStream(p, buf)
	if err != nil {
		return nil, err
	}
	return &captureStream{stream: stream, buf: buf}, nil
}

func openPlayback(name string, rate float64, blockSize int) (*playbackStream, error) {
	buf := make([]float32, blockSize)

	if name == "" {
		stream, err := portaudio.OpenDefaultStream(0, 1, rate, blockSize, buf)
		if err != nil {
			return nil, err
		}
		return &playbackStream{stream: stream, buf: buf}, nil
	}

	dev, err := findDevice(name)
	if err != nil {
		return nil, err
	}
	p := portaudio.HighLatencyParameters(nil, dev)
	p.Output.Channels = 1
	p.SampleRate = rate
	p.FramesPerBuffer = blockSize
	stream, err := portaudio.OpenStream(p, buf)
	if err != nil {
		return nil, err
	}
	return &playbackStream{stream: stream, buf: buf}, nil
}

func findDevice(name string) (*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	for _, d := range devices {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, fmt.Errorf("audio device %q not found", name)
}
