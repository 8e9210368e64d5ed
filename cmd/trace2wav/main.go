// Command trace2wav renders a seismic trace to a WAV audio file for aural
// quality control ("audification"): playback is sped up by an integer
// factor so that sub-audio seismic frequencies land in the audible band.
//
// Usage:
//
//	trace2wav input.sac output.wav
//	trace2wav -speedup 800 input.sac output.wav
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/hemmelig/AnisotropIO/sac"
)

const (
	// defaultSpeedup maps a 50 Hz seismic trace to 20 kHz playback.
	defaultSpeedup = 400

	wavBitDepth    = 16
	wavChannels    = 1
	wavAudioFormat = 1 // PCM

	// peakTarget leaves headroom below full scale when normalizing.
	peakTarget = 0.9
	maxInt16   = 32767.0

	minRequiredArgs = 2
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	speedup := flag.Int("speedup", defaultSpeedup, "Playback speed-up factor")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.sac output.wav\n\n", os.Args[0])
		flag.PrintDefaults()
		return errors.New("insufficient arguments")
	}
	if *speedup < 1 {
		return fmt.Errorf("speedup must be a positive integer, got %d", *speedup)
	}

	f, err := sac.Read(args[0])
	if err != nil {
		return err
	}
	tr := f.Trace()
	if tr.Npts() == 0 {
		return fmt.Errorf("%s contains no samples", args[0])
	}

	// Peak-normalize so quiet traces are audible and strong ones do not
	// clip.
	var peak float64
	for _, v := range tr.Data {
		peak = math.Max(peak, math.Abs(v))
	}
	scale := 0.0
	if peak > 0 {
		scale = peakTarget / peak
	}

	playbackRate := int(math.Round(tr.SamplingRate * float64(*speedup)))
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: wavChannels, SampleRate: playbackRate},
		Data:           make([]int, tr.Npts()),
		SourceBitDepth: wavBitDepth,
	}
	for i, v := range tr.Data {
		buf.Data[i] = int(math.Round(v * scale * maxInt16))
	}

	out, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	enc := wav.NewEncoder(out, playbackRate, wavBitDepth, wavChannels, wavAudioFormat)
	if err := enc.Write(buf); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	fmt.Printf("Wrote %s: %d samples at %d Hz (%.1f s of audio from %.1f s of data)\n",
		args[1], tr.Npts(), playbackRate,
		float64(tr.Npts())/float64(playbackRate), tr.Duration())
	return nil
}
