package anisotropio

import (
	"fmt"
	"math"
	"time"
)

// Trace is a single continuous segment of evenly sampled waveform data.
//
// A Trace is a value: the transforms in this package never mutate their
// input, they return a new Trace with freshly allocated sample storage.
// The zero value is an empty trace.
type Trace struct {
	// ID identifies the recording channel, e.g. "NZ.WEL.10.HHZ". It is an
	// opaque string carried through every transform unmodified.
	ID string

	// Start is the absolute timestamp of the first sample.
	Start time.Time

	// SamplingRate is the sampling rate in Hz.
	SamplingRate float64

	// Data holds the amplitude samples.
	Data []float64
}

// Npts returns the number of samples in the trace.
func (tr Trace) Npts() int {
	return len(tr.Data)
}

// Delta returns the sample period in seconds.
func (tr Trace) Delta() float64 {
	return 1.0 / tr.SamplingRate
}

// End returns the absolute timestamp of the last sample. For an empty
// trace it returns Start.
func (tr Trace) End() time.Time {
	if len(tr.Data) == 0 {
		return tr.Start
	}
	return tr.SampleTime(len(tr.Data) - 1)
}

// SampleTime returns the absolute timestamp of sample i.
func (tr Trace) SampleTime(i int) time.Time {
	return tr.Start.Add(durationFromSeconds(float64(i) * tr.Delta()))
}

// Duration returns the time spanned between the first and last samples,
// in seconds.
func (tr Trace) Duration() float64 {
	if len(tr.Data) == 0 {
		return 0
	}
	return float64(len(tr.Data)-1) * tr.Delta()
}

// Clone returns a deep copy of the trace. Transform stages clone their
// input exactly once, at the stage boundary, so ownership is unambiguous.
func (tr Trace) Clone() Trace {
	out := tr
	out.Data = append([]float64(nil), tr.Data...)
	return out
}

// Consistent reports whether the sample count agrees with the trace's
// span and sampling rate to within one sample.
func (tr Trace) Consistent() bool {
	if len(tr.Data) == 0 {
		return true
	}
	span := tr.End().Sub(tr.Start).Seconds()
	return math.Abs(span*tr.SamplingRate-float64(len(tr.Data)-1)) <= 1
}

// String implements fmt.Stringer.
func (tr Trace) String() string {
	return fmt.Sprintf("%s | %s - %s | %g Hz, %d samples",
		tr.ID,
		tr.Start.UTC().Format(time.RFC3339Nano),
		tr.End().UTC().Format(time.RFC3339Nano),
		tr.SamplingRate, tr.Npts())
}

// Stream is an ordered collection of traces sharing a nominal time window
// but carrying independent identities.
type Stream []Trace

// Select returns the traces whose ID equals id, preserving order.
func (st Stream) Select(id string) Stream {
	var out Stream
	for _, tr := range st {
		if tr.ID == id {
			out = append(out, tr)
		}
	}
	return out
}

// Clone returns a deep copy of the stream.
func (st Stream) Clone() Stream {
	out := make(Stream, 0, len(st))
	for _, tr := range st {
		out = append(out, tr.Clone())
	}
	return out
}

// Trim clips every trace to the closed window [lo, hi]. Traces left with
// no samples are dropped from the result.
func (st Stream) Trim(lo, hi time.Time) Stream {
	out := make(Stream, 0, len(st))
	for _, tr := range st {
		trimmed := Trim(tr, lo, hi)
		if trimmed.Npts() > 0 {
			out = append(out, trimmed)
		}
	}
	return out
}

// durationFromSeconds converts a float second count to a time.Duration,
// rounding to the nearest nanosecond.
func durationFromSeconds(s float64) time.Duration {
	return time.Duration(math.Round(s * nanosPerSecond))
}
