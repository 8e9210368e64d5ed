package anisotropio

import (
	"log/slog"
	"math"

	"github.com/hemmelig/AnisotropIO/internal/dsp"
)

// ShiftToSample checks every trace in st for "off-sample" timing, i.e. a
// start timestamp that is not an integer number of sample periods after
// the whole second, and corrects the traces that have it. The check is
// only guaranteed for sampling rates of 1 Hz and above; lower-rate traces
// proceed best-effort with an advisory on logger.
//
// With interpolate false, only the recorded start timestamp is adjusted,
// accepting a residual sub-sample timing error of at most half a sample
// period. With interpolate true, the waveform is resampled onto the
// on-sample grid with a Lanczos kernel, preserving both timing and
// duration at the cost of extra computation and some edge effects.
//
// A nil logger selects slog.Default(). The input stream is not modified.
func ShiftToSample(st Stream, interpolate bool, logger *slog.Logger) Stream {
	if logger == nil {
		logger = slog.Default()
	}

	out := make(Stream, 0, len(st))
	for _, tr := range st {
		out = append(out, shiftTrace(tr, interpolate, logger))
	}
	return out
}

// ShiftTraceToSample is the single-trace form of [ShiftToSample].
func ShiftTraceToSample(tr Trace, interpolate bool, logger *slog.Logger) Trace {
	if logger == nil {
		logger = slog.Default()
	}
	return shiftTrace(tr, interpolate, logger)
}

func shiftTrace(tr Trace, interpolate bool, logger *slog.Logger) Trace {
	period := tr.Delta()

	// Offset of the start timestamp within the sample grid, anchored to
	// the whole second.
	frac := float64(tr.Start.Nanosecond()) / nanosPerSecond
	offset := math.Mod(frac, period)
	if offset == 0 {
		if tr.SamplingRate < minReliableRate {
			logger.Warn("sampling rate below 1 Hz; off-sample timing may not be detected",
				"trace", tr.ID, "sampling_rate", tr.SamplingRate)
		}
		return tr.Clone()
	}

	// Time shift to the closest on-sample timestamp.
	shift := math.Round(offset*tr.SamplingRate)/tr.SamplingRate - offset

	if !interpolate || tr.Npts() < 2 {
		logger.Info("off-sample trace; shifting timing",
			"trace", tr.ID, "shift_s", shift)
		out := tr.Clone()
		out.Start = out.Start.Add(durationFromSeconds(shift))
		return out
	}

	logger.Info("off-sample trace; interpolating to shift timing",
		"trace", tr.ID, "shift_s", shift)

	// A finite kernel cannot extrapolate past the original extremes, so
	// the interpolation grid is anchored strictly inside the data: for a
	// negative shift the anchor moves forward one period. This yields one
	// sample fewer than the original; a single boundary-replicated sample
	// restores the count and the duration.
	anchor := shift
	if shift < 0 {
		anchor += period
	}

	data := dsp.LanczosResample(tr.Data, anchor*tr.SamplingRate, tr.Npts()-1, lanczosOrder)

	out := tr
	out.Start = tr.Start.Add(durationFromSeconds(shift))
	if shift > 0 {
		data = append(data, data[len(data)-1])
	} else {
		data = append([]float64{data[0]}, data...)
	}
	out.Data = data
	return out
}
