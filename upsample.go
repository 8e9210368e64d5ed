package anisotropio

import (
	"fmt"
	"math"
	"time"

	"github.com/hemmelig/AnisotropIO/internal/dsp"
)

// Upsample raises the sampling rate of tr by an integer factor using
// linear interpolation: the original samples become fenceposts at stride
// factor, with factor-1 interpolated points between each consecutive pair.
//
// Traces read from archives at mixed rates can start or end a sub-sample
// interval inside the requested window [lo, hi]. Where the gap is strictly
// less than one original sample period, the trace is padded with replicated
// boundary samples so that every trace in a harmonized batch covers an
// identical absolute window; the recorded start time moves back
// accordingly. Gaps of a full period or more are left alone, so traces
// floating in the middle of a gappy window are never padded. Any residual
// over-coverage is trimmed to [lo, hi] before returning.
//
// Assumes off-sample timing has already been corrected with
// [ShiftToSample]; otherwise the output may not contain the expected
// number of samples.
func Upsample(tr Trace, factor int, lo, hi time.Time) (Trace, error) {
	if factor < 1 {
		return Trace{}, fmt.Errorf("%w: upfactor %d must be a positive integer", ErrBadUpfactor, factor)
	}
	if tr.Npts() == 0 {
		return tr.Clone(), nil
	}

	delta := tr.Delta()
	upRate := tr.SamplingRate * float64(factor)

	out := tr
	out.Data = dsp.LinearUpsample(tr.Data, factor)
	out.SamplingRate = upRate

	// Pad the start if the trace begins a sub-period inside the window.
	if gap := tr.Start.Sub(lo).Seconds(); gap > 0 && gap < delta {
		pad := int(math.Round(gap * upRate))
		if pad > 0 {
			fill := make([]float64, pad, pad+len(out.Data))
			for i := range fill {
				fill[i] = tr.Data[0]
			}
			out.Data = append(fill, out.Data...)
			out.Start = tr.Start.Add(-durationFromSeconds(float64(pad) / upRate))
		}
	}

	// Ditto for the end of the trace.
	if gap := hi.Sub(tr.End()).Seconds(); gap > 0 && gap < delta {
		pad := int(math.Round(gap * upRate))
		last := tr.Data[len(tr.Data)-1]
		for i := 0; i < pad; i++ {
			out.Data = append(out.Data, last)
		}
	}

	// Discard any over-coverage left from reading at a coarser grid.
	return Trim(out, lo.Add(-trimSlack), hi.Add(trimSlack)), nil
}
