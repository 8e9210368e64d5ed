package anisotropio

import (
	"fmt"
	"math"

	"github.com/hemmelig/AnisotropIO/internal/dsp"
	"github.com/hemmelig/AnisotropIO/internal/filter"
)

// Decimate lowers the sampling rate of tr to target Hz, which must divide
// the native rate exactly. The data are conditioned before downsampling,
// in an order that matters for correctness:
//
//  1. remove any linear trend,
//  2. remove the mean,
//  3. taper 5% of the series at each end (suppresses filter edge
//     transients),
//  4. low-pass with a zero-phase two-pass Butterworth filter, corner
//     fractionally below the target Nyquist frequency,
//  5. retain every k-th sample, k = native/target, with no further
//     filtering.
//
// Trailing samples that do not complete a stride are dropped: the output
// length is ceil(npts/k), not padded. This truncation is the contract, not
// an accident; consumers that need exact-multiple lengths must trim first.
func Decimate(tr Trace, target int) (Trace, error) {
	if target <= 0 {
		return Trace{}, fmt.Errorf("%w: target rate %d Hz", ErrBadDecimationFactor, target)
	}
	if math.Mod(tr.SamplingRate, float64(target)) != 0 {
		return Trace{}, fmt.Errorf("%w: %g Hz is not an integer multiple of %d Hz (trace %s)",
			ErrBadDecimationFactor, tr.SamplingRate, target, tr.ID)
	}
	factor := int(tr.SamplingRate / float64(target))

	out := tr.Clone()
	dsp.Detrend(out.Data)
	dsp.Demean(out.Data)
	dsp.CosineTaper(out.Data, taperFraction)

	bq, err := filter.NewLowPass(float64(target)/antialiasCutoffDivisor, tr.SamplingRate)
	if err != nil {
		return Trace{}, fmt.Errorf("anti-alias filter design failed (trace %s): %w", tr.ID, err)
	}
	bq.ApplyZeroPhase(out.Data)

	out.Data = dsp.Downsample(out.Data, factor)
	out.SamplingRate = float64(target)
	return out, nil
}
