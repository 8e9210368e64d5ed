package anisotropio

import (
	"math"
	"time"
)

// Trim clips tr to the closed absolute window [lo, hi] using an as-is,
// non-snapping rule: samples whose timestamps fall outside the window are
// dropped and no new samples are synthesized. Upstream stages guarantee
// sample-exact alignment, so no interpolation is ever needed here.
//
// The returned trace may be empty if no sample falls within the window.
func Trim(tr Trace, lo, hi time.Time) Trace {
	n := tr.Npts()
	out := tr
	out.Data = append([]float64(nil), tr.Data...)
	if n == 0 {
		return out
	}

	first := 0
	if d := lo.Sub(tr.Start).Seconds(); d > 0 {
		first = int(math.Ceil(d*tr.SamplingRate - trimIndexSlop))
	}

	last := n - 1
	if d := hi.Sub(tr.Start).Seconds(); d < tr.Duration() {
		last = int(math.Floor(d*tr.SamplingRate + trimIndexSlop))
	}

	if first < 0 {
		first = 0
	}
	if last > n-1 {
		last = n - 1
	}
	if first > last {
		out.Data = []float64{}
		return out
	}

	out.Start = tr.SampleTime(first)
	out.Data = out.Data[first : last+1]
	return out
}
