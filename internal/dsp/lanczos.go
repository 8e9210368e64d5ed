package dsp

import (
	"math"

	"github.com/tphakala/simd/f64"
)

// sincZeroThreshold guards the removable singularity of sinc at x = 0.
const sincZeroThreshold = 1e-10

// LanczosKernel evaluates the Lanczos windowed-sinc kernel of order a at x:
// sinc(x)·sinc(x/a) for |x| < a, zero outside.
func LanczosKernel(x float64, a int) float64 {
	ax := math.Abs(x)
	if ax >= float64(a) {
		return 0
	}
	if ax < sincZeroThreshold {
		return 1
	}

	px := math.Pi * x
	return float64(a) * math.Sin(px) * math.Sin(px/float64(a)) / (px * px)
}

// LanczosResample evaluates data at the fractional sample positions
// offset, offset+1, ..., offset+count-1 using a Lanczos kernel of order a.
//
// The kernel spans 2a samples. Where the span lies fully inside the data
// the evaluation is a single dot product; near the edges the kernel is
// truncated at the array bounds, so edge values carry interpolation
// artifacts. Callers that cannot tolerate these must pad beforehand.
func LanczosResample(data []float64, offset float64, count, a int) []float64 {
	out := make([]float64, count)
	weights := make([]float64, 2*a)

	for j := range out {
		pos := offset + float64(j)
		base := int(math.Floor(pos))
		lo := base - a + 1
		hi := base + a

		if lo >= 0 && hi < len(data) {
			for k := range weights {
				weights[k] = LanczosKernel(pos-float64(lo+k), a)
			}
			out[j] = f64.DotProductUnsafe(data[lo:hi+1], weights)
			continue
		}

		// Truncated window at the array edges.
		var acc float64
		for i := max(lo, 0); i <= min(hi, len(data)-1); i++ {
			acc += data[i] * LanczosKernel(pos-float64(i), a)
		}
		out[j] = acc
	}

	return out
}
