// Package dsp provides the signal conditioning primitives used by the
// waveform rate-harmonization stages: detrending, tapering, stride
// resampling and interpolation.
//
// All functions that condition data in place document that fact; callers
// own the buffers they pass in and are expected to have cloned them at the
// stage boundary.
package dsp

import (
	"math"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/stat"
)

// Detrend removes a least-squares linear trend from data in place.
func Detrend(data []float64) {
	n := len(data)
	if n < 2 {
		return
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}

	alpha, beta := stat.LinearRegression(xs, data, nil, false)
	for i := range data {
		data[i] -= alpha + beta*float64(i)
	}
}

// Demean subtracts the mean from data in place.
func Demean(data []float64) {
	if len(data) == 0 {
		return
	}

	mean := f64.Sum(data) / float64(len(data))
	for i := range data {
		data[i] -= mean
	}
}

// CosineTaper applies a raised-cosine taper to both ends of data in place.
// The taper width at each end is fraction of the series length, clamped to
// half the series so the ramps never overlap.
func CosineTaper(data []float64, fraction float64) {
	n := len(data)
	width := int(float64(n) * fraction)
	if width > n/2 {
		width = n / 2
	}
	if width < 1 {
		return
	}

	for i := 0; i < width; i++ {
		gain := 0.5 * (1.0 - math.Cos(math.Pi*float64(i)/float64(width)))
		data[i] *= gain
		data[n-1-i] *= gain
	}
}

// Downsample retains every factor-th sample of data, starting from the
// first. Trailing samples that do not complete a stride are dropped, so
// the output length is ceil(len(data)/factor).
func Downsample(data []float64, factor int) []float64 {
	out := make([]float64, (len(data)+factor-1)/factor)
	for i := range out {
		out[i] = data[i*factor]
	}
	return out
}

// LinearUpsample raises the nominal rate of data by an integer factor
// using linear interpolation. The original samples appear at stride
// factor ("fenceposts") with factor-1 interpolated points between each
// consecutive pair, giving (len(data)-1)*factor + 1 output samples.
func LinearUpsample(data []float64, factor int) []float64 {
	if len(data) == 0 {
		return []float64{}
	}

	out := make([]float64, (len(data)-1)*factor+1)
	for i, v := range data {
		out[i*factor] = v
	}

	for j := 1; j < factor; j++ {
		wNext := float64(j) / float64(factor)
		wPrev := float64(factor-j) / float64(factor)
		for i := 0; i+1 < len(data); i++ {
			out[i*factor+j] = wNext*data[i+1] + wPrev*data[i]
		}
	}

	return out
}
