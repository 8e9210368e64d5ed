// Package filter provides the low-pass filtering used to anti-alias
// waveform data ahead of decimation.
package filter

import (
	"fmt"
	"math"
)

// Biquad holds the coefficients of a second-order IIR section in direct
// form I, normalized so the leading denominator coefficient is 1:
//
//	y[n] = B0·x[n] + B1·x[n-1] + B2·x[n-2] − A1·y[n-1] − A2·y[n-2]
type Biquad struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// NewLowPass designs a second-order Butterworth low-pass filter with the
// given corner frequency for data sampled at rate (both in Hz), using the
// bilinear transform with corner-frequency prewarping.
func NewLowPass(cutoff, rate float64) (Biquad, error) {
	if rate <= 0 {
		return Biquad{}, fmt.Errorf("invalid sampling rate: %g Hz", rate)
	}
	if cutoff <= 0 || cutoff >= rate/2 {
		return Biquad{}, fmt.Errorf("invalid corner frequency: %g Hz (must be in (0, %g))", cutoff, rate/2)
	}

	w := math.Tan(math.Pi * cutoff / rate)
	norm := 1.0 + math.Sqrt2*w + w*w

	return Biquad{
		B0: w * w / norm,
		B1: 2 * w * w / norm,
		B2: w * w / norm,
		A1: 2 * (w*w - 1) / norm,
		A2: (1 - math.Sqrt2*w + w*w) / norm,
	}, nil
}

// Apply runs the filter forward over data in place, starting from rest.
func (bq Biquad) Apply(data []float64) {
	var x1, x2, y1, y2 float64
	for i, x := range data {
		y := bq.B0*x + bq.B1*x1 + bq.B2*x2 - bq.A1*y1 - bq.A2*y2
		x2, x1 = x1, x
		y2, y1 = y1, y
		data[i] = y
	}
}

// ApplyZeroPhase runs the filter forward and then backward over data in
// place. The two passes cancel phase distortion and square the magnitude
// response, steepening the effective roll-off.
func (bq Biquad) ApplyZeroPhase(data []float64) {
	bq.Apply(data)
	reverse(data)
	bq.Apply(data)
	reverse(data)
}

func reverse(data []float64) {
	for i, j := 0, len(data)-1; i < j; i, j = i+1, j-1 {
		data[i], data[j] = data[j], data[i]
	}
}
