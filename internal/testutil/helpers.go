// Package testutil provides reusable helpers for waveform tests: synthetic
// signal generators and slice assertions.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance   = 1e-10
	AmplitudeTolerance = 1e-2
)

// Sine generates n samples of a sine wave of the given frequency and unit
// amplitude at the given sampling rate.
func Sine(freq, rate float64, n int) []float64 {
	out := make([]float64, n)
	omega := 2 * math.Pi * freq / rate
	for i := range out {
		out[i] = math.Sin(omega * float64(i))
	}
	return out
}

// DC generates n samples at a constant level.
func DC(level float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = level
	}
	return out
}

// Ramp generates n samples of the line intercept + slope*i.
func Ramp(slope, intercept float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = intercept + slope*float64(i)
	}
	return out
}

// Impulse generates n samples that are zero except for a unit spike at
// position at.
func Impulse(at, n int) []float64 {
	out := make([]float64, n)
	out[at] = 1
	return out
}

// MaxAbs returns the largest absolute value in s, or zero for an empty
// slice.
func MaxAbs(s []float64) float64 {
	var peak float64
	for _, v := range s {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertMaxAbsDiff verifies that corresponding elements of want and got
// differ by no more than tolerance.
func AssertMaxAbsDiff(t *testing.T, want, got []float64, tolerance float64) bool {
	t.Helper()
	if !assert.Equal(t, len(want), len(got), "length mismatch") {
		return false
	}
	for i := range want {
		if diff := math.Abs(want[i] - got[i]); diff > tolerance {
			return assert.Fail(t, "values differ",
				"index %d: want %g, got %g (diff %g > tolerance %g)",
				i, want[i], got[i], diff, tolerance)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [minVal, maxVal].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%g is outside range [%g, %g]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertSymmetric verifies that a slice is symmetric (s[i] == s[n-1-i]).
func AssertSymmetric(t *testing.T, s []float64, tolerance float64) bool {
	t.Helper()
	n := len(s)
	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		if !assert.InDelta(t, s[i], s[j], tolerance,
			"slice not symmetric at i=%d: s[%d]=%g != s[%d]=%g", i, i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}
