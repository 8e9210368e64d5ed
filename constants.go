package anisotropio

import "time"

// Timing constants.
const (
	// trimSlack widens the final trim window on both sides so that samples
	// sitting exactly on a window boundary survive floating-point rounding.
	trimSlack = 10 * time.Microsecond

	// trimIndexSlop absorbs double rounding when converting boundary times
	// to sample indices, in units of samples.
	trimIndexSlop = 1e-6

	// minReliableRate is the sampling rate in Hz below which the off-sample
	// timing check is not guaranteed to identify mis-timed data.
	minReliableRate = 1.0
)

// Signal conditioning constants.
const (
	// taperFraction is the width of the cosine taper applied to each end of
	// a trace before anti-alias filtering, as a fraction of trace length.
	taperFraction = 0.05

	// antialiasCutoffDivisor places the low-pass corner fractionally below
	// the target Nyquist frequency, so that passband-edge ripple cannot
	// fold back into the decimated band.
	antialiasCutoffDivisor = 2.000001

	// lanczosOrder is the windowed-sinc order used when interpolating
	// off-sample traces onto the sample grid.
	lanczosOrder = 20
)

// Conversion constants.
const (
	nanosPerSecond = 1e9
)
