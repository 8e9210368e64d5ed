package anisotropio

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/hemmelig/AnisotropIO/internal/testutil"
)

func TestDecimateSampleCount(t *testing.T) {
	tests := []struct {
		name   string
		rate   float64
		target int
		npts   int
	}{
		{"100 to 50", 100, 50, 1000},
		{"100 to 25", 100, 25, 1000},
		{"200 to 50, ragged length", 200, 50, 999},
		{"500 to 100", 500, 100, 2500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Trace{
				ID:           "NZ.WEL.10.HHZ",
				Start:        testStart(),
				SamplingRate: tt.rate,
				Data:         testutil.Sine(1, tt.rate, tt.npts),
			}

			out, err := Decimate(tr, tt.target)
			require.NoError(t, err)

			assert.Equal(t, float64(tt.target), out.SamplingRate)
			assert.Equal(t, tr.Start, out.Start)

			// Sample count tracks floor(duration * target) within one sample.
			want := math.Floor(tr.Duration() * float64(tt.target))
			assert.InDelta(t, want, float64(out.Npts()), 1,
				"npts %d vs floor(duration*rate) %g", out.Npts(), want)

			// Total duration changes by no more than one output period.
			assert.LessOrEqual(t, math.Abs(out.Duration()-tr.Duration()), 1.0/float64(tt.target))
		})
	}
}

func TestDecimateRejectsBadFactor(t *testing.T) {
	tr := Trace{ID: "NZ.WEL.10.HHZ", Start: testStart(), SamplingRate: 100, Data: testutil.DC(1, 100)}

	_, err := Decimate(tr, 40)
	require.ErrorIs(t, err, ErrBadDecimationFactor)
	assert.Contains(t, err.Error(), tr.ID)

	_, err = Decimate(tr, 0)
	require.ErrorIs(t, err, ErrBadDecimationFactor)
}

func TestDecimateRemovesTrend(t *testing.T) {
	tr := Trace{
		ID:           "NZ.WEL.10.HHZ",
		Start:        testStart(),
		SamplingRate: 100,
		Data:         testutil.Ramp(0.5, 3, 1000),
	}

	out, err := Decimate(tr, 50)
	require.NoError(t, err)
	assert.Less(t, testutil.MaxAbs(out.Data), 1e-9,
		"a pure linear trend must be removed before filtering")
}

func TestDecimateAntiAliasAttenuation(t *testing.T) {
	const (
		rate   = 200.0
		target = 50
		npts   = 4000
	)

	// A 90 Hz tone sits far above the 25 Hz target Nyquist; after the
	// anti-alias filter and downsampling, almost nothing of it remains.
	tr := Trace{
		ID:           "NZ.WEL.10.HHZ",
		Start:        testStart(),
		SamplingRate: rate,
		Data:         testutil.Sine(90, rate, npts),
	}

	out, err := Decimate(tr, target)
	require.NoError(t, err)
	testutil.AssertNoNaNOrInf(t, out.Data)
	assert.Less(t, testutil.MaxAbs(out.Data), 0.02,
		"stopband tone must be attenuated before downsampling")

	// No residual spectral peak: every output bin stays far below the
	// input's unit amplitude.
	n := len(out.Data)
	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, out.Data)
	for i, c := range coeffs {
		amplitude := 2 * cmplx.Abs(c) / float64(n)
		assert.Less(t, amplitude, 0.02, "bin %d", i)
	}
}

func TestUpsampleDecimateRoundTrip(t *testing.T) {
	const (
		rate   = 50.0
		target = 50
		factor = 5
		freq   = 2.0
		npts   = 1000
	)

	tr := Trace{
		ID:           "NZ.WEL.10.HHZ",
		Start:        testStart(),
		SamplingRate: rate,
		Data:         testutil.Sine(freq, rate, npts),
	}

	up, err := Upsample(tr, factor, tr.Start, tr.End())
	require.NoError(t, err)
	require.Equal(t, rate*factor, up.SamplingRate)

	down, err := Decimate(up, target)
	require.NoError(t, err)
	require.Equal(t, tr.Start, down.Start)

	// Away from the tapered ends, the round trip reproduces the original
	// within 1% of peak amplitude.
	margin := npts / 10
	for i := margin; i < down.Npts()-margin && i < npts; i++ {
		assert.InDelta(t, tr.Data[i], down.Data[i], 0.01, "sample %d", i)
	}
}
