package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemmelig/AnisotropIO/internal/testutil"
)

func TestNewLowPassValidation(t *testing.T) {
	tests := []struct {
		name   string
		cutoff float64
		rate   float64
	}{
		{"zero rate", 10, 0},
		{"negative rate", 10, -100},
		{"zero cutoff", 0, 100},
		{"negative cutoff", -5, 100},
		{"cutoff at nyquist", 50, 100},
		{"cutoff above nyquist", 75, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLowPass(tt.cutoff, tt.rate)
			require.Error(t, err)
		})
	}
}

func TestLowPassUnityDCGain(t *testing.T) {
	bq, err := NewLowPass(25, 100)
	require.NoError(t, err)

	// At z = 1 the transfer function must evaluate to exactly unit gain.
	gain := (bq.B0 + bq.B1 + bq.B2) / (1 + bq.A1 + bq.A2)
	assert.InDelta(t, 1.0, gain, 1e-12)

	// And a constant input settles to itself once the transient decays.
	data := testutil.DC(1, 2000)
	bq.Apply(data)
	for i := 1000; i < len(data); i++ {
		assert.InDelta(t, 1.0, data[i], 1e-6, "sample %d", i)
	}
}

func TestLowPassStopbandAttenuation(t *testing.T) {
	bq, err := NewLowPass(25, 100)
	require.NoError(t, err)

	// A 45 Hz tone sits well beyond the 25 Hz corner; after the two-pass
	// filter it is reduced to a small fraction of its unit amplitude.
	data := testutil.Sine(45, 100, 4000)
	bq.ApplyZeroPhase(data)
	testutil.AssertNoNaNOrInf(t, data)
	assert.Less(t, testutil.MaxAbs(data[500:3500]), 0.05)
}

func TestLowPassPassbandPreserved(t *testing.T) {
	bq, err := NewLowPass(25, 100)
	require.NoError(t, err)

	want := testutil.Sine(1, 100, 4000)
	data := testutil.Sine(1, 100, 4000)
	bq.ApplyZeroPhase(data)

	// Zero-phase filtering leaves a deep-passband tone unchanged in both
	// amplitude and alignment, away from the edge transients.
	for i := 500; i < 3500; i++ {
		assert.InDelta(t, want[i], data[i], 0.01, "sample %d", i)
	}
}

func TestApplyZeroPhaseIsSymmetric(t *testing.T) {
	bq, err := NewLowPass(25, 100)
	require.NoError(t, err)

	// The two-pass response to a centered impulse is an even function of
	// lag: any asymmetry would mean residual phase distortion.
	data := testutil.Impulse(2000, 4001)
	bq.ApplyZeroPhase(data)
	testutil.AssertSymmetric(t, data, 1e-9)
}
