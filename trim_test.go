package anisotropio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemmelig/AnisotropIO/internal/testutil"
)

func TestTrimInclusiveBounds(t *testing.T) {
	tr := Trace{
		ID:           "NZ.WEL.10.HHZ",
		Start:        testStart(),
		SamplingRate: 100,
		Data:         testutil.Ramp(1, 0, 1001),
	}

	tests := []struct {
		name      string
		lo, hi    time.Time
		wantFirst float64
		wantNpts  int
	}{
		{
			name:      "window wider than trace",
			lo:        tr.Start.Add(-time.Second),
			hi:        tr.End().Add(time.Second),
			wantFirst: 0,
			wantNpts:  1001,
		},
		{
			name:      "bounds exactly on samples are kept",
			lo:        tr.Start.Add(2 * time.Second),
			hi:        tr.Start.Add(8 * time.Second),
			wantFirst: 200,
			wantNpts:  601,
		},
		{
			name:      "off-sample bounds keep only interior samples",
			lo:        tr.Start.Add(2*time.Second + 3*time.Millisecond),
			hi:        tr.Start.Add(8*time.Second - 3*time.Millisecond),
			wantFirst: 201,
			wantNpts:  599,
		},
		{
			name:      "single sample window",
			lo:        tr.Start.Add(5 * time.Second),
			hi:        tr.Start.Add(5 * time.Second),
			wantFirst: 500,
			wantNpts:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Trim(tr, tt.lo, tt.hi)
			require.Equal(t, tt.wantNpts, out.Npts())
			assert.Equal(t, tt.wantFirst, out.Data[0])

			// No synthesis: the first kept sample keeps its timestamp.
			wantStart := tr.SampleTime(int(tt.wantFirst))
			assert.True(t, out.Start.Equal(wantStart), "start %v, want %v", out.Start, wantStart)
		})
	}
}

func TestTrimEmptyResult(t *testing.T) {
	tr := Trace{
		ID:           "NZ.WEL.10.HHZ",
		Start:        testStart(),
		SamplingRate: 100,
		Data:         testutil.DC(1, 100),
	}

	// Window entirely before the trace.
	out := Trim(tr, tr.Start.Add(-2*time.Second), tr.Start.Add(-time.Second))
	assert.Zero(t, out.Npts())

	// Window entirely after the trace.
	out = Trim(tr, tr.End().Add(time.Second), tr.End().Add(2*time.Second))
	assert.Zero(t, out.Npts())

	// Window narrower than a sample period, between two samples.
	out = Trim(tr, tr.Start.Add(3*time.Millisecond), tr.Start.Add(7*time.Millisecond))
	assert.Zero(t, out.Npts())
}

func TestTrimDoesNotMutateInput(t *testing.T) {
	tr := Trace{
		ID:           "NZ.WEL.10.HHZ",
		Start:        testStart(),
		SamplingRate: 100,
		Data:         testutil.Ramp(1, 0, 100),
	}
	want := tr.Clone()

	out := Trim(tr, tr.Start.Add(100*time.Millisecond), tr.Start.Add(500*time.Millisecond))
	for i := range out.Data {
		out.Data[i] = -1
	}

	assert.Equal(t, want.Data, tr.Data)
	assert.True(t, want.Start.Equal(tr.Start))
}

func TestStreamTrimDropsEmptyTraces(t *testing.T) {
	inside := Trace{
		ID:           "NZ.WEL.10.HHZ",
		Start:        testStart(),
		SamplingRate: 100,
		Data:         testutil.DC(1, 1000),
	}
	outside := Trace{
		ID:           "NZ.BFZ.10.HHZ",
		Start:        testStart().Add(time.Hour),
		SamplingRate: 100,
		Data:         testutil.DC(2, 1000),
	}

	st := Stream{inside, outside}
	got := st.Trim(testStart(), testStart().Add(5*time.Second))

	require.Len(t, got, 1)
	assert.Equal(t, "NZ.WEL.10.HHZ", got[0].ID)
	assert.Equal(t, 501, got[0].Npts())
}
