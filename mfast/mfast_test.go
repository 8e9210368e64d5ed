package mfast

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	anisotropio "github.com/hemmelig/AnisotropIO"
	"github.com/hemmelig/AnisotropIO/sac"
	"github.com/hemmelig/AnisotropIO/station"
)

func testEvent() Event {
	return Event{
		ID:        "2023p456789",
		Origin:    time.Date(2023, 6, 12, 3, 14, 57, 0, time.UTC),
		Latitude:  -41.76,
		Longitude: 174.27,
		Depth:     24.5,
	}
}

func testStation() station.Station {
	return station.Station{Name: "WEL", Latitude: -41.284, Longitude: 174.768, Elevation: -138}
}

func testStream() anisotropio.Stream {
	start := time.Date(2023, 6, 12, 3, 15, 0, 0, time.UTC)
	st := make(anisotropio.Stream, 0, 3)
	for _, cha := range []string{"HHZ", "HHN", "HHE"} {
		st = append(st, anisotropio.Trace{
			ID:           "NZ.WEL.10." + cha,
			Start:        start,
			SamplingRate: 50,
			Data:         []float64{0, 1, 0, -1, 0},
		})
	}
	return st
}

func TestWriteSACFiles(t *testing.T) {
	outDir := t.TempDir()
	event, stn := testEvent(), testStation()

	require.NoError(t, WriteSACFiles(testStream(), event, stn, outDir))

	wantInclination := map[string]float64{"z": 0, "n": 90, "e": 90}
	wantAzimuth := map[string]float64{"z": 0, "n": 0, "e": 90}

	for _, comp := range []string{"z", "n", "e"} {
		name := "2023p456789.WEL." + comp
		f, err := sac.Read(filepath.Join(outDir, event.ID, stn.Name, name))
		require.NoError(t, err, "component %s", comp)

		assert.Equal(t, "HH"+map[string]string{"z": "Z", "n": "N", "e": "E"}[comp], f.Channel)
		assert.Equal(t, wantAzimuth[comp], f.ComponentAzimuth, "component %s", comp)
		assert.Equal(t, wantInclination[comp], f.ComponentInclination, "component %s", comp)

		assert.Equal(t, event.ID, f.EventID)
		assert.InDelta(t, event.Latitude, f.EventLat, 1e-4)
		assert.InDelta(t, event.Longitude, f.EventLon, 1e-4)
		assert.InDelta(t, event.Depth, f.EventDepth, 1e-4)
		assert.InDelta(t, stn.Latitude, f.StationLat, 1e-4)
		assert.InDelta(t, stn.Elevation, f.StationElev, 1e-3)

		// The origin precedes the first sample by three seconds.
		assert.InDelta(t, -3.0, f.OriginTime, 1e-5, "component %s", comp)

		// MFAST pick-window defaults.
		assert.InDelta(t, 15.0, f.T5, 1e-6)
		assert.Equal(t, "1", f.KT5)
		assert.Zero(t, f.FirstArrival)

		assert.Greater(t, f.Distance, 0.0)
		assert.InDelta(t, 67, f.Distance, 3, "epicentral distance in km")
	}
}

func TestWriteSACFilesMissingComponent(t *testing.T) {
	st := testStream()[:2] // no E component

	err := WriteSACFiles(st, testEvent(), testStation(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E component")
}

func TestDistAzimuth(t *testing.T) {
	oneDegree := meanEarthRadius * math.Pi / 180

	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantDist               float64
		wantAz                 float64
	}{
		{"due east on the equator", 0, 0, 0, 1, oneDegree, 90},
		{"due north", 0, 0, 1, 0, oneDegree, 0},
		{"due south", 1, 0, 0, 0, oneDegree, 180},
		{"due west on the equator", 0, 1, 0, 0, oneDegree, 270},
		{"coincident points", -41.3, 174.8, -41.3, 174.8, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, az := distAzimuth(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.wantDist, dist, 1e-6)
			assert.InDelta(t, tt.wantAz, az, 1e-9)
		})
	}
}
