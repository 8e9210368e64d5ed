// Package mfast composes the input files expected by the MFAST
// shear-wave-splitting code: one SAC file per Z/N/E component with event,
// station, orientation and pick-window headers populated.
package mfast

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	anisotropio "github.com/hemmelig/AnisotropIO"
	"github.com/hemmelig/AnisotropIO/sac"
	"github.com/hemmelig/AnisotropIO/station"
)

// meanEarthRadius in metres, used for the spherical distance/azimuth
// approximation.
const meanEarthRadius = 6371009.0

// metresPerKilometre converts the computed epicentral distance to the
// kilometres the SAC dist header expects.
const metresPerKilometre = 1000.0

// Component orientation headers, degrees.
var (
	componentAzimuth     = map[string]float64{"N": 0, "Z": 0, "E": 90}
	componentInclination = map[string]float64{"N": 90, "Z": 0, "E": 90}
)

// MFAST pick-window header defaults.
const (
	defaultT5Window     = 15.0
	defaultPickError    = "1"
	defaultFirstArrival = 0.0
)

// Event holds the hypocentre and origin time written into the SAC event
// headers.
type Event struct {
	ID        string
	Origin    time.Time
	Latitude  float64
	Longitude float64
	Depth     float64 // km
}

// WriteSACFiles writes one SAC file per Z/N/E component of the station's
// traces in st, under outDir/<event>/<station>/, named
// "<event>.<station>.<z|n|e>". Traces are matched to components by the
// trailing letter of their channel identity.
func WriteSACFiles(st anisotropio.Stream, event Event, stn station.Station, outDir string) error {
	dist, az := distAzimuth(event.Latitude, event.Longitude, stn.Latitude, stn.Longitude)

	dir := filepath.Join(outDir, event.ID, stn.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, component := range []string{"Z", "N", "E"} {
		tr, ok := selectComponent(st, component)
		if !ok {
			return fmt.Errorf("no %s component available for station %s (event %s)",
				component, stn.Name, event.ID)
		}

		f := sac.FromTrace(tr)
		f.EventID = event.ID
		f.EventLat = event.Latitude
		f.EventLon = event.Longitude
		f.EventDepth = event.Depth
		f.StationLat = stn.Latitude
		f.StationLon = stn.Longitude
		f.StationElev = stn.Elevation
		f.Distance = dist / metresPerKilometre
		f.Azimuth = az
		f.ComponentAzimuth = componentAzimuth[component]
		f.ComponentInclination = componentInclination[component]
		f.Channel = "HH" + component
		f.OriginTime = event.Origin.Sub(tr.Start).Seconds()
		f.FirstArrival = defaultFirstArrival
		f.T5 = defaultT5Window
		f.KT5 = defaultPickError

		name := fmt.Sprintf("%s.%s.%s", event.ID, stn.Name, strings.ToLower(component))
		if err := sac.Write(filepath.Join(dir, name), f); err != nil {
			return fmt.Errorf("failed to write %s component for station %s: %w",
				component, stn.Name, err)
		}
	}

	return nil
}

// selectComponent returns the first trace whose channel identity ends in
// the given component letter.
func selectComponent(st anisotropio.Stream, component string) (anisotropio.Trace, bool) {
	for _, tr := range st {
		if strings.HasSuffix(tr.ID, component) {
			return tr, true
		}
	}
	return anisotropio.Trace{}, false
}

// distAzimuth returns the great-circle distance in metres and the forward
// azimuth in degrees from point 1 to point 2, on a sphere of mean Earth
// radius.
func distAzimuth(lat1, lon1, lat2, lon2 float64) (dist, azimuth float64) {
	p1 := lat1 * math.Pi / 180
	p2 := lat2 * math.Pi / 180
	dl := (lon2 - lon1) * math.Pi / 180

	sinHalfP := math.Sin((p2 - p1) / 2)
	sinHalfL := math.Sin(dl / 2)
	h := sinHalfP*sinHalfP + math.Cos(p1)*math.Cos(p2)*sinHalfL*sinHalfL
	dist = 2 * meanEarthRadius * math.Asin(math.Sqrt(h))

	y := math.Sin(dl) * math.Cos(p2)
	x := math.Cos(p1)*math.Sin(p2) - math.Sin(p1)*math.Cos(p2)*math.Cos(dl)
	azimuth = math.Atan2(y, x) * 180 / math.Pi
	if azimuth < 0 {
		azimuth += 360
	}
	return dist, azimuth
}
