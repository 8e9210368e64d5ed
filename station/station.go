// Package station reads station tables for seismic processing workflows.
//
// The station file is a CSV with a required, case-sensitive header row
// containing (in any order) Latitude, Longitude, Elevation and Name.
// Elevation is given positive upwards in the file and negated on read, so
// downstream depth arithmetic shares a common positive-down convention.
package station

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ErrMissingHeader indicates a station file missing one of the required
// header columns.
var ErrMissingHeader = errors.New("station file header missing required column")

// Station describes a recording site.
type Station struct {
	Name      string
	Latitude  float64
	Longitude float64
	Elevation float64
}

// ReadFile reads a station table from path.
func ReadFile(path string) ([]Station, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open station file: %w", err)
	}
	defer fd.Close()

	return Read(fd)
}

// Read reads a station table from r.
func Read(r io.Reader) ([]Station, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read station file header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{"Latitude", "Longitude", "Elevation", "Name"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingHeader, required)
		}
	}

	var stations []Station
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read station file: %w", err)
		}

		stn := Station{Name: record[cols["Name"]]}
		if stn.Latitude, err = strconv.ParseFloat(record[cols["Latitude"]], 64); err != nil {
			return nil, fmt.Errorf("station %q: bad latitude: %w", stn.Name, err)
		}
		if stn.Longitude, err = strconv.ParseFloat(record[cols["Longitude"]], 64); err != nil {
			return nil, fmt.Errorf("station %q: bad longitude: %w", stn.Name, err)
		}
		elev, err := strconv.ParseFloat(record[cols["Elevation"]], 64)
		if err != nil {
			return nil, fmt.Errorf("station %q: bad elevation: %w", stn.Name, err)
		}
		stn.Elevation = -elev

		stations = append(stations, stn)
	}

	return stations, nil
}

// Find returns the station with the given name.
func Find(stations []Station, name string) (Station, bool) {
	for _, stn := range stations {
		if stn.Name == name {
			return stn, true
		}
	}
	return Station{}, false
}
