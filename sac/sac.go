// Package sac reads and writes evenly sampled waveform data in the SAC
// binary format (header version 6, little endian), covering the header
// fields needed to prepare shear-wave-splitting inputs: station and event
// coordinates, component orientation, relative pick markers and timing.
//
// Optional header fields follow the SAC convention of a -12345 sentinel
// for unset values; [New] returns a File with every optional field marked
// undefined.
package sac

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	anisotropio "github.com/hemmelig/AnisotropIO"
)

// Header layout constants.
const (
	floatWords  = 70
	intWords    = 40
	charBytes   = 192
	headerBytes = (floatWords+intWords)*4 + charBytes // 632

	wordBytes     = 8  // width of a character header word
	eventNameLen  = 16 // kevnm spans two words
	headerVersion = 6

	iftypeTimeSeries = 1 // ITIME
	iztypeBegin      = 9 // IB: reference time is the begin time
	logicalTrue      = 1
)

// Undefined sentinels for optional header fields.
const (
	Undefined       = -12345.0
	UndefinedInt    = -12345
	undefinedString = "-12345  "
)

// Float header word indices.
const (
	fDelta  = 0
	fDepMin = 1
	fDepMax = 2
	fB      = 5
	fE      = 6
	fO      = 7
	fA      = 8
	fT5     = 15
	fStla   = 31
	fStlo   = 32
	fStel   = 33
	fEvla   = 35
	fEvlo   = 36
	fEvdp   = 38
	fDist   = 50
	fAz     = 51
	fCmpaz  = 57
	fCmpinc = 58
)

// Integer header word indices, relative to the integer block.
const (
	iNzYear = 0
	iNzJday = 1
	iNzHour = 2
	iNzMin  = 3
	iNzSec  = 4
	iNzMsec = 5
	iNvhdr  = 6
	iNpts   = 9
	iIftype = 15
	iIztype = 17
	iLeven  = 35
	iLovrok = 37
	iLcalda = 38
)

// Character header byte offsets, relative to the character block.
const (
	kStnm  = 0
	kEvnm  = 8
	kHole  = 24
	kT5    = 88
	kCmpnm = 160
	kNetwk = 168
)

// ErrNotSAC indicates a file that is not little-endian SAC header
// version 6.
var ErrNotSAC = errors.New("not a little-endian SAC version 6 file")

// File holds the SAC header fields used by this toolkit plus the waveform
// samples.
type File struct {
	// Channel identity codes.
	Network  string // knetwk
	Station  string // kstnm
	Location string // khole
	Channel  string // kcmpnm

	// Station coordinates: degrees, degrees, metres.
	StationLat  float64
	StationLon  float64
	StationElev float64

	// Event metadata: degrees, degrees, kilometres.
	EventID    string // kevnm
	EventLat   float64
	EventLon   float64
	EventDepth float64

	// Distance is the epicentral distance in kilometres; Azimuth the
	// event-to-station azimuth in degrees.
	Distance float64
	Azimuth  float64

	// Component orientation in degrees: azimuth clockwise from north,
	// inclination from vertical.
	ComponentAzimuth     float64
	ComponentInclination float64

	// Relative times in seconds from the reference (begin) time.
	OriginTime   float64 // o
	FirstArrival float64 // a
	T5           float64 // t5 pick marker
	KT5          string  // kt5 marker label

	// Start is the absolute timestamp of the first sample; Delta the
	// sample period in seconds.
	Start time.Time
	Delta float64

	// Data holds the amplitude samples.
	Data []float64
}

// New returns a File with every optional header field marked undefined.
func New() *File {
	return &File{
		StationLat:           Undefined,
		StationLon:           Undefined,
		StationElev:          Undefined,
		EventLat:             Undefined,
		EventLon:             Undefined,
		EventDepth:           Undefined,
		Distance:             Undefined,
		Azimuth:              Undefined,
		ComponentAzimuth:     Undefined,
		ComponentInclination: Undefined,
		OriginTime:           Undefined,
		FirstArrival:         Undefined,
		T5:                   Undefined,
	}
}

// FromTrace builds a File from a trace. A "NET.STA.LOC.CHA" identity is
// split into the corresponding header codes; any other identity is stored
// whole as the station code.
func FromTrace(tr anisotropio.Trace) *File {
	f := New()
	if parts := strings.Split(tr.ID, "."); len(parts) == 4 {
		f.Network, f.Station, f.Location, f.Channel = parts[0], parts[1], parts[2], parts[3]
	} else {
		f.Station = tr.ID
	}
	f.Start = tr.Start
	f.Delta = tr.Delta()
	f.Data = append([]float64(nil), tr.Data...)
	return f
}

// Trace converts the file to an anisotropio.Trace. The channel identity
// is composed from the network, station, location and channel codes.
func (f *File) Trace() anisotropio.Trace {
	return anisotropio.Trace{
		ID:           strings.Join([]string{f.Network, f.Station, f.Location, f.Channel}, "."),
		Start:        f.Start,
		SamplingRate: 1.0 / f.Delta,
		Data:         append([]float64(nil), f.Data...),
	}
}

// Read reads a SAC file from path.
func Read(path string) (*File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SAC file: %w", err)
	}
	defer fd.Close()

	return Decode(bufio.NewReader(fd))
}

// Decode reads a SAC file from r.
func Decode(r io.Reader) (*File, error) {
	var raw [headerBytes]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return nil, fmt.Errorf("failed to read SAC header: %w", err)
	}

	floats := make([]float32, floatWords)
	ints := make([]int32, intWords)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	for i := range ints {
		ints[i] = int32(binary.LittleEndian.Uint32(raw[(floatWords+i)*4:]))
	}
	chars := raw[(floatWords+intWords)*4:]

	if ints[iNvhdr] != headerVersion {
		return nil, fmt.Errorf("%w: header version %d", ErrNotSAC, ints[iNvhdr])
	}
	npts := int(ints[iNpts])
	if npts < 0 {
		return nil, fmt.Errorf("%w: negative sample count %d", ErrNotSAC, npts)
	}

	f := New()
	f.Delta = float64(floats[fDelta])
	f.OriginTime = float64(floats[fO])
	f.FirstArrival = float64(floats[fA])
	f.T5 = float64(floats[fT5])
	f.StationLat = float64(floats[fStla])
	f.StationLon = float64(floats[fStlo])
	f.StationElev = float64(floats[fStel])
	f.EventLat = float64(floats[fEvla])
	f.EventLon = float64(floats[fEvlo])
	f.EventDepth = float64(floats[fEvdp])
	f.Distance = float64(floats[fDist])
	f.Azimuth = float64(floats[fAz])
	f.ComponentAzimuth = float64(floats[fCmpaz])
	f.ComponentInclination = float64(floats[fCmpinc])

	f.Station = decodeString(chars[kStnm : kStnm+wordBytes])
	f.EventID = decodeString(chars[kEvnm : kEvnm+eventNameLen])
	f.Location = decodeString(chars[kHole : kHole+wordBytes])
	f.KT5 = decodeString(chars[kT5 : kT5+wordBytes])
	f.Channel = decodeString(chars[kCmpnm : kCmpnm+wordBytes])
	f.Network = decodeString(chars[kNetwk : kNetwk+wordBytes])

	// Reference time plus the begin offset gives the first sample time.
	ref := time.Date(int(ints[iNzYear]), time.January, 1,
		int(ints[iNzHour]), int(ints[iNzMin]), int(ints[iNzSec]),
		int(ints[iNzMsec])*int(time.Millisecond), time.UTC)
	ref = ref.AddDate(0, 0, int(ints[iNzJday])-1)
	if b := floats[fB]; b != Undefined {
		ref = ref.Add(time.Duration(math.Round(float64(b) * 1e9)))
	}
	f.Start = ref

	f.Data = make([]float64, npts)
	buf := make([]byte, npts*4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("failed to read SAC data section: %w", err)
	}
	for i := range f.Data {
		f.Data[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:])))
	}

	return f, nil
}

// Write writes the file to path, creating or truncating it.
func Write(path string, f *File) error {
	fd, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create SAC file: %w", err)
	}

	w := bufio.NewWriter(fd)
	if err := Encode(w, f); err != nil {
		_ = fd.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = fd.Close()
		return fmt.Errorf("failed to write SAC file: %w", err)
	}
	return fd.Close()
}

// Encode writes the file to w.
func Encode(w io.Writer, f *File) error {
	floats := make([]float32, floatWords)
	ints := make([]int32, intWords)
	chars := make([]byte, charBytes)
	for i := range floats {
		floats[i] = Undefined
	}
	for i := range ints {
		ints[i] = UndefinedInt
	}
	for i := 0; i < charBytes; i += wordBytes {
		copy(chars[i:], undefinedString)
	}

	floats[fDelta] = float32(f.Delta)
	floats[fO] = float32(f.OriginTime)
	floats[fA] = float32(f.FirstArrival)
	floats[fT5] = float32(f.T5)
	floats[fStla] = float32(f.StationLat)
	floats[fStlo] = float32(f.StationLon)
	floats[fStel] = float32(f.StationElev)
	floats[fEvla] = float32(f.EventLat)
	floats[fEvlo] = float32(f.EventLon)
	floats[fEvdp] = float32(f.EventDepth)
	floats[fDist] = float32(f.Distance)
	floats[fAz] = float32(f.Azimuth)
	floats[fCmpaz] = float32(f.ComponentAzimuth)
	floats[fCmpinc] = float32(f.ComponentInclination)

	if len(f.Data) > 0 {
		depMin, depMax := f.Data[0], f.Data[0]
		for _, v := range f.Data {
			depMin = math.Min(depMin, v)
			depMax = math.Max(depMax, v)
		}
		floats[fDepMin] = float32(depMin)
		floats[fDepMax] = float32(depMax)
	}
	floats[fE] = float32(float64(max(len(f.Data)-1, 0)) * f.Delta)

	// Reference time is the begin time, to millisecond resolution; any
	// sub-millisecond remainder is carried in the begin offset.
	start := f.Start.UTC()
	msec := start.Nanosecond() / int(time.Millisecond)
	rem := start.Nanosecond() - msec*int(time.Millisecond)
	ints[iNzYear] = int32(start.Year())
	ints[iNzJday] = int32(start.YearDay())
	ints[iNzHour] = int32(start.Hour())
	ints[iNzMin] = int32(start.Minute())
	ints[iNzSec] = int32(start.Second())
	ints[iNzMsec] = int32(msec)
	floats[fB] = float32(float64(rem) / 1e9)

	ints[iNvhdr] = headerVersion
	ints[iNpts] = int32(len(f.Data))
	ints[iIftype] = iftypeTimeSeries
	ints[iIztype] = iztypeBegin
	ints[iLeven] = logicalTrue
	ints[iLovrok] = logicalTrue
	ints[iLcalda] = logicalTrue

	encodeString(chars[kStnm:], f.Station, wordBytes)
	encodeString(chars[kEvnm:], f.EventID, eventNameLen)
	encodeString(chars[kHole:], f.Location, wordBytes)
	encodeString(chars[kT5:], f.KT5, wordBytes)
	encodeString(chars[kCmpnm:], f.Channel, wordBytes)
	encodeString(chars[kNetwk:], f.Network, wordBytes)

	buf := make([]byte, headerBytes+len(f.Data)*4)
	for i, v := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	for i, v := range ints {
		binary.LittleEndian.PutUint32(buf[(floatWords+i)*4:], uint32(v))
	}
	copy(buf[(floatWords+intWords)*4:], chars)
	for i, v := range f.Data {
		binary.LittleEndian.PutUint32(buf[headerBytes+i*4:], math.Float32bits(float32(v)))
	}

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write SAC file: %w", err)
	}
	return nil
}

// decodeString trims a fixed-width header string, mapping the undefined
// sentinel to empty.
func decodeString(b []byte) string {
	s := strings.TrimRight(string(b), " \x00")
	if s == strings.TrimRight(undefinedString, " ") {
		return ""
	}
	return s
}

// encodeString writes s space-padded into a fixed-width header field,
// keeping the undefined sentinel for empty strings.
func encodeString(dst []byte, s string, width int) {
	if s == "" {
		return // field already carries the sentinel
	}
	if len(s) > width {
		s = s[:width]
	}
	copy(dst[:width], []byte(s+strings.Repeat(" ", width-len(s))))
}
