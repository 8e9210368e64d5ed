package anisotropio

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"
)

// Errors returned by the harmonization stages.
var (
	// ErrInvalidConfig indicates invalid harmonizer configuration.
	ErrInvalidConfig = errors.New("invalid harmonizer configuration")

	// ErrBadDecimationFactor indicates a native rate that is not an exact
	// integer multiple of the target rate.
	ErrBadDecimationFactor = errors.New("bad decimation factor")

	// ErrBadUpfactor indicates an upfactor that cannot reach an exact
	// integer decimation step to the target rate.
	ErrBadUpfactor = errors.New("unsupported upfactor")

	// ErrUnharmonizableRate indicates a native rate that cannot be
	// reconciled with the target rate under the current settings.
	ErrUnharmonizableRate = errors.New("unharmonizable sampling rate")
)

// Config holds rate harmonization configuration.
type Config struct {
	// TargetRate is the unified output sampling rate in Hz.
	TargetRate int

	// Resample enables upsample-then-decimate conversion for traces whose
	// native rate is not an integer multiple of TargetRate.
	Resample bool

	// Upfactor is the integer factor by which such traces are upsampled
	// before decimation, e.g. 40 Hz data reaches a 50 Hz target with
	// Upfactor 5 (40 x 5 = 200 Hz, decimated by 4).
	Upfactor int

	// Start and End bound the absolute window every harmonized trace
	// covers after the final trim.
	Start time.Time
	End   time.Time

	// Parallel dispatches per-trace work to one goroutine per trace.
	// Output samples are identical to sequential processing.
	Parallel bool

	// Logger receives advisory and per-trace diagnostics. Nil selects
	// slog.Default().
	Logger *slog.Logger
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.TargetRate <= 0 {
		return fmt.Errorf("%w: target rate must be a positive integer, got %d", ErrInvalidConfig, c.TargetRate)
	}
	if c.Resample && c.Upfactor < 1 {
		return fmt.Errorf("%w: resampling requires a positive integer upfactor, got %d", ErrInvalidConfig, c.Upfactor)
	}
	if !c.End.After(c.Start) {
		return fmt.Errorf("%w: window end must be after start", ErrInvalidConfig)
	}
	return nil
}

// Status classifies the result of harmonizing a single trace.
type Status int

const (
	// StatusOK means the trace was harmonized to the target rate.
	StatusOK Status = iota

	// StatusSkipped means the trace's rate cannot be reconciled with the
	// target under the current settings; the trace is excluded from the
	// unified output and processing of the batch continues.
	StatusSkipped

	// StatusFatal means the requested conversion is impossible for this
	// trace, e.g. the configured upfactor cannot reach an exact decimation
	// step. The failure is scoped to the trace, never the batch.
	StatusFatal
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusSkipped:
		return "skipped"
	case StatusFatal:
		return "fatal"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome records the per-trace result of a harmonization batch.
type Outcome struct {
	// ID is the identity of the input trace.
	ID string

	// Status classifies the result.
	Status Status

	// Trace holds the harmonized trace when Status is StatusOK.
	Trace Trace

	// Err carries the reason when Status is not StatusOK.
	Err error
}

// Harmonizer converts batches of traces to a unified sampling rate over a
// shared absolute window. Create one with [NewHarmonizer]; a Harmonizer is
// safe for concurrent use as it holds only read-only configuration.
type Harmonizer struct {
	cfg    Config
	logger *slog.Logger
}

// NewHarmonizer creates a new harmonizer with the given configuration.
func NewHarmonizer(cfg *Config) (*Harmonizer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Harmonizer{cfg: *cfg, logger: logger}, nil
}

// Harmonize converts every trace in st to the target rate and trims the
// surviving traces to the configured window. It returns the unified stream
// together with one [Outcome] per input trace, in input order.
//
// Traces already at the target rate pass through untouched. Rates that are
// an exact integer multiple of the target are decimated directly. When
// resampling is enabled, remaining traces are upsampled by the configured
// factor and then decimated, provided that reaches an exact integer step;
// otherwise the trace fails with [ErrBadUpfactor]. Anything else is
// excluded from the output with [ErrUnharmonizableRate]. A failure never
// aborts the batch: callers needing a complete set must check the
// outcomes for non-OK statuses.
//
// Assumes off-sample timing has been corrected with [ShiftToSample];
// otherwise the resulting traces may not all contain the expected number
// of samples.
func (h *Harmonizer) Harmonize(st Stream) (Stream, []Outcome) {
	outcomes := make([]Outcome, len(st))

	if h.cfg.Parallel && len(st) > 1 {
		var wg sync.WaitGroup
		for i := range st {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				outcomes[i] = h.harmonizeTrace(st[i])
			}(i)
		}
		wg.Wait()
	} else {
		for i := range st {
			outcomes[i] = h.harmonizeTrace(st[i])
		}
	}

	out := make(Stream, 0, len(st))
	for _, oc := range outcomes {
		if oc.Status == StatusOK {
			out = append(out, oc.Trace)
		}
	}

	// Final safety net: all surviving traces are on-sample and at the
	// target rate, so the window is widened by a hair and applied as-is
	// rather than snapped to the nearest sample.
	out = out.Trim(h.cfg.Start.Add(-trimSlack), h.cfg.End.Add(trimSlack))

	return out, outcomes
}

// HarmonizeTrace converts a single trace to the target rate without the
// final collection trim. Most callers want [Harmonizer.Harmonize].
func (h *Harmonizer) HarmonizeTrace(tr Trace) Outcome {
	return h.harmonizeTrace(tr)
}

func (h *Harmonizer) harmonizeTrace(tr Trace) Outcome {
	native := tr.SamplingRate
	target := float64(h.cfg.TargetRate)

	switch {
	case native == target:
		return Outcome{ID: tr.ID, Status: StatusOK, Trace: tr.Clone()}

	case math.Mod(native, target) == 0:
		dec, err := Decimate(tr, h.cfg.TargetRate)
		if err != nil {
			return Outcome{ID: tr.ID, Status: StatusFatal, Err: err}
		}
		return Outcome{ID: tr.ID, Status: StatusOK, Trace: dec}

	case h.cfg.Resample && h.cfg.Upfactor >= 1:
		upRate := native * float64(h.cfg.Upfactor)
		if math.Mod(upRate, target) != 0 {
			err := fmt.Errorf("%w: %g Hz x %d = %g Hz cannot be decimated to %d Hz (trace %s)",
				ErrBadUpfactor, native, h.cfg.Upfactor, upRate, h.cfg.TargetRate, tr.ID)
			h.logger.Error("upfactor cannot reach target rate",
				"trace", tr.ID, "sampling_rate", native, "upfactor", h.cfg.Upfactor, "target_rate", h.cfg.TargetRate)
			return Outcome{ID: tr.ID, Status: StatusFatal, Err: err}
		}

		up, err := Upsample(tr, h.cfg.Upfactor, h.cfg.Start, h.cfg.End)
		if err != nil {
			return Outcome{ID: tr.ID, Status: StatusFatal, Err: err}
		}
		if up.SamplingRate != target {
			up, err = Decimate(up, h.cfg.TargetRate)
			if err != nil {
				return Outcome{ID: tr.ID, Status: StatusFatal, Err: err}
			}
		}
		return Outcome{ID: tr.ID, Status: StatusOK, Trace: up}

	default:
		err := fmt.Errorf("%w: cannot decimate %g Hz to %d Hz (trace %s); enable Resample with a suitable Upfactor",
			ErrUnharmonizableRate, native, h.cfg.TargetRate, tr.ID)
		h.logger.Info("mismatched sampling rates; excluding trace",
			"trace", tr.ID, "sampling_rate", native, "target_rate", h.cfg.TargetRate)
		return Outcome{ID: tr.ID, Status: StatusSkipped, Err: err}
	}
}
