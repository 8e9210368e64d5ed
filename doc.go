// Package anisotropio harmonizes seismic waveform data onto a unified
// sampling rate and timing grid, so that downstream shear-wave-splitting
// analysis receives sample-aligned traces that span an identical absolute
// time window.
//
// Waveform archives routinely mix instruments recording at different rates
// (40, 50, 100 Hz, ...) and with start timestamps that do not fall exactly
// on the sample grid. This package provides the four transforms needed to
// reconcile them, plus an orchestrator that applies them per trace:
//
//   - [ShiftToSample]: detects "off-sample" start timestamps and corrects
//     them, either by adjusting the recorded timing or by interpolating the
//     waveform onto the on-sample grid.
//   - [Decimate]: lowers the sampling rate by an exact integer factor, with
//     detrending, tapering and zero-phase anti-alias filtering first.
//   - [Upsample]: raises the sampling rate by an exact integer factor using
//     linear interpolation, padding trace boundaries so every trace in a
//     batch covers the same absolute window.
//   - [Trim]: clips a trace to an explicit absolute window without snapping
//     or synthesizing samples.
//
// # Quick Start
//
// For a batch of traces read at mixed rates:
//
//	st = anisotropio.ShiftToSample(st, false, nil)
//
//	h, err := anisotropio.NewHarmonizer(&anisotropio.Config{
//	    TargetRate: 50,
//	    Resample:   true,
//	    Upfactor:   5, // e.g. 40 Hz x 5 = 200 Hz, decimates to 50 Hz
//	    Start:      windowStart,
//	    End:        windowEnd,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	unified, outcomes := h.Harmonize(st)
//
// Every trace either decimates directly (when its rate is an integer
// multiple of the target), upsamples and then decimates (when Resample is
// enabled and the configured Upfactor reaches an exact decimation step), or
// is excluded from the unified output. [Harmonizer.Harmonize] never aborts a
// batch because of one bad trace; callers that require a complete set must
// inspect the returned [Outcome] values.
//
// # Value Semantics
//
// Every transform consumes an input [Trace] and produces a new one; inputs
// are never mutated. Because traces are processed independently with no
// shared mutable state, batches may be harmonized in parallel
// (Config.Parallel) with results identical to sequential processing.
//
// # Diagnostics
//
// Stages report advisory and per-trace diagnostic conditions through an
// injected *slog.Logger rather than process-global logging state; a nil
// logger selects slog.Default(). Fatal per-trace conditions are returned as
// errors, scoped to the offending trace.
//
// Supporting packages handle the surrounding workflow: sac reads and writes
// SAC waveform files, station reads station tables, and mfast composes the
// input files expected by the MFAST shear-wave-splitting code.
package anisotropio
