// Command harmonize unifies a directory of SAC waveform files onto a
// single sampling rate and absolute time window, ready for shear-wave-
// splitting analysis. Off-sample timing is corrected first, then each
// trace is decimated or resampled to the target rate, and the surviving
// traces are trimmed to the configured window and written back out as SAC
// files. Optionally, the harmonized stream is composed into MFAST input
// files.
//
// Usage:
//
//	harmonize -config job.yaml
//	harmonize -config job.yaml -v
//
// Example job configuration:
//
//	target_rate: 50
//	resample: true
//	upfactor: 5
//	window:
//	  start: 2023-06-12T03:15:00Z
//	  end: 2023-06-12T03:16:00Z
//	input_dir: raw/
//	output_dir: harmonized/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	anisotropio "github.com/hemmelig/AnisotropIO"
	"github.com/hemmelig/AnisotropIO/mfast"
	"github.com/hemmelig/AnisotropIO/sac"
	"github.com/hemmelig/AnisotropIO/station"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to YAML job configuration")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	if *configPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -config job.yaml [-v]\n\n", os.Args[0])
		flag.PrintDefaults()
		return errors.New("missing -config")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With("run_id", uuid.NewString())

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	st, err := readTraces(cfg.InputDir)
	if err != nil {
		return err
	}
	if len(st) == 0 {
		return fmt.Errorf("no SAC files found under %s", cfg.InputDir)
	}
	logger.Info("read waveform data", "traces", len(st), "dir", cfg.InputDir)

	st = anisotropio.ShiftToSample(st, cfg.Interpolate, logger)

	h, err := anisotropio.NewHarmonizer(&anisotropio.Config{
		TargetRate: cfg.TargetRate,
		Resample:   cfg.Resample,
		Upfactor:   cfg.Upfactor,
		Start:      cfg.Window.Start,
		End:        cfg.Window.End,
		Parallel:   cfg.Parallel,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	unified, outcomes := h.Harmonize(st)
	for _, oc := range outcomes {
		switch oc.Status {
		case anisotropio.StatusOK:
			logger.Debug("trace harmonized", "trace", oc.ID)
		case anisotropio.StatusSkipped:
			logger.Warn("trace excluded from unified output", "trace", oc.ID, "reason", oc.Err)
		case anisotropio.StatusFatal:
			logger.Error("trace failed", "trace", oc.ID, "reason", oc.Err)
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, tr := range unified {
		name := strings.ReplaceAll(tr.ID, string(os.PathSeparator), "_") + ".sac"
		if err := sac.Write(filepath.Join(cfg.OutputDir, name), sac.FromTrace(tr)); err != nil {
			return err
		}
	}
	logger.Info("wrote harmonized traces", "count", len(unified), "dir", cfg.OutputDir)

	if cfg.MFAST != nil {
		return composeMFAST(cfg, unified, logger)
	}
	return nil
}

// readTraces loads every .sac file under dir into a stream.
func readTraces(dir string) (anisotropio.Stream, error) {
	var st anisotropio.Stream
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(path), ".sac") {
			return nil
		}

		f, err := sac.Read(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		st = append(st, f.Trace())
		return nil
	})
	return st, err
}

// composeMFAST writes MFAST input files for every configured station that
// has harmonized data.
func composeMFAST(cfg *jobConfig, st anisotropio.Stream, logger *slog.Logger) error {
	stations, err := station.ReadFile(cfg.MFAST.StationFile)
	if err != nil {
		return err
	}

	event := mfast.Event{
		ID:        cfg.MFAST.Event.ID,
		Origin:    cfg.MFAST.Event.Origin,
		Latitude:  cfg.MFAST.Event.Latitude,
		Longitude: cfg.MFAST.Event.Longitude,
		Depth:     cfg.MFAST.Event.Depth,
	}

	for _, stn := range stations {
		sub := selectStation(st, stn.Name)
		if len(sub) == 0 {
			logger.Warn("no harmonized data for station", "station", stn.Name)
			continue
		}
		if err := mfast.WriteSACFiles(sub, event, stn, cfg.OutputDir); err != nil {
			logger.Warn("MFAST composition failed", "station", stn.Name, "error", err)
			continue
		}
		logger.Info("wrote MFAST files", "station", stn.Name, "event", event.ID)
	}
	return nil
}

// selectStation returns the traces whose "NET.STA.LOC.CHA" identity names
// the given station.
func selectStation(st anisotropio.Stream, name string) anisotropio.Stream {
	var out anisotropio.Stream
	for _, tr := range st {
		parts := strings.Split(tr.ID, ".")
		if len(parts) >= 2 && parts[1] == name {
			out = append(out, tr)
		}
	}
	return out
}
