package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// defaultOutputDir receives the harmonized SAC files when the job does
// not name a destination.
const defaultOutputDir = "harmonized"

// jobConfig describes a harmonization run.
type jobConfig struct {
	// TargetRate is the unified output sampling rate in Hz.
	TargetRate int `yaml:"target_rate"`

	// Resample enables upsample-then-decimate conversion, using Upfactor,
	// for traces whose rate is not an integer multiple of TargetRate.
	Resample bool `yaml:"resample"`
	Upfactor int  `yaml:"upfactor"`

	// Window bounds the absolute time window the harmonized traces cover.
	Window struct {
		Start time.Time `yaml:"start"`
		End   time.Time `yaml:"end"`
	} `yaml:"window"`

	// Interpolate corrects off-sample timing by interpolating the waveform
	// rather than adjusting the recorded timestamps.
	Interpolate bool `yaml:"interpolate"`

	// Parallel harmonizes traces concurrently.
	Parallel bool `yaml:"parallel"`

	// InputDir is scanned recursively for .sac files; OutputDir receives
	// the harmonized files.
	InputDir  string `yaml:"input_dir"`
	OutputDir string `yaml:"output_dir"`

	// MFAST optionally composes MFAST input files from the harmonized
	// stream.
	MFAST *mfastConfig `yaml:"mfast"`
}

// mfastConfig describes the optional MFAST composition step.
type mfastConfig struct {
	StationFile string `yaml:"station_file"`

	Event struct {
		ID        string    `yaml:"id"`
		Origin    time.Time `yaml:"origin"`
		Latitude  float64   `yaml:"latitude"`
		Longitude float64   `yaml:"longitude"`
		Depth     float64   `yaml:"depth"`
	} `yaml:"event"`
}

// loadConfig reads, defaults and validates a job configuration.
func loadConfig(path string) (*jobConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg jobConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *jobConfig) applyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = defaultOutputDir
	}
}

func (c *jobConfig) validate() error {
	if c.TargetRate < 1 {
		return errors.New("target_rate must be a positive integer")
	}
	if c.Resample && c.Upfactor < 1 {
		return errors.New("resample requires a positive integer upfactor")
	}
	if !c.Window.End.After(c.Window.Start) {
		return errors.New("window.end must be after window.start")
	}
	if c.InputDir == "" {
		return errors.New("input_dir is required")
	}
	if c.MFAST != nil {
		if c.MFAST.StationFile == "" {
			return errors.New("mfast.station_file is required")
		}
		if c.MFAST.Event.ID == "" {
			return errors.New("mfast.event.id is required")
		}
	}
	return nil
}
