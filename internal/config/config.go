// Package config loads the tool's YAML configuration file and translates it
// into detection settings and export options.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sonic-skyline/horizon-finder/internal/horizon"
)

// DetectionConfig mirrors horizon.Settings in config-file form.
type DetectionConfig struct {
	LowerThreshold        int    `yaml:"lower_threshold"`
	UpperThreshold        int    `yaml:"upper_threshold"`
	ApertureSize          int    `yaml:"aperture_size"`
	HighPrecisionGradient bool   `yaml:"high_precision_gradient"`
	Algorithm             string `yaml:"algorithm"` // "top-down" (default) or "bottom-up"
	MaxJump               int    `yaml:"max_jump"`
}

// ExportConfig selects which artifacts a detection run writes.
type ExportConfig struct {
	CSV     bool `yaml:"csv"`
	Graph   bool `yaml:"graph"`
	Overlay bool `yaml:"overlay"`

	// OutputDir receives the exported files; empty means the working
	// directory.
	OutputDir string `yaml:"output_dir"`

	// OverlayColor is the polyline color as "#RRGGBB".
	OverlayColor string `yaml:"overlay_color"`

	// OverlayThickness is the polyline thickness in pixels.
	OverlayThickness int `yaml:"overlay_thickness"`
}

// BatchConfig tunes multi-image and frame-series processing.
type BatchConfig struct {
	// Workers caps concurrent detections in batch mode; 0 means one worker
	// per CPU.
	Workers int `yaml:"workers"`

	// SampleStride submits every Nth frame of a series to the detector;
	// values below 1 mean every frame.
	SampleStride int `yaml:"sample_stride"`
}

// Config is the top-level structure of the configuration file.
type Config struct {
	Detection DetectionConfig `yaml:"detection"`
	Export    ExportConfig    `yaml:"export"`
	Batch     BatchConfig     `yaml:"batch"`
}

// Default returns the configuration matching horizon.DefaultSettings with
// CSV export enabled.
func Default() Config {
	s := horizon.DefaultSettings()
	return Config{
		Detection: DetectionConfig{
			LowerThreshold:        s.LowerThreshold,
			UpperThreshold:        s.UpperThreshold,
			ApertureSize:          s.ApertureSize,
			HighPrecisionGradient: s.HighPrecisionGradient,
			Algorithm:             s.Algorithm.String(),
			MaxJump:               s.MaxJump,
		},
		Export: ExportConfig{
			CSV:              true,
			OverlayThickness: 2,
		},
		Batch: BatchConfig{
			SampleStride: 1,
		},
	}
}

// Load reads a YAML configuration file. Fields absent from the file keep
// their defaults, so a partial file only overrides what it names.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config parse %s: %w", path, err)
	}
	return cfg, nil
}

// Settings converts the detection section into validated horizon.Settings.
func (c Config) Settings() (horizon.Settings, error) {
	algo, err := horizon.ParseAlgorithm(c.Detection.Algorithm)
	if err != nil {
		return horizon.Settings{}, err
	}
	s := horizon.Settings{
		LowerThreshold:        c.Detection.LowerThreshold,
		UpperThreshold:        c.Detection.UpperThreshold,
		ApertureSize:          c.Detection.ApertureSize,
		HighPrecisionGradient: c.Detection.HighPrecisionGradient,
		Algorithm:             algo,
		MaxJump:               c.Detection.MaxJump,
	}
	if err := s.Validate(); err != nil {
		return horizon.Settings{}, err
	}
	return s, nil
}
