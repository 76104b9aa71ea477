package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML schema. Pointer fields distinguish "absent"
// from zero values so a file only overrides what it mentions.
type fileConfig struct {
	InputDir   *string  `yaml:"input_dir"`
	OutputDir  *string  `yaml:"output_dir"`
	Extensions []string `yaml:"extensions"`
	Format     *string  `yaml:"format"`
	Lossless   *bool    `yaml:"lossless"`
	Quality    *int     `yaml:"quality"`
	MaxWidth   *int     `yaml:"max_width"`
	Overwrite  *bool    `yaml:"overwrite"`
	DryRun     *bool    `yaml:"dry_run"`
	Strict     *bool    `yaml:"strict"`
	Timeout    *string  `yaml:"timeout"`
	Verbose    *bool    `yaml:"verbose"`
	Color      *string  `yaml:"color"`
	LogFile    *string  `yaml:"log_file"`
	ShowStats  *bool    `yaml:"show_stats"`
}

// LoadFile reads a YAML preset and applies the keys it sets onto cfg.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read config file: %v", ErrConfig, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("%w: parse config file %s: %v", ErrConfig, path, err)
	}
	return fc.apply(cfg)
}

func (fc *fileConfig) apply(cfg *Config) error {
	if fc.InputDir != nil {
		cfg.InputDir = NormalizeDirArg(*fc.InputDir)
	}
	if fc.OutputDir != nil {
		cfg.OutputDir = NormalizeDirArg(*fc.OutputDir)
	}
	if len(fc.Extensions) > 0 {
		cfg.Extensions = fc.Extensions
	}
	if fc.Format != nil {
		f, err := ParseFormat(*fc.Format)
		if err != nil {
			return err
		}
		cfg.TargetFormat = f
	}
	if fc.Lossless != nil {
		cfg.Lossless = *fc.Lossless
	}
	if fc.Quality != nil {
		cfg.Quality = *fc.Quality
	}
	if fc.MaxWidth != nil {
		cfg.MaxWidth = *fc.MaxWidth
	}
	if fc.Overwrite != nil {
		cfg.Overwrite = *fc.Overwrite
	}
	if fc.DryRun != nil {
		cfg.DryRun = *fc.DryRun
	}
	if fc.Strict != nil {
		cfg.StrictMode = *fc.Strict
	}
	if fc.Timeout != nil {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return fmt.Errorf("%w: invalid timeout %q", ErrConfig, *fc.Timeout)
		}
		cfg.FileTimeout = d
	}
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
	if fc.Color != nil {
		cfg.ColorMode = ColorMode(*fc.Color)
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
	if fc.ShowStats != nil {
		cfg.ShowFileStats = *fc.ShowStats
	}
	return nil
}
