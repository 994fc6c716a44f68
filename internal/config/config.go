package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config carries the build-wide knobs of the automation layer. The output
// directory is explicit configuration handed to callers, never a hidden
// process-wide constant.
type Config struct {
	OutputDir               string
	HelperPlanePrefix       string
	InterferenceToleranceMM float64
	LogLevel                string
}

// Default returns the documented baseline configuration.
func Default() Config {
	return Config{
		OutputDir:               "out",
		HelperPlanePrefix:       "Helper",
		InterferenceToleranceMM: 0.001,
		LogLevel:                "info",
	}
}

// fileConfig is the cadctl.toml key mapping.
type fileConfig struct {
	OutputDir               string  `toml:"output_dir"`
	HelperPlanePrefix       string  `toml:"helper_plane_prefix"`
	InterferenceToleranceMM float64 `toml:"interference_tolerance_mm"`
	LogLevel                string  `toml:"log_level"`
}

// Load overlays cadctl.toml values onto the defaults; keys absent from the
// file keep their default.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load cadctl config: %w", err)
	}

	if meta.IsDefined("output_dir") {
		cfg.OutputDir = strings.TrimSpace(raw.OutputDir)
	}
	if meta.IsDefined("helper_plane_prefix") {
		cfg.HelperPlanePrefix = strings.TrimSpace(raw.HelperPlanePrefix)
	}
	if meta.IsDefined("interference_tolerance_mm") {
		cfg.InterferenceToleranceMM = raw.InterferenceToleranceMM
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate enforces knob invariants.
func (c Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("%w: missing output_dir", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.HelperPlanePrefix) == "" {
		return fmt.Errorf("%w: missing helper_plane_prefix", ErrInvalidConfig)
	}
	if c.InterferenceToleranceMM <= 0 {
		return fmt.Errorf("%w: interference_tolerance_mm %v is not positive",
			ErrInvalidConfig, c.InterferenceToleranceMM)
	}
	return nil
}

// OutputPath joins a document file name onto the configured output folder.
func (c Config) OutputPath(name string) string {
	return filepath.Join(c.OutputDir, name)
}
