// Package config loads the simulator configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"irtimer/core"
	"irtimer/storage"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the simulator configuration
type Config struct {
	// Mode selected at startup, 0-7
	Mode int `yaml:"mode"`

	// Laps answers the lap prompt when a timer mode is selected without one
	Laps int `yaml:"laps"`

	Calibration CalibrationConfig `yaml:"calibration"`
	Link        LinkConfig        `yaml:"link"`
	Audio       AudioConfig       `yaml:"audio"`
	Trace       TraceConfig       `yaml:"trace"`
	Log         LogConfig         `yaml:"log"`
}

// CalibrationConfig locates the calibration table. Bytes, when given,
// override the file.
type CalibrationConfig struct {
	Path  string `yaml:"path"`
	Bytes []int  `yaml:"bytes"`
}

// LinkConfig is the serial link to a paired unit. An empty device runs
// without one.
type LinkConfig struct {
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`
}

// AudioConfig controls the host speaker
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Frequency  float64 `yaml:"frequency"`
	SampleRate int     `yaml:"sample_rate"`
}

// TraceConfig names the CBOR event trace to record, empty disables recording
type TraceConfig struct {
	Path string `yaml:"path"`
}

// LogConfig sets the log level: debug, info, warn or error
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used without a file
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads, defaults and validates the YAML file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration data
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in missing configuration values
func applyDefaults(cfg *Config) {
	if cfg.Link.Baud == 0 {
		cfg.Link.Baud = 9600
	}
	if cfg.Audio.Frequency == 0 {
		cfg.Audio.Frequency = 2000 // Hz, close to a piezo buzzer
	}
	if cfg.Audio.SampleRate == 0 {
		cfg.Audio.SampleRate = 44100
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Mode < 0 || c.Mode >= core.NumModes {
		return fmt.Errorf("%w: mode %d out of range 0-%d", ErrInvalidConfig, c.Mode, core.NumModes-1)
	}
	if c.Laps < 0 || c.Laps > core.MaxLaps {
		return fmt.Errorf("%w: laps %d out of range 0-%d", ErrInvalidConfig, c.Laps, core.MaxLaps)
	}
	if n := len(c.Calibration.Bytes); n != 0 && n != storage.CalibrationSize {
		return fmt.Errorf("%w: calibration needs %d bytes, got %d", ErrInvalidConfig, storage.CalibrationSize, n)
	}
	for i, b := range c.Calibration.Bytes {
		if b < 0 || b > 255 {
			return fmt.Errorf("%w: calibration byte %d = %d", ErrInvalidConfig, i, b)
		}
	}
	if c.Link.Baud < 0 {
		return fmt.Errorf("%w: baud %d", ErrInvalidConfig, c.Link.Baud)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel converts the configured level name
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidConfig, l.Level)
	}
}

// Storage builds the calibration store: inline bytes, then the file, then the
// factory defaults. The error, if any, says why defaults were used.
func (c *Config) Storage() (*storage.Memory, error) {
	if len(c.Calibration.Bytes) == storage.CalibrationSize {
		var cal storage.Calibration
		for i, b := range c.Calibration.Bytes {
			cal[i] = byte(b)
		}
		return storage.NewMemory(cal), nil
	}
	if c.Calibration.Path != "" {
		return storage.LoadFile(c.Calibration.Path)
	}
	return storage.NewMemory(storage.DefaultCalibration), nil
}
