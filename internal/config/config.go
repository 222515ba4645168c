package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/menta2k/treenorm/pkg/processing"
	"github.com/menta2k/treenorm/pkg/types"
)

// Config holds the application configuration
type Config struct {
	Geometry GeometryConfig `yaml:"geometry"`
	Resample string         `yaml:"resample"`
	Log      LogConfig      `yaml:"log"`
}

// GeometryConfig holds the resize target and the crop inset
type GeometryConfig struct {
	Width  int            `yaml:"width"`
	Height int            `yaml:"height"`
	Crop   types.CropRect `yaml:"crop"`
}

// LogConfig holds diagnostics settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Geometry: GeometryConfig{
			Width:  types.CanonicalResolution.Width,
			Height: types.CanonicalResolution.Height,
			Crop:   types.DefaultCrop,
		},
		Resample: "linear",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFromFile loads configuration from a YAML file.
// Keys missing from the file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Geometry.Crop.Validate(c.Resolution()); err != nil {
		return fmt.Errorf("geometry: %w", err)
	}

	if _, err := processing.FilterByName(c.Resample); err != nil {
		return fmt.Errorf("resample: %w", err)
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

// Resolution returns the configured resize target
func (c *Config) Resolution() types.Resolution {
	return types.Resolution{Width: c.Geometry.Width, Height: c.Geometry.Height}
}

// Filter returns the configured resample filter, falling back to linear
func (c *Config) Filter() imaging.ResampleFilter {
	f, err := processing.FilterByName(c.Resample)
	if err != nil {
		return imaging.Linear
	}
	return f
}

// ProcessingConfig converts the file settings into processor geometry
func (c *Config) ProcessingConfig() processing.Config {
	return processing.Config{
		Resolution: c.Resolution(),
		Crop:       c.Geometry.Crop,
		Filter:     c.Filter(),
	}
}

// NewLogger builds a logrus logger from the log settings
func (c *Config) NewLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	if c.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return logger, nil
}
