// Package config provides configuration loading and management for clinkermap.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Thresholds holds the per-element cutoff intensities and the derived
	// cutoffs used by the pixel classifier. Intensities are on the same
	// calibrated scale as the input element maps.
	Thresholds struct {
		// Ca, Si, Al, Fe, S, K, Na, Mg are the eight element cutoffs
		Ca float64 `yaml:"ca"`
		Si float64 `yaml:"si"`
		Al float64 `yaml:"al"`
		Fe float64 `yaml:"fe"`
		S  float64 `yaml:"s"`
		K  float64 `yaml:"k"`
		Na float64 `yaml:"na"`
		Mg float64 `yaml:"mg"`

		// CaSiRatio separates C3S from C2S among calcium silicates
		CaSiRatio float64 `yaml:"caSiRatio"`

		// FreeLime is the higher Ca cutoff for uncombined CaO
		FreeLime float64 `yaml:"freeLime"`

		// Silica is the higher Si cutoff for free quartz
		Silica float64 `yaml:"silica"`

		// Blend marks a blended cement containing supplementary material
		Blend bool `yaml:"blend"`
	} `yaml:"thresholds"`

	// Limits guards against malformed or oversized inputs
	Limits struct {
		// MaxWidth and MaxHeight bound the accepted grid dimensions
		MaxWidth  int `yaml:"maxWidth"`
		MaxHeight int `yaml:"maxHeight"`
	} `yaml:"limits"`

	// Output parameters
	Output struct {
		// SaveIntermediaryResults determines whether to save the phase map
		// after each pipeline stage
		SaveIntermediaryResults bool `yaml:"saveIntermediaryResults"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`

		// StatsLog is the cumulative statistics log appended to on each run
		StatsLog string `yaml:"statsLog"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Default thresholds for an ordinary Portland clinker imaged at
	// 8-bit calibrated intensities
	cfg.Thresholds.Ca = 70.0
	cfg.Thresholds.Si = 40.0
	cfg.Thresholds.Al = 35.0
	cfg.Thresholds.Fe = 40.0
	cfg.Thresholds.S = 45.0
	cfg.Thresholds.K = 35.0
	cfg.Thresholds.Na = 35.0
	cfg.Thresholds.Mg = 40.0
	cfg.Thresholds.CaSiRatio = 2.5
	cfg.Thresholds.FreeLime = 140.0
	cfg.Thresholds.Silica = 110.0
	cfg.Thresholds.Blend = false

	// Set default input limits
	cfg.Limits.MaxWidth = 4096
	cfg.Limits.MaxHeight = 4096

	// Set default output parameters
	cfg.Output.SaveIntermediaryResults = false
	cfg.Output.Verbose = true
	cfg.Output.StatsLog = "clinkermap_stats.log"

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot work with
func (cfg *Config) Validate() error {
	t := &cfg.Thresholds
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"ca", t.Ca}, {"si", t.Si}, {"al", t.Al}, {"fe", t.Fe},
		{"s", t.S}, {"k", t.K}, {"na", t.Na}, {"mg", t.Mg},
		{"caSiRatio", t.CaSiRatio}, {"freeLime", t.FreeLime}, {"silica", t.Silica},
	} {
		if v.value < 0 {
			return fmt.Errorf("threshold %s must be non-negative, got %g", v.name, v.value)
		}
	}
	if cfg.Limits.MaxWidth <= 0 || cfg.Limits.MaxHeight <= 0 {
		return fmt.Errorf("limits must be positive, got %dx%d",
			cfg.Limits.MaxWidth, cfg.Limits.MaxHeight)
	}
	return nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
