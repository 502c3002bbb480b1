// Package config provides configuration management for the implied
// volatility calculator.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"

	"github.com/avnikitin/HSEDerivatives/internal/errors"
	"github.com/avnikitin/HSEDerivatives/internal/logging"
)

// Config holds all application configuration.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Solver     SolverConfig     `mapstructure:"solver"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Output     OutputConfig     `mapstructure:"output"`
}

// SimulationConfig holds Monte Carlo simulation configuration.
type SimulationConfig struct {
	Paths   int   `mapstructure:"paths"`
	Steps   int   `mapstructure:"steps"`
	Workers int   `mapstructure:"workers"` // 0 = one per CPU
	Seed    int64 `mapstructure:"seed"`    // 0 = seed from entropy
}

// SolverConfig holds bisection solver configuration.
type SolverConfig struct {
	MinVol      float64 `mapstructure:"min_vol"`
	MaxVol      float64 `mapstructure:"max_vol"`
	Tolerance   float64 `mapstructure:"tolerance"`
	CheckBounds bool    `mapstructure:"check_bounds"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// OutputConfig holds terminal output configuration.
type OutputConfig struct {
	ColorEnabled  bool `mapstructure:"color_enabled"`
	PercentDigits int  `mapstructure:"percent_digits"`
}

// ToLogConfig converts the logging section into a logging.LogConfig.
func (c LoggingConfig) ToLogConfig() logging.LogConfig {
	cfg := logging.DefaultLogConfig()
	if c.Level != "" {
		cfg.Level = c.Level
	}
	cfg.Console = c.Console
	cfg.File = c.File
	if c.FilePath != "" {
		cfg.FilePath = c.FilePath
	}
	if c.MaxSize > 0 {
		cfg.MaxSize = c.MaxSize
	}
	if c.MaxBackups > 0 {
		cfg.MaxBackups = c.MaxBackups
	}
	if c.MaxAge > 0 {
		cfg.MaxAge = c.MaxAge
	}
	return cfg
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Paths:   10000,
			Steps:   100,
			Workers: 0,
			Seed:    0,
		},
		Solver: SolverConfig{
			MinVol:      0.03,
			MaxVol:      6.0,
			Tolerance:   1e-5,
			CheckBounds: false,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Console:    false,
			File:       true,
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     30,
		},
		Output: OutputConfig{
			ColorEnabled:  true,
			PercentDigits: 2,
		},
	}
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/impliedvol"
	}
	return filepath.Join(home, ".config", "impliedvol")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
// A missing config file is not an error: a commented template is written and
// the built-in defaults are used.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config.toml: %w", err)
		}
		// First run: write a template and continue with defaults.
		if err := createTemplateConfig(configDir); err != nil {
			return nil, fmt.Errorf("creating config template: %w", err)
		}
	} else if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("simulation.paths", cfg.Simulation.Paths)
	v.SetDefault("simulation.steps", cfg.Simulation.Steps)
	v.SetDefault("simulation.workers", cfg.Simulation.Workers)
	v.SetDefault("simulation.seed", cfg.Simulation.Seed)
	v.SetDefault("solver.min_vol", cfg.Solver.MinVol)
	v.SetDefault("solver.max_vol", cfg.Solver.MaxVol)
	v.SetDefault("solver.tolerance", cfg.Solver.Tolerance)
	v.SetDefault("solver.check_bounds", cfg.Solver.CheckBounds)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.console", cfg.Logging.Console)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.max_size", cfg.Logging.MaxSize)
	v.SetDefault("logging.max_backups", cfg.Logging.MaxBackups)
	v.SetDefault("logging.max_age", cfg.Logging.MaxAge)
	v.SetDefault("output.color_enabled", cfg.Output.ColorEnabled)
	v.SetDefault("output.percent_digits", cfg.Output.PercentDigits)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("IMPLIEDVOL_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Simulation.Seed = seed
		}
	}
	if v := os.Getenv("IMPLIEDVOL_PATHS"); v != "" {
		if paths, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.Paths = paths
		}
	}
	if v := os.Getenv("IMPLIEDVOL_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate validates the configuration. All failures wrap ErrConfigInvalid
// with a field-specific message.
func (c *Config) Validate() error {
	if c.Simulation.Paths <= 0 {
		return errors.Wrap(errors.ErrConfigInvalid, "simulation.paths must be positive")
	}
	if c.Simulation.Steps <= 0 {
		return errors.Wrap(errors.ErrConfigInvalid, "simulation.steps must be positive")
	}
	if c.Simulation.Workers < 0 {
		return errors.Wrap(errors.ErrConfigInvalid, "simulation.workers must not be negative")
	}
	if c.Simulation.Seed < 0 {
		return errors.Wrap(errors.ErrConfigInvalid, "simulation.seed must not be negative")
	}
	if c.Solver.MinVol <= 0 {
		return errors.Wrap(errors.ErrConfigInvalid, "solver.min_vol must be positive")
	}
	if c.Solver.MaxVol <= c.Solver.MinVol {
		return errors.Wrap(errors.ErrConfigInvalid, "solver.max_vol must exceed solver.min_vol")
	}
	if c.Solver.Tolerance <= 0 {
		return errors.Wrap(errors.ErrConfigInvalid, "solver.tolerance must be positive")
	}
	if c.Output.PercentDigits < 0 || c.Output.PercentDigits > 10 {
		return errors.Wrap(errors.ErrConfigInvalid, "output.percent_digits must be between 0 and 10")
	}
	return nil
}
