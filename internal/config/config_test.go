package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avnikitin/HSEDerivatives/internal/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config rejected: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero paths", func(c *Config) { c.Simulation.Paths = 0 }},
		{"negative steps", func(c *Config) { c.Simulation.Steps = -1 }},
		{"negative workers", func(c *Config) { c.Simulation.Workers = -1 }},
		{"negative seed", func(c *Config) { c.Simulation.Seed = -1 }},
		{"zero min vol", func(c *Config) { c.Solver.MinVol = 0 }},
		{"inverted bracket", func(c *Config) { c.Solver.MaxVol = 0.01 }},
		{"zero tolerance", func(c *Config) { c.Solver.Tolerance = 0 }},
		{"bad percent digits", func(c *Config) { c.Output.PercentDigits = 11 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrConfigInvalid) {
				t.Errorf("error = %v, want ErrConfigInvalid in the chain", err)
			}
		})
	}
}

func TestLoadCreatesTemplate(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if cfg.Simulation.Paths != 10000 {
		t.Errorf("Paths = %d, want default 10000", cfg.Simulation.Paths)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Errorf("template not created: %v", err)
	}

	// Second load reads the template back; values stay at the defaults.
	cfg, err = Load(dir)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if cfg.Solver.MaxVol != 6.0 {
		t.Errorf("MaxVol = %v, want 6.0", cfg.Solver.MaxVol)
	}
}

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("[simulation]\npaths = 2500\nsteps = 40\n\n[solver]\ntolerance = 1e-4\n")
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Simulation.Paths != 2500 {
		t.Errorf("Paths = %d, want 2500", cfg.Simulation.Paths)
	}
	if cfg.Simulation.Steps != 40 {
		t.Errorf("Steps = %d, want 40", cfg.Simulation.Steps)
	}
	if cfg.Solver.Tolerance != 1e-4 {
		t.Errorf("Tolerance = %v, want 1e-4", cfg.Solver.Tolerance)
	}
	// Sections absent from the file keep their defaults.
	if cfg.Solver.MaxVol != 6.0 {
		t.Errorf("MaxVol = %v, want 6.0", cfg.Solver.MaxVol)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("[simulation]\npaths = -10\n")
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), content, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("expected validation error")
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("IMPLIEDVOL_SEED", "424242")
	t.Setenv("IMPLIEDVOL_PATHS", "3000")
	t.Setenv("IMPLIEDVOL_LOG_LEVEL", "debug")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Simulation.Seed != 424242 {
		t.Errorf("Seed = %d, want 424242", cfg.Simulation.Seed)
	}
	if cfg.Simulation.Paths != 3000 {
		t.Errorf("Paths = %d, want 3000", cfg.Simulation.Paths)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestToLogConfig(t *testing.T) {
	lc := LoggingConfig{Level: "warn", Console: true, File: false, MaxSize: 10}.ToLogConfig()
	if lc.Level != "warn" || !lc.Console || lc.File || lc.MaxSize != 10 {
		t.Errorf("unexpected conversion: %+v", lc)
	}
	if lc.MaxBackups <= 0 {
		t.Errorf("MaxBackups should fall back to the default, got %d", lc.MaxBackups)
	}
}
