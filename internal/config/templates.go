package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Implied Volatility Calculator Configuration

[simulation]
# Number of independent Monte Carlo price paths
paths = 10000
# Number of time steps per path
steps = 100
# Worker goroutines for the simulation (0 = one per CPU)
workers = 0
# Base random seed (0 = reseed from system entropy on every run)
seed = 0

[solver]
# Bisection bracket on annualized volatility
min_vol = 0.03
max_vol = 6.0
# Bracket width at which the search terminates
tolerance = 1e-5
# Fail with an error when the observed premium is outside the
# attainable range instead of converging to a bracket bound
check_bounds = false

[logging]
# Log level: debug, info, warn, error
level = "info"
# Log to the terminal (stderr)
console = false
# Log to a rotating file under the config directory
file = true
# Rotation: max file size (MB), retained backups, retention (days)
max_size = 100
max_backups = 7
max_age = 30

[output]
# Enable colored output
color_enabled = true
# Decimal digits when printing volatility percentages
percent_digits = 2
`

// createTemplateConfig writes a commented config.toml template.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil // Already exists
	}

	return os.WriteFile(path, []byte(configTemplate), 0644)
}
