package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/avnikitin/HSEDerivatives/internal/config"
	"github.com/avnikitin/HSEDerivatives/internal/logging"
	"github.com/avnikitin/HSEDerivatives/pkg/id"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewOutput creates an Output for a command, honoring the [output] config
// section.
func (a *App) NewOutput(cmd *cobra.Command) *Output {
	output := NewOutput(cmd)
	if !a.Config.Output.ColorEnabled {
		output.SetColor(false)
	}
	return output
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "impliedvol",
		Short: "Monte Carlo implied volatility calculator for European options",
		Long: `impliedvol estimates the implied volatility of a European option.

Given an observed market premium and the Black-Scholes-Merton inputs
(time to maturity, spot, strike, risk-free rate, option type), it bisects
over volatility, pricing the option at each trial point with a Monte Carlo
simulation of geometric Brownian motion, until the bracket narrows below
the tolerance.

Use 'impliedvol help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Handle debug flag
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			// Tag every log line of this invocation with a sortable run ID
			// and hand the logger to commands through the command context.
			app.Logger = logging.WithRunID(app.Logger, id.New())
			cmd.SetContext(logging.WithLogger(cmd.Context(), app.Logger))
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/impliedvol)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newSolveCmd(app))
	rootCmd.AddCommand(newPriceCmd(app))
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("impliedvol v%s\n", Version)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Simulation")
	output.Printf("  Paths:    %s\n", FormatCount(int64(cfg.Simulation.Paths)))
	output.Printf("  Steps:    %d\n", cfg.Simulation.Steps)
	output.Printf("  Workers:  %d (0 = one per CPU)\n", cfg.Simulation.Workers)
	output.Printf("  Seed:     %d (0 = entropy)\n", cfg.Simulation.Seed)
	output.Println()

	output.Bold("Solver")
	output.Printf("  Bracket:      [%.2f, %.2f]\n", cfg.Solver.MinVol, cfg.Solver.MaxVol)
	output.Printf("  Tolerance:    %g\n", cfg.Solver.Tolerance)
	output.Printf("  Check Bounds: %v\n", cfg.Solver.CheckBounds)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:    %s\n", cfg.Logging.Level)
	output.Printf("  Console:  %v\n", cfg.Logging.Console)
	output.Printf("  File:     %v\n", cfg.Logging.File)

	return nil
}
