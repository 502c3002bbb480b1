package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/avnikitin/HSEDerivatives/internal/impliedvol"
	"github.com/avnikitin/HSEDerivatives/internal/logging"
	"github.com/avnikitin/HSEDerivatives/internal/models"
	"github.com/avnikitin/HSEDerivatives/internal/pricing"
)

// solveResult is the JSON contract of the solve command.
type solveResult struct {
	ImpliedVol float64 `json:"implied_vol"`
	Percent    string  `json:"percent"`
	OptionType string  `json:"option_type"`
	Iterations int     `json:"iterations"`
	Low        float64 `json:"low"`
	High       float64 `json:"high"`
	Seed       int64   `json:"seed"`
	DurationMs int64   `json:"duration_ms"`
}

func newSolveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Estimate implied volatility from an observed premium",
		Long: `Estimate the implied volatility of a European option.

Bisects over volatility within the configured bracket, pricing the option
at every trial point with a fresh Monte Carlo simulation, until the bracket
width drops below the tolerance. Prints the volatility as a percentage.`,
		Example: `  impliedvol solve --time 0.0493 --spot 75.576 --strike 75 --rate 0.08 --type put --premium 1.298
  impliedvol solve --time 0.25 --spot 100 --strike 105 --type call --premium 2.1 --seed 42 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			logger := logging.WithOperation(logging.FromContext(cmd.Context()), "solve")

			opt, err := optionFromFlags(cmd)
			if err != nil {
				output.Error("Invalid option parameters: %v", err)
				return err
			}

			typeStr, _ := cmd.Flags().GetString("type")
			typ, err := models.ParseOptionType(typeStr)
			if err != nil {
				output.Error("Invalid option type %q (use call or put)", typeStr)
				return err
			}

			premium, _ := cmd.Flags().GetFloat64("premium")

			cfg := solverConfigFromFlags(cmd, app)
			cfg.Observer = func(it impliedvol.Iteration) {
				logger.Debug().
					Int("iteration", it.Index).
					Float64("low", it.Low).
					Float64("mid", it.Mid).
					Float64("high", it.High).
					Float64("premium", it.Premium).
					Msg("Bisection step")
			}

			start := time.Now()
			result, err := impliedvol.Solve(cmd.Context(), opt, typ, premium, cfg)
			if err != nil {
				logger.Error().Err(err).Msg("Solve failed")
				output.Error("Solve failed: %v", err)
				return err
			}
			elapsed := time.Since(start)

			logging.LogSolveResult(logger, typ.String(), result.Vol, result.Iterations, elapsed)

			digits := app.Config.Output.PercentDigits
			if output.IsJSON() {
				return output.JSON(solveResult{
					ImpliedVol: result.Vol,
					Percent:    FormatPercent(result.Vol, digits),
					OptionType: typ.String(),
					Iterations: result.Iterations,
					Low:        result.Low,
					High:       result.High,
					Seed:       cfg.Pricing.Seed,
					DurationMs: elapsed.Milliseconds(),
				})
			}

			output.Printf("%s\n", FormatPercent(result.Vol, digits))
			return nil
		},
	}

	addOptionFlags(cmd)
	addSimulationFlags(cmd, app)
	cmd.Flags().Float64("premium", 0, "observed market premium")
	cmd.Flags().Float64("tolerance", app.Config.Solver.Tolerance, "bracket width at which the search stops")
	cmd.Flags().Float64("low-vol", app.Config.Solver.MinVol, "lower volatility bracket bound")
	cmd.Flags().Float64("high-vol", app.Config.Solver.MaxVol, "upper volatility bracket bound")
	cmd.Flags().Bool("check-bounds", app.Config.Solver.CheckBounds, "fail when the premium is outside the attainable range")
	cmd.MarkFlagRequired("time")
	cmd.MarkFlagRequired("spot")
	cmd.MarkFlagRequired("strike")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("premium")

	return cmd
}

// addOptionFlags registers the contract parameter flags shared by solve and
// price.
func addOptionFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("time", 0, "time to maturity in years")
	cmd.Flags().Float64("spot", 0, "spot price of the underlying")
	cmd.Flags().Float64("strike", 0, "strike price")
	cmd.Flags().Float64("rate", 0, "continuously compounded risk-free rate")
	cmd.Flags().String("type", "", "option type: call or put")
}

// addSimulationFlags registers the Monte Carlo flags, defaulted from the
// loaded configuration.
func addSimulationFlags(cmd *cobra.Command, app *App) {
	cmd.Flags().Int("paths", app.Config.Simulation.Paths, "number of simulated price paths")
	cmd.Flags().Int("steps", app.Config.Simulation.Steps, "number of time steps per path")
	cmd.Flags().Int("workers", app.Config.Simulation.Workers, "simulation workers (0 = one per CPU)")
	cmd.Flags().Int64("seed", app.Config.Simulation.Seed, "base random seed (0 = entropy)")
}

func optionFromFlags(cmd *cobra.Command) (models.EuropeanOption, error) {
	timeToExpiry, _ := cmd.Flags().GetFloat64("time")
	spot, _ := cmd.Flags().GetFloat64("spot")
	strike, _ := cmd.Flags().GetFloat64("strike")
	rate, _ := cmd.Flags().GetFloat64("rate")

	opt := models.EuropeanOption{
		TimeToExpiry: timeToExpiry,
		Spot:         spot,
		Strike:       strike,
		Rate:         rate,
	}
	return opt, opt.Validate()
}

func pricingConfigFromFlags(cmd *cobra.Command) pricing.Config {
	paths, _ := cmd.Flags().GetInt("paths")
	steps, _ := cmd.Flags().GetInt("steps")
	workers, _ := cmd.Flags().GetInt("workers")
	seed, _ := cmd.Flags().GetInt64("seed")

	return pricing.Config{
		Paths:   paths,
		Steps:   steps,
		Workers: workers,
		Seed:    seed,
	}
}

func solverConfigFromFlags(cmd *cobra.Command, app *App) impliedvol.Config {
	tolerance, _ := cmd.Flags().GetFloat64("tolerance")
	lowVol, _ := cmd.Flags().GetFloat64("low-vol")
	highVol, _ := cmd.Flags().GetFloat64("high-vol")
	checkBounds, _ := cmd.Flags().GetBool("check-bounds")

	return impliedvol.Config{
		LowVol:      lowVol,
		HighVol:     highVol,
		Tolerance:   tolerance,
		CheckBounds: checkBounds,
		Pricing:     pricingConfigFromFlags(cmd),
	}
}
