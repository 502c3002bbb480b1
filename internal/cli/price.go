package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/avnikitin/HSEDerivatives/internal/logging"
	"github.com/avnikitin/HSEDerivatives/internal/models"
	"github.com/avnikitin/HSEDerivatives/internal/pricing"
)

// priceResult is the JSON contract of the price command.
type priceResult struct {
	Call       float64 `json:"call"`
	Put        float64 `json:"put"`
	Vol        float64 `json:"vol"`
	Paths      int     `json:"paths"`
	Steps      int     `json:"steps"`
	Seed       int64   `json:"seed"`
	DurationMs int64   `json:"duration_ms"`
}

func newPriceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a European option at a fixed volatility",
		Long: `Run the Monte Carlo pricer once at a fixed volatility and print the
estimated call and put premiums.`,
		Example: `  impliedvol price --time 0.0493 --spot 75.576 --strike 75 --rate 0.08 --vol 0.30
  impliedvol price --time 0.25 --spot 100 --strike 105 --vol 0.2 --paths 50000 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			logger := logging.WithOperation(logging.FromContext(cmd.Context()), "price")

			opt, err := optionFromFlags(cmd)
			if err != nil {
				output.Error("Invalid option parameters: %v", err)
				return err
			}

			vol, _ := cmd.Flags().GetFloat64("vol")
			cfg := pricingConfigFromFlags(cmd)

			start := time.Now()
			model, err := pricing.NewModel(opt, vol, cfg)
			if err != nil {
				logger.Error().Err(err).Msg("Pricing failed")
				output.Error("Pricing failed: %v", err)
				return err
			}
			elapsed := time.Since(start)

			logging.LogPricingRun(logger, vol, model.Call(), model.Put(), cfg.Paths, cfg.Steps, model.Seed(), elapsed)

			if output.IsJSON() {
				return output.JSON(priceResult{
					Call:       model.Call(),
					Put:        model.Put(),
					Vol:        vol,
					Paths:      cfg.Paths,
					Steps:      cfg.Steps,
					Seed:       model.Seed(),
					DurationMs: elapsed.Milliseconds(),
				})
			}

			// With --type set, print just the requested premium, matching
			// the solve command's single-value surface.
			if typeStr, _ := cmd.Flags().GetString("type"); typeStr != "" {
				typ, err := models.ParseOptionType(typeStr)
				if err != nil {
					output.Error("Invalid option type %q (use call or put)", typeStr)
					return err
				}
				premium, err := model.Price(typ)
				if err != nil {
					return err
				}
				output.Printf("%s\n", FormatPremium(premium))
				return nil
			}

			output.Printf("Call: %s\n", FormatPremium(model.Call()))
			output.Printf("Put:  %s\n", FormatPremium(model.Put()))
			return nil
		},
	}

	addOptionFlags(cmd)
	addSimulationFlags(cmd, app)
	cmd.Flags().Float64("vol", 0, "annualized volatility")
	cmd.MarkFlagRequired("time")
	cmd.MarkFlagRequired("spot")
	cmd.MarkFlagRequired("strike")
	cmd.MarkFlagRequired("vol")

	return cmd
}
