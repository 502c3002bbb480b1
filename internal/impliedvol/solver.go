// Package impliedvol finds the volatility at which the Monte Carlo pricer
// reproduces an observed option premium, using bisection over a fixed
// volatility bracket.
package impliedvol

import (
	"context"

	"github.com/avnikitin/HSEDerivatives/internal/errors"
	"github.com/avnikitin/HSEDerivatives/internal/models"
	"github.com/avnikitin/HSEDerivatives/internal/pricing"
)

// Default bisection bracket and tolerance. The bracket is a domain-derived
// heuristic on plausible annualized volatility, not a computed guarantee of
// containing the root.
const (
	DefaultLowVol    = 0.03
	DefaultHighVol   = 6.0
	DefaultTolerance = 1e-5
)

// Config holds the solver parameters.
type Config struct {
	LowVol    float64
	HighVol   float64
	Tolerance float64

	// CheckBounds prices the bracket endpoints before bisecting and fails
	// with a PremiumRangeError when the observed premium is unattainable.
	// Off by default: the baseline behavior converges silently to a bound.
	CheckBounds bool

	// Pricing configures the per-iteration model construction.
	Pricing pricing.Config

	// Observer, when set, is called once per bisection iteration. It must
	// not alter control flow; it exists for debug logging and tests.
	Observer func(Iteration)
}

// DefaultConfig returns the default solver configuration.
func DefaultConfig() Config {
	return Config{
		LowVol:    DefaultLowVol,
		HighVol:   DefaultHighVol,
		Tolerance: DefaultTolerance,
		Pricing:   pricing.DefaultConfig(),
	}
}

// Validate checks the solver parameters.
func (c Config) Validate() error {
	if c.LowVol <= 0 {
		return errors.NewValidationError("low_vol", c.LowVol, "must be positive")
	}
	if c.HighVol <= c.LowVol {
		return errors.NewValidationError("high_vol", c.HighVol, "must exceed low_vol")
	}
	if c.Tolerance <= 0 {
		return errors.NewValidationError("tolerance", c.Tolerance, "must be positive")
	}
	return c.Pricing.Validate()
}

// Iteration describes one bisection step, as seen before the bracket is
// updated.
type Iteration struct {
	Index   int
	Low     float64
	Mid     float64
	High    float64
	Premium float64
}

// Result is the outcome of a solve.
type Result struct {
	Vol        float64
	Iterations int
	Low        float64
	High       float64
}

// PremiumFunc is the pricing oracle contract: the premium of the requested
// option at a trial volatility.
type PremiumFunc func(vol float64) (float64, error)

// SolveWith bisects over volatility until the bracket narrows below the
// tolerance. A trial premium above the observed one pulls the high bound
// down (premium increases with volatility for vanilla options); below pulls
// the low bound up; an exact match returns the midpoint immediately.
// On width termination the low bound is returned.
func SolveWith(ctx context.Context, premium PremiumFunc, observed float64, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	low, high := cfg.LowVol, cfg.HighVol
	iterations := 0
	for high-low > cfg.Tolerance {
		if err := ctx.Err(); err != nil {
			return Result{Vol: low, Iterations: iterations, Low: low, High: high}, err
		}

		mid := (low + high) / 2
		p, err := premium(mid)
		if err != nil {
			return Result{Vol: low, Iterations: iterations, Low: low, High: high}, err
		}
		iterations++
		if cfg.Observer != nil {
			cfg.Observer(Iteration{Index: iterations, Low: low, Mid: mid, High: high, Premium: p})
		}

		switch {
		case p > observed:
			high = mid
		case p < observed:
			low = mid
		default:
			return Result{Vol: mid, Iterations: iterations, Low: low, High: high}, nil
		}
	}

	return Result{Vol: low, Iterations: iterations, Low: low, High: high}, nil
}

// Solve estimates the implied volatility of a European option from an
// observed premium. One pricing model is constructed per bisection iteration
// and discarded afterwards.
//
// With a non-zero configured seed each iteration's model receives a seed
// derived from the base and the iteration index, so a seeded solve is
// reproducible end to end. With seed 0 every construction reseeds from
// entropy, the baseline behavior.
func Solve(ctx context.Context, opt models.EuropeanOption, typ models.OptionType, observed float64, cfg Config) (Result, error) {
	if err := opt.Validate(); err != nil {
		return Result{}, err
	}
	if !typ.Valid() {
		return Result{}, errors.Wrapf(errors.ErrInvalidOptionType, "solving for %v", typ)
	}
	if observed <= 0 {
		return Result{}, errors.NewValidationError("observed_premium", observed, "must be positive")
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	iteration := 0
	premium := func(vol float64) (float64, error) {
		pcfg := cfg.Pricing
		if pcfg.Seed != 0 {
			pcfg.Seed += int64(iteration)
		}
		iteration++

		model, err := pricing.NewModel(opt, vol, pcfg)
		if err != nil {
			return 0, err
		}
		return model.Price(typ)
	}

	if cfg.CheckBounds {
		minPremium, err := premium(cfg.LowVol)
		if err != nil {
			return Result{}, err
		}
		maxPremium, err := premium(cfg.HighVol)
		if err != nil {
			return Result{}, err
		}
		if observed < minPremium || observed > maxPremium {
			return Result{}, errors.NewPremiumRangeError(observed, minPremium, maxPremium)
		}
	}

	return SolveWith(ctx, premium, observed, cfg)
}
