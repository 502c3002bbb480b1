package impliedvol

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: for any increasing linear premium curve with a root inside the
// bracket, bisection recovers the root within the tolerance.

func TestProperty_LinearRootRecovery(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	cfg := DefaultConfig()
	ctx := context.Background()

	properties.Property("bisection recovers the root of a linear curve", prop.ForAll(
		func(slope, intercept, root float64) bool {
			observed := slope*root + intercept
			result, err := SolveWith(ctx, linearPremium(slope, intercept), observed, cfg)
			if err != nil {
				return false
			}
			return math.Abs(result.Vol-root) <= 2*cfg.Tolerance
		},
		gen.Float64Range(0.5, 5.0),
		gen.Float64Range(0, 1.0),
		gen.Float64Range(0.1, 5.0),
	))

	properties.Property("the final bracket always contains the returned volatility", prop.ForAll(
		func(slope, root float64) bool {
			observed := slope * root
			result, err := SolveWith(ctx, linearPremium(slope, 0), observed, cfg)
			if err != nil {
				return false
			}
			return result.Vol >= cfg.LowVol && result.Vol <= cfg.HighVol &&
				result.Low <= result.Vol && result.Vol <= result.High
		},
		gen.Float64Range(0.5, 5.0),
		gen.Float64Range(0.1, 5.0),
	))

	properties.TestingRun(t)
}
