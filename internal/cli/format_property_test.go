package cli

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: grouping never changes the digits, only inserts separators.

func TestProperty_FormatCountRoundTrips(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("stripping separators recovers the number", prop.ForAll(
		func(n int64) bool {
			stripped := strings.ReplaceAll(FormatCount(n), ",", "")
			parsed, err := strconv.ParseInt(stripped, 10, 64)
			return err == nil && parsed == n
		},
		gen.Int64(),
	))

	properties.Property("groups between separators have at most three digits", prop.ForAll(
		func(n int64) bool {
			s := strings.TrimPrefix(FormatCount(n), "-")
			for i, group := range strings.Split(s, ",") {
				if len(group) == 0 || len(group) > 3 {
					return false
				}
				if i > 0 && len(group) != 3 {
					return false
				}
			}
			return true
		},
		gen.Int64(),
	))

	properties.TestingRun(t)
}

func TestProperty_FormatPercentShape(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("percent strings end with %% and parse back", prop.ForAll(
		func(fraction float64, digits int) bool {
			s := FormatPercent(fraction, digits)
			if !strings.HasSuffix(s, "%") {
				return false
			}
			_, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
			return err == nil
		},
		gen.Float64Range(0, 10),
		gen.IntRange(0, 8),
	))

	properties.TestingRun(t)
}
