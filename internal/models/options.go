// Package models defines the option contract types shared by the pricing
// engine and the implied volatility solver.
package models

import (
	"fmt"
	"math"
	"strings"

	"github.com/avnikitin/HSEDerivatives/internal/errors"
)

// OptionType identifies the side of a vanilla European option.
type OptionType int

const (
	// Call is the right to buy the underlying at the strike.
	Call OptionType = iota
	// Put is the right to sell the underlying at the strike.
	Put
)

// String returns the lowercase name of the option type.
func (t OptionType) String() string {
	switch t {
	case Call:
		return "call"
	case Put:
		return "put"
	default:
		return fmt.Sprintf("OptionType(%d)", int(t))
	}
}

// Valid reports whether t is one of the two defined variants.
func (t OptionType) Valid() bool {
	return t == Call || t == Put
}

// ParseOptionType parses an option type tag. It accepts "call"/"c" and
// "put"/"p" case-insensitively.
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	default:
		return 0, errors.Wrapf(errors.ErrInvalidOptionType, "parsing %q", s)
	}
}

// Payoff returns the settlement value of the option at the given underlying
// price: max(price−strike, 0) for calls, max(strike−price, 0) for puts.
func (t OptionType) Payoff(price, strike float64) float64 {
	switch t {
	case Call:
		return math.Max(price-strike, 0)
	case Put:
		return math.Max(strike-price, 0)
	default:
		// Unreachable through the public surface; ParseOptionType is the
		// only way user input becomes an OptionType.
		panic(fmt.Sprintf("payoff: %v", t))
	}
}

// EuropeanOption holds the contract and market parameters of a European
// option. Immutable once a pricing run starts.
type EuropeanOption struct {
	TimeToExpiry float64 // years
	Spot         float64
	Strike       float64
	Rate         float64 // continuously compounded risk-free rate
}

// Validate checks that the economic inputs are usable. The rate may be any
// real number; negative rates are economically possible.
func (o EuropeanOption) Validate() error {
	if o.TimeToExpiry <= 0 {
		return errors.NewValidationError("time_to_expiry", o.TimeToExpiry, "must be positive")
	}
	if o.Spot <= 0 {
		return errors.NewValidationError("spot", o.Spot, "must be positive")
	}
	if o.Strike <= 0 {
		return errors.NewValidationError("strike", o.Strike, "must be positive")
	}
	return nil
}
