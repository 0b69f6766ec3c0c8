// Package pricing implements analytic and simulation based pricing of
// European-style options.
//
// Three evaluators share the same parameter vocabulary:
//
//   - BlackScholes: closed-form price
//   - Greeks: price sensitivities from the same d1/d2 quantities
//   - MonteCarlo: geometric Brownian motion path simulation
//
// Every evaluator validates its parameters before computing, so invalid
// inputs surface as errors instead of NaN results.
package pricing

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// OptionType identifies the side of an option contract.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

var (
	// ErrInvalidParams wraps parameter validation failures.
	ErrInvalidParams = errors.New("invalid pricing parameters")

	// ErrInvalidOptionType reports an option type other than call or put.
	// Values usually arrive from JSON configs, so the branch is reachable
	// despite the typed constants.
	ErrInvalidOptionType = errors.New("option type must be call or put")

	// ErrInvalidGreek reports an unrecognized greek selector.
	ErrInvalidGreek = errors.New("unrecognized greek selector")
)

// BlackScholesParams holds the market and contract inputs of the analytic
// evaluator. Rate may be zero or negative; the remaining market inputs must
// be strictly positive for the formula to be defined.
type BlackScholesParams struct {
	Rate       float64    `json:"rate"`                                 // r, risk-free rate
	Underlying float64    `json:"underlying" validate:"gt=0"`           // S, spot price
	Strike     float64    `json:"strike" validate:"gt=0"`               // K
	Time       float64    `json:"time" validate:"gt=0"`                 // T, years to expiry
	Volatility float64    `json:"volatility" validate:"gt=0"`           // sigma, annualized
	Type       OptionType `json:"option_type" validate:"oneof=call put"`
	PaidPrice  float64    `json:"paid_price,omitempty"` // premium paid, carried for P&L reporting
}

// GreeksParams extends BlackScholesParams with an annualized dividend yield.
type GreeksParams struct {
	Rate          float64    `json:"rate"`
	Underlying    float64    `json:"underlying" validate:"gt=0"`
	Strike        float64    `json:"strike" validate:"gt=0"`
	Time          float64    `json:"time" validate:"gt=0"`
	Volatility    float64    `json:"volatility" validate:"gt=0"`
	Type          OptionType `json:"option_type" validate:"oneof=call put"`
	PaidPrice     float64    `json:"paid_price,omitempty"`
	DividendYield float64    `json:"dividend_yield"` // q, fraction of spot per year
}

// MonteCarloParams holds the simulation inputs.
type MonteCarloParams struct {
	Simulations int        `json:"simulations" validate:"gte=1"` // number of independent paths
	Rate        float64    `json:"rate"`
	Underlying  float64    `json:"underlying" validate:"gt=0"`
	Strike      float64    `json:"strike" validate:"gt=0"`
	Time        float64    `json:"time" validate:"gt=0"`
	Volatility  float64    `json:"volatility" validate:"gt=0"`
	Type        OptionType `json:"option_type" validate:"oneof=call put"`
	PaidPrice   float64    `json:"paid_price,omitempty"`

	// Seed makes the simulation reproducible. Zero selects a fresh seed
	// from the operating system entropy source.
	Seed uint64 `json:"seed,omitempty"`
}

// validate is shared across evaluator calls; validator instances are
// concurrency safe and cache struct metadata.
var validate = validator.New()

func checkParams(p any) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}
