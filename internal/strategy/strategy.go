// Package strategy composes multi-leg option payoffs from priced legs.
//
// Responsibilities:
//   - Classic combinators (spreads, butterfly, strangle, straddle) with
//     strike-ordering preconditions
//   - Leg construction from strike rules such as ATM, ATM:+10, DELTA:0.3,
//     or expressions over previously resolved legs
//
// Errors are typed so callers and tests can detect failure categories
// without string matching.
package strategy

import (
	"errors"
	"fmt"

	"github.com/contactkeval/option-pricer/internal/pricing"
)

var (
	// ErrStrikeOrder reports legs whose strikes violate the shape of the
	// requested strategy.
	ErrStrikeOrder = errors.New("strategy strikes are not in the required order")

	// ErrStrikeMismatch reports a straddle whose legs do not share a strike.
	ErrStrikeMismatch = errors.New("straddle legs must share the same strike")
)

// PutSpread returns the payoff of a long put against a short put at spot.
// The long put strike must be above the short put strike.
func PutSpread(longPut, shortPut pricing.Option, spot float64) (float64, error) {
	if longPut.Strike <= shortPut.Strike {
		return 0, fmt.Errorf("%w: long put strike must exceed short put strike", ErrStrikeOrder)
	}
	return longPut.Payoff(spot) - shortPut.Payoff(spot), nil
}

// CallSpread returns the payoff of a long call against a short call at
// spot. The long call strike must be below the short call strike.
func CallSpread(longCall, shortCall pricing.Option, spot float64) (float64, error) {
	if longCall.Strike >= shortCall.Strike {
		return 0, fmt.Errorf("%w: long call strike must be below short call strike", ErrStrikeOrder)
	}
	return longCall.Payoff(spot) - shortCall.Payoff(spot), nil
}

// Butterfly returns the payoff of a long wing, two short bodies, and a
// second long wing at spot. Strikes must be strictly ascending.
func Butterfly(wing1, body, wing2 pricing.Option, spot float64) (float64, error) {
	if wing1.Strike >= body.Strike || body.Strike >= wing2.Strike {
		return 0, fmt.Errorf("%w: butterfly strikes must ascend", ErrStrikeOrder)
	}
	return wing1.Payoff(spot) - 2*body.Payoff(spot) + wing2.Payoff(spot), nil
}

// Strangle returns the payoff of a long put below a long call at spot.
func Strangle(put, call pricing.Option, spot float64) (float64, error) {
	if put.Strike >= call.Strike {
		return 0, fmt.Errorf("%w: put strike must be below call strike", ErrStrikeOrder)
	}
	return put.Payoff(spot) + call.Payoff(spot), nil
}

// Straddle returns the payoff of a long put and a long call at the same
// strike.
func Straddle(put, call pricing.Option, spot float64) (float64, error) {
	if put.Strike != call.Strike {
		return 0, ErrStrikeMismatch
	}
	return put.Payoff(spot) + call.Payoff(spot), nil
}
