package pricing

import "math"

// Option is a priced option leg: a strike, the premium paid for it, and the
// contract side. Immutable after construction; strategy combinators build
// multi-leg payoffs from it.
type Option struct {
	Strike  float64    `json:"strike"`
	Premium float64    `json:"premium"`
	Type    OptionType `json:"option_type"`
}

// Payoff returns the intrinsic value of the option at the given spot price,
// minus the premium paid. At spot == strike the payoff is -Premium for both
// sides.
func (o Option) Payoff(spot float64) float64 {
	if o.Type == Call {
		return math.Max(spot-o.Strike, 0) - o.Premium
	}
	return math.Max(o.Strike-spot, 0) - o.Premium
}
