package pricing

import "math"

// Greek selects which sensitivity the Greeks evaluator computes.
type Greek string

const (
	Delta Greek = "delta" // price change per unit change in the underlying
	Gamma Greek = "gamma" // delta change per unit change in the underlying
	Theta Greek = "theta" // price decay as time passes
	Vega  Greek = "vega"  // price change per unit change in volatility
	Rho   Greek = "rho"   // price change per unit change in the interest rate
)

// AllGreeks lists every selector, in the conventional reporting order.
var AllGreeks = []Greek{Delta, Gamma, Theta, Vega, Rho}

// Greeks returns the selected sensitivity of a European option priced under
// Black-Scholes with a continuous dividend yield. One call yields one
// scalar; use AllGreeks to sweep the full set.
func Greeks(p GreeksParams, greek Greek) (float64, error) {
	if err := checkParams(p); err != nil {
		return 0, err
	}

	d1, d2 := d1d2(p.Underlying, p.Strike, p.Rate, p.Volatility, p.Time)
	sqrtT := math.Sqrt(p.Time)

	// Present value of one unit at expiry, discounted at the risk-free
	// rate and at the dividend yield respectively.
	discount := math.Exp(-p.Rate * p.Time)
	divDiscount := math.Exp(-p.DividendYield * p.Time)

	switch greek {
	case Delta:
		if p.Type == Call {
			return divDiscount * NormCDF(d1), nil
		}
		return divDiscount * (NormCDF(d1) - 1), nil

	case Gamma:
		return divDiscount * NormPDF(d1) / (p.Underlying * p.Volatility * sqrtT), nil

	case Theta:
		part1 := -(p.Underlying * p.Volatility * divDiscount * NormPDF(d1)) / (2 * sqrtT)
		var part2 float64
		if p.Type == Call {
			part2 = -p.Rate*p.Strike*discount*NormCDF(d2) +
				p.DividendYield*p.Underlying*divDiscount*NormCDF(d1)
		} else {
			part2 = p.Rate*p.Strike*discount*NormCDF(-d2) -
				p.DividendYield*p.Underlying*divDiscount*NormCDF(-d1)
		}
		return part1 + part2, nil

	case Vega:
		return p.Underlying * divDiscount * NormPDF(d1) * sqrtT, nil

	case Rho:
		if p.Type == Call {
			return p.Strike * p.Time * discount * NormCDF(d2), nil
		}
		return -p.Strike * p.Time * discount * NormCDF(-d2), nil

	default:
		return 0, ErrInvalidGreek
	}
}
