package pricing

import "math"

// d1d2 computes the intermediate quantities shared by the analytic
// evaluators:
//
//	d1 = (ln(S/K) + (r + sigma^2/2)*T) / (sigma*sqrt(T))
//	d2 = d1 - sigma*sqrt(T)
func d1d2(S, K, r, sigma, T float64) (float64, float64) {
	d1 := (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * math.Sqrt(T))
	return d1, d1 - sigma*math.Sqrt(T)
}

// BlackScholes returns the Black-Scholes price of a European option.
//
// The result is fully deterministic: the same parameters always produce the
// same price, bit for bit.
func BlackScholes(p BlackScholesParams) (float64, error) {
	if err := checkParams(p); err != nil {
		return 0, err
	}

	d1, d2 := d1d2(p.Underlying, p.Strike, p.Rate, p.Volatility, p.Time)
	discount := math.Exp(-p.Rate * p.Time)

	switch p.Type {
	case Call:
		return p.Underlying*NormCDF(d1) - p.Strike*discount*NormCDF(d2), nil
	case Put:
		return p.Strike*discount*NormCDF(-d2) - p.Underlying*NormCDF(-d1), nil
	default:
		// Unreachable after validation; kept for callers that bypass it.
		return 0, ErrInvalidOptionType
	}
}
