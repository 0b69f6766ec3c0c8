package pricing

import (
	"fmt"
	"math"
)

// ImpliedVolATM solves for the volatility that reproduces the observed
// at-the-money market price (the call/put mid average) using
// Newton-Raphson. Strategy building uses it to estimate volatility when
// only market premiums are known.
func ImpliedVolATM(S, K, T, r, callPrice, putPrice float64) (float64, error) {
	if T <= 0 {
		return 0, fmt.Errorf("%w: time to expiry must be positive", ErrInvalidParams)
	}

	marketPrice := (callPrice + putPrice) / 2

	// Initial guess: 20%
	sigma := 0.20

	const (
		maxIter = 100
		tol     = 1e-6
	)

	for i := 0; i < maxIter; i++ {
		price, err := BlackScholes(BlackScholesParams{
			Rate: r, Underlying: S, Strike: K, Time: T, Volatility: sigma, Type: Call,
		})
		if err != nil {
			return 0, err
		}
		diff := price - marketPrice
		if math.Abs(diff) < tol {
			return sigma, nil
		}

		d1, _ := d1d2(S, K, r, sigma, T)
		vega := S * NormPDF(d1) * math.Sqrt(T)
		if vega < 1e-8 {
			break
		}

		sigma -= diff / vega

		// Guardrails
		if sigma <= 0 {
			sigma = 1e-4
		}
		if sigma > 5 {
			sigma = 5
		}
	}

	return 0, fmt.Errorf("implied vol did not converge")
}

// StrikeFromDelta returns the strike at which a European option has the
// target delta, inverting the Black-Scholes delta with NormInv.
func StrikeFromDelta(S, targetDelta, r, q, sigma, T float64, isCall bool) float64 {
	var d1 float64
	if isCall {
		d1 = NormInv(targetDelta * math.Exp(q*T))
	} else {
		d1 = -NormInv(-targetDelta * math.Exp(q*T))
	}
	return S * math.Exp(-d1*sigma*math.Sqrt(T)+(r-q+0.5*sigma*sigma)*T)
}
