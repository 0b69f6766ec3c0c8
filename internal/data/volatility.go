package data

import (
	"math"

	"github.com/montanaflynn/stats"
)

// defaultVolatility is used when the series is too short to estimate from.
const defaultVolatility = 0.30

// AnnualizedVolatility estimates annualized volatility as the sample
// standard deviation of daily log returns scaled by sqrt(252) trading days.
func AnnualizedVolatility(closes []float64) float64 {
	if len(closes) < 2 {
		return defaultVolatility
	}

	rets := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		rets = append(rets, math.Log(closes[i]/closes[i-1]))
	}

	sd, err := stats.StandardDeviationSample(rets)
	if err != nil {
		return defaultVolatility
	}
	return sd * math.Sqrt(252.0)
}
