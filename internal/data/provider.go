// Package data provides market data providers used to build pricing
// parameter bundles from observed prices instead of literals.
//
// Providers chain: a provider may hold a secondary that serves requests the
// primary cannot. The synthetic provider terminates every chain so a run
// always has data.
package data

import "time"

// Bar is a simplified daily OHLC record.
type Bar struct {
	Date  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
	Vol   float64
}

// Provider supplies market data.
type Provider interface {
	// Secondary returns the fallback provider, if any.
	Secondary() Provider

	// GetDailyBars returns daily bars for the underlying over [from, to].
	GetDailyBars(underlying string, from, to time.Time) ([]Bar, error)
}

// LatestClose returns the close of the most recent bar, or zero when the
// series is empty.
func LatestClose(bars []Bar) float64 {
	if len(bars) == 0 {
		return 0
	}
	return bars[len(bars)-1].Close
}

// Closes extracts the close series from bars.
func Closes(bars []Bar) []float64 {
	out := make([]float64, 0, len(bars))
	for _, b := range bars {
		out = append(out, b.Close)
	}
	return out
}
