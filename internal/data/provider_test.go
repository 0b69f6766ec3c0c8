package data

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticProviderBars(t *testing.T) {
	prov := NewSeededSyntheticProvider(11)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	bars, err := prov.GetDailyBars("SPY", from, to)
	require.NoError(t, err)
	require.NotEmpty(t, bars)

	for _, b := range bars {
		assert.NotEqual(t, time.Saturday, b.Date.Weekday())
		assert.NotEqual(t, time.Sunday, b.Date.Weekday())
		assert.Greater(t, b.Close, 0.0)
		assert.GreaterOrEqual(t, b.High, b.Low)
	}
}

func TestSyntheticProviderReproducible(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	a, err := NewSeededSyntheticProvider(5).GetDailyBars("SPY", from, to)
	require.NoError(t, err)
	b, err := NewSeededSyntheticProvider(5).GetDailyBars("SPY", from, to)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestLatestCloseAndCloses(t *testing.T) {
	assert.Equal(t, 0.0, LatestClose(nil))

	bars := []Bar{{Close: 101}, {Close: 102.5}}
	assert.Equal(t, 102.5, LatestClose(bars))
	assert.Equal(t, []float64{101, 102.5}, Closes(bars))
}

func TestAnnualizedVolatility(t *testing.T) {
	// Too short a series falls back to the default.
	assert.Equal(t, 0.30, AnnualizedVolatility([]float64{100}))

	// A constant series has zero volatility.
	assert.Equal(t, 0.0, AnnualizedVolatility([]float64{100, 100, 100, 100}))

	// Alternating moves produce a positive estimate near the known value:
	// log returns alternate between +/-log(1.01), sample sd ~ log(1.01).
	closes := []float64{100}
	for i := 0; i < 40; i++ {
		if i%2 == 0 {
			closes = append(closes, closes[len(closes)-1]*1.01)
		} else {
			closes = append(closes, closes[len(closes)-1]/1.01)
		}
	}
	vol := AnnualizedVolatility(closes)
	assert.Greater(t, vol, 0.0)
	assert.InDelta(t, math.Log(1.01)*math.Sqrt(252), vol, 0.02)
}
