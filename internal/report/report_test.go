package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeval/option-pricer/internal/pricing"
	"github.com/contactkeval/option-pricer/internal/scenario"
)

func sampleResult() *scenario.Result {
	return &scenario.Result{
		Underlying: "SPY",
		Spot:       100,
		Volatility: 0.2,
		Rate:       0.05,
		Time:       0.5,
		Quotes: []scenario.Quote{
			{
				Strike:   105,
				Type:     pricing.Call,
				Analytic: 4.195501,
				Greeks: map[pricing.Greek]float64{
					pricing.Delta: 0.45, pricing.Gamma: 0.027,
					pricing.Theta: -5.1, pricing.Vega: 27.8, pricing.Rho: 19.4,
				},
				MonteCarlo: &pricing.MonteCarloResult{
					Price: 4.2012345, StdError: 0.03, Paths: 10000, Steps: 182,
				},
			},
		},
	}
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteJSON(sampleResult(), dir))

	b, err := os.ReadFile(filepath.Join(dir, "quotes.json"))
	require.NoError(t, err)

	var res scenario.Result
	require.NoError(t, json.Unmarshal(b, &res))
	assert.Equal(t, "SPY", res.Underlying)
	require.Len(t, res.Quotes, 1)
	assert.Equal(t, 105.0, res.Quotes[0].Strike)
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteCSV(sampleResult(), dir))

	f, err := os.Open(filepath.Join(dir, "quotes.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "underlying", rows[0][0])
	assert.Equal(t, "SPY", rows[1][0])
	// Money cells round to four decimals.
	assert.Equal(t, "4.1955", rows[1][7])
	assert.Equal(t, "4.2012", rows[1][8])
}
