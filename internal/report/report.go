// Package report writes scenario results to disk as JSON and CSV.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/contactkeval/option-pricer/internal/scenario"
)

// money formats a price with stable 4-decimal rounding for CSV cells.
// float64 formatting drifts on values like 10.45049999; decimal rounding
// keeps report diffs clean across runs.
func money(v float64) string {
	return decimal.NewFromFloat(v).Round(4).String()
}

// WriteJSON writes the full result to quotes.json in outdir.
func WriteJSON(res *scenario.Result, outdir string) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "quotes.json"), b, 0644)
}

// WriteCSV writes one row per quoted strike to quotes.csv in outdir.
func WriteCSV(res *scenario.Result, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "quotes.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	headers := []string{
		"underlying", "option_type", "spot", "strike", "time", "rate", "volatility",
		"analytic", "mc_price", "mc_std_error", "mc_paths",
		"delta", "gamma", "theta", "vega", "rho",
	}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, q := range res.Quotes {
		row := []string{
			res.Underlying,
			string(q.Type),
			money(res.Spot),
			money(q.Strike),
			money(res.Time),
			money(res.Rate),
			money(res.Volatility),
			money(q.Analytic),
			money(q.MonteCarlo.Price),
			money(q.MonteCarlo.StdError),
			fmt.Sprintf("%d", q.MonteCarlo.Paths),
			money(q.Greeks["delta"]),
			money(q.Greeks["gamma"]),
			money(q.Greeks["theta"]),
			money(q.Greeks["vega"]),
			money(q.Greeks["rho"]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
