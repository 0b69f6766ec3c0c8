package data

import (
	"math"
	"time"

	"github.com/contactkeval/option-pricer/internal/random"
)

// synthDataProvider generates random-walk daily bars. It terminates
// provider chains so a pricing run never fails for lack of data.
type synthDataProvider struct {
	secondary Provider
	seed      uint64
}

// NewSyntheticProvider returns a provider producing entropy-seeded
// random-walk bars.
func NewSyntheticProvider() Provider {
	return &synthDataProvider{seed: random.EntropySeed()}
}

// NewSeededSyntheticProvider is NewSyntheticProvider with a fixed seed for
// reproducible series.
func NewSeededSyntheticProvider(seed uint64) Provider {
	return &synthDataProvider{seed: seed}
}

func (synthDataProv *synthDataProvider) Secondary() Provider {
	return synthDataProv.secondary
}

func (synthDataProv *synthDataProvider) GetDailyBars(underlying string, from, to time.Time) ([]Bar, error) {
	levels := random.NewSeeded(100.0, 300.0, synthDataProv.seed)
	moves := random.NewSeeded(-1.0, 1.0, synthDataProv.seed+1)

	price := levels.Value()
	var out []Bar
	cur := from
	for !cur.After(to) {
		if cur.Weekday() != time.Saturday && cur.Weekday() != time.Sunday {
			delta := moves.Value() * 0.01 * price
			open := price
			close := price + delta
			high := math.Max(open, close) + math.Abs(moves.Value()*0.3)
			low := math.Min(open, close) - math.Abs(moves.Value()*0.3)
			out = append(out, Bar{
				Date: cur, Open: open, High: high, Low: low, Close: close,
				Vol: 1000 + 5000*math.Abs(moves.Value()),
			})
			price = close
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return out, nil
}
