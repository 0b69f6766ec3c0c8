package pricing

import "math"

// FuturesParams holds the inputs of the simple-compounding forward value
// calculation.
type FuturesParams struct {
	PresentValue float64 `json:"present_value" validate:"gt=0"`
	Rate         float64 `json:"rate"`
	Time         float64 `json:"time" validate:"gt=0"` // years
}

// Futures returns the value of an investment after Time years at the given
// annual rate, compounded yearly.
func Futures(p FuturesParams) (float64, error) {
	if err := checkParams(p); err != nil {
		return 0, err
	}
	return p.PresentValue * math.Pow(1+p.Rate, p.Time), nil
}
