// Package scenario runs pricing jobs: it resolves market inputs from a
// provider or from config literals, evaluates the analytic, greek, and
// Monte Carlo engines for each requested strike, and builds strategy payoff
// grids.
package scenario

import (
	"fmt"
	"time"

	"github.com/contactkeval/option-pricer/internal/data"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
	"github.com/contactkeval/option-pricer/internal/strategy"
)

// Config describes one pricing job. Zero-valued market fields resolve from
// the data provider at run time.
type Config struct {
	Underlying    string  `json:"underlying,omitempty"`     // e.g. "SPY"
	Rate          float64 `json:"rate"`                     // risk-free rate
	DividendYield float64 `json:"dividend_yield,omitempty"` // q for greeks
	Spot          float64 `json:"spot,omitempty"`           // 0 = latest close from provider
	Volatility    float64 `json:"volatility,omitempty"`     // 0 = implied or historical
	ATMCallPrice  float64 `json:"atm_call,omitempty"`       // with atm_put, drives implied vol
	ATMPutPrice   float64 `json:"atm_put,omitempty"`

	Time         float64 `json:"time,omitempty"` // years to expiry
	DaysToExpiry int     `json:"dte,omitempty"`  // alternative to time

	Strikes    []float64          `json:"strikes"`
	OptionType pricing.OptionType `json:"option_type,omitempty"` // default: call
	PaidPrice  float64            `json:"paid_price,omitempty"`

	Simulations int    `json:"simulations,omitempty"` // Monte Carlo paths, default 100000
	Seed        uint64 `json:"seed,omitempty"`        // 0 = entropy

	Strategy    []strategy.LegSpec `json:"strategy,omitempty"`
	PayoffRange float64            `json:"payoff_range,omitempty"` // grid half-width as spot fraction, default 0.3
	PayoffSteps int                `json:"payoff_steps,omitempty"` // grid points, default 21

	ReportDir string `json:"report_dir,omitempty"`
	Verbosity int    `json:"verbosity,omitempty"` // 0=errors,1=info,2=debug
}

// Quote bundles every evaluator's output for one strike.
type Quote struct {
	Strike     float64                   `json:"strike"`
	Type       pricing.OptionType        `json:"option_type"`
	Analytic   float64                   `json:"analytic"`
	Greeks     map[pricing.Greek]float64 `json:"greeks"`
	MonteCarlo *pricing.MonteCarloResult `json:"monte_carlo"`
}

// PayoffPoint is one point of a strategy payoff grid.
type PayoffPoint struct {
	Spot   float64 `json:"spot"`
	Payoff float64 `json:"payoff"`
}

// Result is the output of one pricing job.
type Result struct {
	Underlying string         `json:"underlying"`
	Spot       float64        `json:"spot"`
	Volatility float64        `json:"volatility"`
	Rate       float64        `json:"rate"`
	Time       float64        `json:"time"`
	Quotes     []Quote        `json:"quotes"`
	Legs       []strategy.Leg `json:"legs,omitempty"`
	Payoffs    []PayoffPoint  `json:"payoffs,omitempty"`
}

// Engine evaluates pricing jobs against a data provider.
type Engine struct {
	cfg  *Config
	prov data.Provider
}

// NewEngine prepares a pricing job. Defaults apply to a private copy, so
// the caller's Config is never modified.
func NewEngine(cfg *Config, prov data.Provider) *Engine {
	c := *cfg
	applyDefaults(&c)
	logger.SetVerbosity(c.Verbosity)
	return &Engine{cfg: &c, prov: prov}
}

// Run executes the pricing job.
func (e *Engine) Run() (*Result, error) {
	cfg := e.cfg

	if len(cfg.Strikes) == 0 {
		return nil, fmt.Errorf("no strikes configured")
	}

	spot, vol, err := e.resolveMarket()
	if err != nil {
		return nil, err
	}
	logger.Infof("market resolved: spot=%.2f vol=%.2f%% time=%.3fy", spot, vol*100, cfg.Time)

	res := &Result{
		Underlying: cfg.Underlying,
		Spot:       spot,
		Volatility: vol,
		Rate:       cfg.Rate,
		Time:       cfg.Time,
	}

	for _, strike := range cfg.Strikes {
		q, err := e.quote(spot, vol, strike)
		if err != nil {
			return nil, fmt.Errorf("quoting strike %.2f: %w", strike, err)
		}
		res.Quotes = append(res.Quotes, *q)
		logger.Infof(
			"strike=%.2f analytic=%.4f mc=%.4f (stderr=%.4f)",
			strike, q.Analytic, q.MonteCarlo.Price, q.MonteCarlo.StdError,
		)
	}

	if len(cfg.Strategy) > 0 {
		legs, err := strategy.BuildLegs(cfg.Strategy, strategy.MarketContext{
			Spot:          spot,
			Rate:          cfg.Rate,
			DividendYield: cfg.DividendYield,
			Volatility:    vol,
			Time:          cfg.Time,
		})
		if err != nil {
			return nil, fmt.Errorf("building strategy legs: %w", err)
		}
		res.Legs = legs
		res.Payoffs = payoffGrid(legs, spot, cfg.PayoffRange, cfg.PayoffSteps)
	}

	return res, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Underlying == "" {
		cfg.Underlying = "SPY"
	}
	if cfg.OptionType == "" {
		cfg.OptionType = pricing.Call
	}
	if cfg.Time == 0 && cfg.DaysToExpiry > 0 {
		cfg.Time = float64(cfg.DaysToExpiry) / 365.0
	}
	if cfg.Time == 0 {
		cfg.Time = 30.0 / 365.0
	}
	if cfg.Simulations == 0 {
		cfg.Simulations = 100000
	}
	if cfg.PayoffRange == 0 {
		cfg.PayoffRange = 0.3
	}
	if cfg.PayoffSteps == 0 {
		cfg.PayoffSteps = 21
	}
	if cfg.Verbosity < 0 || cfg.Verbosity > 3 {
		cfg.Verbosity = 1
	}
}

// resolveMarket determines spot and volatility. Config literals win; spot
// falls back to the latest provider close, volatility to ATM implied vol
// when market premiums are configured, then to historical volatility.
func (e *Engine) resolveMarket() (spot, vol float64, err error) {
	cfg := e.cfg
	spot = cfg.Spot
	vol = cfg.Volatility

	var bars []data.Bar
	if spot == 0 || vol == 0 {
		to := time.Now().UTC()
		from := to.AddDate(-1, 0, 0)
		bars, err = e.prov.GetDailyBars(cfg.Underlying, from, to)
		if err != nil {
			return 0, 0, fmt.Errorf("fetching bars for %s: %w", cfg.Underlying, err)
		}
		if len(bars) == 0 {
			return 0, 0, fmt.Errorf("no bars for %s", cfg.Underlying)
		}
	}

	if spot == 0 {
		spot = data.LatestClose(bars)
		logger.Debugf("spot resolved from provider: %.2f", spot)
	}

	if vol == 0 && cfg.ATMCallPrice > 0 && cfg.ATMPutPrice > 0 {
		vol, err = pricing.ImpliedVolATM(spot, spot, cfg.Time, cfg.Rate, cfg.ATMCallPrice, cfg.ATMPutPrice)
		if err != nil {
			logger.Errorf("implied vol failed, falling back to historical: %v", err)
			vol = 0
		} else {
			logger.Debugf("implied vol resolved: %.4f", vol)
		}
	}
	if vol == 0 {
		vol = data.AnnualizedVolatility(data.Closes(bars))
		logger.Debugf("historical vol resolved: %.4f", vol)
	}

	return spot, vol, nil
}

func (e *Engine) quote(spot, vol, strike float64) (*Quote, error) {
	cfg := e.cfg

	analytic, err := pricing.BlackScholes(pricing.BlackScholesParams{
		Rate:       cfg.Rate,
		Underlying: spot,
		Strike:     strike,
		Time:       cfg.Time,
		Volatility: vol,
		Type:       cfg.OptionType,
		PaidPrice:  cfg.PaidPrice,
	})
	if err != nil {
		return nil, err
	}

	greeks := make(map[pricing.Greek]float64, len(pricing.AllGreeks))
	for _, g := range pricing.AllGreeks {
		v, err := pricing.Greeks(pricing.GreeksParams{
			Rate:          cfg.Rate,
			Underlying:    spot,
			Strike:        strike,
			Time:          cfg.Time,
			Volatility:    vol,
			Type:          cfg.OptionType,
			PaidPrice:     cfg.PaidPrice,
			DividendYield: cfg.DividendYield,
		}, g)
		if err != nil {
			return nil, err
		}
		greeks[g] = v
	}

	mc, err := pricing.MonteCarloStats(pricing.MonteCarloParams{
		Simulations: cfg.Simulations,
		Rate:        cfg.Rate,
		Underlying:  spot,
		Strike:      strike,
		Time:        cfg.Time,
		Volatility:  vol,
		Type:        cfg.OptionType,
		PaidPrice:   cfg.PaidPrice,
		Seed:        cfg.Seed,
	})
	if err != nil {
		return nil, err
	}

	return &Quote{
		Strike:     strike,
		Type:       cfg.OptionType,
		Analytic:   analytic,
		Greeks:     greeks,
		MonteCarlo: mc,
	}, nil
}

// payoffGrid evaluates the net strategy payoff over an evenly spaced spot
// grid centered on the current spot.
func payoffGrid(legs []strategy.Leg, spot, rangeFrac float64, steps int) []PayoffPoint {
	if steps < 2 {
		steps = 2
	}
	lo := spot * (1 - rangeFrac)
	hi := spot * (1 + rangeFrac)
	step := (hi - lo) / float64(steps-1)

	out := make([]PayoffPoint, 0, steps)
	for i := 0; i < steps; i++ {
		s := lo + float64(i)*step
		out = append(out, PayoffPoint{Spot: s, Payoff: strategy.NetPayoff(legs, s)})
	}
	return out
}
