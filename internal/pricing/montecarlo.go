package pricing

import (
	"math"
	"runtime"
	"sync"

	"github.com/montanaflynn/stats"

	"github.com/contactkeval/option-pricer/internal/random"
)

// MonteCarloResult carries the simulated price together with path
// diagnostics. StdError shrinks roughly with the square root of the path
// count and bounds how far the price sits from the analytic value.
type MonteCarloResult struct {
	Price       float64 `json:"price"`        // discounted mean terminal payoff
	MeanPayoff  float64 `json:"mean_payoff"`  // undiscounted mean terminal payoff
	StdError    float64 `json:"std_error"`    // standard error of the mean payoff
	MinTerminal float64 `json:"min_terminal"` // lowest simulated terminal price
	MaxTerminal float64 `json:"max_terminal"` // highest simulated terminal price
	Paths       int     `json:"paths"`
	Steps       int     `json:"steps"` // daily steps per path
}

// MonteCarlo returns the simulated price of a European option: the
// discounted mean terminal payoff over Simulations independent geometric
// Brownian motion paths.
func MonteCarlo(p MonteCarloParams) (float64, error) {
	res, err := MonteCarloStats(p)
	if err != nil {
		return 0, err
	}
	return res.Price, nil
}

// MonteCarloStats runs the simulation and returns the price with path
// diagnostics.
//
// Each path evolves in daily steps, floor(T*365) of them, clamped to a
// minimum of one so sub-day expiries price off a single terminal draw
// instead of dividing by zero. Normal increments come from the Box-Muller
// transform over a bounded uniform source.
//
// Paths are independent and the work is split across a bounded set of
// goroutines. Every path owns its own uniform source seeded from the base
// seed and the path index, so a fixed Seed reproduces the same price
// regardless of how many workers run.
func MonteCarloStats(p MonteCarloParams) (*MonteCarloResult, error) {
	if err := checkParams(p); err != nil {
		return nil, err
	}

	steps := int(p.Time * 365.0)
	if steps < 1 {
		steps = 1
	}
	dt := p.Time / float64(steps)

	drift := (p.Rate - 0.5*p.Volatility*p.Volatility) * dt
	diffusion := p.Volatility * math.Sqrt(dt)

	seed := p.Seed
	if seed == 0 {
		seed = random.EntropySeed()
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > p.Simulations {
		workers = p.Simulations
	}

	terminals := make([]float64, p.Simulations)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * p.Simulations / workers
		hi := (w + 1) * p.Simulations / workers
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				src := random.NewSeeded(0.0, 1.0, seed+uint64(i))
				price := p.Underlying
				for day := 0; day < steps; day++ {
					price *= math.Exp(drift + diffusion*boxMuller(src))
				}
				terminals[i] = price
			}
		}(lo, hi)
	}
	wg.Wait()

	payoffs := make([]float64, len(terminals))
	for i, s := range terminals {
		if p.Type == Call {
			payoffs[i] = math.Max(s-p.Strike, 0)
		} else {
			payoffs[i] = math.Max(p.Strike-s, 0)
		}
	}

	mean, err := stats.Mean(payoffs)
	if err != nil {
		return nil, err
	}
	stdErr := 0.0
	if len(payoffs) > 1 {
		sd, err := stats.StandardDeviationSample(payoffs)
		if err != nil {
			return nil, err
		}
		stdErr = sd / math.Sqrt(float64(len(payoffs)))
	}
	// terminals holds at least one path after validation, so Min and Max
	// cannot fail.
	minT, _ := stats.Min(terminals)
	maxT, _ := stats.Max(terminals)

	discount := math.Exp(-p.Rate * p.Time)
	return &MonteCarloResult{
		Price:       mean * discount,
		MeanPayoff:  mean,
		StdError:    stdErr * discount,
		MinTerminal: minT,
		MaxTerminal: maxT,
		Paths:       p.Simulations,
		Steps:       steps,
	}, nil
}

// boxMuller converts two independent uniform draws in [0,1) into one
// standard normal draw.
func boxMuller(src *random.Uniform[float64]) float64 {
	u1 := src.Value()
	for u1 == 0 { // log(0) guard
		u1 = src.Value()
	}
	u2 := src.Value()
	return math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
}
