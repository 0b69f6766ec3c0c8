package strategy

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"

	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

var (
	ErrInvalidStrikeRule  = errors.New("invalid strike rule")
	ErrLegIndexOutOfRange = errors.New("leg index out of range")
)

// LegSpec defines a single option leg as provided in a strategy config.
// It represents intent, not resolved market values.
type LegSpec struct {
	Side       string `json:"side,omitempty"`        // buy or sell (default: buy)
	OptionType string `json:"option_type,omitempty"` // call or put (default: call)
	StrikeRule string `json:"strike_rule"`           // ATM, ATM:+10, ATM:-5%, DELTA:0.3, {LEG1.STRIKE}+5
	Qty        int    `json:"qty,omitempty"`         // quantity for ratio spreads (default: 1)
}

// Leg is a fully resolved, analytically priced option leg.
type Leg struct {
	Spec   LegSpec        `json:"spec"`
	Option pricing.Option `json:"option"`
	Qty    int            `json:"qty"`
	Sell   bool           `json:"sell"`
}

// MarketContext carries the market inputs leg resolution prices against.
type MarketContext struct {
	Spot          float64
	Rate          float64
	DividendYield float64
	Volatility    float64
	Time          float64 // years to expiry
}

// BuildLegs resolves a list of leg specs into priced legs. Strikes resolve
// in order, so later legs may reference earlier ones through {LEGn.STRIKE}
// and {LEGn.PREMIUM} expressions. Premiums come from the Black-Scholes
// evaluator.
func BuildLegs(specs []LegSpec, ctx MarketContext) ([]Leg, error) {
	legs := []Leg{}

	for i, spec := range specs {
		logger.Debugf("event=resolve_leg index=%d spec=%+v", i+1, spec)

		optType := pricing.Call
		if strings.EqualFold(spec.OptionType, string(pricing.Put)) {
			optType = pricing.Put
		}
		qty := spec.Qty
		if qty == 0 {
			qty = 1
		}

		strike, err := ResolveStrike(spec.StrikeRule, ctx, legs)
		if err != nil {
			logger.Errorf("event=strike_resolution_failed leg=%d err=%v", i+1, err)
			return nil, err
		}

		premium, err := pricing.BlackScholes(pricing.BlackScholesParams{
			Rate:       ctx.Rate,
			Underlying: ctx.Spot,
			Strike:     strike,
			Time:       ctx.Time,
			Volatility: ctx.Volatility,
			Type:       optType,
		})
		if err != nil {
			return nil, fmt.Errorf("pricing leg %d: %w", i+1, err)
		}

		logger.Infof(
			"event=leg_resolved leg=%d side=%s type=%s strike=%.2f premium=%.2f",
			i+1, spec.Side, optType, strike, premium,
		)

		legs = append(legs, Leg{
			Spec:   spec,
			Option: pricing.Option{Strike: strike, Premium: premium, Type: optType},
			Qty:    qty,
			Sell:   strings.EqualFold(spec.Side, "sell"),
		})
	}

	return legs, nil
}

// NetPayoff returns the combined payoff of the legs at the given spot,
// with sold legs contributing negatively.
func NetPayoff(legs []Leg, spot float64) float64 {
	total := 0.0
	for _, leg := range legs {
		sign := 1.0
		if leg.Sell {
			sign = -1.0
		}
		total += sign * float64(leg.Qty) * leg.Option.Payoff(spot)
	}
	return total
}

// ResolveStrike converts a strike rule into a concrete strike price.
//
// Supported formats:
//   - ATM
//   - ATM:+10, ATM:-5%
//   - DELTA:0.3 (negative targets resolve against the put delta)
//   - {LEG1.STRIKE}+{LEG1.PREMIUM}
func ResolveStrike(rule string, ctx MarketContext, legs []Leg) (float64, error) {
	rule = strings.TrimSpace(strings.ToUpper(rule))
	logger.Debugf("event=resolve_strike rule=%s", rule)

	if rule == "ATM" {
		return roundPrice(ctx.Spot), nil
	}

	if strings.HasPrefix(rule, "ATM:") {
		return resolveATMOffset(rule[len("ATM:"):], ctx.Spot)
	}

	if strings.HasPrefix(rule, "DELTA:") {
		deltaStr := strings.TrimPrefix(rule, "DELTA:")
		targetDelta, err := strconv.ParseFloat(deltaStr, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid DELTA value: %w", err)
		}
		// NormInv needs the dividend-adjusted target strictly inside (0,1).
		adjusted := math.Abs(targetDelta) * math.Exp(ctx.DividendYield*ctx.Time)
		if adjusted <= 0 || adjusted >= 1 {
			return 0, fmt.Errorf("%w: DELTA target %v out of range", ErrInvalidStrikeRule, targetDelta)
		}
		strike := pricing.StrikeFromDelta(
			ctx.Spot, targetDelta,
			ctx.Rate, ctx.DividendYield, ctx.Volatility, ctx.Time,
			targetDelta > 0,
		)
		return roundPrice(strike), nil
	}

	// Expression using previous legs
	if strings.Contains(rule, "{LEG") {
		target, err := evaluateLegExpression(rule, legs)
		if err != nil {
			return 0, err
		}
		return roundPrice(target), nil
	}

	return 0, fmt.Errorf("%w: %s", ErrInvalidStrikeRule, rule)
}

// resolveATMOffset applies an absolute or percentage offset to the spot.
func resolveATMOffset(offset string, spot float64) (float64, error) {
	if strings.HasSuffix(offset, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(offset, "%"), 64)
		if err != nil {
			return 0, err
		}
		return roundPrice(spot + spot*pct/100), nil
	}

	abs, err := strconv.ParseFloat(offset, 64)
	if err != nil {
		return 0, err
	}
	return roundPrice(spot + abs), nil
}

var legExprRe = regexp.MustCompile(`\{LEG(\d)\.(STRIKE|PREMIUM)\}`)

// evaluateLegExpression evaluates arithmetic expressions that reference
// prior legs, e.g. "{LEG1.STRIKE}+5".
func evaluateLegExpression(expr string, legs []Leg) (float64, error) {
	matches := legExprRe.FindAllStringSubmatch(expr, -1)
	if matches == nil {
		return 0, ErrInvalidStrikeRule
	}

	evalStr := expr
	for _, match := range matches {
		idx, _ := strconv.Atoi(match[1])
		idx-- // LEG1 is index 0

		if idx < 0 || idx >= len(legs) {
			return 0, ErrLegIndexOutOfRange
		}

		value := legs[idx].Option.Strike
		if match[2] == "PREMIUM" {
			value = legs[idx].Option.Premium
		}
		evalStr = strings.Replace(evalStr, match[0], fmt.Sprintf("%f", value), 1)
	}

	evalExpr, err := govaluate.NewEvaluableExpression(evalStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidStrikeRule, err)
	}
	result, err := evalExpr.Evaluate(nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidStrikeRule, err)
	}

	out, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: expression is not numeric", ErrInvalidStrikeRule)
	}
	return out, nil
}

func roundPrice(p float64) float64 {
	return math.Round(p*100) / 100
}
