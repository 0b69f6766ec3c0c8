package pricing

import (
	"math"
	"testing"
)

func TestImpliedVolATMRoundTrip(t *testing.T) {
	// With r=0 the ATM call and put prices coincide, so the call/put mid
	// is exactly the call price and the solver recovers sigma.
	S, K, T, r, sigma := 100.0, 100.0, 0.5, 0.0, 0.25

	call, _ := BlackScholes(BlackScholesParams{Rate: r, Underlying: S, Strike: K, Time: T, Volatility: sigma, Type: Call})
	put, _ := BlackScholes(BlackScholesParams{Rate: r, Underlying: S, Strike: K, Time: T, Volatility: sigma, Type: Put})

	iv, err := ImpliedVolATM(S, K, T, r, call, put)
	if err != nil {
		t.Fatalf("implied vol err: %v", err)
	}
	if !almostEqual(iv, sigma, 1e-4) {
		t.Fatalf("implied vol round trip: got=%v want=%v", iv, sigma)
	}
}

func TestImpliedVolATMInvalidExpiry(t *testing.T) {
	if _, err := ImpliedVolATM(100, 100, 0, 0.02, 5, 5); err == nil {
		t.Fatalf("expected error for zero expiry")
	}
}

func TestStrikeFromDeltaRoundTrip(t *testing.T) {
	S, r, q, sigma, T := 100.0, 0.05, 0.0, 0.2, 1.0

	// Call side: the strike at target delta must reproduce that delta.
	target := 0.6
	strike := StrikeFromDelta(S, target, r, q, sigma, T, true)
	delta, err := Greeks(GreeksParams{
		Rate: r, Underlying: S, Strike: strike, Time: T, Volatility: sigma,
		Type: Call, DividendYield: q,
	}, Delta)
	if err != nil {
		t.Fatalf("delta err: %v", err)
	}
	if !almostEqual(delta, target, 1e-6) {
		t.Fatalf("call delta round trip: got=%v want=%v (strike=%v)", delta, target, strike)
	}

	// Put side with a negative target delta.
	target = -0.4
	strike = StrikeFromDelta(S, target, r, q, sigma, T, false)
	delta, err = Greeks(GreeksParams{
		Rate: r, Underlying: S, Strike: strike, Time: T, Volatility: sigma,
		Type: Put, DividendYield: q,
	}, Delta)
	if err != nil {
		t.Fatalf("delta err: %v", err)
	}
	if !almostEqual(delta, target, 1e-6) {
		t.Fatalf("put delta round trip: got=%v want=%v (strike=%v)", delta, target, strike)
	}

	// OTM calls sit above spot, OTM puts below.
	if k := StrikeFromDelta(S, 0.3, r, q, sigma, T, true); k <= S {
		t.Fatalf("0.3 delta call strike should exceed spot: %v", k)
	}
	if k := StrikeFromDelta(S, -0.3, r, q, sigma, T, false); k >= S*math.Exp((r+0.5*sigma*sigma)*T) {
		t.Fatalf("-0.3 delta put strike unexpectedly high: %v", k)
	}
}
