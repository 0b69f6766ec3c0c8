package pricing

import (
	"errors"
	"math"
	"testing"
)

func standardGreeksParams(typ OptionType) GreeksParams {
	return GreeksParams{
		Rate: 0.05, Underlying: 100, Strike: 100, Time: 1, Volatility: 0.2,
		Type: typ, DividendYield: 0,
	}
}

func mustGreek(t *testing.T, p GreeksParams, g Greek) float64 {
	t.Helper()
	v, err := Greeks(p, g)
	if err != nil {
		t.Fatalf("%s err: %v", g, err)
	}
	return v
}

func TestGreeksSanityRanges(t *testing.T) {
	call := standardGreeksParams(Call)
	put := standardGreeksParams(Put)

	deltaCall := mustGreek(t, call, Delta)
	deltaPut := mustGreek(t, put, Delta)
	if deltaCall <= 0 || deltaCall >= 1 {
		t.Fatalf("call delta out of (0,1): %v", deltaCall)
	}
	if deltaPut <= -1 || deltaPut >= 0 {
		t.Fatalf("put delta out of (-1,0): %v", deltaPut)
	}

	if g := mustGreek(t, call, Gamma); g < 0 {
		t.Fatalf("gamma negative: %v", g)
	}
	if v := mustGreek(t, call, Vega); v < 0 {
		t.Fatalf("vega negative: %v", v)
	}
	if r := mustGreek(t, call, Rho); r <= 0 {
		t.Fatalf("call rho not positive: %v", r)
	}
	if r := mustGreek(t, put, Rho); r >= 0 {
		t.Fatalf("put rho not negative: %v", r)
	}
	if th := mustGreek(t, call, Theta); th >= 0 {
		t.Fatalf("ATM call theta should be negative with q=0: %v", th)
	}
}

func TestGreeksDeltaReference(t *testing.T) {
	// d1 = 0.35 at S=K=100, r=0.05, sigma=0.2, T=1.
	deltaCall := mustGreek(t, standardGreeksParams(Call), Delta)
	if !almostEqual(deltaCall, 0.6368306511756191, 1e-9) {
		t.Fatalf("call delta mismatch: got=%v", deltaCall)
	}
}

func TestGreeksCallPutIdentities(t *testing.T) {
	for _, q := range []float64{0, 0.03} {
		call := standardGreeksParams(Call)
		put := standardGreeksParams(Put)
		call.DividendYield = q
		put.DividendYield = q

		// Delta(call) - Delta(put) = e^{-qT}
		deltaDiff := mustGreek(t, call, Delta) - mustGreek(t, put, Delta)
		if !almostEqual(deltaDiff, math.Exp(-q*call.Time), 1e-12) {
			t.Fatalf("q=%v: delta identity violated: %v", q, deltaDiff)
		}

		// Gamma and vega do not depend on the option side.
		if gc, gp := mustGreek(t, call, Gamma), mustGreek(t, put, Gamma); gc != gp {
			t.Fatalf("q=%v: gamma differs by side: %v vs %v", q, gc, gp)
		}
		if vc, vp := mustGreek(t, call, Vega), mustGreek(t, put, Vega); vc != vp {
			t.Fatalf("q=%v: vega differs by side: %v vs %v", q, vc, vp)
		}
	}
}

func TestGreeksDeltaLimits(t *testing.T) {
	// Deep in the money call: delta approaches the dividend discount.
	call := standardGreeksParams(Call)
	call.Underlying = 1e6
	if d := mustGreek(t, call, Delta); !almostEqual(d, 1, 1e-9) {
		t.Fatalf("deep ITM call delta should approach 1: %v", d)
	}

	// Deep in the money put: delta approaches minus the dividend discount.
	put := standardGreeksParams(Put)
	put.Underlying = 0.01
	if d := mustGreek(t, put, Delta); !almostEqual(d, -1, 1e-9) {
		t.Fatalf("deep ITM put delta should approach -1: %v", d)
	}
}

func TestGreeksValidation(t *testing.T) {
	zeroTime := standardGreeksParams(Call)
	zeroTime.Time = 0
	if _, err := Greeks(zeroTime, Delta); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for zero time, got %v", err)
	}

	zeroVol := standardGreeksParams(Call)
	zeroVol.Volatility = 0
	if _, err := Greeks(zeroVol, Delta); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for zero volatility, got %v", err)
	}

	if _, err := Greeks(standardGreeksParams(Call), Greek("volga")); !errors.Is(err, ErrInvalidGreek) {
		t.Fatalf("expected ErrInvalidGreek, got %v", err)
	}
}
