package bigdec

import (
	"math"
	"testing"
)

func TestCanonicalPrecTag(t *testing.T) {
	x := New(1.5)
	if !x.HasCanonicalPrec() {
		t.Fatalf("New value should carry canonical precision")
	}
	y := x.WithPrec(64)
	if y.HasCanonicalPrec() {
		t.Fatalf("WithPrec(64) should not be canonical")
	}
	if !y.WithPrec(CanonicalPrec).HasCanonicalPrec() {
		t.Fatalf("renormalizing back should restore canonical precision")
	}
}

func TestZeroValueUsable(t *testing.T) {
	var z Dec
	if !z.IsZero() || !z.HasCanonicalPrec() {
		t.Fatalf("zero value should be canonical zero, got %v prec=%d", z, z.Prec())
	}
	if got := z.Add(New(3)).Float64(); got != 3 {
		t.Fatalf("0+3 = %v", got)
	}
}

func TestFixedVsFloatingPrecision(t *testing.T) {
	x := New(2).WithPrec(32)
	fixed := x.Mul(New(3))
	if fixed.Prec() != 32 {
		t.Fatalf("fixed Mul should keep receiver precision, got %d", fixed.Prec())
	}
	floating := x.MulFloat(New(3))
	if floating.Prec() != CanonicalPrec {
		t.Fatalf("MulFloat should renormalize to canonical, got %d", floating.Prec())
	}
	if fixed.Float64() != 6 || floating.Float64() != 6 {
		t.Fatalf("2*3 = %v / %v", fixed.Float64(), floating.Float64())
	}
}

func TestOperandsNotMutated(t *testing.T) {
	x := New(10)
	y := New(4)
	_ = x.Sub(y)
	_ = x.Div(y)
	if x.Float64() != 10 || y.Float64() != 4 {
		t.Fatalf("operands mutated: x=%v y=%v", x.Float64(), y.Float64())
	}
}

func TestLnExpRoundTrip(t *testing.T) {
	for _, v := range []float64{0.001, 0.5, 1, 2, 17, 1e6, 1e30} {
		x := New(v)
		back := x.Ln().Exp().Float64()
		if math.Abs(back-v)/v > 1e-12 {
			t.Fatalf("exp(ln(%v)) = %v", v, back)
		}
	}
}

func TestLnMatchesFloat64(t *testing.T) {
	for _, v := range []float64{0.25, 1, math.E, 100, 1e10} {
		got := New(v).Ln().Float64()
		want := math.Log(v)
		if math.Abs(got-want) > 1e-13 {
			t.Fatalf("Ln(%v) = %v, want %v", v, got, want)
		}
	}
}

func TestLnFloatExtremeRange(t *testing.T) {
	// 2^100000 overflows float64 but its log must not.
	x := New(2)
	big := x
	for i := 0; i < 10; i++ {
		big = big.Mul(big) // 2^(2^(i+1))
	}
	got := big.LnFloat()
	want := 1024 * math.Ln2
	if math.Abs(got-want)/want > 1e-12 {
		t.Fatalf("LnFloat(2^1024) = %v, want %v", got, want)
	}
}

func TestLnNonPositivePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Ln(0) should panic")
		}
	}()
	New(0).Ln()
}

func TestMinMaxCmp(t *testing.T) {
	a, b := New(-2), New(5)
	if Min(a, b).Float64() != -2 || Max(a, b).Float64() != 5 {
		t.Fatalf("Min/Max wrong")
	}
	if a.Cmp(b) != -1 || b.Cmp(a) != 1 || a.Cmp(a.Copy()) != 0 {
		t.Fatalf("Cmp wrong")
	}
}

func TestParse(t *testing.T) {
	x, err := Parse("123456789123456789123456789.5")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if x.Sub(mustParse(t, "123456789123456789123456789")).Float64() != 0.5 {
		t.Fatalf("parse lost the fraction")
	}
	if _, err := Parse("not a number"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func mustParse(t *testing.T, s string) Dec {
	t.Helper()
	x, err := Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return x
}
