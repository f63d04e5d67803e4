// Package bigdec wraps math/big.Float in a value type carrying an explicit
// precision tag. Board position and scale must survive scale factors spanning
// hundreds of orders of magnitude, far past what float64 can represent, so
// every coordinate that reaches the camera core travels through this type.
//
// Two families of arithmetic are exposed on purpose: the fixed-precision
// operations (Mul, Div) keep the receiver's precision tag, while the
// floating-precision operations (MulFloat, DivFloat) renormalize the result
// to CanonicalPrec. Callers pick one deliberately; there are no overloaded
// entry points that guess.
package bigdec

import (
	"errors"
	"math"
	"math/big"
)

// CanonicalPrec is the mantissa precision, in bits, that board position and
// scale values are required to carry. Setters in the camera core reject
// values tagged with any other precision.
const CanonicalPrec uint = 128

// guardBits pads intermediate transcendental computations so the final
// rounding back to the caller's precision is clean.
const guardBits uint = 16

var ErrParse = errors.New("bigdec: unparsable decimal literal")

// ln2 to well past 128 bits, parsed once at canonical precision plus guard.
const ln2Literal = "0.69314718055994530941723212145817656807550013436025525412068000949339362196969"

var ln2Cache = mustParseFloat(ln2Literal, CanonicalPrec+guardBits)

func mustParseFloat(s string, prec uint) *big.Float {
	f, _, err := big.ParseFloat(s, 10, prec, big.ToNearestEven)
	if err != nil {
		panic("bigdec: bad builtin constant: " + err.Error())
	}
	return f
}

// Dec is an arbitrary-precision decimal value with an explicit precision tag.
// The zero value is 0 at canonical precision. Operations never mutate their
// operands; every result is freshly allocated.
type Dec struct {
	f    *big.Float
	prec uint
}

// val returns the backing float, substituting a canonical zero for the
// zero value of Dec.
func (x Dec) val() *big.Float {
	if x.f == nil {
		return new(big.Float).SetPrec(CanonicalPrec)
	}
	return x.f
}

// Prec returns the precision tag in mantissa bits.
func (x Dec) Prec() uint {
	if x.f == nil {
		return CanonicalPrec
	}
	return x.prec
}

// HasCanonicalPrec reports whether the value carries the canonical default
// precision. Position and scale setters require this.
func (x Dec) HasCanonicalPrec() bool { return x.Prec() == CanonicalPrec }

// New returns v at canonical precision.
func New(v float64) Dec {
	return Dec{new(big.Float).SetPrec(CanonicalPrec).SetFloat64(v), CanonicalPrec}
}

// FromInt returns i at canonical precision.
func FromInt(i int64) Dec {
	return Dec{new(big.Float).SetPrec(CanonicalPrec).SetInt64(i), CanonicalPrec}
}

// Parse reads a decimal literal at canonical precision.
func Parse(s string) (Dec, error) {
	f, _, err := big.ParseFloat(s, 10, CanonicalPrec, big.ToNearestEven)
	if err != nil {
		return Dec{}, ErrParse
	}
	return Dec{f, CanonicalPrec}, nil
}

// WithPrec returns a copy renormalized to the given precision.
func (x Dec) WithPrec(bits uint) Dec {
	return Dec{new(big.Float).SetPrec(bits).Set(x.val()), bits}
}

// Copy returns an independent copy sharing no storage with x.
func (x Dec) Copy() Dec {
	return Dec{new(big.Float).SetPrec(x.Prec()).Set(x.val()), x.Prec()}
}

// Add returns x+y at the wider of the two precisions.
func (x Dec) Add(y Dec) Dec {
	p := max(x.Prec(), y.Prec())
	return Dec{new(big.Float).SetPrec(p).Add(x.val(), y.val()), p}
}

// Sub returns x-y at the wider of the two precisions.
func (x Dec) Sub(y Dec) Dec {
	p := max(x.Prec(), y.Prec())
	return Dec{new(big.Float).SetPrec(p).Sub(x.val(), y.val()), p}
}

// Neg returns -x.
func (x Dec) Neg() Dec {
	return Dec{new(big.Float).SetPrec(x.Prec()).Neg(x.val()), x.Prec()}
}

// Abs returns |x|.
func (x Dec) Abs() Dec {
	return Dec{new(big.Float).SetPrec(x.Prec()).Abs(x.val()), x.Prec()}
}

// Mul is the fixed-precision product: the result keeps the receiver's
// precision tag.
func (x Dec) Mul(y Dec) Dec {
	return Dec{new(big.Float).SetPrec(x.Prec()).Mul(x.val(), y.val()), x.Prec()}
}

// Div is the fixed-precision quotient: the result keeps the receiver's
// precision tag. Division by zero panics, matching big.Float.
func (x Dec) Div(y Dec) Dec {
	return Dec{new(big.Float).SetPrec(x.Prec()).Quo(x.val(), y.val()), x.Prec()}
}

// MulFloat is the floating-precision product: the result is renormalized to
// canonical precision regardless of the operands' tags.
func (x Dec) MulFloat(y Dec) Dec {
	return Dec{new(big.Float).SetPrec(CanonicalPrec).Mul(x.val(), y.val()), CanonicalPrec}
}

// DivFloat is the floating-precision quotient, renormalized to canonical
// precision.
func (x Dec) DivFloat(y Dec) Dec {
	return Dec{new(big.Float).SetPrec(CanonicalPrec).Quo(x.val(), y.val()), CanonicalPrec}
}

// Cmp returns -1, 0, or +1.
func (x Dec) Cmp(y Dec) int { return x.val().Cmp(y.val()) }

// Sign returns -1, 0, or +1 for the sign of x.
func (x Dec) Sign() int { return x.val().Sign() }

// IsZero reports whether x == 0.
func (x Dec) IsZero() bool { return x.val().Sign() == 0 }

// IsInf reports whether x is an infinity. big.Float cannot represent NaN,
// so this is the only non-finite case.
func (x Dec) IsInf() bool { return x.val().IsInf() }

// Min returns the smaller of x and y.
func Min(x, y Dec) Dec {
	if x.Cmp(y) <= 0 {
		return x.Copy()
	}
	return y.Copy()
}

// Max returns the larger of x and y.
func Max(x, y Dec) Dec {
	if x.Cmp(y) >= 0 {
		return x.Copy()
	}
	return y.Copy()
}

// Float64 returns the nearest float64. Values beyond float64 range come back
// as +/-Inf; callers that must stay exact should not leave Dec.
func (x Dec) Float64() float64 {
	v, _ := x.val().Float64()
	return v
}

// Int64 returns the integer part, saturating at the int64 range.
func (x Dec) Int64() int64 {
	v, _ := x.val().Int64()
	return v
}

// Float returns a copy of the backing big.Float, for display helpers that
// format big values directly.
func (x Dec) Float() *big.Float {
	return new(big.Float).SetPrec(x.Prec()).Set(x.val())
}

// String formats x in decimal shortest form.
func (x Dec) String() string { return x.val().Text('g', -1) }

// LnFloat returns the natural log of x as a float64 without materializing a
// big result. Exact enough for durations and easing; the exponent term is
// computed from the binary exponent so it survives values far outside
// float64 range.
func (x Dec) LnFloat() float64 {
	if x.Sign() <= 0 {
		return math.Inf(-1)
	}
	m := new(big.Float).SetPrec(64)
	exp := x.val().MantExp(m)
	mf, _ := m.Float64()
	return math.Log(mf) + float64(exp)*math.Ln2
}
