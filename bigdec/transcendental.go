package bigdec

import "math/big"

// Ln returns the natural logarithm of x at the receiver's precision.
// Panics for x <= 0, which indicates a caller bug (scale is strictly
// positive by contract).
//
// The argument is reduced with MantExp so the series only ever runs on a
// mantissa in [0.5, 1): ln(m * 2^e) = ln(m) + e*ln2. ln(m) uses the atanh
// series ln(m) = 2*(u + u^3/3 + u^5/5 + ...) with u = (m-1)/(m+1), which
// converges geometrically for m in that range.
func (x Dec) Ln() Dec {
	if x.Sign() <= 0 {
		panic("bigdec: Ln of non-positive value")
	}
	prec := x.Prec() + guardBits

	m := new(big.Float).SetPrec(prec)
	exp := x.val().MantExp(m)

	one := new(big.Float).SetPrec(prec).SetInt64(1)
	num := new(big.Float).SetPrec(prec).Sub(m, one)
	den := new(big.Float).SetPrec(prec).Add(m, one)
	u := new(big.Float).SetPrec(prec).Quo(num, den)
	u2 := new(big.Float).SetPrec(prec).Mul(u, u)

	// sum = u + u^3/3 + u^5/5 + ...
	sum := new(big.Float).SetPrec(prec).Set(u)
	term := new(big.Float).SetPrec(prec).Set(u)
	tmp := new(big.Float).SetPrec(prec)
	for k := int64(3); k < int64(prec)*2; k += 2 {
		term.Mul(term, u2)
		if term.Sign() == 0 {
			break
		}
		tmp.Quo(term, new(big.Float).SetPrec(prec).SetInt64(k))
		sum.Add(sum, tmp)
		if tmp.MantExp(nil) < -int(prec) {
			break
		}
	}
	lnm := sum.Mul(sum, new(big.Float).SetPrec(prec).SetInt64(2))

	res := new(big.Float).SetPrec(prec).Mul(
		new(big.Float).SetPrec(prec).SetInt64(int64(exp)),
		new(big.Float).SetPrec(prec).Set(ln2Cache))
	res.Add(res, lnm)
	return Dec{res.SetPrec(x.Prec()), x.Prec()}
}

// Exp returns e^x at the receiver's precision.
//
// Reduction: x = k*ln2 + r with |r| <= ln2/2, so e^x = 2^k * e^r and the
// Taylor series for e^r converges quickly. Results outside the exponent
// range of big.Float are not reachable for the magnitudes this client
// produces.
func (x Dec) Exp() Dec {
	prec := x.Prec() + guardBits

	ln2 := new(big.Float).SetPrec(prec).Set(ln2Cache)
	q := new(big.Float).SetPrec(prec).Quo(x.val(), ln2)
	k, _ := q.Int64()

	r := new(big.Float).SetPrec(prec).Mul(new(big.Float).SetPrec(prec).SetInt64(k), ln2)
	r.Sub(x.val(), r)

	// e^r = 1 + r + r^2/2! + ...
	sum := new(big.Float).SetPrec(prec).SetInt64(1)
	term := new(big.Float).SetPrec(prec).SetInt64(1)
	for n := int64(1); n < int64(prec); n++ {
		term.Mul(term, r)
		term.Quo(term, new(big.Float).SetPrec(prec).SetInt64(n))
		if term.Sign() == 0 {
			break
		}
		sum.Add(sum, term)
		if term.MantExp(nil) < -int(prec) {
			break
		}
	}

	res := new(big.Float).SetPrec(prec).Set(sum)
	res.SetMantExp(res, res.MantExp(nil)+int(k))
	return Dec{res.SetPrec(x.Prec()), x.Prec()}
}
