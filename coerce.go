package calceval

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// The coercion layer is total: every Value converts to either working
// representation without error. Malformed input is rejected earlier, at
// parse time or at a node-specific guard.

// toRat converts a value to an exact rational. Decimals convert from their
// exact decimal form so that no binary rounding noise leaks in.
func toRat(v Value) *big.Rat {
	switch v.kind {
	case valueInt:
		if v.i == nil {
			return new(big.Rat)
		}
		return new(big.Rat).SetInt(v.i)
	case valueRat:
		return new(big.Rat).Set(v.r)
	default:
		// Built from the coefficient and exponent; the digit string form
		// expands positive exponents, which is unusable at large magnitudes.
		r := new(big.Rat).SetInt(v.d.Coefficient())
		switch e := int(v.d.Exponent()); {
		case e > 0:
			r.Mul(r, new(big.Rat).SetInt(pow10(e)))
		case e < 0:
			r.Quo(r, new(big.Rat).SetInt(pow10(-e)))
		}
		return r
	}
}

// pow10 returns 10**n for n >= 0.
func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// toDec converts a value to a decimal carrying prec significant digits.
// Integers and decimals convert exactly; rationals divide at the working
// precision.
func toDec(v Value, prec int) decimal.Decimal {
	switch v.kind {
	case valueInt:
		if v.i == nil {
			return decimal.Decimal{}
		}
		return decimal.NewFromBigInt(v.i, 0)
	case valueRat:
		return ratToDec(v.r, prec)
	default:
		return v.d
	}
}

// ratToDec divides numerator by denominator, rounding to prec significant
// digits. The rounding scale follows the quotient's own magnitude, so values
// far below one keep their full precision.
func ratToDec(r *big.Rat, prec int) decimal.Decimal {
	if r.Sign() == 0 {
		return decimal.Decimal{}
	}
	num := decimal.NewFromBigInt(r.Num(), 0)
	den := decimal.NewFromBigInt(r.Denom(), 0)
	adj := quoAdjExp(new(big.Int).Abs(r.Num()), r.Denom())
	return num.DivRound(den, int32(prec-1-adj))
}

// quoAdjExp returns the adjusted decimal exponent of num/den, the power of
// ten of its leading digit. Both arguments must be positive.
func quoAdjExp(num, den *big.Int) int {
	adj := len(num.String()) - len(den.String())
	var lo, hi *big.Int
	if adj >= 0 {
		lo = num
		hi = new(big.Int).Mul(den, pow10(adj))
	} else {
		lo = new(big.Int).Mul(num, pow10(-adj))
		hi = den
	}
	if lo.Cmp(hi) < 0 {
		adj--
	}
	return adj
}

// decAdjExp returns the adjusted decimal exponent of d, the power of ten of
// its leading digit. d must be nonzero.
func decAdjExp(d decimal.Decimal) int {
	return int(d.Exponent()) + len(new(big.Int).Abs(d.Coefficient()).String()) - 1
}

// decDiv performs true division of decimals, rounding the quotient to prec
// significant digits. Coefficients and exponents are combined separately so
// that large exponents never expand into digit strings.
func decDiv(a, b decimal.Decimal, prec int) decimal.Decimal {
	if a.IsZero() {
		return decimal.Decimal{}
	}
	adj := quoAdjExp(new(big.Int).Abs(a.Coefficient()), new(big.Int).Abs(b.Coefficient()))
	adj += int(a.Exponent()) - int(b.Exponent())
	return a.DivRound(b, int32(prec-1-adj))
}

// maxDenominator bounds the denominator search when a native float must be
// turned into a rational.
const maxDenominator = 1_000_000

// ratFromFloat converts a native float to the closest rational with a
// denominator no greater than maxDenominator, using the continued-fraction
// walk rather than the float's exact bit pattern. This is the only sanctioned
// float-to-rational path; values that exist as digit strings convert through
// toRat instead.
func ratFromFloat(f float64) (*big.Rat, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	if f < 0 {
		r, ok := ratFromFloat(-f)
		if !ok {
			return nil, false
		}
		return r.Neg(r), true
	}
	x := new(big.Rat).SetFloat64(f)
	if x.Denom().Cmp(big.NewInt(maxDenominator)) <= 0 {
		return x, true
	}
	// Continued-fraction expansion of x, stopping at the last convergent
	// whose denominator fits the bound.
	var (
		p0 = big.NewInt(0)
		q0 = big.NewInt(1)
		p1 = big.NewInt(1)
		q1 = big.NewInt(0)
		n  = new(big.Int).Set(x.Num())
		d  = new(big.Int).Set(x.Denom())
		bd = big.NewInt(maxDenominator)
	)
	for d.Sign() != 0 {
		a := new(big.Int)
		m := new(big.Int)
		a.QuoRem(n, d, m)
		q2 := new(big.Int).Mul(a, q1)
		q2.Add(q2, q0)
		if q2.Cmp(bd) > 0 {
			break
		}
		p2 := new(big.Int).Mul(a, p1)
		p2.Add(p2, p0)
		p0, q0, p1, q1 = p1, q1, p2, q2
		n, d = d, m
	}
	// Between the last convergent and its semiconvergent, keep whichever is
	// closer to x.
	k := new(big.Int).Sub(bd, q0)
	k.Quo(k, q1)
	sp := new(big.Int).Mul(k, p1)
	sp.Add(sp, p0)
	sq := new(big.Int).Mul(k, q1)
	sq.Add(sq, q0)
	semi := new(big.Rat).SetFrac(sp, sq)
	conv := new(big.Rat).SetFrac(p1, q1)
	ds := new(big.Rat).Sub(semi, x)
	dc := new(big.Rat).Sub(conv, x)
	if ds.Abs(ds).Cmp(dc.Abs(dc)) < 0 {
		return semi, true
	}
	return conv, true
}

// precBits converts a significant-digit count to the binary precision used
// for big.Float bridge computations, with guard bits.
func precBits(prec int) uint {
	return uint(prec)*4 + 16
}

// bigFloatFromDec bridges a decimal into a big.Float at the working
// precision. Magnitudes beyond the float exponent range saturate to
// infinity, which the bridge-result path reports as a domain error.
func bigFloatFromDec(d decimal.Decimal, prec int) *big.Float {
	// Scientific-notation text assembled from the coefficient and exponent.
	// Decimal.String expands positive exponents into plain digit strings,
	// which is unusable at bridge magnitudes.
	s := d.Coefficient().String() + "e" + strconv.FormatInt(int64(d.Exponent()), 10)
	f, _, err := big.ParseFloat(s, 10, precBits(prec), big.ToNearestEven)
	switch {
	case err == nil: // do nothing
	case err.Error() == "exponent overflow",
		strings.HasSuffix(err.Error(), ": value out of range"):
		// There isn't realistically any better way to detect this error.
		// N.B. s is non-empty, otherwise we couldn't overflow.
		f = new(big.Float).SetInf(s[0] == '-')
	default:
		panic("calceval: invalid decimal digit string: " + s + " (" + err.Error() + ")")
	}
	return f
}

// decFromBigFloat re-quantizes a big.Float bridge value into a decimal with
// prec significant digits. Reports false for an infinite bridge value.
func decFromBigFloat(f *big.Float, prec int) (decimal.Decimal, bool) {
	if f.IsInf() {
		return decimal.Decimal{}, false
	}
	s := f.Text('e', prec-1)
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic("calceval: invalid float text: " + s)
	}
	return d, true
}

// bridgeResult converts a big.Float bridge result into a decimal Value,
// reporting magnitudes beyond the bridge's range as domain errors.
func bridgeResult(f *big.Float, prec int, fn string) (Value, error) {
	d, ok := decFromBigFloat(f, prec)
	if !ok {
		return Value{}, &DomainError{Func: fn, Reason: "result too large"}
	}
	return decValue(d), nil
}

// decFromFloat64 re-quantizes a native float bridge value into a decimal.
func decFromFloat64(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// floatFromDec converts a decimal to a native float for functions computed in
// hardware. It reports false when the magnitude is beyond the float range.
// The exponent check comes first so that out-of-range values never expand
// into digits.
func floatFromDec(d decimal.Decimal) (float64, bool) {
	if d.IsZero() {
		return 0, true
	}
	switch adj := decAdjExp(d); {
	case adj > 308:
		return 0, false
	case adj < -330:
		// underflows to hardware zero
		return 0, true
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
