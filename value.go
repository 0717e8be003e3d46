package calceval

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Value is a numeric value produced during evaluation: an exact integer, an
// exact rational in lowest terms with a positive denominator, or an
// arbitrary-precision decimal. The zero Value is the integer 0.
//
// No hardware floating-point value is ever stored in a Value; native floats
// appear only inside transcendental function implementations and are
// re-quantized into the decimal form before they become a Value.
type Value struct {
	kind valueKind
	i    *big.Int
	r    *big.Rat
	d    decimal.Decimal
}

type valueKind int8

const (
	valueInt valueKind = iota
	valueRat
	valueDec
)

func intValue(i *big.Int) Value {
	return Value{kind: valueInt, i: i}
}

func ratValue(r *big.Rat) Value {
	if r.IsInt() {
		return Value{kind: valueInt, i: r.Num()}
	}
	return Value{kind: valueRat, r: r}
}

func decValue(d decimal.Decimal) Value {
	return Value{kind: valueDec, d: d}
}

// FromInt64 creates an exact integer Value.
func FromInt64(n int64) Value {
	return intValue(big.NewInt(n))
}

// FromBigRat creates an exact Value from a rational. Integral rationals
// become integer Values.
func FromBigRat(r *big.Rat) Value {
	return ratValue(new(big.Rat).Set(r))
}

// FromDecimal creates a decimal Value.
func FromDecimal(d decimal.Decimal) Value {
	return decValue(d)
}

// FromFloat64 creates an exact Value approximating a native float, with the
// closest rational whose denominator is at most one million. It reports false
// if f is NaN or infinite.
func FromFloat64(f float64) (Value, bool) {
	r, ok := ratFromFloat(f)
	if !ok {
		return Value{}, false
	}
	return ratValue(r), true
}

// IsExact reports whether v carries exact semantics, i.e. it is an integer
// or a rational rather than a decimal.
func (v Value) IsExact() bool {
	return v.kind != valueDec
}

// Sign returns -1, 0, or 1 according to the sign of v.
func (v Value) Sign() int {
	switch v.kind {
	case valueInt:
		if v.i == nil {
			return 0
		}
		return v.i.Sign()
	case valueRat:
		return v.r.Sign()
	default:
		return v.d.Sign()
	}
}

// Rational returns v as an exact rational. The conversion is total: decimals
// convert through their exact digit string, never through a float bit
// pattern.
func (v Value) Rational() *big.Rat {
	return toRat(v)
}

// Decimal returns v as a decimal computed to prec significant digits.
// Precisions below MinPrec are raised to it. The conversion is total.
func (v Value) Decimal(prec int) decimal.Decimal {
	if prec < MinPrec {
		prec = MinPrec
	}
	return toDec(v, prec)
}

// String renders v in its natural form: an integer, a numerator/denominator
// pair, or a decimal digit string.
func (v Value) String() string {
	switch v.kind {
	case valueInt:
		if v.i == nil {
			return "0"
		}
		return v.i.String()
	case valueRat:
		return v.r.RatString()
	default:
		return v.d.String()
	}
}
