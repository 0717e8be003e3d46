package calceval

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/zephyrtronium/bigfloat"
)

// Func is a function callable from an expression. Implementations receive
// the evaluation mode and the eagerly evaluated arguments, in order.
//
// Transcendental functions return decimal results even in exact mode; a Func
// must never claim an exact rational result for a value it computed through
// a non-exact intermediate.
type Func interface {
	// Call evaluates the function. len(args) is a count for which CanCall
	// returned true.
	Call(m Mode, args []Value) (Value, error)

	// CanCall reports whether the function can be called with n arguments.
	// The parser rejects calls with any other count.
	CanCall(n int) bool
}

// globalfuncs is the closed default registry. Any name outside it fails
// evaluation with UnknownFunctionError.
var globalfuncs = map[string]Func{
	"sqrt": monadic{"sqrt", sqrtFn},
	"sin":  monadic{"sin", trig("sin", math.Sin)},
	"cos":  monadic{"cos", trig("cos", math.Cos)},
	"tan":  monadic{"tan", trig("tan", math.Tan)},
	"asin": monadic{"asin", arcTrig("asin", math.Asin)},
	"acos": monadic{"acos", arcTrig("acos", math.Acos)},
	"atan": monadic{"atan", arcTrig("atan", math.Atan)},
	"ln":   monadic{"ln", lnFn},
	"exp":  monadic{"exp", expFn},
	"log":  logFunc{},

	"factorial": monadic{"factorial", factorialFn},
	"fact":      monadic{"fact", factorialFn},
}

// DefaultFuncs returns a copy of the default function registry, suitable as
// a starting point for the Functions parse option.
func DefaultFuncs() map[string]Func {
	return defaultFuncs()
}

// monadic adapts a function of one argument into a Func.
type monadic struct {
	name string
	f    func(m Mode, x Value) (Value, error)
}

func (f monadic) Call(m Mode, args []Value) (Value, error) {
	return f.f(m, args[0])
}

func (f monadic) CanCall(n int) bool {
	return n == 1
}

// Monadic wraps a function of one argument into a Func for registration with
// the Function parse option.
func Monadic(name string, f func(m Mode, x Value) (Value, error)) Func {
	return monadic{name, f}
}

// sqrtFn computes a square root. In exact mode a rational whose numerator
// and denominator are both perfect squares keeps its exact root; everything
// else falls back to a decimal root at the working precision.
func sqrtFn(m Mode, x Value) (Value, error) {
	if m.Exact {
		r := toRat(x)
		if r.Sign() < 0 {
			return Value{}, &DomainError{X: r.RatString(), Func: "sqrt"}
		}
		num, numOK := exactRoot(r.Num())
		den, denOK := exactRoot(r.Denom())
		if numOK && denOK {
			return ratValue(new(big.Rat).SetFrac(num, den)), nil
		}
	}
	d := toDec(x, m.prec())
	if d.Sign() < 0 {
		return Value{}, &DomainError{X: decString(d), Func: "sqrt"}
	}
	f := bigFloatFromDec(d, m.prec())
	f.Sqrt(f)
	return bridgeResult(f, m.prec(), "sqrt")
}

// exactRoot returns the square root of n if n is a perfect square.
func exactRoot(n *big.Int) (*big.Int, bool) {
	r := new(big.Int).Sqrt(n)
	var sq big.Int
	return r, sq.Mul(r, r).Cmp(n) == 0
}

// trig adapts a native trigonometric primitive. The operand crosses the
// bridging float, converting from degrees first when the mode asks, and the
// result is re-quantized to decimal.
func trig(name string, f func(float64) float64) func(Mode, Value) (Value, error) {
	return func(m Mode, x Value) (Value, error) {
		d := toDec(x, m.prec())
		v, ok := floatFromDec(d)
		if !ok {
			return Value{}, &DomainError{X: decString(d), Func: name, Reason: "operand too large"}
		}
		if m.Degrees {
			v = v / 180 * math.Pi
		}
		return decValue(decFromFloat64(f(v))), nil
	}
}

// arcTrig adapts a native inverse trigonometric primitive, converting the
// result to degrees when the mode asks.
func arcTrig(name string, f func(float64) float64) func(Mode, Value) (Value, error) {
	return func(m Mode, x Value) (Value, error) {
		d := toDec(x, m.prec())
		v, ok := floatFromDec(d)
		if !ok {
			return Value{}, &DomainError{X: decString(d), Func: name, Reason: "operand too large"}
		}
		r := f(v)
		if math.IsNaN(r) {
			return Value{}, &DomainError{X: decString(d), Func: name}
		}
		if m.Degrees {
			r = r / math.Pi * 180
		}
		return decValue(decFromFloat64(r)), nil
	}
}

// lnFn computes the natural logarithm at the working precision.
func lnFn(m Mode, x Value) (Value, error) {
	d := toDec(x, m.prec())
	if d.Sign() <= 0 {
		return Value{}, &DomainError{X: decString(d), Func: "ln"}
	}
	f := bigFloatFromDec(d, m.prec())
	if f.IsInf() {
		return Value{}, &DomainError{X: decString(d), Func: "ln", Reason: "operand too large"}
	}
	bigfloat.Log(f, f)
	return bridgeResult(f, m.prec(), "ln")
}

// expFn raises e to the operand at the working precision.
func expFn(m Mode, x Value) (Value, error) {
	d := toDec(x, m.prec())
	f := bigFloatFromDec(d, m.prec())
	if f.IsInf() {
		return Value{}, &DomainError{X: decString(d), Func: "exp", Reason: "operand too large"}
	}
	bigfloat.Exp(f, f)
	return bridgeResult(f, m.prec(), "exp")
}

// logFunc is the log function: with one argument the base-10 logarithm, with
// two the logarithm of the first argument in the base given by the second.
type logFunc struct{}

func (logFunc) CanCall(n int) bool {
	return n == 1 || n == 2
}

func (logFunc) Call(m Mode, args []Value) (Value, error) {
	prec := m.prec()
	x := toDec(args[0], prec)
	if x.Sign() <= 0 {
		return Value{}, &DomainError{X: decString(x), Func: "log"}
	}
	base := decimal.New(10, 0)
	if len(args) == 2 {
		base = toDec(args[1], prec)
		if base.Sign() <= 0 || (decAdjExp(base) == 0 && base.Equal(decimal.New(1, 0))) {
			return Value{}, &DomainError{X: decString(base), Func: "log", Reason: "invalid base"}
		}
	}
	num := bigFloatFromDec(x, prec)
	den := bigFloatFromDec(base, prec)
	if num.IsInf() || den.IsInf() {
		return Value{}, &DomainError{X: decString(x), Func: "log", Reason: "operand too large"}
	}
	bigfloat.Log(num, num)
	bigfloat.Log(den, den)
	num.Quo(num, den)
	return bridgeResult(num, prec, "log")
}

// factorialFn computes the exact factorial of an operand that reduces to a
// non-negative integer; any other operand is outside the domain.
func factorialFn(m Mode, x Value) (Value, error) {
	var n *big.Int
	switch {
	case x.kind == valueInt:
		n = x.i
	case x.kind == valueRat:
		return Value{}, &DomainError{X: x.String(), Func: "factorial", Reason: "not an integer"}
	case x.d.IsInteger():
		if !x.d.IsZero() && decAdjExp(x.d) > 5 {
			// past the operand bound before materializing any digits
			return Value{}, &DomainError{X: decString(x.d), Func: "factorial", Reason: "operand too large"}
		}
		n = x.d.BigInt()
	default:
		return Value{}, &DomainError{X: x.String(), Func: "factorial", Reason: "not an integer"}
	}
	if n == nil {
		n = new(big.Int)
	}
	if n.Sign() < 0 {
		return Value{}, &DomainError{X: n.String(), Func: "factorial", Reason: "negative"}
	}
	if n.Cmp(big.NewInt(maxIntExponent)) > 0 {
		return Value{}, &DomainError{X: n.String(), Func: "factorial", Reason: "operand too large"}
	}
	r := new(big.Int).MulRange(1, n.Int64())
	return intValue(r), nil
}
