package calceval

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zephyrtronium/bigfloat"
)

// MinPrec is the minimum number of significant decimal digits maintained
// during decimal-domain computation. Mode precisions below it are raised.
const MinPrec = 50

// maxIntExponent bounds integer exponents and factorial operands so that a
// short expression cannot demand an astronomically large exact result.
const maxIntExponent = 100000

// maxResultBits bounds the size of an exact integer power's result.
const maxResultBits = 1 << 22

// maxAlignDigits bounds the digit expansion allowed when two decimals are
// brought to a common scale for exact addition, subtraction, or remainder.
const maxAlignDigits = 1 << 21

// alignable reports whether two decimals can reach a common scale without
// expanding past maxAlignDigits.
func alignable(a, b decimal.Decimal) bool {
	gap := int64(a.Exponent()) - int64(b.Exponent())
	if gap < 0 {
		gap = -gap
	}
	return gap <= maxAlignDigits
}

// Mode configures one evaluation. The zero Mode computes in the decimal
// domain with radian trigonometry at MinPrec digits. A Mode is immutable for
// the duration of a call; the host may use a different Mode per call.
type Mode struct {
	// Exact selects exact rational arithmetic for the operators + - * / % ^.
	// Transcendental results are decimal regardless.
	Exact bool
	// Degrees makes trigonometric functions take and produce degrees
	// instead of radians.
	Degrees bool
	// Prec is the working precision in significant decimal digits. Values
	// below MinPrec, including zero, are raised to MinPrec.
	Prec int
}

func (m Mode) prec() int {
	if m.Prec < MinPrec {
		return MinPrec
	}
	return m.Prec
}

// Evaluate parses and evaluates a calculator expression and formats the
// result. It is a pure function of its two inputs. On failure the error maps
// through KindOf to the failure taxonomy.
func Evaluate(text string, mode Mode) (Result, error) {
	a, err := ParseString(text)
	if err != nil {
		return Result{}, err
	}
	v, err := a.Eval(mode)
	if err != nil {
		return Result{}, err
	}
	return Format(v, mode), nil
}

// Eval evaluates the expression under the given mode. The expression may be
// evaluated any number of times, under different modes, including
// concurrently.
func (e *Expr) Eval(mode Mode) (Value, error) {
	return e.n.eval(mode)
}

// eval computes the node's value.
func (n *node) eval(m Mode) (Value, error) {
	switch n.kind {
	case nodeNum:
		return literal(n.name), nil
	case nodeConst:
		return constant(n.name, m.prec()), nil
	case nodeNop:
		v, err := n.left.eval(m)
		if err != nil {
			return Value{}, err
		}
		if m.Exact {
			return ratValue(toRat(v)), nil
		}
		return decValue(toDec(v, m.prec())), nil
	case nodeNeg:
		v, err := n.left.eval(m)
		if err != nil {
			return Value{}, err
		}
		if m.Exact {
			return ratValue(new(big.Rat).Neg(toRat(v))), nil
		}
		return decValue(toDec(v, m.prec()).Neg()), nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		l, err := n.left.eval(m)
		if err != nil {
			return Value{}, err
		}
		r, err := n.right.eval(m)
		if err != nil {
			return Value{}, err
		}
		if m.Exact {
			return exactOp(n.kind, l, r, m.prec())
		}
		return decOp(n.kind, toDec(l, m.prec()), toDec(r, m.prec()), m.prec())
	case nodeCall:
		var args []Value
		for l := n.right; l != nil; l = l.right {
			v, err := l.left.eval(m)
			if err != nil {
				return Value{}, err
			}
			args = append(args, v)
		}
		if n.fn == nil {
			return Value{}, &UnknownFunctionError{Name: n.name}
		}
		return n.fn.Call(m, args)
	case nodeArg:
		panic("calceval: eval on nodeArg")
	default:
		panic("calceval: invalid AST node " + n.kind.String())
	}
}

// literal converts a numeric literal to its natural representation: integer
// text becomes an exact integer, anything with a point or exponent becomes a
// decimal built from the exact digit sequence.
func literal(text string) Value {
	if !strings.ContainsAny(text, ".eE") {
		i, ok := new(big.Int).SetString(text, 10)
		if !ok {
			panic("calceval: invalid number: " + text)
		}
		return intValue(i)
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		panic("calceval: invalid number: " + text)
	}
	return decValue(d)
}

// maxLiteralExp bounds the decimal exponent of a literal so that later
// bridge computations stay inside the big.Float exponent range.
const maxLiteralExp = 100000

// validNum reports whether a lexed number token denotes a usable literal.
// The lexer guarantees the shape; this rejects out-of-range exponents.
func validNum(text string) bool {
	if !strings.ContainsAny(text, ".eE") {
		return true
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return false
	}
	e := int(d.Exponent())
	return -maxLiteralExp <= e && e <= maxLiteralExp
}

// isConstant reports whether name is a whitelisted constant.
func isConstant(name string) bool {
	return name == "pi" || name == "e"
}

// constant returns a named constant as a high-precision decimal
// approximation. Using a constant forfeits exactness in the rational domain;
// that is the documented contract, not an accident.
func constant(name string, prec int) Value {
	f := new(big.Float).SetPrec(precBits(prec))
	switch name {
	case "pi":
		bigfloat.Pi(f)
	case "e":
		one := new(big.Float).SetPrec(precBits(prec)).SetInt64(1)
		bigfloat.Exp(f, one)
	default:
		panic("calceval: invalid constant " + name)
	}
	d, ok := decFromBigFloat(f, prec)
	if !ok {
		panic("calceval: constant overflow: " + name)
	}
	return decValue(d)
}

// exactOp applies a binary operator in the rational domain. Pow falls back
// to the decimal domain for non-integer exponents; that is a documented
// precision loss, not an error.
func exactOp(kind nodeKind, l, r Value, prec int) (Value, error) {
	a, b := toRat(l), toRat(r)
	switch kind {
	case nodeAdd:
		return ratValue(a.Add(a, b)), nil
	case nodeSub:
		return ratValue(a.Sub(a, b)), nil
	case nodeMul:
		return ratValue(a.Mul(a, b)), nil
	case nodeDiv:
		if b.Sign() == 0 {
			return Value{}, &DivisionByZeroError{Op: "/"}
		}
		return ratValue(a.Quo(a, b)), nil
	case nodeMod:
		return ratMod(a, b)
	case nodePow:
		return ratPow(a, b, prec)
	}
	panic("calceval: invalid exact operator " + kind.String())
}

// ratMod computes the remainder of true division, with the sign following
// the dividend.
func ratMod(a, b *big.Rat) (Value, error) {
	if b.Sign() == 0 {
		return Value{}, &DivisionByZeroError{Op: "%"}
	}
	q := new(big.Rat).Quo(a, b)
	t := new(big.Int).Quo(q.Num(), q.Denom())
	r := new(big.Rat).SetInt(t)
	r.Mul(r, b)
	r.Sub(a, r)
	return ratValue(r), nil
}

// ratPow raises a to the power b. Integer exponents, including negative
// ones, keep exactness; any other exponent computes in the decimal domain.
func ratPow(a, b *big.Rat, prec int) (Value, error) {
	if !b.IsInt() {
		return decPow(ratToDec(a, prec), ratToDec(b, prec), prec)
	}
	e := b.Num()
	abs := new(big.Int).Abs(e)
	if abs.Cmp(big.NewInt(maxIntExponent)) > 0 {
		return Value{}, &DomainError{X: e.String(), Func: "^", Reason: "exponent too large"}
	}
	if (a.Num().BitLen()+a.Denom().BitLen()+1)*int(abs.Int64()) > maxResultBits {
		return Value{}, &DomainError{Func: "^", Reason: "result too large"}
	}
	if e.Sign() < 0 {
		if a.Sign() == 0 {
			return Value{}, &DivisionByZeroError{Op: "^"}
		}
		num := new(big.Int).Exp(a.Denom(), abs, nil)
		den := new(big.Int).Exp(a.Num(), abs, nil)
		return ratValue(new(big.Rat).SetFrac(num, den)), nil
	}
	num := new(big.Int).Exp(a.Num(), e, nil)
	den := new(big.Int).Exp(a.Denom(), e, nil)
	return ratValue(new(big.Rat).SetFrac(num, den)), nil
}

// decOp applies a binary operator in the decimal domain.
func decOp(kind nodeKind, a, b decimal.Decimal, prec int) (Value, error) {
	switch kind {
	case nodeAdd:
		if !alignable(a, b) {
			return Value{}, &DomainError{Func: "+", Reason: "operands too far apart"}
		}
		return decValue(a.Add(b)), nil
	case nodeSub:
		if !alignable(a, b) {
			return Value{}, &DomainError{Func: "-", Reason: "operands too far apart"}
		}
		return decValue(a.Sub(b)), nil
	case nodeMul:
		return decValue(a.Mul(b)), nil
	case nodeDiv:
		if b.IsZero() {
			return Value{}, &DivisionByZeroError{Op: "/"}
		}
		return decValue(decDiv(a, b, prec)), nil
	case nodeMod:
		if b.IsZero() {
			return Value{}, &DivisionByZeroError{Op: "%"}
		}
		if !alignable(a, b) {
			return Value{}, &DomainError{Func: "%", Reason: "quotient too large"}
		}
		return decValue(a.Mod(b)), nil
	case nodePow:
		return decPow(a, b, prec)
	}
	panic("calceval: invalid decimal operator " + kind.String())
}

// decPow computes a^b in the decimal domain through the big.Float bridge at
// the working precision. Negative bases are allowed only with integer
// exponents.
func decPow(a, b decimal.Decimal, prec int) (Value, error) {
	if a.IsZero() {
		switch b.Sign() {
		case -1:
			return Value{}, &DivisionByZeroError{Op: "^"}
		case 0:
			return decValue(decimal.New(1, 0)), nil
		default:
			return decValue(decimal.Decimal{}), nil
		}
	}
	if a.Sign() < 0 {
		if !b.IsInteger() {
			return Value{}, &DomainError{X: decString(a), Func: "^", Reason: "negative base with non-integer exponent"}
		}
		v, err := decPow(a.Neg(), b, prec)
		if err != nil {
			return Value{}, err
		}
		// A positive exponent scale carries a factor of ten, so the
		// exponent is even.
		if b.Exponent() > 0 || b.Mod(decimal.New(2, 0)).IsZero() {
			return v, nil
		}
		return decValue(v.d.Neg()), nil
	}
	base := bigFloatFromDec(a, prec)
	exp := bigFloatFromDec(b, prec)
	if base.IsInf() || exp.IsInf() {
		return Value{}, &DomainError{Func: "^", Reason: "operand too large"}
	}
	out := new(big.Float).SetPrec(precBits(prec))
	bigfloat.Pow(out, base, exp)
	return bridgeResult(out, prec, "^")
}
