package calceval

import (
	"errors"
	"strconv"
)

// Kind classifies every failure the evaluator can report. The host is
// expected to branch on the kind and show the message.
type Kind int

const (
	// KindSyntax is input text that is not a well-formed expression:
	// unknown tokens, unmatched brackets, unbound identifiers, or any
	// construct outside the grammar.
	KindSyntax Kind = iota
	// KindUnknownFunction is a call of a name outside the function registry.
	KindUnknownFunction
	// KindArity is a whitelisted function invoked with an unsupported
	// argument count.
	KindArity
	// KindDomain is an operand violating a function's precondition.
	KindDomain
	// KindDivisionByZero is division or modulo by an exact zero divisor.
	KindDivisionByZero
	// KindTooDeep is expression nesting beyond the configured limit.
	KindTooDeep
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax error"
	case KindUnknownFunction:
		return "unknown function"
	case KindArity:
		return "wrong argument count"
	case KindDomain:
		return "domain error"
	case KindDivisionByZero:
		return "division by zero"
	case KindTooDeep:
		return "expression too deep"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// kinder is implemented by every error type in this package.
type kinder interface {
	error
	Kind() Kind
}

// KindOf reports the kind of any error returned by Parse or Evaluate.
// Errors from outside this package classify as KindSyntax.
func KindOf(err error) Kind {
	var k kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindSyntax
}

// UnknownFunctionError is an error from calling a function outside the
// registry whitelist.
type UnknownFunctionError struct {
	// Name is the function name that was called.
	Name string
}

func (err *UnknownFunctionError) Error() string {
	return "unknown function " + strconv.Quote(err.Name)
}

func (err *UnknownFunctionError) Kind() Kind { return KindUnknownFunction }

// DomainError is an error from applying a function or operator to an operand
// outside its domain.
type DomainError struct {
	// X is the offending operand, rendered as text.
	X string
	// Func is the function or operator name.
	Func string
	// Reason describes the violated precondition, if the operand alone does
	// not make it obvious.
	Reason string
}

func (err *DomainError) Error() string {
	r := err.X + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Reason != "" {
		r += ": " + err.Reason
	}
	return r
}

func (err *DomainError) Kind() Kind { return KindDomain }

// DivisionByZeroError is an error from dividing by an exact zero divisor.
type DivisionByZeroError struct {
	// Op is the operation that divided, "/", "%", or "^".
	Op string
}

func (err *DivisionByZeroError) Error() string {
	if err.Op == "%" {
		return "modulo by zero"
	}
	return "division by zero"
}

func (err *DivisionByZeroError) Kind() Kind { return KindDivisionByZero }

var (
	_ kinder = (*UnknownFunctionError)(nil)
	_ kinder = (*DomainError)(nil)
	_ kinder = (*DivisionByZeroError)(nil)
)
