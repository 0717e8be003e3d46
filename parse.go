package calceval

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Expr = num | const | Call | Neg | Plus | Add | Sub | Mul | Div | Mod | Pow
//      | '(' Expr ')' | '[' Expr ']' | '{' Expr '}'
// Call = funcname ArgList | funcname Term
// ArgList = '(' Expr { ',' Expr } ')' | '[' ... ']' | '{' ... '}'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr | Expr '×' Expr
// Div = Expr '/' Expr | Expr '÷' Expr
// Mod = Expr '%' Expr
// Pow = Expr '^' Expr | Expr '**' Expr
//
// Identifiers resolve to the whitelisted constants or functions; anything
// else is an error. There is no implicit multiplication: two adjacent terms
// with no operator between them do not parse.

// Expr is a parsed expression that can be evaluated with a Mode.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// DefaultMaxDepth is the expression nesting limit used when no MaxDepth
// option is given. MaxDepth options below this value are raised to it.
const DefaultMaxDepth = 200

// parsectx holds general data for parsing.
type parsectx struct {
	// funcs is the set of function names that trigger call parsing for ids.
	funcs map[string]Func
	// maxdepth is the nesting limit enforced while parsing terms.
	maxdepth int
	// depth is the current term nesting depth.
	depth int
}

// Parse parses an expression so it can be evaluated with a mode. The given
// options are applied in order.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	scan := lex(src)
	p := parsectx{maxdepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt.parseOption(&p)
	}
	if p.funcs == nil {
		p.funcs = globalfuncs
	}
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	tok := scan.must()
	if tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok, -1)
	}
	if n == nil {
		return nil, &EmptyExpressionError{Col: tok.pos}
	}
	return &Expr{n: n}, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, false)
	return b.String()
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression, the result is nil with no error; callers must create an
// error in contexts where empty subexpressions are illegal.
func parseterm(scan *lexer, p *parsectx, until operator) (*node, error) {
	if p.depth >= p.maxdepth {
		return nil, &TooDeepError{Col: scan.rune, Limit: p.maxdepth}
	}
	p.depth++
	defer func() { p.depth-- }()
	n, err := parselhs(scan, p, until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenOp:
			// Binary operator.
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				end := scan.must()
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case tokenNum, tokenIdent, tokenOpen:
			// Adjacent terms with no operator between them. A general
			// notation would make this a multiplication; the calculator
			// grammar rejects it.
			return nil, &TermError{Col: tok.pos, Token: tok.text}
		case tokenClose, tokenSep, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("calceval: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary
// and any encountered token must be valid as the start of a subexpression.
func parselhs(scan *lexer, p *parsectx, until operator) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	var n *node
	switch tok.kind {
	case tokenNum:
		if !validNum(tok.text) {
			return nil, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
		}
		n = &node{kind: nodeNum, name: tok.text}
	case tokenIdent:
		if fn := p.funcs[tok.text]; fn != nil {
			rhs, err := parsecall(scan, p, until, fn, tok.text)
			if err != nil {
				return nil, err
			}
			n = &node{kind: nodeCall, name: tok.text, fn: fn, right: rhs}
			break
		}
		if isConstant(tok.text) {
			n = &node{kind: nodeConst, name: tok.text}
			break
		}
		// An unknown identifier followed by an argument list is a call of a
		// function outside the whitelist; the evaluator reports it as such.
		// Any other unknown identifier fails here.
		next, err := scan.next()
		if err != nil {
			return nil, err
		}
		if next.kind != tokenOpen {
			scan.push(next)
			return nil, &UnknownNameError{Col: tok.pos, Name: tok.text}
		}
		rhs, err := parsebracketedargs(scan, p, next)
		if err != nil {
			return nil, err
		}
		n = &node{kind: nodeCall, name: tok.text, right: rhs}
	case tokenOp:
		// Unary operator.
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			end := scan.must()
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = &node{kind: prec.op, left: rhs}
	case tokenOpen:
		match := rightbracket(tok.text)
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose || end.text != closebrackets[match] {
			return nil, itShouldNotHaveEndedThisWay(end, match)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = rhs
	case tokenClose:
		// Empty subexpression; let the caller decide what to do.
		scan.push(tok)
		return nil, nil
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenEOF:
		scan.push(tok)
		return nil, nil
	default:
		panic("calceval: unknown token: " + tok.String())
	}
	return n, nil
}

// parsecall parses the arguments to a call of a given Func.
func parsecall(scan *lexer, p *parsectx, until operator, fn Func, name string) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenOpen:
		match := rightbracket(tok.text)
		n, cnt, err := parsearglist(scan, p, tok.text)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			panic("calceval: parsearglist ended on " + end.String() + " instead of close bracket")
		}
		if end.text != closebrackets[match] {
			return nil, &BracketError{Col: end.pos, Left: tok.text, Right: end.text}
		}
		if !fn.CanCall(cnt) {
			return nil, &CallError{Col: tok.pos, Func: name, Len: cnt}
		}
		return n, nil
	case tokenNum, tokenIdent, tokenOp:
		// A bare term follows the function, e.g. √2 or sin 30.
		if !fn.CanCall(1) {
			return nil, &CallError{Col: tok.pos, Func: name, Len: 1}
		}
		scan.push(tok)
		if termprec.moreBinding(until) {
			until = termprec
		}
		rhs, err := parseterm(scan, p, until)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			end := scan.must()
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		return &node{kind: nodeArg, left: rhs}, nil
	default:
		return nil, &CallError{Col: tok.pos, Func: name, Len: 0}
	}
}

// parsebracketedargs parses a bracketed argument list for a call with no
// registry entry, checking only well-formedness.
func parsebracketedargs(scan *lexer, p *parsectx, open lexToken) (*node, error) {
	match := rightbracket(open.text)
	n, _, err := parsearglist(scan, p, open.text)
	if err != nil {
		return nil, err
	}
	end := scan.must()
	if end.kind != tokenClose {
		panic("calceval: parsearglist ended on " + end.String() + " instead of close bracket")
	}
	if end.text != closebrackets[match] {
		return nil, &BracketError{Col: end.pos, Left: open.text, Right: end.text}
	}
	return n, nil
}

// parsearglist parses a bracketed list of zero or more args.
func parsearglist(scan *lexer, p *parsectx, open string) (*node, int, error) {
	var n node
	l := &n
	cnt := 0
	for {
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			// As a special case, reporting mismatched brackets is more helpful
			// than empty expression, if that's what we'd do here.
			if ee, _ := err.(*EmptyExpressionError); ee != nil {
				err = &BracketError{Col: ee.Col, Left: open}
			}
			return nil, 0, err
		}
		end := scan.must()
		switch end.kind {
		case tokenClose:
			// Caller checks that brackets match.
			scan.push(end)
			if rhs == nil {
				// func() is allowed, but func(a,) isn't.
				if cnt != 0 {
					return nil, 0, &EmptyExpressionError{Col: end.pos, End: end.text}
				}
				return nil, 0, nil
			}
			l.right = &node{kind: nodeArg, left: rhs}
			return n.right, cnt + 1, nil
		case tokenSep:
			if rhs == nil {
				return nil, 0, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			cnt++
			l.right = &node{kind: nodeArg, left: rhs}
			l = l.right
		case tokenEOF:
			return nil, 0, &BracketError{Col: end.pos, Left: open, Right: ""}
		default:
			panic("calceval: parseterm ended on non-end token " + end.String())
		}
	}
}

// rightbracket gets the closing bracket index for an opening bracket.
func rightbracket(left string) int {
	r, sz := utf8.DecodeRuneInString(left)
	k := strings.IndexRune(OpenBrackets, r)
	if k < 0 || sz != len(left) {
		panic("calceval: invalid bracket " + strconv.Quote(left))
	}
	return k
}

// leftbracket gets the opening bracket matching right. If right is no
// bracket, then the result is the empty string.
func leftbracket(right int) string {
	if right == -1 {
		return ""
	}
	return openbrackets[right]
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. match is the bracket rune index that
// the expression should have matched, or -1 if none.
func itShouldNotHaveEndedThisWay(tok lexToken, match int) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: leftbracket(match), Right: ""}
	case tokenClose:
		// A bracket could be the wrong bracket for the opening brace or any
		// bracket at the end of an input.
		return &BracketError{Col: tok.pos, Left: leftbracket(match), Right: tok.text}
	case tokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		panic("calceval: it really should not have ended this way: " + tok.String())
	}
}

type operator struct {
	// prec is the precedence value. Lower is less binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*", "×":
		return operator{5, false, nodeMul}
	case "/", "÷":
		return operator{5, false, nodeDiv}
	case "%":
		return operator{5, false, nodeMod}
	case "^", "**":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, nodeNop}
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

var (
	// termprec is the precedence used for bare function arguments. Its prec
	// matches that of multiplication so that sin 30 + 1 is sin(30) + 1.
	termprec = operator{5, true, nodeMul}
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, true, nodeNone}
)
