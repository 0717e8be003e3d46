package calceval

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Result is a formatted evaluation result for the host to display.
type Result struct {
	// Primary is the main rendering: an exact integer, a numerator/
	// denominator pair, or a decimal digit string.
	Primary string
	// Hint is the decimal approximation accompanying a fractional exact
	// result, prefixed with "≈ ". It is empty whenever Primary is already an
	// integer or a decimal.
	Hint string
}

// sciExp is the adjusted decimal exponent beyond which a decimal renders in
// scientific notation instead of a plain digit string.
const sciExp = 50

// Format renders a value under the given mode. Formatting is a pure
// function: the same value and mode always produce the same Result.
func Format(v Value, mode Mode) Result {
	switch v.kind {
	case valueInt:
		if v.i == nil {
			return Result{Primary: "0"}
		}
		return Result{Primary: v.i.String()}
	case valueRat:
		approx := decString(ratToDec(v.r, mode.prec()))
		return Result{
			Primary: v.r.RatString(),
			Hint:    "≈ " + approx,
		}
	default:
		return Result{Primary: decString(v.d)}
	}
}

// decString renders a decimal with trailing insignificant zeros removed,
// switching to scientific notation only when the magnitude demands it.
func decString(d decimal.Decimal) string {
	if d.IsZero() {
		return "0"
	}
	co := new(big.Int).Abs(d.Coefficient()).String()
	adj := int(d.Exponent()) + len(co) - 1
	if adj > sciExp || adj < -sciExp {
		return sciString(d.Sign() < 0, co, adj)
	}
	return trimZeros(d.String())
}

// sciString renders sign, coefficient digits, and adjusted exponent as
// d.ddd…e±N with trailing zero digits removed.
func sciString(neg bool, digits string, adj int) string {
	digits = strings.TrimRight(digits, "0")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte(digits[0])
	if len(digits) > 1 {
		b.WriteByte('.')
		b.WriteString(digits[1:])
	}
	b.WriteByte('e')
	if adj >= 0 {
		b.WriteByte('+')
	}
	b.WriteString(strconv.Itoa(adj))
	return b.String()
}

// trimZeros removes trailing zeros after a decimal point, and the point
// itself if nothing follows it.
func trimZeros(s string) string {
	if !strings.ContainsRune(s, '.') {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
