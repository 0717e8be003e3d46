package calceval

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDecString(t *testing.T) {
	cases := []struct {
		name string
		d    decimal.Decimal
		want string
	}{
		{"zero", decimal.Decimal{}, "0"},
		{"int", decimal.New(42, 0), "42"},
		{"neg", decimal.New(-123, -2), "-1.23"},
		{"trim", decimal.New(2500, -3), "2.5"},
		{"large-plain", decimal.New(1, 50), "1" + zeros(50)},
		{"large-sci", decimal.New(1, 51), "1e+51"},
		{"large-sci-digits", decimal.New(1234, 48), "1.234e+51"},
		{"neg-sci", decimal.New(-1, 51), "-1e+51"},
		{"small-plain", decimal.New(1, -50), "0." + zeros(49) + "1"},
		{"small-sci", decimal.New(1, -51), "1e-51"},
		{"small-sci-digits", decimal.New(125, -53), "1.25e-51"},
		{"sci-trim", decimal.New(1200, 50), "1.2e+53"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := decString(c.d); got != c.want {
				t.Errorf("want %q, got %q", c.want, got)
			}
		})
	}
}

func zeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}

func TestTrimZeros(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1", "1"},
		{"1.0", "1"},
		{"1.500", "1.5"},
		{"0.25", "0.25"},
		{"100", "100"},
		{"-2.0", "-2"},
	}
	for _, c := range cases {
		if got := trimZeros(c.in); got != c.want {
			t.Errorf("trimZeros(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatRational(t *testing.T) {
	r := Format(FromBigRat(big.NewRat(1, 2)), Mode{Exact: true})
	if r.Primary != "1/2" {
		t.Errorf("primary is %q", r.Primary)
	}
	if r.Hint != "≈ 0.5" {
		t.Errorf("hint is %q", r.Hint)
	}
	// Integers and decimals carry no hint.
	if r := Format(FromInt64(3), Mode{}); r.Hint != "" || r.Primary != "3" {
		t.Errorf("integer formatted as %+v", r)
	}
	if r := Format(FromDecimal(decimal.New(25, -2)), Mode{}); r.Hint != "" || r.Primary != "0.25" {
		t.Errorf("decimal formatted as %+v", r)
	}
}
