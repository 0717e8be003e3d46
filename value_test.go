package calceval_test

import (
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"calceval"
)

func TestValueString(t *testing.T) {
	cases := []struct {
		name string
		v    calceval.Value
		want string
	}{
		{"zero", calceval.Value{}, "0"},
		{"int", calceval.FromInt64(42), "42"},
		{"neg", calceval.FromInt64(-7), "-7"},
		{"rat", calceval.FromBigRat(big.NewRat(2, 4)), "1/2"},
		{"rat-int", calceval.FromBigRat(big.NewRat(4, 2)), "2"},
		{"dec", calceval.FromDecimal(decimal.RequireFromString("0.25")), "0.25"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.v.String(); got != c.want {
				t.Errorf("want %q, got %q", c.want, got)
			}
		})
	}
}

func TestValueExactness(t *testing.T) {
	if !calceval.FromInt64(1).IsExact() {
		t.Error("integer is not exact")
	}
	if !calceval.FromBigRat(big.NewRat(1, 3)).IsExact() {
		t.Error("rational is not exact")
	}
	if calceval.FromDecimal(decimal.New(1, -1)).IsExact() {
		t.Error("decimal is exact")
	}
	if !(calceval.Value{}).IsExact() {
		t.Error("zero Value is not exact")
	}
}

func TestValueSign(t *testing.T) {
	cases := []struct {
		name string
		v    calceval.Value
		want int
	}{
		{"zero", calceval.Value{}, 0},
		{"pos", calceval.FromInt64(3), 1},
		{"neg-rat", calceval.FromBigRat(big.NewRat(-1, 2)), -1},
		{"neg-dec", calceval.FromDecimal(decimal.New(-25, -2)), -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.v.Sign(); got != c.want {
				t.Errorf("want %d, got %d", c.want, got)
			}
		})
	}
}

func TestValueConversions(t *testing.T) {
	// Decimals convert to rationals through their digit string.
	r := calceval.FromDecimal(decimal.RequireFromString("0.1")).Rational()
	if r.Cmp(big.NewRat(1, 10)) != 0 {
		t.Errorf("0.1 converted to %v", r)
	}
	// Rationals divide out at the working precision, never below MinPrec.
	d := calceval.FromBigRat(big.NewRat(1, 3)).Decimal(0)
	if want := "0." + strings.Repeat("3", 50); d.String() != want {
		t.Errorf("1/3 converted to %q, want %q", d.String(), want)
	}
	// Integers convert exactly in both directions.
	if d := calceval.FromInt64(7).Decimal(50); d.String() != "7" {
		t.Errorf("7 converted to %q", d.String())
	}
	if r := calceval.FromInt64(7).Rational(); r.Cmp(new(big.Rat).SetInt64(7)) != 0 {
		t.Errorf("7 converted to %v", r)
	}
}

func TestFromFloat64(t *testing.T) {
	v, ok := calceval.FromFloat64(0.5)
	if !ok || v.String() != "1/2" {
		t.Errorf("0.5 converted to %v, %v", v, ok)
	}
	v, ok = calceval.FromFloat64(math.Pi)
	if !ok || v.String() != "3126535/995207" {
		t.Errorf("pi converted to %v, %v", v, ok)
	}
	if v, ok := calceval.FromFloat64(math.NaN()); ok {
		t.Errorf("NaN converted to %v", v)
	}
}
