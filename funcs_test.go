package calceval_test

import (
	"strings"
	"testing"

	"calceval"
)

func TestSqrt(t *testing.T) {
	cases := []struct {
		name string
		src  string
		mode calceval.Mode
		want string
	}{
		{"square", "sqrt(16)", exact, "4"},
		{"square-dec", "sqrt(16)", dec, "4"},
		{"frac", "sqrt(9/25)", exact, "3/5"},
		{"zero", "sqrt(0)", exact, "0"},
		{"two", "sqrt(2)", dec, sqrt2},
		{"two-exact", "sqrt(2)", exact, sqrt2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calceval.Evaluate(c.src, c.mode)
			if err != nil {
				t.Fatalf("%q failed to evaluate: %v", c.src, err)
			}
			if r.Primary != c.want {
				t.Errorf("%q gave %q, want %q", c.src, r.Primary, c.want)
			}
		})
	}
}

func TestTrig(t *testing.T) {
	cases := []struct {
		name string
		src  string
		mode calceval.Mode
		want string
	}{
		{"sin0", "sin(0)", dec, "0"},
		{"cos0", "cos(0)", dec, "1"},
		{"tan0", "tan(0)", dec, "0"},
		{"sin90", "sin(90)", deg, "1"},
		{"sin-pi2", "sin(pi/2)", dec, "1"},
		{"asin0", "asin(0)", dec, "0"},
		{"asin1", "asin(1)", deg, "90"},
		{"acos1", "acos(1)", deg, "0"},
		{"atan0", "atan(0)", deg, "0"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calceval.Evaluate(c.src, c.mode)
			if err != nil {
				t.Fatalf("%q failed to evaluate: %v", c.src, err)
			}
			if r.Primary != c.want {
				t.Errorf("%q gave %q, want %q", c.src, r.Primary, c.want)
			}
		})
	}
}

func TestLogVariants(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"log10", "log(100)", "2"},
		{"log10-1000", "log(1000)", "3"},
		{"log-base2", "log(8, 2)", "3"},
		{"log-base16", "log(256, 16)", "2"},
		{"exp0", "exp(0)", "1"},
		{"exp1", "exp(1)", e50},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calceval.Evaluate(c.src, dec)
			if err != nil {
				t.Fatalf("%q failed to evaluate: %v", c.src, err)
			}
			if r.Primary != c.want {
				t.Errorf("%q gave %q, want %q", c.src, r.Primary, c.want)
			}
		})
	}
}

func TestFactorial(t *testing.T) {
	cases := []struct {
		name string
		src  string
		mode calceval.Mode
		want string
	}{
		{"zero", "factorial(0)", dec, "1"},
		{"five", "factorial(5)", dec, "120"},
		{"ten", "factorial(10)", exact, "3628800"},
		{"alias", "fact(5)", exact, "120"},
		{"whole-dec", "factorial(5.0)", dec, "120"},
		{"reduced", "factorial(6/2)", exact, "6"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calceval.Evaluate(c.src, c.mode)
			if err != nil {
				t.Fatalf("%q failed to evaluate: %v", c.src, err)
			}
			if r.Primary != c.want {
				t.Errorf("%q gave %q, want %q", c.src, r.Primary, c.want)
			}
		})
	}
	errs := []struct {
		name string
		src  string
		mode calceval.Mode
	}{
		{"frac", "factorial(2.5)", dec},
		{"rat", "factorial(1/2)", exact},
		{"neg", "factorial(-1)", dec},
		{"huge", "factorial(200000)", exact},
	}
	for _, c := range errs {
		t.Run(c.name, func(t *testing.T) {
			_, err := calceval.Evaluate(c.src, c.mode)
			if calceval.KindOf(err) != calceval.KindDomain {
				t.Errorf("%q gave %v, want a domain error", c.src, err)
			}
		})
	}
}

func TestDefaultFuncsCopy(t *testing.T) {
	fns := calceval.DefaultFuncs()
	for _, name := range []string{"sqrt", "sin", "cos", "tan", "asin", "acos", "atan", "ln", "exp", "log", "factorial", "fact"} {
		if fns[name] == nil {
			t.Errorf("no default function %q", name)
		}
	}
	// Mutating the copy must not affect later parses.
	delete(fns, "sqrt")
	if _, err := calceval.ParseString("sqrt(4)"); err != nil {
		t.Errorf("default registry was mutated: %v", err)
	}
}

func TestTranscendentalNeverExact(t *testing.T) {
	// Exact mode keeps rationals exact, but anything through a
	// transcendental function is decimal.
	srcs := []string{"sqrt(2)", "ln(2)", "exp(2)", "sin(1)", "log(2)"}
	for _, src := range srcs {
		a, err := calceval.ParseString(src)
		if err != nil {
			t.Fatalf("%q failed to parse: %v", src, err)
		}
		v, err := a.Eval(exact)
		if err != nil {
			t.Fatalf("%q failed to evaluate: %v", src, err)
		}
		if v.IsExact() {
			t.Errorf("%q gave an exact value %v", src, v)
		}
		if strings.ContainsRune(v.String(), '/') {
			t.Errorf("%q rendered as a fraction: %v", src, v)
		}
	}
}
