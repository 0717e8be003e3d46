//go:build go1.18
// +build go1.18

package calceval_test

import (
	"testing"

	"calceval"
)

func FuzzEvaluate(f *testing.F) {
	f.Add("1/3")
	f.Add("sqrt(2)")
	f.Add("2^-10")
	f.Add("-7%3")
	f.Add("factorial(5)")
	f.Add("sin(pi/2)")
	f.Add("1e100+1e-100")
	f.Fuzz(func(t *testing.T, s string) {
		calceval.Evaluate(s, calceval.Mode{})
		calceval.Evaluate(s, calceval.Mode{Exact: true, Degrees: true})
	})
}
