package calceval_test

import (
	"fmt"
	"math/big"

	"calceval"
)

func ExampleMonadic() {
	double := calceval.Monadic("double", func(m calceval.Mode, x calceval.Value) (calceval.Value, error) {
		r := new(big.Rat).Mul(x.Rational(), big.NewRat(2, 1))
		return calceval.FromBigRat(r), nil
	})

	a, _ := calceval.ParseString("double(21)", calceval.Function("double", double))
	v, _ := a.Eval(calceval.Mode{Exact: true})
	r := calceval.Format(v, calceval.Mode{Exact: true})
	fmt.Println(r.Primary)
	// Output:
	// 42
}
