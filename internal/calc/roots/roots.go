// Package roots extracts the roots of real-coefficient polynomials and
// selects one of them by an explicit, named policy.
//
// Poly returns every root, complex ones included; discarding complex roots
// is the caller's step (Real). Formula variants with no closed-form inverse
// use Solve, which chains both with a Policy.
package roots

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDegenerate is returned for an empty or all-zero polynomial.
	ErrDegenerate = errors.New("roots: degenerate polynomial")
	// ErrNonFinite is returned when a coefficient is NaN or infinite.
	ErrNonFinite = errors.New("roots: non-finite coefficient")
	// ErrNoConvergence is returned when the eigenvalue solver fails.
	ErrNoConvergence = errors.New("roots: eigenvalue decomposition failed")
)

// imagTol is the largest |imag|/max(1,|z|) for which a root counts as real.
const imagTol = 1e-9

// Poly returns the roots of the polynomial whose coefficients are given
// from the highest degree down to the constant term. Leading zero
// coefficients are ignored.
func Poly(coeffs ...float64) ([]complex128, error) {
	for _, c := range coeffs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, ErrNonFinite
		}
	}
	for len(coeffs) > 0 && coeffs[0] == 0 {
		coeffs = coeffs[1:]
	}
	switch len(coeffs) {
	case 0:
		return nil, ErrDegenerate
	case 1:
		return nil, nil
	case 2:
		return []complex128{complex(-coeffs[1]/coeffs[0], 0)}, nil
	}

	// Companion matrix of the monic polynomial: ones on the subdiagonal,
	// the negated normalized coefficients in the first row.
	n := len(coeffs) - 1
	comp := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		comp.Set(0, j, -coeffs[j+1]/coeffs[0])
	}
	for i := 1; i < n; i++ {
		comp.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(comp, mat.EigenNone); !ok {
		return nil, fmt.Errorf("%w: degree %d", ErrNoConvergence, n)
	}
	return eig.Values(nil), nil
}

// Real keeps the roots whose imaginary part is negligible and returns
// their real parts in ascending order.
func Real(zs []complex128) []float64 {
	out := make([]float64, 0, len(zs))
	for _, z := range zs {
		if math.Abs(imag(z)) <= imagTol*math.Max(1, cmplx.Abs(z)) {
			out = append(out, real(z))
		}
	}
	sort.Float64s(out)
	return out
}

// Eval evaluates the polynomial at x by Horner's rule.
func Eval(x float64, coeffs ...float64) float64 {
	var y float64
	for _, c := range coeffs {
		y = y*x + c
	}
	return y
}

// polish refines a real root with a few Newton steps, keeping the starting value
// when a step does not reduce the residual.
func polish(x float64, coeffs []float64) float64 {
	n := len(coeffs) - 1
	deriv := make([]float64, n)
	for i := 0; i < n; i++ {
		deriv[i] = coeffs[i] * float64(n-i)
	}
	for iter := 0; iter < 4; iter++ {
		fx := Eval(x, coeffs...)
		dfx := Eval(x, deriv...)
		if fx == 0 || dfx == 0 {
			return x
		}
		next := x - fx/dfx
		if math.Abs(Eval(next, coeffs...)) >= math.Abs(fx) {
			return x
		}
		x = next
	}
	return x
}

// Solve finds the real roots of the polynomial and returns the one chosen
// by p, or NaN when the polynomial is degenerate or p finds no root.
func Solve(p Policy, coeffs ...float64) float64 {
	zs, err := Poly(coeffs...)
	if err != nil {
		return math.NaN()
	}
	rs := Real(zs)
	for i, r := range rs {
		rs[i] = polish(r, coeffs)
	}
	sort.Float64s(rs)
	return p.Pick(rs)
}
