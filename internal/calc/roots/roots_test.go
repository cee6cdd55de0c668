package roots

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolyReturnsAllRoots(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		coeffs []float64
		real   []float64
		total  int
	}{
		{"linear", []float64{2, -6}, []float64{3}, 1},
		{"quadratic", []float64{1, -3, 2}, []float64{1, 2}, 2},
		{"cubic three real", []float64{1, -6, 11, -6}, []float64{1, 2, 3}, 3},
		{"cubic one real", []float64{1, 0, 1, 10}, []float64{-2}, 3},
		{"quartic", []float64{1, 0, -5, 0, 4}, []float64{-2, -1, 1, 2}, 4},
		{"leading zeros", []float64{0, 0, 1, -4}, []float64{4}, 1},
		{"complex only", []float64{1, 0, 1}, []float64{}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			zs, err := Poly(tc.coeffs...)
			require.NoError(t, err)
			assert.Len(t, zs, tc.total)

			rs := Real(zs)
			require.Len(t, rs, len(tc.real))
			for i := range rs {
				assert.InDelta(t, tc.real[i], rs[i], 1e-9)
			}
		})
	}
}

func TestPolyErrors(t *testing.T) {
	t.Parallel()

	_, err := Poly()
	assert.True(t, errors.Is(err, ErrDegenerate))
	_, err = Poly(0, 0)
	assert.True(t, errors.Is(err, ErrDegenerate))
	_, err = Poly(1, math.NaN())
	assert.True(t, errors.Is(err, ErrNonFinite))

	zs, err := Poly(7)
	require.NoError(t, err)
	assert.Empty(t, zs)
}

func TestSolvePolicies(t *testing.T) {
	t.Parallel()
	// (x+1)(x-2)(x-5)
	cubic := []float64{1, -6, 3, 10}

	assert.InDelta(t, 2, Solve(SmallestPositive, cubic...), 1e-9)
	assert.InDelta(t, 5, Solve(LargestPositive, cubic...), 1e-9)
	assert.InDelta(t, -1, Solve(Index(0), cubic...), 1e-9)
	assert.True(t, math.IsNaN(Solve(Index(3), cubic...)))

	// (x+1)(x+3): no positive root.
	assert.True(t, math.IsNaN(Solve(SmallestPositive, 1, 4, 3)))
	assert.True(t, math.IsNaN(Solve(LargestPositive, 1, 4, 3)))
	assert.True(t, math.IsNaN(Solve(LargestPositive, 0, 0)))
}

func TestPolicyNames(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "smallest positive real root", SmallestPositive.Name())
	assert.Equal(t, "largest positive real root", LargestPositive.Name())
	assert.Equal(t, "real root #1 in ascending order", Index(1).Name())
}

func TestEval(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0.0, Eval(2, 1, -3, 2))
	assert.Equal(t, 6.0, Eval(4, 1, -3, 2))
}
