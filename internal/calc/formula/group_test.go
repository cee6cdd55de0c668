package formula

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aspectRatioGroup(t *testing.T) *Group {
	t.Helper()
	g, err := NewGroup("ar",
		Define("ar", []string{"b", "s"}, func(x ...float64) float64 { return x[0] * x[0] / x[1] }),
		Define("s", []string{"ar", "b"}, func(x ...float64) float64 { return x[1] * x[1] / x[0] }),
		Define("b", []string{"ar", "s"}, func(x ...float64) float64 { return math.Sqrt(x[0] * x[1]) }),
	)
	require.NoError(t, err)
	return g
}

func TestSolveAspectRatio(t *testing.T) {
	t.Parallel()
	g := aspectRatioGroup(t)

	cases := []struct {
		name  string
		given Record
		want  string
		value float64
	}{
		{"ar from span and area", Record{"b": 20, "s": 100}, "ar", 4},
		{"span from ar and area", Record{"ar": 4, "s": 100}, "b", 20},
		{"area from ar and span", Record{"ar": 4, "b": 20}, "s", 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := g.Solve(tc.given)
			require.Contains(t, got, tc.want)
			assert.InDelta(t, tc.value, got[tc.want], 1e-9)
		})
	}
}

func TestSolveIsIdempotent(t *testing.T) {
	t.Parallel()
	g := aspectRatioGroup(t)

	once := g.Solve(Record{"b": 20, "s": 100})
	twice := g.Solve(once.Clone())
	require.Len(t, twice, len(once))
	for k, v := range once {
		assert.InDelta(t, v, twice[k], 1e-9, k)
	}
}

func TestSolveWithNothingSolvable(t *testing.T) {
	t.Parallel()
	g := aspectRatioGroup(t)

	rec := Record{"b": 20, "w": 5000}
	out := g.Solve(rec)
	assert.Equal(t, Record{"b": 20, "w": 5000}, out)
	assert.Nil(t, g.Solve(nil))
}

func TestSolvableSelection(t *testing.T) {
	t.Parallel()
	one := func(x ...float64) float64 { return 1 }
	g, err := NewGroup("synthetic",
		Define("p", []string{"a"}, one),
		Define("q", []string{"a", "b"}, one),
		Define("r", []string{"b", "c"}, one),
		Define("t", []string{"a", "b", "c"}, one),
		Define("u", []string{"d"}, one),
	)
	require.NoError(t, err)

	outputs := func(ds []Descriptor) []string {
		var out []string
		for _, d := range ds {
			out = append(out, d.Output)
		}
		return out
	}

	assert.Empty(t, g.Solvable(NewNames()))
	assert.Equal(t, []string{"p"}, outputs(g.Solvable(NewNames("a"))))
	assert.Equal(t, []string{"p", "q"}, outputs(g.Solvable(NewNames("a", "b"))))
	assert.Equal(t, []string{"r"}, outputs(g.Solvable(NewNames("b", "c"))))
	assert.Equal(t, []string{"p", "q", "r", "t"}, outputs(g.Solvable(NewNames("c", "b", "a", "z"))))
	assert.Equal(t, []string{"u"}, outputs(g.Solvable(NewNames("d", "p", "q"))))
}

func TestNoSamePassChaining(t *testing.T) {
	t.Parallel()
	g, err := NewGroup("chain",
		Define("y", []string{"x"}, func(a ...float64) float64 { return a[0] + 1 }),
		Define("z", []string{"y"}, func(a ...float64) float64 { return a[0] * 2 }),
	)
	require.NoError(t, err)

	rec := g.Solve(Record{"x": 1})
	assert.Equal(t, 2.0, rec["y"])
	assert.NotContains(t, rec, "z", "z depends on a value produced in the same pass")

	rec = g.Solve(rec)
	assert.Equal(t, 4.0, rec["z"])
}

func TestDomainFailureIsData(t *testing.T) {
	t.Parallel()
	g, err := NewGroup("sink",
		Define("gamma", []string{"vz", "v"}, func(a ...float64) float64 { return math.Asin(a[0] / a[1]) }),
		Define("k", []string{"gamma"}, func(a ...float64) float64 { return a[0] * 2 }),
		Define("inv", []string{"v"}, func(a ...float64) float64 { return 1 / a[0] }),
		Define("boom", []string{"vz"}, func(a ...float64) float64 { panic("bad root index") }),
	)
	require.NoError(t, err)

	rec := g.Solve(Record{"vz": 5, "v": 0})
	assert.True(t, math.IsNaN(rec["gamma"]))
	assert.True(t, math.IsNaN(rec["inv"]), "division by zero reads as NaN")
	assert.True(t, math.IsNaN(rec["boom"]))

	rec = g.Solve(rec)
	assert.True(t, math.IsNaN(rec["k"]), "NaN propagates into later passes")
}

func TestNewGroupRejectsInvalidDefinitions(t *testing.T) {
	t.Parallel()
	id := func(a ...float64) float64 { return a[0] }

	cases := []struct {
		name string
		ds   []Descriptor
		want error
	}{
		{"missing output", []Descriptor{Define("", []string{"a"}, id)}, ErrInvalidDescriptor},
		{"no inputs", []Descriptor{Define("a", nil, id)}, ErrInvalidDescriptor},
		{"blank input", []Descriptor{Define("a", []string{""}, id)}, ErrInvalidDescriptor},
		{"output among inputs", []Descriptor{Define("a", []string{"b", "a"}, id)}, ErrInvalidDescriptor},
		{"repeated input", []Descriptor{Define("a", []string{"b", "b"}, id)}, ErrInvalidDescriptor},
		{"nil compute", []Descriptor{Define("a", []string{"b"}, nil)}, ErrInvalidDescriptor},
		{"duplicate output", []Descriptor{
			Define("a", []string{"b"}, id),
			Define("a", []string{"c"}, id),
		}, ErrDuplicateOutput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewGroup("bad", tc.ds...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestEmptyGroup(t *testing.T) {
	t.Parallel()
	g, err := NewGroup("placeholder")
	require.NoError(t, err)
	assert.Zero(t, g.Len())
	assert.Empty(t, g.Solvable(NewNames("a", "b")))
	assert.Equal(t, Record{"a": 1}, g.Solve(Record{"a": 1}))
}

func TestGetAndOutputs(t *testing.T) {
	t.Parallel()
	g := aspectRatioGroup(t)

	d, ok := g.Get("b")
	require.True(t, ok)
	assert.Equal(t, []string{"ar", "s"}, d.Inputs)
	assert.Equal(t, "b(ar,s)", d.String())
	_, ok = g.Get("cl")
	assert.False(t, ok)
	assert.Equal(t, []string{"ar", "s", "b"}, g.Outputs())
	assert.Equal(t, "ar", g.Owner(2))
}

func TestMergeKeepsCollisionsAndOwners(t *testing.T) {
	t.Parallel()
	first, err := NewGroup("1",
		Define("q", []string{"v"}, func(a ...float64) float64 { return a[0] * 10 }),
	)
	require.NoError(t, err)
	second, err := NewGroup("2",
		Define("q", []string{"v"}, func(a ...float64) float64 { return a[0] * 20 }),
		Define("r", []string{"v"}, func(a ...float64) float64 { return a[0] }),
	)
	require.NoError(t, err)
	empty, err := NewGroup("3")
	require.NoError(t, err)

	agg := Merge("all", first, empty, second)
	require.Equal(t, 3, agg.Len())
	assert.Equal(t, []string{"1", "2", "2"}, []string{agg.Owner(0), agg.Owner(1), agg.Owner(2)})
	assert.Equal(t, []string{"q", "r"}, agg.Outputs())

	last, ok := agg.Get("q")
	require.True(t, ok)
	assert.Equal(t, 40.0, last.Eval(Record{"v": 2}))

	rec := agg.Solve(Record{"v": 2})
	assert.Equal(t, 40.0, rec["q"], "the later declaration's value is kept")
	assert.Equal(t, 2.0, rec["r"])
}
