package perf

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"Aeroperf/internal/calc/aero"
	"Aeroperf/internal/calc/catalog"
	"Aeroperf/internal/calc/formula"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(aero.DefaultConstants())
	require.NoError(t, err)
	return e
}

// glider is a base record for a light sailplane.
func glider() formula.Record {
	return formula.Record{"ws": 300, "rho": 1.225, "e": 0.85, "ar": 20, "cd0": 0.012, "s": 11}
}

func TestSolverResolution(t *testing.T) {
	t.Parallel()
	e := newEngine(t)

	s, err := e.Solver(StepAll)
	require.NoError(t, err)
	assert.Same(t, e.Catalog().All(), s)

	s, err = e.Solver("a3")
	require.NoError(t, err)
	g, _ := e.Catalog().Appendix("A", 3)
	assert.Same(t, g, s)

	_, err = e.Solver("wing-geometry")
	require.NoError(t, err)

	for _, step := range []string{"99", "Z1", "no-such-relation", ""} {
		_, err = e.Solver(step)
		assert.True(t, errors.Is(err, ErrUnknownStep), step)
	}
	_, err = e.Solver("99")
	assert.True(t, errors.Is(err, catalog.ErrUnknownRef))
}

func TestRunPolarPlan(t *testing.T) {
	t.Parallel()
	e := newEngine(t)

	rec := glider()
	rec["v"] = 25
	rec, err := e.Run(PolarPlan, rec)
	require.NoError(t, err)

	q := 0.5 * 1.225 * 25 * 25
	cl := 300 / q
	cdi := cl * cl / (math.Pi * 0.85 * 20)
	cd := 0.012 + cdi
	ld := cl / cd
	gamma := math.Atan(1 / ld)
	assert.InDelta(t, q, rec["q"], 1e-9)
	assert.InDelta(t, cl, rec["cl"], 1e-12)
	assert.InDelta(t, cd, rec["cd"], 1e-12)
	assert.InDelta(t, ld, rec["ld"], 1e-9)
	assert.InDelta(t, 25*math.Sin(gamma), rec["vz"], 1e-9)
	assert.InDelta(t, q*11*cd*25, rec["p"], 1e-6)
}

func TestRunRejectsUnknownStepsBeforeSolving(t *testing.T) {
	t.Parallel()
	e := newEngine(t)

	rec := formula.Record{"b": 20, "s": 100}
	out, err := e.Run(Plan{Name: "broken", Steps: []string{"1", "nope"}}, rec)
	assert.True(t, errors.Is(err, ErrUnknownStep))
	assert.Equal(t, formula.Record{"b": 20, "s": 100}, out)
}

func TestSettleReachesTransitiveQuantities(t *testing.T) {
	t.Parallel()
	e := newEngine(t)

	one := e.Catalog().All().Solve(formula.Record{"m": 500, "s": 10})
	assert.NotContains(t, one, "ws")

	rec, passes := e.Settle(formula.Record{"m": 500, "s": 10}, 10)
	assert.InDelta(t, 500*9.80665/10, rec["ws"], 1e-9)
	assert.Greater(t, passes, 1)
	assert.LessOrEqual(t, passes, 10)

	_, passes = e.Settle(formula.Record{"zzz": 1}, 0)
	assert.Equal(t, 1, passes)
}

func TestSweep(t *testing.T) {
	t.Parallel()
	e := newEngine(t)

	table, err := e.Sweep(SweepInput{Base: glider(), From: 20, To: 40, Step: 5})
	require.NoError(t, err)
	assert.Equal(t, DefaultSweepOutputs, table.Columns)
	require.Len(t, table.Rows, 5)
	assert.Equal(t, []float64{20, 25, 30, 35, 40}, table.Column("v"))

	vz := table.Column("vz")
	for _, x := range vz {
		assert.False(t, math.IsNaN(x))
		assert.Greater(t, x, 0.0)
	}
	assert.Nil(t, table.Column("nope"))
}

func TestSweepKeepsUnderivableColumnsAsNaN(t *testing.T) {
	t.Parallel()
	e := newEngine(t)

	table, err := e.Sweep(SweepInput{
		Base:    formula.Record{"rho": 1.2},
		From:    10,
		To:      10,
		Step:    1,
		Outputs: []string{"v", "q", "cl"},
	})
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, 10.0, table.Rows[0][0])
	assert.InDelta(t, 60, table.Rows[0][1], 1e-9)
	assert.True(t, math.IsNaN(table.Rows[0][2]))
}

func TestSweepValidation(t *testing.T) {
	t.Parallel()
	e := newEngine(t)

	bad := []SweepInput{
		{From: 0, To: 10, Step: 1},
		{From: 10, To: 5, Step: 1},
		{From: 10, To: 20, Step: 0},
		{From: 1, To: 1e9, Step: 1},
		{From: 1, To: 1e20, Step: 1},
		{From: 1, To: math.MaxFloat64, Step: 1e-300},
		{From: 1, To: math.Inf(1), Step: 1},
		{From: math.NaN(), To: 10, Step: 1},
		{From: 1, To: 10, Step: math.NaN()},
	}
	for _, in := range bad {
		assert.NotPanics(t, func() { _, _ = in.Speeds() }, "%+v", in)
		_, err := e.Sweep(in)
		assert.True(t, errors.Is(err, ErrInvalidSweep), "%+v", in)
	}

	_, err := e.Sweep(SweepInput{From: 10, To: 20, Step: 5, Plan: Plan{Name: "x", Steps: []string{"0"}}})
	assert.True(t, errors.Is(err, ErrUnknownStep))
}

func TestSessionThreadsOneRecord(t *testing.T) {
	t.Parallel()
	e := newEngine(t)

	known := formula.Record{"h": 1000}
	s := e.NewSession(known)
	require.NoError(t, s.Run(AtmospherePlan))
	s.Set("v", 50)
	require.NoError(t, s.Apply("29"))
	require.NoError(t, s.Apply("30"))
	require.NoError(t, s.Apply("29"))

	mach, ok := s.Get("mach")
	require.True(t, ok)
	temp, _ := s.Get("temp")
	assert.InDelta(t, 50/math.Sqrt(1.4*287.05287*temp), mach, 1e-12)
	assert.Equal(t, formula.Record{"h": 1000}, known, "the caller's record is not mutated")

	assert.True(t, errors.Is(s.Apply("nope"), ErrUnknownStep))
	assert.GreaterOrEqual(t, s.Settle(3), 1)
	rec := s.Record()
	rec["h"] = -1
	h, _ := s.Get("h")
	assert.InDelta(t, 1000.0, h, 1e-6)

	empty := e.NewSession(nil)
	_, ok = empty.Get("v")
	assert.False(t, ok)
}

func TestLookupPlan(t *testing.T) {
	t.Parallel()
	p, ok := LookupPlan("polar-at-altitude")
	require.True(t, ok)
	assert.Equal(t, append(append([]string{}, AtmospherePlan.Steps...), PolarPlan.Steps...), p.Steps)
	_, ok = LookupPlan("nope")
	assert.False(t, ok)
}

func TestNewRejectsInvalidConstants(t *testing.T) {
	t.Parallel()
	c := aero.DefaultConstants()
	c.R = -1
	_, err := New(c)
	assert.True(t, errors.Is(err, aero.ErrInvalidConstants))
}

func TestTableJSONUsesNullForNaN(t *testing.T) {
	t.Parallel()
	in := Table{Columns: []string{"v", "cl"}, Rows: [][]float64{{10, math.NaN()}, {20, 0.5}}}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"columns":["v","cl"],"rows":[[10,null],[20,0.5]]}`, string(data))

	var out Table
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in.Columns, out.Columns)
	assert.True(t, math.IsNaN(out.Rows[0][1]))
	assert.Equal(t, 0.5, out.Rows[1][1])

	assert.Error(t, json.Unmarshal([]byte(`{"columns":["v"],"rows":[[1,2]]}`), &out))
}
