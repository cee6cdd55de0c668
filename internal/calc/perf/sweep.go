package perf

import (
	"encoding/json"
	"fmt"
	"math"

	"Aeroperf/internal/calc/formula"
)

// MaxSweepPoints bounds the rows of one sweep.
const MaxSweepPoints = 10000

// DefaultSweepOutputs are tabulated when a sweep names no outputs.
var DefaultSweepOutputs = []string{"v", "cl", "cd", "ld", "gamma", "vz", "d", "p"}

type SweepInput struct {
	Base    formula.Record
	From    float64
	To      float64
	Step    float64
	Plan    Plan
	Outputs []string
}

// Table holds one row per airspeed. Quantities that could not be derived
// are NaN.
type Table struct {
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

// Column returns the values of one column, or nil if it is absent.
func (t Table) Column(name string) []float64 {
	for j, c := range t.Columns {
		if c != name {
			continue
		}
		out := make([]float64, len(t.Rows))
		for i, row := range t.Rows {
			out[i] = row[j]
		}
		return out
	}
	return nil
}

type tableJSON struct {
	Columns []string     `json:"columns"`
	Rows    [][]*float64 `json:"rows"`
}

// MarshalJSON writes NaN cells as null.
func (t Table) MarshalJSON() ([]byte, error) {
	rows := make([][]*float64, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = make([]*float64, len(row))
		for j, x := range row {
			if formula.Finite(x) == x {
				rows[i][j] = &x
			}
		}
	}
	return json.Marshal(tableJSON{Columns: t.Columns, Rows: rows})
}

// UnmarshalJSON reads null cells as NaN.
func (t *Table) UnmarshalJSON(data []byte) error {
	var raw tableJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Columns = raw.Columns
	t.Rows = make([][]float64, len(raw.Rows))
	for i, row := range raw.Rows {
		if len(row) != len(raw.Columns) {
			return fmt.Errorf("table row %d has %d cells, want %d", i, len(row), len(raw.Columns))
		}
		t.Rows[i] = make([]float64, len(row))
		for j, x := range row {
			t.Rows[i][j] = math.NaN()
			if x != nil {
				t.Rows[i][j] = *x
			}
		}
	}
	return nil
}

// Speeds returns the airspeeds From, From+Step, ... up to To inclusive.
func (in SweepInput) Speeds() ([]float64, error) {
	for _, x := range []float64{in.From, in.To, in.Step} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: bounds and step must be finite", ErrInvalidSweep)
		}
	}
	if !(in.Step > 0) || !(in.From > 0) || !(in.To >= in.From) {
		return nil, fmt.Errorf("%w: need 0 < from <= to and step > 0", ErrInvalidSweep)
	}
	// The span is checked as a float; converting a huge one to int overflows.
	span := math.Floor((in.To-in.From)/in.Step + 1e-9)
	if math.IsInf(span, 0) || span+1 > MaxSweepPoints {
		return nil, fmt.Errorf("%w: %g points exceeds %d", ErrInvalidSweep, span+1, MaxSweepPoints)
	}
	n := int(span) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = in.From + float64(i)*in.Step
	}
	return out, nil
}

// Sweep runs the plan once per airspeed on a fresh copy of the base record
// with v set, and tabulates the requested outputs.
func (e *Engine) Sweep(in SweepInput) (Table, error) {
	speeds, err := in.Speeds()
	if err != nil {
		return Table{}, err
	}
	plan := in.Plan
	if len(plan.Steps) == 0 {
		plan = PolarPlan
	}
	cols := in.Outputs
	if len(cols) == 0 {
		cols = DefaultSweepOutputs
	}

	t := Table{Columns: append([]string{}, cols...), Rows: make([][]float64, 0, len(speeds))}
	for _, v := range speeds {
		rec := in.Base.Clone()
		if rec == nil {
			rec = formula.Record{}
		}
		rec["v"] = v
		rec, err = e.Run(plan, rec)
		if err != nil {
			return Table{}, err
		}
		row := make([]float64, len(cols))
		for j, c := range cols {
			x, ok := rec[c]
			if !ok {
				x = math.NaN()
			}
			row[j] = x
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
