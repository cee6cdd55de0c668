// Package perf drives the formula catalog: it resolves steps (catalog
// entries, composite relations, or the whole catalog), runs them in a
// planned order against a quantity record, and tabulates airspeed sweeps.
package perf

import (
	"errors"
	"fmt"

	"Aeroperf/internal/calc/aero"
	"Aeroperf/internal/calc/catalog"
	"Aeroperf/internal/calc/formula"
)

// StepAll names the aggregate solver over the whole catalog.
const StepAll = "all"

var (
	ErrUnknownStep  = errors.New("perf: unknown step")
	ErrUnknownPlan  = errors.New("perf: unknown plan")
	ErrInvalidSweep = errors.New("perf: invalid sweep")
)

// Solver runs one relaxation pass over a record.
type Solver interface {
	Solve(rec formula.Record) formula.Record
}

// Engine holds the catalog and relation index built from one set of
// constants. It is immutable and may be shared between sessions.
type Engine struct {
	constants aero.Constants
	catalog   *catalog.Catalog
	index     *catalog.Index
}

func New(c aero.Constants) (*Engine, error) {
	cat, idx, err := aero.NewIndex(c)
	if err != nil {
		return nil, err
	}
	return &Engine{constants: c, catalog: cat, index: idx}, nil
}

func (e *Engine) Constants() aero.Constants { return e.constants }
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }
func (e *Engine) Relations() *catalog.Index { return e.index }

type relationSolver struct {
	index *catalog.Index
	name  string
}

func (r relationSolver) Solve(rec formula.Record) formula.Record {
	out, _ := r.index.Solve(r.name, rec)
	return out
}

// Solver resolves a step: "all", a relation name, or a catalog reference
// such as "12" or "A3".
func (e *Engine) Solver(step string) (Solver, error) {
	if step == StepAll {
		return e.catalog.All(), nil
	}
	if _, ok := e.index.Get(step); ok {
		return relationSolver{index: e.index, name: step}, nil
	}
	g, err := e.catalog.Resolve(step)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrUnknownStep, step, err)
	}
	return g, nil
}

// Solve runs one pass of a single step.
func (e *Engine) Solve(step string, rec formula.Record) (formula.Record, error) {
	s, err := e.Solver(step)
	if err != nil {
		return rec, err
	}
	return s.Solve(rec), nil
}

// Run resolves every step of the plan before touching the record, then
// runs one pass of each in order.
func (e *Engine) Run(p Plan, rec formula.Record) (formula.Record, error) {
	solvers := make([]Solver, len(p.Steps))
	for i, step := range p.Steps {
		s, err := e.Solver(step)
		if err != nil {
			return rec, fmt.Errorf("plan %s: %w", p.Name, err)
		}
		solvers[i] = s
	}
	for _, s := range solvers {
		rec = s.Solve(rec)
	}
	return rec, nil
}

// Settle repeats aggregate passes until a pass adds no new quantity or
// maxPasses is reached, and reports how many passes ran. Values already
// present may still be recomputed by each pass.
func (e *Engine) Settle(rec formula.Record, maxPasses int) (formula.Record, int) {
	if maxPasses < 1 {
		maxPasses = 1
	}
	all := e.catalog.All()
	passes := 0
	for passes < maxPasses {
		before := len(rec)
		rec = all.Solve(rec)
		passes++
		if len(rec) == before {
			break
		}
	}
	return rec, passes
}
