package batch

import (
	"errors"
	"fmt"

	"Aeroperf/internal/calc/formula"
	"Aeroperf/internal/calc/perf"
	"Aeroperf/internal/calc/solve"
)

// MaxItems bounds one batch request.
const MaxItems = 1000

var ErrNoItems = errors.New("batch: no items")

type Input struct {
	Target string           `json:"target"`
	Settle bool             `json:"settle"`
	Items  []formula.Record `json:"items"`
}

type Result struct {
	Results []solve.Result `json:"results"`
}

// Calculate solves every record with the same target. The target is
// checked once before any record is solved.
func Calculate(e *perf.Engine, in Input, maxPasses int) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, ErrNoItems
	}
	if len(in.Items) > MaxItems {
		return Result{}, fmt.Errorf("batch: %d items exceeds %d", len(in.Items), MaxItems)
	}
	if in.Target != "" {
		if _, err := e.Solver(in.Target); err != nil {
			return Result{}, err
		}
	}
	out := Result{Results: make([]solve.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := solve.Calculate(e, solve.Input{Record: item, Target: in.Target, Settle: in.Settle}, maxPasses)
		if err != nil {
			return Result{}, fmt.Errorf("item %d: %w", i, err)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
