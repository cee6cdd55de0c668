package sweep

import (
	"fmt"

	"Aeroperf/internal/calc/formula"
	"Aeroperf/internal/calc/perf"
)

type Input struct {
	Base    formula.Record `json:"base"`
	From    float64        `json:"from"`
	To      float64        `json:"to"`
	Step    float64        `json:"step"`
	Plan    string         `json:"plan"`  // built-in plan name, default polar
	Steps   []string       `json:"steps"` // custom plan, overrides Plan
	Outputs []string       `json:"outputs"`
}

// ResolvePlan returns the plan run at each airspeed.
func (in Input) ResolvePlan() (perf.Plan, error) {
	if len(in.Steps) > 0 {
		return perf.Plan{Name: "custom", Steps: in.Steps}, nil
	}
	if in.Plan == "" {
		return perf.PolarPlan, nil
	}
	p, ok := perf.LookupPlan(in.Plan)
	if !ok {
		return perf.Plan{}, fmt.Errorf("%w: %s", perf.ErrUnknownPlan, in.Plan)
	}
	return p, nil
}

func Calculate(e *perf.Engine, in Input) (perf.Table, error) {
	plan, err := in.ResolvePlan()
	if err != nil {
		return perf.Table{}, err
	}
	return e.Sweep(perf.SweepInput{
		Base:    in.Base,
		From:    in.From,
		To:      in.To,
		Step:    in.Step,
		Plan:    plan,
		Outputs: in.Outputs,
	})
}
