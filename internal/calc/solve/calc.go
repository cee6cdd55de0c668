package solve

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"Aeroperf/internal/calc/formula"
	"Aeroperf/internal/calc/perf"
)

var (
	ErrSettleTarget = errors.New("solve: settle only applies to the whole catalog")
	ErrPlanTarget   = errors.New("solve: plan and target are exclusive")
)

type Input struct {
	Record formula.Record `json:"record"`
	Target string         `json:"target"` // catalog ref, relation name or "all"
	Plan   string         `json:"plan"`   // built-in plan, instead of Target
	Settle bool           `json:"settle"`
}

type Result struct {
	Record formula.Record `json:"record"`
	Fired  []string       `json:"fired"`  // quantities added or changed, sorted
	Passes int            `json:"passes"` // solver passes run
}

// Calculate runs one pass of the target, each step of a plan once, or
// aggregate passes up to maxPasses when Settle is set. The input record is
// not modified.
func Calculate(e *perf.Engine, in Input, maxPasses int) (Result, error) {
	target := in.Target
	if in.Plan != "" {
		if target != "" || in.Settle {
			return Result{}, ErrPlanTarget
		}
		return runPlan(e, in)
	}
	if target == "" {
		target = perf.StepAll
	}
	if in.Settle && target != perf.StepAll {
		return Result{}, fmt.Errorf("%w: target %q", ErrSettleTarget, target)
	}

	s := e.NewSession(in.Record)
	passes := 1
	if in.Settle {
		passes = s.Settle(maxPasses)
	} else if err := s.Apply(target); err != nil {
		return Result{}, err
	}
	rec := s.Record()
	return Result{Record: rec, Fired: changed(in.Record, rec), Passes: passes}, nil
}

func runPlan(e *perf.Engine, in Input) (Result, error) {
	p, ok := perf.LookupPlan(in.Plan)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", perf.ErrUnknownPlan, in.Plan)
	}
	s := e.NewSession(in.Record)
	if err := s.Run(p); err != nil {
		return Result{}, err
	}
	rec := s.Record()
	return Result{Record: rec, Fired: changed(in.Record, rec), Passes: len(p.Steps)}, nil
}

func changed(before, after formula.Record) []string {
	var out []string
	for k, v := range after {
		old, ok := before[k]
		if !ok || !same(old, v) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func same(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b
}

// RelationInfo describes one entry of the relation index.
type RelationInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Refs        []string `json:"refs"`
}

func Relations(e *perf.Engine) []RelationInfo {
	idx := e.Relations()
	out := make([]RelationInfo, 0, len(idx.Names()))
	for _, name := range idx.Names() {
		rel, _ := idx.Get(name)
		info := RelationInfo{Name: rel.Name, Description: rel.Description}
		for _, r := range rel.Refs {
			info.Refs = append(info.Refs, r.String())
		}
		out = append(out, info)
	}
	return out
}

// EntryInfo describes one catalog entry. Chart-only entries have no
// formulas.
type EntryInfo struct {
	Ref      string   `json:"ref"`
	Outputs  []string `json:"outputs"`
	Formulas []string `json:"formulas"`
	Roots    []string `json:"roots,omitempty"`
}

func Entries(e *perf.Engine) []EntryInfo {
	cat := e.Catalog()
	out := make([]EntryInfo, 0, cat.Len())
	for _, ref := range cat.Refs() {
		g, _ := cat.Lookup(ref)
		info := EntryInfo{Ref: ref.String(), Outputs: g.Outputs(), Formulas: []string{}}
		for _, d := range g.All() {
			info.Formulas = append(info.Formulas, d.String())
			if d.Roots != "" {
				info.Roots = append(info.Roots, d.Output+": "+d.Roots)
			}
		}
		out = append(out, info)
	}
	return out
}
