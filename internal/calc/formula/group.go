package formula

import "fmt"

// Group is the solver for one relation: a fixed, ordered set of descriptors
// that solve the same equation for different unknowns. A Group is immutable
// after construction and safe to share between sessions.
type Group struct {
	label    string
	all      []Descriptor
	owners   []string
	byOutput map[string]int
}

// NewGroup validates the descriptors and indexes them by output. A group
// may be empty; it then never solves anything.
func NewGroup(label string, ds ...Descriptor) (*Group, error) {
	g := &Group{
		label:    label,
		all:      make([]Descriptor, 0, len(ds)),
		owners:   make([]string, 0, len(ds)),
		byOutput: make(map[string]int, len(ds)),
	}
	for _, d := range ds {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("group %s: %w", label, err)
		}
		if _, dup := g.byOutput[d.Output]; dup {
			return nil, fmt.Errorf("group %s: %w: %s", label, ErrDuplicateOutput, d.Output)
		}
		g.byOutput[d.Output] = len(g.all)
		g.all = append(g.all, d)
		g.owners = append(g.owners, label)
	}
	return g, nil
}

// Merge flattens groups into one aggregate solver over every descriptor,
// in the given order. Descriptors from different groups may share an
// output; they all fire when solvable and the later one's value is kept.
// Owner reports which group each descriptor came from.
func Merge(label string, groups ...*Group) *Group {
	n := 0
	for _, g := range groups {
		n += len(g.all)
	}
	agg := &Group{
		label:    label,
		all:      make([]Descriptor, 0, n),
		owners:   make([]string, 0, n),
		byOutput: make(map[string]int),
	}
	for _, g := range groups {
		for i, d := range g.all {
			agg.byOutput[d.Output] = len(agg.all)
			agg.all = append(agg.all, d)
			agg.owners = append(agg.owners, g.owners[i])
		}
	}
	return agg
}

func (g *Group) Label() string { return g.label }

func (g *Group) Len() int { return len(g.all) }

// All returns the descriptors in declaration order.
func (g *Group) All() []Descriptor {
	out := make([]Descriptor, len(g.all))
	copy(out, g.all)
	return out
}

// Owner returns the label of the group that declared the i-th descriptor.
func (g *Group) Owner(i int) string { return g.owners[i] }

// Get returns the descriptor solving for output. On an aggregate the last
// declared one is returned, matching which value a pass keeps.
func (g *Group) Get(output string) (Descriptor, bool) {
	i, ok := g.byOutput[output]
	if !ok {
		return Descriptor{}, false
	}
	return g.all[i], true
}

// Outputs lists the distinct outputs in first-declaration order.
func (g *Group) Outputs() []string {
	seen := make(map[string]bool, len(g.all))
	out := make([]string, 0, len(g.all))
	for _, d := range g.all {
		if !seen[d.Output] {
			seen[d.Output] = true
			out = append(out, d.Output)
		}
	}
	return out
}

// Solvable returns, in declaration order, every descriptor whose inputs
// are all in known. Outputs that would only appear while solving are not
// considered.
func (g *Group) Solvable(known Names) []Descriptor {
	var out []Descriptor
	for _, d := range g.all {
		if d.Ready(known) {
			out = append(out, d)
		}
	}
	return out
}

// Solve runs one relaxation pass: it selects the solvable descriptors from
// the names present in rec on entry, then evaluates them in declaration
// order and stores each result under its output, overwriting any previous
// value. A descriptor that only becomes solvable through this pass's
// results fires on the next call. Solve returns rec.
func (g *Group) Solve(rec Record) Record {
	for _, d := range g.Solvable(rec.Names()) {
		rec[d.Output] = d.Eval(rec)
	}
	return rec
}
