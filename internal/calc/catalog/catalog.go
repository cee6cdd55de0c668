// Package catalog composes formula groups into the handbook catalog: the
// numbered main relations, the lettered appendices, and one aggregate
// solver over every descriptor they hold.
package catalog

import (
	"fmt"
	"sort"

	"Aeroperf/internal/calc/formula"
)

// AllLabel labels the aggregate solver.
const AllLabel = "all"

// Tables is the raw static definition of a catalog, keyed directly by
// handbook numbers. An entry may hold no descriptors (chart-only entries).
type Tables struct {
	Main       map[int][]formula.Descriptor
	Appendices map[string]map[int][]formula.Descriptor
}

// Catalog is immutable after New and may be shared between sessions.
type Catalog struct {
	solvers map[Ref]*formula.Group
	refs    []Ref
	all     *formula.Group
}

// New validates every reference and every group and builds the aggregate
// solver. Any structural problem is returned as an error naming the entry.
func New(t Tables) (*Catalog, error) {
	c := &Catalog{solvers: make(map[Ref]*formula.Group)}
	add := func(ref Ref, ds []formula.Descriptor) error {
		if err := ref.Validate(); err != nil {
			return err
		}
		g, err := formula.NewGroup(ref.String(), ds...)
		if err != nil {
			return fmt.Errorf("catalog entry %s: %w", ref, err)
		}
		c.solvers[ref] = g
		c.refs = append(c.refs, ref)
		return nil
	}

	for i, ds := range t.Main {
		if err := add(Main(i), ds); err != nil {
			return nil, err
		}
	}
	for letter, entries := range t.Appendices {
		for j, ds := range entries {
			if err := add(Appendix(letter, j), ds); err != nil {
				return nil, err
			}
		}
	}
	sort.Slice(c.refs, func(i, j int) bool { return c.refs[i].less(c.refs[j]) })

	groups := make([]*formula.Group, len(c.refs))
	for i, ref := range c.refs {
		groups[i] = c.solvers[ref]
	}
	c.all = formula.Merge(AllLabel, groups...)
	return c, nil
}

// Main returns the solver for numbered relation i.
func (c *Catalog) Main(i int) (*formula.Group, bool) {
	return c.Lookup(Main(i))
}

// Appendix returns the solver for entry j of the lettered appendix.
func (c *Catalog) Appendix(letter string, j int) (*formula.Group, bool) {
	return c.Lookup(Appendix(letter, j))
}

func (c *Catalog) Lookup(ref Ref) (*formula.Group, bool) {
	g, ok := c.solvers[ref]
	return g, ok
}

// Resolve parses a handbook reference and returns its solver.
func (c *Catalog) Resolve(s string) (*formula.Group, error) {
	ref, err := ParseRef(s)
	if err != nil {
		return nil, err
	}
	g, ok := c.solvers[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRef, ref)
	}
	return g, nil
}

// Refs lists every entry: main relations ascending, then each appendix in
// letter order.
func (c *Catalog) Refs() []Ref {
	out := make([]Ref, len(c.refs))
	copy(out, c.refs)
	return out
}

func (c *Catalog) Len() int { return len(c.refs) }

// All is the aggregate solver over every descriptor of every entry, in
// Refs order. Its Owner labels are the entries' reference strings.
func (c *Catalog) All() *formula.Group { return c.all }
