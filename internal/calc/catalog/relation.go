package catalog

import (
	"fmt"

	"Aeroperf/internal/calc/formula"

	"github.com/BurntSushi/toml"
)

// Relation names a real-world composite relationship and the catalog
// entries that jointly determine it.
type Relation struct {
	Name        string
	Description string
	Refs        []Ref
}

type relationFile struct {
	Relations []struct {
		Name        string   `toml:"name"`
		Description string   `toml:"description"`
		Refs        []string `toml:"refs"`
	} `toml:"relation"`
}

// LoadRelations parses a relation index:
//
//	[[relation]]
//	name = "wing-geometry"
//	description = "Span, area, chord and aspect ratio"
//	refs = ["1", "21", "2"]
func LoadRelations(data []byte) ([]Relation, error) {
	var f relationFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("parsing relations: %w", err)
	}

	seen := make(map[string]bool, len(f.Relations))
	out := make([]Relation, 0, len(f.Relations))
	for _, raw := range f.Relations {
		if raw.Name == "" {
			return nil, fmt.Errorf("%w: missing name", ErrInvalidRelation)
		}
		if seen[raw.Name] {
			return nil, fmt.Errorf("%w: %s declared twice", ErrInvalidRelation, raw.Name)
		}
		seen[raw.Name] = true
		if len(raw.Refs) == 0 {
			return nil, fmt.Errorf("%w: %s has no refs", ErrInvalidRelation, raw.Name)
		}
		rel := Relation{Name: raw.Name, Description: raw.Description}
		for _, s := range raw.Refs {
			ref, err := ParseRef(s)
			if err != nil {
				return nil, fmt.Errorf("relation %s: %w", raw.Name, err)
			}
			rel.Refs = append(rel.Refs, ref)
		}
		out = append(out, rel)
	}
	return out, nil
}

// Index binds relations to the catalog they reference. It adds no solve
// behavior of its own.
type Index struct {
	cat    *Catalog
	order  []string
	byName map[string]Relation
}

// NewIndex rejects relations that reference entries missing from c.
func NewIndex(c *Catalog, rels []Relation) (*Index, error) {
	idx := &Index{cat: c, byName: make(map[string]Relation, len(rels))}
	for _, rel := range rels {
		if _, dup := idx.byName[rel.Name]; dup {
			return nil, fmt.Errorf("%w: %s declared twice", ErrInvalidRelation, rel.Name)
		}
		for _, ref := range rel.Refs {
			if _, ok := c.Lookup(ref); !ok {
				return nil, fmt.Errorf("relation %s: %w: %s", rel.Name, ErrUnknownRef, ref)
			}
		}
		idx.byName[rel.Name] = rel
		idx.order = append(idx.order, rel.Name)
	}
	return idx, nil
}

// Names lists relation names in declaration order.
func (x *Index) Names() []string {
	out := make([]string, len(x.order))
	copy(out, x.order)
	return out
}

func (x *Index) Get(name string) (Relation, bool) {
	rel, ok := x.byName[name]
	return rel, ok
}

// Solvers returns the referenced catalog solvers in relation order.
func (x *Index) Solvers(name string) ([]*formula.Group, error) {
	rel, ok := x.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRelation, name)
	}
	out := make([]*formula.Group, len(rel.Refs))
	for i, ref := range rel.Refs {
		out[i], _ = x.cat.Lookup(ref)
	}
	return out, nil
}

// Solve runs one pass of each referenced solver, in order.
func (x *Index) Solve(name string, rec formula.Record) (formula.Record, error) {
	solvers, err := x.Solvers(name)
	if err != nil {
		return rec, err
	}
	for _, g := range solvers {
		rec = g.Solve(rec)
	}
	return rec, nil
}
