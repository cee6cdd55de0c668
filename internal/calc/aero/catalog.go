// Package aero holds the aircraft performance formula tables: numbered
// relations, lettered appendices and the composite relation index built
// over them.
package aero

import (
	_ "embed"
	"fmt"

	"Aeroperf/internal/calc/catalog"
)

//go:embed relations.toml
var relationsTOML []byte

// NewCatalog builds the formula catalog with the given constants.
func NewCatalog(c Constants) (*catalog.Catalog, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	cat, err := catalog.New(catalog.Tables{
		Main:       mainTable(c),
		Appendices: appendices(c),
	})
	if err != nil {
		return nil, fmt.Errorf("building aero catalog: %w", err)
	}
	return cat, nil
}

// Relations returns the composite relation index.
func Relations() ([]catalog.Relation, error) {
	return catalog.LoadRelations(relationsTOML)
}

// NewIndex builds the catalog and binds the relation index to it.
func NewIndex(c Constants) (*catalog.Catalog, *catalog.Index, error) {
	cat, err := NewCatalog(c)
	if err != nil {
		return nil, nil, err
	}
	rels, err := Relations()
	if err != nil {
		return nil, nil, err
	}
	idx, err := catalog.NewIndex(cat, rels)
	if err != nil {
		return nil, nil, err
	}
	return cat, idx, nil
}
