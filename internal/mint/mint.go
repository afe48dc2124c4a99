// Package mint auto-generates fresh identifiers for unbound vargen:
// variables. Minting is memoized per variable within a single Table so
// that every occurrence of the same vargen: name resolves to the same
// list of minted identifiers across an expansion call, but two separate
// Tables (one per call to expand) never produce colliding identifiers.
package mint

import (
	"github.com/google/uuid"

	"github.com/openprovenance-go/provtemplate/prov"
)

// Table memoizes the minted identifiers for each vargen: variable seen
// during one expansion. The zero value is not usable; construct with New.
type Table struct {
	entries map[string][]prov.QualifiedName
}

// New returns an empty mint table.
func New() *Table {
	return &Table{entries: make(map[string][]prov.QualifiedName)}
}

// Ensure returns count minted identifiers for key under namespace ns,
// generating any that don't exist yet. Repeated calls with the same key
// return the previously minted identifiers unchanged, growing the list
// only if a later call asks for more than was minted before.
func (t *Table) Ensure(key string, count int, ns prov.Namespace) []prov.QualifiedName {
	existing := t.entries[key]
	for len(existing) < count {
		existing = append(existing, t.fresh(ns))
	}
	t.entries[key] = existing
	return existing[:count]
}

func (t *Table) fresh(ns prov.Namespace) prov.QualifiedName {
	return prov.QualifiedName{
		Prefix:       ns.Prefix,
		Local:        uuid.New().String(),
		NamespaceIRI: ns.IRI,
	}
}
