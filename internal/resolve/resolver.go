// Package resolve implements the value resolver (component 4): given a
// variable occurrence, it looks the variable up in the binding store or
// mints a fresh vargen: identifier, memoizing so repeated occurrences of
// the same variable within one expansion resolve consistently.
package resolve

import (
	"github.com/openprovenance-go/provtemplate/binding"
	"github.com/openprovenance-go/provtemplate/errs"
	"github.com/openprovenance-go/provtemplate/internal/mint"
	"github.com/openprovenance-go/provtemplate/prov"
)

// Resolver is a stateful per-expansion helper parameterized by the
// binding store, a mint table, the configured UUID namespace, and the
// cardinality assigned to each variable by the link analyzer.
type Resolver struct {
	store       *binding.Store
	mint        *mint.Table
	uuidNS      prov.Namespace
	cardinality map[string]int
}

// New constructs a Resolver over one bundle's binding store and
// cardinality map, sharing mint across however many Resolvers one
// expansion call creates (so vargen identifiers stay consistent across
// bundles within the same expand call, per the document-level minting
// requirement).
func New(store *binding.Store, mintTable *mint.Table, uuidNS prov.Namespace, cardinality map[string]int) *Resolver {
	return &Resolver{store: store, mint: mintTable, uuidNS: uuidNS, cardinality: cardinality}
}

// Resolve implements resolve(name, isElementPosition, neededCount) from
// §4.4. Non-qualified-name values (literals, raw primitives) are returned
// unchanged as a one-element list.
func (r *Resolver) Resolve(v prov.Value, isElementPosition bool) []prov.Value {
	qn, ok := prov.IsQualifiedName(v)
	if !ok {
		return []prov.Value{v}
	}

	if qn.IsVargen() && isElementPosition {
		key := qn.Canonical()
		count := r.cardinality[key]
		if count == 0 {
			count = 1
		}
		minted := r.mint.Ensure(key, count, r.uuidNS)
		out := make([]prov.Value, len(minted))
		for i, m := range minted {
			out[i] = m
		}
		return out
	}

	if qn.IsVariable() {
		if list, ok := r.store.Get(qn.Canonical()); ok {
			return prov.ValueList(list)
		}
	}

	return []prov.Value{v}
}

// ResolveIdentifier resolves a relation's identifier against an explicit
// instance count, rather than the link-group cardinality map Resolve
// consults: a relation's instance count is its own cross-group cartesian
// product size, which need not match any single link group's cardinality
// (§4.5 step 6). Returns (nil, nil) for an unbound var: identifier, which
// the caller takes to mean "emit with no identifier".
func (r *Resolver) ResolveIdentifier(v prov.Value, count int) ([]prov.Value, error) {
	qn, ok := prov.IsQualifiedName(v)
	if !ok {
		return []prov.Value{v}, nil
	}

	if qn.IsVargen() {
		minted := r.mint.Ensure(qn.Canonical(), count, r.uuidNS)
		out := make([]prov.Value, len(minted))
		for i, m := range minted {
			out[i] = m
		}
		return out, nil
	}

	if qn.IsVar() {
		list, ok := r.store.Get(qn.Canonical())
		if !ok {
			return nil, nil
		}
		if len(list) != count {
			return nil, errs.New(errs.IncorrectNumberOfBindingsForStatementVariable,
				"relation identifier %s has %d bindings, need %d", qn.Canonical(), len(list), count).
				WithVariable(qn.Canonical())
		}
		return prov.ValueList(list), nil
	}

	return []prov.Value{v}, nil
}

// ResolveAt implements resolveAt(name, index): resolve then pick out the
// value at index (broadcasting a scalar/single-element list to every
// index). Returns IncorrectNumberOfBindingsForStatementVariable if index
// is out of range for a genuinely multi-valued resolution.
func (r *Resolver) ResolveAt(v prov.Value, isElementPosition bool, index int) (prov.Value, error) {
	list := r.Resolve(v, isElementPosition)
	if len(list) == 1 {
		return list[0], nil
	}
	if index >= len(list) {
		qn, _ := prov.IsQualifiedName(v)
		return nil, errs.New(errs.IncorrectNumberOfBindingsForStatementVariable,
			"index %d out of range for %s (%d bindings)", index, qn.Canonical(), len(list)).
			WithVariable(qn.Canonical())
	}
	return list[index], nil
}
