package provtemplate

import (
	"github.com/openprovenance-go/provtemplate/binding"
	"github.com/openprovenance-go/provtemplate/internal/linker"
	"github.com/openprovenance-go/provtemplate/internal/mint"
	"github.com/openprovenance-go/provtemplate/internal/resolve"
	"github.com/openprovenance-go/provtemplate/prov"
)

// Expand is the core API's single entry point (§6): it resolves every
// variable in template against store, expands multi-instance variables
// under their tmpl:linked constraints, mints fresh vargen: identifiers,
// and returns a new, fully instantiated Document. template and store are
// never mutated.
func Expand(template *prov.Document, store *binding.Store, opts Options) (*prov.Document, error) {
	reg := prov.NewRegistry()
	for prefix, iri := range template.Namespaces {
		reg.Declare(prefix, iri)
	}
	if opts.UUIDNamespace != nil {
		reg.SetUUIDNamespace(*opts.UUIDNamespace)
	}

	out := prov.New()
	out.DefaultNamespace = template.DefaultNamespace
	out.Namespaces = reg.Declarations()

	mintTable := mint.New()

	// A document with no explicit bundles still has one implicit scope:
	// its top-level records.
	topBundle := &prov.Bundle{Identifier: nil, Records: template.Records}
	expandedTop, err := expandBundle(topBundle, store, mintTable, reg, opts)
	if err != nil {
		return nil, err
	}
	out.Records = expandedTop.Records

	for _, b := range template.Bundles {
		expanded, err := expandBundle(b, store, mintTable, reg, opts)
		if err != nil {
			return nil, err
		}
		out.AddBundle(expanded)
	}

	return out, nil
}

// expandBundle expands one bundle's records: the link analysis runs over
// its element records, and every element and relation record is expanded
// against the resulting cardinality map. Every non-element record goes
// through relation expansion, so a record of unrecognized type fails with
// UnknownRelationError rather than being dropped.
func expandBundle(b *prov.Bundle, store *binding.Store, mintTable *mint.Table, reg *prov.Registry, opts Options) (*prov.Bundle, error) {
	elements := b.Elements()
	var relations []*prov.Record
	for _, r := range b.Records {
		if !r.Type.IsElement() {
			relations = append(relations, r)
		}
	}

	analysis, err := linker.Analyze(elements, store)
	if err != nil {
		return nil, err
	}

	res := resolve.New(store, mintTable, reg.UUIDNamespace(), analysis.Cardinality)

	expandedElements, err := expandElements(analysis.OrderedNodes, analysis.Cardinality, res)
	if err != nil {
		return nil, err
	}

	groupOf := groupOfVariables(analysis.Groups)
	expandedRelations, err := expandRelations(relations, groupOf, res, opts.MaxExpansions)
	if err != nil {
		return nil, err
	}

	// A bundle identifier is resolved exactly like an element identifier:
	// an unbound var: name passes through unresolved rather than being
	// dropped, unlike the relation-identifier path's "no identifier" quirk.
	idList := res.Resolve(b.Identifier, true)
	var identifier prov.Value
	if len(idList) > 0 {
		identifier = idList[0]
	}

	out := &prov.Bundle{Identifier: identifier}
	out.Records = append(out.Records, expandedElements...)
	out.Records = append(out.Records, expandedRelations...)
	return out, nil
}
