package binding

import (
	"github.com/openprovenance-go/provtemplate/errs"
	"github.com/openprovenance-go/provtemplate/internal/coerce"
	"github.com/openprovenance-go/provtemplate/prov"
)

// ValueSpec is one entry of a structured bindings list: either a qualified-
// name reference ({id: "prefix:local"}) or a typed literal
// ({value, type?}).
type ValueSpec struct {
	ID    string
	Value interface{}
	Type  string
}

// Structured is the declarative structured-bindings schema (§4.2
// Structured mode, §6): a context of namespace declarations plus a
// variable -> value-list mapping for each of the var: and vargen:
// namespaces.
type Structured struct {
	Context map[string]string
	Var     map[string][]ValueSpec
	Vargen  map[string][]ValueSpec
}

// IngestStructured builds a Store from a Structured bindings document,
// resolving qualified-name references against reg (after first declaring
// the document's own context namespaces on it).
func IngestStructured(doc Structured, reg *prov.Registry) (*Store, error) {
	for prefix, iri := range doc.Context {
		reg.Declare(prefix, iri)
	}

	store := New()
	if err := ingestGroup(store, "var", doc.Var, reg); err != nil {
		return nil, err
	}
	if err := ingestGroup(store, "vargen", doc.Vargen, reg); err != nil {
		return nil, err
	}
	return store, nil
}

func ingestGroup(store *Store, prefix string, group map[string][]ValueSpec, reg *prov.Registry) error {
	for name, specs := range group {
		key := prefix + ":" + name
		list := make([]interface{}, 0, len(specs))
		for _, spec := range specs {
			v, err := resolveValueSpec(spec, reg)
			if err != nil {
				return errs.New(errs.BindingsStructureError, "%s: %s", key, err).WithVariable(key).WithCause(err)
			}
			list = append(list, v)
		}
		store.Set(key, list)
	}
	return nil
}

func resolveValueSpec(spec ValueSpec, reg *prov.Registry) (prov.Value, error) {
	if spec.ID != "" {
		return prov.ParseQualifiedName(spec.ID, reg)
	}
	if spec.Type != "" {
		dt, err := prov.ParseQualifiedName(spec.Type, reg)
		if err != nil {
			return nil, err
		}
		lex, err := coerce.Lexical(spec.Value)
		if err != nil {
			return nil, err
		}
		return prov.Literal{Lexical: lex, Datatype: &dt}, nil
	}
	return coerce.Primitive(spec.Value)
}
