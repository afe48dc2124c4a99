package prov

import (
	"strings"

	"github.com/openprovenance-go/provtemplate/errs"
)

// QualifiedName is a prefixed name resolved against a namespace IRI.
// Equality is defined by (NamespaceIRI, Local), not by Prefix: two
// QualifiedNames sharing an IRI and local part are the same name even if
// they were parsed under different prefix spellings.
type QualifiedName struct {
	Prefix       string
	Local        string
	NamespaceIRI string
}

// Equal reports whether q and o denote the same qualified name.
func (q QualifiedName) Equal(o QualifiedName) bool {
	return q.NamespaceIRI == o.NamespaceIRI && q.Local == o.Local
}

// Canonical returns the "prefix:local" string form used as a binding-store
// key. Bindings are keyed by this form rather than by (NamespaceIRI, Local)
// because bindings files always reference variables by their written
// prefix.
func (q QualifiedName) Canonical() string {
	return q.Prefix + ":" + q.Local
}

func (q QualifiedName) String() string { return q.Canonical() }

// IsVar reports whether q is a var: variable.
func (q QualifiedName) IsVar() bool { return q.Prefix == "var" }

// IsVargen reports whether q is a vargen: variable.
func (q QualifiedName) IsVargen() bool { return q.Prefix == "vargen" }

// IsVariable reports whether q occupies the var:/vargen: reserved namespaces.
func (q QualifiedName) IsVariable() bool { return q.IsVar() || q.IsVargen() }

// ParseQualifiedName splits s on its first ':' into a QualifiedName,
// resolving the prefix against reg. More than one ':' is an error, per the
// PROV template grammar's canonical-name syntax.
func ParseQualifiedName(s string, reg *Registry) (QualifiedName, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return QualifiedName{}, errs.New(errs.BindingsStructureError, "malformed qualified name %q", s)
	}
	prefix, local := parts[0], parts[1]
	iri, _ := reg.Resolve(prefix)
	return QualifiedName{Prefix: prefix, Local: local, NamespaceIRI: iri}, nil
}
