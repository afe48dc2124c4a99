package provtemplate

import (
	"github.com/openprovenance-go/provtemplate/errs"
	"github.com/openprovenance-go/provtemplate/internal/resolve"
	"github.com/openprovenance-go/provtemplate/prov"
)

// expandElements implements the Elements half of §4.5 over one bundle's
// link-ordered nodes, returning the concrete element records they expand
// into.
func expandElements(nodes []*prov.Record, cardinality map[string]int, res *resolve.Resolver) ([]*prov.Record, error) {
	var out []*prov.Record
	for _, n := range nodes {
		expanded, err := expandElement(n, cardinality, res)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

func expandElement(n *prov.Record, cardinality map[string]int, res *resolve.Resolver) ([]*prov.Record, error) {
	idQN, isVariable := prov.IsQualifiedName(n.Identifier)

	ids := res.Resolve(n.Identifier, true)
	if isVariable && idQN.IsVar() && len(ids) == 1 {
		if rqn, ok := prov.IsQualifiedName(ids[0]); ok && rqn.Equal(idQN) {
			return nil, errs.New(errs.UnboundMandatoryVariable,
				"element identifier %s has no binding", idQN.Canonical()).WithVariable(idQN.Canonical())
		}
	}

	count := 1
	if isVariable {
		if c, ok := cardinality[idQN.Canonical()]; ok {
			count = c
		}
	}
	if len(ids) > count {
		count = len(ids)
	}

	var kept []prov.Attribute
	for _, a := range n.ExtraAttributes {
		if isLinked(a.Key) {
			continue
		}
		kept = append(kept, a)
	}

	out := make([]*prov.Record, 0, count)
	for i := 0; i < count; i++ {
		id, err := pick(ids, i)
		if err != nil {
			return nil, err
		}

		var attrs []prov.Attribute
		for _, a := range kept {
			key, err := resolveKey(a.Key, res)
			if err != nil {
				return nil, err
			}
			values, err := res.ResolveAt(a.Value, false, i)
			if err != nil {
				return nil, err
			}
			for _, v := range flatten(values) {
				attrs = append(attrs, prov.Attribute{Key: key, Value: v})
			}
		}

		out = append(out, &prov.Record{
			Identifier:      id,
			Type:            n.Type,
			ExtraAttributes: attrs,
		})
	}
	return out, nil
}

// isLinked reports whether key is tmpl:linked, which never survives into
// the expanded output.
func isLinked(key prov.QualifiedName) bool {
	return key.Prefix == "tmpl" && key.Local == "linked"
}

// pick broadcasts a one-element list to any index, otherwise indexes
// directly, erroring if index is out of range.
func pick(list []prov.Value, index int) (prov.Value, error) {
	if len(list) == 1 {
		return list[0], nil
	}
	if index >= len(list) {
		return nil, errs.New(errs.IncorrectNumberOfBindingsForStatementVariable,
			"index %d out of range (%d bindings)", index, len(list))
	}
	return list[index], nil
}

// resolveKey resolves an attribute key that may itself be a variable,
// taking the first value if resolution yields a list (§4.5 step 3).
func resolveKey(key prov.QualifiedName, res *resolve.Resolver) (prov.QualifiedName, error) {
	if !key.IsVariable() {
		return key, nil
	}
	resolved := res.Resolve(key, false)
	if len(resolved) == 0 {
		return key, nil
	}
	if qn, ok := prov.IsQualifiedName(resolved[0]); ok {
		return qn, nil
	}
	return key, nil
}

// flatten expands a 2-D attribute-position binding (a []prov.Value row)
// into its member values; any other value is returned as a single-element
// slice.
func flatten(v prov.Value) []prov.Value {
	if row, ok := v.([]prov.Value); ok {
		return row
	}
	return []prov.Value{v}
}
