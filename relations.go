package provtemplate

import (
	"fmt"

	"github.com/openprovenance-go/provtemplate/errs"
	"github.com/openprovenance-go/provtemplate/internal/resolve"
	"github.com/openprovenance-go/provtemplate/prov"
)

// groupOfVariables flattens the link analyzer's non-trivial (multi-member)
// groups into a variableKey -> group-id lookup, used to decide which
// relation formal arguments zip together versus cross-product against each
// other. Singleton groups are left out.
func groupOfVariables(groups [][]string) map[string]int {
	out := make(map[string]int)
	for gid, group := range groups {
		if len(group) < 2 {
			continue
		}
		for _, key := range group {
			out[key] = gid
		}
	}
	return out
}

// timeKey identifies the prov:time formal. tmplTimeAliases lists the
// tmpl: extra-attribute keys that feed it: tmpl:time, plus
// tmpl:startTime/tmpl:endTime, both of which also seed the same formal
// before expansion.
var (
	timeKey = prov.QualifiedName{Prefix: "prov", Local: "time", NamespaceIRI: "http://www.w3.org/ns/prov#"}

	tmplTimeAliases = []prov.QualifiedName{
		{Prefix: "tmpl", Local: "time", NamespaceIRI: "http://openprovenance.org/tmpl#"},
		{Prefix: "tmpl", Local: "startTime", NamespaceIRI: "http://openprovenance.org/tmpl#"},
		{Prefix: "tmpl", Local: "endTime", NamespaceIRI: "http://openprovenance.org/tmpl#"},
	}
)

func isTmplTimeAlias(key prov.QualifiedName) bool {
	for _, alias := range tmplTimeAliases {
		if key.Equal(alias) {
			return true
		}
	}
	return false
}

// firstTmplTimeAlias returns the first tmpl:time/startTime/endTime extra
// attribute present on rel, in that preference order.
func firstTmplTimeAlias(rel *prov.Record) (prov.Value, bool) {
	for _, alias := range tmplTimeAliases {
		if v, ok := rel.Attr(alias); ok {
			return v, true
		}
	}
	return nil, false
}

// expandRelations implements the Relations half of §4.5: positional
// formal-argument reconstruction, link-group zip, cross-group cartesian
// product.
func expandRelations(relations []*prov.Record, groupOf map[string]int, res *resolve.Resolver, maxExpansions int) ([]*prov.Record, error) {
	var out []*prov.Record
	for _, rel := range relations {
		expanded, err := expandRelation(rel, groupOf, res, maxExpansions)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

func expandRelation(rel *prov.Record, groupOf map[string]int, res *resolve.Resolver, maxExpansions int) ([]*prov.Record, error) {
	formalKeys, ok := prov.FormalKeys(rel.Type)
	if !ok {
		return nil, errs.New(errs.UnknownRelationError, "unrecognized relation type %q", rel.Type)
	}

	originals := make([]prov.Value, len(formalKeys))
	for i, key := range formalKeys {
		if key.Equal(timeKey) {
			if tv, ok := firstTmplTimeAlias(rel); ok {
				originals[i] = tv
				continue
			}
		}
		for _, fa := range rel.FormalArguments {
			if fa.Key.Equal(key) {
				originals[i] = fa.Value
				break
			}
		}
	}

	// Every formal slot in the arity table (other than time) names another
	// record's identifier, so resolution uses the same isElementPosition=
	// true path an element identifier does: that's what lets an unbound
	// vargen: variable reused across an element and a relation referencing
	// it mint once and resolve identically at each expansion index.
	resolved := make([][]prov.Value, len(formalKeys))
	for i, v := range originals {
		if v == nil {
			resolved[i] = []prov.Value{nil}
			continue
		}
		resolved[i] = res.Resolve(v, true)
	}

	groups := buildFormalGroups(originals, resolved, groupOf)
	tuplesPerGroup := make([][][]prov.Value, len(groups))
	for gi, g := range groups {
		tuplesPerGroup[gi] = zip(g.lists)
	}

	total := 1
	for _, tuples := range tuplesPerGroup {
		total *= len(tuples)
	}
	if maxExpansions > 0 && total > maxExpansions {
		return nil, errs.New(errs.ExpansionLimitExceeded,
			"relation %s would expand to %d instances, exceeding the configured limit of %d",
			rel.Type, total, maxExpansions)
	}

	combos := cartesian(tuplesPerGroup)

	idList, err := res.ResolveIdentifier(rel.Identifier, len(combos))
	if err != nil {
		return nil, err
	}

	// Extra attributes are resolved once per relation, not once per
	// expansion instance: a list-valued resolution expands into repeated
	// attributes attached identically to every instance, it is never
	// sliced one value per instance the way element attributes are.
	var extra []prov.Attribute
	for _, a := range rel.ExtraAttributes {
		if isTmplTimeAlias(a.Key) {
			continue
		}
		for _, fv := range res.Resolve(a.Value, false) {
			extra = append(extra, prov.Attribute{Key: a.Key, Value: fv})
		}
	}

	out := make([]*prov.Record, 0, len(combos))
	for i, combo := range combos {
		values := make([]prov.Value, len(formalKeys))
		for gi, g := range groups {
			for j, fi := range g.indices {
				values[fi] = combo[gi][j]
			}
		}

		var args []prov.FormalArgument
		for ki, key := range formalKeys {
			if values[ki] == nil {
				continue
			}
			args = append(args, prov.FormalArgument{Key: key, Value: values[ki]})
		}

		var id prov.Value
		if idList != nil {
			id = idList[i]
		}

		out = append(out, &prov.Record{
			Identifier:      id,
			Type:            rel.Type,
			FormalArguments: args,
			ExtraAttributes: extra,
		})
	}
	return out, nil
}

type formalGroup struct {
	indices []int
	lists   [][]prov.Value
}

// buildFormalGroups partitions a relation's formal slots by link-group
// membership (§4.5 step 3): formals whose template value is a variable
// belonging to the same non-trivial link group zip together; every other
// formal is its own singleton group.
func buildFormalGroups(originals []prov.Value, resolved [][]prov.Value, groupOf map[string]int) []*formalGroup {
	byKey := make(map[string]*formalGroup)
	var order []string
	for i, v := range originals {
		gk := fmt.Sprintf("singleton-%d", i)
		if qn, ok := prov.IsQualifiedName(v); ok {
			if gid, ok := groupOf[qn.Canonical()]; ok {
				gk = fmt.Sprintf("group-%d", gid)
			}
		}
		g, ok := byKey[gk]
		if !ok {
			g = &formalGroup{}
			byKey[gk] = g
			order = append(order, gk)
		}
		g.indices = append(g.indices, i)
		g.lists = append(g.lists, resolved[i])
	}
	groups := make([]*formalGroup, len(order))
	for i, gk := range order {
		groups[i] = byKey[gk]
	}
	return groups
}

// zip aligns parallel value lists into tuples: tuple[i][j] = lists[j][i],
// broadcasting any single-element list to every position. The tuple count
// is the longest list's length.
func zip(lists [][]prov.Value) [][]prov.Value {
	n := 1
	for _, l := range lists {
		if len(l) > n {
			n = len(l)
		}
	}
	tuples := make([][]prov.Value, n)
	for i := 0; i < n; i++ {
		tuple := make([]prov.Value, len(lists))
		for j, l := range lists {
			switch {
			case len(l) == 1:
				tuple[j] = l[0]
			case i < len(l):
				tuple[j] = l[i]
			default:
				tuple[j] = nil
			}
		}
		tuples[i] = tuple
	}
	return tuples
}

// cartesian computes the cross product of each group's zipped tuple
// sequence, one selection per group (§4.5 step 4).
func cartesian(tuplesPerGroup [][][]prov.Value) [][][]prov.Value {
	combos := [][][]prov.Value{{}}
	for _, tuples := range tuplesPerGroup {
		var next [][][]prov.Value
		for _, combo := range combos {
			for _, tuple := range tuples {
				extended := make([][]prov.Value, len(combo)+1)
				copy(extended, combo)
				extended[len(combo)] = tuple
				next = append(next, extended)
			}
		}
		combos = next
	}
	return combos
}
