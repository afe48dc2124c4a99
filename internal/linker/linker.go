// Package linker implements the link analyzer (component 3): it reads
// tmpl:linked attributes off a bundle's element records, builds the forest
// of link groups, computes per-group cardinality against the binding
// store, and emits a topologically ordered node list plus the partition of
// variables into groups.
package linker

import (
	"sort"
	"strconv"

	"github.com/openprovenance-go/provtemplate/binding"
	"github.com/openprovenance-go/provtemplate/errs"
	"github.com/openprovenance-go/provtemplate/prov"
)

// Result is the output of Analyze: the element records of a bundle in
// link-ordered sequence, the cardinality assigned to each variable, and the
// partition of variables into link groups.
type Result struct {
	OrderedNodes []*prov.Record
	Cardinality  map[string]int
	Groups       [][]string
}

// keyOf returns the canonical binding-store key for a record's identifier,
// or "" if the identifier isn't a qualified name (a record with a literal
// identifier can't participate in a link group, but is still emitted as
// its own singleton group with cardinality 1).
func keyOf(r *prov.Record) string {
	qn, ok := prov.IsQualifiedName(r.Identifier)
	if !ok {
		return ""
	}
	return qn.Canonical()
}

// Analyze runs the link analysis over a bundle's element records.
func Analyze(nodes []*prov.Record, store *binding.Store) (*Result, error) {
	keys := make([]string, len(nodes))
	linkedTo := make(map[string]string, len(nodes))

	for i, n := range nodes {
		k := keyOf(n)
		if k == "" {
			k = syntheticKey(i)
		}
		keys[i] = k

		if lv, ok := n.Linked(); ok {
			if qn, ok := prov.IsQualifiedName(lv); ok {
				linkedTo[k] = qn.Canonical()
			}
		}
	}

	edges, dependents := buildEdges(keys, linkedTo)
	rootList := roots(edges, dependents)

	rank := make(map[string]int, len(keys))
	var groups [][]string
	offset := 0
	for _, r := range rootList {
		var members []string
		if err := depths(edges, r, offset, rank, &members); err != nil {
			return nil, errs.New(errs.BindingsStructureError, "%s", err).WithVariable(r)
		}
		maxRank := offset
		for _, m := range members {
			if rank[m] > maxRank {
				maxRank = rank[m]
			}
		}
		groups = append(groups, members)
		offset = maxRank + 1
	}

	// Variables untouched by any tmpl:linked edge form singleton groups,
	// all sharing the offset left over after the last root group (§4.3
	// step 4; ties among them are broken by original record order via the
	// stable sort below).
	for _, k := range keys {
		if _, ok := rank[k]; ok {
			continue
		}
		rank[k] = offset
		groups = append(groups, []string{k})
	}

	cardinality := make(map[string]int, len(groups))
	for _, group := range groups {
		n, err := cardinalityOf(group, store)
		if err != nil {
			return nil, err
		}
		for _, k := range group {
			cardinality[k] = n
		}
	}

	type indexed struct {
		rec  *prov.Record
		rank int
	}
	slots := make([]indexed, len(nodes))
	for i, n := range nodes {
		slots[i] = indexed{rec: n, rank: rank[keys[i]]}
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].rank < slots[j].rank
	})
	ordered := make([]*prov.Record, len(slots))
	for i, s := range slots {
		ordered[i] = s.rec
	}

	return &Result{OrderedNodes: ordered, Cardinality: cardinality, Groups: groups}, nil
}

func syntheticKey(i int) string {
	return "#" + strconv.Itoa(i)
}

// cardinalityOf computes the cardinality of one link group against store:
// the common non-zero binding length among its members (erroring if they
// disagree), or 1 if no member has any binding at all. Covers both the
// "all members scalar-bound" case and the fully-unbound vargen case (an
// unbound singleton vargen: variable still expands to exactly one
// instance).
func cardinalityOf(group []string, store *binding.Store) (int, error) {
	common := 0
	for _, key := range group {
		n := store.Len(key)
		if n == 0 {
			continue
		}
		if common == 0 {
			common = n
			continue
		}
		if common != n {
			return 0, errs.New(errs.IncorrectNumberOfBindingsForGroupVariable,
				"link group members have differing binding counts (%d vs %d)", common, n).
				WithVariable(key)
		}
	}
	if common == 0 {
		common = 1
	}
	return common, nil
}
