package binding

import (
	"sort"

	"github.com/openprovenance-go/provtemplate/errs"
)

// orderContiguous validates that the keys of idx form the contiguous range
// [0, k) and returns the values in that order. It is used to turn the
// index-keyed intermediate maps that record-attribute ingestion builds
// (tmpl:value_N, tmpl:2dvalue_I_J) into the ordered slices the Store holds.
func orderContiguous(variable string, idx map[int]interface{}) ([]interface{}, error) {
	if len(idx) == 0 {
		return nil, nil
	}
	keys := make([]int, 0, len(idx))
	for k := range idx {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	if keys[0] != 0 {
		return nil, errs.New(errs.BindingsStructureError,
			"bindings for %s do not start at index 0", variable).WithVariable(variable)
	}
	for i, k := range keys {
		if k != i {
			return nil, errs.New(errs.BindingsStructureError,
				"bindings for %s skip index %d", variable, i).WithVariable(variable)
		}
	}
	out := make([]interface{}, len(keys))
	for i, k := range keys {
		out[i] = idx[k]
	}
	return out, nil
}
