package binding

import (
	"strconv"
	"strings"

	"github.com/openprovenance-go/provtemplate/errs"
	"github.com/openprovenance-go/provtemplate/prov"
)

// IngestRecordAttributes builds a Store from a bundle's record-attribute
// bindings (§4.2 Record-attribute mode): for each record whose identifier
// is in the var: or vargen: namespace, its tmpl:value_N attributes
// contribute a 1-D binding at index N and its tmpl:2dvalue_I_J attributes
// contribute a 2-D binding at [I][J]. Any other attribute key, or any
// record whose identifier isn't a var:/vargen: variable, is an error.
func IngestRecordAttributes(bundle *prov.Bundle) (*Store, error) {
	store := New()
	for _, rec := range bundle.Records {
		qn, ok := prov.IsQualifiedName(rec.Identifier)
		if !ok || !qn.IsVariable() {
			return nil, errs.New(errs.BindingsStructureError,
				"binding record identifier %v is not a var:/vargen: name", rec.Identifier).
				WithRecord(qn.Canonical())
		}
		key := qn.Canonical()

		oneD := make(map[int]interface{})
		twoD := make(map[int]map[int]interface{})

		for _, a := range rec.ExtraAttributes {
			if a.Key.Prefix != "tmpl" {
				return nil, errs.New(errs.BindingsStructureError,
					"unknown binding attribute %s on %s", a.Key.Canonical(), key).WithVariable(key)
			}
			switch {
			case strings.HasPrefix(a.Key.Local, "2dvalue"):
				i, j, err := parse2DIndex(a.Key.Local)
				if err != nil {
					return nil, err.WithVariable(key)
				}
				row, ok := twoD[i]
				if !ok {
					row = make(map[int]interface{})
					twoD[i] = row
				}
				row[j] = a.Value
			case a.Key.Local == "value" || strings.HasPrefix(a.Key.Local, "value_"):
				i, err := parse1DIndex(a.Key.Local)
				if err != nil {
					return nil, err.WithVariable(key)
				}
				oneD[i] = a.Value
			default:
				return nil, errs.New(errs.BindingsStructureError,
					"unknown binding attribute %s on %s", a.Key.Canonical(), key).WithVariable(key)
			}
		}

		if len(twoD) > 0 {
			flat := make(map[int]interface{}, len(twoD))
			for i, row := range twoD {
				ordered, err := orderContiguous(key, row)
				if err != nil {
					return nil, err
				}
				values := make([]prov.Value, len(ordered))
				for k, v := range ordered {
					values[k] = v
				}
				flat[i] = values
			}
			list, err := orderContiguous(key, flat)
			if err != nil {
				return nil, err
			}
			store.Set(key, list)
			continue
		}

		if len(oneD) > 0 {
			list, err := orderContiguous(key, oneD)
			if err != nil {
				return nil, err
			}
			store.Set(key, list)
		}
	}
	return store, nil
}

func parse1DIndex(local string) (int, *errs.Error) {
	if local == "value" {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(local, "value_"))
	if err != nil {
		return 0, errs.New(errs.BindingsStructureError, "malformed binding attribute tmpl:%s", local)
	}
	return n, nil
}

func parse2DIndex(local string) (int, int, *errs.Error) {
	rest := strings.TrimPrefix(local, "2dvalue_")
	parts := strings.SplitN(rest, "_", 2)
	if len(parts) != 2 {
		return 0, 0, errs.New(errs.BindingsStructureError, "malformed binding attribute tmpl:%s", local)
	}
	i, err1 := strconv.Atoi(parts[0])
	j, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, errs.New(errs.BindingsStructureError, "malformed binding attribute tmpl:%s", local)
	}
	return i, j, nil
}
