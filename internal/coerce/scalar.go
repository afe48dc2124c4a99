// Package coerce normalizes the raw interface{} payloads that arrive from
// a structured bindings document into the lexical string form a
// prov.Literal carries, or into one of the three raw primitive kinds the
// Value sum type allows (string, float64, bool). There is no
// reflection-based marshaling to support here, just an already-decoded Go
// value to turn into a bound PROV value, so this leans on spf13/cast
// rather than reimplementing numeric/bool parsing by hand.
package coerce

import (
	"fmt"

	"github.com/spf13/cast"
)

// IsScalar reports whether v is one of the raw primitive kinds a bound
// Value may take on directly (string, bool, or any numeric type).
func IsScalar(v interface{}) bool {
	switch v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

// Primitive narrows v to one of string, float64, or bool - the three raw
// primitive kinds the Value sum type allows - or returns an error if v
// can't be coerced to any of them.
func Primitive(v interface{}) (interface{}, error) {
	if !IsScalar(v) {
		return nil, fmt.Errorf("value %v (%T) is not a scalar", v, v)
	}
	switch v.(type) {
	case bool:
		return cast.ToBoolE(v)
	case string:
		return cast.ToStringE(v)
	default:
		return cast.ToFloat64E(v)
	}
}

// Lexical renders v in the lexical form a prov.Literal stores.
func Lexical(v interface{}) (string, error) {
	return cast.ToStringE(v)
}
