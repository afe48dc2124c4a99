package provtemplate

import "github.com/openprovenance-go/provtemplate/prov"

// Options configures one call to Expand.
type Options struct {
	// UUIDNamespace overrides the namespace vargen: identifiers are minted
	// under. If nil, the template's own declarations apply (§4.1): a
	// namespace declaration whose prefix is "uuid" overrides the built-in
	// default of urn:uuid:.
	UUIDNamespace *prov.Namespace

	// MaxExpansions caps the number of relation instances a single
	// relation record may expand into (the size of its cross-group
	// cartesian product). Zero means unbounded. Exceeding the cap aborts
	// expansion with ExpansionLimitExceeded.
	MaxExpansions int
}
