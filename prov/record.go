package prov

// RecordType is the closed set of PROV element and relation kinds a
// template record may carry.
type RecordType string

const (
	// Element kinds.
	Entity   RecordType = "entity"
	Activity RecordType = "activity"
	Agent    RecordType = "agent"

	// Relation kinds, see the arity table in relation.go.
	WasGeneratedBy     RecordType = "wasGeneratedBy"
	Used               RecordType = "used"
	WasInformedBy      RecordType = "wasInformedBy"
	WasStartedBy       RecordType = "wasStartedBy"
	WasEndedBy         RecordType = "wasEndedBy"
	WasInvalidatedBy   RecordType = "wasInvalidatedBy"
	WasDerivedFrom     RecordType = "wasDerivedFrom"
	WasAttributedTo    RecordType = "wasAttributedTo"
	WasAssociatedWith  RecordType = "wasAssociatedWith"
	ActedOnBehalfOf    RecordType = "actedOnBehalfOf"
	WasInfluencedBy    RecordType = "wasInfluencedBy"
	AlternateOf        RecordType = "alternateOf"
	SpecializationOf   RecordType = "specializationOf"
	HadMember          RecordType = "hadMember"
)

// IsElement reports whether t is one of the element kinds.
func (t RecordType) IsElement() bool {
	switch t {
	case Entity, Activity, Agent:
		return true
	default:
		return false
	}
}

// IsRelation reports whether t is one of the relation kinds.
func (t RecordType) IsRelation() bool {
	_, ok := relationArity[t]
	return ok
}

// Attribute is an ordered (key, value) pair. Attribute lists are ordered
// sequences and duplicate keys with different values are permitted
// (multi-valued attributes); implementations must never collapse them into
// a key-unique map.
type Attribute struct {
	Key   QualifiedName
	Value Value
}

// FormalArgument is one positional slot of a relation's formal-argument
// tuple: a fixed key (e.g. prov:entity) paired with the template's value
// for that slot, or a nil Value if the slot is unbound/optional.
type FormalArgument struct {
	Key   QualifiedName
	Value Value
}

// Record is either a PROV element or a PROV relation.
//
// Identifier may itself be a variable (a QualifiedName in the var: or
// vargen: namespace). FormalArguments is populated for relation records
// only, in the fixed order and arity dictated by Type (see relation.go);
// it is nil for elements. ExtraAttributes holds every attribute not
// captured by a formal argument slot.
type Record struct {
	Identifier      Value
	Type            RecordType
	FormalArguments []FormalArgument
	ExtraAttributes []Attribute
}

// Attr returns the first extra attribute with the given key, if any.
func (r *Record) Attr(key QualifiedName) (Value, bool) {
	for _, a := range r.ExtraAttributes {
		if a.Key.Equal(key) {
			return a.Value, true
		}
	}
	return nil, false
}

// Linked returns the value of the tmpl:linked attribute on r, if present.
func (r *Record) Linked() (Value, bool) {
	return r.Attr(QualifiedName{Prefix: "tmpl", Local: "linked", NamespaceIRI: iriTmpl})
}
