package prov

// relationArity is the closed formal-argument table from spec §4.5. Each
// relation type names its formal keys, in the positional order a relation
// instance must preserve after link-group regrouping.
var relationArity = map[RecordType][]string{
	WasGeneratedBy:    {"entity", "activity", "time"},
	Used:              {"activity", "entity", "time"},
	WasInformedBy:     {"informed", "informant"},
	WasStartedBy:      {"activity", "trigger", "starter", "time"},
	WasEndedBy:        {"activity", "trigger", "ender", "time"},
	WasInvalidatedBy:  {"entity", "activity", "time"},
	WasDerivedFrom:    {"generatedEntity", "usedEntity", "activity", "generation", "usage"},
	WasAttributedTo:   {"entity", "agent"},
	WasAssociatedWith: {"activity", "agent", "plan"},
	ActedOnBehalfOf:   {"delegate", "responsible", "activity"},
	WasInfluencedBy:   {"influencee", "influencer"},
	AlternateOf:       {"alternate1", "alternate2"},
	SpecializationOf:  {"specific", "general"},
	HadMember:         {"collection", "entity"},
}

// FormalKeys returns the ordered formal-argument keys for t, qualified
// under the prov: namespace, or (nil, false) if t is not a known relation
// type.
func FormalKeys(t RecordType) ([]QualifiedName, bool) {
	names, ok := relationArity[t]
	if !ok {
		return nil, false
	}
	keys := make([]QualifiedName, len(names))
	for i, n := range names {
		keys[i] = QualifiedName{Prefix: prefixProv, Local: n, NamespaceIRI: iriProv}
	}
	return keys, true
}
