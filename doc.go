// Package provtemplate expands a PROV template document against a
// bindings document into a fully instantiated PROV document.
//
// A template is an ordinary prov.Document whose record identifiers and
// attribute values may be var:/vargen: variables, annotated with tmpl:
// attributes (tmpl:linked, tmpl:value_i, tmpl:2dvalue_i_j, tmpl:time,
// tmpl:startTime, tmpl:endTime) that control how those variables expand
// into zero or more concrete instances. Expand resolves every variable,
// mints fresh identifiers for unbound vargen: variables, and reconstructs
// every relation's formal-argument positions according to the closed
// arity table in prov.FormalKeys.
//
// Parsing and serialization of concrete PROV syntaxes (PROV-N, PROV-JSON,
// the v3 JSON bindings dialect's own decoding) are outside this package;
// callers are expected to have already parsed both inputs into the
// prov.Document model.
package provtemplate
