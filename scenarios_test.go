package provtemplate_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	pt "github.com/openprovenance-go/provtemplate"
	"github.com/openprovenance-go/provtemplate/binding"
	"github.com/openprovenance-go/provtemplate/prov"
)

// Determinism (§8): two independent Expand calls over the same template
// and bindings, with no vargen: variables (each call mints fresh UUIDs),
// produce structurally equal documents.
func TestExpandIsDeterministic(t *testing.T) {
	build := func() (*prov.Document, *binding.Store) {
		tmpl := prov.New()
		tmpl.AddRecord(&prov.Record{
			Identifier:      varQN("quote"),
			Type:            prov.Entity,
			ExtraAttributes: []prov.Attribute{{Key: tmplKey("linked"), Value: varQN("author")}},
		})
		tmpl.AddRecord(&prov.Record{Identifier: varQN("author"), Type: prov.Agent})
		tmpl.AddRecord(&prov.Record{Type: prov.WasAttributedTo,
			FormalArguments: []prov.FormalArgument{
				{Key: provKey("entity"), Value: varQN("quote")},
				{Key: provKey("agent"), Value: varQN("author")},
			},
		})

		store := binding.New()
		store.Set("var:quote", []interface{}{exQN("q1"), exQN("q2")})
		store.Set("var:author", []interface{}{exQN("a1"), exQN("a2")})
		return tmpl, store
	}

	tmpl1, store1 := build()
	out1, err := pt.Expand(tmpl1, store1, pt.Options{})
	if err != nil {
		t.Fatalf("first Expand: %v", err)
	}

	tmpl2, store2 := build()
	out2, err := pt.Expand(tmpl2, store2, pt.Options{})
	if err != nil {
		t.Fatalf("second Expand: %v", err)
	}

	if diff := cmp.Diff(out1, out2); diff != "" {
		t.Errorf("Expand is not deterministic (-first +second):\n%s", diff)
	}
}

// Idempotence (§8): a template containing no var:/vargen: names is
// structurally equivalent to its expansion, including its namespace
// declarations: Expand must never stamp extra namespaces onto a document
// that never declared them.
func TestExpandGroundTemplateIsIdempotent(t *testing.T) {
	tmpl := prov.New()
	tmpl.AddRecord(&prov.Record{
		Identifier:      exQN("q1"),
		Type:            prov.Entity,
		ExtraAttributes: []prov.Attribute{{Key: provKey("value"), Value: "hello"}},
	})
	tmpl.AddRecord(&prov.Record{Identifier: exQN("a1"), Type: prov.Agent})
	tmpl.AddRecord(&prov.Record{
		Type: prov.WasAttributedTo,
		FormalArguments: []prov.FormalArgument{
			{Key: provKey("entity"), Value: exQN("q1")},
			{Key: provKey("agent"), Value: exQN("a1")},
		},
	})

	out, err := pt.Expand(tmpl, binding.New(), pt.Options{})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	if len(out.Namespaces) != 0 {
		t.Errorf("Namespaces = %v, want empty: a template declaring none must expand to none", out.Namespaces)
	}
	if diff := cmp.Diff(tmpl.Records, out.Records); diff != "" {
		t.Errorf("expansion of a ground template changed its records (-template +expansion):\n%s", diff)
	}
}

// A template's declared namespaces are carried onto the expansion
// unchanged, but the built-in reserved namespaces NewRegistry seeds
// internally (tmpl, prov, var, vargen, uuid) never leak onto output that
// never declared them.
func TestExpandCarriesOnlyDeclaredNamespaces(t *testing.T) {
	tmpl := prov.New()
	tmpl.Namespaces = map[string]string{"ex": "http://example.org/"}
	tmpl.AddRecord(&prov.Record{Identifier: exQN("q1"), Type: prov.Entity})

	out, err := pt.Expand(tmpl, binding.New(), pt.Options{})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	want := map[string]string{"ex": "http://example.org/"}
	if diff := cmp.Diff(want, out.Namespaces); diff != "" {
		t.Errorf("Namespaces mismatch (-want +got):\n%s", diff)
	}
}
