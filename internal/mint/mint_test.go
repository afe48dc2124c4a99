package mint

import (
	"testing"

	"github.com/openprovenance-go/provtemplate/prov"
)

func TestEnsureMemoizesPerKey(t *testing.T) {
	table := New()
	ns := prov.Namespace{Prefix: "uuid", IRI: "urn:uuid:"}

	first := table.Ensure("vargen:x", 2, ns)
	second := table.Ensure("vargen:x", 2, ns)

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("got lengths %d, %d, want 2, 2", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("entry %d changed between calls: %v != %v", i, first[i], second[i])
		}
	}
	if first[0] == first[1] {
		t.Errorf("minted identifiers %v and %v should be distinct", first[0], first[1])
	}
}

func TestEnsureGrowsWithoutChangingPrefix(t *testing.T) {
	table := New()
	ns := prov.Namespace{Prefix: "uuid", IRI: "urn:uuid:"}

	small := table.Ensure("vargen:y", 1, ns)
	grown := table.Ensure("vargen:y", 3, ns)

	if len(grown) != 3 {
		t.Fatalf("got %d entries, want 3", len(grown))
	}
	if grown[0] != small[0] {
		t.Errorf("growing the table changed the first minted identifier")
	}
}

func TestEnsureIsolatedAcrossTables(t *testing.T) {
	ns := prov.Namespace{Prefix: "uuid", IRI: "urn:uuid:"}
	a := New().Ensure("vargen:z", 1, ns)
	b := New().Ensure("vargen:z", 1, ns)

	if a[0] == b[0] {
		t.Errorf("two separate mint tables minted the same identifier %v", a[0])
	}
}
