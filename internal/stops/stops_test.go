package stops

import "testing"

func TestAll_SortedCopy(t *testing.T) {
	got := All()
	if len(got) != len(catalogue) {
		t.Fatalf("len = %d, want %d", len(got), len(catalogue))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Name > got[i].Name {
			t.Fatalf("not sorted at %d: %q > %q", i, got[i-1].Name, got[i].Name)
		}
	}

	got[0].Name = "mutated"
	for _, s := range All() {
		if s.Name == "mutated" {
			t.Fatal("All must return a copy")
		}
	}
}

func TestAll_IDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range All() {
		if s.ID == "" || s.Name == "" {
			t.Fatalf("empty field in %+v", s)
		}
		if seen[s.ID] {
			t.Fatalf("duplicate id %q", s.ID)
		}
		seen[s.ID] = true
	}
}

func TestLookup(t *testing.T) {
	s, ok := Lookup("4205,4210")
	if !ok || s.Name != "Karlsplatz (U1/U2/U4)" {
		t.Fatalf("Lookup = %+v, %v", s, ok)
	}
	if _, ok := Lookup("0000"); ok {
		t.Fatal("unknown id must not be found")
	}
}
