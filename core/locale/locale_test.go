package locale

import (
	"reflect"
	"testing"

	"github.com/versecast/versecast/core/scripture"
)

const mappingSample = `{
	"FRENCH: LOUIS SEGOND (1910)": {
		"John": "Jean",
		"Genesis": "Genèse",
		"Psalms": "Psaumes"
	},
	"DANISH": {
		"Exodus": "2 Mosebog"
	}
}`

func loadedRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	if err := r.LoadProfiles([]byte(mappingSample)); err != nil {
		t.Fatalf("LoadProfiles() error: %v", err)
	}
	return r
}

func TestLocalize(t *testing.T) {
	r := loadedRegistry(t)
	table := r.Apply("FRENCH: LOUIS SEGOND (1910)")

	tests := []struct {
		id   scripture.BookID
		want string
	}{
		{id: "John", want: "Jean"},
		{id: "Genesis", want: "Genèse"},
		{id: "Revelation", want: "Revelation"}, // unmapped: verbatim
	}
	for _, tt := range tests {
		if got := table.Localize(tt.id); got != tt.want {
			t.Errorf("Localize(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestCanonicalize(t *testing.T) {
	r := loadedRegistry(t)
	table := r.Apply("FRENCH: LOUIS SEGOND (1910)")

	tests := []struct {
		name   string
		input  string
		want   scripture.BookID
		wantOK bool
	}{
		{name: "exact", input: "Jean", want: "John", wantOK: true},
		{name: "case-insensitive", input: "jean", want: "John", wantOK: true},
		{name: "upper", input: "PSAUMES", want: "Psalms", wantOK: true},
		{name: "trimmed", input: "  Jean  ", want: "John", wantOK: true},
		{name: "absent", input: "Offenbarung", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.Canonicalize(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestApplyUnknownKeyFallsBackToIdentity(t *testing.T) {
	r := loadedRegistry(t)
	table := r.Apply("nonexistent")

	if got := table.Localize("Genesis"); got != "Genesis" {
		t.Errorf("Localize(Genesis) = %q, want identity", got)
	}
	if _, ok := table.Canonicalize("Genèse"); ok {
		t.Error("Canonicalize should miss with identity table")
	}
	if r.ActiveKey() != "" {
		t.Errorf("ActiveKey() = %q, want empty", r.ActiveKey())
	}
}

func TestApplyIdempotent(t *testing.T) {
	r := loadedRegistry(t)
	first := r.Apply("DANISH")
	second := r.Apply("DANISH")

	if !reflect.DeepEqual(first.forward, second.forward) {
		t.Error("forward tables differ after re-apply")
	}
	if !reflect.DeepEqual(first.reverse, second.reverse) {
		t.Error("reverse tables differ after re-apply")
	}
}

func TestApplySwitchRecomputesReverse(t *testing.T) {
	r := loadedRegistry(t)
	r.Apply("FRENCH: LOUIS SEGOND (1910)")
	table := r.Apply("DANISH")

	if _, ok := table.Canonicalize("Jean"); ok {
		t.Error("stale reverse entry survived a profile switch")
	}
	if id, ok := table.Canonicalize("2 mosebog"); !ok || id != "Exodus" {
		t.Errorf("Canonicalize(2 mosebog) = %q, %v", id, ok)
	}
}

func TestLoadProfilesInvalid(t *testing.T) {
	r := NewRegistry()
	if err := r.LoadProfiles([]byte(`[1,2]`)); err == nil {
		t.Error("LoadProfiles should reject non-object JSON")
	}
	// Registry stays usable with the identity table.
	if got := r.Table().Localize("Genesis"); got != "Genesis" {
		t.Errorf("Localize after failed load = %q", got)
	}
}

func TestKeys(t *testing.T) {
	r := loadedRegistry(t)
	want := []string{"DANISH", "FRENCH: LOUIS SEGOND (1910)"}
	if got := r.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}
