package lookup

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/versecast/versecast/core/locale"
	"github.com/versecast/versecast/core/scripture"
)

const frenchMapping = `{
	"FRENCH: LOUIS SEGOND (1910)": {
		"John": "Jean",
		"Genesis": "Genèse"
	}
}`

func testDataset() *scripture.Dataset {
	return &scripture.Dataset{
		Version: "KJV",
		Books: scripture.VerseStore{
			"Genesis": scripture.Chapters{
				"1": scripture.Verses{"1": "In the beginning...", "2": "And the earth..."},
			},
			"John": scripture.Chapters{
				"3": scripture.Verses{"16": "For God so loved...", "17": "For God sent not...", "18": "He that believeth..."},
			},
			"Psalms": scripture.Chapters{
				"23": scripture.Verses{
					"1": "v1", "2": "v2", "3": "v3", "4": "v4", "5": "v5", "6": "v6",
				},
				"119": scripture.Verses{"9": "nine", "10": "ten", "2": "two"},
			},
		},
	}
}

func testEngine(t *testing.T, mappingKey string) *Engine {
	t.Helper()
	registry := locale.NewRegistry()
	if err := registry.LoadProfiles([]byte(frenchMapping)); err != nil {
		t.Fatal(err)
	}
	e := New(registry)
	e.Activate(testDataset(), mappingKey)
	return e
}

func TestVerse(t *testing.T) {
	e := testEngine(t, "")

	got := e.Verse("Genesis", 1, 1)
	want := &VerseResult{
		Reference: "Genesis 1:1",
		Text:      "In the beginning...",
		BookID:    "Genesis",
		Chapter:   "1",
		Verse:     "1",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Verse(Genesis,1,1) = %+v, want %+v", got, want)
	}

	if r := e.Verse("Genesis", 1, 99); r != nil {
		t.Errorf("verse past chapter end should be nil, got %+v", r)
	}
	if r := e.Verse("Genesis", 99, 1); r != nil {
		t.Errorf("absent chapter should be nil, got %+v", r)
	}
}

func TestChapterNumericOrder(t *testing.T) {
	e := testEngine(t, "")

	results := e.Chapter("Psalms", 119)
	var order []string
	for _, r := range results {
		order = append(order, r.Verse)
	}
	want := []string{"2", "9", "10"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("verse order = %v, want %v", order, want)
	}
}

func TestChapterAbsent(t *testing.T) {
	e := testEngine(t, "")

	results := e.Chapter("Psalms", 151)
	if results == nil {
		t.Fatal("absent chapter should yield an empty slice, not nil")
	}
	if len(results) != 0 {
		t.Errorf("absent chapter should yield no results, got %d", len(results))
	}

	// An empty chapter must serialize as an array, not null.
	data, err := json.Marshal(results)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("marshaled absent chapter = %s, want []", data)
	}
}

func TestResolveReferenceSingleVerse(t *testing.T) {
	e := testEngine(t, "")

	results := e.ResolveReference("Genesis 1:1")
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	want := VerseResult{
		Reference: "Genesis 1:1",
		Text:      "In the beginning...",
		BookID:    "Genesis",
		Chapter:   "1",
		Verse:     "1",
	}
	if results[0] != want {
		t.Errorf("result = %+v, want %+v", results[0], want)
	}
}

func TestResolveReferenceLocalized(t *testing.T) {
	e := testEngine(t, "FRENCH: LOUIS SEGOND (1910)")

	results := e.ResolveReference("Jean 3:16")
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].BookID != "John" {
		t.Errorf("BookID = %q, want John", results[0].BookID)
	}
	if results[0].Reference != "Jean 3:16" {
		t.Errorf("Reference = %q, want Jean 3:16", results[0].Reference)
	}
}

func TestResolveReferenceWholeChapter(t *testing.T) {
	e := testEngine(t, "")

	results := e.ResolveReference("Psalms 23")
	if len(results) != 6 {
		t.Fatalf("got %d results, want 6", len(results))
	}
	for i, r := range results {
		wantVerse := string(rune('1' + i))
		if r.Verse != wantVerse {
			t.Errorf("results[%d].Verse = %q, want %q", i, r.Verse, wantVerse)
		}
	}
}

func TestResolveReferenceRange(t *testing.T) {
	e := testEngine(t, "")

	results := e.ResolveReference("John 3:16-18")
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	var order []string
	for _, r := range results {
		order = append(order, r.Verse)
	}
	if !reflect.DeepEqual(order, []string{"16", "17", "18"}) {
		t.Errorf("range order = %v", order)
	}
}

func TestResolveReferenceRangePastEnd(t *testing.T) {
	e := testEngine(t, "")

	// Chapter ends at verse 18; the missing tail is dropped, not padded.
	results := e.ResolveReference("John 3:17-25")
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Verse != "17" || results[1].Verse != "18" {
		t.Errorf("results = %v", results)
	}
}

func TestResolveReferenceFailures(t *testing.T) {
	e := testEngine(t, "")

	tests := []struct {
		name  string
		input string
	}{
		{name: "unparseable", input: "hello world how are you"},
		{name: "unknown book", input: "Atlantis 1:1"},
		{name: "range with no verses found", input: "John 3:40-50"},
		{name: "absent chapter", input: "Genesis 99"},
		{name: "empty", input: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if results := e.ResolveReference(tt.input); results != nil {
				t.Errorf("ResolveReference(%q) = %v, want nil", tt.input, results)
			}
		})
	}
}

func TestApplyMappingKeepsDataset(t *testing.T) {
	e := testEngine(t, "")

	if got := e.Localize("John"); got != "John" {
		t.Errorf("Localize(John) = %q before mapping", got)
	}
	e.ApplyMapping("FRENCH: LOUIS SEGOND (1910)")
	if got := e.Localize("John"); got != "Jean" {
		t.Errorf("Localize(John) = %q after mapping", got)
	}
	if e.Dataset().Version != "KJV" {
		t.Error("dataset should survive a mapping switch")
	}

	e.ApplyMapping("nonexistent")
	if got := e.Localize("John"); got != "John" {
		t.Errorf("Localize(John) = %q after unknown key, want verbatim", got)
	}
}

func TestActivateSwapsWholesale(t *testing.T) {
	e := testEngine(t, "FRENCH: LOUIS SEGOND (1910)")

	web := &scripture.Dataset{
		Version: "WEB",
		Books: scripture.VerseStore{
			"Genesis": scripture.Chapters{"1": scripture.Verses{"1": "In the beginning God created..."}},
		},
	}
	e.Activate(web, "")

	results := e.ResolveReference("Genesis 1:1")
	if len(results) != 1 || results[0].Text != "In the beginning God created..." {
		t.Errorf("results after swap = %v", results)
	}
	// Old mapping must not leak into the new state.
	if r := e.ResolveReference("Jean 3:16"); r != nil {
		t.Errorf("stale localized name resolved after swap: %v", r)
	}
}

func TestEmptyEngine(t *testing.T) {
	e := New(nil)
	if r := e.ResolveReference("Genesis 1:1"); r != nil {
		t.Errorf("empty engine resolved %v", r)
	}
	if got := e.Localize("Genesis"); got != "Genesis" {
		t.Errorf("Localize on empty engine = %q", got)
	}
}
