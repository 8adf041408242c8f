// Package locale maps canonical book identifiers to localized display
// names. Mappings are grouped into named profiles (one per
// dataset-language/version combination) loaded from a single JSON file:
//
//	{<profileKey>: {<bookID>: <localizedName>}}
//
// An unknown profile key yields the empty mapping, so lookups degrade to
// using the canonical identifier verbatim instead of failing.
package locale

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/versecast/versecast/core/scripture"
)

// Mapping is a one-to-one BookID to localized display name table.
type Mapping map[scripture.BookID]string

// Table is an immutable forward/reverse view of one active mapping.
// The reverse table is derived from the forward table at construction,
// never maintained independently, so the two cannot drift apart.
type Table struct {
	forward Mapping
	reverse map[string]scripture.BookID
}

// Identity is the empty table: every book localizes to its own ID.
var Identity = NewTable(nil)

// NewTable builds a Table from a forward mapping. The reverse lookup is
// case-folded.
func NewTable(forward Mapping) *Table {
	t := &Table{
		forward: make(Mapping, len(forward)),
		reverse: make(map[string]scripture.BookID, len(forward)),
	}
	for id, name := range forward {
		t.forward[id] = name
		t.reverse[strings.ToLower(name)] = id
	}
	return t
}

// Localize returns the localized display name for a book, or the ID
// verbatim when unmapped. It never fails.
func (t *Table) Localize(id scripture.BookID) string {
	if name, ok := t.forward[id]; ok {
		return name
	}
	return string(id)
}

// Canonicalize reverses a localized name to its BookID,
// case-insensitively. The second return is false when the name is not in
// the active mapping; absence is an expected outcome, not an error.
func (t *Table) Canonicalize(name string) (scripture.BookID, bool) {
	id, ok := t.reverse[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// Len returns the number of mapped books.
func (t *Table) Len() int {
	return len(t.forward)
}

// Registry holds the mapping profiles and the currently active table.
type Registry struct {
	profiles map[string]Mapping
	active   string
	table    *Table
}

// NewRegistry returns a Registry with no profiles and the identity table
// active.
func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[string]Mapping),
		table:    Identity,
	}
}

// LoadProfiles parses the mapping JSON file and replaces the registry's
// profile set. The active table is rebuilt against the new profiles.
func (r *Registry) LoadProfiles(data []byte) error {
	var profiles map[string]Mapping
	if err := json.Unmarshal(data, &profiles); err != nil {
		return fmt.Errorf("failed to parse book name mapping: %w", err)
	}
	if profiles == nil {
		profiles = make(map[string]Mapping)
	}
	r.profiles = profiles
	r.Apply(r.active)
	return nil
}

// Apply activates the named profile. An unknown key clears the active
// mapping to empty (identity fallback). Applying the same key twice
// produces an identical table both times.
func (r *Registry) Apply(key string) *Table {
	r.active = key
	if mapping, ok := r.profiles[key]; ok {
		r.table = NewTable(mapping)
	} else {
		r.table = Identity
	}
	return r.table
}

// Table returns the currently active table.
func (r *Registry) Table() *Table {
	return r.table
}

// ActiveKey returns the key of the currently active profile ("" when
// none was applied or the key was unknown at apply time).
func (r *Registry) ActiveKey() string {
	if _, ok := r.profiles[r.active]; ok {
		return r.active
	}
	return ""
}

// Keys returns the available profile keys, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.profiles))
	for k := range r.profiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
