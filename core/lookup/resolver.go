package lookup

import (
	"strings"

	"github.com/versecast/versecast/core/scripture"
)

// ResolveBook resolves a free-text book fragment to a canonical BookID
// from the active dataset, trying in strict priority order:
//
//  1. exact match against a localized display name
//  2. exact match against a BookID
//  3. prefix match against a localized display name
//  4. prefix match against a BookID
//
// All matching is case-insensitive and the first hit wins, so an exact
// match is never shadowed by a shorter prefix match of a different book.
// Localized names come first because operator input is normally in the
// display language. Book IDs are scanned in sorted order to keep prefix
// resolution deterministic.
func (e *Engine) ResolveBook(fragment string) (scripture.BookID, bool) {
	frag := strings.ToLower(strings.TrimSpace(fragment))
	if frag == "" {
		return "", false
	}

	st := e.current.Load()
	ids := st.dataset.Books.BookIDs()

	// The reverse mapping is one-to-one, so the exact localized tier is
	// independent of iteration order. The hit must still exist in the
	// store: the mapping may name books the active dataset lacks.
	if id, ok := st.names.Canonicalize(frag); ok {
		if _, exists := st.dataset.Books[id]; exists {
			return id, true
		}
	}
	for _, id := range ids {
		if strings.ToLower(string(id)) == frag {
			return id, true
		}
	}
	for _, id := range ids {
		if strings.HasPrefix(strings.ToLower(st.names.Localize(id)), frag) {
			return id, true
		}
	}
	for _, id := range ids {
		if strings.HasPrefix(strings.ToLower(string(id)), frag) {
			return id, true
		}
	}
	return "", false
}
