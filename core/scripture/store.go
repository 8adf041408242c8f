// Package scripture defines the normalized in-memory model for a loaded
// Bible dataset: books keyed by a canonical identifier, chapters and verses
// keyed by their number kept as strings so sparse or irregular numbering
// survives loading unchanged.
package scripture

import (
	"sort"
	"strconv"
)

// BookID is the canonical, version-independent key identifying a book.
// It is the dataset's native key and is stable across all loaded versions.
type BookID string

// Verses maps a verse number (string key) to verse text.
type Verses map[string]string

// Chapters maps a chapter number (string key) to its verses.
type Chapters map[string]Verses

// VerseStore holds one dataset-version's full text. It is read-only after
// load; switching versions replaces the whole store, it is never mutated
// in place.
type VerseStore map[BookID]Chapters

// Dataset bundles a VerseStore with the metadata carried by the source file.
type Dataset struct {
	Version     string     `json:"version,omitempty"`
	Language    string     `json:"language,omitempty"`
	Translation string     `json:"translation,omitempty"`
	Books       VerseStore `json:"books"`
}

// BookIDs returns the store's book identifiers in sorted order.
// Map iteration order is not stable, so callers that need deterministic
// matching (the book resolver) go through this.
func (s VerseStore) BookIDs() []BookID {
	ids := make([]BookID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Chapter returns the verse map for the given chapter number, or nil when
// the book or chapter is absent. Absence is an expected, queryable
// condition, not an error.
func (s VerseStore) Chapter(id BookID, chapter int) Verses {
	chapters, ok := s[id]
	if !ok {
		return nil
	}
	return chapters[strconv.Itoa(chapter)]
}

// Verse returns the text for a single verse and whether it exists.
func (s VerseStore) Verse(id BookID, chapter, verse int) (string, bool) {
	vs := s.Chapter(id, chapter)
	if vs == nil {
		return "", false
	}
	text, ok := vs[strconv.Itoa(verse)]
	return text, ok
}

// ChapterKeys returns a book's chapter keys in numeric order.
func (s VerseStore) ChapterKeys(id BookID) []string {
	chapters, ok := s[id]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(chapters))
	for k := range chapters {
		keys = append(keys, k)
	}
	SortNumeric(keys)
	return keys
}

// VerseKeys returns a chapter's verse keys in numeric order.
func (s VerseStore) VerseKeys(id BookID, chapter int) []string {
	vs := s.Chapter(id, chapter)
	if vs == nil {
		return nil
	}
	keys := make([]string, 0, len(vs))
	for k := range vs {
		keys = append(keys, k)
	}
	SortNumeric(keys)
	return keys
}

// SortNumeric sorts string keys by their parsed integer value, so "10"
// sorts after "9". Keys that do not parse as integers sort after all
// numeric keys, lexically among themselves. Insertion and lexical order
// are never relied on: the data permits sparse, non-contiguous numbering.
func SortNumeric(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		ni, iok := parseKey(keys[i])
		nj, jok := parseKey(keys[j])
		switch {
		case iok && jok:
			return ni < nj
		case iok:
			return true
		case jok:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
}

func parseKey(k string) (int, bool) {
	n, err := strconv.Atoi(k)
	return n, err == nil
}
