// Package lookup resolves free-text scripture references against the
// active dataset and produces display-ready verse results. It composes
// the reference parser, the book resolver and the verse store.
//
// The engine is read-mostly: the active dataset and book-name table are
// bundled into one state value published through a single atomic pointer
// swap, so a reader observing a version switch sees either the fully-old
// or the fully-new state, never a mix. Queries themselves are pure,
// synchronous computations over in-memory data.
package lookup

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/versecast/versecast/core/locale"
	"github.com/versecast/versecast/core/reference"
	"github.com/versecast/versecast/core/scripture"
)

// VerseResult is one resolved verse, ready for a display surface.
// Chapter and Verse carry the store's string keys, matching the dataset's
// own numbering.
type VerseResult struct {
	Reference string           `json:"reference"`
	Text      string           `json:"text"`
	BookID    scripture.BookID `json:"bookKey"`
	Chapter   string           `json:"chapter"`
	Verse     string           `json:"verse"`
}

// state is the engine's swap unit: one dataset plus the book-name table
// that belongs to it.
type state struct {
	dataset *scripture.Dataset
	names   *locale.Table
}

var emptyState = &state{
	dataset: &scripture.Dataset{Books: scripture.VerseStore{}},
	names:   locale.Identity,
}

// Engine answers verse queries against the active dataset. The zero
// Engine is not usable; construct with New.
type Engine struct {
	registry *locale.Registry
	current  atomic.Pointer[state]
}

// New creates an Engine with an empty dataset and the given mapping
// registry. A nil registry gets a fresh empty one.
func New(registry *locale.Registry) *Engine {
	if registry == nil {
		registry = locale.NewRegistry()
	}
	e := &Engine{registry: registry}
	e.current.Store(emptyState)
	return e
}

// Registry returns the engine's mapping registry.
func (e *Engine) Registry() *locale.Registry {
	return e.registry
}

// Activate swaps in a new dataset together with the mapping profile
// named by mappingKey. An unknown key activates the identity mapping.
func (e *Engine) Activate(ds *scripture.Dataset, mappingKey string) {
	if ds == nil {
		e.current.Store(emptyState)
		return
	}
	e.current.Store(&state{
		dataset: ds,
		names:   e.registry.Apply(mappingKey),
	})
}

// ApplyMapping switches the active mapping profile while keeping the
// current dataset.
func (e *Engine) ApplyMapping(key string) {
	old := e.current.Load()
	e.current.Store(&state{
		dataset: old.dataset,
		names:   e.registry.Apply(key),
	})
}

// Dataset returns the active dataset.
func (e *Engine) Dataset() *scripture.Dataset {
	return e.current.Load().dataset
}

// Localize returns the display name for a book under the active mapping.
func (e *Engine) Localize(id scripture.BookID) string {
	return e.current.Load().names.Localize(id)
}

// Verse retrieves a single verse, or nil when the book, chapter or verse
// is absent. Absence is an expected, queryable condition.
func (e *Engine) Verse(id scripture.BookID, chapter, verse int) *VerseResult {
	st := e.current.Load()
	text, ok := st.dataset.Books.Verse(id, chapter, verse)
	if !ok {
		return nil
	}
	return st.result(id, strconv.Itoa(chapter), strconv.Itoa(verse), text)
}

// Chapter retrieves all verses of a chapter in ascending numeric verse
// order. The result is an empty non-nil slice when the chapter is
// absent, so it always serializes as a JSON array.
func (e *Engine) Chapter(id scripture.BookID, chapter int) []VerseResult {
	st := e.current.Load()
	verses := st.dataset.Books.Chapter(id, chapter)
	keys := st.dataset.Books.VerseKeys(id, chapter)
	results := make([]VerseResult, 0, len(keys))
	ch := strconv.Itoa(chapter)
	for _, key := range keys {
		results = append(results, *st.result(id, ch, key, verses[key]))
	}
	return results
}

// ResolveReference parses a free-text reference, resolves its book
// fragment and retrieves the named verse, range or chapter. It returns
// nil when parsing fails, the book does not resolve, or the resolved
// query finds no verses at all. A range that resolves partially returns
// only the verses found; gaps are never padded.
func (e *Engine) ResolveReference(text string) []VerseResult {
	ref := reference.Parse(text)
	if ref == nil {
		return nil
	}

	id, ok := e.ResolveBook(ref.Book)
	if !ok {
		return nil
	}

	if ref.IsChapter() {
		results := e.Chapter(id, ref.Chapter)
		if len(results) == 0 {
			return nil
		}
		return results
	}

	var results []VerseResult
	for v := ref.Verse; v <= ref.VerseEnd; v++ {
		if r := e.Verse(id, ref.Chapter, v); r != nil {
			results = append(results, *r)
		}
	}
	return results
}

// result renders one VerseResult with its display reference string.
func (st *state) result(id scripture.BookID, chapter, verse, text string) *VerseResult {
	return &VerseResult{
		Reference: fmt.Sprintf("%s %s:%s", st.names.Localize(id), chapter, verse),
		Text:      text,
		BookID:    id,
		Chapter:   chapter,
		Verse:     verse,
	}
}
