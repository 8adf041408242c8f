// Package session tracks what is currently on screen: the selected
// verse, stepwise navigation within its chapter, and a bounded history
// of everything shown. It is the state an operator drives between
// lookups, layered over the stateless query engine.
package session

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/versecast/versecast/core/lookup"
	"github.com/versecast/versecast/core/scripture"
)

// HistoryLimit caps the number of retained history entries. The oldest
// entry is dropped first.
const HistoryLimit = 50

// Entry is one shown reference in the history.
type Entry struct {
	ID        string    `json:"id"`
	Reference string    `json:"reference"`
	ShownAt   time.Time `json:"shownAt"`
}

// selection pins the current position: the resolved book plus the
// chapter's verse keys, with cursor as an index into those keys.
type selection struct {
	book   scripture.BookID
	ch     int
	keys   []string
	cursor int
}

// Session is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	engine  *lookup.Engine
	sel     *selection
	history []Entry
}

// New creates a session over the given engine.
func New(engine *lookup.Engine) *Session {
	return &Session{engine: engine}
}

// Engine returns the underlying query engine.
func (s *Session) Engine() *lookup.Engine {
	return s.engine
}

// Show resolves a free-text reference and makes its first verse the
// current selection. The full resolution is returned; nil means the
// reference did not resolve and the selection is unchanged.
func (s *Session) Show(text string) []lookup.VerseResult {
	results := s.engine.ResolveReference(text)
	if len(results) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveTo(results[0])
	s.record(results[0].Reference)
	return results
}

// Current returns the selected verse, or nil when nothing is selected
// or the selection no longer exists in the active dataset.
func (s *Session) Current() *lookup.VerseResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.at(0)
}

// Next advances to the following verse in the chapter. At the last
// verse it stays put and returns the current verse.
func (s *Session) Next() *lookup.VerseResult {
	return s.step(1)
}

// Prev steps back to the preceding verse in the chapter. At the first
// verse it stays put and returns the current verse.
func (s *Session) Prev() *lookup.VerseResult {
	return s.step(-1)
}

// History returns the shown references, most recent first.
func (s *Session) History() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.history))
	for i, e := range s.history {
		out[len(s.history)-1-i] = e
	}
	return out
}

// Clear drops the selection and the history.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = nil
	s.history = nil
}

func (s *Session) step(delta int) *lookup.VerseResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sel == nil {
		return nil
	}
	next := s.sel.cursor + delta
	if next < 0 || next >= len(s.sel.keys) {
		return s.at(0)
	}
	s.sel.cursor = next

	r := s.at(0)
	if r != nil {
		s.record(r.Reference)
	}
	return r
}

// moveTo repositions the cursor onto the given result within its
// chapter's verse key order. Callers hold the lock.
func (s *Session) moveTo(r lookup.VerseResult) {
	ch := atoi(r.Chapter)
	keys := s.engine.Dataset().Books.VerseKeys(r.BookID, ch)
	sel := &selection{book: r.BookID, ch: ch, keys: keys}
	for i, k := range keys {
		if k == r.Verse {
			sel.cursor = i
			break
		}
	}
	s.sel = sel
}

// at fetches the verse `offset` keys away from the cursor, bounded to
// the chapter. Callers hold the lock.
func (s *Session) at(offset int) *lookup.VerseResult {
	if s.sel == nil {
		return nil
	}
	i := s.sel.cursor + offset
	if i < 0 || i >= len(s.sel.keys) {
		return nil
	}
	return s.engine.Verse(s.sel.book, s.sel.ch, atoi(s.sel.keys[i]))
}

// record appends to the history, evicting the oldest entry past the
// cap. Callers hold the lock.
func (s *Session) record(reference string) {
	s.history = append(s.history, Entry{
		ID:        uuid.New().String(),
		Reference: reference,
		ShownAt:   time.Now(),
	})
	if len(s.history) > HistoryLimit {
		s.history = s.history[len(s.history)-HistoryLimit:]
	}
}

// atoi tolerates non-numeric verse keys; they map to 0 and simply
// never hit in the store.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
