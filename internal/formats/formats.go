// Package formats registers dataset format handlers. Each handler knows
// how to detect and load one on-disk dataset format into the normalized
// scripture model. Handlers register themselves from their package init,
// so importing a handler package is enough to enable its format.
package formats

import (
	"fmt"
	"sync"

	"github.com/versecast/versecast/core/scripture"
)

// Handler detects and loads one dataset format.
type Handler interface {
	// Name returns the format's identifier (e.g. "json-bible").
	Name() string

	// Detect reports whether the file at path looks like this format.
	// Detection must not mutate anything and should be cheap.
	Detect(path string) bool

	// Load reads the file at path into a Dataset.
	Load(path string) (*scripture.Dataset, error)
}

var (
	mu       sync.RWMutex
	handlers []Handler
)

// Register adds a handler to the registry. Handlers are tried in
// registration order.
func Register(h Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers = append(handlers, h)
}

// Handlers returns the registered handlers.
func Handlers() []Handler {
	mu.RLock()
	defer mu.RUnlock()
	return append([]Handler(nil), handlers...)
}

// Detect returns the first handler claiming the file, or nil.
func Detect(path string) Handler {
	for _, h := range Handlers() {
		if h.Detect(path) {
			return h
		}
	}
	return nil
}

// Load detects the format of the file at path and loads it.
func Load(path string) (*scripture.Dataset, error) {
	h := Detect(path)
	if h == nil {
		return nil, fmt.Errorf("no format handler for %s", path)
	}
	ds, err := h.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", h.Name(), err)
	}
	return ds, nil
}
