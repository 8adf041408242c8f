// Package library manages a directory of Bible dataset files: a version
// index naming each available dataset, the shared book-name mapping
// file, and cached loading through the format handler registry.
//
// Expected directory layout:
//
//	versions-index.json       (optional; the directory is scanned without it)
//	book_name_mapping.json    (optional)
//	KJV.json, LSG.json.xz, ...
package library

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/versecast/versecast/core/cache"
	"github.com/versecast/versecast/core/locale"
	"github.com/versecast/versecast/core/lookup"
	"github.com/versecast/versecast/core/scripture"
	"github.com/versecast/versecast/internal/formats"
)

const (
	// IndexFile is the version index file name inside a library directory.
	IndexFile = "versions-index.json"

	// MappingFile is the book-name mapping file name.
	MappingFile = "book_name_mapping.json"
)

// Entry describes one available dataset version.
type Entry struct {
	Name       string `json:"name"`
	Locale     string `json:"locale,omitempty"`
	Key        string `json:"key"`
	File       string `json:"file"`
	MappingKey string `json:"mappingKey,omitempty"`
}

// Library is a directory of dataset files plus the shared mapping
// registry. Loaded datasets are cached by content hash, so re-activating
// a recently used version skips the decode.
type Library struct {
	dir      string
	entries  []Entry
	registry *locale.Registry
	cache    *cache.DatasetCache
}

// Open reads a library directory. A missing index file is not an error:
// the directory is scanned and every file a format handler claims
// becomes an entry keyed by its base name.
func Open(dir string) (*Library, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("library directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("library path %s is not a directory", dir)
	}

	lib := &Library{
		dir:      dir,
		registry: locale.NewRegistry(),
		cache:    cache.NewDefaultDatasetCache(),
	}

	if err := lib.loadIndex(); err != nil {
		return nil, err
	}
	if err := lib.loadMapping(); err != nil {
		return nil, err
	}
	return lib, nil
}

// Dir returns the library directory.
func (l *Library) Dir() string {
	return l.dir
}

// Entries returns the available versions in index order.
func (l *Library) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// Entry looks up a version by key, case-insensitively.
func (l *Library) Entry(key string) (Entry, bool) {
	for _, e := range l.entries {
		if strings.EqualFold(e.Key, key) {
			return e, true
		}
	}
	return Entry{}, false
}

// Registry returns the library's mapping registry.
func (l *Library) Registry() *locale.Registry {
	return l.registry
}

// NewEngine returns a lookup engine bound to this library's mapping
// registry, with no dataset active yet.
func (l *Library) NewEngine() *lookup.Engine {
	return lookup.New(l.registry)
}

// Load loads the dataset for a version key, going through the cache.
func (l *Library) Load(key string) (*scripture.Dataset, error) {
	entry, ok := l.Entry(key)
	if !ok {
		return nil, fmt.Errorf("unknown version %q", key)
	}

	path := filepath.Join(l.dir, entry.File)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", entry.File, err)
	}

	sum := blake3.Sum256(data)
	hash := hex.EncodeToString(sum[:])
	if ds, ok := l.cache.Get(hash); ok {
		return ds, nil
	}

	ds, err := formats.Load(path)
	if err != nil {
		return nil, err
	}
	l.cache.Put(hash, ds)
	return ds, nil
}

// Activate loads a version and swaps it into the engine together with
// the entry's mapping profile.
func (l *Library) Activate(engine *lookup.Engine, key string) error {
	entry, ok := l.Entry(key)
	if !ok {
		return fmt.Errorf("unknown version %q", key)
	}
	ds, err := l.Load(key)
	if err != nil {
		return err
	}
	engine.Activate(ds, entry.MappingKey)
	return nil
}

// CacheStats exposes dataset cache statistics.
func (l *Library) CacheStats() cache.Stats {
	return l.cache.Stats()
}

// loadIndex reads versions-index.json, or scans the directory when the
// index is absent.
func (l *Library) loadIndex() error {
	data, err := os.ReadFile(filepath.Join(l.dir, IndexFile))
	if os.IsNotExist(err) {
		return l.scanDir()
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", IndexFile, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse %s: %w", IndexFile, err)
	}
	for i, e := range entries {
		if e.Key == "" || e.File == "" {
			return fmt.Errorf("%s: entry %d is missing key or file", IndexFile, i)
		}
	}
	l.entries = entries
	return nil
}

// scanDir builds entries from files a format handler claims. The entry
// key is the file's base name without dataset extensions.
func (l *Library) scanDir() error {
	files, err := os.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("failed to scan library: %w", err)
	}

	for _, f := range files {
		if f.IsDir() || f.Name() == MappingFile {
			continue
		}
		path := filepath.Join(l.dir, f.Name())
		if formats.Detect(path) == nil {
			continue
		}
		key := f.Name()
		key = strings.TrimSuffix(key, ".xz")
		key = strings.TrimSuffix(key, filepath.Ext(key))
		l.entries = append(l.entries, Entry{
			Name: key,
			Key:  key,
			File: f.Name(),
		})
	}
	sort.Slice(l.entries, func(i, j int) bool { return l.entries[i].Key < l.entries[j].Key })
	return nil
}

// loadMapping reads the shared book-name mapping file into the
// registry. A missing file leaves the registry empty.
func (l *Library) loadMapping() error {
	data, err := os.ReadFile(filepath.Join(l.dir, MappingFile))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", MappingFile, err)
	}
	return l.registry.LoadProfiles(data)
}
