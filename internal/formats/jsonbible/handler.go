// Package jsonbible is the dataset handler for JSON Bible files, in both
// the wrapped ({"books": ...}) and bare (top-level book keys) shapes,
// optionally xz-compressed.
package jsonbible

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/versecast/versecast/core/dataset"
	"github.com/versecast/versecast/core/scripture"
	"github.com/versecast/versecast/internal/formats"
)

// Handler implements formats.Handler for JSON datasets.
type Handler struct{}

// Register registers this handler with the formats registry.
func Register() {
	formats.Register(&Handler{})
}

func init() {
	Register()
}

// Name implements formats.Handler.
func (h *Handler) Name() string {
	return "json-bible"
}

// Detect implements formats.Handler. A file qualifies when it has a
// .json or .json.xz extension and its content is valid JSON.
func (h *Handler) Detect(path string) bool {
	lower := strings.ToLower(path)
	if !strings.HasSuffix(lower, ".json") && !strings.HasSuffix(lower, ".json.xz") {
		return false
	}
	data, err := dataset.ReadBytes(path)
	if err != nil {
		return false
	}
	return json.Valid(data)
}

// Load implements formats.Handler. When the dataset carries no version
// string of its own, the file's base name stands in as the version so a
// loaded dataset is always identifiable.
func (h *Handler) Load(path string) (*scripture.Dataset, error) {
	ds, err := dataset.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if ds.Version == "" {
		base := filepath.Base(path)
		base = strings.TrimSuffix(base, ".xz")
		base = strings.TrimSuffix(base, filepath.Ext(base))
		ds.Version = base
	}
	return ds, nil
}
