// Package dataset decodes Bible dataset files into the normalized
// scripture model. Two source shapes are accepted without configuration:
//
//   - wrapped: {"version": ..., "language": ..., "translation": ...,
//     "books": {<book>: {"<chapter>": {"<verse>": <text>}}}}
//   - bare: {<book>: {"<chapter>": {"<verse>": <text>}}}
//
// Upstream datasets are not uniformly wrapped, so bare-shape detection is
// heuristic: a top-level key counts as a book only if its value is a
// non-array object whose first key parses as a number (looks like a
// chapter). Keys failing the heuristic are skipped, never fatal.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/versecast/versecast/core/scripture"
)

// ErrParse reports input that is not parseable as structured data at all.
// Malformed individual books or chapters inside an otherwise-parseable
// dataset are excluded from the result instead, and do not produce an error.
var ErrParse = errors.New("dataset: not parseable")

// Shape identifies the detected source layout of a dataset file.
type Shape int

const (
	// ShapeUnknown means the input did not decode as a JSON object.
	ShapeUnknown Shape = iota
	// ShapeWrapped is the {"books": ...} layout with top-level metadata.
	ShapeWrapped
	// ShapeBare is the layout whose top-level keys are book identifiers.
	ShapeBare
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeWrapped:
		return "wrapped"
	case ShapeBare:
		return "bare"
	default:
		return "unknown"
	}
}

// wrappedMeta carries the optional top-level metadata of a wrapped dataset.
type wrappedMeta struct {
	Version     string          `json:"version"`
	Language    string          `json:"language"`
	Translation string          `json:"translation"`
	Books       json.RawMessage `json:"books"`
}

// Classify reports the shape of raw dataset bytes without building a store.
func Classify(data []byte) Shape {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return ShapeUnknown
	}
	if books, ok := top["books"]; ok && isObject(books) {
		return ShapeWrapped
	}
	return ShapeBare
}

// Decode parses dataset bytes into a Dataset. Input that is not a JSON
// object fails with an error wrapping ErrParse; a malformed individual
// book or chapter is excluded from the resulting store (partial load is
// acceptable and not an error).
func Decode(data []byte) (*scripture.Dataset, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if books, ok := top["books"]; ok && isObject(books) {
		return decodeWrapped(data)
	}
	return decodeBare(top)
}

func decodeWrapped(data []byte) (*scripture.Dataset, error) {
	var meta wrappedMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var rawBooks map[scripture.BookID]json.RawMessage
	if err := json.Unmarshal(meta.Books, &rawBooks); err != nil {
		return nil, fmt.Errorf("%w: books field: %v", ErrParse, err)
	}

	return &scripture.Dataset{
		Version:     meta.Version,
		Language:    meta.Language,
		Translation: meta.Translation,
		Books:       decodeBooks(rawBooks),
	}, nil
}

func decodeBare(top map[string]json.RawMessage) (*scripture.Dataset, error) {
	rawBooks := make(map[scripture.BookID]json.RawMessage)
	for key, value := range top {
		if looksLikeBook(value) {
			rawBooks[scripture.BookID(key)] = value
		}
	}
	return &scripture.Dataset{Books: decodeBooks(rawBooks)}, nil
}

// decodeBooks builds a VerseStore, dropping any book or chapter that does
// not decode into the expected nested map form.
func decodeBooks(raw map[scripture.BookID]json.RawMessage) scripture.VerseStore {
	store := make(scripture.VerseStore, len(raw))
	for id, value := range raw {
		var rawChapters map[string]json.RawMessage
		if err := json.Unmarshal(value, &rawChapters); err != nil {
			continue
		}
		chapters := make(scripture.Chapters, len(rawChapters))
		for num, rawVerses := range rawChapters {
			var verses scripture.Verses
			if err := json.Unmarshal(rawVerses, &verses); err != nil {
				continue
			}
			if len(verses) > 0 {
				chapters[num] = verses
			}
		}
		if len(chapters) > 0 {
			store[id] = chapters
		}
	}
	return store
}

// looksLikeBook implements the bare-shape heuristic: the value must be an
// object (not an array) and its first key, in document order, must parse
// as a number.
func looksLikeBook(value json.RawMessage) bool {
	key, ok := firstKey(value)
	if !ok {
		return false
	}
	_, err := strconv.ParseFloat(key, 64)
	return err == nil
}

// firstKey returns the first key of a JSON object in document order.
// Go maps do not preserve order, so the raw token stream is inspected.
func firstKey(value json.RawMessage) (string, bool) {
	dec := json.NewDecoder(bytes.NewReader(value))
	tok, err := dec.Token()
	if err != nil {
		return "", false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return "", false
	}
	tok, err = dec.Token()
	if err != nil {
		return "", false
	}
	key, ok := tok.(string)
	return key, ok
}

func isObject(value json.RawMessage) bool {
	trimmed := bytes.TrimLeft(value, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}
