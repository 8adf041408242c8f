// Package mybible is the dataset handler for MyBible.zone SQLite Bible
// modules (.SQLite3).
//
// MyBible.zone schema uses lowercase table/column names:
//   - verses table: book_number, chapter, verse, text
//   - books table: book_number, book_name
//   - info table: name, value pairs for metadata
package mybible

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/versecast/versecast/core/scripture"
	"github.com/versecast/versecast/internal/formats"
	"github.com/versecast/versecast/internal/sqlite"
)

// Handler implements formats.Handler for MyBible modules.
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
	return "mybible"
}

// Detect implements formats.Handler. Only the extension is checked here;
// schema problems surface at Load.
func (h *Handler) Detect(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".sqlite3")
}

// Load implements formats.Handler. Rows that fail to scan are skipped;
// the load only fails when the database cannot be opened or the verses
// table cannot be queried at all.
func (h *Handler) Load(path string) (*scripture.Dataset, error) {
	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	ds := &scripture.Dataset{
		Books: make(scripture.VerseStore),
	}
	loadInfo(db, ds)
	names := loadBookNames(db)

	rows, err := db.Query("SELECT book_number, chapter, verse, text FROM verses ORDER BY book_number, chapter, verse")
	if err != nil {
		return nil, fmt.Errorf("querying verses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookNumber, chapter, verse int
		var text sql.NullString
		if err := rows.Scan(&bookNumber, &chapter, &verse, &text); err != nil {
			continue
		}

		id := names[bookNumber]
		if id == "" {
			id = scripture.BookID("Book " + strconv.Itoa(bookNumber))
		}

		chapters, ok := ds.Books[id]
		if !ok {
			chapters = make(scripture.Chapters)
			ds.Books[id] = chapters
		}
		ch := strconv.Itoa(chapter)
		verses, ok := chapters[ch]
		if !ok {
			verses = make(scripture.Verses)
			chapters[ch] = verses
		}
		verses[strconv.Itoa(verse)] = stripHTML(text.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading verses: %w", err)
	}

	return ds, nil
}

// loadInfo fills dataset metadata from the info table. Missing metadata
// is non-fatal.
func loadInfo(db *sql.DB, ds *scripture.Dataset) {
	rows, err := db.Query("SELECT name, value FROM info")
	if err != nil {
		return
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			continue
		}
		switch name {
		case "description":
			ds.Translation = value
		case "language":
			ds.Language = value
		case "detailed_info":
			if ds.Translation == "" {
				ds.Translation = value
			}
		}
	}
	if ds.Version == "" {
		ds.Version = ds.Translation
	}
}

// loadBookNames reads the books table into a book_number to name map.
// A missing books table yields an empty map; verse rows then get
// synthetic "Book N" identifiers.
func loadBookNames(db *sql.DB) map[int]scripture.BookID {
	names := make(map[int]scripture.BookID)

	rows, err := db.Query("SELECT book_number, book_name FROM books")
	if err != nil {
		return names
	}
	defer rows.Close()

	for rows.Next() {
		var number int
		var name string
		if err := rows.Scan(&number, &name); err != nil {
			continue
		}
		names[number] = scripture.BookID(name)
	}
	return names
}

// stripHTML removes basic HTML tags from text. MyBible verse text may
// carry formatting markup.
func stripHTML(text string) string {
	result := text
	for strings.Contains(result, "<") && strings.Contains(result, ">") {
		start := strings.Index(result, "<")
		end := strings.Index(result[start:], ">")
		if end == -1 {
			break
		}
		result = result[:start] + result[start+end+1:]
	}
	return strings.TrimSpace(result)
}
