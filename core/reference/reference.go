// Package reference parses free-text scripture references such as
// "Genesis 1:1", "Jean 3:16-18" or "Psalms 23" into a structured form.
// Parsing is purely syntactic: the book fragment is not resolved here and
// no chapter or verse existence check is made.
package reference

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Ref is a parsed reference. Book is the raw, unresolved book fragment.
// Verse and VerseEnd are zero when the input named a whole chapter;
// VerseEnd equals Verse when a single verse was given.
type Ref struct {
	Book     string `json:"book"`
	Chapter  int    `json:"chapter"`
	Verse    int    `json:"verse,omitempty"`
	VerseEnd int    `json:"verse_end,omitempty"`
}

// refGrammar is the participle grammar for free-text references. The
// book fragment is an optional leading number plus one or more words, so
// "1 Jean 3:16" keeps "1 Jean" intact and "Song of Solomon 2:1" keeps
// all three words; the chapter is the final number before the optional
// verse part. Examples: "Psalms 23", "John 3:16", "Luke 2:8-14".
//
//nolint:govet // participle grammar tags are not standard struct tags
type refGrammar struct {
	BookPrefix string     `parser:"@Int?"`
	BookWords  []string   `parser:"@Word+"`
	Chapter    int        `parser:"@Int"`
	VerseRef   *versePart `parser:"( \":\" @@ )?"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type versePart struct {
	Verse int  `parser:"@Int"`
	End   *int `parser:"( \"-\" @Int )?"`
}

// refLexer defines the lexer for free-text references. Word deliberately
// matches any run without digits, separators or whitespace, so accented
// book names ("Genèse", "Første Mosebog") lex like ASCII ones.
var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Word", Pattern: `[^\s0-9:\-]+`},
	{Name: "Punct", Pattern: `[:\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// refParser is the participle parser for free-text references.
var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// Parse parses a reference string, returning nil when the input does not
// match the grammar. Chapter and verse numbers are accepted as written;
// semantic absence (chapter 0, a verse past the end of the chapter) is
// the query engine's concern.
func Parse(text string) *Ref {
	parsed, err := refParser.ParseString("", text)
	if err != nil {
		return nil
	}

	book := strings.Join(parsed.BookWords, " ")
	if parsed.BookPrefix != "" {
		book = parsed.BookPrefix + " " + book
	}

	ref := &Ref{Book: book, Chapter: parsed.Chapter}
	if parsed.VerseRef != nil {
		ref.Verse = parsed.VerseRef.Verse
		ref.VerseEnd = ref.Verse
		if parsed.VerseRef.End != nil {
			ref.VerseEnd = *parsed.VerseRef.End
		}
	}
	return ref
}

// IsChapter reports whether the reference names a whole chapter.
func (r *Ref) IsChapter() bool {
	return r.Verse == 0
}

// IsRange reports whether the reference spans more than one verse.
func (r *Ref) IsRange() bool {
	return r.VerseEnd > r.Verse
}

// String renders the reference back in its input form.
func (r *Ref) String() string {
	switch {
	case r.Verse == 0:
		return fmt.Sprintf("%s %d", r.Book, r.Chapter)
	case r.VerseEnd > r.Verse:
		return fmt.Sprintf("%s %d:%d-%d", r.Book, r.Chapter, r.Verse, r.VerseEnd)
	default:
		return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Verse)
	}
}
