// Command versecast looks up Bible verses from a library of dataset
// files. It exposes the same reference resolution the overlay uses, so
// operators can inspect datasets and dry-run lookups from a shell.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/versecast/versecast/core/dataset"
	"github.com/versecast/versecast/core/lookup"
	"github.com/versecast/versecast/core/scripture"
	"github.com/versecast/versecast/internal/formats"
	"github.com/versecast/versecast/internal/library"

	// Register the dataset format handlers.
	_ "github.com/versecast/versecast/internal/formats/jsonbible"
	_ "github.com/versecast/versecast/internal/formats/mybible"
	_ "github.com/versecast/versecast/internal/formats/zefania"
)

const version = "0.1.0"

// CLI defines the command-line interface for versecast.
var CLI struct {
	// Global flags
	Library string `name:"library" short:"l" help:"Library directory with datasets and versions-index.json" type:"path" default:"."`
	Bible   string `name:"bible" short:"b" help:"Version key to activate (defaults to the first index entry)"`
	JSON    bool   `name:"json" help:"Emit JSON instead of plain text"`

	// Command groups (noun-first organization)
	Lookup   LookupCmd     `cmd:"" help:"Resolve a free-text reference and print the verses"`
	Chapter  ChapterCmd    `cmd:"" help:"Print a whole chapter"`
	Versions VersionsGroup `cmd:"" help:"Version index operations"`
	Books    BooksGroup    `cmd:"" help:"Book listing for the active version"`
	Dataset  DatasetGroup  `cmd:"" help:"Dataset file inspection"`
	Version  VersionCmd    `cmd:"" help:"Print version information"`
}

// VersionsGroup contains version index operations.
type VersionsGroup struct {
	List VersionsListCmd `cmd:"" help:"List versions in the library index"`
}

// BooksGroup contains book listing operations.
type BooksGroup struct {
	List BooksListCmd `cmd:"" help:"List book identifiers and localized names"`
}

// DatasetGroup contains dataset file inspection operations.
type DatasetGroup struct {
	Info DatasetInfoCmd `cmd:"" help:"Report format, shape and counts for a dataset file"`
}

// openEngine opens the library and activates the requested version.
func openEngine() (*library.Library, *lookup.Engine, error) {
	lib, err := library.Open(CLI.Library)
	if err != nil {
		return nil, nil, err
	}

	key := CLI.Bible
	if key == "" {
		entries := lib.Entries()
		if len(entries) == 0 {
			return nil, nil, fmt.Errorf("library %s has no versions", lib.Dir())
		}
		key = entries[0].Key
	}

	engine := lib.NewEngine()
	if err := lib.Activate(engine, key); err != nil {
		return nil, nil, err
	}
	return lib, engine, nil
}

func printResults(results []lookup.VerseResult) error {
	if CLI.JSON {
		return emitJSON(results)
	}
	for _, r := range results {
		fmt.Printf("%s  %s\n", r.Reference, r.Text)
	}
	return nil
}

func emitJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// LookupCmd resolves a free-text reference.
type LookupCmd struct {
	Reference []string `arg:"" help:"Reference text, e.g. 'John 3:16' or 'Psalms 23'"`
}

func (c *LookupCmd) Run() error {
	_, engine, err := openEngine()
	if err != nil {
		return err
	}

	text := strings.Join(c.Reference, " ")
	results := engine.ResolveReference(text)
	if len(results) == 0 {
		return fmt.Errorf("no verses found for %q", text)
	}
	return printResults(results)
}

// ChapterCmd prints every verse of one chapter.
type ChapterCmd struct {
	Book    string `arg:"" help:"Book identifier or localized name"`
	Chapter int    `arg:"" help:"Chapter number"`
}

func (c *ChapterCmd) Run() error {
	_, engine, err := openEngine()
	if err != nil {
		return err
	}

	id, ok := engine.ResolveBook(c.Book)
	if !ok {
		return fmt.Errorf("unknown book %q", c.Book)
	}
	results := engine.Chapter(id, c.Chapter)
	if len(results) == 0 {
		return fmt.Errorf("%s has no chapter %d", id, c.Chapter)
	}
	return printResults(results)
}

// VersionsListCmd lists the library's version index.
type VersionsListCmd struct{}

func (c *VersionsListCmd) Run() error {
	lib, err := library.Open(CLI.Library)
	if err != nil {
		return err
	}

	entries := lib.Entries()
	if CLI.JSON {
		return emitJSON(entries)
	}
	for _, e := range entries {
		line := fmt.Sprintf("%-12s %s", e.Key, e.Name)
		if e.Locale != "" {
			line += fmt.Sprintf(" (%s)", e.Locale)
		}
		fmt.Println(line)
	}
	return nil
}

// BooksListCmd lists the active version's books.
type BooksListCmd struct{}

func (c *BooksListCmd) Run() error {
	_, engine, err := openEngine()
	if err != nil {
		return err
	}

	type book struct {
		ID   scripture.BookID `json:"bookKey"`
		Name string           `json:"name"`
	}
	var books []book
	for _, id := range engine.Dataset().Books.BookIDs() {
		books = append(books, book{ID: id, Name: engine.Localize(id)})
	}

	if CLI.JSON {
		return emitJSON(books)
	}
	for _, b := range books {
		if b.Name != string(b.ID) {
			fmt.Printf("%-24s %s\n", b.ID, b.Name)
		} else {
			fmt.Println(b.ID)
		}
	}
	return nil
}

// DatasetInfoCmd inspects one dataset file without a library.
type DatasetInfoCmd struct {
	Path string `arg:"" help:"Dataset file to inspect" type:"existingfile"`
}

func (c *DatasetInfoCmd) Run() error {
	h := formats.Detect(c.Path)
	if h == nil {
		return fmt.Errorf("no format handler recognizes %s", c.Path)
	}

	ds, err := h.Load(c.Path)
	if err != nil {
		return err
	}

	info := struct {
		Format      string `json:"format"`
		Shape       string `json:"shape,omitempty"`
		Version     string `json:"version"`
		Language    string `json:"language,omitempty"`
		Translation string `json:"translation,omitempty"`
		Books       int    `json:"books"`
		Verses      int    `json:"verses"`
	}{
		Format:      h.Name(),
		Version:     ds.Version,
		Language:    ds.Language,
		Translation: ds.Translation,
		Books:       len(ds.Books),
	}
	for _, chapters := range ds.Books {
		for _, verses := range chapters {
			info.Verses += len(verses)
		}
	}
	if data, err := dataset.ReadBytes(c.Path); err == nil {
		if shape := dataset.Classify(data); shape != dataset.ShapeUnknown {
			info.Shape = shape.String()
		}
	}

	if CLI.JSON {
		return emitJSON(info)
	}
	fmt.Printf("Format:      %s\n", info.Format)
	if info.Shape != "" {
		fmt.Printf("Shape:       %s\n", info.Shape)
	}
	fmt.Printf("Version:     %s\n", info.Version)
	if info.Language != "" {
		fmt.Printf("Language:    %s\n", info.Language)
	}
	if info.Translation != "" {
		fmt.Printf("Translation: %s\n", info.Translation)
	}
	fmt.Printf("Books:       %d\n", info.Books)
	fmt.Printf("Verses:      %d\n", info.Verses)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("versecast %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("versecast"),
		kong.Description("Bible verse lookup for live display"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
