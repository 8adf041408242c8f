// Package zefania is the dataset handler for Zefania XML Bible modules,
// a widespread XML interchange format:
//
//	<XMLBIBLE biblename="...">
//	  <BIBLEBOOK bnumber="1" bname="Genesis" bsname="Gen">
//	    <CHAPTER cnumber="1">
//	      <VERS vnumber="1">In the beginning...</VERS>
package zefania

import (
	"fmt"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/versecast/versecast/core/scripture"
	"github.com/versecast/versecast/internal/formats"
)

// Precompiled queries; these run once per book/chapter on load.
var (
	xpRoot = xpath.MustCompile("//XMLBIBLE")
	xpBook = xpath.MustCompile("//BIBLEBOOK")
)

// Handler implements formats.Handler for Zefania XML files.
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
	return "zefania"
}

// Detect implements formats.Handler. The file must be XML with an
// XMLBIBLE root element.
func (h *Handler) Detect(path string) bool {
	if !strings.HasSuffix(strings.ToLower(path), ".xml") {
		return false
	}
	doc, err := parseFile(path)
	if err != nil {
		return false
	}
	return xmlquery.QuerySelector(doc, xpRoot) != nil
}

// Load implements formats.Handler. Books without a usable name attribute
// and verses without a number are skipped rather than failing the load.
func (h *Handler) Load(path string) (*scripture.Dataset, error) {
	doc, err := parseFile(path)
	if err != nil {
		return nil, err
	}

	root := xmlquery.QuerySelector(doc, xpRoot)
	if root == nil {
		return nil, fmt.Errorf("no XMLBIBLE root element in %s", path)
	}

	ds := &scripture.Dataset{
		Version: root.SelectAttr("biblename"),
		Books:   make(scripture.VerseStore),
	}
	if title := xmlquery.FindOne(root, "//INFORMATION/title"); title != nil {
		ds.Translation = strings.TrimSpace(title.InnerText())
	}
	if lang := xmlquery.FindOne(root, "//INFORMATION/language"); lang != nil {
		ds.Language = strings.TrimSpace(lang.InnerText())
	}

	for _, book := range xmlquery.QuerySelectorAll(root, xpBook) {
		name := book.SelectAttr("bname")
		if name == "" {
			name = book.SelectAttr("bsname")
		}
		if name == "" {
			continue
		}
		id := scripture.BookID(name)

		chapters := make(scripture.Chapters)
		for _, chapter := range xmlquery.Find(book, "CHAPTER") {
			cnum := chapter.SelectAttr("cnumber")
			if cnum == "" {
				continue
			}
			verses := make(scripture.Verses)
			for _, vers := range xmlquery.Find(chapter, "VERS") {
				vnum := vers.SelectAttr("vnumber")
				if vnum == "" {
					continue
				}
				verses[vnum] = strings.TrimSpace(vers.InnerText())
			}
			if len(verses) > 0 {
				chapters[cnum] = verses
			}
		}
		if len(chapters) > 0 {
			ds.Books[id] = chapters
		}
	}

	return ds, nil
}

func parseFile(path string) (*xmlquery.Node, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open: %w", err)
	}
	defer file.Close()

	doc, err := xmlquery.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return doc, nil
}
