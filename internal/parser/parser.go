package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nao1215/hockeyscrape/internal/model"
)

// Parser converts a fetched page into records.
type Parser interface {
	// Site returns the site this parser understands.
	Site() model.Site

	// Parse extracts records from page. The page URL is used as the
	// record key by parsers that key records by source.
	// Structural failures are returned as *model.ParseError.
	Parse(page *model.Page) ([]model.Record, error)
}

// parsers binds every site to its parser.
var parsers = map[model.Site]Parser{
	model.SiteNHL:       NewNHLParser(),
	model.SiteESPN:      NewESPNParser(),
	model.SiteHockeyRef: NewHockeyRefParser(),
}

// ForSite returns the parser for site.
func ForSite(site model.Site) (Parser, error) {
	p, ok := parsers[site]
	if !ok {
		return nil, fmt.Errorf("%w: %d", model.ErrUnknownSite, int(site))
	}
	return p, nil
}

// newDocument parses body into a goquery document.
func newDocument(page *model.Page, site model.Site) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		return nil, &model.ParseError{URL: page.URL, Site: site, Err: err}
	}
	return doc, nil
}
