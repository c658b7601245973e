package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nao1215/hockeyscrape/internal/model"
)

const (
	// HockeyRefContainerSelector matches the element that wraps the
	// statistics tables on hockey-reference.com league pages.
	HockeyRefContainerSelector = "div#all_stats"

	// HockeyRefRowSelector matches the rows of a statistics table inside a
	// re-parsed comment.
	HockeyRefRowSelector = "table.stats_table tr"

	// hockeyRefCellSelector matches header and data cells of a row.
	hockeyRefCellSelector = "th, td"
)

// HockeyRefParser extracts the tables that hockey-reference.com ships
// inside HTML comments.
type HockeyRefParser struct{}

// NewHockeyRefParser creates a HockeyRefParser.
func NewHockeyRefParser() *HockeyRefParser {
	return &HockeyRefParser{}
}

// Site returns model.SiteHockeyRef.
func (p *HockeyRefParser) Site() model.Site {
	return model.SiteHockeyRef
}

// Parse re-parses every comment inside the #all_stats container and emits
// one record per statistics table row, keyed by the normalized page URL.
// The value is the stripped text of the row's th/td cells joined with
// ", ". Rows are emitted in comment order, then row order.
//
// A page without the container is a *model.ParseError wrapping
// model.ErrContainerNotFound.
func (p *HockeyRefParser) Parse(page *model.Page) ([]model.Record, error) {
	doc, err := newDocument(page, p.Site())
	if err != nil {
		return nil, err
	}

	container := doc.Find(HockeyRefContainerSelector).First()
	if container.Length() == 0 {
		return nil, &model.ParseError{URL: page.URL, Site: p.Site(), Err: model.ErrContainerNotFound}
	}

	records := make([]model.Record, 0)
	for _, comment := range comments(container.Get(0)) {
		fragment, err := goquery.NewDocumentFromReader(strings.NewReader(comment))
		if err != nil {
			return nil, &model.ParseError{URL: page.URL, Site: p.Site(), Err: err}
		}

		fragment.Find(HockeyRefRowSelector).Each(func(_ int, row *goquery.Selection) {
			cells := make([]string, 0)
			row.Find(hockeyRefCellSelector).Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, strippedText(cell.Get(0)))
			})
			records = append(records, model.NewRecord(page.URL, strings.Join(cells, cellSeparator)))
		})
	}

	return records, nil
}
