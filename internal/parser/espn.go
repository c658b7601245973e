package parser

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/nao1215/hockeyscrape/internal/model"
)

// ESPNBodySelector matches the table bodies that hold statistics on
// espn.com.
const ESPNBodySelector = "tbody.Table2__tbody"

// ESPNParser extracts the statistics table bodies of an espn.com page.
type ESPNParser struct{}

// NewESPNParser creates an ESPNParser.
func NewESPNParser() *ESPNParser {
	return &ESPNParser{}
}

// Site returns model.SiteESPN.
func (p *ESPNParser) Site() model.Site {
	return model.SiteESPN
}

// Parse emits exactly one record per matching table body, every one keyed
// by the normalized page URL. Bodies with cells carry the rendered cell
// markup; bodies without cells carry model.NoValue. A page without
// matching bodies yields no records.
func (p *ESPNParser) Parse(page *model.Page) ([]model.Record, error) {
	doc, err := newDocument(page, p.Site())
	if err != nil {
		return nil, err
	}

	bodies := doc.Find(ESPNBodySelector)
	records := make([]model.Record, 0, bodies.Length())

	bodies.Each(func(_ int, body *goquery.Selection) {
		cells := body.Find("td")
		if cells.Length() == 0 {
			records = append(records, model.NewRecord(page.URL, model.NoValue))
			return
		}
		records = append(records, model.NewRecord(page.URL, renderCells(cells)))
	})

	return records, nil
}
