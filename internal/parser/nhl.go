package parser

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/nao1215/hockeyscrape/internal/model"
)

// sourceBodyAttr marks <tbody> start tags written in the page source. The
// HTML5 tree builder inserts a <tbody> into every table whose rows sit
// directly under <table>; those bodies carry no marker.
const sourceBodyAttr = "data-hockeyscrape-source"

// NHLParser extracts every table body of an nhl.com page, keyed by its
// position in the document.
type NHLParser struct{}

// NewNHLParser creates an NHLParser.
func NewNHLParser() *NHLParser {
	return &NHLParser{}
}

// Site returns model.SiteNHL.
func (p *NHLParser) Site() model.Site {
	return model.SiteNHL
}

// Parse emits one record per <tbody> written in the page source, in
// document order. The key is the 0-based ordinal of the table body and the
// value is the rendered markup of its <td> cells. Empty bodies produce an
// empty value.
func (p *NHLParser) Parse(page *model.Page) ([]model.Record, error) {
	marked, err := markSourceBodies(page.Body)
	if err != nil {
		return nil, &model.ParseError{URL: page.URL, Site: p.Site(), Err: err}
	}

	doc, err := newDocument(&model.Page{URL: page.URL, Body: marked}, p.Site())
	if err != nil {
		return nil, err
	}

	bodies := doc.Find("tbody[" + sourceBodyAttr + "]")
	records := make([]model.Record, 0, bodies.Length())
	bodies.Each(func(i int, body *goquery.Selection) {
		records = append(records, model.NewRecord(strconv.Itoa(i), renderCells(body.Find("td"))))
	})

	return records, nil
}

// markSourceBodies copies body token by token and adds sourceBodyAttr to
// every <tbody> start tag. Everything else is copied byte for byte.
func markSourceBodies(body string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(body))

	z := html.NewTokenizer(strings.NewReader(body))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return sb.String(), nil
			}
			return "", z.Err()
		}

		raw := string(z.Raw())
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			if name, _ := z.TagName(); string(name) == "tbody" {
				// raw starts with "<tbody" in any letter case.
				sb.WriteString(raw[:len("<tbody")])
				sb.WriteString(" " + sourceBodyAttr)
				sb.WriteString(raw[len("<tbody"):])
				continue
			}
		}
		sb.WriteString(raw)
	}
}
