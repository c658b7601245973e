package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// cellSeparator joins rendered cells and row texts.
const cellSeparator = ", "

// renderCells renders the markup of every node in cells as a bracketed
// list ("[<td>1</td>, <td>2</td>]") and then strips the list brackets, so
// an empty selection renders as "".
func renderCells(cells *goquery.Selection) string {
	rendered := make([]string, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		var sb strings.Builder
		for _, n := range cell.Nodes {
			renderNode(&sb, n)
		}
		rendered = append(rendered, sb.String())
	})
	return stripBrackets("[" + strings.Join(rendered, cellSeparator) + "]")
}

// textEscaper escapes only the characters that would change the markup.
// Quotes and apostrophes in cell text stay as written.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// attrEscaper additionally escapes the quote that delimits attribute values.
var attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// voidElements never have an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// renderNode writes n and its subtree to sb.
func renderNode(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if p := n.Parent; p != nil && (p.Data == "script" || p.Data == "style") {
			sb.WriteString(n.Data)
			return
		}
		sb.WriteString(textEscaper.Replace(n.Data))
	case html.CommentNode:
		sb.WriteString("<!--" + n.Data + "-->")
	case html.ElementNode:
		sb.WriteString("<" + n.Data)
		for _, a := range n.Attr {
			sb.WriteString(" " + a.Key + `="` + attrEscaper.Replace(a.Val) + `"`)
		}
		sb.WriteString(">")
		if voidElements[n.Data] {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderNode(sb, c)
		}
		sb.WriteString("</" + n.Data + ">")
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderNode(sb, c)
		}
	}
}

// stripBrackets removes exactly one leading "[" and one trailing "]".
func stripBrackets(s string) string {
	s = strings.TrimPrefix(s, "[")
	return strings.TrimSuffix(s, "]")
}

// strippedText returns the text of every text node under n, each trimmed
// of surrounding whitespace, concatenated without a separator. Whitespace
// only nodes are dropped.
func strippedText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(strings.TrimSpace(n.Data))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// comments returns the data of every comment node below n in document
// order.
func comments(n *html.Node) []string {
	var found []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.CommentNode {
				found = append(found, c.Data)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return found
}
