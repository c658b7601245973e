// Package parser extracts records from statistics pages.
//
// # Site parsers
//
// Each supported site has its own markup, and therefore its own parser:
//
//   - NHLParser reads every <tbody> written in the page source positionally;
//     bodies the HTML5 tree builder adds to bare tables are not counted. Record keys are the table
//     ordinal ("0", "1", ...), values are the raw cell markup.
//   - ESPNParser reads every <tbody class="Table2__tbody">. All records
//     are keyed by the page URL; a body without cells yields "no value".
//   - HockeyRefParser reads the tables hidden in HTML comments inside
//     <div id="all_stats">. Each comment is parsed again as its own
//     document and every "table.stats_table tr" row becomes one record
//     whose value is the row's cell text joined with ", ".
//
// ForSite returns the parser bound to a model.Site. The binding is a fixed
// table; there is no fallback parser.
//
// Parsing is built on github.com/PuerkitoBio/goquery, which itself wraps
// golang.org/x/net/html. Comment nodes are collected by walking the
// x/net/html tree directly because CSS selectors never match comments.
package parser
