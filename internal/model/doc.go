// Package model defines the core data structures shared by the scraping
// pipeline.
//
// This package contains the following main types:
//   - Site: The closed set of supported statistics sites
//   - Page: A fetched web page (status code and decoded body)
//   - Record: A single key-value unit extracted by a site parser
//   - FetchError, ParseError, StoreError: Typed failures for each pipeline stage
//
// The models live in their own package because the fetcher, parser, store,
// and pipeline packages all depend on them, and none of those packages may
// import each other in a cycle.
package model
