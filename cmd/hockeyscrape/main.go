// Package main provides the entry point for the hockeyscrape CLI.
//
// hockeyscrape downloads hockey statistics pages from nhl.com, espn.com
// and hockey-reference.com, extracts their tables into flat key/value
// records and appends them to a per-site document collection.
//
// Usage:
//
//	hockeyscrape scrape --site hockeyref
//	hockeyscrape targets --site espn
//
// See --help for all available options.
package main

func main() {
	Execute()
}
