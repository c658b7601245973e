package model

import (
	"errors"
	"time"
)

// State is a stage of a single URL scrape.
// A scrape moves FETCHING -> PARSING -> STORING -> DONE and jumps straight
// to DONE when a stage fails. There are no retries.
type State int

const (
	// StateFetching is retrieving the page.
	StateFetching State = iota + 1
	// StateParsing is extracting records from the page.
	StateParsing
	// StateStoring is writing records to the site collection.
	StateStoring
	// StateDone is terminal.
	StateDone
)

// String returns the upper-case state name.
func (s State) String() string {
	switch s {
	case StateFetching:
		return "FETCHING"
	case StateParsing:
		return "PARSING"
	case StateStoring:
		return "STORING"
	case StateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// Result is the outcome of scraping one URL.
type Result struct {
	// URL is the scraped URL.
	URL string

	// Site is the site the URL belongs to.
	Site Site

	// Stage is the state the scrape finished in: the failing stage, or
	// StateDone on success.
	Stage State

	// StatusCode is the HTTP status of the fetched page, 0 if never reached.
	StatusCode int

	// Records is the number of records parsed from the page.
	Records int

	// Stored reports whether the records were written. An empty record
	// set is never written.
	Stored bool

	// Err is the *FetchError, *ParseError or *StoreError that ended the
	// scrape, or a context error. Nil on success.
	Err error

	// Elapsed is the time spent before the stall.
	Elapsed time.Duration
}

// OK reports whether the scrape completed without error.
func (r Result) OK() bool {
	return r.Err == nil
}

// Summary aggregates the results of a run.
type Summary struct {
	// Site is the scraped site.
	Site Site

	// Targets is the number of URLs planned.
	Targets int

	// Attempted is the number of URLs scraped before the run ended.
	Attempted int

	// Succeeded counts scrapes that finished without error.
	Succeeded int

	// Empty counts successful scrapes that produced no records.
	Empty int

	// FetchFailures, ParseFailures and StoreFailures count failures by stage.
	FetchFailures int
	ParseFailures int
	StoreFailures int

	// RecordsStored is the total number of records written.
	RecordsStored int

	// Cancelled reports whether the run stopped before every target was attempted.
	Cancelled bool

	// StartedAt is when the run began.
	StartedAt time.Time

	// Elapsed is the run duration including stalls.
	Elapsed time.Duration

	// Failures lists the failed results in run order.
	Failures []Result
}

// NewSummary creates an empty Summary for a run over targets URLs.
func NewSummary(site Site, targets int, startedAt time.Time) *Summary {
	return &Summary{
		Site:      site,
		Targets:   targets,
		StartedAt: startedAt,
		Failures:  make([]Result, 0),
	}
}

// Add accounts for one result.
func (s *Summary) Add(r Result) {
	s.Attempted++

	if r.OK() {
		s.Succeeded++
		if r.Records == 0 {
			s.Empty++
		}
		if r.Stored {
			s.RecordsStored += r.Records
		}
		return
	}

	s.Failures = append(s.Failures, r)

	var (
		fetchErr *FetchError
		parseErr *ParseError
		storeErr *StoreError
	)
	switch {
	case errors.As(r.Err, &fetchErr):
		s.FetchFailures++
	case errors.As(r.Err, &parseErr):
		s.ParseFailures++
	case errors.As(r.Err, &storeErr):
		s.StoreFailures++
	}
}

// Failed returns the number of failed scrapes.
func (s *Summary) Failed() int {
	return len(s.Failures)
}
