package model

import (
	"errors"
	"fmt"
)

// ErrContainerNotFound is returned by a parser when the element that wraps
// a site's statistics tables is missing from the page.
var ErrContainerNotFound = errors.New("statistics container not found")

// FetchError reports a transport failure while fetching a URL: DNS errors,
// refused connections, timeouts, or a body that could not be read.
// An HTTP response with a non-2xx status is not a FetchError.
type FetchError struct {
	// URL is the URL that was being fetched.
	URL string

	// Err is the underlying transport error.
	Err error
}

// Error implements error.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError reports that a page did not have the structure its site
// parser expects.
type ParseError struct {
	// URL is the URL of the page that failed to parse.
	URL string

	// Site is the site whose parser was used.
	Site Site

	// Err is the underlying error.
	Err error
}

// Error implements error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s page %s: %v", e.Site, e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// StoreError reports that a batch of records could not be written.
// A partial insert is reported as a single StoreError for the whole batch.
type StoreError struct {
	// Collection is the collection that was written to.
	Collection string

	// Count is the number of records in the batch.
	Count int

	// Err is the underlying datastore error.
	Err error
}

// Error implements error.
func (e *StoreError) Error() string {
	return fmt.Sprintf("store %d records into %s: %v", e.Count, e.Collection, e.Err)
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}
