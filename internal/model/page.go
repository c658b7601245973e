package model

import "strings"

// Page is the raw result of fetching a URL.
// It only lives for the duration of one scrape and is never persisted.
type Page struct {
	// URL is the URL that was requested.
	URL string `json:"url"`

	// StatusCode is the HTTP response status code.
	StatusCode int `json:"status_code"`

	// ContentType is the value of the Content-Type response header.
	ContentType string `json:"content_type"`

	// Body is the response body decoded to UTF-8.
	Body string `json:"-"`
}

// MaxPageSize is the default upper bound on the number of body bytes read
// from a response.
const MaxPageSize = 5 * 1024 * 1024 // 5 MB

// IsHTML returns true if the page content type indicates HTML.
// An empty content type is treated as HTML because several of the
// statistics sites omit the header on cached responses.
func (p *Page) IsHTML() bool {
	if p.ContentType == "" {
		return true
	}
	ct := strings.ToLower(p.ContentType)
	return strings.HasPrefix(ct, "text/html") ||
		strings.HasPrefix(ct, "application/xhtml+xml")
}

// OK reports whether the status code is in the 2xx range.
func (p *Page) OK() bool {
	return p.StatusCode >= 200 && p.StatusCode < 300
}
