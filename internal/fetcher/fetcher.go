package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"

	"github.com/nao1215/hockeyscrape/internal/model"
)

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "hockeyscrape/1.0 (+https://github.com/nao1215/hockeyscrape)"

// RequestLogger records reachable responses.
// *requestlog.Logger and *requestlog.File implement it.
type RequestLogger interface {
	Log(url string, status int) error
}

// Fetcher retrieves pages with a single GET request each.
type Fetcher struct {
	// client is the HTTP client used for every request.
	client *http.Client

	// userAgent is the User-Agent header sent with requests.
	userAgent string

	// maxBodySize limits the number of body bytes read.
	maxBodySize int64

	// requestLog receives one entry per reachable response. May be nil.
	requestLog RequestLogger

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// WithRequestLog sets the request log that receives one line per
// reachable response.
func WithRequestLog(rl RequestLogger) Option {
	return func(f *Fetcher) {
		f.requestLog = rl
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// New creates a Fetcher that uses client for all requests.
// If client is nil, http.DefaultClient is used.
func New(client *http.Client, opts ...Option) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}

	f := &Fetcher{
		client:      client,
		userAgent:   DefaultUserAgent,
		maxBodySize: model.MaxPageSize,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch issues a GET request for pageURL and returns the page.
//
// Every HTTP response is returned as a page regardless of its status code.
// Transport failures, including a body that cannot be read, are returned
// as *model.FetchError and leave no entry in the request log.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*model.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &model.FetchError{URL: pageURL, Err: err}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &model.FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, &model.FetchError{URL: pageURL, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	contentType := resp.Header.Get("Content-Type")
	body, err := decodeBody(raw, contentType)
	if err != nil {
		return nil, &model.FetchError{URL: pageURL, Err: err}
	}

	if f.requestLog != nil {
		if err := f.requestLog.Log(pageURL, resp.StatusCode); err != nil {
			f.logger.Warn("failed to append request log", "url", pageURL, "error", err)
		}
	}

	page := &model.Page{
		URL:         pageURL,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        body,
	}

	f.logger.Debug("page fetched",
		"url", pageURL,
		"status", resp.StatusCode,
		"bytes", len(raw),
	)
	if !page.OK() {
		f.logger.Warn("non-success status, parsing anyway", "url", pageURL, "status", resp.StatusCode)
	}
	if !page.IsHTML() {
		f.logger.Warn("response is not HTML", "url", pageURL, "content_type", contentType)
	}

	return page, nil
}

// decodeBody converts raw to UTF-8. The encoding is taken from the
// Content-Type header, a BOM, or a <meta charset> in the first 1024 bytes,
// falling back to windows-1252 as browsers do.
func decodeBody(raw []byte, contentType string) (string, error) {
	enc, name, _ := charset.DetermineEncoding(raw, contentType)
	if name == "utf-8" {
		return string(raw), nil
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s body: %w", name, err)
	}
	return string(decoded), nil
}
