package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/hockeyscrape/internal/model"
	"github.com/nao1215/hockeyscrape/internal/parser"
)

// Fetcher retrieves a page. Transport failures are *model.FetchError;
// any HTTP response, whatever its status, is a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*model.Page, error)
}

// ParserLookup returns the parser bound to a site.
type ParserLookup func(site model.Site) (parser.Parser, error)

// RecordStore appends a batch of records to a site collection.
type RecordStore interface {
	InsertBatch(ctx context.Context, site model.Site, records []model.Record) error
}

// FetchStep retrieves the page for the scrape URL.
type FetchStep struct {
	fetcher Fetcher
}

// NewFetchStep creates a new fetch step.
func NewFetchStep(fetcher Fetcher) *FetchStep {
	return &FetchStep{fetcher: fetcher}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do fetches sc.URL into sc.Page.
func (s *FetchStep) Do(ctx context.Context, sc *Scrape) error {
	sc.State = model.StateFetching

	page, err := s.fetcher.Fetch(ctx, sc.URL)
	if err != nil {
		return err
	}
	sc.Page = page
	return nil
}

// ParseStep extracts records from the fetched page with the site's parser.
type ParseStep struct {
	lookup ParserLookup
}

// NewParseStep creates a new parse step. A nil lookup uses parser.ForSite.
func NewParseStep(lookup ParserLookup) *ParseStep {
	if lookup == nil {
		lookup = parser.ForSite
	}
	return &ParseStep{lookup: lookup}
}

// Name returns the step name.
func (s *ParseStep) Name() string {
	return "parse"
}

// Do parses sc.Page into sc.Records. Nothing is kept from a failed parse.
func (s *ParseStep) Do(_ context.Context, sc *Scrape) error {
	sc.State = model.StateParsing

	p, err := s.lookup(sc.Site)
	if err != nil {
		return &model.ParseError{URL: sc.URL, Site: sc.Site, Err: err}
	}

	records, err := p.Parse(sc.Page)
	if err != nil {
		return err
	}
	sc.Records = records
	return nil
}

// StoreStep writes the parsed records to the site collection.
type StoreStep struct {
	store  RecordStore
	logger *slog.Logger
}

// StoreStepOption configures a StoreStep.
type StoreStepOption func(*StoreStep)

// WithStoreLogger sets a custom logger for the store step.
func WithStoreLogger(logger *slog.Logger) StoreStepOption {
	return func(s *StoreStep) {
		s.logger = logger
	}
}

// NewStoreStep creates a new store step.
func NewStoreStep(store RecordStore, opts ...StoreStepOption) *StoreStep {
	s := &StoreStep{
		store:  store,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *StoreStep) Name() string {
	return "store"
}

// Do writes sc.Records as one batch. An empty record set is skipped
// without touching the store.
func (s *StoreStep) Do(ctx context.Context, sc *Scrape) error {
	sc.State = model.StateStoring

	if len(sc.Records) == 0 {
		s.logger.Info("no records found", "url", sc.URL, "site", sc.Site.String())
		return nil
	}

	if err := s.store.InsertBatch(ctx, sc.Site, sc.Records); err != nil {
		return err
	}
	sc.Stored = true

	s.logger.Info("URL data successfully stored",
		"url", sc.URL,
		"collection", sc.Site.Collection(),
		"records", len(sc.Records),
	)
	return nil
}
