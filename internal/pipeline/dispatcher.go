package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/hockeyscrape/internal/model"
)

// SleepFunc pauses for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration)

// Sleep is the default SleepFunc. It returns early only when ctx is done.
func Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// Dispatcher scrapes one URL at a time: fetch, parse, store, then stall.
type Dispatcher struct {
	fetcher Fetcher
	store   RecordStore
	parsers ParserLookup
	sleep   SleepFunc
	logger  *slog.Logger
	now     func() time.Time
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatcherLogger sets a custom logger for the dispatcher and its steps.
func WithDispatcherLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithParserLookup replaces the site to parser binding.
func WithParserLookup(lookup ParserLookup) DispatcherOption {
	return func(d *Dispatcher) {
		d.parsers = lookup
	}
}

// WithSleep replaces the stall implementation.
func WithSleep(sleep SleepFunc) DispatcherOption {
	return func(d *Dispatcher) {
		d.sleep = sleep
	}
}

// NewDispatcher creates a Dispatcher writing to store.
func NewDispatcher(fetcher Fetcher, store RecordStore, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		fetcher: fetcher,
		store:   store,
		sleep:   Sleep,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = slog.Default()
	}

	return d
}

// Scrape runs the fetch, parse and store steps for url and then stalls for
// stall, on every path. A failure ends the scrape at its stage and is
// returned in the Result; it is never fatal to the caller. The stall runs
// in full unless ctx is cancelled, which only happens on shutdown.
func (d *Dispatcher) Scrape(ctx context.Context, url string, stall time.Duration, site model.Site) (result model.Result) {
	defer d.sleep(ctx, stall)

	start := d.now()
	sc := &Scrape{URL: url, Site: site, State: model.StateFetching}

	p := New(WithLogger(d.logger))
	p.AddSteps(
		NewFetchStep(d.fetcher),
		NewParseStep(d.parsers),
		NewStoreStep(d.store, WithStoreLogger(d.logger)),
	)

	err := p.Execute(ctx, sc)

	result = model.Result{
		URL:     url,
		Site:    site,
		Stage:   sc.State,
		Records: len(sc.Records),
		Stored:  sc.Stored,
		Err:     err,
		Elapsed: d.now().Sub(start),
	}
	if sc.Page != nil {
		result.StatusCode = sc.Page.StatusCode
	}
	if err == nil {
		result.Stage = model.StateDone
	}
	return result
}
