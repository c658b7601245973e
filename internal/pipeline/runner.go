package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/hockeyscrape/internal/model"
	"github.com/nao1215/hockeyscrape/internal/targets"
)

// Scraper scrapes a single URL.
type Scraper interface {
	Scrape(ctx context.Context, url string, stall time.Duration, site model.Site) model.Result
}

// Runner walks a target plan strictly in order, one URL at a time.
type Runner struct {
	scraper Scraper
	logger  *slog.Logger
	now     func() time.Time
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunnerLogger sets a custom logger for the runner.
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a new Runner.
func NewRunner(scraper Scraper, opts ...RunnerOption) *Runner {
	r := &Runner{
		scraper: scraper,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// Run scrapes every URL of plan. Failed URLs are recorded in the summary
// and the run continues. Cancellation is checked between URLs; a
// cancelled run returns the partial summary together with ctx.Err().
func (r *Runner) Run(ctx context.Context, plan *targets.Plan) (*model.Summary, error) {
	start := r.now()
	summary := model.NewSummary(plan.Site, plan.Len(), start)

	r.logger.Info("starting scrape",
		"site", plan.Site.String(),
		"targets", plan.Len(),
		"stall", plan.Stall,
	)

	var runErr error
	for i, url := range plan.URLs {
		if err := ctx.Err(); err != nil {
			summary.Cancelled = true
			runErr = err
			r.logger.Warn("scrape interrupted",
				"remaining", plan.Len()-i,
				"reason", err,
			)
			break
		}

		r.logger.Info("scraping url",
			"url", url,
			"index", i+1,
			"total", plan.Len(),
		)

		summary.Add(r.scraper.Scrape(ctx, url, plan.Stall, plan.Site))
	}

	summary.Elapsed = r.now().Sub(start)

	r.logger.Info("scrape complete",
		"site", plan.Site.String(),
		"attempted", summary.Attempted,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed(),
		"records", summary.RecordsStored,
		"elapsed", summary.Elapsed,
	)

	return summary, runErr
}
