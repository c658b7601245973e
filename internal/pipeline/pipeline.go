package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/hockeyscrape/internal/model"
)

// Scrape is the mutable state of one URL moving through the pipeline.
type Scrape struct {
	// URL is the target URL.
	URL string

	// Site selects the parser and the collection.
	Site model.Site

	// State is the current stage. Each step sets it when it starts.
	State model.State

	// Page is set by FetchStep.
	Page *model.Page

	// Records are set by ParseStep.
	Records []model.Record

	// Stored is set by StoreStep after a successful write.
	Stored bool
}

// Step is one stage of a scrape. It reads the state left by earlier steps
// and records its own output on s.
type Step interface {
	// Do runs the stage. A returned error ends the scrape.
	Do(ctx context.Context, s *Scrape) error

	// Name identifies the step in log lines.
	Name() string
}

// Pipeline runs its steps in order and stops at the first failure.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger replaces slog.Default() as the pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates an empty Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddStep appends step.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends steps in order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs the steps against s. Cancellation is checked before each
// step; a running step observes ctx itself. Failures are logged with the
// URL, site and stage, and returned unchanged.
func (p *Pipeline) Execute(ctx context.Context, s *Scrape) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("scrape cancelled",
				"step", step.Name(),
				"url", s.URL,
				"reason", err,
			)
			return err
		}

		p.logger.Debug("running step", "step", step.Name(), "url", s.URL)

		if err := step.Do(ctx, s); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"stage", s.State.String(),
				"site", s.Site.String(),
				"url", s.URL,
				"error", err,
			)
			return err
		}

		p.logger.Debug("step done", "step", step.Name(), "url", s.URL)
	}
	return nil
}

// StepCount returns the number of steps.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
