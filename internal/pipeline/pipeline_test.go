package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/hockeyscrape/internal/model"
)

// discardLogger returns a logger that drops everything.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, s *Scrape) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, s *Scrape) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, s)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	p := New()
	if p == nil {
		t.Fatal("expected non-nil pipeline")
	}
	if p.StepCount() != 0 {
		t.Errorf("expected 0 steps, got %d", p.StepCount())
	}
	if p.logger == nil {
		t.Error("expected default logger")
	}
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddStep(&mockStep{name: "step-1"})
	p.AddSteps(&mockStep{name: "step-2"}, &mockStep{name: "step-3"})

	if diff := cmp.Diff([]string{"step-1", "step-2", "step-3"}, p.StepNames()); diff != "" {
		t.Errorf("step names mismatch (-want +got):\n%s", diff)
	}
}

// TestPipelineExecute tests step execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("runs steps in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		record := func(name string) *mockStep {
			return &mockStep{name: name, doFunc: func(context.Context, *Scrape) error {
				order = append(order, name)
				return nil
			}}
		}

		p := New(WithLogger(discardLogger()))
		p.AddSteps(record("a"), record("b"), record("c"))

		if err := p.Execute(context.Background(), &Scrape{URL: "u"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"a", "b", "c"}, order); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("boom")
		failing := &mockStep{name: "failing", doFunc: func(context.Context, *Scrape) error { return wantErr }}
		after := &mockStep{name: "after"}

		p := New(WithLogger(discardLogger()))
		p.AddSteps(failing, after)

		if err := p.Execute(context.Background(), &Scrape{URL: "u"}); !errors.Is(err, wantErr) {
			t.Fatalf("expected %v, got %v", wantErr, err)
		}
		if after.callCount != 0 {
			t.Errorf("expected later step to be skipped, got %d calls", after.callCount)
		}
	})

	t.Run("respects cancellation between steps", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		first := &mockStep{name: "first", doFunc: func(context.Context, *Scrape) error {
			cancel()
			return nil
		}}
		second := &mockStep{name: "second"}

		p := New(WithLogger(discardLogger()))
		p.AddSteps(first, second)

		if err := p.Execute(ctx, &Scrape{URL: "u", State: model.StateFetching}); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if second.callCount != 0 {
			t.Errorf("expected second step to be skipped")
		}
	})
}
