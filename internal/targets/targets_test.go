package targets

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/hockeyscrape/internal/config"
	"github.com/nao1215/hockeyscrape/internal/model"
)

// TestBuildDefaults tests the built-in plans for every site.
func TestBuildDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		site      model.Site
		wantLen   int
		wantStall time.Duration
		wantFirst string
		wantLast  string
	}{
		{
			site:      model.SiteNHL,
			wantLen:   6,
			wantStall: 20 * time.Second,
			wantFirst: "http://www.nhl.com/ice/draftsearch.htm?year=&team=&position=&round=2",
			wantLast:  "http://www.nhl.com/ice/draftsearch.htm?year=&team=&position=&round=7",
		},
		{
			site:      model.SiteESPN,
			wantLen:   31 * 17 * 3,
			wantStall: 15 * time.Second,
			wantFirst: "http://www.espn.com/nhl/team/schedule/_/name/buf/season/2003/seasontype/1",
			wantLast:  "http://www.espn.com/nhl/team/schedule/_/name/vgk/season/2019/seasontype/3",
		},
		{
			site:      model.SiteHockeyRef,
			wantLen:   57,
			wantStall: 15 * time.Second,
			wantFirst: "https://www.hockey-reference.com/leagues/NHL_1963.html",
			wantLast:  "https://www.hockey-reference.com/leagues/NHL_2019.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.site.String(), func(t *testing.T) {
			t.Parallel()

			plan, err := Build(tt.site, config.SiteConfig{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if plan.Site != tt.site {
				t.Errorf("expected site %s, got %s", tt.site, plan.Site)
			}
			if plan.Len() != tt.wantLen {
				t.Errorf("expected %d targets, got %d", tt.wantLen, plan.Len())
			}
			if plan.Stall != tt.wantStall {
				t.Errorf("expected stall %v, got %v", tt.wantStall, plan.Stall)
			}
			if plan.URLs[0] != tt.wantFirst {
				t.Errorf("expected first target %q, got %q", tt.wantFirst, plan.URLs[0])
			}
			if last := plan.URLs[plan.Len()-1]; last != tt.wantLast {
				t.Errorf("expected last target %q, got %q", tt.wantLast, last)
			}
		})
	}
}

// TestBuildOverrides tests settings applied over the defaults.
func TestBuildOverrides(t *testing.T) {
	t.Parallel()

	t.Run("espn order is team, year, season type", func(t *testing.T) {
		t.Parallel()

		plan, err := Build(model.SiteESPN, config.SiteConfig{
			Teams:       []string{"bos", "mtl"},
			FromYear:    2018,
			ToYear:      2019,
			SeasonTypes: []int{2},
			Stall:       time.Second,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{
			"http://www.espn.com/nhl/team/schedule/_/name/bos/season/2018/seasontype/2",
			"http://www.espn.com/nhl/team/schedule/_/name/bos/season/2019/seasontype/2",
			"http://www.espn.com/nhl/team/schedule/_/name/mtl/season/2018/seasontype/2",
			"http://www.espn.com/nhl/team/schedule/_/name/mtl/season/2019/seasontype/2",
		}
		if diff := cmp.Diff(want, plan.URLs); diff != "" {
			t.Errorf("targets mismatch (-want +got):\n%s", diff)
		}
		if plan.Stall != time.Second {
			t.Errorf("expected stall override, got %v", plan.Stall)
		}
	})

	t.Run("hockeyref single bound", func(t *testing.T) {
		t.Parallel()

		plan, err := Build(model.SiteHockeyRef, config.SiteConfig{FromYear: 2018})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{
			"https://www.hockey-reference.com/leagues/NHL_2018.html",
			"https://www.hockey-reference.com/leagues/NHL_2019.html",
		}
		if diff := cmp.Diff(want, plan.URLs); diff != "" {
			t.Errorf("targets mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("custom template", func(t *testing.T) {
		t.Parallel()

		plan, err := Build(model.SiteNHL, config.SiteConfig{
			URLTemplate: "http://127.0.0.1:8080/draft/{round}",
			Rounds:      []int{3},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"http://127.0.0.1:8080/draft/3"}, plan.URLs); diff != "" {
			t.Errorf("targets mismatch (-want +got):\n%s", diff)
		}
	})
}

// TestBuildErrors tests invalid settings.
func TestBuildErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		site     model.Site
		settings config.SiteConfig
		wantErr  error
	}{
		{
			name:     "reversed years",
			site:     model.SiteHockeyRef,
			settings: config.SiteConfig{FromYear: 2019, ToYear: 2000},
			wantErr:  ErrEmptyYearRange,
		},
		{
			name:     "from after default end",
			site:     model.SiteESPN,
			settings: config.SiteConfig{FromYear: 2025},
			wantErr:  ErrEmptyYearRange,
		},
		{
			name:     "template without placeholder",
			site:     model.SiteHockeyRef,
			settings: config.SiteConfig{URLTemplate: "https://example.com/static.html"},
			wantErr:  ErrMissingPlaceholder,
		},
		{
			name:    "unknown site",
			site:    model.Site(0),
			wantErr: model.ErrUnknownSite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Build(tt.site, tt.settings); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPlanMinDuration(t *testing.T) {
	t.Parallel()

	plan, err := Build(model.SiteNHL, config.SiteConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := plan.MinDuration(), 6*NHLStall; got != want {
		t.Errorf("MinDuration() = %v, want %v", got, want)
	}
}
