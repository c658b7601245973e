package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/hockeyscrape/internal/model"
)

const (
	nhlURL       = "http://www.nhl.com/ice/draftsearch.htm?year=&team=&position=&round=2"
	espnURL      = "http://www.espn.com/nhl/team/schedule/_/name/buf/season/2019/seasontype/2"
	hockeyRefURL = "https://www.hockey-reference.com/leagues/NHL_2019.html"
)

// TestNHLParser tests positional table body extraction.
func TestNHLParser(t *testing.T) {
	t.Parallel()

	t.Run("emits one record per tbody keyed by ordinal", func(t *testing.T) {
		t.Parallel()

		body := `<html><body>
			<table><tbody><tr><td class="pick">1</td><td>Smith</td></tr></tbody></table>
			<table><tbody><tr><td>[x]</td></tr></tbody></table>
		</body></html>`

		got, err := NewNHLParser().Parse(&model.Page{URL: nhlURL, Body: body})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []model.Record{
			{Key: "0", Value: `<td class="pick">1</td>, <td>Smith</td>`},
			{Key: "1", Value: `<td>[x]</td>`},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("records mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty tbody yields empty value", func(t *testing.T) {
		t.Parallel()

		body := `<table><tbody></tbody></table>`
		got, err := NewNHLParser().Parse(&model.Page{URL: nhlURL, Body: body})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []model.Record{{Key: "0", Value: ""}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("records mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("tables without tbody in the source yield no records", func(t *testing.T) {
		t.Parallel()

		body := `<table><tr><td>1</td></tr></table><table><thead><tr><th>Pick</th></tr></thead></table>`
		got, err := NewNHLParser().Parse(&model.Page{URL: nhlURL, Body: body})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no records, got %v", got)
		}
	})

	t.Run("ordinals count only source table bodies", func(t *testing.T) {
		t.Parallel()

		body := `<table><tr><td>bare</td></tr></table>
			<table><TBODY><tr><td>2</td></tr></TBODY></table>
			<table><tr><td>bare</td></tr></table>
			<table><tbody class="last"><tr><td>3</td></tr></tbody></table>`
		got, err := NewNHLParser().Parse(&model.Page{URL: nhlURL, Body: body})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []model.Record{
			{Key: "0", Value: `<td>2</td>`},
			{Key: "1", Value: `<td>3</td>`},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("records mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("cell text keeps quotes as written", func(t *testing.T) {
		t.Parallel()

		body := `<table><tbody><tr><td title="a &quot;b&quot;">Ryan O'Reilly "RO" &amp; <b>co</b><br></td></tr></tbody></table>`
		got, err := NewNHLParser().Parse(&model.Page{URL: nhlURL, Body: body})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []model.Record{
			{Key: "0", Value: `<td title="a &quot;b&quot;">Ryan O'Reilly "RO" &amp; <b>co</b><br></td>`},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("records mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("page without tables yields no records", func(t *testing.T) {
		t.Parallel()

		got, err := NewNHLParser().Parse(&model.Page{URL: nhlURL, Body: `<p>maintenance</p>`})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no records, got %v", got)
		}
	})
}

// TestESPNParser tests class-filtered table body extraction.
func TestESPNParser(t *testing.T) {
	t.Parallel()

	key := model.NormalizeKey(espnURL)

	t.Run("keys every record by the page URL", func(t *testing.T) {
		t.Parallel()

		body := `<html><body>
			<table><tbody class="Table2__tbody"><tr><td>Oct 4</td><td>vs BOS</td></tr></tbody></table>
			<table><tbody class="other"><tr><td>ignored</td></tr></tbody></table>
			<table><tbody class="Table2__tbody striped"></tbody></table>
		</body></html>`

		got, err := NewESPNParser().Parse(&model.Page{URL: espnURL, Body: body})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []model.Record{
			{Key: key, Value: `<td>Oct 4</td>, <td>vs BOS</td>`},
			{Key: key, Value: model.NoValue},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("records mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("normalized key has no dots", func(t *testing.T) {
		t.Parallel()

		if key != "http://www_espn_com/nhl/team/schedule/_/name/buf/season/2019/seasontype/2" {
			t.Errorf("unexpected key %q", key)
		}
	})

	t.Run("no matching bodies yields no records", func(t *testing.T) {
		t.Parallel()

		body := `<table><tbody><tr><td>1</td></tr></tbody></table>`
		got, err := NewESPNParser().Parse(&model.Page{URL: espnURL, Body: body})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no records, got %v", got)
		}
	})
}

// TestHockeyRefParser tests extraction of tables hidden in comments.
func TestHockeyRefParser(t *testing.T) {
	t.Parallel()

	key := model.NormalizeKey(hockeyRefURL)

	t.Run("re-parses commented tables", func(t *testing.T) {
		t.Parallel()

		body := `<html><body>
			<div id="all_stats">
				<div class="placeholder"></div>
				<!--
				<table class="stats_table">
					<tr><th>Rk</th><th>Team</th></tr>
					<tr><th>1</th><td> Tampa Bay <a href="/teams/TBL/">Lightning</a> </td></tr>
				</table>
				-->
				<!-- <table class="other"><tr><td>skip</td></tr></table> -->
				<!-- <table class="stats_table"><tr><td>2</td><td>Calgary</td></tr></table> -->
			</div>
		</body></html>`

		got, err := NewHockeyRefParser().Parse(&model.Page{URL: hockeyRefURL, Body: body})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []model.Record{
			{Key: key, Value: "Rk, Team"},
			{Key: key, Value: "1, Tampa BayLightning"},
			{Key: key, Value: "2, Calgary"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("records mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ignores visible tables", func(t *testing.T) {
		t.Parallel()

		body := `<div id="all_stats"><table class="stats_table"><tr><td>1</td></tr></table></div>`
		got, err := NewHockeyRefParser().Parse(&model.Page{URL: hockeyRefURL, Body: body})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no records, got %v", got)
		}
	})

	t.Run("missing container is a parse error", func(t *testing.T) {
		t.Parallel()

		_, err := NewHockeyRefParser().Parse(&model.Page{URL: hockeyRefURL, Body: `<div id="other"></div>`})
		if !errors.Is(err, model.ErrContainerNotFound) {
			t.Fatalf("expected ErrContainerNotFound, got %v", err)
		}

		var parseErr *model.ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *model.ParseError, got %T", err)
		}
		if parseErr.Site != model.SiteHockeyRef {
			t.Errorf("expected site hockeyref, got %s", parseErr.Site)
		}
		if parseErr.URL != hockeyRefURL {
			t.Errorf("expected URL %q, got %q", hockeyRefURL, parseErr.URL)
		}
	})
}

// TestForSite tests the site to parser binding.
func TestForSite(t *testing.T) {
	t.Parallel()

	for _, site := range model.AllSites() {
		t.Run(site.String(), func(t *testing.T) {
			t.Parallel()

			p, err := ForSite(site)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Site() != site {
				t.Errorf("expected parser for %s, got %s", site, p.Site())
			}
		})
	}

	t.Run("unknown site", func(t *testing.T) {
		t.Parallel()

		if _, err := ForSite(model.Site(99)); !errors.Is(err, model.ErrUnknownSite) {
			t.Errorf("expected ErrUnknownSite, got %v", err)
		}
	})
}

func TestStripBrackets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "[]", want: ""},
		{in: "[a, b]", want: "a, b"},
		{in: "[[a]]", want: "[a]"},
		{in: "a]", want: "a"},
		{in: "plain", want: "plain"},
	}

	for _, tt := range tests {
		if got := stripBrackets(tt.in); got != tt.want {
			t.Errorf("stripBrackets(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
