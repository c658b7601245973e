package targets

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/hockeyscrape/internal/config"
	"github.com/nao1215/hockeyscrape/internal/model"
)

// Template placeholders.
const (
	PlaceholderRound      = "{round}"
	PlaceholderTeam       = "{team}"
	PlaceholderYear       = "{year}"
	PlaceholderSeasonType = "{seasonType}"
)

// Built-in URL templates.
const (
	NHLTemplate       = "http://www.nhl.com/ice/draftsearch.htm?year=&team=&position=&round={round}"
	ESPNTemplate      = "http://www.espn.com/nhl/team/schedule/_/name/{team}/season/{year}/seasontype/{seasonType}"
	HockeyRefTemplate = "https://www.hockey-reference.com/leagues/NHL_{year}.html"
)

// Built-in stalls.
const (
	NHLStall       = 20 * time.Second
	ESPNStall      = 15 * time.Second
	HockeyRefStall = 15 * time.Second
)

// Built-in year ranges, inclusive.
const (
	ESPNFirstYear      = 2003
	ESPNLastYear       = 2019
	HockeyRefFirstYear = 1963
	HockeyRefLastYear  = 2019
)

// ESPNTeams are the team codes used in espn.com schedule URLs.
var ESPNTeams = []string{
	"buf", "car", "mtl", "ott", "ari", "det", "van", "chi", "nyr", "edm",
	"nyi", "dal", "phi", "fla", "col", "njd", "cbj", "lak", "sjs", "ana",
	"min", "stl", "tor", "wsh", "bos", "tbl", "nsh", "wpg", "pit", "cgy",
	"vgk",
}

var (
	// ErrEmptyYearRange is returned when the effective year range is reversed.
	ErrEmptyYearRange = errors.New("empty year range")

	// ErrMissingPlaceholder is returned when a URL template lacks a
	// placeholder its site needs.
	ErrMissingPlaceholder = errors.New("url template is missing a placeholder")
)

// Plan is the ordered work for one scrape run.
type Plan struct {
	// Site is the site every URL belongs to.
	Site model.Site

	// Stall is the pause after each URL.
	Stall time.Duration

	// URLs are the targets in scrape order.
	URLs []string
}

// Len returns the number of targets.
func (p *Plan) Len() int {
	return len(p.URLs)
}

// MinDuration is the time spent stalling over the whole plan, a lower
// bound for the run time.
func (p *Plan) MinDuration() time.Duration {
	return time.Duration(p.Len()) * p.Stall
}

// Build creates the plan for site, applying settings over the built-in
// defaults.
func Build(site model.Site, settings config.SiteConfig) (*Plan, error) {
	var (
		urls  []string
		stall time.Duration
		err   error
	)

	switch site {
	case model.SiteNHL:
		stall = NHLStall
		urls, err = nhlURLs(settings)
	case model.SiteESPN:
		stall = ESPNStall
		urls, err = espnURLs(settings)
	case model.SiteHockeyRef:
		stall = HockeyRefStall
		urls, err = hockeyRefURLs(settings)
	default:
		return nil, fmt.Errorf("%w: %d", model.ErrUnknownSite, int(site))
	}
	if err != nil {
		return nil, fmt.Errorf("%s targets: %w", site, err)
	}

	if settings.Stall > 0 {
		stall = settings.Stall
	}

	return &Plan{Site: site, Stall: stall, URLs: urls}, nil
}

func nhlURLs(settings config.SiteConfig) ([]string, error) {
	tmpl, err := template(settings.URLTemplate, NHLTemplate, PlaceholderRound)
	if err != nil {
		return nil, err
	}

	rounds := settings.Rounds
	if len(rounds) == 0 {
		rounds = intRange(2, 7)
	}

	urls := make([]string, 0, len(rounds))
	for _, round := range rounds {
		urls = append(urls, strings.ReplaceAll(tmpl, PlaceholderRound, strconv.Itoa(round)))
	}
	return urls, nil
}

func espnURLs(settings config.SiteConfig) ([]string, error) {
	tmpl, err := template(settings.URLTemplate, ESPNTemplate, PlaceholderTeam, PlaceholderYear, PlaceholderSeasonType)
	if err != nil {
		return nil, err
	}

	years, err := yearRange(settings, ESPNFirstYear, ESPNLastYear)
	if err != nil {
		return nil, err
	}

	teams := settings.Teams
	if len(teams) == 0 {
		teams = ESPNTeams
	}
	seasonTypes := settings.SeasonTypes
	if len(seasonTypes) == 0 {
		seasonTypes = intRange(1, 3)
	}

	urls := make([]string, 0, len(teams)*len(years)*len(seasonTypes))
	for _, team := range teams {
		for _, year := range years {
			for _, seasonType := range seasonTypes {
				r := strings.NewReplacer(
					PlaceholderTeam, team,
					PlaceholderYear, strconv.Itoa(year),
					PlaceholderSeasonType, strconv.Itoa(seasonType),
				)
				urls = append(urls, r.Replace(tmpl))
			}
		}
	}
	return urls, nil
}

func hockeyRefURLs(settings config.SiteConfig) ([]string, error) {
	tmpl, err := template(settings.URLTemplate, HockeyRefTemplate, PlaceholderYear)
	if err != nil {
		return nil, err
	}

	years, err := yearRange(settings, HockeyRefFirstYear, HockeyRefLastYear)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(years))
	for _, year := range years {
		urls = append(urls, strings.ReplaceAll(tmpl, PlaceholderYear, strconv.Itoa(year)))
	}
	return urls, nil
}

// template returns custom when set, otherwise def, and checks that every
// placeholder is present.
func template(custom, def string, placeholders ...string) (string, error) {
	tmpl := def
	if custom != "" {
		tmpl = custom
	}
	for _, p := range placeholders {
		if !strings.Contains(tmpl, p) {
			return "", fmt.Errorf("%w: %s in %q", ErrMissingPlaceholder, p, tmpl)
		}
	}
	return tmpl, nil
}

// yearRange returns the inclusive year range, with zero bounds replaced by
// the site defaults.
func yearRange(settings config.SiteConfig, first, last int) ([]int, error) {
	if settings.FromYear != 0 {
		first = settings.FromYear
	}
	if settings.ToYear != 0 {
		last = settings.ToYear
	}
	if first > last {
		return nil, fmt.Errorf("%w: %d-%d", ErrEmptyYearRange, first, last)
	}
	return intRange(first, last), nil
}

// intRange returns [from, to] inclusive.
func intRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
