package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSite is returned when a site tag does not name one of the
// supported sites.
var ErrUnknownSite = errors.New("unknown site: must be one of nhl, espn, hockeyref")

// Site identifies one of the supported statistics sites.
// The set is closed: every Site is bound to exactly one parser and one
// collection, and there is no default branch.
type Site int

const (
	// SiteNHL is nhl.com. Tables are read positionally from every <tbody>.
	SiteNHL Site = iota + 1

	// SiteESPN is espn.com. Tables are read from <tbody class="Table2__tbody">.
	SiteESPN

	// SiteHockeyRef is hockey-reference.com. Tables are hidden in HTML
	// comments inside the #all_stats container.
	SiteHockeyRef
)

// AllSites returns every supported site in declaration order.
func AllSites() []Site {
	return []Site{SiteNHL, SiteESPN, SiteHockeyRef}
}

// siteTags maps each site to its tag. The tag doubles as the collection name.
var siteTags = map[Site]string{
	SiteNHL:       "nhl",
	SiteESPN:      "espn",
	SiteHockeyRef: "hockeyref",
}

// ParseSite converts a site tag ("nhl", "espn", "hockeyref") into a Site.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseSite(tag string) (Site, error) {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	for site, t := range siteTags {
		if t == normalized {
			return site, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSite, tag)
}

// String returns the site tag.
func (s Site) String() string {
	if tag, ok := siteTags[s]; ok {
		return tag
	}
	return fmt.Sprintf("Site(%d)", int(s))
}

// Valid reports whether s is one of the supported sites.
func (s Site) Valid() bool {
	_, ok := siteTags[s]
	return ok
}

// Collection returns the name of the datastore collection that holds
// records scraped from this site.
func (s Site) Collection() string {
	return s.String()
}

// MarshalText implements encoding.TextMarshaler so that Site values can be
// used directly in YAML and JSON.
func (s Site) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSite, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Site) UnmarshalText(text []byte) error {
	site, err := ParseSite(string(text))
	if err != nil {
		return err
	}
	*s = site
	return nil
}
