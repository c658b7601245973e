package config

import "time"

// SiteConfig holds the target settings for one site.
// Zero values mean "use the built-in default" for that site.
type SiteConfig struct {
	// Stall overrides the pause after each URL.
	Stall time.Duration `yaml:"stall,omitempty"`

	// URLTemplate overrides the target URL template. Placeholders are
	// {round}, {team}, {year} and {seasonType}.
	URLTemplate string `yaml:"urlTemplate,omitempty"`

	// FromYear and ToYear bound year based targets (espn, hockeyref).
	FromYear int `yaml:"fromYear,omitempty"`
	ToYear   int `yaml:"toYear,omitempty"`

	// Teams overrides the espn team codes.
	Teams []string `yaml:"teams,omitempty"`

	// SeasonTypes overrides the espn season types.
	SeasonTypes []int `yaml:"seasonTypes,omitempty"`

	// Rounds overrides the nhl draft rounds.
	Rounds []int `yaml:"rounds,omitempty"`
}

// File represents the structure of the .hockeyscrape configuration file.
type File struct {
	// Sites maps site tags (nhl, espn, hockeyref) to their settings.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults is applied to every site unless the site block overrides it.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig returns the configuration for a site tag, merging the
// site block over the defaults.
func (cf *File) GetSiteConfig(site string) SiteConfig {
	result := cf.Defaults

	siteConfig, ok := cf.Sites[site]
	if !ok {
		return result
	}

	if siteConfig.Stall != 0 {
		result.Stall = siteConfig.Stall
	}
	if siteConfig.URLTemplate != "" {
		result.URLTemplate = siteConfig.URLTemplate
	}
	if siteConfig.FromYear != 0 {
		result.FromYear = siteConfig.FromYear
	}
	if siteConfig.ToYear != 0 {
		result.ToYear = siteConfig.ToYear
	}
	if len(siteConfig.Teams) > 0 {
		result.Teams = siteConfig.Teams
	}
	if len(siteConfig.SeasonTypes) > 0 {
		result.SeasonTypes = siteConfig.SeasonTypes
	}
	if len(siteConfig.Rounds) > 0 {
		result.Rounds = siteConfig.Rounds
	}

	return result
}
