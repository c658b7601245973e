package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/hockeyscrape/internal/model"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".hockeyscrape"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadConfigFile loads per-site target settings from a YAML file.
// A missing file returns ErrConfigNotFound; callers decide whether that
// matters based on whether the path was given explicitly.
// Site blocks must be keyed by a known site tag.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Re-key site blocks by their canonical tag so "NHL" and "nhl" match.
	sites := make(map[string]SiteConfig, len(cf.Sites))
	for tag, sc := range cf.Sites {
		site, err := model.ParseSite(tag)
		if err != nil {
			return nil, fmt.Errorf("invalid site block in %s: %w", path, err)
		}
		sites[site.String()] = sc
	}
	cf.Sites = sites

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .hockeyscrape in the current directory
// 3. Look for .hockeyscrape in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if fileExists(configPath) {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, candidate := range candidates {
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
