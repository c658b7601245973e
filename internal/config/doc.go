// Package config provides the run configuration for hockeyscrape.
// It defines the scrape settings, the document store selection and the
// optional .hockeyscrape YAML file with per-site target overrides.
package config
