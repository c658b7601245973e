package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/hockeyscrape/internal/model"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "hockeyscrape"

	// DefaultTimeout of zero disables the client timeout. A stalled
	// connection is bounded only by the run context.
	DefaultTimeout time.Duration = 0

	// DefaultUserAgent identifies hockeyscrape in HTTP requests.
	DefaultUserAgent = "hockeyscrape/1.0 (+https://github.com/nao1215/hockeyscrape)"

	// DefaultMaxBodySize limits the response body size to read.
	DefaultMaxBodySize = model.MaxPageSize

	// DefaultRequestLogPath is the append-only request log.
	DefaultRequestLogPath = "scrape_records.log"

	// DefaultMongoURI is the MongoDB server used by the mongo driver.
	DefaultMongoURI = "mongodb://localhost:27017"

	// DefaultDatabase is the database holding the per-site collections.
	DefaultDatabase = "hockey_stats"
)

// Store drivers.
const (
	// DriverSQLite stores collections as tables of an embedded SQLite file.
	DriverSQLite = "sqlite"
	// DriverMongo stores collections in a MongoDB database.
	DriverMongo = "mongo"
)

// Run summary formats.
const (
	SummaryText     = "text"
	SummaryMarkdown = "markdown"
	SummaryJSON     = "json"
	SummaryNone     = "none"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds all configuration options for a scrape run.
// It is populated from CLI flags and the optional configuration file and
// passed down explicitly; there is no global configuration.
type Config struct {
	// Site selects which site's targets are scraped.
	Site model.Site

	// Stall is the pause after every URL, whatever its outcome.
	// Zero means the site's default stall.
	Stall time.Duration

	// Timeout is the HTTP client timeout. Zero disables it.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Zero means DefaultMaxBodySize.
	MaxBodySize int64

	// ProxyAddress is an optional SOCKS5 proxy in "host:port" format.
	ProxyAddress string

	// RequestLogPath is the file every reachable request is appended to.
	RequestLogPath string

	// StoreDriver selects the document store: DriverSQLite or DriverMongo.
	StoreDriver string

	// DBDir is the directory of the SQLite database file.
	// Defaults to the XDG data directory (~/.local/share/hockeyscrape on Linux).
	DBDir string

	// MongoURI is the MongoDB connection string for DriverMongo.
	MongoURI string

	// Database is the MongoDB database name for DriverMongo.
	Database string

	// FromYear and ToYear narrow the season range of year based targets.
	// Zero keeps the site's default bound.
	FromYear int
	ToYear   int

	// Summary is the run summary format written after a scrape.
	Summary string

	// LogFormat selects the slog handler: LogFormatText or LogFormatJSON.
	LogFormat string

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, .hockeyscrape is searched in the current directory and then
	// in the user's home directory.
	ConfigFilePath string

	// SiteConfigs holds the per-site settings loaded from the config file.
	SiteConfigs *File
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Timeout:        DefaultTimeout,
		UserAgent:      DefaultUserAgent,
		MaxBodySize:    DefaultMaxBodySize,
		RequestLogPath: DefaultRequestLogPath,
		StoreDriver:    DriverSQLite,
		DBDir:          XDGDataDir(),
		MongoURI:       DefaultMongoURI,
		Database:       DefaultDatabase,
		Summary:        SummaryText,
		LogFormat:      LogFormatText,
	}
}

// XDGDataDir returns the XDG data directory for hockeyscrape.
// On Linux: ~/.local/share/hockeyscrape
// On macOS: ~/Library/Application Support/hockeyscrape
// On Windows: %LOCALAPPDATA%\hockeyscrape
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for hockeyscrape.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// SiteSettings returns the effective settings for the configured site:
// the config file's defaults, then its site block, then command line
// overrides.
func (c *Config) SiteSettings() SiteConfig {
	var result SiteConfig
	if c.SiteConfigs != nil {
		result = c.SiteConfigs.GetSiteConfig(c.Site.String())
	}

	if c.Stall > 0 {
		result.Stall = c.Stall
	}
	if c.FromYear != 0 {
		result.FromYear = c.FromYear
	}
	if c.ToYear != 0 {
		result.ToYear = c.ToYear
	}
	return result
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the package sentinel errors.
func (c *Config) Validate() error {
	if !c.Site.Valid() {
		return ErrNoSite
	}

	if c.Stall < 0 {
		return ErrInvalidStall
	}

	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.RequestLogPath == "" {
		return ErrNoRequestLog
	}

	switch c.StoreDriver {
	case DriverSQLite:
		if c.DBDir == "" {
			return ErrNoDBDir
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return ErrNoMongoURI
		}
		if c.Database == "" {
			return ErrNoDatabase
		}
	default:
		return ErrInvalidStoreDriver
	}

	if c.FromYear < 0 || c.ToYear < 0 {
		return ErrInvalidYearRange
	}
	if c.FromYear != 0 && c.ToYear != 0 && c.FromYear > c.ToYear {
		return ErrInvalidYearRange
	}

	switch c.Summary {
	case SummaryText, SummaryMarkdown, SummaryJSON, SummaryNone:
	default:
		return ErrInvalidSummaryFormat
	}

	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return ErrInvalidLogFormat
	}

	return nil
}
