package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// Callers match them with errors.Is.
var (
	// ErrNoSite is returned when no known site is selected.
	ErrNoSite = errors.New("no site specified: use --site nhl, espn or hockeyref")

	// ErrInvalidStall is returned when the stall is negative.
	ErrInvalidStall = errors.New("invalid stall: must be non-negative")

	// ErrInvalidTimeout is returned when the timeout is negative.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrNoRequestLog is returned when the request log path is empty.
	ErrNoRequestLog = errors.New("no request log path specified")

	// ErrInvalidStoreDriver is returned for a driver other than sqlite or mongo.
	ErrInvalidStoreDriver = errors.New("invalid store driver: must be sqlite or mongo")

	// ErrNoDBDir is returned when the sqlite driver has no database directory.
	ErrNoDBDir = errors.New("no database directory specified for the sqlite store")

	// ErrNoMongoURI is returned when the mongo driver has no connection URI.
	ErrNoMongoURI = errors.New("no MongoDB URI specified for the mongo store")

	// ErrNoDatabase is returned when the mongo driver has no database name.
	ErrNoDatabase = errors.New("no database name specified for the mongo store")

	// ErrInvalidYearRange is returned when a year bound is negative or the
	// range is reversed.
	ErrInvalidYearRange = errors.New("invalid year range: --from must not be after --to")

	// ErrInvalidSummaryFormat is returned for an unknown run summary format.
	ErrInvalidSummaryFormat = errors.New("invalid summary format: must be text, markdown, json or none")

	// ErrInvalidLogFormat is returned for an unknown log format.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")
)
