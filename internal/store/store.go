package store

import (
	"context"
	"fmt"

	"github.com/nao1215/hockeyscrape/internal/config"
	"github.com/nao1215/hockeyscrape/internal/model"
)

// Store appends records to the collection of a site.
type Store interface {
	// InsertBatch appends records to the site's collection as one batch.
	// An empty batch is a no-op. Failures are returned as *model.StoreError.
	InsertBatch(ctx context.Context, site model.Site, records []model.Record) error

	// Count returns the number of documents in the site's collection.
	Count(ctx context.Context, site model.Site) (int64, error)

	// Close releases the underlying connection.
	Close() error
}

// Open opens the store selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		return OpenSQLite(cfg.DBDir, DefaultOptions())
	case config.DriverMongo:
		return OpenMongo(ctx, cfg.MongoURI, cfg.Database)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidStoreDriver, cfg.StoreDriver)
	}
}

// collection returns the collection name for site or an error for sites
// outside the closed set.
func collection(site model.Site) (string, error) {
	if !site.Valid() {
		return "", fmt.Errorf("%w: %d", model.ErrUnknownSite, int(site))
	}
	return site.Collection(), nil
}
