package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/hockeyscrape/internal/model"
)

// DBFileName is the SQLite database file created inside the database directory.
const DBFileName = "hockeyscrape.db"

// SQLiteStore keeps each site collection as a table of JSON documents.
type SQLiteStore struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string

	// now stamps inserted documents.
	now func() time.Time
}

// Options configures SQLiteStore behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// OpenSQLite opens or creates the database in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func OpenSQLite(dbDir string, opts Options) (*SQLiteStore, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite: mode=rw refuses to create a missing file, mode=rwc creates it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLiteStore{
		db:     db,
		dbPath: dbPath,
		now:    time.Now,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// createTables creates one collection table per site.
// Table names come from the closed model.Site set, never from input.
func (s *SQLiteStore) createTables() error {
	for _, site := range model.AllSites() {
		name := site.Collection()
		schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			doc TEXT NOT NULL,
			doc_key TEXT NOT NULL,
			doc_value TEXT NOT NULL,
			inserted_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_%[1]s_doc_key ON %[1]s(doc_key);
		`, name)

		if _, err := s.db.ExecContext(context.Background(), schema); err != nil {
			return fmt.Errorf("collection %s: %w", name, err)
		}
	}
	return nil
}

// InsertBatch appends records to the site's table inside one transaction.
// Either the whole batch is stored or none of it.
func (s *SQLiteStore) InsertBatch(ctx context.Context, site model.Site, records []model.Record) error {
	name, err := collection(site)
	if err != nil {
		return &model.StoreError{Collection: site.String(), Count: len(records), Err: err}
	}
	if len(records) == 0 {
		return nil
	}

	storeErr := func(err error) error {
		return &model.StoreError{Collection: name, Count: len(records), Err: err}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (doc, doc_key, doc_value, inserted_at) VALUES (?, ?, ?, ?)", name))
	if err != nil {
		return storeErr(fmt.Errorf("failed to prepare insert: %w", err))
	}
	defer stmt.Close()

	insertedAt := s.now().UTC().Format(time.RFC3339Nano)
	for _, r := range records {
		doc, err := json.Marshal(r.Document())
		if err != nil {
			return storeErr(fmt.Errorf("failed to serialize document: %w", err))
		}
		if _, err := stmt.ExecContext(ctx, string(doc), r.Key, r.Value, insertedAt); err != nil {
			return storeErr(fmt.Errorf("failed to insert document: %w", err))
		}
	}

	if err := tx.Commit(); err != nil {
		return storeErr(fmt.Errorf("failed to commit: %w", err))
	}
	return nil
}

// Count returns the number of documents in the site's table.
func (s *SQLiteStore) Count(ctx context.Context, site model.Site) (int64, error) {
	name, err := collection(site)
	if err != nil {
		return 0, err
	}

	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", name)
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", name, err)
	}
	return count, nil
}

// Document is a stored record with its storage metadata.
type Document struct {
	ID         int64
	Record     model.Record
	InsertedAt time.Time
}

// Documents returns every document of the site's table in insertion order.
func (s *SQLiteStore) Documents(ctx context.Context, site model.Site) ([]Document, error) {
	name, err := collection(site)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT id, doc, inserted_at FROM %s ORDER BY id", name)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", name, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var (
			d         Document
			raw       string
			timestamp string
		)
		if err := rows.Scan(&d.ID, &raw, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		var m map[string]string
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return nil, fmt.Errorf("failed to parse document %d: %w", d.ID, err)
		}
		for k, v := range m {
			d.Record = model.Record{Key: k, Value: v}
		}
		d.InsertedAt = parseTimestamp(timestamp)
		docs = append(docs, d)
	}

	return docs, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return
// for a DATETIME column. More specific formats come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
}

// parseTimestamp parses a stored timestamp, returning the zero time when no
// format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
