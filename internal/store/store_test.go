package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/hockeyscrape/internal/config"
	"github.com/nao1215/hockeyscrape/internal/model"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := OpenSQLite(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// TestOpenSQLite tests database opening and creation.
func TestOpenSQLite(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		s, err := OpenSQLite(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		defer s.Close()

		if _, err := os.Stat(filepath.Join(dbDir, DBFileName)); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
		if s.Path() != filepath.Join(dbDir, DBFileName) {
			t.Errorf("unexpected path %q", s.Path())
		}
	})

	t.Run("CreateIfNotExists=false fails on missing database", func(t *testing.T) {
		t.Parallel()

		_, err := OpenSQLite(filepath.Join(t.TempDir(), "missing"), Options{CreateIfNotExists: false})
		if err == nil {
			t.Fatal("expected error for missing database")
		}
	})

	t.Run("reopens existing database", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s, err := OpenSQLite(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		ctx := context.Background()
		if err := s.InsertBatch(ctx, model.SiteNHL, []model.Record{model.NewRecord("0", "x")}); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}
		_ = s.Close()

		reopened, err := OpenSQLite(dir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to reopen store: %v", err)
		}
		defer reopened.Close()

		n, err := reopened.Count(ctx, model.SiteNHL)
		if err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if n != 1 {
			t.Errorf("expected 1 document after reopen, got %d", n)
		}
	})
}

// TestSQLiteStoreInsertBatch tests appending records to collections.
func TestSQLiteStoreInsertBatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("stores records as single key documents", func(t *testing.T) {
		t.Parallel()

		s := setupTestStore(t)
		fixed := time.Date(2019, 3, 1, 23, 22, 5, 0, time.UTC)
		s.now = func() time.Time { return fixed }

		records := []model.Record{
			model.NewRecord("https://www.hockey-reference.com/leagues/NHL_2019.html", "Rk, Team"),
			model.NewRecord("https://www.hockey-reference.com/leagues/NHL_2019.html", "1, Tampa Bay Lightning"),
		}
		if err := s.InsertBatch(ctx, model.SiteHockeyRef, records); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}

		docs, err := s.Documents(ctx, model.SiteHockeyRef)
		if err != nil {
			t.Fatalf("failed to read documents: %v", err)
		}

		got := make([]model.Record, 0, len(docs))
		for _, d := range docs {
			got = append(got, d.Record)
			if !d.InsertedAt.Equal(fixed) {
				t.Errorf("expected inserted_at %v, got %v", fixed, d.InsertedAt)
			}
		}
		if diff := cmp.Diff(records, got); diff != "" {
			t.Errorf("documents mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("duplicates are appended", func(t *testing.T) {
		t.Parallel()

		s := setupTestStore(t)
		records := []model.Record{
			model.NewRecord("0", "<td>1</td>"),
			model.NewRecord("1", ""),
		}

		for range 2 {
			if err := s.InsertBatch(ctx, model.SiteNHL, records); err != nil {
				t.Fatalf("failed to insert: %v", err)
			}
		}

		n, err := s.Count(ctx, model.SiteNHL)
		if err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if n != int64(2*len(records)) {
			t.Errorf("expected %d documents, got %d", 2*len(records), n)
		}
	})

	t.Run("collections are separate", func(t *testing.T) {
		t.Parallel()

		s := setupTestStore(t)
		if err := s.InsertBatch(ctx, model.SiteESPN, []model.Record{model.NewRecord("k", model.NoValue)}); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}

		for _, site := range model.AllSites() {
			n, err := s.Count(ctx, site)
			if err != nil {
				t.Fatalf("failed to count %s: %v", site, err)
			}
			want := int64(0)
			if site == model.SiteESPN {
				want = 1
			}
			if n != want {
				t.Errorf("%s: expected %d documents, got %d", site, want, n)
			}
		}
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		t.Parallel()

		s := setupTestStore(t)
		if err := s.InsertBatch(ctx, model.SiteNHL, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n, _ := s.Count(ctx, model.SiteNHL); n != 0 {
			t.Errorf("expected empty collection, got %d", n)
		}
	})

	t.Run("unknown site is a store error", func(t *testing.T) {
		t.Parallel()

		s := setupTestStore(t)
		err := s.InsertBatch(ctx, model.Site(42), []model.Record{model.NewRecord("k", "v")})

		var storeErr *model.StoreError
		if !errors.As(err, &storeErr) {
			t.Fatalf("expected *model.StoreError, got %T", err)
		}
		if !errors.Is(err, model.ErrUnknownSite) {
			t.Errorf("expected ErrUnknownSite, got %v", err)
		}
	})

	t.Run("closed database is a store error", func(t *testing.T) {
		t.Parallel()

		s := setupTestStore(t)
		_ = s.Close()

		err := s.InsertBatch(ctx, model.SiteNHL, []model.Record{model.NewRecord("0", "")})
		var storeErr *model.StoreError
		if !errors.As(err, &storeErr) {
			t.Fatalf("expected *model.StoreError, got %v", err)
		}
		if storeErr.Collection != "nhl" || storeErr.Count != 1 {
			t.Errorf("unexpected store error fields %+v", storeErr)
		}
	})
}

// TestMongoStoreInsertBatch tests the checks that run before any round trip
// to the server.
func TestMongoStoreInsertBatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty batch is a no-op", func(t *testing.T) {
		t.Parallel()

		s := &MongoStore{}
		if err := s.InsertBatch(ctx, model.SiteESPN, nil); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("unknown site is a store error", func(t *testing.T) {
		t.Parallel()

		s := &MongoStore{}
		err := s.InsertBatch(ctx, model.Site(42), []model.Record{model.NewRecord("k", "v")})

		var storeErr *model.StoreError
		if !errors.As(err, &storeErr) {
			t.Fatalf("expected *model.StoreError, got %T", err)
		}
		if !errors.Is(err, model.ErrUnknownSite) {
			t.Errorf("expected ErrUnknownSite, got %v", err)
		}
		if storeErr.Count != 1 {
			t.Errorf("expected count 1, got %d", storeErr.Count)
		}
	})
}

// TestOpen tests engine selection from configuration.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("sqlite driver", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.DBDir = t.TempDir()

		s, err := Open(context.Background(), cfg)
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		defer s.Close()

		if _, ok := s.(*SQLiteStore); !ok {
			t.Errorf("expected *SQLiteStore, got %T", s)
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.StoreDriver = "csv"

		if _, err := Open(context.Background(), cfg); !errors.Is(err, config.ErrInvalidStoreDriver) {
			t.Errorf("expected ErrInvalidStoreDriver, got %v", err)
		}
	})
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	want := time.Date(2019, 3, 1, 23, 22, 5, 0, time.UTC)
	for _, s := range []string{"2019-03-01T23:22:05Z", "2019-03-01 23:22:05"} {
		if got := parseTimestamp(s); !got.Equal(want) {
			t.Errorf("parseTimestamp(%q) = %v, want %v", s, got, want)
		}
	}
	if got := parseTimestamp("garbage"); !got.IsZero() {
		t.Errorf("expected zero time, got %v", got)
	}
}
