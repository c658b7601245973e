package model

import (
	"errors"
	"strings"
	"testing"
)

// TestNormalizeKey tests dot replacement in record keys.
func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"1.2", "1_2"},
		{"https://www.hockey-reference.com/leagues/NHL_1990.html", "https://www_hockey-reference_com/leagues/NHL_1990_html"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestRecordDocument tests that a record renders as a single-entry mapping.
func TestRecordDocument(t *testing.T) {
	t.Parallel()

	r := NewRecord("http://www.espn.com/nhl", "<td>1</td>")
	doc := r.Document()

	if len(doc) != 1 {
		t.Fatalf("expected exactly one entry, got %d", len(doc))
	}
	if doc["http://www_espn_com/nhl"] != "<td>1</td>" {
		t.Errorf("unexpected document: %v", doc)
	}
}

// TestPipelineErrors tests the typed stage errors.
func TestPipelineErrors(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")

	t.Run("fetch error wraps cause", func(t *testing.T) {
		t.Parallel()

		var err error = &FetchError{URL: "http://x.test", Err: cause}
		if !errors.Is(err, cause) {
			t.Error("expected FetchError to unwrap to cause")
		}
		var fe *FetchError
		if !errors.As(err, &fe) || fe.URL != "http://x.test" {
			t.Errorf("errors.As failed: %v", err)
		}
	})

	t.Run("parse error names site", func(t *testing.T) {
		t.Parallel()

		err := &ParseError{URL: "http://x.test", Site: SiteHockeyRef, Err: ErrContainerNotFound}
		if !errors.Is(err, ErrContainerNotFound) {
			t.Error("expected ParseError to unwrap to ErrContainerNotFound")
		}
		if !strings.Contains(err.Error(), "hockeyref") {
			t.Errorf("expected site in message: %s", err.Error())
		}
	})

	t.Run("store error names collection", func(t *testing.T) {
		t.Parallel()

		err := &StoreError{Collection: "espn", Count: 3, Err: cause}
		if !errors.Is(err, cause) {
			t.Error("expected StoreError to unwrap to cause")
		}
		if !strings.Contains(err.Error(), "3 records into espn") {
			t.Errorf("unexpected message: %s", err.Error())
		}
	})
}
