package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sparkhub/sparkhub-cli/internal/adapter/outbound/rest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	recs := []rest.CallRecord{
		{Method: "GET", Path: "/api/projects", RequestID: "r1", Status: 200, Duration: 42 * time.Millisecond, At: time.Now().UTC()},
		{Method: "POST", Path: "/api/backings", RequestID: "r2", Status: 200, Duration: 10 * time.Millisecond, At: time.Now().UTC()},
		{Method: "GET", Path: "/api/notifications", RequestID: "r3", Status: 0, Duration: time.Second, At: time.Now().UTC()},
	}
	for _, rec := range recs {
		if err := s.Record(ctx, rec); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	// Newest first.
	if entries[0].Path != "/api/notifications" || entries[2].Path != "/api/projects" {
		t.Errorf("order = %q .. %q", entries[0].Path, entries[2].Path)
	}
	if entries[0].Status != 0 {
		t.Errorf("network failure must record status 0, got %d", entries[0].Status)
	}
	if entries[2].Duration != 42*time.Millisecond {
		t.Errorf("duration = %v", entries[2].Duration)
	}
}

func TestRecentLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := s.Record(ctx, rest.CallRecord{Method: "GET", Path: "/api/projects", At: time.Now().UTC()}); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("entries = %d, want 2", len(entries))
	}
}

func TestPrune(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	old := rest.CallRecord{Method: "GET", Path: "/api/projects", At: time.Now().UTC().Add(-48 * time.Hour)}
	fresh := rest.CallRecord{Method: "GET", Path: "/api/projects", At: time.Now().UTC()}
	if err := s.Record(ctx, old); err != nil {
		t.Fatal(err)
	}
	if err := s.Record(ctx, fresh); err != nil {
		t.Fatal(err)
	}

	n, err := s.Prune(ctx, 24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("pruned = %d, want 1", n)
	}
	entries, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("remaining = %d, want 1", len(entries))
	}
}
