package state

import (
	"path/filepath"
	"testing"

	"github.com/RouteLens/routelens/internal/coverage"
	"github.com/RouteLens/routelens/internal/extractor"
	"github.com/RouteLens/routelens/internal/output"
)

func TestDeduplicator(t *testing.T) {
	d := NewDeduplicator(100)

	key := "GET /users a.java"
	if d.HasSeen(key) {
		t.Error("fresh deduplicator should not have seen anything")
	}
	if !d.Add(key) {
		t.Error("first Add should report new")
	}
	if d.Add(key) {
		t.Error("second Add should report duplicate")
	}
	if !d.HasSeen(key) {
		t.Error("HasSeen should be true after Add")
	}
	if d.Count() != 1 {
		t.Errorf("Count() = %d, want 1", d.Count())
	}

	d.Reset()
	if d.HasSeen(key) || d.Count() != 0 {
		t.Error("Reset should clear all state")
	}
}

func reportWith(keys ...[2]string) *output.ScanReport {
	r := output.NewReport("/repo")
	for _, k := range keys {
		r.Endpoints = append(r.Endpoints, coverage.Endpoint{
			Endpoint: extractor.Endpoint{
				Method:     extractor.Method(k[0]),
				Path:       k[1],
				SourceFile: "a.java",
				Line:       1,
			},
		})
	}
	r.Finalize()
	return r
}

func TestStore_SaveAndLastRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	last, err := s.LastRun()
	if err != nil {
		t.Fatalf("LastRun() error = %v", err)
	}
	if last != nil {
		t.Fatal("LastRun() on empty store should be nil")
	}

	r := reportWith([2]string{"GET", "/users"})
	if err := s.SaveRun(r); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	last, err = s.LastRun()
	if err != nil {
		t.Fatalf("LastRun() error = %v", err)
	}
	if last == nil || last.ID != r.ID {
		t.Errorf("LastRun() = %+v, want report %s", last, r.ID)
	}
}

func TestStore_Diff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	first := reportWith([2]string{"GET", "/users"}, [2]string{"POST", "/users"})

	// No history: everything is added.
	diff, err := s.Diff(first)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	if len(diff.Added) != 2 || len(diff.Removed) != 0 {
		t.Errorf("diff = +%d/-%d, want +2/-0", len(diff.Added), len(diff.Removed))
	}

	if err := s.SaveRun(first); err != nil {
		t.Fatal(err)
	}

	second := reportWith([2]string{"GET", "/users"}, [2]string{"DELETE", "/users/1"})
	diff, err = s.Diff(second)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	if len(diff.Added) != 1 || diff.Added[0] != "DELETE /users/1 a.java" {
		t.Errorf("Added = %v", diff.Added)
	}
	if len(diff.Removed) != 1 || diff.Removed[0] != "POST /users a.java" {
		t.Errorf("Removed = %v", diff.Removed)
	}
	if diff.PreviousID != first.ID {
		t.Errorf("PreviousID = %q, want %q", diff.PreviousID, first.ID)
	}
}
