package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/RouteLens/routelens/internal/output"
)

var bucketRuns = []byte("runs")

// RunDiff describes how the endpoint set changed between the previous saved
// run and the current one. Keys are "METHOD path file" identity strings.
type RunDiff struct {
	PreviousID string   `json:"previous_id,omitempty"`
	Added      []string `json:"added"`
	Removed    []string `json:"removed"`
}

// Store persists scan reports between runs in a BoltDB file. The extraction
// core itself is scan-scoped and stateless; history lives entirely out here.
type Store struct {
	db   *bolt.DB
	path string
}

// Open opens (or creates) a history store at path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRuns)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// SaveRun appends a finished report to the history, keyed by start time so
// the latest run is always last in bucket order.
func (s *Store) SaveRun(report *output.ScanReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	key := []byte(report.StartedAt.UTC().Format(time.RFC3339Nano))
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		if b == nil {
			return fmt.Errorf("bucket not found")
		}
		return b.Put(key, data)
	})
}

// LastRun returns the most recently saved report, or nil when the history is
// empty.
func (s *Store) LastRun() (*output.ScanReport, error) {
	var report *output.ScanReport

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		if b == nil {
			return fmt.Errorf("bucket not found")
		}

		_, data := b.Cursor().Last()
		if data == nil {
			return nil
		}

		report = &output.ScanReport{}
		return json.Unmarshal(data, report)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Diff compares the current report's endpoint set against the last saved run.
// With no saved history every endpoint counts as added.
func (s *Store) Diff(current *output.ScanReport) (*RunDiff, error) {
	previous, err := s.LastRun()
	if err != nil {
		return nil, err
	}

	diff := &RunDiff{
		Added:   make([]string, 0),
		Removed: make([]string, 0),
	}

	currentKeys := make(map[string]struct{}, len(current.Endpoints))
	for _, ep := range current.Endpoints {
		currentKeys[ep.DiffKey()] = struct{}{}
	}

	previousKeys := make(map[string]struct{})
	if previous != nil {
		diff.PreviousID = previous.ID
		for _, ep := range previous.Endpoints {
			previousKeys[ep.DiffKey()] = struct{}{}
		}
	}

	seen := make(map[string]struct{})
	for _, ep := range current.Endpoints {
		key := ep.DiffKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := previousKeys[key]; !ok {
			diff.Added = append(diff.Added, key)
		}
	}
	if previous != nil {
		seen = make(map[string]struct{})
		for _, ep := range previous.Endpoints {
			key := ep.DiffKey()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if _, ok := currentKeys[key]; !ok {
				diff.Removed = append(diff.Removed, key)
			}
		}
	}

	return diff, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
