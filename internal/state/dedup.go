// Package state provides endpoint deduplication and scan history.
package state

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Deduplicator handles endpoint deduplication using a Bloom filter backed by
// an exact set for false-positive checks.
type Deduplicator struct {
	mu     sync.RWMutex
	filter *bloom.BloomFilter
	exact  map[string]struct{}
	count  int
}

// NewDeduplicator creates a new deduplicator sized for the expected number of
// endpoint records.
func NewDeduplicator(estimatedItems int) *Deduplicator {
	if estimatedItems < 1000 {
		estimatedItems = 1000
	}

	return &Deduplicator{
		filter: bloom.NewWithEstimates(uint(estimatedItems), 0.001),
		exact:  make(map[string]struct{}),
	}
}

// Add records an endpoint key. Returns true if the key was new.
func (d *Deduplicator) Add(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.exact[key]; exists {
		return false
	}
	d.filter.AddString(key)
	d.exact[key] = struct{}{}
	d.count++
	return true
}

// HasSeen checks if an endpoint key has been seen before.
func (d *Deduplicator) HasSeen(key string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	// Fast negative check with the Bloom filter.
	if !d.filter.TestString(key) {
		return false
	}
	_, exists := d.exact[key]
	return exists
}

// Count returns the number of unique keys seen.
func (d *Deduplicator) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.count
}

// Reset clears the deduplicator.
func (d *Deduplicator) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.filter.ClearAll()
	d.exact = make(map[string]struct{})
	d.count = 0
}
