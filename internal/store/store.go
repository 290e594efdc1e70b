// Package store caches the run index so repeated queries do not rescan the
// tracking root.
package store

import (
	"time"
)

// Store defines the interface for persisting and retrieving the run index.
type Store interface {
	// SaveEntry persists one run-index entry.
	SaveEntry(entry *Entry) error

	// GetEntry retrieves a specific entry by run ID.
	GetEntry(runID string) (*Entry, error)

	// JobEntries retrieves the most recently indexed entries for one job.
	// Returns up to 'limit' entries, newest first.
	JobEntries(jobName string, limit int) ([]*Entry, error)

	// AllEntries retrieves the most recently indexed entries across all
	// jobs. Returns up to 'limit' entries, newest first.
	AllEntries(limit int) ([]*Entry, error)

	// Close releases any resources held by the store.
	Close() error
}

// Entry is one indexed run: its identity plus the flattened configuration
// snapshot captured at indexing time.
type Entry struct {
	// RunID is the run identifier, the base name of the run directory.
	RunID string `json:"run_id"`

	// JobName is the job the run belongs to.
	JobName string `json:"job_name"`

	// Dir is the run directory the entry was built from.
	Dir string `json:"dir"`

	// Params holds the run's flattened configuration (dotted keys).
	Params map[string]any `json:"params,omitempty"`

	// IndexedAt is when the entry was written.
	IndexedAt time.Time `json:"indexed_at"`
}

// Age returns how long ago the entry was indexed.
func (e *Entry) Age() time.Duration {
	if e.IndexedAt.IsZero() {
		return 0
	}
	return time.Since(e.IndexedAt)
}
