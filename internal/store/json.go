package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// JSONStore implements the Store interface using a simple JSON file.
// All entries are kept in memory and persisted to disk on each write.
// This implementation is suitable for small indexes and testing.
type JSONStore struct {
	path    string
	entries map[string]*Entry // indexed by run_id
	mu      sync.RWMutex
}

// jsonPersistence is the on-disk format for the JSON store.
type jsonPersistence struct {
	Entries []*Entry `json:"entries"`
}

// NewJSONStore creates a new JSON file-backed store at the given path.
func NewJSONStore(path string) (Store, error) {
	s := &JSONStore{
		path:    path,
		entries: make(map[string]*Entry),
	}

	// Load existing data if file exists
	if _, err := os.Stat(path); err == nil {
		if err := s.load(); err != nil {
			return nil, fmt.Errorf("load existing data: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	return s, nil
}

// load reads the JSON file and populates the in-memory map.
func (s *JSONStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	var persist jsonPersistence
	if err := json.Unmarshal(data, &persist); err != nil {
		return fmt.Errorf("unmarshal json: %w", err)
	}

	s.entries = make(map[string]*Entry, len(persist.Entries))
	for _, entry := range persist.Entries {
		s.entries[entry.RunID] = entry
	}

	return nil
}

// save writes the in-memory map to the JSON file.
func (s *JSONStore) save() error {
	entries := make([]*Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}

	persist := jsonPersistence{Entries: entries}
	data, err := json.MarshalIndent(persist, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	// Write to temp file first, then rename (atomic on POSIX)
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// SaveEntry persists one run-index entry.
func (s *JSONStore) SaveEntry(entry *Entry) error {
	if entry.RunID == "" {
		return fmt.Errorf("run_id is required")
	}
	if entry.JobName == "" {
		return fmt.Errorf("job_name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.RunID] = entry
	return s.save()
}

// GetEntry retrieves a specific entry by run ID.
func (s *JSONStore) GetEntry(runID string) (*Entry, error) {
	if runID == "" {
		return nil, fmt.Errorf("run_id is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[runID]
	if !ok {
		return nil, fmt.Errorf("entry not found: %s", runID)
	}

	return entry, nil
}

// JobEntries retrieves the most recently indexed entries for one job.
func (s *JSONStore) JobEntries(jobName string, limit int) ([]*Entry, error) {
	if jobName == "" {
		return nil, fmt.Errorf("job_name is required")
	}
	if limit <= 0 {
		limit = 100 // default limit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Entry
	for _, entry := range s.entries {
		if entry.JobName == jobName {
			out = append(out, entry)
		}
	}

	sortNewestFirst(out)
	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

// AllEntries retrieves the most recently indexed entries across all jobs.
func (s *JSONStore) AllEntries(limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 100 // default limit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, entry)
	}

	sortNewestFirst(out)
	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

// Close releases resources held by the store.
// For JSON store, this is a no-op since we don't hold open file handles.
func (s *JSONStore) Close() error {
	return nil
}
