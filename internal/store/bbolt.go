package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	// entriesBucket is the top-level bucket for all indexed runs, with one
	// sub-bucket per job.
	entriesBucket = "entries"
	// runIndexBucket maps run_id to job name for fast single-run lookups.
	runIndexBucket = "run_index"
)

// BoltStore implements the Store interface using BoltDB.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore creates a new BoltDB-backed store at the given path.
func NewBoltStore(path string) (Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb at %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(entriesBucket)); err != nil {
			return fmt.Errorf("create entries bucket: %w", err)
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(runIndexBucket)); err != nil {
			return fmt.Errorf("create run_index bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// SaveEntry persists one run-index entry.
func (s *BoltStore) SaveEntry(entry *Entry) error {
	if entry.RunID == "" {
		return fmt.Errorf("run_id is required")
	}
	if entry.JobName == "" {
		return fmt.Errorf("job_name is required")
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		entries := tx.Bucket([]byte(entriesBucket))
		index := tx.Bucket([]byte(runIndexBucket))

		jobBucket, err := entries.CreateBucketIfNotExists([]byte(entry.JobName))
		if err != nil {
			return fmt.Errorf("create job bucket %s: %w", entry.JobName, err)
		}

		if err := jobBucket.Put([]byte(entry.RunID), data); err != nil {
			return fmt.Errorf("put entry in job bucket: %w", err)
		}

		if err := index.Put([]byte(entry.RunID), []byte(entry.JobName)); err != nil {
			return fmt.Errorf("put run index: %w", err)
		}

		return nil
	})
}

// GetEntry retrieves a specific entry by run ID.
func (s *BoltStore) GetEntry(runID string) (*Entry, error) {
	if runID == "" {
		return nil, fmt.Errorf("run_id is required")
	}

	var entry *Entry

	err := s.db.View(func(tx *bolt.Tx) error {
		index := tx.Bucket([]byte(runIndexBucket))
		entries := tx.Bucket([]byte(entriesBucket))

		jobName := index.Get([]byte(runID))
		if jobName == nil {
			return fmt.Errorf("entry not found: %s", runID)
		}

		jobBucket := entries.Bucket(jobName)
		if jobBucket == nil {
			return fmt.Errorf("job bucket not found: %s", string(jobName))
		}

		data := jobBucket.Get([]byte(runID))
		if data == nil {
			return fmt.Errorf("entry not found in job bucket: %s", runID)
		}

		entry = &Entry{}
		if err := json.Unmarshal(data, entry); err != nil {
			return fmt.Errorf("unmarshal entry: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return entry, nil
}

// JobEntries retrieves the most recently indexed entries for one job.
func (s *BoltStore) JobEntries(jobName string, limit int) ([]*Entry, error) {
	if jobName == "" {
		return nil, fmt.Errorf("job_name is required")
	}
	if limit <= 0 {
		limit = 100 // default limit
	}

	var out []*Entry

	err := s.db.View(func(tx *bolt.Tx) error {
		entries := tx.Bucket([]byte(entriesBucket))
		jobBucket := entries.Bucket([]byte(jobName))

		if jobBucket == nil {
			// Nothing indexed for this job yet
			return nil
		}

		return jobBucket.ForEach(func(k, v []byte) error {
			entry := &Entry{}
			if err := json.Unmarshal(v, entry); err != nil {
				return fmt.Errorf("unmarshal entry %s: %w", string(k), err)
			}
			out = append(out, entry)
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	sortNewestFirst(out)
	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

// AllEntries retrieves the most recently indexed entries across all jobs.
func (s *BoltStore) AllEntries(limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 100 // default limit
	}

	var out []*Entry

	err := s.db.View(func(tx *bolt.Tx) error {
		entries := tx.Bucket([]byte(entriesBucket))

		return entries.ForEach(func(jobName, v []byte) error {
			jobBucket := entries.Bucket(jobName)
			if jobBucket == nil {
				return nil
			}

			return jobBucket.ForEach(func(k, v []byte) error {
				entry := &Entry{}
				if err := json.Unmarshal(v, entry); err != nil {
					return fmt.Errorf("unmarshal entry %s: %w", string(k), err)
				}
				out = append(out, entry)
				return nil
			})
		})
	})

	if err != nil {
		return nil, err
	}

	sortNewestFirst(out)
	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

// Close releases resources held by the store.
func (s *BoltStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// sortNewestFirst orders entries by indexing time descending, run ID as the
// tiebreaker so output is deterministic.
func sortNewestFirst(entries []*Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].IndexedAt.Equal(entries[j].IndexedAt) {
			return entries[i].IndexedAt.After(entries[j].IndexedAt)
		}
		return entries[i].RunID < entries[j].RunID
	})
}
