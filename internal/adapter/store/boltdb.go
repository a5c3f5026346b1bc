package store

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"concord/internal/domain"
)

var (
	bucketEntries = []byte("entries")
	bucketStats   = []byte("stats")
	keyStats      = []byte("run_stats")
)

// BoltStore persists a finished concordance for later lookups. Each run
// replaces the previous contents wholesale; there is no incremental
// update.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketEntries, bucketStats} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// PutEntries replaces the stored concordance with entries. The occurrence
// list is stored as JSON under the word key.
func (s *BoltStore) PutEntries(entries []domain.Entry) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketEntries); err != nil {
			return err
		}
		b, err := tx.CreateBucket(bucketEntries)
		if err != nil {
			return err
		}
		for _, e := range entries {
			data, err := json.Marshal(e.Occurrences)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(e.Word), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetEntry returns the stored entry for word.
func (s *BoltStore) GetEntry(word string) (domain.Entry, error) {
	var entry domain.Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketEntries).Get([]byte(word))
		if data == nil {
			return fmt.Errorf("%w: %s", domain.ErrWordNotFound, word)
		}
		var occs []domain.Occurrence
		if err := json.Unmarshal(data, &occs); err != nil {
			return err
		}
		entry = domain.Entry{Word: word, Occurrences: occs}
		return nil
	})
	return entry, err
}

// ListEntries returns every stored entry in key (word) order.
func (s *BoltStore) ListEntries() ([]domain.Entry, error) {
	var entries []domain.Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEntries)
		return b.ForEach(func(k, v []byte) error {
			var occs []domain.Occurrence
			if err := json.Unmarshal(v, &occs); err != nil {
				return err
			}
			entries = append(entries, domain.Entry{Word: string(k), Occurrences: occs})
			return nil
		})
	})
	return entries, err
}

func (s *BoltStore) UpdateStats(stats domain.Stats) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketStats).Put(keyStats, data)
	})
}

func (s *BoltStore) GetStats() (domain.Stats, error) {
	var stats domain.Stats
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketStats).Get(keyStats)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &stats)
	})
	return stats, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
