package port

import "concord/internal/domain"

// ConcordanceStore persists a finished index for later lookups.
type ConcordanceStore interface {
	// PutEntries replaces the stored concordance with entries.
	PutEntries(entries []domain.Entry) error

	// GetEntry returns the stored entry for word, or an error wrapping
	// domain.ErrWordNotFound.
	GetEntry(word string) (domain.Entry, error)

	UpdateStats(stats domain.Stats) error

	GetStats() (domain.Stats, error)

	Close() error
}
