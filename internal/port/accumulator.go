package port

import "concord/internal/domain"

// Accumulator collects word occurrences from concurrent chapter workers.
//
// Append may be called from any number of goroutines. Snapshot is only
// valid after every writer has finished; the coordinator enforces that
// with its join barrier.
type Accumulator interface {
	Append(word string, occ domain.Occurrence)

	// Snapshot returns all entries sorted by word, with each entry's
	// occurrences sorted by chapter then line.
	Snapshot() []domain.Entry
}
