package memstore

import (
	"hash/fnv"
	"sort"
	"sync"

	"concord/internal/domain"
)

// Words are routed to shards by hash so concurrent appends for unrelated
// words do not serialize behind a single lock.
const numShards = 16

type shard struct {
	mu    sync.Mutex
	words map[string][]domain.Occurrence
}

// Memory is the shared in-memory index that chapter workers write into.
// Append is safe under unbounded concurrent callers; Snapshot must only be
// called after all writers have finished (the coordinator's join barrier
// guarantees that). Occurrences are append-only within a run.
type Memory struct {
	shards [numShards]*shard
}

func NewMemory() *Memory {
	m := &Memory{}
	for i := range m.shards {
		m.shards[i] = &shard{words: make(map[string][]domain.Occurrence)}
	}
	return m
}

// Append records one occurrence of word. The check-and-create of the
// word's collection and the append itself happen under the shard lock, so
// concurrent appends for the same word never lose updates.
func (m *Memory) Append(word string, occ domain.Occurrence) {
	s := m.shardFor(word)
	s.mu.Lock()
	s.words[word] = append(s.words[word], occ)
	s.mu.Unlock()
}

// Snapshot returns all entries sorted by word, each entry's occurrences
// sorted by chapter then line. Insertion order from concurrent appends is
// arbitrary; total order is imposed here.
func (m *Memory) Snapshot() []domain.Entry {
	var entries []domain.Entry
	for _, s := range m.shards {
		s.mu.Lock()
		for word, occs := range s.words {
			copied := make([]domain.Occurrence, len(occs))
			copy(copied, occs)
			entries = append(entries, domain.Entry{Word: word, Occurrences: copied})
		}
		s.mu.Unlock()
	}

	for _, e := range entries {
		occs := e.Occurrences
		sort.Slice(occs, func(i, j int) bool {
			if occs[i].Chapter != occs[j].Chapter {
				return occs[i].Chapter < occs[j].Chapter
			}
			return occs[i].Line < occs[j].Line
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Word < entries[j].Word
	})
	return entries
}

func (m *Memory) shardFor(word string) *shard {
	h := fnv.New32a()
	h.Write([]byte(word))
	return m.shards[h.Sum32()%numShards]
}
