package domain

import "time"

// Occurrence is a single location of a vocabulary word in the book.
// Chapter and Line are both 1-indexed.
type Occurrence struct {
	Chapter int
	Line    int
}

// Entry is the finalized listing for one word: every location it occurred
// at, sorted ascending by chapter then line.
type Entry struct {
	Word        string
	Occurrences []Occurrence
}

// Vocabulary is the fixed set of words eligible for indexing. It is built
// once before indexing starts and never mutated afterwards, so it is safe
// to share across chapter workers without locking.
type Vocabulary map[string]struct{}

// NewVocabulary builds a Vocabulary from a word list. Empty strings are
// ignored; duplicates collapse.
func NewVocabulary(words []string) Vocabulary {
	v := make(Vocabulary, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		v[w] = struct{}{}
	}
	return v
}

// Contains reports whether word is part of the vocabulary.
func (v Vocabulary) Contains(word string) bool {
	_, ok := v[word]
	return ok
}

// Stats summarizes one indexing run.
type Stats struct {
	Chapters       int       `json:"chapters"`
	FailedChapters int       `json:"failed_chapters"`
	Words          int       `json:"words"`
	Occurrences    int       `json:"occurrences"`
	SkippedLines   int       `json:"skipped_lines"`
	BuiltAt        time.Time `json:"built_at"`
}
