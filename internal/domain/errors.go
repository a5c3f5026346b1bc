package domain

import (
	"errors"
	"fmt"
)

// ErrVocabularyLoad marks a missing or unreadable vocabulary source. It is
// fatal: no chapter work starts after it.
var ErrVocabularyLoad = errors.New("vocabulary unreadable")

// ErrWordNotFound is returned by stores when a word has no entry.
var ErrWordNotFound = errors.New("word not found")

// ChapterError is a failure isolated to a single chapter. Other chapters
// keep indexing; the coordinator collects these and reports them next to
// the finished listing.
type ChapterError struct {
	Chapter int
	Source  string
	Err     error
}

func (e *ChapterError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("chapter %d (%s): %v", e.Chapter, e.Source, e.Err)
	}
	return fmt.Sprintf("chapter %d: %v", e.Chapter, e.Err)
}

func (e *ChapterError) Unwrap() error {
	return e.Err
}
