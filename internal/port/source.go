package port

// ChapterSource is one chapter of the book: a stable 1-based index plus its
// line content. Each source is scanned by exactly one worker, exactly once.
type ChapterSource interface {
	// Index returns the chapter's position in the book, starting at 1.
	Index() int

	// Name identifies the source in failure reports, e.g. a file path.
	Name() string

	// Lines returns the chapter's lines in order. An error here fails the
	// chapter as a whole; the caller isolates it from other chapters.
	Lines() ([]string, error)
}
