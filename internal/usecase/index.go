package usecase

import (
	"context"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"concord/internal/adapter/memstore"
	"concord/internal/domain"
	"concord/internal/port"
)

// ProgressFunc reports chapters finished so far out of the total. It is
// invoked under the use case's own lock, so implementations need no
// synchronization of their own.
type ProgressFunc func(done, total int)

// IndexUseCase coordinates one indexing run: one worker per chapter, a
// join barrier, then a sorted snapshot.
type IndexUseCase struct {
	vocab     domain.Vocabulary
	tokenizer port.Tokenizer
	logger    zerolog.Logger
	workers   int
	failFast  bool
}

// NewIndexUseCase creates a new index use case. workers limits how many
// chapters are scanned at once; 0 means one goroutine per chapter. With
// failFast, the first chapter failure fails the whole run; otherwise
// failures are collected and the surviving chapters still produce a
// complete index.
func NewIndexUseCase(
	vocab domain.Vocabulary,
	tokenizer port.Tokenizer,
	logger zerolog.Logger,
	workers int,
	failFast bool,
) *IndexUseCase {
	return &IndexUseCase{
		vocab:     vocab,
		tokenizer: tokenizer,
		logger:    logger,
		workers:   workers,
		failFast:  failFast,
	}
}

// IndexResult contains the results of an indexing operation.
type IndexResult struct {
	Entries  []domain.Entry
	Failures []*domain.ChapterError
	Stats    domain.Stats
}

// Run indexes all chapters against the vocabulary. For fixed inputs the
// returned entries are identical across runs regardless of scheduling:
// ordering is imposed by the snapshot after the join barrier, never during
// accumulation.
func (u *IndexUseCase) Run(ctx context.Context, sources []port.ChapterSource, progress ProgressFunc) (*IndexResult, error) {
	acc := memstore.NewMemory()

	g, gctx := errgroup.WithContext(ctx)
	if u.workers > 0 {
		g.SetLimit(u.workers)
	}

	var (
		mu       sync.Mutex
		failures []*domain.ChapterError
		done     int
		matched  int
		skipped  int
	)
	total := len(sources)

	for _, src := range sources {
		src := src
		g.Go(func() error {
			// A failed sibling (fail-fast) or a canceled caller stops
			// chapters that have not started yet; running workers are
			// never interrupted mid-chapter.
			if err := gctx.Err(); err != nil {
				return err
			}

			m, s, err := u.scanChapter(src, acc)

			mu.Lock()
			defer mu.Unlock()
			done++
			matched += m
			skipped += s
			if err != nil {
				cherr := &domain.ChapterError{Chapter: src.Index(), Source: src.Name(), Err: err}
				u.logger.Warn().Int("chapter", src.Index()).Str("source", src.Name()).Err(err).Msg("chapter failed")
				if u.failFast {
					return cherr
				}
				failures = append(failures, cherr)
			}
			if progress != nil {
				progress(done, total)
			}
			return nil
		})
	}

	// Join barrier: no reads of the shared index before this returns.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := acc.Snapshot()

	sort.Slice(failures, func(i, j int) bool {
		return failures[i].Chapter < failures[j].Chapter
	})

	result := &IndexResult{
		Entries:  entries,
		Failures: failures,
		Stats: domain.Stats{
			Chapters:       total,
			FailedChapters: len(failures),
			Words:          len(entries),
			Occurrences:    matched,
			SkippedLines:   skipped,
			BuiltAt:        time.Now().UTC(),
		},
	}

	u.logger.Debug().
		Int("chapters", total).
		Int("failed", len(failures)).
		Int("words", len(entries)).
		Int("occurrences", matched).
		Msg("indexing run finished")

	return result, nil
}

// scanChapter reads one chapter and appends an occurrence for every token
// found in the vocabulary. Lines that are not valid UTF-8 are skipped and
// counted; a read failure fails the chapter as a whole without touching
// what other chapters have already accumulated.
func (u *IndexUseCase) scanChapter(src port.ChapterSource, acc port.Accumulator) (matched, skipped int, err error) {
	lines, err := src.Lines()
	if err != nil {
		return 0, 0, err
	}

	chapter := src.Index()
	for i, line := range lines {
		lineNo := i + 1
		if !utf8.ValidString(line) {
			skipped++
			u.logger.Debug().Int("chapter", chapter).Int("line", lineNo).Msg("skipping undecodable line")
			continue
		}
		for _, token := range u.tokenizer.Tokenize(line) {
			if u.vocab.Contains(token) {
				acc.Append(token, domain.Occurrence{Chapter: chapter, Line: lineNo})
				matched++
			}
		}
	}

	u.logger.Debug().
		Int("chapter", chapter).
		Int("lines", len(lines)).
		Int("matches", matched).
		Msg("chapter scanned")

	return matched, skipped, nil
}
