package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"concord/internal/adapter/analyzer"
	"concord/internal/adapter/listing"
	"concord/internal/domain"
	"concord/internal/port"
)

type fakeChapter struct {
	index int
	lines []string
	err   error
}

func (f *fakeChapter) Index() int   { return f.index }
func (f *fakeChapter) Name() string { return fmt.Sprintf("chapter-%d", f.index) }
func (f *fakeChapter) Lines() ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.lines, nil
}

func newUseCase(vocabWords []string, failFast bool) *IndexUseCase {
	tok := analyzer.NewTokenizer(analyzer.ModeBoundary, true)
	vocab := domain.NewVocabulary(vocabWords)
	return NewIndexUseCase(vocab, tok, zerolog.Nop(), 0, failFast)
}

func TestRun_ScenarioA(t *testing.T) {
	uc := newUseCase([]string{"whale", "sea"}, false)
	sources := []port.ChapterSource{
		&fakeChapter{index: 1, lines: []string{"call me ishmael", "the whale and the sea"}},
		&fakeChapter{index: 2, lines: []string{"a whale appears"}},
	}

	result, err := uc.Run(context.Background(), sources, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Failures) != 0 {
		t.Fatalf("expected no failures, got %v", result.Failures)
	}

	var buf bytes.Buffer
	if err := listing.Write(&buf, result.Entries); err != nil {
		t.Fatal(err)
	}
	expected := "sea 1.2\nwhale 1.2 2.1\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestRun_ScenarioB_FailedChapterIsolated(t *testing.T) {
	uc := newUseCase([]string{"x"}, false)
	readErr := errors.New("read failure")
	sources := []port.ChapterSource{
		&fakeChapter{index: 1, err: readErr},
		&fakeChapter{index: 2, lines: []string{"x x"}},
	}

	result, err := uc.Run(context.Background(), sources, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Two "x" tokens on one line produce one occurrence per token match.
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result.Entries))
	}
	if got := listing.Line(result.Entries[0]); got != "x 2.1 2.1" {
		t.Errorf("expected %q, got %q", "x 2.1 2.1", got)
	}

	if len(result.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(result.Failures))
	}
	if result.Failures[0].Chapter != 1 {
		t.Errorf("expected failure for chapter 1, got %d", result.Failures[0].Chapter)
	}
	if !errors.Is(result.Failures[0], readErr) {
		t.Errorf("expected failure to wrap the read error, got %v", result.Failures[0])
	}
	if result.Stats.FailedChapters != 1 {
		t.Errorf("expected FailedChapters=1, got %d", result.Stats.FailedChapters)
	}
}

func TestRun_ScenarioC_EmptyVocabulary(t *testing.T) {
	uc := newUseCase(nil, false)
	sources := []port.ChapterSource{
		&fakeChapter{index: 1, lines: []string{"any content at all", "more words here"}},
	}

	result, err := uc.Run(context.Background(), sources, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 0 {
		t.Errorf("expected empty result, got %v", result.Entries)
	}
	if len(result.Failures) != 0 {
		t.Errorf("expected no failures, got %v", result.Failures)
	}
}

func TestRun_Deterministic(t *testing.T) {
	// Many chapters contending on the same words; serialized output must
	// not depend on scheduling.
	var sources []port.ChapterSource
	for c := 1; c <= 20; c++ {
		lines := make([]string, 50)
		for l := range lines {
			lines[l] = "whale sea whale boat"
		}
		sources = append(sources, &fakeChapter{index: c, lines: lines})
	}

	run := func() []byte {
		uc := newUseCase([]string{"whale", "sea", "boat"}, false)
		result, err := uc.Run(context.Background(), sources, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var buf bytes.Buffer
		if err := listing.Write(&buf, result.Entries); err != nil {
			t.Fatal(err)
		}
		return buf.Bytes()
	}

	first := run()
	for i := 0; i < 3; i++ {
		if next := run(); !bytes.Equal(first, next) {
			t.Fatal("serialized output differs between runs on identical input")
		}
	}
}

func TestRun_FailFast(t *testing.T) {
	uc := newUseCase([]string{"x"}, true)
	readErr := errors.New("read failure")
	sources := []port.ChapterSource{
		&fakeChapter{index: 1, err: readErr},
		&fakeChapter{index: 2, lines: []string{"x"}},
	}

	_, err := uc.Run(context.Background(), sources, nil)
	if err == nil {
		t.Fatal("expected fail-fast run to return an error")
	}
	var cherr *domain.ChapterError
	if !errors.As(err, &cherr) && !errors.Is(err, context.Canceled) {
		t.Errorf("expected a chapter error or cancellation, got %v", err)
	}
}

func TestRun_SkipsUndecodableLines(t *testing.T) {
	uc := newUseCase([]string{"x"}, false)
	sources := []port.ChapterSource{
		&fakeChapter{index: 1, lines: []string{"x", "\xff\xfe broken x", "x"}},
	}

	result, err := uc.Run(context.Background(), sources, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := listing.Line(result.Entries[0]); got != "x 1.1 1.3" {
		t.Errorf("expected undecodable line skipped, got %q", got)
	}
	if result.Stats.SkippedLines != 1 {
		t.Errorf("expected 1 skipped line, got %d", result.Stats.SkippedLines)
	}
}

func TestRun_WorkerLimit(t *testing.T) {
	tok := analyzer.NewTokenizer(analyzer.ModeBoundary, true)
	uc := NewIndexUseCase(domain.NewVocabulary([]string{"x"}), tok, zerolog.Nop(), 2, false)

	var sources []port.ChapterSource
	for c := 1; c <= 10; c++ {
		sources = append(sources, &fakeChapter{index: c, lines: []string{"x"}})
	}

	result, err := uc.Run(context.Background(), sources, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Stats.Occurrences != 10 {
		t.Errorf("expected 10 occurrences, got %d", result.Stats.Occurrences)
	}
}

func TestRun_ProgressReachesTotal(t *testing.T) {
	uc := newUseCase([]string{"x"}, false)
	sources := []port.ChapterSource{
		&fakeChapter{index: 1, lines: []string{"x"}},
		&fakeChapter{index: 2, lines: []string{"x"}},
		&fakeChapter{index: 3, err: errors.New("boom")},
	}

	lastDone, lastTotal := 0, 0
	_, err := uc.Run(context.Background(), sources, func(done, total int) {
		lastDone, lastTotal = done, total
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lastDone != 3 || lastTotal != 3 {
		t.Errorf("expected progress to reach 3/3, got %d/%d", lastDone, lastTotal)
	}
}

func TestRun_CaseInsensitiveMatching(t *testing.T) {
	tok := analyzer.NewTokenizer(analyzer.ModeBoundary, false)
	vocab := domain.NewVocabulary([]string{tok.Normalize("Whale")})
	uc := NewIndexUseCase(vocab, tok, zerolog.Nop(), 0, false)

	sources := []port.ChapterSource{
		&fakeChapter{index: 1, lines: []string{"WHALE and Whale"}},
	}

	result, err := uc.Run(context.Background(), sources, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := listing.Line(result.Entries[0]); got != "whale 1.1 1.1" {
		t.Errorf("expected case-folded matches, got %q", got)
	}
}
