package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"concord/internal/domain"
)

func TestLoadVocabulary(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "dict.txt")
	content := "whale\nsea\n\n  ishmael  \n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	vocab, err := LoadVocabulary(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(vocab) != 3 {
		t.Fatalf("expected 3 words, got %d", len(vocab))
	}
	for _, w := range []string{"whale", "sea", "ishmael"} {
		if !vocab.Contains(w) {
			t.Errorf("expected vocabulary to contain %q", w)
		}
	}
}

func TestLoadVocabulary_Normalized(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "dict.txt")
	if err := os.WriteFile(path, []byte("Whale\nSEA\n"), 0644); err != nil {
		t.Fatal(err)
	}

	vocab, err := LoadVocabulary(path, strings.ToLower)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !vocab.Contains("whale") || !vocab.Contains("sea") {
		t.Errorf("expected lowercased words, got %v", vocab)
	}
	if vocab.Contains("Whale") {
		t.Error("original casing should not survive normalization")
	}
}

func TestLoadVocabulary_Missing(t *testing.T) {
	_, err := LoadVocabulary(filepath.Join(t.TempDir(), "missing.txt"), nil)
	if err == nil {
		t.Fatal("expected error for missing vocabulary file")
	}
	if !errors.Is(err, domain.ErrVocabularyLoad) {
		t.Errorf("expected ErrVocabularyLoad, got %v", err)
	}
}

func TestLoadVocabulary_Empty(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "dict.txt")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	vocab, err := LoadVocabulary(path, nil)
	if err != nil {
		t.Fatalf("empty vocabulary should not be an error, got %v", err)
	}
	if len(vocab) != 0 {
		t.Errorf("expected empty vocabulary, got %d words", len(vocab))
	}
}
