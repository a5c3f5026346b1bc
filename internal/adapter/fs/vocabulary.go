package fs

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"concord/internal/domain"
)

// LoadVocabulary reads a one-word-per-line vocabulary file. Blank lines
// are ignored. Each word is passed through normalize so the set agrees
// with the tokenizer's output form. A missing or unreadable file is fatal
// and reported as domain.ErrVocabularyLoad.
func LoadVocabulary(path string, normalize func(string) string) (domain.Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrVocabularyLoad, err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		if normalize != nil {
			word = normalize(word)
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrVocabularyLoad, err)
	}

	return domain.NewVocabulary(words), nil
}
