package analyzer

import (
	"strings"
	"unicode"
)

// Mode selects how lines are split into tokens.
type Mode string

const (
	// ModeBoundary splits on any non-letter, non-digit rune, so
	// punctuation glued to a word does not defeat a match.
	ModeBoundary Mode = "boundary"
	// ModeWhitespace splits on whitespace only.
	ModeWhitespace Mode = "whitespace"
)

// ParseMode maps a config string to a Mode, defaulting to ModeBoundary.
func ParseMode(s string) Mode {
	if Mode(s) == ModeWhitespace {
		return ModeWhitespace
	}
	return ModeBoundary
}

// Tokenizer splits lines into words for vocabulary matching. Matching is
// exact: no stemming, no stopword removal.
type Tokenizer struct {
	mode          Mode
	caseSensitive bool
}

// NewTokenizer creates a new Tokenizer.
func NewTokenizer(mode Mode, caseSensitive bool) *Tokenizer {
	return &Tokenizer{mode: mode, caseSensitive: caseSensitive}
}

// Tokenize splits a line into normalized tokens.
func (t *Tokenizer) Tokenize(line string) []string {
	var words []string
	switch t.mode {
	case ModeWhitespace:
		words = strings.Fields(line)
	default:
		words = splitWords(line)
	}

	if t.caseSensitive {
		return words
	}
	tokens := make([]string, len(words))
	for i, w := range words {
		tokens[i] = strings.ToLower(w)
	}
	return tokens
}

// Normalize maps a word to its lookup form. Vocabulary words go through
// the same normalization as scanned tokens so both sides agree.
func (t *Tokenizer) Normalize(word string) string {
	if t.caseSensitive {
		return word
	}
	return strings.ToLower(word)
}

// splitWords splits text into words on unicode letter/digit boundaries.
// Apostrophes inside a word are kept so contractions survive as one token.
func splitWords(text string) []string {
	var words []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			current.WriteRune(r)
		} else {
			if current.Len() > 0 {
				words = append(words, strings.Trim(current.String(), "'"))
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		words = append(words, strings.Trim(current.String(), "'"))
	}

	out := words[:0]
	for _, w := range words {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
