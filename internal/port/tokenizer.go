package port

// Tokenizer splits a line of text into candidate words.
type Tokenizer interface {
	Tokenize(line string) []string

	// Normalize maps a word to its lookup form (e.g. lowercased when
	// matching is case-insensitive). Vocabulary words pass through the
	// same normalization as scanned tokens.
	Normalize(word string) string
}
