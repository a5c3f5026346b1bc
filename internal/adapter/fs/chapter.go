package fs

import (
	"bufio"
	"fmt"
	"os"
)

// ChapterFile is a file-backed chapter source.
type ChapterFile struct {
	index int
	path  string
}

func NewChapterFile(index int, path string) *ChapterFile {
	return &ChapterFile{index: index, path: path}
}

func (c *ChapterFile) Index() int {
	return c.index
}

func (c *ChapterFile) Name() string {
	return c.path
}

// Lines reads the chapter into memory, one string per line. Chapters are
// expected to fit in memory.
func (c *ChapterFile) Lines() ([]string, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chapter: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	// Prose lines can be long; grow the buffer to avoid token-too-long.
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chapter: %w", err)
	}
	return lines, nil
}
