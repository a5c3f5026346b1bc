// Package listing serializes a finished concordance as a line-oriented
// text listing: one word per line followed by every occurrence rendered
// as chapter.line, e.g. "whale 1.2 2.1".
package listing

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"concord/internal/domain"
)

// Line renders a single entry as its listing line, without the trailing
// newline.
func Line(e domain.Entry) string {
	var b strings.Builder
	b.WriteString(e.Word)
	for _, occ := range e.Occurrences {
		fmt.Fprintf(&b, " %d.%d", occ.Chapter, occ.Line)
	}
	return b.String()
}

// Write emits one line per entry. Entries are expected already sorted by
// word with occurrences sorted by chapter then line; Write preserves the
// given order so the output stays byte-identical across runs.
func Write(w io.Writer, entries []domain.Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := bw.WriteString(Line(e)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
