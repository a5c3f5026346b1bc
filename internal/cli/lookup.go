package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"concord/internal/adapter/analyzer"
	"concord/internal/adapter/listing"
	"concord/internal/adapter/store"
	"concord/internal/domain"
)

var (
	lookupDBPath string
	showStats    bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [word]",
	Short: "Look up a word in a persisted concordance",
	Long: `Look up a word in a concordance previously persisted with
"concord index --db" and print its listing line.

Examples:
  concord lookup whale --db book.db
  concord lookup --stats --db book.db`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().StringVar(&lookupDBPath, "db", "", "concordance database (default is ./.concord/index.db)")
	lookupCmd.Flags().BoolVar(&showStats, "stats", false, "print run statistics instead of a word")
}

func runLookup(cmd *cobra.Command, args []string) error {
	if !showStats && len(args) == 0 {
		return fmt.Errorf("a word to look up is required (or use --stats)")
	}

	path := lookupDBPath
	if path == "" {
		path = defaultDBPath()
	}

	st, err := store.NewBoltStore(path)
	if err != nil {
		return fmt.Errorf("failed to open concordance: %w", err)
	}
	defer st.Close()

	if showStats {
		return printStats(st)
	}

	cfg := GetConfig()
	tokenizer := analyzer.NewTokenizer(analyzer.ParseMode(cfg.Index.Tokenizer), cfg.Index.CaseSensitive)

	word := tokenizer.Normalize(args[0])
	entry, err := st.GetEntry(word)
	if err != nil {
		if errors.Is(err, domain.ErrWordNotFound) {
			return fmt.Errorf("no occurrences of %q in the index", word)
		}
		return err
	}

	fmt.Println(listing.Line(entry))
	return nil
}

func printStats(st *store.BoltStore) error {
	stats, err := st.GetStats()
	if err != nil {
		return err
	}

	fmt.Printf("Chapters indexed: %d\n", stats.Chapters-stats.FailedChapters)
	fmt.Printf("Chapters failed:  %d\n", stats.FailedChapters)
	fmt.Printf("Words matched:    %d\n", stats.Words)
	fmt.Printf("Occurrences:      %d\n", stats.Occurrences)
	fmt.Printf("Lines skipped:    %d\n", stats.SkippedLines)
	if !stats.BuiltAt.IsZero() {
		fmt.Printf("Built at:         %s\n", stats.BuiltAt.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}
