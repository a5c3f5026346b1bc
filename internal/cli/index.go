package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"concord/config"
	"concord/internal/adapter/analyzer"
	"concord/internal/adapter/fs"
	"concord/internal/adapter/listing"
	"concord/internal/adapter/store"
	"concord/internal/port"
	"concord/internal/usecase"
)

var (
	vocabPath  string
	outputPath string
	dbPath     string
	failFast   bool
	workers    int
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Index a book's chapters against a vocabulary",
	Long: `Index every chapter file under the given directory against the
vocabulary (one word per line) and print the concordance listing.

Chapter files are matched by the configured include patterns and ordered
by filename; the first file is chapter 1. Chapters are scanned in
parallel, one worker per chapter.

Examples:
  concord index ./book --vocab dict.txt
  concord index ./book --vocab dict.txt -o listing.txt --db book.db`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().StringVar(&vocabPath, "vocab", "", "vocabulary file, one word per line (required)")
	indexCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the listing to a file instead of stdout")
	indexCmd.Flags().StringVar(&dbPath, "db", "", "also persist the concordance to a bolt database")
	indexCmd.Flags().BoolVar(&failFast, "fail-fast", false, "abort the run on the first chapter failure")
	indexCmd.Flags().IntVar(&workers, "workers", 0, "max chapters scanned at once (0 = one per chapter)")
	indexCmd.MarkFlagRequired("vocab")
}

func runIndex(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	cfg := GetConfig()
	if cmd.Flags().Changed("fail-fast") {
		cfg.Index.FailFast = failFast
	}
	if cmd.Flags().Changed("workers") {
		cfg.Index.Workers = workers
	}
	if outputPath == "" {
		outputPath = cfg.Output.Path
	}
	if dbPath == "" {
		dbPath = cfg.Output.DB
	}

	// Vocabulary load failure is fatal: no chapter work starts.
	tokenizer := analyzer.NewTokenizer(analyzer.ParseMode(cfg.Index.Tokenizer), cfg.Index.CaseSensitive)
	vocab, err := fs.LoadVocabulary(vocabPath, tokenizer.Normalize)
	if err != nil {
		return err
	}

	walker := fs.NewWalker(cfg.Index.Includes, cfg.Index.Excludes)
	chapters, err := walker.Chapters(path)
	if err != nil {
		return fmt.Errorf("failed to enumerate chapters: %w", err)
	}
	if len(chapters) == 0 {
		return fmt.Errorf("no chapter files found under %s", path)
	}

	sources := make([]port.ChapterSource, len(chapters))
	for i, ch := range chapters {
		sources[i] = ch
	}

	fmt.Fprintf(os.Stderr, "Indexing %d chapters from %s...\n", len(chapters), path)

	bar := progressbar.NewOptions(len(chapters),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("Indexing"),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
	progress := func(done, total int) {
		bar.Set(done)
	}

	indexUC := usecase.NewIndexUseCase(vocab, tokenizer, logger, cfg.Index.Workers, cfg.Index.FailFast)
	result, err := indexUC.Run(cmd.Context(), sources, progress)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	if err := writeListing(outputPath, result); err != nil {
		return err
	}

	if dbPath != "" {
		if err := persist(dbPath, result); err != nil {
			return fmt.Errorf("failed to persist concordance: %w", err)
		}
	}

	fmt.Fprintf(os.Stderr, "Indexing complete:\n")
	fmt.Fprintf(os.Stderr, "  Chapters indexed: %d\n", result.Stats.Chapters-result.Stats.FailedChapters)
	fmt.Fprintf(os.Stderr, "  Chapters failed:  %d\n", result.Stats.FailedChapters)
	fmt.Fprintf(os.Stderr, "  Words matched:    %d\n", result.Stats.Words)
	fmt.Fprintf(os.Stderr, "  Occurrences:      %d\n", result.Stats.Occurrences)
	if result.Stats.SkippedLines > 0 {
		fmt.Fprintf(os.Stderr, "  Lines skipped:    %d (undecodable)\n", result.Stats.SkippedLines)
	}

	if len(result.Failures) > 0 {
		fmt.Fprintf(os.Stderr, "\nFailed chapters:\n")
		for _, f := range result.Failures {
			fmt.Fprintf(os.Stderr, "  - %s\n", f)
		}
	}

	return nil
}

func writeListing(path string, result *usecase.IndexResult) error {
	if path == "" {
		return listing.Write(os.Stdout, result.Entries)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := listing.Write(f, result.Entries); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Listing written to %s\n", path)
	return nil
}

func persist(path string, result *usecase.IndexResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	st, err := store.NewBoltStore(path)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.PutEntries(result.Entries); err != nil {
		return err
	}
	if err := st.UpdateStats(result.Stats); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Concordance stored at: %s\n", path)
	return nil
}

// defaultDBPath resolves the database path used when --db is not given to
// lookup: the book directory's .concord/index.db, relative to cwd.
func defaultDBPath() string {
	wd, err := os.Getwd()
	if err != nil {
		return config.IndexDBPath(".")
	}
	return config.IndexDBPath(wd)
}
