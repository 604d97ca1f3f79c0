package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/importer"
	"github.com/rustyeddy/tradejournal/journal"
)

var importCmd = &cobra.Command{
	Use:   "import <workbook.xlsx>",
	Short: "Import a spreadsheet journal",
	Long: `Read every sheet of an .xlsx journal, map each row to a trade and save
the trades to the SQLite journal in batches.

Sheets without a date column are ignored. Identical rows that appear on
several sheets are imported once. Rows without a date, rows that look like
test data and rows that fail to parse are skipped and counted.

Examples:
  tradejournal import journal-2024.xlsx
  tradejournal import --dry-run journal-2024.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	importDryRun    bool
	importBatchSize int
)

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "parse and report without saving")
	importCmd.Flags().IntVar(&importBatchSize, "batch-size", 0, "trades per save batch (default from config)")
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	ctx := cmd.Context()
	ing := importer.NewIngestor(cfg.Parser(), log)
	res, err := ing.Ingest(ctx, f)
	if err != nil {
		if errors.Is(err, importer.ErrNoUsableRows) {
			fmt.Fprintln(cmd.OutOrStdout(), "No trades found in workbook.")
		}
		return err
	}

	out := cmd.OutOrStdout()
	printIngest(out, res)
	if importDryRun {
		return nil
	}

	store, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	size := importBatchSize
	if size <= 0 {
		size = cfg.Import.BatchSize
	}
	rep := importer.Persist(ctx, store, res.Trades, size, log)

	fmt.Fprintf(out, "Saved:         %d\n", rep.Saved)
	for _, fb := range rep.Failed {
		fmt.Fprintf(out, "  batch %d (trades %d-%d) failed: %v\n", fb.Batch, fb.From+1, fb.To, fb.Err)
	}
	if !rep.OK() {
		return fmt.Errorf("%d of %d trades not saved", len(res.Trades)-rep.Saved, len(res.Trades))
	}
	return nil
}

func printIngest(w io.Writer, res *importer.Result) {
	fmt.Fprintf(w, "Sheets:        %v\n", res.Sheets)
	fmt.Fprintf(w, "Rows:          %d\n", res.Rows)
	fmt.Fprintf(w, "Duplicates:    %d\n", res.Duplicates)
	fmt.Fprintf(w, "Trades:        %d\n", len(res.Trades))
	for _, s := range res.Skipped {
		fmt.Fprintf(w, "Skipped %-9s %d\n", s.Reason+":", s.Count)
	}
	for _, e := range res.Errors {
		fmt.Fprintf(w, "  %s line %d: %v\n", e.Sheet, e.Line, e.Err)
	}
}
