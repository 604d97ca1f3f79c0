package cmd

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query trade journal data",
	Long: `Query and display journal entries from the SQLite database.

Subcommands:
  list    - Print the owner's trades as Org entries
  show    - Print one trade by ID
  stats   - Summarise win rate, P&L and drawdown
  export  - Write the owner's trades as CSV

Examples:
  tradejournal journal list
  tradejournal --user ana journal stats
  tradejournal journal export -o trades.csv`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades as Org entries",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <trade-id>",
	Short: "Get details of a specific trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise journal performance",
	Args:  cobra.NoArgs,
	RunE:  runJournalStats,
}

var journalExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export trades as CSV",
	Args:  cobra.NoArgs,
	RunE:  runJournalExport,
}

var journalExportOutput string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalStatsCmd)
	journalCmd.AddCommand(journalExportCmd)

	journalExportCmd.Flags().StringVarP(&journalExportOutput, "output", "o", "-", "output file (- for stdout)")
}

func listTrades(cmd *cobra.Command) ([]journal.Trade, error) {
	j, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	trades, err := j.ListByOwner(cmd.Context(), cfg.Journal.UserID)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	return trades, nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	trades, err := listTrades(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(trades))
	return nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	t, err := j.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(t))
	return nil
}

func runJournalStats(cmd *cobra.Command, args []string) error {
	trades, err := listTrades(cmd)
	if err != nil {
		return err
	}
	printStats(cmd.OutOrStdout(), journal.Summarize(trades))
	return nil
}

func printStats(w io.Writer, s journal.Stats) {
	fmt.Fprintf(w, "Trades:        %d\n", s.Trades)
	fmt.Fprintf(w, "Wins:          %d\n", s.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", s.Losses)
	fmt.Fprintf(w, "Break Even:    %d\n", s.BreakEven)
	fmt.Fprintf(w, "No-Trade Days: %d\n", s.NoTrade)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", s.WinRate)
	fmt.Fprintf(w, "Net P/L:       %s\n", s.NetPL.StringFixed(2))
	fmt.Fprintf(w, "Gross Profit:  %s\n", s.GrossProfit.StringFixed(2))
	fmt.Fprintf(w, "Gross Loss:    %s\n", s.GrossLoss.StringFixed(2))
	if s.ProfitFactor > 0 {
		fmt.Fprintf(w, "Profit Factor: %.2f\n", s.ProfitFactor)
	}
	fmt.Fprintf(w, "Max Drawdown:  %s\n", s.MaxDrawdown.StringFixed(2))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "By Weekday")
	fmt.Fprintln(w, "--------------------------------------------------")
	for _, d := range journal.Weekdays {
		pl, ok := s.ByWeekday[d]
		if !ok {
			pl = decimal.Zero
		}
		fmt.Fprintf(w, "%-10s %12s\n", d, pl.StringFixed(2))
	}
}

func runJournalExport(cmd *cobra.Command, args []string) error {
	trades, err := listTrades(cmd)
	if err != nil {
		return err
	}
	if journalExportOutput == "-" {
		return journal.WriteCSV(cmd.OutOrStdout(), trades)
	}
	return writeFile(journalExportOutput, func(w io.Writer) error { return journal.WriteCSV(w, trades) })
}
