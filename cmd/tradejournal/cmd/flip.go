package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/report"
	"github.com/rustyeddy/tradejournal/sim"
)

var flipCmd = &cobra.Command{
	Use:   "flip",
	Short: "Compare flat and compounded position sizing",
	Long: `Replay a sequence of TP/SL outcomes in cycles and compare a flat risk
per trade against one that reinvests part of the previous cycle's profit.

Outcomes come from --outcomes or from a file (one or more per line, "-" for
stdin). Flags override the flip section of the config file.

Examples:
  tradejournal flip --outcomes TP,TP,SL,TP
  tradejournal flip --file outcomes.txt --cycle 5 --reinvest 50 --rows
  tradejournal flip --outcomes "TP SL TP" --csv flip.csv --org flip.org`,
	Args: cobra.NoArgs,
	RunE: runFlip,
}

var (
	flipOutcomes string
	flipFile     string
	flipRows     bool
	flipCSV      string
	flipOrg      string
)

func init() {
	rootCmd.AddCommand(flipCmd)

	f := flipCmd.Flags()
	f.StringVar(&flipOutcomes, "outcomes", "", "comma or space separated outcomes (TP/SL)")
	f.StringVar(&flipFile, "file", "", "read outcomes from file")
	f.Float64("account", 0, "starting account size")
	f.Int("cycle", 0, "trades per cycle")
	f.Float64("risk", 0, "risk per cycle")
	f.Bool("percent", false, "risk is a percentage of the account")
	f.Float64("rr", 0, "reward to risk ratio")
	f.Float64("reinvest", 0, "percent of a profitable cycle added to the next")
	f.BoolVar(&flipRows, "rows", false, "print every trade")
	f.StringVar(&flipCSV, "csv", "", "write trades to CSV file")
	f.StringVar(&flipOrg, "org", "", "write Org summary to file")
}

func runFlip(cmd *cobra.Command, args []string) error {
	outcomes, err := readOutcomes(cmd.InOrStdin(), flipOutcomes, flipFile)
	if err != nil {
		return err
	}

	fc := cfg.Flip
	f := cmd.Flags()
	if f.Changed("account") {
		fc.AccountSize, _ = f.GetFloat64("account")
	}
	if f.Changed("cycle") {
		fc.CycleSize, _ = f.GetInt("cycle")
	}
	if f.Changed("risk") {
		fc.RiskPerCycle, _ = f.GetFloat64("risk")
	}
	if f.Changed("percent") {
		fc.RiskIsPercent, _ = f.GetBool("percent")
	}
	if f.Changed("rr") {
		fc.RRRatio, _ = f.GetFloat64("rr")
	}
	if f.Changed("reinvest") {
		fc.ReinvestPercent, _ = f.GetFloat64("reinvest")
	}

	res, err := sim.SimulateFlip(fc, outcomes)
	if err != nil {
		return err
	}
	log.Debug().Int("trades", len(res.Rows)).Float64("lev_final", res.Leveraged.FinalBalance).Msg("flip simulated")

	report.PrintFlip(cmd.OutOrStdout(), res, flipRows)

	if flipCSV != "" {
		if err := writeFile(flipCSV, func(w io.Writer) error { return report.WriteFlipCSV(w, res) }); err != nil {
			return err
		}
	}
	if flipOrg != "" {
		data := report.FlipOrgData{FlipResult: res}
		if err := writeFile(flipOrg, func(w io.Writer) error { return report.FlipOrg(w, data) }); err != nil {
			return err
		}
	}
	return nil
}

// readOutcomes prefers the inline list; otherwise reads path, "-" meaning stdin.
func readOutcomes(stdin io.Reader, inline, path string) ([]sim.Outcome, error) {
	if inline != "" {
		return sim.ParseOutcomes(inline)
	}
	if path == "" {
		return nil, fmt.Errorf("no outcomes: use --outcomes or --file")
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read outcomes: %w", err)
	}
	return sim.ParseOutcomes(string(data))
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	log.Info().Str("path", path).Msg("report written")
	return nil
}
