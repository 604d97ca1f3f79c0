package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/report"
	"github.com/rustyeddy/tradejournal/sim"
)

var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Rotate trades across several accounts",
	Long: `Book each outcome on the account whose turn it is, then pass the turn
to the next account. --undo removes the latest trades again.

Examples:
  tradejournal rotate --outcomes TP,SL,TP
  tradejournal rotate --accounts 4 --balances 100,100,200,200 --outcomes "TP TP SL SL"
  tradejournal rotate --file outcomes.txt --undo 1 --csv ledger.csv`,
	Args: cobra.NoArgs,
	RunE: runRotate,
}

var (
	rotateOutcomes string
	rotateFile     string
	rotateUndo     int
	rotateCSV      string
)

func init() {
	rootCmd.AddCommand(rotateCmd)

	f := rotateCmd.Flags()
	f.StringVar(&rotateOutcomes, "outcomes", "", "comma or space separated outcomes (TP/SL)")
	f.StringVar(&rotateFile, "file", "", "read outcomes from file")
	f.Int("accounts", 0, "number of accounts")
	f.Float64Slice("balances", nil, "initial balance per account")
	f.Float64("risk", 0, "risk per trade")
	f.Float64("rr", 0, "reward to risk ratio")
	f.IntVar(&rotateUndo, "undo", 0, "undo this many trades after applying")
	f.StringVar(&rotateCSV, "csv", "", "write ledger to CSV file")
}

func runRotate(cmd *cobra.Command, args []string) error {
	var outcomes []sim.Outcome
	if rotateOutcomes != "" || rotateFile != "" {
		var err error
		if outcomes, err = readOutcomes(cmd.InOrStdin(), rotateOutcomes, rotateFile); err != nil {
			return err
		}
	}

	rc := cfg.Rotation
	f := cmd.Flags()
	if f.Changed("accounts") {
		rc.NumberOfAccounts, _ = f.GetInt("accounts")
		if !f.Changed("balances") && len(rc.InitialBalances) != rc.NumberOfAccounts {
			rc.InitialBalances = spread(rc.InitialBalances, rc.NumberOfAccounts)
		}
	}
	if f.Changed("balances") {
		rc.InitialBalances, _ = f.GetFloat64Slice("balances")
	}
	if f.Changed("risk") {
		rc.RiskPerTrade, _ = f.GetFloat64("risk")
	}
	if f.Changed("rr") {
		rc.RiskRewardRatio, _ = f.GetFloat64("rr")
	}

	s, err := sim.NewRotation(rc)
	if err != nil {
		return err
	}
	s = s.ApplyBatch(outcomes)
	for i := 0; i < rotateUndo; i++ {
		s = s.Undo()
	}
	log.Debug().Int("trades", len(s.Trades)).Int("turn", s.Turn).Msg("rotation applied")

	report.PrintRotation(cmd.OutOrStdout(), s)

	if rotateCSV != "" {
		return writeFile(rotateCSV, func(w io.Writer) error { return report.WriteRotationCSV(w, s) })
	}
	return nil
}

// spread sizes balances to n accounts, repeating the first configured balance.
func spread(balances []float64, n int) []float64 {
	fill := 100.0
	if len(balances) > 0 {
		fill = balances[0]
	}
	out := make([]float64, n)
	for i := range out {
		if i < len(balances) {
			out[i] = balances[i]
		} else {
			out[i] = fill
		}
	}
	return out
}
