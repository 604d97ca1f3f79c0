// Package report renders simulator results for people and spreadsheets.
package report

import (
	"fmt"
	"io"

	"github.com/rustyeddy/tradejournal/sim"
)

const rule = "--------------------------------------------------"

func banner(w io.Writer, title string) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, " %s\n", title)
	fmt.Fprintln(w, "==================================================")
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
}

// PrintFlip writes a side-by-side summary of both sizing strategies. With
// rows set it also lists every replayed trade.
func PrintFlip(w io.Writer, res sim.FlipResult, rows bool) {
	cfg := res.Config
	banner(w, "FlipX5 Simulation")

	fmt.Fprintf(w, "Account Size:  %.2f\n", cfg.AccountSize)
	fmt.Fprintf(w, "Cycle Size:    %d\n", cfg.CycleSize)
	if cfg.RiskIsPercent {
		fmt.Fprintf(w, "Cycle Risk:    %.2f (%.2f%%)\n", cfg.CycleRisk(), cfg.RiskPerCycle)
	} else {
		fmt.Fprintf(w, "Cycle Risk:    %.2f\n", cfg.CycleRisk())
	}
	fmt.Fprintf(w, "Risk/Reward:   %.2f\n", cfg.RRRatio)
	fmt.Fprintf(w, "Reinvest:      %.2f%%\n", cfg.ReinvestPercent)

	section(w, "Trade Statistics")
	fmt.Fprintf(w, "Trades:        %d\n", len(res.Rows))
	fmt.Fprintf(w, "TP:            %d\n", res.TotalTP)
	fmt.Fprintf(w, "SL:            %d\n", res.TotalSL)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", res.WinRate)

	section(w, "Results")
	fmt.Fprintf(w, "%-14s %14s %14s\n", "", "Traditional", "Leveraged")
	fmt.Fprintf(w, "%-14s %14.2f %14.2f\n", "Final Balance", res.Traditional.FinalBalance, res.Leveraged.FinalBalance)
	fmt.Fprintf(w, "%-14s %14.2f %14.2f\n", "Total Profit", res.Traditional.TotalProfit, res.Leveraged.TotalProfit)
	fmt.Fprintf(w, "%-14s %13.2f%% %13.2f%%\n", "ROI", res.Traditional.ROI, res.Leveraged.ROI)

	if rows && len(res.Rows) > 0 {
		section(w, "Trades")
		fmt.Fprintf(w, "%5s %5s %3s %10s %12s %10s %12s\n", "#", "Cycle", "", "Trad P/L", "Trad Bal", "Lev P/L", "Lev Bal")
		for _, r := range res.Rows {
			mark := ""
			if r.Boosted {
				mark = " *"
			}
			fmt.Fprintf(w, "%5d %5d %3s %10.2f %12.2f %10.2f %12.2f%s\n",
				r.Trade, r.Cycle, r.Outcome, r.TradPnL, r.TradBalance, r.LevPnL, r.LevBalance, mark)
		}
		fmt.Fprintln(w, "* leveraged risk includes reinvested profit")
	}

	fmt.Fprintln(w)
}

// PrintRotation writes the state of a rotation: aggregates, per-account
// balances and the account whose turn is next.
func PrintRotation(w io.Writer, s sim.RotationState) {
	banner(w, "Account Rotation")

	fmt.Fprintf(w, "Accounts:      %d\n", len(s.Accounts))
	fmt.Fprintf(w, "Risk/Trade:    %.2f\n", s.Config.RiskPerTrade)
	fmt.Fprintf(w, "Risk/Reward:   %.2f\n", s.Config.RiskRewardRatio)
	fmt.Fprintf(w, "Next Turn:     account %d\n", s.Turn+1)

	section(w, "Trade Statistics")
	fmt.Fprintf(w, "Trades:        %d\n", len(s.Trades))
	fmt.Fprintf(w, "TP:            %d\n", s.TotalTP)
	fmt.Fprintf(w, "SL:            %d\n", s.TotalSL)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", s.WinRate)
	fmt.Fprintf(w, "Total Balance: %.2f\n", s.TotalBalance)

	section(w, "Accounts")
	fmt.Fprintf(w, "%-8s %10s %10s %6s %4s %4s %10s\n", "Account", "Initial", "Balance", "Trades", "TP", "SL", "P/L")
	for _, a := range s.AccountStats() {
		fmt.Fprintf(w, "%-8d %10.2f %10.2f %6d %4d %4d %10.2f\n",
			a.Account+1, a.Initial, a.Balance, a.Trades, a.TP, a.SL, a.PnL)
	}

	fmt.Fprintln(w)
}
