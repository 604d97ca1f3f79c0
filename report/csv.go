package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rustyeddy/tradejournal/sim"
)

func money(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }

// WriteFlipCSV writes one record per replayed trade.
func WriteFlipCSV(w io.Writer, res sim.FlipResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"trade", "cycle", "outcome",
		"trad_risk", "trad_pnl", "trad_balance",
		"lev_risk", "lev_pnl", "lev_balance", "boosted",
	}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range res.Rows {
		rec := []string{
			strconv.Itoa(r.Trade),
			strconv.Itoa(r.Cycle),
			r.Outcome.String(),
			money(r.TradRisk),
			money(r.TradPnL),
			money(r.TradBalance),
			money(r.LevRisk),
			money(r.LevPnL),
			money(r.LevBalance),
			strconv.FormatBool(r.Boosted),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write trade %d: %w", r.Trade, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteRotationCSV writes the rotation ledger. Accounts are numbered from 1.
func WriteRotationCSV(w io.Writer, s sim.RotationState) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"seq", "account", "outcome", "risk", "pnl", "balance_before", "balance_after"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, t := range s.Trades {
		rec := []string{
			strconv.Itoa(t.Seq),
			strconv.Itoa(t.Account + 1),
			t.Outcome.String(),
			money(t.Risk),
			money(t.PnL),
			money(t.BalanceBefore),
			money(t.BalanceAfter),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write trade %d: %w", t.Seq, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
