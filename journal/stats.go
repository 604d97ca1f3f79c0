package journal

import (
	"github.com/shopspring/decimal"
)

// EquityPoint is the running P&L after one trade.
type EquityPoint struct {
	TradeID string
	Date    string
	Equity  decimal.Decimal
}

// Stats are descriptive aggregates over a set of journal entries.
type Stats struct {
	Trades    int
	Wins      int
	Losses    int
	BreakEven int
	NoTrade   int

	NetPL       decimal.Decimal
	GrossProfit decimal.Decimal
	GrossLoss   decimal.Decimal // positive number

	ProfitFactor float64 // 0 when there are no losses
	WinRate      float64 // percent of Trades
	MaxDrawdown  decimal.Decimal

	ByWeekday map[Weekday]decimal.Decimal
	Equity    []EquityPoint
}

// Summarize walks the trades in the given order. NoTradeDay placeholders are
// counted but contribute nothing else.
func Summarize(trades []Trade) Stats {
	s := Stats{ByWeekday: make(map[Weekday]decimal.Decimal)}

	var equity, peak decimal.Decimal
	for _, t := range trades {
		if t.NoTradeDay {
			s.NoTrade++
			continue
		}
		s.Trades++
		switch t.Result {
		case TakeProfit:
			s.Wins++
		case StopLoss:
			s.Losses++
		case BreakEven:
			s.BreakEven++
		}

		amt := t.ResultAmount
		if amt.IsPositive() {
			s.GrossProfit = s.GrossProfit.Add(amt)
		} else {
			s.GrossLoss = s.GrossLoss.Sub(amt)
		}
		s.NetPL = s.NetPL.Add(amt)
		s.ByWeekday[t.DayOfWeek] = s.ByWeekday[t.DayOfWeek].Add(amt)

		equity = equity.Add(amt)
		if equity.GreaterThan(peak) {
			peak = equity
		}
		if dd := peak.Sub(equity); dd.GreaterThan(s.MaxDrawdown) {
			s.MaxDrawdown = dd
		}
		s.Equity = append(s.Equity, EquityPoint{TradeID: t.ID, Date: t.Date, Equity: equity})
	}

	if s.Trades > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Trades) * 100
	}
	if s.GrossLoss.IsPositive() {
		s.ProfitFactor = s.GrossProfit.Div(s.GrossLoss).InexactFloat64()
	}
	return s
}
