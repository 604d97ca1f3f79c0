// journal/journal.go
package journal

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	Buy  Direction = "Buy"
	Sell Direction = "Sell"
)

type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
)

// Weekdays lists the trading days in calendar order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

type ResultType string

const (
	TakeProfit ResultType = "TakeProfit"
	StopLoss   ResultType = "StopLoss"
	BreakEven  ResultType = "BreakEven"
)

// Canonical entry models. Anything else is kept as the user typed it.
const (
	ModelM1           = "M1"
	ModelM3           = "M3"
	ModelContinuation = "Continuation"
)

// Trade is one normalized journal entry.
//
// Dates are kept as YYYY-MM-DD and times as HH:MM:SS strings, the same form
// the spreadsheet importer produces. Empty strings mean "not recorded".
type Trade struct {
	ID        string
	UserID    string
	AccountID string

	Date        string
	DayOfWeek   Weekday
	WeekOfMonth int
	EntryTime   string
	ExitTime    string

	Direction    Direction
	EntryModel   string
	Result       ResultType
	ResultAmount decimal.Decimal

	HadNews         bool
	NewsDescription string

	// nil means the column was empty, which is not the same as zero
	MaxRR    *float64
	Drawdown *float64

	ImageLink string

	// NoTradeDay marks a placeholder for a day without a trade. Direction,
	// result and model are ignored for these records.
	NoTradeDay     bool
	RiskPercentage float64
}

// IsWin reports whether the trade counts as a winner in analytics.
func (t Trade) IsWin() bool {
	return !t.NoTradeDay && t.Result == TakeProfit
}

// Store is the data-access surface the rest of the application talks to.
// Reads are always scoped to an owner.
type Store interface {
	Create(ctx context.Context, t Trade) (Trade, error)
	Get(ctx context.Context, id string) (Trade, error)
	ListByOwner(ctx context.Context, userID string) ([]Trade, error)
	Update(ctx context.Context, t Trade) error
	Delete(ctx context.Context, id string) error

	// UpsertTrades inserts or updates a batch atomically, keyed by ID.
	// Trades with an empty ID get a new one written into the caller's
	// slice before anything is stored, so a failed batch still leaves
	// those IDs set even though nothing was saved.
	UpsertTrades(ctx context.Context, trades []Trade) error
	Close() error
}

// ParseDirection accepts the canonical spelling in any case.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return Buy, true
	case "sell":
		return Sell, true
	}
	return "", false
}
