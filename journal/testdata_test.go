package journal

import (
	"github.com/shopspring/decimal"
)

func ptr(x float64) *float64 { return &x }

func sampleTrade() Trade {
	return Trade{
		UserID:          "user-1",
		AccountID:       "ftmo-100k",
		Date:            "2024-03-05",
		DayOfWeek:       Tuesday,
		WeekOfMonth:     1,
		EntryTime:       "09:45:00",
		ExitTime:        "11:10:00",
		Direction:       Sell,
		EntryModel:      ModelM3,
		Result:          TakeProfit,
		ResultAmount:    decimal.RequireFromString("1250.50"),
		HadNews:         true,
		NewsDescription: "CPI",
		MaxRR:           ptr(3.2),
		ImageLink:       "https://www.tradingview.com/x/abc123/",
		RiskPercentage:  1,
	}
}
