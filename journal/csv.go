// journal/csv.go
package journal

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{
	"id", "date", "day_of_week", "week_of_month", "entry_time", "exit_time",
	"direction", "entry_model", "result_type", "result_amount", "had_news",
	"news_description", "max_rr", "drawdown", "image_link", "no_trade_day", "risk_percentage",
}

// WriteCSV exports trades with a header row. Optional numbers are left blank
// when absent.
func WriteCSV(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, t := range trades {
		err := cw.Write([]string{
			t.ID,
			t.Date,
			string(t.DayOfWeek),
			strconv.Itoa(t.WeekOfMonth),
			t.EntryTime,
			t.ExitTime,
			string(t.Direction),
			t.EntryModel,
			string(t.Result),
			t.ResultAmount.StringFixed(2),
			strconv.FormatBool(t.HadNews),
			t.NewsDescription,
			optional(t.MaxRR),
			optional(t.Drawdown),
			t.ImageLink,
			strconv.FormatBool(t.NoTradeDay),
			f(t.RiskPercentage),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func optional(x *float64) string {
	if x == nil {
		return ""
	}
	return f(*x)
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
