package journal

import (
	"fmt"
	"strings"
)

// FormatTradeOrg renders a Trade as an Org-mode block suitable for pasting into a journal.
// Structured facts go in the PROPERTIES drawer; the narrative sections are left blank.
func FormatTradeOrg(t Trade) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Trade: %s %s %s (%s)\n", t.Date, t.Direction, t.EntryModel, shortID(t.ID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %s\n", t.ID)
	fmt.Fprintf(&b, ":DATE: %s\n", t.Date)
	fmt.Fprintf(&b, ":WEEKDAY: %s\n", t.DayOfWeek)
	fmt.Fprintf(&b, ":WEEK: %d\n", t.WeekOfMonth)
	fmt.Fprintf(&b, ":ENTRY_TIME: %s\n", t.EntryTime)
	if t.ExitTime != "" {
		fmt.Fprintf(&b, ":EXIT_TIME: %s\n", t.ExitTime)
	}
	fmt.Fprintf(&b, ":DIRECTION: %s\n", t.Direction)
	fmt.Fprintf(&b, ":MODEL: %s\n", t.EntryModel)
	fmt.Fprintf(&b, ":RESULT: %s\n", t.Result)
	fmt.Fprintf(&b, ":PL: %s\n", t.ResultAmount.StringFixed(2))
	if t.MaxRR != nil {
		fmt.Fprintf(&b, ":MAX_RR: %.2f\n", *t.MaxRR)
	}
	if t.HadNews {
		fmt.Fprintf(&b, ":NEWS: %s\n", t.NewsDescription)
	}
	if t.ImageLink != "" {
		fmt.Fprintf(&b, ":CHART: [[%s]]\n", t.ImageLink)
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
