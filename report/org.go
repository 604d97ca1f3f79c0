package report

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/rustyeddy/tradejournal/sim"
)

// FlipOrgData is what the Org template sees.
type FlipOrgData struct {
	Title   string
	Created time.Time
	Notes   []string
	sim.FlipResult
}

var orgFuncs = template.FuncMap{
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
	"diff": func(a, b float64) float64 { return a - b },
}

var flipOrgTmpl = template.Must(template.New("flip").Funcs(orgFuncs).Parse(flipOrgTemplate))

// FlipOrg writes an Org-mode summary of a flip simulation.
func FlipOrg(w io.Writer, d FlipOrgData) error {
	if d.Title == "" {
		d.Title = "FlipX5"
	}
	if err := flipOrgTmpl.Execute(w, d); err != nil {
		return fmt.Errorf("render flip org: %w", err)
	}
	return nil
}

const flipOrgTemplate = `* SIMULATION: {{.Title}}
:PROPERTIES:
:ACCOUNT_SIZE: {{printf "%.2f" .Config.AccountSize}}
:CYCLE_SIZE:   {{.Config.CycleSize}}
:CYCLE_RISK:   {{printf "%.2f" .Config.CycleRisk}}
:RR:           {{printf "%.2f" .Config.RRRatio}}
:REINVEST_PCT: {{printf "%.2f" .Config.ReinvestPercent}}
:TRADES:       {{len .Rows}}
:TP:           {{.TotalTP}}
:SL:           {{.TotalSL}}
:WIN_RATE:     {{printf "%.2f" .WinRate}}
:CREATED:      [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
| Strategy    | Final Balance | Total Profit |   ROI % |
|-------------+---------------+--------------+---------|
| Traditional | {{printf "%13.2f" .Traditional.FinalBalance}} | {{printf "%12.2f" .Traditional.TotalProfit}} | {{printf "%7.2f" .Traditional.ROI}} |
| Leveraged   | {{printf "%13.2f" .Leveraged.FinalBalance}} | {{printf "%12.2f" .Leveraged.TotalProfit}} | {{printf "%7.2f" .Leveraged.ROI}} |

- Leveraged edge: *{{printf "%.2f" (diff .Leveraged.FinalBalance .Traditional.FinalBalance)}}*

{{- if .Rows }}

** Trades
| # | Cycle | Outcome | Trad P/L | Trad Bal | Lev Risk | Lev P/L | Lev Bal | Boost |
|---+-------+---------+----------+----------+----------+---------+---------+-------|
{{- range .Rows }}
| {{.Trade}} | {{.Cycle}} | {{.Outcome}} | {{printf "%.2f" .TradPnL}} | {{printf "%.2f" .TradBalance}} | {{printf "%.2f" .LevRisk}} | {{printf "%.2f" .LevPnL}} | {{printf "%.2f" .LevBalance}} | {{if .Boosted}}yes{{end}} |
{{- end }}
{{- end }}

{{- if .Notes }}

** Observations
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}
`
