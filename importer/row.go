package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rustyeddy/tradejournal/journal"
)

// Row is one spreadsheet data row keyed by header text. Numeric cells are
// float64, everything else is a string. Empty cells are left out.
type Row map[string]any

// Columns lists the accepted header spellings for each field. Headers are
// matched exactly; the first alias present in a row wins. A week label
// column is not read: the week of month always comes from the date.
type Columns struct {
	Date      []string `yaml:"date" json:"date"`
	Weekday   []string `yaml:"weekday" json:"weekday"`
	EntryTime []string `yaml:"entry_time" json:"entry_time"`
	ExitTime  []string `yaml:"exit_time" json:"exit_time"`
	News      []string `yaml:"news" json:"news"`
	Model     []string `yaml:"model" json:"model"`
	Direction []string `yaml:"direction" json:"direction"`
	MaxRR     []string `yaml:"max_rr" json:"max_rr"`
	Drawdown  []string `yaml:"drawdown" json:"drawdown"`
	Result    []string `yaml:"result" json:"result"`
	PnL       []string `yaml:"pnl" json:"pnl"`
	Chart     []string `yaml:"chart" json:"chart"`
}

func DefaultColumns() Columns {
	return Columns{
		Date:      []string{"Fecha", "Date"},
		Weekday:   []string{"Día", "Dia", "Day"},
		EntryTime: []string{"Hora Entrada", "Hora de Entrada", "Entry Time"},
		ExitTime:  []string{"Hora Salida", "Hora de Salida", "Exit Time"},
		News:      []string{"Noticia", "Noticias", "News"},
		Model:     []string{"Modelo", "Model"},
		Direction: []string{"Dirección", "Direccion", "Direction"},
		MaxRR:     []string{"Max RR", "RR Max", "Max R"},
		Drawdown:  []string{"Drawdown", "DD"},
		Result:    []string{"Resultado", "Result"},
		PnL:       []string{"P&L", "PnL", "P/L"},
		Chart:     []string{"Link", "Imagen", "Chart", "Screenshot"},
	}
}

// Get returns the first non-empty cell among keys.
func (r Row) Get(keys []string) (any, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

func (r Row) text(keys []string) string {
	v, ok := r.Get(keys)
	if !ok {
		return ""
	}
	return cellText(v)
}

func cellText(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

type SkipReason string

const (
	SkipNoDate     SkipReason = "no-date"
	SkipTestData   SkipReason = "test-data"
	SkipParseError SkipReason = "parse-error"
)

// SkipError is returned by Parser.Parse for rows that are dropped.
type SkipError struct {
	Reason SkipReason
	Err    error
}

func (e *SkipError) Error() string {
	var msg string
	switch e.Reason {
	case SkipNoDate:
		msg = "no valid date"
	case SkipTestData:
		msg = "looks like test data"
	default:
		msg = "row processing error"
	}
	if e.Err != nil {
		return fmt.Sprintf("skip row: %s: %v", msg, e.Err)
	}
	return "skip row: " + msg
}

func (e *SkipError) Unwrap() error { return e.Err }

// Parser turns one raw row into a journal.Trade.
type Parser struct {
	Columns Columns

	// Rows dated before MinYear are template placeholders.
	MinYear        int
	RiskPercentage float64
	NoNewsMarkers  []string

	UserID    string
	AccountID string
}

func NewParser() *Parser {
	return &Parser{
		Columns:        DefaultColumns(),
		MinYear:        2020,
		RiskPercentage: 1,
		NoNewsMarkers:  []string{"no", "no news", "none", "sin noticia", "sin noticias", "n/a", "-"},
	}
}

// Parse normalizes row. A non-nil error is always a *SkipError.
func (p *Parser) Parse(row Row) (tr journal.Trade, err error) {
	raw, ok := row.Get(p.Columns.Date)
	if !ok {
		return journal.Trade{}, &SkipError{Reason: SkipNoDate}
	}
	date, ok := ParseDate(raw)
	if !ok {
		return journal.Trade{}, &SkipError{Reason: SkipNoDate, Err: fmt.Errorf("unreadable date %q", cellText(raw))}
	}

	year, _ := strconv.Atoi(date[:4])
	if year < p.MinYear {
		return journal.Trade{}, &SkipError{Reason: SkipTestData, Err: fmt.Errorf("year %d", year)}
	}

	defer func() {
		if r := recover(); r != nil {
			tr = journal.Trade{}
			err = &SkipError{Reason: SkipParseError, Err: fmt.Errorf("%v", r)}
		}
	}()

	return p.build(row, date), nil
}

func (p *Parser) build(row Row, date string) journal.Trade {
	pnlCell, _ := row.Get(p.Columns.PnL)
	amount := ParseMonetary(pnlCell)

	day, _ := strconv.Atoi(date[8:10])

	tr := journal.Trade{
		UserID:         p.UserID,
		AccountID:      p.AccountID,
		Date:           date,
		DayOfWeek:      MapDayOfWeek(row.text(p.Columns.Weekday)),
		WeekOfMonth:    WeekOfMonth(day),
		Direction:      MapDirection(row.text(p.Columns.Direction)),
		EntryModel:     MapEntryModel(row.text(p.Columns.Model)),
		Result:         MapResultType(row.text(p.Columns.Result), amount),
		ResultAmount:   amount,
		ImageLink:      row.text(p.Columns.Chart),
		NoTradeDay:     false,
		RiskPercentage: p.RiskPercentage,
	}

	entry, _ := row.Get(p.Columns.EntryTime)
	tr.EntryTime = ParseTime(entry)
	if exit, ok := row.Get(p.Columns.ExitTime); ok {
		tr.ExitTime = ParseTime(exit)
	}

	if v, ok := row.Get(p.Columns.MaxRR); ok {
		tr.MaxRR = ParseOptionalNumber(v)
	}
	if v, ok := row.Get(p.Columns.Drawdown); ok {
		tr.Drawdown = ParseOptionalNumber(v)
	}

	news := row.text(p.Columns.News)
	if news != "" && !p.isNoNews(news) {
		tr.HadNews = true
		tr.NewsDescription = news
	}
	return tr
}

func (p *Parser) isNoNews(s string) bool {
	for _, m := range p.NoNewsMarkers {
		if strings.EqualFold(s, m) {
			return true
		}
	}
	return false
}
