package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/rustyeddy/tradejournal/journal"
)

var (
	ErrUnreadableWorkbook = errors.New("workbook unreadable or not a spreadsheet")
	ErrNoUsableRows       = errors.New("workbook empty or wrong format")
)

// SourceRow is a Row plus where it was first seen.
type SourceRow struct {
	Sheet string
	Line  int // 1-based spreadsheet line
	Row   Row
}

// RowError points at a row that failed mapping.
type RowError struct {
	Index int // position in the deduplicated row list
	Sheet string
	Line  int
	Err   error
}

type SkipCount struct {
	Reason SkipReason
	Count  int
}

// Result of one workbook ingest.
type Result struct {
	Trades  []journal.Trade
	Skipped []SkipCount
	Errors  []RowError

	Sheets     []string // sheets that had a date column
	Rows       int      // rows read from those sheets
	Duplicates int
}

// Skips returns the tally for one reason.
func (r *Result) Skips(reason SkipReason) int {
	for _, s := range r.Skipped {
		if s.Reason == reason {
			return s.Count
		}
	}
	return 0
}

type Ingestor struct {
	Parser *Parser
	Log    zerolog.Logger
}

func NewIngestor(p *Parser, log zerolog.Logger) *Ingestor {
	if p == nil {
		p = NewParser()
	}
	return &Ingestor{Parser: p, Log: log}
}

// Ingest reads every sheet of the workbook in r and normalizes its rows.
//
// Sheets without any dated row are ignored. Rows that are identical across
// (or within) sheets are parsed once. A workbook that yields no trades is an
// ErrNoUsableRows failure and no partial result is returned.
func (in *Ingestor) Ingest(ctx context.Context, r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}
	defer f.Close()

	res := &Result{}
	var rows []SourceRow
	for _, sheet := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sheetRows, err := in.readSheet(f, sheet)
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", ErrUnreadableWorkbook, sheet, err)
		}
		if !hasDate(sheetRows, in.Parser.Columns.Date) {
			in.Log.Debug().Str("sheet", sheet).Msg("no date column, sheet ignored")
			continue
		}
		res.Sheets = append(res.Sheets, sheet)
		res.Rows += len(sheetRows)
		rows = append(rows, sheetRows...)
	}

	unique := Dedupe(rows)
	res.Duplicates = len(rows) - len(unique)

	tally := map[SkipReason]int{}
	for i, sr := range unique {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		tr, err := in.Parser.Parse(sr.Row)
		if err != nil {
			var skip *SkipError
			if !errors.As(err, &skip) {
				skip = &SkipError{Reason: SkipParseError, Err: err}
			}
			tally[skip.Reason]++
			if skip.Reason == SkipParseError {
				res.Errors = append(res.Errors, RowError{Index: i, Sheet: sr.Sheet, Line: sr.Line, Err: skip})
				in.Log.Warn().Err(skip.Err).Str("sheet", sr.Sheet).Int("line", sr.Line).Msg("row dropped")
			}
			continue
		}
		res.Trades = append(res.Trades, tr)
	}

	for _, reason := range []SkipReason{SkipNoDate, SkipTestData, SkipParseError} {
		if n := tally[reason]; n > 0 {
			res.Skipped = append(res.Skipped, SkipCount{Reason: reason, Count: n})
		}
	}

	if len(res.Trades) == 0 {
		return nil, fmt.Errorf("%w: %d rows read from %d sheets, none usable", ErrNoUsableRows, res.Rows, len(res.Sheets))
	}

	in.Log.Info().
		Strs("sheets", res.Sheets).
		Int("rows", res.Rows).
		Int("duplicates", res.Duplicates).
		Int("trades", len(res.Trades)).
		Int("skipped", len(unique)-len(res.Trades)).
		Msg("workbook ingested")
	return res, nil
}

// readSheet uses the first row as headers. Cells keep their raw value so
// dates and times arrive as spreadsheet serial numbers.
func (in *Ingestor) readSheet(f *excelize.File, sheet string) ([]SourceRow, error) {
	grid, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(grid) < 2 {
		return nil, nil
	}

	headers := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var out []SourceRow
	for r, cells := range grid[1:] {
		line := r + 2
		row := Row{}
		for c, raw := range cells {
			if c >= len(headers) || headers[c] == "" || raw == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, line)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(sheet, cell)
			if err != nil {
				return nil, err
			}
			row[headers[c]] = cellValue(raw, typ)
		}
		if len(row) == 0 {
			continue
		}
		out = append(out, SourceRow{Sheet: sheet, Line: line, Row: row})
	}
	return out, nil
}

func cellValue(raw string, typ excelize.CellType) any {
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeError:
		return raw
	case excelize.CellTypeBool:
		return raw
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

func hasDate(rows []SourceRow, keys []string) bool {
	for _, sr := range rows {
		if _, ok := sr.Row.Get(keys); ok {
			return true
		}
	}
	return false
}

// Dedupe drops rows whose fields are identical to an earlier row, keeping
// the first occurrence and the original order.
func Dedupe(rows []SourceRow) []SourceRow {
	seen := make(map[string]bool, len(rows))
	out := make([]SourceRow, 0, len(rows))
	for _, sr := range rows {
		k := rowKey(sr.Row)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, sr)
	}
	return out
}

func rowKey(r Row) string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%q=%T:%v\x1f", k, r[k], r[k])
	}
	return b.String()
}
