package importer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rustyeddy/tradejournal/journal"
)

var tradeHeader = []any{"Fecha", "Día", "Hora Entrada", "Dirección", "Modelo", "Resultado", "P&L"}

// workbook builds an in-memory xlsx with one sheet per entry.
func workbook(t *testing.T, sheets map[string][][]any, order ...string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestIngestIgnoresSheetsWithoutDates(t *testing.T) {
	t.Parallel()

	shared := []any{45356.0, "Martes", 0.40625, "Sell", "M1", "TP", 300.0}
	buf := workbook(t, map[string][][]any{
		"Marzo": {
			tradeHeader,
			shared,
			{"06/03/24", "Miércoles", "10:15", "Buy", "Cont", "SL", "-$150"},
		},
		"Resumen": {
			{"Mes", "Total"},
			{"Marzo", 150.0},
		},
		"Copia": {
			tradeHeader,
			shared,
		},
	}, "Marzo", "Resumen", "Copia")

	res, err := NewIngestor(nil, zerolog.Nop()).Ingest(context.Background(), buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"Marzo", "Copia"}, res.Sheets)
	assert.Equal(t, 3, res.Rows)
	assert.Equal(t, 1, res.Duplicates)
	require.Len(t, res.Trades, 2)

	first := res.Trades[0]
	assert.Equal(t, "2024-03-05", first.Date)
	assert.Equal(t, journal.Tuesday, first.DayOfWeek)
	assert.Equal(t, "09:45:00", first.EntryTime)
	assert.Equal(t, journal.Sell, first.Direction)
	assert.Equal(t, journal.TakeProfit, first.Result)

	second := res.Trades[1]
	assert.Equal(t, "2024-03-06", second.Date)
	assert.Equal(t, journal.Wednesday, second.DayOfWeek)
	assert.Equal(t, journal.ModelContinuation, second.EntryModel)
	assert.Equal(t, "-150", second.ResultAmount.String())
	assert.Empty(t, res.Skipped)
}

func TestIngestTalliesSkips(t *testing.T) {
	t.Parallel()

	buf := workbook(t, map[string][][]any{
		"Trades": {
			tradeHeader,
			{"2024-04-02", "Martes", "9:30", "Buy", "M1", "TP", 100.0},
			{"01/01/2019", "Martes", "9:30", "Buy", "M1", "TP", 100.0},
			{"02/01/2019", "Miércoles", "9:30", "Buy", "M1", "TP", 100.0},
			{"", "Jueves", "9:30", "Buy", "M1", "TP", 100.0},
			{"someday", "Jueves", "9:30", "Buy", "M1", "TP", 100.0},
		},
	}, "Trades")

	res, err := NewIngestor(nil, zerolog.Nop()).Ingest(context.Background(), buf)
	require.NoError(t, err)

	assert.Len(t, res.Trades, 1)
	assert.Equal(t, 2, res.Skips(SkipTestData))
	assert.Equal(t, 2, res.Skips(SkipNoDate))
	assert.Zero(t, res.Skips(SkipParseError))
	assert.Empty(t, res.Errors)
	assert.Equal(t, []SkipCount{{SkipNoDate, 2}, {SkipTestData, 2}}, res.Skipped)
}

func TestIngestKeepsPointerToFailedRow(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), "Abril"))
	rows := [][]any{
		tradeHeader,
		{"2024-04-02", "Martes", "9:30", "Buy", "M1", "TP", 100.0},
		{"2024-04-03", "Miércoles", "9:30", "Sell", "M3", "SL", 0.0},
		{"2024-04-04", "Jueves", "10:00", "Buy", "M1", "TP", 250.0},
	}
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Abril", cell, &row))
	}
	// a numeric cell holding infinity cannot become a money amount
	require.NoError(t, f.SetCellDefault("Abril", "G3", "Inf"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	res, err := NewIngestor(nil, zerolog.Nop()).Ingest(context.Background(), buf)
	require.NoError(t, err)

	require.Len(t, res.Trades, 2)
	assert.Equal(t, "2024-04-02", res.Trades[0].Date)
	assert.Equal(t, "2024-04-04", res.Trades[1].Date)
	assert.Equal(t, 1, res.Skips(SkipParseError))

	require.Len(t, res.Errors, 1)
	rowErr := res.Errors[0]
	assert.Equal(t, "Abril", rowErr.Sheet)
	assert.Equal(t, 3, rowErr.Line)
	assert.Equal(t, 1, rowErr.Index)

	var skip *SkipError
	require.True(t, errors.As(rowErr.Err, &skip))
	assert.Equal(t, SkipParseError, skip.Reason)
}

func TestIngestNoUsableRows(t *testing.T) {
	t.Parallel()

	buf := workbook(t, map[string][][]any{
		"Plantilla": {
			tradeHeader,
			{"01/01/2019", "Martes", "9:30", "Buy", "M1", "TP", 100.0},
		},
	}, "Plantilla")

	res, err := NewIngestor(nil, zerolog.Nop()).Ingest(context.Background(), buf)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrNoUsableRows)
}

func TestIngestNoRelevantSheets(t *testing.T) {
	t.Parallel()

	buf := workbook(t, map[string][][]any{
		"Notes": {{"Idea"}, {"buy the dip"}},
	}, "Notes")

	_, err := NewIngestor(nil, zerolog.Nop()).Ingest(context.Background(), buf)
	assert.ErrorIs(t, err, ErrNoUsableRows)
}

func TestIngestUnreadableWorkbook(t *testing.T) {
	t.Parallel()

	_, err := NewIngestor(nil, zerolog.Nop()).Ingest(context.Background(), strings.NewReader("fecha,pnl\n"))
	assert.ErrorIs(t, err, ErrUnreadableWorkbook)
}

func TestIngestCancelled(t *testing.T) {
	t.Parallel()

	buf := workbook(t, map[string][][]any{
		"Trades": {tradeHeader, {"2024-04-02", "Martes", "9:30", "Buy", "M1", "TP", 100.0}},
	}, "Trades")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewIngestor(nil, zerolog.Nop()).Ingest(ctx, buf)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDedupe(t *testing.T) {
	t.Parallel()

	rows := []SourceRow{
		{Sheet: "A", Line: 2, Row: Row{"Fecha": "2024-01-02", "P&L": 10.0}},
		{Sheet: "B", Line: 2, Row: Row{"P&L": 10.0, "Fecha": "2024-01-02"}},
		{Sheet: "B", Line: 3, Row: Row{"Fecha": "2024-01-02", "P&L": "10"}},
		{Sheet: "B", Line: 4, Row: Row{"Fecha": "2024-01-02", "P&L": 10.0, "Modelo": "M1"}},
	}

	got := Dedupe(rows)
	require.Len(t, got, 3)
	assert.Equal(t, "A", got[0].Sheet)
	assert.Equal(t, 3, got[1].Line, "text and number cells are different values")
	assert.Equal(t, 4, got[2].Line)
}
