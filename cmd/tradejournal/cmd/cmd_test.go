package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rustyeddy/tradejournal/sim"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestReadOutcomes(t *testing.T) {
	got, err := readOutcomes(nil, "tp, sl win", "")
	require.NoError(t, err)
	assert.Equal(t, []sim.Outcome{sim.TakeProfit, sim.StopLoss, sim.TakeProfit}, got)

	got, err = readOutcomes(strings.NewReader("TP\nTP\nSL\n"), "", "-")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = readOutcomes(nil, "", "")
	assert.Error(t, err)

	_, err = readOutcomes(nil, "TP,maybe", "")
	assert.Error(t, err)
}

func TestSpread(t *testing.T) {
	assert.Equal(t, []float64{50, 60, 50, 50}, spread([]float64{50, 60}, 4))
	assert.Equal(t, []float64{50}, spread([]float64{50, 60}, 1))
	assert.Equal(t, []float64{100, 100}, spread(nil, 2))
}

func TestFlipCommand(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "flip.csv")

	out, err := run(t, "flip", "--outcomes", "TP,TP,SL,TP", "--account", "1000", "--cycle", "2",
		"--risk", "200", "--rr", "2", "--reinvest", "80", "--csv", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "1660.00")

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(string(data), "\n"))
}

func TestRotateCommand(t *testing.T) {
	out, err := run(t, "rotate", "--outcomes", "TP SL TP SL", "--undo", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Trades:        3")
	assert.Contains(t, out, "Next Turn:     account 1")
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tj.yaml")

	out, err := run(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = run(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
}

func TestImportThenJournal(t *testing.T) {
	dir := t.TempDir()
	book := filepath.Join(dir, "journal.xlsx")
	db := filepath.Join(dir, "journal.sqlite")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Fecha", "Día", "Hora Entrada", "Dirección", "Modelo", "Resultado", "P&L"},
		{"05/03/2024", "Martes", "09:45", "Sell", "M1", "TP", 300.0},
		{"06/03/2024", "Miércoles", "10:15", "Buy", "Cont", "SL", "-$150"},
		{"", "", "", "", "", "", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(book))
	require.NoError(t, f.Close())

	out, err := run(t, "--db", db, "--user", "ana", "import", book)
	require.NoError(t, err)
	assert.Contains(t, out, "Trades:        2")
	assert.Contains(t, out, "Saved:         2")

	out, err = run(t, "--db", db, "--user", "ana", "journal", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Net P/L:       150.00")
	assert.Contains(t, out, "Win Rate:      50.00%")

	out, err = run(t, "--db", db, "--user", "ana", "journal", "export")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-03-06")
}
