package journal

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	tr := sampleTrade()
	tr.ID = "T1"

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []Trade{tr}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, csvHeader, rows[0])

	want := []string{
		"T1", "2024-03-05", "Tuesday", "1", "09:45:00", "11:10:00",
		"Sell", "M3", "TakeProfit", "1250.50", "true",
		"CPI", "3.2", "", "https://www.tradingview.com/x/abc123/", "false", "1",
	}
	assert.Equal(t, want, rows[1])
}

func TestWriteCSVEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
