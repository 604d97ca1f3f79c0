package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradejournal/sim"
)

func flipResult(t *testing.T) sim.FlipResult {
	t.Helper()
	cfg := sim.FlipConfig{AccountSize: 1000, CycleSize: 2, RiskPerCycle: 200, RRRatio: 2, ReinvestPercent: 80}
	res, err := sim.SimulateFlip(cfg, []sim.Outcome{sim.TakeProfit, sim.TakeProfit, sim.StopLoss, sim.TakeProfit})
	require.NoError(t, err)
	return res
}

func rotationState(t *testing.T) sim.RotationState {
	t.Helper()
	s, err := sim.NewRotation(sim.DefaultRotationConfig())
	require.NoError(t, err)
	return s.ApplyBatch([]sim.Outcome{sim.TakeProfit, sim.StopLoss, sim.TakeProfit, sim.StopLoss})
}

func TestPrintFlip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintFlip(&buf, flipResult(t), true)
	out := buf.String()

	assert.Contains(t, out, "FlipX5 Simulation")
	assert.Contains(t, out, "Win Rate:      75.00%")
	assert.Contains(t, out, "1500.00")
	assert.Contains(t, out, "1660.00")
	assert.Contains(t, out, "66.00%")
	assert.Contains(t, out, "* leveraged risk includes reinvested profit")

	buf.Reset()
	PrintFlip(&buf, flipResult(t), false)
	assert.NotContains(t, buf.String(), "Cycle  ")
}

func TestPrintRotation(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintRotation(&buf, rotationState(t))
	out := buf.String()

	assert.Contains(t, out, "Account Rotation")
	assert.Contains(t, out, "Next Turn:     account 2")
	assert.Contains(t, out, "Trades:        4")
	assert.Contains(t, out, "Win Rate:      50.00%")
	assert.Contains(t, out, "Total Balance: 300.00")
}

func TestWriteFlipCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteFlipCSV(&buf, flipResult(t)))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 5)
	assert.Equal(t, "trade", recs[0][0])
	assert.Equal(t, []string{"3", "2", "SL", "100.00", "-100.00", "1300.00", "260.00", "-260.00", "1140.00", "true"}, recs[3])
}

func TestWriteRotationCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteRotationCSV(&buf, rotationState(t)))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 5)
	assert.Equal(t, []string{"seq", "account", "outcome", "risk", "pnl", "balance_before", "balance_after"}, recs[0])
	// fourth trade wraps back to the first account
	assert.Equal(t, []string{"4", "1", "SL", "10.00", "-10.00", "110.00", "100.00"}, recs[4])
}

func TestFlipOrg(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := FlipOrg(&buf, FlipOrgData{
		Created:    time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC),
		Notes:      []string{"second cycle boosted"},
		FlipResult: flipResult(t),
	})
	require.NoError(t, err)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "* SIMULATION: FlipX5\n"))
	assert.Contains(t, out, ":CYCLE_RISK:   200.00")
	assert.Contains(t, out, ":WIN_RATE:     75.00")
	assert.Contains(t, out, ":CREATED:      [2024-03-05 Tue 09:30]")
	assert.Contains(t, out, "- Leveraged edge: *160.00*")
	assert.Contains(t, out, "| 3 | 2 | SL | -100.00 | 1300.00 | 260.00 | -260.00 | 1140.00 | yes |")
	assert.Contains(t, out, "- second cycle boosted")
}

func TestFlipOrgEmpty(t *testing.T) {
	t.Parallel()

	res, err := sim.SimulateFlip(sim.DefaultFlipConfig(), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, FlipOrg(&buf, FlipOrgData{Title: "empty", FlipResult: res}))
	assert.Contains(t, buf.String(), "* SIMULATION: empty")
	assert.NotContains(t, buf.String(), "** Trades")
	assert.NotContains(t, buf.String(), "** Observations")
}
