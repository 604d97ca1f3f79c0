package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, 2, cfg.Flip.CycleSize)
	assert.Equal(t, 3, cfg.Rotation.NumberOfAccounts)
	assert.Equal(t, 50, cfg.Import.BatchSize)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "flip cycle size",
			mutate:  func(c *Config) { c.Flip.CycleSize = 0 },
			wantErr: true,
			errMsg:  "flip: invalid simulation config: cycle size",
		},
		{
			name:    "single rotation account",
			mutate:  func(c *Config) { c.Rotation.NumberOfAccounts = 1 },
			wantErr: true,
			errMsg:  "rotation:",
		},
		{
			name:    "zero batch size",
			mutate:  func(c *Config) { c.Import.BatchSize = 0 },
			wantErr: true,
			errMsg:  "import.batch_size must be positive",
		},
		{
			name:    "missing db path",
			mutate:  func(c *Config) { c.Journal.DBPath = "" },
			wantErr: true,
			errMsg:  "journal.db_path is required",
		},
		{
			name:    "missing user",
			mutate:  func(c *Config) { c.Journal.UserID = "" },
			wantErr: true,
			errMsg:  "journal.user_id is required",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: true,
			errMsg:  "unknown log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	for _, ext := range []string{".json", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			cfg := Default()
			cfg.Flip.ReinvestPercent = 55
			cfg.Rotation.InitialBalances = []float64{50, 60, 70}
			cfg.Import.Columns.Date = []string{"Trade Date"}
			path := filepath.Join(tmpDir, "test"+ext)

			require.NoError(t, cfg.SaveToFile(path))
			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Flip, loaded.Flip)
			assert.Equal(t, cfg.Rotation, loaded.Rotation)
			assert.Equal(t, []string{"Trade Date"}, loaded.Import.Columns.Date)
			assert.Equal(t, cfg.Journal, loaded.Journal)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("flip:\n  account_size: 2500\n  cycle_size: 3\n  risk_per_cycle: 90\n  rr_ratio: 3\n  reinvest_percent: 50\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, cfg.Flip.AccountSize)
	assert.Equal(t, 3, cfg.Flip.CycleSize)
	assert.Equal(t, Default().Rotation, cfg.Rotation)
	assert.Equal(t, "./journal.sqlite", cfg.Journal.DBPath)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rotation:\n  number_of_accounts: 1\n  initial_balances: [100]\n"), 0644))
	_, err = LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestParserFromConfig(t *testing.T) {
	cfg := Default()
	cfg.Journal.UserID = "ana"
	cfg.Import.MinYear = 2015
	cfg.Import.RiskPercentage = 0.5
	cfg.Import.Columns.PnL = []string{"Profit"}

	p := cfg.Parser()
	assert.Equal(t, "ana", p.UserID)
	assert.Equal(t, 2015, p.MinYear)
	assert.Equal(t, 0.5, p.RiskPercentage)
	assert.Equal(t, []string{"Profit"}, p.Columns.PnL)
	assert.Equal(t, []string{"Fecha", "Date"}, p.Columns.Date)
	assert.NotEmpty(t, p.NoNewsMarkers)
}
