package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tradejournal/importer"
	"github.com/rustyeddy/tradejournal/logging"
	"github.com/rustyeddy/tradejournal/sim"
)

// Config is everything the CLI needs in one file.
type Config struct {
	Flip     sim.FlipConfig     `json:"flip" yaml:"flip"`
	Rotation sim.RotationConfig `json:"rotation" yaml:"rotation"`
	Import   ImportConfig       `json:"import" yaml:"import"`
	Journal  JournalConfig      `json:"journal" yaml:"journal"`
	Log      logging.Config     `json:"log" yaml:"log"`
}

// ImportConfig tunes the spreadsheet importer.
type ImportConfig struct {
	BatchSize      int     `json:"batch_size" yaml:"batch_size"`
	MinYear        int     `json:"min_year" yaml:"min_year"`
	RiskPercentage float64 `json:"risk_percentage" yaml:"risk_percentage"`
	// Columns overrides the header aliases; empty lists keep the defaults.
	Columns       importer.Columns `json:"columns,omitempty" yaml:"columns,omitempty"`
	NoNewsMarkers []string         `json:"no_news_markers,omitempty" yaml:"no_news_markers,omitempty"`
}

// JournalConfig locates the trade store.
type JournalConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
	UserID string `json:"user_id" yaml:"user_id"`
}

// LoadFromFile loads configuration from a file, YAML first with JSON as fallback.
// Sections missing from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes YAML for .yaml/.yml paths and indented JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if err := c.Flip.Validate(); err != nil {
		return fmt.Errorf("flip: %w", err)
	}
	if err := c.Rotation.Validate(); err != nil {
		return fmt.Errorf("rotation: %w", err)
	}
	if c.Import.BatchSize <= 0 {
		return fmt.Errorf("import.batch_size must be positive")
	}
	if c.Import.RiskPercentage <= 0 {
		return fmt.Errorf("import.risk_percentage must be positive")
	}
	if c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path is required")
	}
	if c.Journal.UserID == "" {
		return fmt.Errorf("journal.user_id is required")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// Parser builds an importer.Parser from the import section.
func (c *Config) Parser() *importer.Parser {
	p := importer.NewParser()
	p.UserID = c.Journal.UserID
	if c.Import.MinYear > 0 {
		p.MinYear = c.Import.MinYear
	}
	p.RiskPercentage = c.Import.RiskPercentage
	if len(c.Import.NoNewsMarkers) > 0 {
		p.NoNewsMarkers = c.Import.NoNewsMarkers
	}
	p.Columns = mergeColumns(p.Columns, c.Import.Columns)
	return p
}

func mergeColumns(base, over importer.Columns) importer.Columns {
	pick := func(b, o []string) []string {
		if len(o) > 0 {
			return o
		}
		return b
	}
	return importer.Columns{
		Date:      pick(base.Date, over.Date),
		Weekday:   pick(base.Weekday, over.Weekday),
		EntryTime: pick(base.EntryTime, over.EntryTime),
		ExitTime:  pick(base.ExitTime, over.ExitTime),
		News:      pick(base.News, over.News),
		Model:     pick(base.Model, over.Model),
		Direction: pick(base.Direction, over.Direction),
		MaxRR:     pick(base.MaxRR, over.MaxRR),
		Drawdown:  pick(base.Drawdown, over.Drawdown),
		Result:    pick(base.Result, over.Result),
		PnL:       pick(base.PnL, over.PnL),
		Chart:     pick(base.Chart, over.Chart),
	}
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Flip:     sim.DefaultFlipConfig(),
		Rotation: sim.DefaultRotationConfig(),
		Import: ImportConfig{
			BatchSize:      importer.DefaultBatchSize,
			MinYear:        2020,
			RiskPercentage: 1,
		},
		Journal: JournalConfig{
			DBPath: "./journal.sqlite",
			UserID: "local",
		},
		Log: logging.DefaultConfig(),
	}
}
