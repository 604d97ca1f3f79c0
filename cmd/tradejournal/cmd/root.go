package cmd

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/logging"
)

var (
	v   = viper.New()
	cfg *config.Config
	log = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "tradejournal",
	Short: "Trading journal importer and position sizing simulator",
	Long: `tradejournal imports spreadsheet trading journals and replays outcome
sequences through position sizing simulations.

It provides tools for:
  - Importing .xlsx journals into a SQLite store
  - Listing, summarising and exporting journal entries
  - Comparing flat and compounded sizing (FlipX5)
  - Rotating trades across several accounts

Every global flag can also be set through a TRADEJOURNAL_* environment
variable, e.g. TRADEJOURNAL_CONFIG or TRADEJOURNAL_LOG_LEVEL.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (YAML or JSON)")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-file", "", "also write JSON logs to this rotated file")
	pf.String("db", "", "path to SQLite journal DB")
	pf.String("user", "", "journal owner id")

	for _, name := range []string{"config", "log-level", "log-file", "db", "user"} {
		_ = v.BindPFlag(name, pf.Lookup(name))
	}
	v.SetEnvPrefix("TRADEJOURNAL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// setup loads the config file, applies flag and env overrides, and builds
// the logger shared by every command.
func setup(cmd *cobra.Command, args []string) error {
	if path := v.GetString("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	if s := v.GetString("log-level"); s != "" {
		cfg.Log.Level = s
	}
	if s := v.GetString("log-file"); s != "" {
		cfg.Log.FilePath = s
	}
	if s := v.GetString("db"); s != "" {
		cfg.Journal.DBPath = s
	}
	if s := v.GetString("user"); s != "" {
		cfg.Journal.UserID = s
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	l, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	log = l
	return nil
}
