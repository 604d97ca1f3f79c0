// Package logging builds the zerolog logger shared by the CLI and importer.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level   string `json:"level" yaml:"level"`
	Console bool   `json:"console" yaml:"console"`
	// FilePath enables a rotated log file when set.
	FilePath   string `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	MaxSize    int    `json:"max_size_mb,omitempty" yaml:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty" yaml:"max_backups,omitempty"`
	MaxAge     int    `json:"max_age_days,omitempty" yaml:"max_age_days,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Console:    true,
		MaxSize:    20,
		MaxBackups: 5,
		MaxAge:     30,
	}
}

// New returns a logger writing to stderr and/or a rotated file. With neither
// enabled it discards everything.
func New(cfg Config) (zerolog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	var writers []io.Writer
	if cfg.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return zerolog.Nop(), fmt.Errorf("log dir: %w", err)
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   true,
		})
	}

	var w io.Writer
	switch len(writers) {
	case 0:
		return zerolog.Nop(), nil
	case 1:
		w = writers[0]
	default:
		w = zerolog.MultiLevelWriter(writers...)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// ParseLevel accepts zerolog level names; empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
