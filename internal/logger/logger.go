// Package logger configures the global zerolog logger. Output goes to a
// rotated file only; the terminal belongs to the screen.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Options defines logger initialization parameters.
type Options struct {
	Level      string
	Pretty     bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Init sets up the global logger with file rotation. An empty file name
// disables logging entirely.
func Init(opts Options) error {
	var out io.Writer = io.Discard

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return fmt.Errorf("create logs dir: %w", err)
		}
		if opts.MaxSizeMB <= 0 {
			opts.MaxSizeMB = 20
		}
		if opts.MaxBackups <= 0 {
			opts.MaxBackups = 3
		}
		if opts.MaxAgeDays <= 0 {
			opts.MaxAgeDays = 28
		}
		out = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
		}
	}

	zerolog.TimeFieldFormat = time.RFC3339
	lvl, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	log.Logger = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return nil
}
