package config

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds a console-formatted logger writing to w at the configured
// level. An unparsable level falls back to info.
func NewLogger(w io.Writer, cfg LogConfig, color bool) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
