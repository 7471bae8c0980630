// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// Log defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "tint"
)

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format,omitempty" validate:"omitempty,oneof=tint json text"`
	// NoColor disables ANSI colors of the tint handler.
	NoColor bool `yaml:"no_color,omitempty"`
}

// SlogLevel parses Level; empty means DefaultLogLevel.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	lvl := l.Level
	if lvl == "" {
		lvl = DefaultLogLevel
	}
	var out slog.Level
	if err := out.UnmarshalText([]byte(lvl)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", l.Level, ErrInvalid)
	}

	return out, nil
}

// NewLogger builds a logger writing to w: tint for terminals, slog JSON or
// text otherwise.
func (l LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	lvl, err := l.SlogLevel()
	if err != nil {
		return nil, err
	}
	format := l.Format
	if format == "" {
		format = DefaultLogFormat
	}

	var h slog.Handler
	switch format {
	case "tint":
		h = tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: time.TimeOnly,
			NoColor:    l.NoColor,
		})
	case "json":
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	case "text":
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	default:
		return nil, fmt.Errorf("log format %q: %w", l.Format, ErrInvalid)
	}

	return slog.New(h), nil
}
