// Package logging builds the console logger shared by every qsk command.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a human-readable logger writing to w. quiet raises the level
// to at least warn.
func New(w io.Writer, level string, quiet bool) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	if quiet && lvl < zerolog.WarnLevel {
		lvl = zerolog.WarnLevel
	}
	cw := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.Kitchen}
	return zerolog.New(cw).Level(lvl).With().Timestamp().Logger(), nil
}

// ParseLevel accepts zerolog level names; "" means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}
