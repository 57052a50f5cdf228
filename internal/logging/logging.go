// Package logging configures zerolog for the staking service.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

const (
	LogFormatPlain = "plain"
	LogFormatJSON  = "json"
)

// NewConsoleWriter creates a log writer for the given format. Plain output
// is rendered for humans; JSON output is zerolog's native format.
func NewConsoleWriter(w io.Writer, format string) (io.Writer, error) {
	switch strings.ToLower(format) {
	case LogFormatPlain, "text":
		return &zerolog.ConsoleWriter{
			Out:         w,
			TimeFormat:  time.RFC3339,
			FormatLevel: formatLevel,
		}, nil

	case LogFormatJSON:
		return w, nil

	default:
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}
}

// New creates a logger writing to the given writer at the given level.
func New(w io.Writer, level string) (zerolog.Logger, error) {
	ll, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("failed to parse log level: %v", err)
	}
	return zerolog.New(w).Level(ll).With().Timestamp().Logger(), nil
}

func formatLevel(i interface{}) string {
	ll, ok := i.(string)
	if !ok {
		return "????"
	}
	switch ll {
	case "warn":
		return color.YellowString(strings.ToUpper(ll))
	case "error", "fatal", "panic":
		return color.RedString(strings.ToUpper(ll))
	default:
		return strings.ToUpper(ll)
	}
}
