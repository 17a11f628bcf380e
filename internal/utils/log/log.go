// Package log sets up the slog default logger on top of charmbracelet/log.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
)

type Level = charmlog.Level

const (
	DebugLevel = charmlog.DebugLevel
	InfoLevel  = charmlog.InfoLevel
	WarnLevel  = charmlog.WarnLevel
	ErrorLevel = charmlog.ErrorLevel
)

var levelColors = map[Level]lipgloss.Color{
	DebugLevel: lipgloss.Color("#808080"),
	InfoLevel:  lipgloss.Color("#0000FF"),
	WarnLevel:  lipgloss.Color("#FFFF00"),
	ErrorLevel: lipgloss.Color("#FF0000"),
}

// styles pads every level label to the same width so messages line up
var styles = sync.OnceValue(func() *charmlog.Styles {
	s := charmlog.DefaultStyles()
	for level, color := range levelColors {
		label := strings.ToUpper(level.String())
		s.Levels[level] = lipgloss.NewStyle().
			Foreground(color).
			Width(5).
			SetString(label)
	}
	return s
})

// New returns a slog logger writing through charmbracelet/log.
// Without options it logs info and above to stderr.
func New(opts ...Option) *slog.Logger {
	s := settings{
		level: InfoLevel,
		out:   os.Stderr,
	}
	for _, opt := range opts {
		opt(&s)
	}

	handler := charmlog.NewWithOptions(s.out, charmlog.Options{
		Level:           s.level,
		Prefix:          s.prefix,
		ReportTimestamp: s.timestamp,
		TimeFormat:      s.timeFormat,
	})
	handler.SetStyles(styles())

	logger := slog.New(handler)
	for _, attr := range s.attrs {
		logger = logger.With(attr)
	}
	if s.asDefault {
		slog.SetDefault(logger)
	}
	return logger
}

// ParseLevel maps a config level name to a Level, defaulting to info
func ParseLevel(s string) Level {
	level, err := charmlog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return InfoLevel
	}
	return level
}

// Discard is a logger that drops everything
func Discard() *slog.Logger {
	return New(UseOutput(io.Discard))
}
