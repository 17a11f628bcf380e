package log

import (
	"io"
	"log/slog"
)

type settings struct {
	level      Level
	out        io.Writer
	prefix     string
	timestamp  bool
	timeFormat string
	attrs      []slog.Attr
	asDefault  bool
}

type Option func(*settings)

func UseLevel(l Level) Option {
	return func(s *settings) {
		s.level = l
	}
}

func UseOutput(w io.Writer) Option {
	return func(s *settings) {
		s.out = w
	}
}

// UsePrefix labels every line, e.g. with the program name on stderr
func UsePrefix(prefix string) Option {
	return func(s *settings) {
		s.prefix = prefix
	}
}

func UseReportTimestamp(report bool) Option {
	return func(s *settings) {
		s.timestamp = report
	}
}

func UseTimeFormat(format string) Option {
	return func(s *settings) {
		s.timeFormat = format
	}
}

// UseAttrs attaches attrs to every record, e.g. the run id
func UseAttrs(attrs ...slog.Attr) Option {
	return func(s *settings) {
		s.attrs = append(s.attrs, attrs...)
	}
}

// AsDefault installs the logger with slog.SetDefault
func AsDefault() Option {
	return func(s *settings) {
		s.asDefault = true
	}
}
