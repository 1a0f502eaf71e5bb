package log

import (
	stdlog "log"
	"strings"
)

// stdWriter adapts a Logger to io.Writer for the standard library logger.
type stdWriter struct {
	logger Logger
	level  Level
}

func (w *stdWriter) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\n")
	switch w.level {
	case DebugLevel:
		w.logger.Debug(msg)
	case WarnLevel:
		w.logger.Warn(msg)
	case ErrorLevel:
		w.logger.Error(msg)
	default:
		w.logger.Info(msg)
	}
	return len(p), nil
}

// RedirectStdLog routes standard library log output (used by Pebble and
// other dependencies) through logger at InfoLevel.
func RedirectStdLog(logger Logger) {
	stdlog.SetFlags(0)
	stdlog.SetOutput(&stdWriter{logger: logger, level: InfoLevel})
}

// ToStdLogger returns a *log.Logger that forwards to logger at the given
// level, for APIs that only accept the standard library type.
func ToStdLogger(logger Logger, level Level) *stdlog.Logger {
	return stdlog.New(&stdWriter{logger: logger, level: level}, "", 0)
}
