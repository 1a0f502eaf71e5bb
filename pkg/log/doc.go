// Package log provides Flake's structured logging facade.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// Field type for structured context. Internally it is backed by the standard
// library slog via a custom handler that routes records through a
// formatter/output pipeline, so slog-aware libraries and our own code share
// one output path.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("server"))
//	l.Info("listening", log.Str("addr", ":8080"))
//
// # Configuration
//
// ApplyConfig builds a logger from a declarative Config (level + format),
// which is how servers construct their process-wide logger from env/flags.
//
// # Interop
//
// RedirectStdLog routes standard library log output (used by Pebble) through
// a Logger; ToStdLogger adapts a Logger for APIs that want *log.Logger.
package log
