// Package log provides a structured logging interface based on
// [log/slog], extended with a Trace level below Debug for reduction
// and parser diagnostics.
//
// Loggers are immutable values: configuration is applied once at
// creation with functional options, and [Logger.Wrap] or [Logger.With]
// derive new loggers rather than mutating existing ones. A zero-value
// Logger discards everything.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("session started", slog.String("version", "0.1.0"))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatText),
//		log.WithCallsite(true))
//
// # Package-Level Logging
//
// The package maintains a default logger writing to standard error,
// reconfigured with [Config]:
//
//	log.Config(log.WithLevel(log.LevelDebug))
//	log.Debug("definitions loaded", slog.Int("count", n))
//
// Context-unaware functions call their context-aware counterparts with
// [DefaultContextProvider], which returns [context.TODO] unless
// replaced.
//
// # Output Formats
//
// [FormatText] and [FormatJSON] are supported, each with an optional
// pretty variant that colorizes keys and values for terminal output.
package log
