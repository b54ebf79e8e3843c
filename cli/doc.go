// Package cli contains the command line interface for lam.
//
// # Usage
//
// The default command evaluates a term given as arguments or on stdin:
//
//	lam '(\x.x) y'
//	echo 'plus one two' | lam
//
// Additional definitions are loaded from YAML files with --defs, merged
// over the built-in prelude in file order:
//
//	lam --defs church.yaml 'twice succ zero'
//
// The parse, examples, and repl commands expose the parser, the annotated
// example terms, and the interactive session.
//
// # Configuration
//
// Flags may also be set in a config file in the user config directory,
// either JSON (config.json) or YAML (config.yaml). Command-line flags
// override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-callsite: Include call site information in log output
//   - --log-pretty: Enable colorized pretty printing
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o lam .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/lam/pprof)
package cli
