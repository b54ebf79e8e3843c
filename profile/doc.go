// Package profile provides optional runtime profiling for lam.
//
// The package wraps [github.com/pkg/profile] behind the "pprof" build
// tag. Without the tag every operation is a no-op with zero overhead;
// with it, the profiler writes its data to a directory for offline
// analysis.
//
// # Available Modes
//
// When built with the pprof tag the following modes are supported:
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     blocking (synchronization) profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap memory profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution trace profiling
//
// Use [Modes] to retrieve the list programmatically.
//
// # Usage
//
// Build a [Config] with the With* options and start it:
//
//	var cfg profile.Config = func() (string, string, bool) {
//		return "", "", false
//	}
//
//	cfg = profile.WithMode("cpu")(cfg)
//	cfg = profile.WithPath("/tmp/profiles")(cfg)
//
//	ctrl := cfg.Start()
//	defer ctrl.Stop()
//
// Profile files are named after the mode (cpu.pprof, heap.pprof, and
// so on) inside the configured directory.
//
// # Command-Line Usage
//
// The lam command exposes profiling through flags when built with the
// pprof tag:
//
//	go build -tags pprof -o lam .
//	./lam --pprof-mode cpu eval '(\x.x) y'
//
// Analyze the output with the standard tooling:
//
//	go tool pprof ./lam ~/.cache/lam/pprof/cpu.pprof
package profile
