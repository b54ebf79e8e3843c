//go:build pprof

package profile

import (
	"maps"
	"slices"
	"sync"

	"github.com/pkg/profile"

	_ "net/http/pprof" // register HTTP handlers
)

// Modes returns the sorted list of profiling modes available when the
// pprof build tag is set. The "quiet" mode is internal and excluded.
var Modes = sync.OnceValue(
	func() []string {
		m := maps.Clone(mode)
		delete(m, "quiet")

		return slices.Sorted(maps.Keys(m))
	},
)

var mode = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"quiet":     profile.Quiet,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// plan accumulates the profile settings selected by options.
type plan struct {
	set []func(*profile.Profile)
}

func start(m, path string, quiet bool) interface{ Stop() } {
	p := newPlan(withMode(m))

	if len(p.set) == 0 {
		return ignore{}
	}

	p = withQuiet(quiet)(withPath(path)(p))

	return profile.Start(p.set...)
}

func withMode(m string) Option {
	return func(p plan) plan {
		if fn, ok := mode[m]; ok {
			p.set = append(p.set, fn)
		}

		return p
	}
}

func withPath(dir string) Option {
	return func(p plan) plan {
		if dir != "" {
			p.set = append(p.set, profile.ProfilePath(dir))
		}

		return p
	}
}

func withQuiet(v bool) Option {
	return func(p plan) plan {
		if v {
			p.set = append(p.set, profile.Quiet)
		}

		return p
	}
}
