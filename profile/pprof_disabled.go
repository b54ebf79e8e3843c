//go:build !pprof

package profile

// Modes returns no modes when built without the pprof build tag.
func Modes() []string { return nil }

// start always returns a no-op controller when built without the pprof
// build tag.
func start(string, string, bool) interface{ Stop() } {
	return ignore{}
}
