//go:build pprof

package profile

// Option appends profiler settings to a plan.
type Option func(plan) plan

// newPlan builds a plan from the given options applied in order.
func newPlan(opts ...Option) plan {
	var p plan

	for _, opt := range opts {
		p = opt(p)
	}

	return p
}
