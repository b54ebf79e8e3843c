package lang

import "github.com/ardnew/lam/log"

// DefaultMaxSteps is the default reduction step budget for evaluation.
// Users may modify this before constructing an Evaluator to change the
// default.
var DefaultMaxSteps = 1000 //nolint:gochecknoglobals

// DefaultExpandDepth is the default maximum number of definition
// expansion passes applied to a term before evaluation.
const DefaultExpandDepth = 100

// optionsKey holds Evaluator configuration options.
type optionsKey struct {
	maxSteps    int
	expandDepth int
}

// Evaluator reduces terms to normal form under a step budget.
//
// The zero value is not usable; construct with [New]. An Evaluator is
// immutable after construction and safe for concurrent use: every
// evaluation works on its own term trees and counters.
type Evaluator struct {
	opts   optionsKey
	defs   *Defs      // named definitions expanded before evaluation
	logger log.Logger // structured logger; zero value is a no-op
}

// Option configures parsing or evaluation behavior.
type Option func(*Evaluator)

// WithMaxSteps sets the reduction step budget. Evaluation fails with
// ErrNonTermination when a term does not reach normal form within the
// budget.
func WithMaxSteps(n int) Option {
	return func(ev *Evaluator) {
		ev.opts.maxSteps = n
	}
}

// WithExpandDepth sets the maximum number of definition expansion
// passes applied to a term before evaluation.
func WithExpandDepth(n int) Option {
	return func(ev *Evaluator) {
		ev.opts.expandDepth = n
	}
}

// WithDefs sets the definition table whose names are expanded in input
// terms before evaluation. If nil, no expansion is performed.
func WithDefs(d *Defs) Option {
	return func(ev *Evaluator) {
		ev.defs = d
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(ev *Evaluator) {
		ev.logger = logger
	}
}

// New constructs an Evaluator with the given options applied over
// defaults.
func New(opts ...Option) *Evaluator {
	ev := &Evaluator{}
	applyDefaults(ev)
	applyOptions(ev, opts...)

	return ev
}

// applyDefaults sets default option values on an Evaluator.
func applyDefaults(ev *Evaluator) {
	ev.opts.maxSteps = DefaultMaxSteps
	ev.opts.expandDepth = DefaultExpandDepth
}

// applyOptions applies functional options to an Evaluator.
func applyOptions(ev *Evaluator, opts ...Option) {
	for _, opt := range opts {
		opt(ev)
	}
}
