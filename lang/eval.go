package lang

import (
	"context"
	"log/slog"
)

// IsFree reports whether name occurs free in node, i.e. as a variable
// not shadowed by an enclosing abstraction binding the same name.
func IsFree(name string, node Node) bool {
	switch n := node.(type) {
	case *Var:
		return n.Name == name

	case *Abs:
		// The binder shadows every occurrence in its body.
		return n.Param != name && IsFree(name, n.Body)

	case *App:
		return IsFree(name, n.Fn) || IsFree(name, n.Arg)

	default:
		return false
	}
}

// FreshName derives a name from base that is not free in any of the
// given terms by appending prime markers until the candidate is unused.
// Each attempt strictly lengthens the candidate and the terms have
// finitely many free names, so this always terminates.
func FreshName(base string, avoid ...Node) string {
	name := base

	for {
		free := false

		for _, node := range avoid {
			if IsFree(name, node) {
				free = true

				break
			}
		}

		if !free {
			return name
		}

		name += "'"
	}
}

// Substitute returns a new term equal to node with every free
// occurrence of name replaced by repl, alpha-converting binders as
// needed so no free variable of repl is captured. Untouched subtrees
// are shared with the input.
func Substitute(node Node, name string, repl Node) Node {
	switch n := node.(type) {
	case *Var:
		if n.Name == name {
			return repl
		}

		return n

	case *Abs:
		// The binder shadows the substitution target; nothing below it
		// can be a free occurrence of name.
		if n.Param == name {
			return n
		}

		if IsFree(n.Param, repl) && IsFree(name, n.Body) {
			// Substituting directly would capture the free occurrence
			// of n.Param inside repl. Rename the binder first.
			fresh := FreshName(n.Param, repl, n.Body)
			body := Substitute(n.Body, n.Param, NewVar(fresh))

			return NewAbs(fresh, Substitute(body, name, repl))
		}

		return NewAbs(n.Param, Substitute(n.Body, name, repl))

	case *App:
		return NewApp(
			Substitute(n.Fn, name, repl),
			Substitute(n.Arg, name, repl),
		)

	default:
		return node
	}
}

// Step performs at most one normal-order (leftmost outermost)
// reduction. It returns the reduced term and true, or the input and
// false when node is already in normal form.
func Step(node Node) (Node, bool) {
	switch n := node.(type) {
	case *Var:
		return n, false

	case *Abs:
		if body, ok := Step(n.Body); ok {
			return NewAbs(n.Param, body), true
		}

		return n, false

	case *App:
		if fn, ok := Step(n.Fn); ok {
			return NewApp(fn, n.Arg), true
		}

		if arg, ok := Step(n.Arg); ok {
			return NewApp(n.Fn, arg), true
		}

		if abs, ok := n.Fn.(*Abs); ok {
			// Beta reduction: the argument is substituted unreduced.
			return Substitute(abs.Body, abs.Param, n.Arg), true
		}

		// Stuck head: a variable or an irreducible application.
		return n, false

	default:
		return node, false
	}
}

// Evaluate reduces node to normal form by iterating [Step], expanding
// named definitions first when the Evaluator carries a [Defs] table.
// It fails with ErrNonTermination when the step budget is exhausted
// before a normal form is found.
func (ev *Evaluator) Evaluate(ctx context.Context, node Node) (Node, error) {
	node, steps, err := ev.reduce(ctx, node, nil)

	ev.logger.TraceContext(
		ctx,
		"evaluate complete",
		slog.Int("steps", steps),
		slog.Bool("failed", err != nil),
	)

	return node, err
}

// Trace records the reduction sequence of a term: the rendering of the
// initial form and of the term after every applied step.
type Trace struct {
	// Term is the normal form reached.
	Term Node `json:"-" yaml:"-"`
	// Result is the rendering of Term.
	Result string `json:"result" yaml:"result"`
	// Steps holds the rendered form before any step and after each
	// applied step, in order. The final element equals Result.
	Steps []string `json:"steps" yaml:"steps"`
}

// EvaluateWithSteps reduces node like [Evaluator.Evaluate] and records
// the rendered form after every applied step, including the initial
// form. If the step budget is exhausted the whole call fails; partial
// traces are never returned.
func (ev *Evaluator) EvaluateWithSteps(
	ctx context.Context,
	node Node,
) (*Trace, error) {
	trace := &Trace{}

	node, steps, err := ev.reduce(ctx, node, trace)

	ev.logger.TraceContext(
		ctx,
		"evaluate complete",
		slog.Int("steps", steps),
		slog.Bool("traced", true),
		slog.Bool("failed", err != nil),
	)

	if err != nil {
		return nil, err
	}

	trace.Term = node
	trace.Result = Render(node)

	return trace, nil
}

// reduce is the shared evaluation loop. When trace is non-nil, it
// appends a rendered snapshot for the initial term and after each
// applied step.
func (ev *Evaluator) reduce(
	ctx context.Context,
	node Node,
	trace *Trace,
) (Node, int, error) {
	if ev.defs != nil {
		expanded, err := ev.defs.Expand(node, ev.opts.expandDepth)
		if err != nil {
			return nil, 0, err
		}

		node = expanded
	}

	if trace != nil {
		trace.Steps = append(trace.Steps, Render(node))
	}

	ev.logger.TraceContext(
		ctx,
		"reduce start",
		slog.Int("max_steps", ev.opts.maxSteps),
	)

	for steps := 0; ; steps++ {
		next, ok := Step(node)
		if !ok {
			return node, steps, nil
		}

		if steps >= ev.opts.maxSteps {
			return nil, steps, ErrNonTermination.With(
				slog.Int("max_steps", ev.opts.maxSteps),
			)
		}

		node = next

		if trace != nil {
			trace.Steps = append(trace.Steps, Render(node))
		}
	}
}

// EvalString parses input and reduces it to normal form.
// It fails with *LexError, *ParseError, or ErrNonTermination.
func EvalString(ctx context.Context, input string, opts ...Option) (Node, error) {
	ev := New(opts...)

	node, err := parseStringCached(ctx, ev, input)
	if err != nil {
		return nil, err
	}

	return ev.Evaluate(ctx, node)
}

// EvalStringWithSteps parses input and reduces it to normal form,
// recording every intermediate rendering. It fails the same way as
// [EvalString].
func EvalStringWithSteps(
	ctx context.Context,
	input string,
	opts ...Option,
) (*Trace, error) {
	ev := New(opts...)

	node, err := parseStringCached(ctx, ev, input)
	if err != nil {
		return nil, err
	}

	return ev.EvaluateWithSteps(ctx, node)
}
