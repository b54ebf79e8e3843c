package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/lam/lang"
	"github.com/ardnew/lam/log"
)

// Examples runs the built-in annotated example terms, printing every
// reduction step. All examples evaluate against the prelude definitions.
type Examples struct {
	Name     []string `arg:"" help:"Examples to run (all when omitted)" name:"name" optional:""`
	List     bool     `       help:"List example names without running"                         short:"l"`
	MaxSteps int      `       help:"Maximum beta reductions before giving up"                             default:"1000"`
}

type example struct {
	name  string
	about string
	input string
}

//nolint:gochecknoglobals
var examples = []example{
	{
		name:  "identity",
		about: "the simplest redex: apply the identity function",
		input: `(\x.x) y`,
	},
	{
		name:  "self-apply",
		about: "a function applied to itself still terminates here",
		input: `(\x.x x) (\y.y)`,
	},
	{
		name:  "capture",
		about: "substitution renames the bound y to avoid capturing the free y",
		input: `(\x.\y.x) y`,
	},
	{
		name:  "succ",
		about: "the successor of Church numeral one is two",
		input: `succ one`,
	},
	{
		name:  "plus",
		about: "Church addition: one plus two",
		input: `plus one two`,
	},
	{
		name:  "mult",
		about: "Church multiplication: two times two",
		input: `mult two two`,
	},
	{
		name:  "booleans",
		about: "Church booleans compose like any other terms",
		input: `and true (not false)`,
	},
	{
		name:  "pairs",
		about: "projection of the second component of a pair",
		input: `snd (pair a b)`,
	},
	{
		name:  "iszero",
		about: "zero test on the successor of zero",
		input: `iszero (succ zero)`,
	},
}

// Run executes the examples command.
func (e *Examples) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if e.List {
		for _, ex := range examples {
			fmt.Printf("%-12s %s\n", ex.name, ex.about)
		}

		return nil
	}

	selected, err := e.resolve()
	if err != nil {
		return err
	}

	defs := lang.Prelude()

	for i, ex := range selected {
		if i > 0 {
			fmt.Println()
		}

		if err := e.run(ctx, ex, defs); err != nil {
			return err
		}
	}

	return nil
}

// resolve returns the requested examples, or all examples when none were
// named.
func (e *Examples) resolve() ([]example, error) {
	if len(e.Name) == 0 {
		return examples, nil
	}

	selected := make([]example, 0, len(e.Name))

	for _, name := range e.Name {
		found := false

		for _, ex := range examples {
			if ex.name == name {
				selected = append(selected, ex)
				found = true

				break
			}
		}

		if !found {
			return nil, ErrUnknownExample.
				With(slog.String("name", name))
		}
	}

	return selected, nil
}

// run evaluates a single example and prints its annotated trace.
func (e *Examples) run(ctx context.Context, ex example, defs *lang.Defs) error {
	fmt.Printf("%s: %s\n", ex.name, ex.about)
	fmt.Printf("  %s\n", ex.input)

	trace, err := lang.EvalStringWithSteps(
		ctx,
		ex.input,
		lang.WithDefs(defs),
		lang.WithMaxSteps(e.MaxSteps),
		lang.WithLogger(log.Default()),
	)
	if err != nil {
		return lang.WrapError(err).
			With(
				slog.String("command", "examples"),
				slog.String("example", ex.name),
			)
	}

	if err := trace.Format(ctx, os.Stdout); err != nil {
		return ErrWriteOutput.
			With(slog.String("example", ex.name)).
			Wrap(err)
	}

	return nil
}
