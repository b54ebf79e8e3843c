package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/lam/lang"
	"github.com/ardnew/lam/log"
)

// Eval reduces a lambda term to normal form and prints the result.
type Eval struct {
	Expr      []string `arg:"" help:"Expression to evaluate (joined with spaces)" name:"expr" optional:""`
	Source    string   `       help:"Expression source file or '-' for stdin"                             default:"-"    short:"f"`
	MaxSteps  int      `       help:"Maximum beta reductions before giving up"                            default:"1000"`
	Trace     bool     `       help:"Print every reduction step"                                                         short:"t"`
	Output    string   `       help:"Output format (json and yaml include steps)"                         default:"text"           enum:"text,json,yaml"`
	Indent    int      `       help:"Indent width for json output"                                        default:"2"`
	NoPrelude bool     `       help:"Start without the built-in definitions"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	input, err := readExpr(e.Expr, e.Source)
	if err != nil {
		return err
	}

	defs, err := loadDefs(ctx, e.NoPrelude, lang.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	opts := []lang.Option{
		lang.WithMaxSteps(e.MaxSteps),
		lang.WithDefs(defs),
		lang.WithLogger(log.Default()),
	}

	// Structured output formats carry the step list, so they always take
	// the traced path.
	if e.Trace || e.Output != "text" {
		trace, err := lang.EvalStringWithSteps(ctx, input, opts...)
		if err != nil {
			return lang.WrapError(err).
				With(slog.String("command", "eval"))
		}

		return e.write(ctx, trace)
	}

	result, err := lang.EvalString(ctx, input, opts...)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "eval"))
	}

	fmt.Println(lang.Render(result))

	return nil
}

// write prints the trace to stdout in the selected format.
func (e *Eval) write(ctx context.Context, trace *lang.Trace) error {
	var err error

	switch e.Output {
	case "json":
		err = trace.FormatJSON(ctx, os.Stdout, e.Indent)
	case "yaml":
		err = trace.FormatYAML(ctx, os.Stdout, e.Indent)
	default:
		err = trace.Format(ctx, os.Stdout)
	}

	if err != nil {
		return ErrWriteOutput.
			With(slog.String("format", e.Output)).
			Wrap(err)
	}

	return nil
}
