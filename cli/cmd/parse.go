package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/lam/lang"
	"github.com/ardnew/lam/log"
)

// Parse parses a lambda term and prints its canonical rendering without
// reducing it.
type Parse struct {
	Expr      []string `arg:"" help:"Expression to parse (joined with spaces)"   name:"expr" optional:""`
	Source    string   `       help:"Expression source file or '-' for stdin"                            default:"-" short:"f"`
	Tree      bool     `       help:"Print the syntax tree instead of the canonical form"`
	Expand    bool     `       help:"Expand defined names before printing"                                           short:"x"`
	Indent    int      `       help:"Indent width for tree output"                                       default:"2"`
	NoPrelude bool     `       help:"Start without the built-in definitions"`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	input, err := readExpr(p.Expr, p.Source)
	if err != nil {
		return err
	}

	node, err := lang.ParseString(ctx, input, lang.WithLogger(log.Default()))
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "parse"))
	}

	if p.Expand {
		defs, err := loadDefs(ctx, p.NoPrelude, lang.WithLogger(log.Default()))
		if err != nil {
			return err
		}

		node, err = defs.Expand(node, lang.DefaultExpandDepth)
		if err != nil {
			return lang.WrapError(err).
				With(slog.String("command", "parse"))
		}
	}

	if p.Tree {
		var b strings.Builder

		writeTree(&b, node, 0, p.Indent)

		_, err = fmt.Fprint(os.Stdout, b.String())
		if err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		return nil
	}

	fmt.Println(lang.Render(node))

	return nil
}

// writeTree prints one node per line, children indented beneath their
// parent.
func writeTree(b *strings.Builder, node lang.Node, depth, indent int) {
	pad := strings.Repeat(" ", depth*indent)

	switch n := node.(type) {
	case *lang.Var:
		fmt.Fprintf(b, "%svar %s\n", pad, n.Name)

	case *lang.Abs:
		fmt.Fprintf(b, "%sabs %s\n", pad, n.Param)
		writeTree(b, n.Body, depth+1, indent)

	case *lang.App:
		fmt.Fprintf(b, "%sapp\n", pad)
		writeTree(b, n.Fn, depth+1, indent)
		writeTree(b, n.Arg, depth+1, indent)
	}
}
