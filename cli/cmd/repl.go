package cmd

import (
	"context"

	"github.com/ardnew/lam/cli/cmd/repl"
	"github.com/ardnew/lam/lang"
	"github.com/ardnew/lam/log"
)

// Repl starts the interactive session.
type Repl struct {
	MaxSteps  int  `help:"Maximum beta reductions before giving up" default:"1000"`
	NoPrelude bool `help:"Start without the built-in definitions"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	defs, err := loadDefs(ctx, r.NoPrelude, lang.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, defs, cacheDir, r.MaxSteps, log.Default())
}
