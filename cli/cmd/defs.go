package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/lam/lang"
)

// loadDefs builds the definition table for a command invocation. It starts
// from the built-in prelude unless noPrelude is set, then merges every
// definition file carried in ctx in order. Later files redefine earlier
// names without disturbing table order.
func loadDefs(
	ctx context.Context,
	noPrelude bool,
	opts ...lang.Option,
) (*lang.Defs, error) {
	defs := lang.NewDefs()
	if !noPrelude {
		defs = lang.Prelude()
	}

	files := defFilesFrom(ctx)
	if files == nil {
		return defs, nil
	}

	for name, r := range files.Each() {
		parsed, err := lang.ParseDefs(ctx, r, opts...)
		if err != nil {
			return nil, ErrLoadDefs.
				With(slog.String("file", name)).
				Wrap(err)
		}

		for _, defName := range parsed.Names() {
			term, _ := parsed.Lookup(defName)
			if err := defs.Define(defName, term); err != nil {
				return nil, ErrLoadDefs.
					With(slog.String("file", name)).
					Wrap(err)
			}
		}
	}

	return defs, nil
}
