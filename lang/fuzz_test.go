package lang

import (
	"context"
	"errors"
	"testing"
)

func FuzzParseString(f *testing.F) {
	seeds := []string{
		`\x.x`,
		`λx.λy.x y`,
		`(\x.x x) (\x.x x)`,
		`\f.(\x.f (x x)) (\x.f (x x))`,
		`f (x y) z`,
		`((x))`,
		``,
		`\x.`,
		`)(`,
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		ctx := context.Background()

		node, err := ParseString(ctx, input)
		if err != nil {
			// Failures must be one of the two diagnostic kinds.
			lexErr := &LexError{}
			parseErr := &ParseError{}

			if !errors.As(err, &lexErr) && !errors.As(err, &parseErr) {
				t.Fatalf("unexpected error type %T: %v", err, err)
			}

			return
		}

		// Accepted input must survive a render and reparse unchanged.
		again, err := ParseString(ctx, Render(node))
		if err != nil {
			t.Fatalf("rendering of %q does not reparse: %v", input, err)
		}

		if !node.Equal(again) {
			t.Fatalf("reparse of %q changed structure: %s vs %s",
				input, Render(node), Render(again))
		}
	})
}
