package lang

import (
	"context"
	"errors"
	"testing"
)

func TestIsFree(t *testing.T) {
	tests := []struct {
		name string
		term string
		free map[string]bool
	}{
		{
			name: "variable",
			term: "x",
			free: map[string]bool{"x": true, "y": false},
		},
		{
			name: "binder shadows",
			term: `\x.x`,
			free: map[string]bool{"x": false},
		},
		{
			name: "free under binder",
			term: `\x.y`,
			free: map[string]bool{"x": false, "y": true},
		},
		{
			name: "mixed occurrences",
			term: `(\x.x y) x`,
			free: map[string]bool{"x": true, "y": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := mustParse(t, tt.term)

			for name, want := range tt.free {
				if got := IsFree(name, node); got != want {
					t.Errorf("IsFree(%q, %s) = %v, expected %v",
						name, Render(node), got, want)
				}
			}
		})
	}
}

func TestFreshName(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		avoid []Node
		want  string
	}{
		{
			name:  "no collision",
			base:  "x",
			avoid: []Node{NewVar("y")},
			want:  "x",
		},
		{
			name:  "one collision",
			base:  "x",
			avoid: []Node{NewApp(NewVar("x"), NewVar("y"))},
			want:  "x'",
		},
		{
			name: "chained collisions",
			base: "x",
			avoid: []Node{
				NewVar("x"),
				NewAbs("z", NewApp(NewVar("x'"), NewVar("z"))),
			},
			want: "x''",
		},
		{
			name:  "bound occurrences ignored",
			base:  "x",
			avoid: []Node{NewAbs("x", NewVar("x"))},
			want:  "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FreshName(tt.base, tt.avoid...); got != tt.want {
				t.Errorf("FreshName(%q) = %q, expected %q", tt.base, got, tt.want)
			}
		})
	}
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name string
		term string
		old  string
		repl string
		want string
	}{
		{
			name: "free variable",
			term: "x",
			old:  "x",
			repl: "y",
			want: "y",
		},
		{
			name: "unrelated variable",
			term: "z",
			old:  "x",
			repl: "y",
			want: "z",
		},
		{
			name: "shadowed binder untouched",
			term: `\x.x`,
			old:  "x",
			repl: "y",
			want: `(λx.x)`,
		},
		{
			name: "under binder",
			term: `\z.x z`,
			old:  "x",
			repl: "y",
			want: `(λz.y z)`,
		},
		{
			name: "capture avoided by renaming",
			term: `\y.x`,
			old:  "x",
			repl: "y",
			want: `(λy'.y)`,
		},
		{
			name: "capture avoided in application body",
			term: `\y.x y`,
			old:  "x",
			repl: "y z",
			want: `(λy'.y z y')`,
		},
		{
			name: "no rename when target absent",
			term: `\y.z`,
			old:  "x",
			repl: "y",
			want: `(λy.z)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := mustParse(t, tt.term)
			repl := mustParse(t, tt.repl)

			got := Render(Substitute(node, tt.old, repl))
			if got != tt.want {
				t.Errorf("substitution produced %s, expected %s", got, tt.want)
			}
		})
	}
}

func TestStep(t *testing.T) {
	tests := []struct {
		name    string
		term    string
		want    string
		reduced bool
	}{
		{
			name:    "variable is normal",
			term:    "x",
			reduced: false,
		},
		{
			name:    "stuck application is normal",
			term:    "x y",
			reduced: false,
		},
		{
			name:    "beta redex",
			term:    `(\x.x) y`,
			want:    "y",
			reduced: true,
		},
		{
			name:    "leftmost redex first",
			term:    `((\x.x) a) ((\y.y) b)`,
			want:    `a ((λy.y) b)`,
			reduced: true,
		},
		{
			name:    "reduces under binder",
			term:    `\z.(\x.x) z`,
			want:    `(λz.z)`,
			reduced: true,
		},
		{
			name:    "argument reduced when head stuck",
			term:    `f ((\x.x) y)`,
			want:    "f y",
			reduced: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := mustParse(t, tt.term)

			next, ok := Step(node)
			if ok != tt.reduced {
				t.Fatalf("Step reduced = %v, expected %v", ok, tt.reduced)
			}

			if !tt.reduced {
				if !next.Equal(node) {
					t.Errorf("normal form was rewritten to %s", Render(next))
				}

				return
			}

			if got := Render(next); got != tt.want {
				t.Errorf("stepped to %s, expected %s", got, tt.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		term string
		want string
	}{
		{
			name: "identity application",
			term: `(\x.x) y`,
			want: "y",
		},
		{
			name: "normal form unchanged",
			term: `\x.x`,
			want: `(λx.x)`,
		},
		{
			name: "nested redexes",
			term: `(\f.\x.f x) (\y.y) z`,
			want: "z",
		},
		{
			name: "successor of church one",
			term: `(\n.\f.\x.f (n f x)) (\f.\x.f x)`,
			want: `(λf.(λx.f (f x)))`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := EvalString(context.Background(), tt.term)
			if err != nil {
				t.Fatalf("evaluate error: %v", err)
			}

			if got := Render(node); got != tt.want {
				t.Errorf("evaluated to %s, expected %s", got, tt.want)
			}
		})
	}
}

func TestEvaluate_AlphaInvariance(t *testing.T) {
	// Renaming bound variables in the input must not change the result
	// of reduction for terms whose normal form mentions only free names.
	a, err := EvalString(context.Background(), `(\x.x) ((\y.y) z)`)
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	b, err := EvalString(context.Background(), `(\u.u) ((\v.v) z)`)
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	if !a.Equal(b) {
		t.Errorf("results differ: %s vs %s", Render(a), Render(b))
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	ev := New()
	ctx := context.Background()

	first, err := ev.Evaluate(ctx, mustParse(t, `(\x.x) (\y.y)`))
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	second, err := ev.Evaluate(ctx, first)
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	if !first.Equal(second) {
		t.Errorf("normal form changed: %s vs %s", Render(first), Render(second))
	}
}

func TestEvaluate_NonTermination(t *testing.T) {
	tests := []struct {
		name string
		term string
	}{
		{name: "omega", term: `(\x.x x) (\x.x x)`},
		{name: "fixed point of identity", term: `(\f.(\x.f (x x)) (\x.f (x x))) (\g.g)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EvalString(context.Background(), tt.term, WithMaxSteps(50))
			if !errors.Is(err, ErrNonTermination) {
				t.Fatalf("expected ErrNonTermination, got %v", err)
			}
		})
	}
}

func TestEvaluate_StepBudgetBoundary(t *testing.T) {
	// A term needing exactly n steps succeeds with a budget of n.
	node, err := EvalString(context.Background(), `(\x.x) y`, WithMaxSteps(1))
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	if got := Render(node); got != "y" {
		t.Errorf("evaluated to %s, expected y", got)
	}

	_, err = EvalString(context.Background(), `(\x.x) ((\y.y) z)`, WithMaxSteps(1))
	if !errors.Is(err, ErrNonTermination) {
		t.Fatalf("expected ErrNonTermination, got %v", err)
	}
}

func TestEvaluateWithSteps(t *testing.T) {
	trace, err := EvalStringWithSteps(context.Background(), `(\x.x) ((\y.y) z)`)
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	want := []string{
		`(λx.x) ((λy.y) z)`,
		`(λx.x) z`,
		`z`,
	}

	if len(trace.Steps) != len(want) {
		t.Fatalf("expected %d snapshots, got %d: %v", len(want), len(trace.Steps), trace.Steps)
	}

	for i, step := range want {
		if trace.Steps[i] != step {
			t.Errorf("snapshot %d: expected %s, got %s", i, step, trace.Steps[i])
		}
	}

	if trace.Result != want[len(want)-1] {
		t.Errorf("result %s does not match final snapshot %s",
			trace.Result, want[len(want)-1])
	}
}

func TestEvaluateWithSteps_NormalForm(t *testing.T) {
	// A term already in normal form yields a single snapshot.
	trace, err := EvalStringWithSteps(context.Background(), `\x.x`)
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	if len(trace.Steps) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(trace.Steps))
	}

	if trace.Steps[0] != trace.Result {
		t.Errorf("snapshot %s does not match result %s", trace.Steps[0], trace.Result)
	}
}

func TestEvaluateWithSteps_NoPartialTrace(t *testing.T) {
	trace, err := EvalStringWithSteps(
		context.Background(),
		`(\x.x x) (\x.x x)`,
		WithMaxSteps(10),
	)
	if !errors.Is(err, ErrNonTermination) {
		t.Fatalf("expected ErrNonTermination, got %v", err)
	}

	if trace != nil {
		t.Errorf("expected nil trace on failure, got %d snapshots", len(trace.Steps))
	}
}
