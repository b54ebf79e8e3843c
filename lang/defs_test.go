package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestDefs_Define(t *testing.T) {
	defs := NewDefs()

	if err := defs.Define("id", NewAbs("x", NewVar("x"))); err != nil {
		t.Fatalf("define error: %v", err)
	}

	term, ok := defs.Lookup("id")
	if !ok {
		t.Fatal("expected id to be defined")
	}

	if got := Render(term); got != `(λx.x)` {
		t.Errorf("lookup returned %s", got)
	}

	if _, ok := defs.Lookup("missing"); ok {
		t.Error("expected missing name to be absent")
	}
}

func TestDefs_RedefineKeepsOrder(t *testing.T) {
	defs := NewDefs()

	for _, name := range []string{"a", "b", "c"} {
		if err := defs.Define(name, NewVar("x")); err != nil {
			t.Fatalf("define %s: %v", name, err)
		}
	}

	if err := defs.Define("a", NewVar("y")); err != nil {
		t.Fatalf("redefine a: %v", err)
	}

	names := defs.Names()
	want := []string{"a", "b", "c"}

	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}

	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, names)
		}
	}

	term, _ := defs.Lookup("a")
	if got := Render(term); got != "y" {
		t.Errorf("redefined term is %s, expected y", got)
	}
}

func TestDefs_InvalidNames(t *testing.T) {
	defs := NewDefs()

	for _, name := range []string{"", "1x", "x-y", "x y", "λ"} {
		if err := defs.Define(name, NewVar("x")); !errors.Is(err, ErrInvalidDefName) {
			t.Errorf("name %q: expected ErrInvalidDefName, got %v", name, err)
		}
	}
}

func TestDefs_Clone(t *testing.T) {
	defs := NewDefs()
	if err := defs.Define("a", NewVar("x")); err != nil {
		t.Fatalf("define error: %v", err)
	}

	clone := defs.Clone()
	if err := clone.Define("b", NewVar("y")); err != nil {
		t.Fatalf("define error: %v", err)
	}

	if defs.Len() != 1 {
		t.Errorf("original grew to %d entries", defs.Len())
	}

	if clone.Len() != 2 {
		t.Errorf("clone has %d entries, expected 2", clone.Len())
	}
}

func TestDefs_Expand(t *testing.T) {
	ctx := context.Background()

	defs := NewDefs()
	if err := defs.DefineString(ctx, "id", `\x.x`); err != nil {
		t.Fatalf("define error: %v", err)
	}

	if err := defs.DefineString(ctx, "twice", `\f.\x.f (f x)`); err != nil {
		t.Fatalf("define error: %v", err)
	}

	node, err := defs.Expand(mustParse(t, "twice id"), DefaultExpandDepth)
	if err != nil {
		t.Fatalf("expand error: %v", err)
	}

	want := `(λf.(λx.f (f x))) (λx.x)`
	if got := Render(node); got != want {
		t.Errorf("expanded to %s, expected %s", got, want)
	}
}

func TestDefs_ExpandBoundNamesUntouched(t *testing.T) {
	ctx := context.Background()

	defs := NewDefs()
	if err := defs.DefineString(ctx, "id", `\x.x`); err != nil {
		t.Fatalf("define error: %v", err)
	}

	// A binder shadowing a defined name suppresses its expansion.
	node, err := defs.Expand(mustParse(t, `\id.id`), DefaultExpandDepth)
	if err != nil {
		t.Fatalf("expand error: %v", err)
	}

	if got := Render(node); got != `(λid.id)` {
		t.Errorf("expanded to %s, expected (λid.id)", got)
	}
}

func TestDefs_ExpandDepthExceeded(t *testing.T) {
	ctx := context.Background()

	defs := NewDefs()
	if err := defs.DefineString(ctx, "a", "b"); err != nil {
		t.Fatalf("define error: %v", err)
	}

	if err := defs.DefineString(ctx, "b", "a"); err != nil {
		t.Fatalf("define error: %v", err)
	}

	_, err := defs.Expand(mustParse(t, "a"), 4)
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("expected ErrMaxDepthExceeded, got %v", err)
	}
}

func TestPrelude(t *testing.T) {
	defs := Prelude()

	for _, name := range []string{"id", "true", "false", "zero", "succ", "plus", "fix"} {
		if _, ok := defs.Lookup(name); !ok {
			t.Errorf("expected prelude to define %q", name)
		}
	}

	// The returned table is a copy; extending it does not leak into
	// later calls.
	if err := defs.Define("extra", NewVar("x")); err != nil {
		t.Fatalf("define error: %v", err)
	}

	if _, ok := Prelude().Lookup("extra"); ok {
		t.Error("prelude copy leaked a caller definition")
	}
}

func TestPrelude_Evaluation(t *testing.T) {
	tests := []struct {
		name string
		term string
		want string
	}{
		{
			name: "boolean and",
			term: "and true false",
			want: "false",
		},
		{
			name: "boolean not",
			term: "not false",
			want: "true",
		},
		{
			name: "iszero of zero",
			term: "iszero zero",
			want: "true",
		},
		{
			name: "successor of one",
			term: "succ one",
			want: "two",
		},
		{
			name: "one plus two",
			term: "plus one two",
			want: "three",
		},
		{
			name: "two times two",
			term: "mult two two",
			want: `\f.\x.f (f (f (f x)))`,
		},
		{
			name: "second of a pair",
			term: "snd (pair a b)",
			want: "b",
		},
	}

	ctx := context.Background()
	defs := Prelude()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvalString(ctx, tt.term, WithDefs(defs))
			if err != nil {
				t.Fatalf("evaluate error: %v", err)
			}

			// The expected form is itself reduced through the same
			// table so numerals and booleans compare structurally.
			want, err := EvalString(ctx, tt.want, WithDefs(defs))
			if err != nil {
				t.Fatalf("evaluate expected form: %v", err)
			}

			if !got.Equal(want) {
				t.Errorf("evaluated to %s, expected %s", Render(got), Render(want))
			}
		})
	}
}

func TestParseDefs(t *testing.T) {
	doc := strings.Join([]string{
		`id: '\x.x'`,
		`self: 'id id'`,
	}, "\n")

	defs, err := ParseDefs(context.Background(), strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse defs error: %v", err)
	}

	names := defs.Names()
	if len(names) != 2 || names[0] != "id" || names[1] != "self" {
		t.Fatalf("unexpected names: %v", names)
	}

	term, _ := defs.Lookup("self")
	if got := Render(term); got != "id id" {
		t.Errorf("self parsed as %s", got)
	}
}

func TestParseDefs_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "duplicate name",
			doc:  "a: x\na: y",
			want: ErrDuplicateDef,
		},
		{
			name: "duplicate after valid entries",
			doc:  "id: '\\x.x'\nb: y\nid: '\\z.z'",
			want: ErrDuplicateDef,
		},
		{
			name: "invalid name",
			doc:  `1x: 'y'`,
			want: ErrInvalidDefName,
		},
		{
			name: "non-string value",
			doc:  "a:\n  - x",
			want: ErrInvalidDefs,
		},
		{
			name: "malformed document",
			doc:  ":\n:::",
			want: ErrInvalidDefs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDefs(context.Background(), strings.NewReader(tt.doc))
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestDefs_FormatYAMLRoundTrip(t *testing.T) {
	ctx := context.Background()

	defs := NewDefs()
	if err := defs.DefineString(ctx, "id", `\x.x`); err != nil {
		t.Fatalf("define error: %v", err)
	}

	if err := defs.DefineString(ctx, "app", `(\x.x) y`); err != nil {
		t.Fatalf("define error: %v", err)
	}

	var buf strings.Builder
	if err := defs.FormatYAML(ctx, &buf); err != nil {
		t.Fatalf("format error: %v", err)
	}

	again, err := ParseDefs(ctx, strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("reparse error: %v", err)
	}

	if again.Len() != defs.Len() {
		t.Fatalf("expected %d entries, got %d", defs.Len(), again.Len())
	}

	for _, name := range defs.Names() {
		a, _ := defs.Lookup(name)

		b, ok := again.Lookup(name)
		if !ok {
			t.Errorf("name %q lost in round trip", name)

			continue
		}

		if !a.Equal(b) {
			t.Errorf("%q changed: %s vs %s", name, Render(a), Render(b))
		}
	}
}
