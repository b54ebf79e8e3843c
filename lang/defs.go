package lang

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
)

// Defs is an ordered table of named terms. Names defined here are
// expanded wherever they occur free in an input term before the term
// is evaluated; bound occurrences are left alone, so lexical scoping
// always wins over the table.
//
// Defs is not safe for concurrent mutation; share a table read-only or
// [Defs.Clone] it per writer.
type Defs struct {
	names []string
	terms map[string]Node
}

// NewDefs returns an empty definition table.
func NewDefs() *Defs {
	return &Defs{terms: make(map[string]Node)}
}

// Define binds name to term. Redefining an existing name replaces its
// term and keeps its position in the table order. The name must be a
// valid identifier: a letter optionally followed by letters and digits.
func (d *Defs) Define(name string, term Node) error {
	if !validName(name) {
		return ErrInvalidDefName.With(slog.String("name", name))
	}

	if _, exists := d.terms[name]; !exists {
		d.names = append(d.names, name)
	}

	d.terms[name] = term

	return nil
}

// DefineString parses src and binds name to the resulting term.
func (d *Defs) DefineString(
	ctx context.Context,
	name, src string,
	opts ...Option,
) error {
	term, err := ParseString(ctx, src, opts...)
	if err != nil {
		return err
	}

	return d.Define(name, term)
}

// Lookup retrieves the term bound to name.
// Returns (nil, false) if name is not defined.
func (d *Defs) Lookup(name string) (Node, bool) {
	term, ok := d.terms[name]

	return term, ok
}

// Names returns the defined names in definition order.
func (d *Defs) Names() []string {
	names := make([]string, len(d.names))
	copy(names, d.names)

	return names
}

// Len returns the number of definitions.
func (d *Defs) Len() int { return len(d.names) }

// Clone returns an independent copy of the table. The terms themselves
// are immutable and shared.
func (d *Defs) Clone() *Defs {
	clone := &Defs{
		names: make([]string, len(d.names)),
		terms: make(map[string]Node, len(d.terms)),
	}

	copy(clone.names, d.names)

	for name, term := range d.terms {
		clone.terms[name] = term
	}

	return clone
}

// Expand replaces every free occurrence of a defined name in node with
// its term, repeating until no defined name remains free. Each pass
// substitutes every currently free defined name once; maxDepth bounds
// the number of passes so mutually recursive definitions fail with
// ErrMaxDepthExceeded instead of looping.
func (d *Defs) Expand(node Node, maxDepth int) (Node, error) {
	for depth := 0; ; depth++ {
		pending := d.freeDefined(node)
		if len(pending) == 0 {
			return node, nil
		}

		if depth >= maxDepth {
			return nil, ErrMaxDepthExceeded.With(
				slog.Int("max_depth", maxDepth),
				slog.String("pending", strings.Join(pending, ", ")),
			)
		}

		for _, name := range pending {
			node = Substitute(node, name, d.terms[name])
		}
	}
}

// freeDefined returns the defined names free in node, in table order.
func (d *Defs) freeDefined(node Node) []string {
	free := FreeNames(node)

	var names []string

	for _, name := range d.names {
		if _, ok := free[name]; ok {
			names = append(names, name)
		}
	}

	return names
}

// validName reports whether name is a lexer identifier.
func validName(name string) bool {
	if name == "" || !isLetter(name[0]) {
		return false
	}

	for i := 1; i < len(name); i++ {
		if !isLetter(name[i]) && !isDigit(name[i]) {
			return false
		}
	}

	return true
}

// ParseDefs reads a YAML document mapping names to term source text
// and returns the resulting table, preserving document order.
func ParseDefs(ctx context.Context, r io.Reader, opts ...Option) (*Defs, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "defs"))
	}

	var doc yaml.MapSlice

	// Duplicate keys are caught below so the error carries the name.
	err = yaml.UnmarshalContext(ctx, data, &doc, yaml.AllowDuplicateMapKey())
	if err != nil {
		return nil, ErrInvalidDefs.Wrap(err)
	}

	defs := NewDefs()

	for _, item := range doc {
		name, ok := item.Key.(string)
		if !ok {
			return nil, ErrInvalidDefName.With(
				slog.String("name", fmt.Sprint(item.Key)),
			)
		}

		src, ok := item.Value.(string)
		if !ok {
			return nil, ErrInvalidDefs.With(
				slog.String("name", name),
				slog.String("issue", "value is not a string"),
			)
		}

		if _, exists := defs.terms[name]; exists {
			return nil, ErrDuplicateDef.With(slog.String("name", name))
		}

		if err := defs.DefineString(ctx, name, src, opts...); err != nil {
			return nil, WrapError(err).With(slog.String("name", name))
		}
	}

	return defs, nil
}

// FormatYAML writes the table as a YAML document mapping names to the
// canonical rendering of their terms, in definition order.
func (d *Defs) FormatYAML(ctx context.Context, w io.Writer) error {
	doc := make(yaml.MapSlice, 0, len(d.names))

	for _, name := range d.names {
		doc = append(doc, yaml.MapItem{Key: name, Value: Render(d.terms[name])})
	}

	data, err := yaml.MarshalContext(ctx, doc)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// preludeSource lists the built-in definitions: Church booleans and
// numerals, arithmetic, pairs, and the fixed-point combinator.
//
//nolint:gochecknoglobals
var preludeSource = []struct {
	name string
	src  string
}{
	{"id", `\x.x`},
	{"const", `\x.\y.x`},
	{"true", `\t.\f.t`},
	{"false", `\t.\f.f`},
	{"not", `\p.p false true`},
	{"and", `\p.\q.p q false`},
	{"or", `\p.\q.p true q`},
	{"zero", `\f.\x.x`},
	{"one", `\f.\x.f x`},
	{"two", `\f.\x.f (f x)`},
	{"three", `\f.\x.f (f (f x))`},
	{"succ", `\n.\f.\x.f (n f x)`},
	{"plus", `\m.\n.\f.\x.m f (n f x)`},
	{"mult", `\m.\n.\f.m (n f)`},
	{"iszero", `\n.n (\x.false) true`},
	{"pair", `\x.\y.\f.f x y`},
	{"fst", `\p.p (\x.\y.x)`},
	{"snd", `\p.p (\x.\y.y)`},
	{"fix", `\f.(\x.f (x x)) (\x.f (x x))`},
}

// prelude builds the shared prelude table exactly once. The sources
// are literals, so a parse failure here is a programming error.
//
//nolint:gochecknoglobals
var prelude = sync.OnceValue(
	func() *Defs {
		defs := NewDefs()

		for _, def := range preludeSource {
			term, err := ParseString(context.Background(), def.src)
			if err != nil {
				panic("lang: invalid prelude definition " + def.name + ": " + err.Error())
			}

			if err := defs.Define(def.name, term); err != nil {
				panic("lang: invalid prelude name " + def.name)
			}
		}

		return defs
	},
)

// Prelude returns a copy of the built-in definition table. Callers may
// extend or redefine entries without affecting other callers.
func Prelude() *Defs {
	return prelude().Clone()
}
