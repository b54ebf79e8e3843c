package lang

// Node is a term of the untyped lambda calculus: exactly one of [Var],
// [Abs], or [App]. The set of implementations is closed; every
// traversal in this package switches exhaustively over the three
// shapes.
//
// Nodes are immutable. Reduction and substitution return new trees and
// share any subtree they did not touch, so a Node may be retained
// across evaluations and shared between goroutines.
type Node interface {
	// Equal reports structural equality with another term.
	Equal(Node) bool

	// term restricts implementations to this package.
	term()
}

// Var is a variable occurrence.
type Var struct {
	// Name is a nonempty identifier: a letter optionally followed by
	// letters and digits.
	Name string
}

// Abs is an abstraction binding Param over Body.
type Abs struct {
	Param string
	Body  Node
}

// App applies Fn to Arg.
type App struct {
	Fn  Node
	Arg Node
}

func (*Var) term() {}
func (*Abs) term() {}
func (*App) term() {}

// NewVar returns a variable term.
func NewVar(name string) *Var { return &Var{Name: name} }

// NewAbs returns an abstraction binding param over body.
func NewAbs(param string, body Node) *Abs {
	return &Abs{Param: param, Body: body}
}

// NewApp returns the application of fn to arg.
func NewApp(fn, arg Node) *App { return &App{Fn: fn, Arg: arg} }

// Equal reports structural equality with another term.
func (v *Var) Equal(other Node) bool {
	o, ok := other.(*Var)

	return ok && v.Name == o.Name
}

// Equal reports structural equality with another term.
// Bound names are compared literally, not up to alpha conversion.
func (a *Abs) Equal(other Node) bool {
	o, ok := other.(*Abs)

	return ok && a.Param == o.Param && a.Body.Equal(o.Body)
}

// Equal reports structural equality with another term.
func (a *App) Equal(other Node) bool {
	o, ok := other.(*App)

	return ok && a.Fn.Equal(o.Fn) && a.Arg.Equal(o.Arg)
}

// FreeNames returns the set of names occurring free in node.
func FreeNames(node Node) map[string]struct{} {
	free := make(map[string]struct{})
	collectFree(node, make(map[string]int), free)

	return free
}

// collectFree accumulates free names into free; bound tracks how many
// enclosing abstractions currently bind each name.
func collectFree(node Node, bound map[string]int, free map[string]struct{}) {
	switch n := node.(type) {
	case *Var:
		if bound[n.Name] == 0 {
			free[n.Name] = struct{}{}
		}

	case *Abs:
		bound[n.Param]++
		collectFree(n.Body, bound, free)
		bound[n.Param]--

	case *App:
		collectFree(n.Fn, bound, free)
		collectFree(n.Arg, bound, free)
	}
}
