package lang

import "strings"

// Render returns the canonical text form of a term. It is total and
// deterministic: variables print as their name, abstractions as
// `(λ<param>.<body>)`, and applications as `<fn> <arg>` with the
// argument parenthesized unless it is a bare variable.
func Render(node Node) string {
	var buf strings.Builder

	render(&buf, node)

	return buf.String()
}

func render(buf *strings.Builder, node Node) {
	switch n := node.(type) {
	case *Var:
		buf.WriteString(n.Name)

	case *Abs:
		buf.WriteString("(λ")
		buf.WriteString(n.Param)
		buf.WriteByte('.')
		render(buf, n.Body)
		buf.WriteByte(')')

	case *App:
		render(buf, n.Fn)
		buf.WriteByte(' ')

		// A bare variable argument is unambiguous without parentheses,
		// and an abstraction already prints its own. An application
		// argument must be grouped so `a (b c)` is not read as
		// `(a b) c`.
		if arg, ok := n.Arg.(*App); ok {
			buf.WriteByte('(')
			render(buf, arg)
			buf.WriteByte(')')
		} else {
			render(buf, n.Arg)
		}
	}
}
