package lang

import "strconv"

// Kind identifies the lexical class of a token.
type Kind int

const (
	// KindLambda is the abstraction marker, written `\` or `λ`.
	KindLambda Kind = iota

	// KindVariable is an identifier: a letter optionally followed by
	// letters and digits.
	KindVariable

	// KindDot separates an abstraction's parameter from its body.
	KindDot

	// KindLParen is an opening parenthesis.
	KindLParen

	// KindRParen is a closing parenthesis.
	KindRParen

	// KindEOF terminates every token sequence.
	KindEOF
)

// String returns a human-readable name for the token kind.
func (k Kind) String() string {
	switch k {
	case KindLambda:
		return "lambda"
	case KindVariable:
		return "variable"
	case KindDot:
		return "dot"
	case KindLParen:
		return "lparen"
	case KindRParen:
		return "rparen"
	case KindEOF:
		return "eof"
	default:
		return "unknown"
	}
}

// Token is a single lexical unit of input.
type Token struct {
	// Kind is the lexical class of the token.
	Kind Kind
	// Name is the identifier text for KindVariable tokens, empty otherwise.
	Name string
	// Offset is the byte offset of the token's first character in the
	// source. It is used only for diagnostics.
	Offset int
}

// Literal returns the canonical source text of the token.
// EOF tokens have no literal form and return the empty string.
func (t Token) Literal() string {
	switch t.Kind {
	case KindLambda:
		return `\`
	case KindVariable:
		return t.Name
	case KindDot:
		return "."
	case KindLParen:
		return "("
	case KindRParen:
		return ")"
	default:
		return ""
	}
}

// String describes the token for diagnostics.
func (t Token) String() string {
	if t.Kind == KindVariable {
		return "variable " + strconv.Quote(t.Name)
	}

	return t.Kind.String()
}
