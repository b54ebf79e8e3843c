package lang

import "unicode/utf8"

// lambdaRune is the Greek small letter lambda (U+03BB), accepted as an
// alternative spelling of `\`.
const lambdaRune = 'λ'

// Lexer converts source text into an ordered sequence of tokens.
//
// The zero value is not usable; construct with [NewLexer].
type Lexer struct {
	input string
	pos   int
}

// NewLexer returns a Lexer reading from the given source text.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Next returns the next token in the input, or a KindEOF token once the
// input is exhausted. Characters outside the surface syntax produce a
// *LexError carrying the offending character and its byte offset.
func (l *Lexer) Next() (Token, error) {
	l.skipSpace()

	if l.pos >= len(l.input) {
		return Token{Kind: KindEOF, Offset: l.pos}, nil
	}

	start := l.pos

	switch c := l.input[l.pos]; {
	case c == '\\':
		l.pos++

		return Token{Kind: KindLambda, Offset: start}, nil

	case c == '.':
		l.pos++

		return Token{Kind: KindDot, Offset: start}, nil

	case c == '(':
		l.pos++

		return Token{Kind: KindLParen, Offset: start}, nil

	case c == ')':
		l.pos++

		return Token{Kind: KindRParen, Offset: start}, nil

	case isLetter(c):
		for l.pos < len(l.input) &&
			(isLetter(l.input[l.pos]) || isDigit(l.input[l.pos])) {
			l.pos++
		}

		return Token{
			Kind:   KindVariable,
			Name:   l.input[start:l.pos],
			Offset: start,
		}, nil
	}

	// Multibyte alternatives are decoded only after the single-byte
	// cases miss, keeping the hot path on ASCII.
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	if r == lambdaRune {
		l.pos += size

		return Token{Kind: KindLambda, Offset: start}, nil
	}

	return Token{}, &LexError{
		Char:   r,
		Offset: start,
		Source: l.input,
	}
}

// Tokenize consumes the entire input and returns the full token
// sequence, always terminated by a KindEOF token.
func (l *Lexer) Tokenize() ([]Token, error) {
	var toks []Token

	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}

		toks = append(toks, tok)

		if tok.Kind == KindEOF {
			return toks, nil
		}
	}
}

// skipSpace advances past whitespace between tokens.
func (l *Lexer) skipSpace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.pos++
		default:
			return
		}
	}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
