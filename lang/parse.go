package lang

import (
	"context"
	"log/slog"
)

// ParseString parses input and returns the root of its term tree.
// It fails with *LexError or *ParseError. Results for default options
// are cached, keyed by a hash of the source; see [ClearCache].
func ParseString(ctx context.Context, input string, opts ...Option) (Node, error) {
	ev := New(opts...)

	ev.logger.TraceContext(
		ctx,
		"parse start",
		slog.Int("source_length", len(input)),
	)

	return parseStringCached(ctx, ev, input)
}

// parseString is the uncached parsing implementation.
func parseString(ctx context.Context, ev *Evaluator, input string) (Node, error) {
	toks, err := NewLexer(input).Tokenize()
	if err != nil {
		return nil, err
	}

	ev.logger.TraceContext(
		ctx,
		"lexer complete",
		slog.Int("token_count", len(toks)),
	)

	p := &parser{toks: toks, source: input}

	node, err := p.parse()
	if err != nil {
		return nil, err
	}

	ev.logger.TraceContext(ctx, "parser complete")

	return node, nil
}

// parser is a recursive-descent parser over an eagerly lexed token
// sequence. The grammar has two nonterminals beyond tokens:
//
//	expression  := application
//	application := atom atom*
//	atom        := lambda variable dot expression
//	             | variable
//	             | lparen expression rparen
type parser struct {
	toks   []Token
	pos    int
	source string
}

// cur returns the current token without consuming it.
// The sequence is EOF-terminated, so pos never runs past the end.
func (p *parser) cur() Token { return p.toks[p.pos] }

// advance consumes and returns the current token.
func (p *parser) advance() Token {
	tok := p.toks[p.pos]
	if tok.Kind != KindEOF {
		p.pos++
	}

	return tok
}

// errExpected constructs a ParseError for the current token.
func (p *parser) errExpected(what string) error {
	return &ParseError{
		Token:    p.cur(),
		Expected: what,
		Source:   p.source,
	}
}

// parse consumes the whole token sequence as a single expression.
func (p *parser) parse() (Node, error) {
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if p.cur().Kind != KindEOF {
		return nil, p.errExpected("end of input")
	}

	return node, nil
}

// parseExpression parses `expression := application`.
func (p *parser) parseExpression() (Node, error) {
	return p.parseApplication()
}

// parseApplication parses a nonempty atom sequence, folding it left to
// right into nested binary applications: `a b c` becomes `(a b) c`.
// The sequence ends at rparen, dot, or end of input, since none of
// those can start an atom.
func (p *parser) parseApplication() (Node, error) {
	node, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		switch p.cur().Kind {
		case KindRParen, KindDot, KindEOF:
			return node, nil
		}

		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}

		node = NewApp(node, arg)
	}
}

// parseAtom parses a single atom: an abstraction, a variable, or a
// parenthesized expression.
func (p *parser) parseAtom() (Node, error) {
	switch tok := p.cur(); tok.Kind {
	case KindLambda:
		p.advance()

		param := p.cur()
		if param.Kind != KindVariable {
			return nil, p.errExpected("parameter name after lambda")
		}

		p.advance()

		if p.cur().Kind != KindDot {
			return nil, p.errExpected("dot after parameter name")
		}

		p.advance()

		// The body recurses into expression, not application, so an
		// abstraction extends as far right as possible: `\x.\y.x y`
		// parses as `\x.(\y.(x y))`.
		body, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		return NewAbs(param.Name, body), nil

	case KindVariable:
		p.advance()

		return NewVar(tok.Name), nil

	case KindLParen:
		p.advance()

		node, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if p.cur().Kind != KindRParen {
			return nil, p.errExpected("closing parenthesis")
		}

		p.advance()

		return node, nil

	default:
		return nil, p.errExpected("lambda, variable, or opening parenthesis")
	}
}
