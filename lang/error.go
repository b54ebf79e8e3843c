package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrNonTermination   = NewError("no normal form within step budget")
	ErrMaxDepthExceeded = NewError("maximum definition expansion depth exceeded")
	ErrDuplicateDef     = NewError("duplicate definition")
	ErrInvalidDefName   = NewError("invalid definition name")
	ErrDefNotFound      = NewError("definition not found")
	ErrReadInput        = NewError("failed to read input")
	ErrInvalidDefs      = NewError("invalid definitions document")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is a sentinel with the same base message.
// Sentinels keep their identity through Wrap and With, which construct
// new values.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// LexError reports a character that matches no token shape.
type LexError struct {
	// Char is the offending character.
	Char rune
	// Offset is the byte offset of Char in the source.
	Offset int
	// Source is the original input, used to render a caret snippet.
	// It may be empty, in which case only the offset is reported.
	Source string
}

// Error implements the error interface.
func (e *LexError) Error() string {
	var buf strings.Builder

	buf.WriteString("unexpected character ")
	buf.WriteString(strconv.QuoteRune(e.Char))
	buf.WriteString(" at offset ")
	buf.WriteString(strconv.Itoa(e.Offset))

	if snip := snippet(e.Source, e.Offset); snip != "" {
		buf.WriteString(":\n")
		buf.WriteString(snip)
	}

	return buf.String()
}

// ParseError reports a token sequence that does not match the grammar.
type ParseError struct {
	// Token is the unexpected token.
	Token Token
	// Expected describes what the parser required instead.
	Expected string
	// Source is the original input, used to render a caret snippet.
	// It may be empty, in which case only the offset is reported.
	Source string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var buf strings.Builder

	buf.WriteString("unexpected ")
	buf.WriteString(e.Token.String())
	buf.WriteString(" at offset ")
	buf.WriteString(strconv.Itoa(e.Token.Offset))
	buf.WriteString(", expected ")
	buf.WriteString(e.Expected)

	if snip := snippet(e.Source, e.Token.Offset); snip != "" {
		buf.WriteString(":\n")
		buf.WriteString(snip)
	}

	return buf.String()
}

// snippet renders the source line containing offset with a caret marker
// pointing at the offending column, in the style:
//
//	  2 | \x.x ?
//	         ^
//
// It returns the empty string when source is empty or offset is out of
// bounds.
func snippet(source string, offset int) string {
	if source == "" || offset < 0 || offset > len(source) {
		return ""
	}

	// Locate the line containing offset.
	lineStart := strings.LastIndexByte(source[:min(offset, len(source))], '\n') + 1

	lineEnd := strings.IndexByte(source[lineStart:], '\n')
	if lineEnd < 0 {
		lineEnd = len(source)
	} else {
		lineEnd += lineStart
	}

	line := 1 + strings.Count(source[:lineStart], "\n")
	col := offset - lineStart

	var buf strings.Builder

	num := strconv.Itoa(line)

	buf.WriteString("  ")
	buf.WriteString(num)
	buf.WriteString(" | ")
	buf.WriteString(source[lineStart:lineEnd])
	buf.WriteByte('\n')

	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	buf.WriteString(strings.Repeat(" ", len(num)+5+col))
	buf.WriteByte('^')

	return buf.String()
}
