package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles for colorized output. Lip Gloss degrades these to plain text
// when the writer is not a terminal.
//
//nolint:gochecknoglobals
var (
	styleKey      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleString   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleNumber   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleTrue     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleFalse    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleTime     = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	styleDuration = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	styleNull     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true)

	styleLevel = map[Level]lipgloss.Style{
		LevelTrace: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

// levelStyle returns the style for the highest defined level at or
// below the given one.
func levelStyle(level slog.Level) lipgloss.Style {
	switch {
	case level >= slog.Level(LevelError):
		return styleLevel[LevelError]
	case level >= slog.Level(LevelWarn):
		return styleLevel[LevelWarn]
	case level >= slog.Level(LevelInfo):
		return styleLevel[LevelInfo]
	case level >= slog.Level(LevelDebug):
		return styleLevel[LevelDebug]
	default:
		return styleLevel[LevelTrace]
	}
}

// valueStyle returns the style for a resolved attribute value.
func valueStyle(v slog.Value) lipgloss.Style {
	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return styleNumber

	case slog.KindBool:
		if v.Bool() {
			return styleTrue
		}

		return styleFalse

	case slog.KindDuration:
		return styleDuration

	case slog.KindTime:
		return styleTime

	default:
		return styleString
	}
}

// prettyTextHandler renders records as single colorized lines of
// key=value pairs without quoting.
type prettyTextHandler struct {
	opts  slog.HandlerOptions
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
}

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *prettyTextHandler {
	return &prettyTextHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		h.writeAttr(buf, slog.Time(slog.TimeKey, r.Time))
	}

	h.writeLevel(buf, r.Level)

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeAttr(buf, slog.String(
				slog.SourceKey,
				src.File+":"+strconv.Itoa(src.Line),
			))
		}
	}

	h.writeAttr(buf, slog.String(slog.MessageKey, r.Message))

	for _, a := range h.attrs {
		h.writeAttr(buf, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)

	return &clone
}

func (h *prettyTextHandler) WithGroup(string) slog.Handler {
	clone := *h

	return &clone
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	if replace := h.opts.ReplaceAttr; replace != nil {
		a = replace(nil, a)
	}

	if a.Equal(slog.Attr{}) {
		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(styleKey.Render(a.Key))
	buf.WriteByte('=')

	value := a.Value.Resolve()
	buf.WriteString(valueStyle(value).Render(value.String()))
}

// writeLevel colors the level label by severity instead of routing it
// through writeAttr, which would style it as an ordinary string.
func (h *prettyTextHandler) writeLevel(buf *bytes.Buffer, level slog.Level) {
	a := slog.Any(slog.LevelKey, level)
	if replace := h.opts.ReplaceAttr; replace != nil {
		a = replace(nil, a)
	}

	if a.Equal(slog.Attr{}) {
		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(styleKey.Render(a.Key))
	buf.WriteByte('=')
	buf.WriteString(levelStyle(level).Render(a.Value.String()))
}

// prettyJSONHandler renders records as multiline colorized JSON-shaped
// objects. Values are printed unquoted, so the output is for human
// consumption rather than machine parsing.
type prettyJSONHandler struct {
	opts  slog.HandlerOptions
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
}

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) *prettyJSONHandler {
	return &prettyJSONHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	buf.WriteString("{\n")

	first := true

	if !r.Time.IsZero() {
		h.writeField(buf, slog.Time(slog.TimeKey, r.Time), nil, &first)
	}

	level := levelStyle(r.Level)
	h.writeField(buf, slog.Any(slog.LevelKey, r.Level), &level, &first)

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeField(buf, slog.String(
				slog.SourceKey,
				src.File+":"+strconv.Itoa(src.Line),
			), nil, &first)
		}
	}

	h.writeField(buf, slog.String(slog.MessageKey, r.Message), nil, &first)

	for _, a := range h.attrs {
		h.writeField(buf, a, nil, &first)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeField(buf, a, nil, &first)

		return true
	})

	buf.WriteString("\n}\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)

	return &clone
}

func (h *prettyJSONHandler) WithGroup(string) slog.Handler {
	clone := *h

	return &clone
}

// writeField appends one indented key: value line. A non-nil style
// overrides the value's kind-derived style.
func (h *prettyJSONHandler) writeField(
	buf *bytes.Buffer,
	a slog.Attr,
	style *lipgloss.Style,
	first *bool,
) {
	if replace := h.opts.ReplaceAttr; replace != nil {
		a = replace(nil, a)
	}

	if a.Equal(slog.Attr{}) {
		return
	}

	if !*first {
		buf.WriteString(",\n")
	}

	*first = false

	value := a.Value.Resolve()

	render := valueStyle(value)
	if style != nil {
		render = *style
	}

	buf.WriteString("  ")
	buf.WriteString(styleKey.Render(a.Key))
	buf.WriteString(": ")

	if value.Kind() == slog.KindAny && value.Any() == nil {
		buf.WriteString(styleNull.Render("null"))

		return
	}

	buf.WriteString(render.Render(value.String()))
}
