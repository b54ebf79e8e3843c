package log

import (
	"io"
)

// Option transforms a config value. Options are pure functions over
// config, so applying one never affects previously built loggers.
type Option func(config) config

// apply folds opts over cfg in order.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// WithDefaults returns an option that resets the configuration to its
// defaults with w as the output writer: [DefaultLevel], [DefaultFormat],
// [DefaultTimeLayout], callsite info disabled, and pretty printing
// enabled.
func WithDefaults(w io.Writer) Option {
	return func(config) config {
		if w == nil {
			w = io.Discard
		}

		return config{
			output:    w,
			timestamp: makeTimestampFunc(DefaultTimeLayout),
			level:     DefaultLevel,
			format:    DefaultFormat,
			callsite:  DefaultCallsite,
			pretty:    DefaultPretty,
		}
	}
}

// WithOutput returns an option that sets the destination for log
// messages. A nil writer discards output.
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		if w == nil {
			w = io.Discard
		}

		c.output = w

		return c
	}
}

// WithLevel returns an option that sets the minimum level. Messages
// below it are discarded.
func WithLevel(level Level) Option {
	return func(c config) config {
		c.level = level

		return c
	}
}

// WithFormat returns an option that sets the output format.
func WithFormat(format Format) Option {
	return func(c config) config {
		c.format = format

		return c
	}
}

// WithTimeLayout returns an option that sets the layout used to format
// timestamps.
//
// The layout may be one of the named layouts from the [time] package
// (for example "RFC3339" or "StampMilli", matched case-insensitively);
// anything else is passed verbatim to [time.Time.Format]. A blank
// layout disables timestamps entirely.
func WithTimeLayout(layout string) Option {
	return func(c config) config {
		c.timestamp = makeTimestampFunc(layout)

		return c
	}
}

// WithCallsite returns an option that controls whether the file and
// line of the logging call are included in output.
func WithCallsite(enable bool) Option {
	return func(c config) config {
		c.callsite = enable

		return c
	}
}

// WithPretty returns an option that controls colorized output. Text
// format gains per-kind value colors; JSON format becomes multiline
// with colorized keys.
func WithPretty(enable bool) Option {
	return func(c config) config {
		c.pretty = enable

		return c
	}
}
