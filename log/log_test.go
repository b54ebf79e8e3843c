package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Defaults(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf)

	if logger.Level() != DefaultLevel {
		t.Errorf("default level = %v", logger.Level())
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("default format = %v", logger.Format())
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func(Logger, string, ...slog.Attr)
		minLevel Level
		logged   bool
	}{
		{"trace at trace", Logger.Trace, LevelTrace, true},
		{"trace at debug", Logger.Trace, LevelDebug, false},
		{"debug at debug", Logger.Debug, LevelDebug, true},
		{"debug at info", Logger.Debug, LevelInfo, false},
		{"info at info", Logger.Info, LevelInfo, true},
		{"info at warn", Logger.Info, LevelWarn, false},
		{"warn at warn", Logger.Warn, LevelWarn, true},
		{"warn at error", Logger.Warn, LevelError, false},
		{"error at error", Logger.Error, LevelError, true},
		{"error at trace", Logger.Error, LevelTrace, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := Make(&buf, WithLevel(tt.minLevel))
			tt.logFunc(logger, "test message")

			if logged := buf.Len() > 0; logged != tt.logged {
				t.Errorf("logged = %v, expected %v", logged, tt.logged)
			}
		})
	}
}

func TestLogger_TraceLabel(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithLevel(LevelTrace),
		WithFormat(FormatText),
		WithPretty(false),
	)

	logger.Trace("trace message")

	output := buf.String()

	if !strings.Contains(output, "TRACE") {
		t.Errorf("expected TRACE label, got: %s", output)
	}

	if strings.Contains(output, "DEBUG-4") {
		t.Errorf("trace rendered with slog's offset name: %s", output)
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithPretty(false))
	logger.Info("test message", slog.String("key", "value"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if entry["msg"] != "test message" {
		t.Errorf("msg = %v", entry["msg"])
	}

	if entry["key"] != "value" {
		t.Errorf("key = %v", entry["key"])
	}
}

func TestLogger_TextOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText), WithPretty(false))
	logger.Info("test message", slog.String("key", "value"))

	output := buf.String()

	for _, want := range []string{"test message", "key=value"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %s", want, output)
		}
	}
}

func TestLogger_Callsite(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithCallsite(true), WithPretty(false))
	logger.Info("test message")

	output := buf.String()

	if !strings.Contains(output, "source") {
		t.Errorf("callsite info missing: %s", output)
	}

	// The recorded callsite is this test file, not the log package.
	if !strings.Contains(output, "log_test.go") {
		t.Errorf("callsite does not point at the caller: %s", output)
	}
}

func TestLogger_TimeLayoutNone(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"), WithPretty(false))
	logger.Info("test")

	if strings.Contains(buf.String(), `"time"`) {
		t.Errorf("expected no time field: %s", buf.String())
	}
}

func TestLogger_Wrap_OverridesConfig(t *testing.T) {
	var base, derived bytes.Buffer

	logger := Make(&base, WithLevel(LevelError))
	wrapped := logger.Wrap(WithOutput(&derived), WithLevel(LevelDebug))

	logger.Debug("to base")
	wrapped.Debug("to derived")

	if base.Len() > 0 {
		t.Error("base logger level changed by Wrap")
	}

	if !strings.Contains(derived.String(), "to derived") {
		t.Error("wrapped logger did not log at its level")
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithPretty(false))
	logger = logger.With(slog.String("component", "repl"))

	logger.Info("test message")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if entry["component"] != "repl" {
		t.Errorf("component = %v", entry["component"])
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	l.Trace("test")
	l.Debug("test")
	l.Info("test")
	l.Warn("test")
	l.Error("test")

	if got := l.With(slog.String("key", "value")); got.Logger != nil {
		t.Error("zero value With produced a live logger")
	}

	if l.Level() != DefaultLevel {
		t.Errorf("zero value level = %v", l.Level())
	}
}

func TestLogger_ConcurrentLogging(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(false))

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			logger.Info("concurrent message", slog.Int("id", i))
		}()
	}

	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 100 {
		t.Errorf("expected 100 log lines, got %d", len(lines))
	}
}

func TestLogger_PrettyTextOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithLevel(LevelTrace),
		WithFormat(FormatText),
		WithPretty(true),
	)

	logger.Trace("pretty message", slog.Int("steps", 3))

	output := buf.String()

	for _, want := range []string{"pretty message", "steps", "3", "TRACE"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %s", want, output)
		}
	}
}

func TestLogger_PrettyJSONOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithPretty(true))
	logger.Info("pretty message", slog.Bool("cached", true))

	output := buf.String()

	for _, want := range []string{"{", "}", "pretty message", "cached", "true"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %s", want, output)
		}
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(false))

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", slog.Int("iteration", i))
	}
}

func BenchmarkLogger_Disabled(b *testing.B) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelError))

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		logger.Debug("benchmark message", slog.Int("iteration", i))
	}
}
