package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolverFor(t *testing.T, yaml string) kong.Resolver {
	t.Helper()

	r, err := resolve(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("resolve() error: %v", err)
	}

	return r
}

func lookupFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	flag := &kong.Flag{Value: &kong.Value{Name: name}}

	value, err := r.Resolve(nil, nil, flag)
	if err != nil {
		t.Fatalf("Resolve(%q) error: %v", name, err)
	}

	return value
}

func TestResolveFlatKeys(t *testing.T) {
	r := resolverFor(t, "max-steps: 2000\nno-prelude: true\n")

	if got := lookupFlag(t, r, "max-steps"); got != "2000" {
		t.Errorf("max-steps = %v (%T), want %q", got, got, "2000")
	}

	if got := lookupFlag(t, r, "no-prelude"); got != true {
		t.Errorf("no-prelude = %v, want true", got)
	}
}

func TestResolveNestedKeys(t *testing.T) {
	r := resolverFor(t, `
log:
  level: debug
  format: text
  pretty: false
`)

	if got := lookupFlag(t, r, "log-level"); got != "debug" {
		t.Errorf("log-level = %v, want debug", got)
	}

	if got := lookupFlag(t, r, "log-format"); got != "text" {
		t.Errorf("log-format = %v, want text", got)
	}

	if got := lookupFlag(t, r, "log-pretty"); got != false {
		t.Errorf("log-pretty = %v, want false", got)
	}
}

func TestResolveUnderscoreKeys(t *testing.T) {
	r := resolverFor(t, "log_level: warn\n")

	if got := lookupFlag(t, r, "log-level"); got != "warn" {
		t.Errorf("log-level = %v, want warn", got)
	}
}

func TestResolveMissingKey(t *testing.T) {
	r := resolverFor(t, "log-level: info\n")

	if got := lookupFlag(t, r, "max-steps"); got != nil {
		t.Errorf("max-steps = %v, want nil for missing key", got)
	}
}

func TestResolveEmptyAndMalformed(t *testing.T) {
	for _, src := range []string{"", ":\n  - broken", "just a scalar"} {
		r := resolverFor(t, src)

		if got := lookupFlag(t, r, "log-level"); got != nil {
			t.Errorf("source %q resolved %v, want nil", src, got)
		}
	}
}

func TestResolveNumberConversion(t *testing.T) {
	r := resolverFor(t, "max-steps: 500\nindent: 4\n")

	for name, want := range map[string]string{
		"max-steps": "500",
		"indent":    "4",
	} {
		got := lookupFlag(t, r, name)
		if s, ok := got.(string); !ok || s != want {
			t.Errorf("%s = %v (%T), want %q", name, got, got, want)
		}
	}
}
