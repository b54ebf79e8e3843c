package profile

import "testing"

func TestConfigOptions(t *testing.T) {
	var cfg Config = func() (string, string, bool) { return "", "", false }

	cfg = WithQuiet(true)(WithPath("/tmp/prof")(WithMode("cpu")(cfg)))

	mode, path, quiet := cfg()
	if mode != "cpu" || path != "/tmp/prof" || !quiet {
		t.Fatalf("unexpected config: %q %q %v", mode, path, quiet)
	}
}

func TestConfigStartUnsetMode(t *testing.T) {
	var cfg Config = func() (string, string, bool) { return "", "", false }

	// An unset mode always yields a stoppable no-op.
	cfg.Start().Stop()
}

func TestModesExcludeQuiet(t *testing.T) {
	for _, m := range Modes() {
		if m == "quiet" {
			t.Fatal("quiet listed as a selectable mode")
		}
	}
}
