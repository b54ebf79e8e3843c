package cmd

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestReadExprFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"single argument", []string{`(\x.x) y`}, `(\x.x) y`},
		{"joined arguments", []string{"plus", "one", "two"}, "plus one two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readExpr(tt.args, "-")
			if err != nil {
				t.Fatalf("readExpr() error: %v", err)
			}

			if got != tt.want {
				t.Errorf("readExpr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadExprFromFile(t *testing.T) {
	path := writeTempFile(t, "expr.lam", "  succ one\n")

	got, err := readExpr(nil, path)
	if err != nil {
		t.Fatalf("readExpr() error: %v", err)
	}

	if got != "succ one" {
		t.Errorf("readExpr() = %q, want %q", got, "succ one")
	}
}

func TestReadExprMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.lam")

	_, err := readExpr(nil, missing)
	if err == nil {
		t.Fatal("readExpr() = nil error for missing file")
	}

	if !errors.Is(err, ErrReadSource) {
		t.Errorf("error = %v, want ErrReadSource", err)
	}
}

func TestReadExprArgsTakePrecedence(t *testing.T) {
	path := writeTempFile(t, "expr.lam", "from file\n")

	got, err := readExpr([]string{"from", "args"}, path)
	if err != nil {
		t.Fatalf("readExpr() error: %v", err)
	}

	if got != "from args" {
		t.Errorf("readExpr() = %q, want %q", got, "from args")
	}
}
