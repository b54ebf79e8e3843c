package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestBuildDefFilesEmpty(t *testing.T) {
	if got := buildDefFiles(nil); got != nil {
		t.Errorf("buildDefFiles(nil) = %v, want nil", got)
	}

	if got := buildDefFiles([]string{}); got != nil {
		t.Errorf("buildDefFiles(empty) = %v, want nil", got)
	}
}

func TestBuildDefFilesReadsContent(t *testing.T) {
	path := writeTempFile(t, "defs.yaml", "id: '\\x.x'\n")

	files := buildDefFiles([]string{path})
	if files == nil || files.IsZero() {
		t.Fatal("buildDefFiles returned no files")
	}

	count := 0

	for name, r := range files.Each() {
		count++

		if name != path {
			t.Errorf("file name = %q, want %q", name, path)
		}

		data, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("read: %v", err)
		}

		if string(data) != "id: '\\x.x'\n" {
			t.Errorf("content = %q", data)
		}
	}

	if count != 1 {
		t.Errorf("file count = %d, want 1", count)
	}
}

func TestBuildDefFilesDeduplicates(t *testing.T) {
	path := writeTempFile(t, "defs.yaml", "id: '\\x.x'\n")

	// The same file by two paths must be opened once.
	rel, err := filepath.Rel(mustGetwd(t), path)
	if err != nil {
		// Temp dir may be on a different root; fall back to absolute twice.
		rel = path
	}

	files := buildDefFiles([]string{path, rel, path})
	if files == nil {
		t.Fatal("buildDefFiles returned nil")
	}

	count := 0
	for range files.Each() {
		count++
	}

	if count != 1 {
		t.Errorf("file count = %d, want 1", count)
	}
}

func TestBuildDefFilesSkipsMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist.yaml")

	if got := buildDefFiles([]string{missing}); got != nil {
		t.Errorf("buildDefFiles(missing) = %v, want nil", got)
	}
}

func TestDefFilesFromContext(t *testing.T) {
	ctx := t.Context()

	if got := defFilesFrom(ctx); got != nil {
		t.Errorf("defFilesFrom(empty ctx) = %v, want nil", got)
	}

	path := writeTempFile(t, "defs.yaml", "id: '\\x.x'\n")

	ctx = WithDefFiles(ctx, []string{path})
	if got := defFilesFrom(ctx); got == nil {
		t.Error("defFilesFrom(ctx) = nil after WithDefFiles")
	}
}

func mustGetwd(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	return wd
}
