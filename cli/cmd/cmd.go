package cmd

import (
	"context"
	"io"
	"iter"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	defFilesKey struct{}

	namedReader struct {
		name string
		read io.Reader
	}

	defFiles struct {
		files    []namedReader
		hasStdin bool
	}

	// DefFiles enumerates the definition files given on the command line,
	// deduplicated and opened for reading. Each file holds a YAML mapping of
	// definition names to lambda terms.
	DefFiles interface {
		IsZero() bool
		Each() iter.Seq2[string, io.Reader]
	}
)

// IsZero reports whether there are no definition files.
func (d *defFiles) IsZero() bool { return len(d.files) == 0 && !d.hasStdin }

// Each yields each definition file reader with its display name.
// Stdin, when included, is yielded last so named files are read first.
func (d *defFiles) Each() iter.Seq2[string, io.Reader] {
	return func(yield func(string, io.Reader) bool) {
		for _, f := range d.files {
			if !yield(f.name, f.read) {
				return
			}
		}

		if d.hasStdin {
			yield(stdinSource, os.Stdin)
		}
	}
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// WithDefFiles returns a new context.Context carrying readers over the given
// definition files.
//
// The function deduplicates readers by resolving symlinks and comparing
// device/inode pairs. All occurrences of "-" are replaced with a single stdin
// reader placed last so it reads after all regular files.
func WithDefFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, defFilesKey{}, buildDefFiles(sources))
}

// buildDefFiles constructs a DefFiles from the given source paths.
func buildDefFiles(sources []string) DefFiles {
	if len(sources) == 0 {
		return nil
	}

	var defs defFiles

	defs.files = make([]namedReader, 0, len(sources))
	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	for _, src := range sources {
		if src == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		reader, ok := openUniqueFile(src, seen)
		if !ok {
			continue
		}

		defs.files = append(defs.files, namedReader{name: src, read: reader})
	}

	// Stdin may have been included via "-" or as a named file.
	// Both of which will be represented by stdinKey in seen.
	_, defs.hasStdin = seen[stdinKey]
	delete(seen, stdinKey)

	if defs.IsZero() {
		return nil
	}

	return &defs
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
// Returns the opened file and true if successful, or nil and false if the file
// is a duplicate or cannot be opened.
func openUniqueFile(path string, seen map[fileKey]struct{}) (io.Reader, bool) {
	// Resolve to absolute path to handle relative path duplicates.
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}

	// Resolve symlinks to their target.
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false
	}

	key, ok := makeFileKey(info)
	if !ok {
		return nil, false
	}

	if _, exists := seen[key]; exists {
		return nil, false
	}

	seen[key] = struct{}{}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, false
	}

	return file, true
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: stat.Dev, ino: stat.Ino}, true
}

// defFilesFrom retrieves the DefFiles stored in ctx by WithDefFiles.
// Returns nil if none was stored.
func defFilesFrom(ctx context.Context) DefFiles {
	d, _ := ctx.Value(defFilesKey{}).(DefFiles)

	return d
}
