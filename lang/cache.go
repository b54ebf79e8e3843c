package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores parsed terms keyed by source hash. Terms are
// immutable, so a cached root can be handed to every caller without
// copying.
//
//nolint:gochecknoglobals
var globalCache sync.Map

// parseState tracks the one-time parse of a source string.
type parseState struct {
	once sync.Once
	node Node
	err  error
}

// ParseReader parses input from an io.Reader and returns the root of
// its term tree. The reader is drained through an async read-ahead
// buffer, and the parse result is cached like [ParseString].
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (Node, error) {
	ev := New(opts...)

	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	ev.logger.TraceContext(
		ctx,
		"read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return parseStringCached(ctx, ev, string(data))
}

// parseStringCached parses a string with caching. Parsing has no
// semantic options, so the cache key is the source hash alone.
func parseStringCached(
	ctx context.Context,
	ev *Evaluator,
	source string,
) (Node, error) {
	sourceKey := strconv.FormatUint(xxh3.Hash([]byte(source)), 36)

	entry := new(parseState)
	value, cacheHit := globalCache.LoadOrStore(sourceKey, entry)

	state, ok := value.(*parseState)
	if !ok {
		// Unreachable unless the cache is corrupted; reparse.
		state = entry
	}

	ev.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("source_hash", sourceKey),
		slog.Bool("cache_hit", cacheHit),
	)

	state.once.Do(func() {
		state.node, state.err = parseString(ctx, ev, source)
	})

	return state.node, state.err
}

// ClearCache removes all cached parse results. This is primarily
// useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}
