package dataset

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ReaderWrapper lets callers observe a table while it is read, e.g. to draw a
// progress bar. size is -1 when the source cannot tell.
type ReaderWrapper func(name string, r io.Reader, size int64) io.Reader

type entry struct {
	source string
	stamp  Stamp
	value  any
	gen    uint64
}

// Cache memoises parsed tables per (table, source key). An entry is reused
// until the source stamp changes or it is invalidated.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	gen     uint64
	group   singleflight.Group
	logger  *zap.Logger
}

// NewCache creates an empty cache
func NewCache(logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		entries: make(map[string]*entry),
		logger:  logger,
	}
}

// Invalidate drops every entry read from the source key so the next fetch rereads it
func (c *Cache) Invalidate(source string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if e.source == source {
			delete(c.entries, key)
			c.logger.Debug("cache entry invalidated", zap.String("source", source))
		}
	}
}

// Len returns the number of cached tables
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) lookup(key string) *entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key]
}

func (c *Cache) store(key, source string, stamp Stamp, value any) *entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	e := &entry{source: source, stamp: stamp, value: value, gen: c.gen}
	c.entries[key] = e
	return e
}

// fetch returns the cached table of src, rereading it with read when the stamp
// moved. Concurrent fetches of one source share a single read.
func fetch[T any](ctx context.Context, c *Cache, name string, src Source, wrap ReaderWrapper, read func(io.Reader) (T, error)) (T, uint64, error) {
	source := src.Key()
	key := name + "|" + source
	v, err, _ := c.group.Do(key, func() (any, error) {
		stamp, err := src.Stamp(ctx)
		if err != nil {
			return nil, err
		}
		if e := c.lookup(key); e != nil && stamp.Cacheable() && e.stamp.Equal(stamp) {
			c.logger.Debug("cache hit", zap.String("table", name), zap.String("source", source))
			return e, nil
		}

		c.logger.Debug("loading table",
			zap.String("table", name),
			zap.String("source", source),
			zap.Time("mod_time", stamp.ModTime),
			zap.Int64("size", stamp.Size),
		)
		body, size, err := src.Open(ctx)
		if err != nil {
			return nil, err
		}
		defer body.Close()

		var r io.Reader = body
		if wrap != nil {
			r = wrap(name, body, size)
		}
		value, err := read(r)
		if err != nil {
			return nil, fmt.Errorf("%s (%s): %w", name, source, err)
		}
		return c.store(key, source, stamp, value), nil
	})

	var zero T
	if err != nil {
		return zero, 0, err
	}
	e := v.(*entry)
	return e.value.(T), e.gen, nil
}
