// Package cache wraps the data services with cache-key based invalidation,
// request de-duplication and mutation side effects, so handlers read through
// one layer that keeps derived views consistent after writes.
package cache

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Key is a hierarchical cache key. Invalidating a key invalidates every
// descendant: ["trainings"] covers ["trainings","list","20"] and
// ["trainings","detail",id], but not ["planned"].
type Key []string

func (k Key) String() string {
	return strings.Join(k, "/")
}

// covers reports whether k is an ancestor of (or equal to) other.
func (k Key) covers(other string) bool {
	prefix := k.String()
	return other == prefix || strings.HasPrefix(other, prefix+"/")
}

// Key constructors. The bounded list and the infinite-paginated list are
// separate key spaces under the shared "trainings" root, so a mutation
// invalidates both at once.

func TrainingsKey() Key                { return Key{"trainings"} }
func TrainingListKey(limit int) Key    { return Key{"trainings", "list", itoa(limit)} }
func TrainingDetailKey(id string) Key  { return Key{"trainings", "detail", id} }
func TrainingInfiniteKey(page int) Key { return Key{"trainings", "infinite", itoa(page)} }
func PlannedKey() Key                  { return Key{"planned"} }

func itoa(v int) string {
	if v == 0 {
		return "all"
	}
	return strconv.Itoa(v)
}

type entry struct {
	value any
}

// Cache holds query results keyed hierarchically, de-duplicates concurrent
// fetches per key, and guards against stale responses repopulating a key
// that was invalidated while the fetch was in flight.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	// prefixGen counts invalidations per prefix. A key's generation is the
	// sum over all covering prefixes; a fetch only stores its result when
	// the generation is unchanged since the fetch began.
	prefixGen map[string]uint64
	group     singleflight.Group
}

// New constructs an empty cache.
func New() *Cache {
	return &Cache{
		entries:   make(map[string]entry),
		prefixGen: make(map[string]uint64),
	}
}

func (c *Cache) generationLocked(key string) uint64 {
	var total uint64
	for prefix, gen := range c.prefixGen {
		if Key(strings.Split(prefix, "/")).covers(key) {
			total += gen
		}
	}
	return total
}

// Invalidate drops every entry under the given keys and bumps their
// generation so in-flight fetches for them are discarded on arrival.
func (c *Cache) Invalidate(keys ...Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		c.prefixGen[key.String()]++
		for stored := range c.entries {
			if key.covers(stored) {
				delete(c.entries, stored)
			}
		}
	}
}

// Fetch returns the cached value for key, or runs fn once to produce it.
// Concurrent calls for the same key share a single execution and resolve
// together. The result is always returned to callers, but only stored when
// the key was not invalidated while fn ran.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error)) (T, error) {
	keyStr := key.String()

	c.mu.Lock()
	if cached, ok := c.entries[keyStr]; ok {
		c.mu.Unlock()
		return cached.value.(T), nil
	}
	started := c.generationLocked(keyStr)
	c.mu.Unlock()

	result, err, _ := c.group.Do(keyStr, func() (any, error) {
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.generationLocked(keyStr) == started {
			c.entries[keyStr] = entry{value: value}
		}
		c.mu.Unlock()
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}

// Peek returns the cached value without fetching. Mostly useful in tests.
func Peek[T any](c *Cache, key Key) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cached, ok := c.entries[key.String()]
	if !ok {
		var zero T
		return zero, false
	}
	return cached.value.(T), true
}
