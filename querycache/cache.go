package querycache

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Key identifies a cached query: resource first, then tenant, then filter
// parts. Invalidation works on key prefixes.
type Key []string

func K(parts ...string) Key {
	return Key(parts)
}

func (k Key) String() string {
	return strings.Join(k, "/")
}

// HasPrefix reports whether p is a leading subsequence of k's parts.
func (k Key) HasPrefix(p Key) bool {
	if len(p) > len(k) {
		return false
	}
	for i := range p {
		if k[i] != p[i] {
			return false
		}
	}
	return true
}

func (k Key) id() string {
	return strings.Join(k, "\x00")
}

type entry struct {
	key       Key
	value     interface{}
	fetchedAt time.Time
}

// generation outlives its entry only while fetches of the key are running.
type generation struct {
	key     Key
	n       uint64
	flights int
}

// Cache holds query results with a per-entry stale time. Concurrent fetches
// of one key share a single call to the fetch function.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	gens    map[string]*generation
	group   singleflight.Group
	now     func() time.Time
}

func New() *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		gens:    make(map[string]*generation),
		now:     time.Now,
	}
}

// Fetch returns the cached value for key when it is younger than staleTime,
// otherwise it calls fn and stores the result. A result whose fetch started
// before an invalidation of key is returned to the caller but not stored.
func Fetch[T any](ctx context.Context, c *Cache, key Key, staleTime time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	id := key.id()

	c.mu.Lock()
	if e, ok := c.entries[id]; ok && c.now().Sub(e.fetchedAt) < staleTime {
		if v, ok := e.value.(T); ok {
			c.mu.Unlock()
			return v, nil
		}
	}
	g, ok := c.gens[id]
	if !ok {
		g = &generation{key: append(Key(nil), key...)}
		c.gens[id] = g
	}
	gen := g.n
	g.flights++
	c.mu.Unlock()
	defer c.release(id)

	flight := id + "#" + strconv.FormatUint(gen, 10)
	v, err, _ := c.group.Do(flight, func() (interface{}, error) {
		val, err := fn(context.WithoutCancel(ctx))
		if err != nil {
			return val, err
		}
		c.store(id, gen, val)
		return val, nil
	})

	res, _ := v.(T)
	return res, err
}

func (c *Cache) store(id string, gen uint64, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	g := c.gens[id]
	if g == nil || g.n != gen {
		return
	}
	c.entries[id] = &entry{key: g.key, value: value, fetchedAt: c.now()}
}

func (c *Cache) release(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	g := c.gens[id]
	if g == nil {
		return
	}
	g.flights--
	if _, ok := c.entries[id]; !ok && g.flights == 0 {
		delete(c.gens, id)
	}
}

// Invalidate drops every entry whose key starts with prefix and marks
// in-flight fetches of those keys as outdated.
func (c *Cache) Invalidate(prefix Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, g := range c.gens {
		if g.key.HasPrefix(prefix) {
			g.n++
			delete(c.entries, id)
			if g.flights == 0 {
				delete(c.gens, id)
			}
		}
	}
}

// Has reports whether a value is stored for key, stale or not.
func (c *Cache) Has(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key.id()]
	return ok
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) tracked() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.gens)
}

// Clear drops all entries.
func (c *Cache) Clear() {
	c.Invalidate(nil)
}
