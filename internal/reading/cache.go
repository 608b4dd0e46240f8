package reading

import (
	"context"
	"fmt"
	"sync"
)

// DefaultCacheEntries bounds a Cache built with a non-positive limit.
const DefaultCacheEntries = 50000

// Cache memoizes readings from another transcriber. It holds at most limit
// entries in two generations; when the current generation fills up, the older
// one is dropped and entries still in use are promoted on their next hit.
type Cache struct {
	inner Transcriber
	gen   int

	mu       sync.Mutex
	current  map[string]string
	previous map[string]string
}

// NewCache wraps inner, keeping at most limit readings.
func NewCache(inner Transcriber, limit int) *Cache {
	if limit <= 0 {
		limit = DefaultCacheEntries
	}
	return &Cache{
		inner:   inner,
		gen:     max(limit/2, 1),
		current: make(map[string]string),
	}
}

// Readings implements Transcriber. Misses are resolved with a single call to
// the wrapped transcriber.
func (c *Cache) Readings(ctx context.Context, texts []string) ([]string, error) {
	out := make([]string, len(texts))
	var missing []string
	slots := make(map[string][]int)

	c.mu.Lock()
	for i, text := range texts {
		if r, ok := c.lookupLocked(text); ok {
			out[i] = r
			continue
		}
		if _, dup := slots[text]; !dup {
			missing = append(missing, text)
		}
		slots[text] = append(slots[text], i)
	}
	c.mu.Unlock()

	if len(missing) == 0 {
		return out, nil
	}
	resolved, err := c.inner.Readings(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(resolved) != len(missing) {
		return nil, fmt.Errorf("transcriber returned %d readings for %d texts", len(resolved), len(missing))
	}

	c.mu.Lock()
	for j, text := range missing {
		c.storeLocked(text, resolved[j])
		for _, i := range slots[text] {
			out[i] = resolved[j]
		}
	}
	c.mu.Unlock()
	return out, nil
}

func (c *Cache) lookupLocked(text string) (string, bool) {
	if r, ok := c.current[text]; ok {
		return r, true
	}
	if r, ok := c.previous[text]; ok {
		c.storeLocked(text, r)
		return r, true
	}
	return "", false
}

func (c *Cache) storeLocked(text, r string) {
	if len(c.current) >= c.gen {
		c.previous = c.current
		c.current = make(map[string]string, c.gen)
	}
	c.current[text] = r
}

// Len reports the number of memoized readings.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.current)
	for text := range c.previous {
		if _, ok := c.current[text]; !ok {
			n++
		}
	}
	return n
}
