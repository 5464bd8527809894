package internal

const defaultMaxCacheSize = 5

// Cache is a small LRU map. Evicted and cleared values are handed to the
// release function, which hosts use to free GPU textures.
type Cache[V any] struct {
	values  map[string]V
	order   []string // tracks insertion order for LRU eviction
	maxSize int
	release func(V)
}

// NewCache creates a cache holding up to maxSize values. A non-positive
// size uses the default.
func NewCache[V any](maxSize int, release func(V)) *Cache[V] {
	if maxSize <= 0 {
		maxSize = defaultMaxCacheSize
	}
	if release == nil {
		release = func(V) {}
	}
	return &Cache[V]{
		values:  make(map[string]V),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		release: release,
	}
}

func (c *Cache[V]) Get(key string) (V, bool) {
	if v, exists := c.values[key]; exists {
		// Move to end (most recently used)
		c.moveToEnd(key)
		return v, true
	}
	var zero V
	return zero, false
}

func (c *Cache[V]) Set(key string, v V) {
	// If key already exists, release the old value and move to end
	if old, exists := c.values[key]; exists {
		c.values[key] = v
		c.moveToEnd(key)
		c.release(old)
		return
	}

	// Evict oldest if at capacity
	if len(c.order) >= c.maxSize {
		c.evictOldest()
	}

	c.values[key] = v
	c.order = append(c.order, key)
}

// GetOrCreate returns the cached value for key, creating and caching it
// on a miss. Errors from create are not cached.
func (c *Cache[V]) GetOrCreate(key string, create func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := create()
	if err != nil {
		return v, err
	}
	c.Set(key, v)
	return v, nil
}

func (c *Cache[V]) Len() int {
	return len(c.order)
}

func (c *Cache[V]) moveToEnd(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}

func (c *Cache[V]) evictOldest() {
	if len(c.order) == 0 {
		return
	}

	oldest := c.order[0]
	c.order = c.order[1:]

	if v, exists := c.values[oldest]; exists {
		delete(c.values, oldest)
		c.release(v)
	}
}

// Clear releases every value.
func (c *Cache[V]) Clear() {
	for _, v := range c.values {
		c.release(v)
	}
	c.values = make(map[string]V)
	c.order = c.order[:0]
}
