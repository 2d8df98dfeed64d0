// Package fifocache implements an expiring key/value cache with a
// hard entry cap and first-in-first-out eviction.
//
// Every entry carries an absolute expiry computed from a
// caller-supplied millisecond timestamp; the cache never reads a
// clock, so behavior is fully reproducible from recorded timestamps.
// When the cap is exceeded the oldest-inserted entry is evicted
// regardless of access recency. That makes this a FIFO cache, not an
// LRU: it targets deterministic, re-derivable computations, where
// recency of access carries no value over recency of computation.
//
// Reads are not side-effect free: a Get that discovers an expired
// entry removes it, so Len stays accurate without a background
// sweeper.
//
// A Cache is not safe for concurrent use. A host that shares one
// across goroutines must serialize access externally.
package fifocache

// Config holds the immutable settings of a Cache.
type Config struct {
	// Enabled gates all writes. A disabled cache accepts Set calls
	// and stores nothing.
	Enabled bool

	// TTLMillis is the entry lifetime in milliseconds, measured from
	// the timestamp supplied to Set. Zero or negative is valid and
	// makes every entry expire on the next read at or after its
	// insertion time.
	TTLMillis int64

	// MaxEntries caps the number of stored entries. Zero is valid
	// and makes the cache retain nothing; negative values behave
	// like zero.
	MaxEntries int
}

type entry[V any] struct {
	value     V
	expiresAt int64
}

// Cache is a string-keyed store of V with TTL expiry and FIFO
// eviction. Construct with New.
type Cache[V any] struct {
	cfg     Config
	entries map[string]entry[V]
	order   []string // insertion order, oldest first; one element per live key
}

// New returns an empty Cache with the given configuration.
func New[V any](cfg Config) *Cache[V] {
	return &Cache[V]{
		cfg:     cfg,
		entries: make(map[string]entry[V]),
	}
}

// Get returns the value stored under key if it has not expired at
// nowMillis. Expiry is boundary-inclusive: an entry set at t lives
// through t+ttl-1 and is gone at t+ttl.
//
// A stale entry discovered here is physically removed before
// returning, so a later Len reflects reality. A pure miss (key never
// stored) has no side effect.
func (c *Cache[V]) Get(key string, nowMillis int64) (V, bool) {
	var zero V

	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}

	if nowMillis >= e.expiresAt {
		delete(c.entries, key)
		c.unlink(key)

		return zero, false
	}

	return e.value, true
}

// Set stores value under key with expiry nowMillis+TTLMillis, then
// evicts oldest-inserted entries until the entry cap holds again.
// Overwriting an existing key moves it to the back of the eviction
// order, so a rewritten entry is treated as freshly inserted.
//
// Set is a no-op when the cache is disabled. With MaxEntries == 0 the
// store is empty again by the time Set returns.
func (c *Cache[V]) Set(key string, value V, nowMillis int64) {
	if !c.cfg.Enabled {
		return
	}

	if _, ok := c.entries[key]; ok {
		c.unlink(key)
	}

	c.entries[key] = entry[V]{value: value, expiresAt: nowMillis + c.cfg.TTLMillis}
	c.order = append(c.order, key)

	for len(c.entries) > c.cfg.MaxEntries && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// InvalidateWhere removes every entry whose key satisfies pred and
// returns the number removed. Keys are visited once, in insertion
// order.
func (c *Cache[V]) InvalidateWhere(pred func(key string) bool) int {
	removed := 0
	kept := c.order[:0]

	for _, k := range c.order {
		if pred(k) {
			delete(c.entries, k)
			removed++

			continue
		}

		kept = append(kept, k)
	}

	c.order = kept

	return removed
}

// Len reports the number of entries physically present. Stale entries
// that no read has touched yet still count; they disappear once a Get
// finds them expired or eviction claims them.
func (c *Cache[V]) Len() int {
	return len(c.entries)
}

// unlink removes key from the insertion-order queue.
func (c *Cache[V]) unlink(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)

			return
		}
	}
}
