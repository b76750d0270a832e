package strfmt

import (
	"sync"

	"go.uber.org/zap"

	"github.com/arloliu/touki/internal/hash"
	"github.com/arloliu/touki/internal/options"
	"github.com/arloliu/touki/value"
)

// DefaultCacheCapacity is the number of templates a Cache keeps by default.
const DefaultCacheCapacity = 256

// CacheConfig holds the settings of a Cache.
type CacheConfig struct {
	capacity int
	logger   *zap.Logger
}

// CacheOption configures a Cache.
type CacheOption = options.Option[*CacheConfig]

// WithCapacity sets the maximum number of cached templates.
func WithCapacity(n int) CacheOption {
	return options.New(func(cfg *CacheConfig) error {
		if err := options.Positive("cache capacity", n); err != nil {
			return err
		}
		cfg.capacity = n

		return nil
	})
}

// WithLogger sets the logger used to report compilations, evictions and hash
// collisions. A nil logger keeps the no-op default.
func WithLogger(l *zap.Logger) CacheOption {
	return options.NoError(func(cfg *CacheConfig) {
		if l != nil {
			cfg.logger = l
		}
	})
}

// Cache holds compiled templates keyed by the xxHash64 of their text.
//
// Lookups verify the text, so two templates sharing a hash never get each
// other's compiled form; the later one is simply not cached. When full, the
// oldest entry is evicted. A Cache is safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	entries  map[uint64]*Template
	order    []uint64 // ring of keys in insertion order
	next     int      // oldest slot once the ring is full
	capacity int
	logger   *zap.Logger

	hits       uint64
	misses     uint64
	collisions uint64
}

// CacheStats is a snapshot of Cache counters.
type CacheStats struct {
	Len        int
	Hits       uint64
	Misses     uint64
	Collisions uint64
}

// NewCache creates an empty Cache.
func NewCache(opts ...CacheOption) (*Cache, error) {
	cfg := &CacheConfig{
		capacity: DefaultCacheCapacity,
		logger:   zap.NewNop(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Cache{
		entries:  make(map[uint64]*Template, cfg.capacity),
		order:    make([]uint64, 0, cfg.capacity),
		capacity: cfg.capacity,
		logger:   cfg.logger,
	}, nil
}

// Get returns the compiled form of tpl, compiling and caching it on a miss.
// Templates that fail to compile are not cached.
func (c *Cache) Get(tpl string) (*Template, error) {
	key := hash.Template(tpl)

	c.mu.Lock()
	if t, ok := c.entries[key]; ok && t.text == tpl {
		c.hits++
		c.mu.Unlock()

		return t, nil
	}
	c.misses++
	c.mu.Unlock()

	t, err := Compile(tpl)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[key]; ok {
		if existing.text == tpl {
			return existing, nil
		}

		c.collisions++
		c.logger.Warn("template hash collision",
			zap.Uint64("hash", key),
			zap.String("cached", existing.text),
			zap.String("template", tpl))

		return t, nil
	}

	c.insert(key, t)
	c.logger.Debug("template compiled",
		zap.Uint64("hash", key),
		zap.Int("holes", t.holes),
		zap.Int("cached", len(c.entries)))

	return t, nil
}

func (c *Cache) insert(key uint64, t *Template) {
	if len(c.order) < c.capacity {
		c.order = append(c.order, key)
	} else {
		evicted := c.order[c.next]
		delete(c.entries, evicted)
		c.order[c.next] = key
		c.next = (c.next + 1) % c.capacity
		c.logger.Debug("template evicted", zap.Uint64("hash", evicted))
	}

	c.entries[key] = t
}

// Append renders tpl with args through the cache.
func (c *Cache) Append(dst []byte, tpl string, args ...value.Value) ([]byte, error) {
	t, err := c.Get(tpl)
	if err != nil {
		return dst, err
	}

	return t.Append(dst, args...)
}

// Format renders tpl with args through the cache.
func (c *Cache) Format(tpl string, args ...value.Value) (string, error) {
	t, err := c.Get(tpl)
	if err != nil {
		return "", err
	}

	return t.Format(args...)
}

// Len returns the number of cached templates.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStats{
		Len:        len(c.entries),
		Hits:       c.hits,
		Misses:     c.misses,
		Collisions: c.collisions,
	}
}

// Reset drops every cached template and clears the counters.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
	c.order = c.order[:0]
	c.next = 0
	c.hits, c.misses, c.collisions = 0, 0, 0
}
