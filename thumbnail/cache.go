package thumbnail

import (
	"context"
	"image"
	"sync"

	"github.com/aouyang1/theframe/library"
)

type cacheKey struct {
	id   library.PhotoID
	size Size
}

// Cache is an unbounded memo of decoded photos. Entries are never evicted; the cache lives
// as long as the screen session that owns it. The working set is capped by the session's
// photo list.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]image.Image
}

func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]image.Image)}
}

func (c *Cache) Get(id library.PhotoID, size Size) (image.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.entries[cacheKey{id, size}]
	return img, ok
}

func (c *Cache) Put(id library.PhotoID, size Size, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{id, size}] = img
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// CachedLoader consults the cache before decoding and stores successful decodes.
type CachedLoader struct {
	loader ImageLoader
	cache  *Cache
}

func NewCachedLoader(loader ImageLoader, cache *Cache) *CachedLoader {
	return &CachedLoader{loader: loader, cache: cache}
}

func (c *CachedLoader) Load(ctx context.Context, id library.PhotoID, size Size) (image.Image, error) {
	if img, ok := c.cache.Get(id, size); ok {
		return img, nil
	}
	img, err := c.loader.Load(ctx, id, size)
	if err != nil {
		return nil, err
	}
	c.cache.Put(id, size, img)
	return img, nil
}
