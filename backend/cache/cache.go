package cache

import (
	"sync"
)

// AssetCache holds decrypted asset contents keyed by asset ID, bounded to
// maxSize entries. When full, an arbitrary entry is evicted to make room.
// Entries must be treated as read-only by callers.
type AssetCache struct {
	mu      sync.Mutex
	maxSize int
	assets  map[string][]byte
}

func New(maxSize int) *AssetCache {
	return &AssetCache{
		maxSize: maxSize,
		assets:  make(map[string][]byte),
	}
}

func (c *AssetCache) Get(id string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.assets[id]
	return data, ok
}

func (c *AssetCache) Put(id string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.assets) >= c.maxSize {
		for key := range c.assets {
			delete(c.assets, key)
			break
		}
	}

	c.assets[id] = data
}

func (c *AssetCache) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.assets, id)
}

func (c *AssetCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.assets)
}
