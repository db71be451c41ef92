// Package hashcache tells whether the given content at the path was already seen by it.
package hashcache

import (
	"crypto/md5"
	"hash"
	"sync"
)

const hashSize = md5.Size

type Cache struct {
	sync.Mutex
	m map[string][hashSize]byte
	h hash.Hash
}

func New() *Cache {
	return &Cache{m: make(map[string][hashSize]byte), h: md5.New()}
}

// contentHash returns hash of content parts. Cache must be locked.
func (c *Cache) contentHash(content [][]byte) (sum [hashSize]byte) {
	c.h.Reset()
	for _, p := range content {
		c.h.Write(p)
	}
	c.h.Sum(sum[:0])
	return
}

// Seen sets content hash for the given key to a new value.
// It returns true if the content was already cached and had the same hash.
func (c *Cache) Seen(key string, content ...[]byte) bool {
	c.Lock()
	defer c.Unlock()
	origHash, ok := c.m[key]
	newHash := c.contentHash(content)
	if !ok || origHash != newHash {
		c.m[key] = newHash
		return false
	}
	return true
}

// Forget removes the key from cache, so that the next Seen
// for it returns false.
func (c *Cache) Forget(key string) {
	c.Lock()
	defer c.Unlock()
	delete(c.m, key)
}
