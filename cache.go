package blockzip

import (
	"math/rand"
	"sync"

	"github.com/dgryski/go-tinylfu"
)

// blockCache memoizes the codec race's outcome by block content,
// following the admission-cache shape of the teacher's block cache in
// internal/spinner/spinner.go (window+main tinylfu capacities, a
// comparable key, no eviction callback needed here since a frame has
// no resources to release on eviction).
//
// It is reworked for this domain in one way the teacher's cache isn't:
// results here are small, fully materialized frames rather than
// streamed file blocks, so the key is a content hash rather than a
// (file, offset) pair.
type blockCache struct {
	mu   sync.Mutex
	t    *tinylfu.T[uint64, frame]
	salt uint64
}

// cacheCapacity bounds memory use: each entry holds one block's chosen
// payload, a few kilobytes for a 4095-byte block, so a full cache holds
// on the order of tens of megabytes.
const cacheCapacity = 4096

func newBlockCache() *blockCache {
	return &blockCache{
		t:    tinylfu.New[uint64, frame](cacheCapacity, cacheCapacity*10, identityHash),
		salt: rand.Uint64(),
	}
}

func identityHash(k uint64) uint64 { return k }

func (c *blockCache) get(block []byte) (frame, bool) {
	key := blockContentHash(block, c.salt)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t.Get(key)
}

func (c *blockCache) put(block []byte, f frame) {
	key := blockContentHash(block, c.salt)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t.Add(key, f)
}
