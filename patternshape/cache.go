package patternshape

import (
	"sync/atomic"

	"github.com/ripcore/raster/cache"
)

// IDAllocator hands out unique, monotonically increasing shape ids,
// matching the original's pre-incremented global shapeid counter but
// without the implied global: each page (or test) owns its own allocator.
type IDAllocator struct {
	next atomic.Int32
}

// Next returns the next unused id, starting from 1 (SHAPEID_INIT is 0 and
// is never itself handed out).
func (a *IDAllocator) Next() int32 {
	return a.next.Add(1)
}

// Cache is a page-scoped, deduplicating store of pattern and clip shapes,
// keyed by shape id. Shapes are immutable once Finish has run, so lookups
// never race with mutation.
type Cache struct {
	shapes *cache.ShardedCache[int32, *Shape]

	mruShape   *Shape
	mruContext uint32
}

// NewCache creates an empty, page-scoped shape cache.
func NewCache() *Cache {
	return &Cache{
		shapes: cache.NewSharded[int32, *Shape](cache.DefaultCapacity, int32Hasher),
	}
}

func int32Hasher(id int32) uint64 {
	return cache.IntHasher(int(id))
}

// Register adds s to the cache under its id.
func (c *Cache) Register(s *Shape) {
	c.shapes.Set(s.ID, s)
}

// Lookup returns the shape registered under id, if any.
func (c *Cache) Lookup(id int32) (*Shape, bool) {
	return c.shapes.Get(id)
}

// MRU returns the most recently used shape if it was last used in the same
// context (an HDL id, or any caller-chosen scope token), letting adjacent
// display-list objects in the same context reuse one lookup instead of
// re-resolving their shape each time. Grounded on mru_shape/mru_hdl_id.
func (c *Cache) MRU(context uint32) (*Shape, bool) {
	if c.mruShape == nil || c.mruContext != context {
		return nil, false
	}
	return c.mruShape, true
}

// SetMRU records s as the most recently used shape for context.
func (c *Cache) SetMRU(s *Shape, context uint32) {
	c.mruShape = s
	c.mruContext = context
}
