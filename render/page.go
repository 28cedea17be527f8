package render

import (
	"sync"

	"github.com/ripcore/raster/bandtable"
	"github.com/ripcore/raster/patternshape"
)

// Page models the two page-scoped memory pools: a display-list pool that
// only grows across the page and is freed in one shot at page end, and a
// per-band temp pool, backed by sync.Pool, released eagerly band by band.
type Page struct {
	Manager *bandtable.Manager
	Shapes  *patternshape.Cache
	IDs     patternshape.IDAllocator

	dlPool   [][]byte
	tempPool sync.Pool

	// OnDone is invoked once the consumer acknowledges the page-done
	// callback; after it returns, all per-page resources are released.
	OnDone func()
}

// NewPage creates an empty page bound to mgr's band-table assignments and
// a fresh, page-scoped pattern-shape cache.
func NewPage(mgr *bandtable.Manager) *Page {
	return &Page{
		Manager: mgr,
		Shapes:  patternshape.NewCache(),
		tempPool: sync.Pool{
			New: func() any { return make([]byte, 0) },
		},
	}
}

// AllocDL grows the display-list pool by one allocation of size bytes.
// Display-list memory is never individually freed; it is all released at
// once by Done.
func (p *Page) AllocDL(size int) []byte {
	buf := make([]byte, size)
	p.dlPool = append(p.dlPool, buf)
	return buf
}

// AllocTemp borrows a scratch buffer of at least size bytes from the
// per-band temp pool.
func (p *Page) AllocTemp(size int) []byte {
	buf := p.tempPool.Get().([]byte)
	if cap(buf) < size {
		return make([]byte, size)
	}
	return buf[:size]
}

// ReleaseTemp returns buf to the temp pool for reuse by a later band.
func (p *Page) ReleaseTemp(buf []byte) {
	p.tempPool.Put(buf[:0])
}

// Done runs the page-done callback, then releases every per-page
// resource: the display-list pool is dropped (nothing references it once
// the consumer has drained the page) and the pattern-shape cache, whose
// masks are immutable and specific to this page, goes with it.
func (p *Page) Done() {
	if p.OnDone != nil {
		p.OnDone()
	}
	p.dlPool = nil
	p.Shapes = nil
}
