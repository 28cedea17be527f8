package imexpand

// PageImages is the set of image expanders registered on the current page,
// as needed by the low-memory solicit/release accounting.
type PageImages interface {
	// Expanders returns every expander currently using an expansion
	// buffer, in page order.
	Expanders() []*Expander
	// Shared returns the buffer (if any) that the page has already
	// coalesced most images onto.
	Shared() *ExpansionBuffer
	// SetShared records the new shared buffer after a release.
	SetShared(buf *ExpansionBuffer)
}

// LowMemHandler implements the expansion-buffer low-memory solicit/release
// protocol: offer reclaimable bytes by estimating each buffer's fractional
// share (size/refcount), excluding the buffer that will end up shared;
// on release, coalesce every image onto the single largest buffer.
type LowMemHandler struct {
	// PurgeAllowed must be false during rendering: the shared buffer may
	// only be mutated from the interpreter thread.
	PurgeAllowed func() bool

	lastOfferGeneration int
	haveLastOffer       bool
	lastOffer           Offer
}

// Offer is the outcome of a Solicit call: an estimate of reclaimable bytes,
// or ok=false if nothing can be offered right now.
type Offer struct {
	Bytes int
}

// Solicit estimates how many bytes could be reclaimed by coalescing all of
// pages's expansion buffers onto the single largest one. generation should
// change whenever the image list changes; passing the same generation twice
// in a row re-presents the previous offer rather than recomputing it.
func (h *LowMemHandler) Solicit(pages PageImages, generation int) (Offer, bool) {
	if h.PurgeAllowed != nil && !h.PurgeAllowed() {
		return Offer{}, false
	}
	if h.haveLastOffer && generation == h.lastOfferGeneration {
		return h.lastOffer, true
	}

	var bytesToFree, maxToFree int
	for _, e := range pages.Expanders() {
		buf := e.Buffer()
		if buf == nil {
			continue
		}
		bytesToFree += buf.Size() / buf.RefCount()
		if buf.Size() > maxToFree {
			maxToFree = buf.Size()
		}
	}
	if bytesToFree > maxToFree {
		bytesToFree -= maxToFree
	} else {
		bytesToFree = 0
	}

	if bytesToFree == 0 {
		h.haveLastOffer = false
		return Offer{}, false
	}

	h.lastOfferGeneration = generation
	h.haveLastOffer = true
	h.lastOffer = Offer{Bytes: bytesToFree}
	return h.lastOffer, true
}

// Release coalesces every page image onto the single largest expansion
// buffer, decrementing and freeing every other buffer whose reference
// count reaches zero.
func (h *LowMemHandler) Release(pages PageImages) bool {
	if h.PurgeAllowed != nil && !h.PurgeAllowed() {
		return true
	}
	h.haveLastOffer = false

	largest := pages.Shared()
	bufSize := 0
	if largest != nil {
		bufSize = largest.Size()
	}

	for _, e := range pages.Expanders() {
		buf := e.Buffer()
		if buf != nil && buf.Size() > bufSize {
			largest = buf
			bufSize = buf.Size()
		}
	}
	if largest == nil {
		return true
	}

	for _, e := range pages.Expanders() {
		buf := e.Buffer()
		if buf == nil || buf == largest {
			continue
		}
		largest.Retain()
		e.SetBuffer(largest)
	}

	pages.SetShared(largest)
	return true
}
