package imexpand

// ExpansionBuffer is a scanline-expansion scratch buffer, shared by
// reference count across every image that has been coalesced onto it by
// the low-memory handler.
type ExpansionBuffer struct {
	Data   []byte
	refcnt int

	// lastKey/lastMapping cache the most recent request so that repeating
	// it without an intervening state change is free.
	lastKey     RequestKey
	lastMapping []int
	haveLast    bool
}

// NewExpansionBuffer allocates a buffer of the given byte size with one
// reference.
func NewExpansionBuffer(size int) *ExpansionBuffer {
	return &ExpansionBuffer{Data: make([]byte, size), refcnt: 1}
}

// Size returns the buffer's byte capacity.
func (b *ExpansionBuffer) Size() int { return len(b.Data) }

// RefCount returns the buffer's current reference count.
func (b *ExpansionBuffer) RefCount() int { return b.refcnt }

// Retain adds a reference, used when an image is coalesced onto an
// already-shared buffer.
func (b *ExpansionBuffer) Retain() { b.refcnt++ }

// Release drops a reference, returning true if the buffer has no
// remaining owners and should be discarded.
func (b *ExpansionBuffer) Release() bool {
	b.refcnt--
	return b.refcnt <= 0
}

// cached reports whether key matches the buffer's last-served request, so
// the caller can skip redoing the expansion work.
func (b *ExpansionBuffer) cached(key RequestKey, mapping []int) bool {
	if !b.haveLast || b.lastKey != key || len(b.lastMapping) != len(mapping) {
		return false
	}
	for i := range mapping {
		if b.lastMapping[i] != mapping[i] {
			return false
		}
	}
	return true
}

func (b *ExpansionBuffer) remember(key RequestKey, mapping []int) {
	b.lastKey = key
	b.lastMapping = append(b.lastMapping[:0], mapping...)
	b.haveLast = true
}

// invalidate forgets the cached request, forcing the next Request call to
// redo the expansion even if the key matches.
func (b *ExpansionBuffer) invalidate() {
	b.haveLast = false
}
