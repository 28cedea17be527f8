// Package imexpand decodes image sample data into per-plane blit-ready
// scanlines: LUT-driven expansion from an input bit depth to an output bit
// depth, with a shared expansion-buffer cache and a low-memory release
// protocol for coalescing buffers across all images on a page.
package imexpand

// Colorant is an opaque colorant index as used by the image store; it has
// no meaning within this package beyond identity and equality.
type Colorant int32

// ImageStore is the external collaborator that supplies raw sample bytes
// for one plane of an image, tile by tile.
type ImageStore interface {
	// Fetch returns the byte run covering scanline y, samples [x, x+n), for
	// the given store-relative plane index. The returned slice may alias
	// store-owned memory and must not be retained past the call.
	Fetch(plane int, x, y, n int32) ([]byte, error)
}

// LUT is one output-plane lookup table: 2^expibpp entries, each
// outBytesPerSample*(expibpp/ibpp) bytes wide once widened.
type LUT struct {
	Bytes     []byte
	OutBytes  int // bytes per entry: 1 or 2 (8 or 16-bit output), times expibpp/ibpp once widened
	Widened   bool
	Fingerprint Fingerprint
}

// Fingerprint identifies a LUT's content for cross-image sharing: images
// built from the same color chain, decode array, component count, input
// depth, and widening choice can share one physical table.
type Fingerprint struct {
	ChainFingerprint uint64
	DecodeHash       uint64
	Components       int
	InputBits        int
	Widened          bool
}

// Expander decodes one image's sample planes into expanded (blit-ready)
// scanlines. It owns zero or more LUTs (absent for pre-converted data), a
// colorant-index array mapping LUT slots to output colorants, and a claim
// on a shared ExpansionBuffer.
type Expander struct {
	IBPP    int // input bits per sample: 1,2,4,8,12,16,32
	OBPP    int // output bits per channel: 8 or 16
	ExpIBPP int // widened input bits per lookup, <= 16

	LUTs      []*LUT     // one per output plane, nil entry means pass-through
	Colorants []Colorant // lplanes entries: LUT slot -> output colorant

	Store ImageStore

	OTF OnTheFlyConverter // optional; nil if none

	buf *ExpansionBuffer
}

// OnTheFlyConverter converts a direct-rendered scanline from the image's
// blend space to device space in fixed-size batches.
type OnTheFlyConverter interface {
	BatchSize() int
	Convert(scanline []byte, plane int) error
}

// RequestKey identifies a scanline-expansion request; repeating the same
// key without an intervening state change must return the same buffer
// bytes.
type RequestKey struct {
	X, Y, N int32
	OTF     bool
}
