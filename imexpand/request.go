package imexpand

import "github.com/ripcore/raster/rerr"

// SetBuffer binds e to buf, releasing any previously bound buffer. Used both
// at expander construction and by the low-memory handler when it coalesces
// images onto a shared buffer.
func (e *Expander) SetBuffer(buf *ExpansionBuffer) {
	if e.buf != nil && e.buf != buf {
		// Release drops the reference; Go's allocator reclaims the bytes
		// once nothing else points at them, so a zero result needs no
		// further action here.
		e.buf.Release()
	}
	e.buf = buf
	if buf != nil {
		buf.invalidate()
	}
}

// Buffer returns the expansion buffer currently bound to e, or nil.
func (e *Expander) Buffer() *ExpansionBuffer { return e.buf }

// Request runs the per-scanline state machine: align, decode each expanded
// plane, optionally convert on the fly, and return the shared buffer's
// bytes. Repeating an identical request with no intervening state change
// returns the identical buffer without redoing the decode.
func (e *Expander) Request(x, y, n int32, expandedToPlane []int, otf bool, reg *rerr.Register) ([]byte, bool) {
	if e.buf == nil {
		return nil, reg.Fail(rerr.MemoryExhaustion)
	}

	alignedX := x &^ int32(wordAlignMask)
	key := RequestKey{X: alignedX, Y: y, N: n, OTF: otf}

	if e.buf.cached(key, expandedToPlane) {
		return e.buf.Data, true
	}

	if len(expandedToPlane) < len(e.Colorants) {
		for i := range e.buf.Data {
			e.buf.Data[i] = 0
		}
	}

	bytesPerPlane := e.OBPP / 8
	if bytesPerPlane < 1 {
		bytesPerPlane = 1
	}
	need := len(expandedToPlane) * int(n) * bytesPerPlane
	if need > len(e.buf.Data) {
		return nil, reg.Fail(rerr.ExpansionBufferTooSmall)
	}

	for slot, planeIdx := range expandedToPlane {
		if planeIdx < 0 || planeIdx >= len(e.LUTs) {
			continue
		}
		p := Plane{
			StoreIndex: planeIdx,
			LUT:        e.LUTs[planeIdx],
			IBPP:       e.IBPP,
			ExpIBPP:    e.ExpIBPP,
		}
		out := e.buf.Data[slot*int(n)*bytesPerPlane : (slot+1)*int(n)*bytesPerPlane]
		if err := decodeSamples(e.Store, p, alignedX, y, n, out); err != nil {
			return nil, reg.Fail(rerr.MemoryExhaustion)
		}
	}

	if otf && e.OTF != nil {
		batch := e.OTF.BatchSize()
		for slot := range expandedToPlane {
			start := slot * int(n) * bytesPerPlane
			end := start + int(n)*bytesPerPlane
			for b := start; b < end; b += batch {
				chunkEnd := b + batch
				if chunkEnd > end {
					chunkEnd = end
				}
				if err := e.OTF.Convert(e.buf.Data[b:chunkEnd], slot); err != nil {
					return nil, reg.Fail(rerr.MemoryExhaustion)
				}
			}
		}
	}

	e.buf.remember(key, expandedToPlane)
	return e.buf.Data, true
}

// wordAlignMask aligns scanline requests to an 8-sample (one-byte) boundary,
// the coarsest alignment that keeps every supported ibpp byte-aligned.
const wordAlignMask = 7
