package imexpand

import "math"

// Plane describes one source plane's decode parameters for a single
// expansion request.
type Plane struct {
	StoreIndex int
	LUT        *LUT // nil: pass-through (already obpp-wide) or float input
	IBPP       int  // raw input bits per sample
	ExpIBPP    int  // widened lookup width; equals IBPP when not widened
}

// readSample extracts a bitSize-bit, MSB-first sample from raw starting at
// bitOffset.
func readSample(raw []byte, bitOffset, bitSize int) uint32 {
	var v uint32
	for i := 0; i < bitSize; i++ {
		pos := bitOffset + i
		b := raw[pos/8]
		bit := (b >> (7 - uint(pos%8))) & 1
		v = v<<1 | uint32(bit)
	}
	return v
}

// decodeSamples runs the dispatch described in the scanline state machine:
// for each of n samples, read (possibly several folded into one widened
// lookup) input bits and write the resulting LUT entry, or pass the sample
// through unmodified, into out.
func decodeSamples(store ImageStore, p Plane, x, y, n int32, out []byte) error {
	if p.IBPP == 32 && p.LUT == nil {
		return decodeFloat32(store, p, x, y, n, out)
	}

	raw, err := store.Fetch(p.StoreIndex, x, y, n)
	if err != nil {
		return err
	}

	if p.LUT == nil {
		// Nolut case: already decoded to obpp, straight copy.
		copy(out, raw)
		return nil
	}

	group := p.ExpIBPP / p.IBPP
	if group < 1 {
		group = 1
	}
	entrySize := p.LUT.OutBytes
	if !p.LUT.Widened {
		entrySize *= group
	}

	outPos := 0
	for i := int32(0); i < n; i += int32(group) {
		idx := uint32(0)
		for s := 0; s < group && i+int32(s) < n; s++ {
			sample := readSample(raw, int(i+int32(s))*p.IBPP, p.IBPP)
			idx = idx<<uint(p.IBPP) | sample
		}
		start := int(idx) * entrySize
		if start+entrySize > len(p.LUT.Bytes) {
			continue // out-of-range index from a short final group; leave zeroed
		}
		copy(out[outPos:outPos+entrySize], p.LUT.Bytes[start:start+entrySize])
		outPos += entrySize
	}
	return nil
}

// decodeFloat32 converts raw IEEE-754 big-endian float32 samples (PDF/PS
// float image data) directly to fixed-point output, bypassing the LUT.
func decodeFloat32(store ImageStore, p Plane, x, y, n int32, out []byte) error {
	raw, err := store.Fetch(p.StoreIndex, x, y, n*4)
	if err != nil {
		return err
	}
	for i := int32(0); i < n; i++ {
		bits := uint32(raw[i*4])<<24 | uint32(raw[i*4+1])<<16 | uint32(raw[i*4+2])<<8 | uint32(raw[i*4+3])
		f := math.Float32frombits(bits)
		if f < 0 {
			f = 0
		}
		if f > 1 {
			f = 1
		}
		fixed16 := uint16(f * 65535)
		out[i*2] = byte(fixed16 >> 8)
		out[i*2+1] = byte(fixed16)
	}
	return nil
}
