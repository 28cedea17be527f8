package patternshape

// buildForm packs a raw one-bit-per-pixel scanline buffer (row-major,
// rows bytes wide, MSB first) into whichever of the two band
// representations is smaller: a packed bitmap or a span list.
//
// Grounded on patternshape_write's choice between the bitmap and
// spanlist output forms, picking the smaller per band rather than
// always emitting one or the other.
func buildForm(raw []byte, rowBytes int, w, h int32) *Form {
	lines := scanSpans(raw, rowBytes, w, h)
	bitmap := packBitmap(raw, rowBytes, w, h)

	if spanBytes(lines) < bitmapBytes(w, h) {
		return &Form{Rep: RepSpanList, Width: w, Height: h, Lines: lines}
	}
	return &Form{Rep: RepBitmap, Width: w, Height: h, Bitmap: bitmap}
}

// scanSpans converts a packed one-bit-per-pixel raw buffer into a span
// list, one slice of runs per row.
func scanSpans(raw []byte, rowBytes int, w, h int32) [][]Span {
	lines := make([][]Span, h)
	for y := int32(0); y < h; y++ {
		row := raw[int(y)*rowBytes : int(y)*rowBytes+rowBytes]
		var spans []Span
		inRun := false
		var start int32
		for x := int32(0); x < w; x++ {
			set := row[x/8]&(0x80>>uint(x%8)) != 0
			switch {
			case set && !inRun:
				inRun = true
				start = x
			case !set && inRun:
				inRun = false
				spans = append(spans, Span{X0: start, X1: x - 1})
			}
		}
		if inRun {
			spans = append(spans, Span{X0: start, X1: w - 1})
		}
		lines[y] = spans
	}
	return lines
}

// packBitmap copies a raw one-bit-per-pixel buffer into a tightly packed
// bitmap, trimming any padding the source rowBytes carried beyond what w
// requires.
func packBitmap(raw []byte, rowBytes int, w, h int32) []byte {
	stride := (int(w) + 7) / 8
	out := make([]byte, stride*int(h))
	for y := int32(0); y < h; y++ {
		copy(out[int(y)*stride:int(y)*stride+stride], raw[int(y)*rowBytes:int(y)*rowBytes+stride])
	}
	return out
}

// TestBit reports whether the pixel at (x, y) is set in f.
func (f *Form) TestBit(x, y int32) bool {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return false
	}
	if f.Rep == RepBitmap {
		stride := (int(f.Width) + 7) / 8
		row := f.Bitmap[int(y)*stride : int(y)*stride+stride]
		return row[x/8]&(0x80>>uint(x%8)) != 0
	}
	for _, s := range f.Lines[y] {
		if x >= s.X0 && x <= s.X1 {
			return true
		}
	}
	return false
}

// Bytes reports the encoded size of f, for diagnostics and the low-memory
// band-form pool's size accounting.
func (f *Form) Bytes() int {
	if f.Rep == RepBitmap {
		return len(f.Bitmap)
	}
	return spanBytes(f.Lines)
}
