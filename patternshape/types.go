// Package patternshape caches the rasterized shape of a pattern or clip
// path so it can be reused by every display-list object that shares it,
// instead of re-rendering the same mask once per reference.
package patternshape

// BBox is an inclusive pixel-space bounding box.
type BBox struct {
	X1, Y1, X2, Y2 int32
}

// Empty reports whether b covers no pixels.
func (b BBox) Empty() bool {
	return b.X2 < b.X1 || b.Y2 < b.Y1
}

// Union returns the smallest box covering both b and o. An empty operand
// does not contribute.
func (b BBox) Union(o BBox) BBox {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	u := b
	if o.X1 < u.X1 {
		u.X1 = o.X1
	}
	if o.Y1 < u.Y1 {
		u.Y1 = o.Y1
	}
	if o.X2 > u.X2 {
		u.X2 = o.X2
	}
	if o.Y2 > u.Y2 {
		u.Y2 = o.Y2
	}
	return u
}

// Contains reports whether b fully covers o.
func (b BBox) Contains(o BBox) bool {
	if o.Empty() {
		return true
	}
	return o.X1 >= b.X1 && o.Y1 >= b.Y1 && o.X2 <= b.X2 && o.Y2 <= b.Y2
}

// Span is one run of set pixels on a single scanline, [X0, X1] inclusive.
type Span struct {
	X0, X1 int32
}

// Representation names which of the two band encodings a Form is using.
type Representation int

const (
	RepBitmap Representation = iota
	RepSpanList
)

// Form is one band's worth of a shape mask, stored as whichever of the two
// representations is smaller: a packed bitmap, or a per-line span list.
type Form struct {
	Rep    Representation
	Width  int32
	Height int32

	// Bitmap holds Height rows of ceil(Width/8) bytes each, MSB first.
	// Populated only when Rep == RepBitmap.
	Bitmap []byte

	// Lines holds one span slice per row. Populated only when
	// Rep == RepSpanList.
	Lines [][]Span
}

// bitmapBytes returns the packed-bitmap size in bytes for a w x h region.
func bitmapBytes(w, h int32) int {
	stride := (int(w) + 7) / 8
	return stride * int(h)
}

// spanBytes estimates the span-list encoding size in bytes, two int32s per
// span plus one count per line, mirroring the original's representation
// trade-off between a bitmap and a run-length encoded band.
func spanBytes(lines [][]Span) int {
	total := 0
	for _, l := range lines {
		total += 4 + 8*len(l)
	}
	return total
}

// FormArray is the per-band mask for one pattern or clip shape, covering
// BBox sliced into bands of BandHeight rows each (the last band may be
// shorter).
type FormArray struct {
	BBox       BBox
	BandHeight int32
	Forms      []*Form
}

// AugmentedKey identifies the pattern-stack context an augmented mask was
// built for: the chain of ancestor pattern-shape ids from innermost to
// outermost.
type AugmentedKey []int32

// Equal reports whether k and o name the same pattern stack.
func (k AugmentedKey) Equal(o AugmentedKey) bool {
	if len(k) != len(o) {
		return false
	}
	for i := range k {
		if k[i] != o[i] {
			return false
		}
	}
	return true
}

// AugmentedMask is an additional mask required for a recursive pattern not
// defined in its immediate parent's context: the parent's default shape,
// combined with the shapes of every pattern on the stack between the
// parent and the point where the recursive pattern was defined.
type AugmentedMask struct {
	IDs  AugmentedKey
	Mask *FormArray
}

// Shape is the cached mask for one pattern's shape, or one clip path's
// shape, identified by a unique id assigned when it is created.
type Shape struct {
	ID int32

	// IDs is the id of this shape followed by the ids of every ancestor
	// pattern shape up the nesting stack, innermost first. Populated only
	// when augmented masks may be needed (nested patterns).
	IDs []int32

	// PatternID identifies the pattern this shape belongs to, or -1 for a
	// clip shape.
	PatternID int32

	BBox     BBox
	Finished bool
	Mask     *FormArray

	Augmented []*AugmentedMask
}

// FindAugmentedMask returns the augmented mask s already holds for the
// given pattern-stack context, or nil if none has been built yet.
func (s *Shape) FindAugmentedMask(ids AugmentedKey) *AugmentedMask {
	if ids == nil {
		return nil
	}
	for _, a := range s.Augmented {
		if a.IDs.Equal(ids) {
			return a
		}
	}
	return nil
}

// newAugmentedMask registers and returns a new, as-yet-unpainted augmented
// mask entry for the given pattern-stack context.
func (s *Shape) newAugmentedMask(ids AugmentedKey) *AugmentedMask {
	a := &AugmentedMask{IDs: append(AugmentedKey(nil), ids...)}
	s.Augmented = append(s.Augmented, a)
	return a
}
