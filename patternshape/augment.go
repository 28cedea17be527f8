package patternshape

// PatternTracker is the minimal per-pattern-instance state augmentation
// needs: the shape representing this pattern's own shapes, the pattern it
// is nested directly inside (for id-chain construction), and the pattern
// its mask must be combined with when it is *not* defined in that
// immediate parent's context.
//
// Mirrors pattern_tracker_t's patternshape/pParentPattern/pContextPattern
// trio; every other field of the original (the key-cell geometry, the
// replication counts) belongs to pattern replication, out of scope here.
type PatternTracker struct {
	PatternShape   *Shape
	ParentPattern  *PatternTracker
	ContextPattern *PatternTracker
}

// MakeIDs returns the id of t's shape followed by every ancestor's shape
// id, innermost first, for use as an AugmentedKey. Ported from
// patternshape_makeids.
func MakeIDs(t *PatternTracker) AugmentedKey {
	var ids AugmentedKey
	for cur := t; cur != nil; cur = cur.ParentPattern {
		ids = append(ids, cur.PatternShape.ID)
	}
	return ids
}

// Augment builds (or reuses) the augmented mask required when a recursive
// pattern is not defined in the context of its immediate parent: the
// parent's default shape mask, combined with the shapes of every pattern
// between the parent and the point where the recursive pattern was
// defined.
//
// If t has no context pattern (it was defined in its immediate parent) no
// augmentation is required and Augment is a no-op, matching
// patternshape_augment's early return.
func Augment(t *PatternTracker, ids AugmentedKey) bool {
	if t.ContextPattern == nil {
		return true
	}

	shape := t.ContextPattern.PatternShape

	augmented := shape.FindAugmentedMask(ids)
	var base *FormArray
	if augmented != nil {
		base = augmented.Mask
	} else {
		augmented = shape.newAugmentedMask(ids)
		base = shape.Mask
	}

	paintFrom := t.PatternShape.Mask
	if existing := t.PatternShape.FindAugmentedMask(ids); existing != nil {
		paintFrom = existing.Mask
	}

	augmented.Mask = And(base, paintFrom)
	return true
}

// And combines two finished form arrays by intersecting their bboxes and
// ANDing the pixels within, producing the mask for a pattern stack whose
// shape is the overlap of both. a and b must share the same band height.
//
// Pattern replication (tiling the child pattern's key cell across the
// parent mask before combining) is not modeled: it belongs to the
// pattern-replication subsystem, which sits above this cache.
func And(a, b *FormArray) *FormArray {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	box := BBox{
		X1: max32(a.BBox.X1, b.BBox.X1),
		Y1: max32(a.BBox.Y1, b.BBox.Y1),
		X2: min32(a.BBox.X2, b.BBox.X2),
		Y2: min32(a.BBox.Y2, b.BBox.Y2),
	}
	bandHeight := a.BandHeight
	out := &FormArray{BBox: box, BandHeight: bandHeight}
	if box.Empty() {
		return out
	}

	width := box.X2 - box.X1 + 1
	for y1 := box.Y1; y1 <= box.Y2; y1 += bandHeight {
		y2 := y1 + bandHeight - 1
		if y2 > box.Y2 {
			y2 = box.Y2
		}
		height := y2 - y1 + 1
		rowBytes := (int(width) + 7) / 8
		raw := make([]byte, rowBytes*int(height))
		for y := int32(0); y < height; y++ {
			for x := int32(0); x < width; x++ {
				if a.testAt(box.X1+x, y1+y) && b.testAt(box.X1+x, y1+y) {
					raw[int(y)*rowBytes+int(x)/8] |= 0x80 >> uint(x%8)
				}
			}
		}
		out.Forms = append(out.Forms, buildForm(raw, rowBytes, width, height))
	}
	return out
}

// testAt reports whether the pixel at absolute (x, y) is set in fa.
func (fa *FormArray) testAt(x, y int32) bool {
	if x < fa.BBox.X1 || x > fa.BBox.X2 || y < fa.BBox.Y1 || y > fa.BBox.Y2 {
		return false
	}
	band := int((y - fa.BBox.Y1) / fa.BandHeight)
	if band < 0 || band >= len(fa.Forms) {
		return false
	}
	bandY0 := fa.BBox.Y1 + int32(band)*fa.BandHeight
	return fa.Forms[band].TestBit(x-fa.BBox.X1, y-bandY0)
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
