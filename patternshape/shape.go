package patternshape

import "github.com/ripcore/raster/rerr"

// BandSource renders one band's worth of a shape (either a pattern's
// display-list content, or a complex clip path) into a raw one-bit-per-pixel
// buffer. Row stride is returned alongside the bits since a renderer may pad
// rows to a word boundary.
//
// This stands in for patternshape_finish's render_objects_of_z_order_band /
// regenerate_clipping dispatch: building the actual DL objects and clip
// regeneration is display-list-internal and out of scope here, so callers
// supply whichever of the two the original chose at the call site.
type BandSource interface {
	RenderBand(y1, y2 int32, width int32) (raw []byte, rowBytes int, err error)
}

// NewShape creates an unfinished shape covering no pixels yet; its bbox
// grows via GrowBBox as display-list objects referencing it are scanned.
func NewShape(id, patternID int32) *Shape {
	return &Shape{ID: id, PatternID: patternID, BBox: BBox{X1: 1, Y1: 1, X2: 0, Y2: 0}}
}

// GrowBBox extends s's bbox to include obj, rounding x1 down to an 8-pixel
// (one-byte) boundary the way the original aligns to blit_t.
func (s *Shape) GrowBBox(obj BBox) {
	obj.X1 &^= 7
	s.BBox = s.BBox.Union(obj)
}

// Finish rasterizes s band by band, choosing the smaller of a bitmap or
// span-list encoding per band, exactly as patternshape_finish does. A shape
// whose bbox never grew (no DL objects referenced it) finishes immediately
// with no mask, matching the original's "union of bboxes is empty" fast
// path.
func (s *Shape) Finish(source BandSource, bandHeight int32, interrupted func() bool, reg *rerr.Register) bool {
	if s.Finished {
		return true
	}
	if s.BBox.Empty() {
		s.Finished = true
		return true
	}

	width := s.BBox.X2 - s.BBox.X1 + 1
	formArray := &FormArray{BBox: s.BBox, BandHeight: bandHeight}

	for y1 := s.BBox.Y1; y1 <= s.BBox.Y2; y1 += bandHeight {
		if interrupted != nil && interrupted() {
			return reg.Fail(rerr.Interrupt)
		}

		y2 := y1 + bandHeight - 1
		if y2 > s.BBox.Y2 {
			y2 = s.BBox.Y2
		}

		raw, rowBytes, err := source.RenderBand(y1, y2, width)
		if err != nil {
			return reg.Fail(rerr.MemoryExhaustion)
		}

		formArray.Forms = append(formArray.Forms, buildForm(raw, rowBytes, width, y2-y1+1))
	}

	s.Mask = formArray
	s.Finished = true
	return true
}
