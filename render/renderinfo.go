package render

import (
	"github.com/ripcore/raster/blitcolor"
	"github.com/ripcore/raster/halftone"
	"github.com/ripcore/raster/patternshape"
)

// RenderInfo is the per-object context threaded through a band's render
// pass: which colormap to unpack/quantise against, which clip and
// pattern shapes currently apply, and the blit chain spans are written
// through.
type RenderInfo struct {
	Colormap *blitcolor.Colormap
	Chain    *BlitChain

	ClipShape    *patternshape.Shape
	PatternShape *patternshape.Shape

	Bounds  patternshape.BBox
	Spotno  int32
	ObjType int32

	Halftone halftone.Engine
}

// HTMax looks up the halftone ceiling for colorant ci under the current
// spot and object-type, delegating to the halftone engine collaborator.
func (ri *RenderInfo) HTMax(ci int32) int32 {
	if ri.Halftone == nil {
		return 0
	}
	return ri.Halftone.HTMax(ri.Spotno, ri.ObjType, ci)
}
