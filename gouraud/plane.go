package gouraud

// Geometry is the part of a triangle's plane equation that depends only on
// (x, y), shared by every channel. Adz is twice the triangle's signed area;
// a degenerate (collinear or zero-area) triangle has Adz == 0.
type Geometry struct {
	Adz int64
}

// ComputeGeometry derives the shared plane denominator from three device
// space corners.
func ComputeGeometry(x0, y0, x1, y1, x2, y2 int32) Geometry {
	dx1 := int64(x1 - x0)
	dy1 := int64(y1 - y0)
	dx2 := int64(x2 - x0)
	dy2 := int64(y2 - y0)
	return Geometry{Adz: dx1*dy2 - dy1*dx2}
}

// Degenerate reports whether the triangle has no interior: collinear
// vertices, or two coincident vertices.
func (g Geometry) Degenerate() bool { return g.Adz == 0 }

// ChannelPlane is the per-channel part of the plane equation: the color
// across (x, y) satisfies adz*(c-c0) = -(adx*(x-x0) + ady*(y-y0)).
type ChannelPlane struct {
	Adx int64
	Ady int64
}

// ComputeChannelPlane derives adx/ady for one channel's corner colors.
func ComputeChannelPlane(x0, y0, x1, y1, x2, y2 int32, c0, c1, c2 int32) ChannelPlane {
	dx1 := int64(x1 - x0)
	dy1 := int64(y1 - y0)
	dx2 := int64(x2 - x0)
	dy2 := int64(y2 - y0)
	dc1 := int64(c1 - c0)
	dc2 := int64(c2 - c0)

	return ChannelPlane{
		Adx: dy1*dc2 - dc1*dy2,
		Ady: dc1*dx2 - dx1*dc2,
	}
}

// ValueAt evaluates the plane at (x, y) relative to corner 0, rounding to
// the nearest integer color.
func (p ChannelPlane) ValueAt(g Geometry, x0, y0, c0, x, y int32) int32 {
	if g.Adz == 0 {
		return c0
	}
	dx := int64(x - x0)
	dy := int64(y - y0)
	num := -(p.Adx*dx + p.Ady*dy)
	// Round to nearest rather than truncate toward zero.
	half := g.Adz / 2
	if num < 0 {
		half = -half
	}
	return c0 + int32((num+half)/g.Adz)
}
