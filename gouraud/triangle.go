package gouraud

import (
	"github.com/ripcore/raster/bitvector"
	"github.com/ripcore/raster/rerr"
)

// Vertex is a device-space triangle corner.
type Vertex struct {
	X, Y int32
}

// FlagStream reads one bisection decision at a time from a packed flag
// vector produced during display-list build.
type FlagStream struct {
	bits *bitvector.Vector
	pos  int
}

// NewFlagStream wraps a bit vector for sequential consumption.
func NewFlagStream(bits *bitvector.Vector) *FlagStream {
	return &FlagStream{bits: bits}
}

// Next consumes and returns the next bisection flag. Once the stream is
// exhausted, every remaining triangle is treated as linear.
func (f *FlagStream) Next() bool {
	if f.bits == nil || f.pos >= f.bits.Len() {
		return false
	}
	v := f.bits.IsSet(f.pos)
	f.pos++
	return v
}

// midpoint averages two fixed-point coordinates with a consistent rounding
// rule (round toward negative infinity) so repeated bisection never drifts.
func midpoint(a, b int32) int32 {
	return int32((int64(a) + int64(b)) >> 1)
}

func midVertex(a, b Vertex) Vertex {
	return Vertex{X: midpoint(a.X, b.X), Y: midpoint(a.Y, b.Y)}
}

func midColors(a, b []int32) []int32 {
	out := make([]int32, len(a))
	for i := range a {
		out[i] = midpoint(a[i], b[i])
	}
	return out
}

// Span is one run of constant-stepped color delivered to the blit chain.
type Span struct {
	Y      int32
	X0, X1 int32
	Colors []int32 // quantised color at X0, indexed by channel
}

// SpanSink receives spans in left-to-right order within a scanline; the
// renderer makes no guarantee about the order in which different scanlines
// or bands arrive.
type SpanSink interface {
	EmitSpan(s Span)
}

// NoiseConfig enables anti-aliasing perturbation of the shaded color.
type NoiseConfig struct {
	Shift     uint
	Amplitude int32
}

// Triangle is a Gouraud-shaded triangle awaiting bisection and scan
// conversion: three device-space corners, one quantised color vector per
// corner (indexed by channel), and the bisection flag stream that guided
// its construction in the display list.
type Triangle struct {
	V0, V1, V2 Vertex
	C0, C1, C2 []int32 // per-channel quantised color at each corner
	HTMax      []int32 // per-channel halftone ceiling
	Flags      *FlagStream
	MBands     int32
	Noise      *NoiseConfig
}

// Render bisects the triangle per its flag stream and emits spans for every
// linearly-interpolable leaf to sink. interrupted is polled at each
// bisection depth; if it ever reports true, Render stops and returns a
// recoverable failure through reg.
func (t *Triangle) Render(sink SpanSink, reg *rerr.Register, interrupted func() bool) bool {
	return t.renderNode(t.V0, t.V1, t.V2, t.C0, t.C1, t.C2, sink, reg, interrupted)
}

func (t *Triangle) renderNode(v0, v1, v2 Vertex, c0, c1, c2 []int32, sink SpanSink, reg *rerr.Register, interrupted func() bool) bool {
	if interrupted != nil && interrupted() {
		reg.Fail(rerr.Interrupt)
		return false
	}

	if t.Flags.Next() {
		m01, m12, m20 := midVertex(v0, v1), midVertex(v1, v2), midVertex(v2, v0)
		mc01, mc12, mc20 := midColors(c0, c1), midColors(c1, c2), midColors(c2, c0)

		if !t.renderNode(v0, m01, m20, c0, mc01, mc20, sink, reg, interrupted) {
			return false
		}
		if !t.renderNode(m01, v1, m12, mc01, c1, mc12, sink, reg, interrupted) {
			return false
		}
		if !t.renderNode(m20, m12, v2, mc20, mc12, c2, sink, reg, interrupted) {
			return false
		}
		// Central inverted triangle.
		return t.renderNode(m12, m20, m01, mc12, mc20, mc01, sink, reg, interrupted)
	}

	renderLinear(v0, v1, v2, c0, c1, c2, t.HTMax, t.MBands, t.Noise, sink)
	return true
}

// renderLinear scan-converts one flat (post-bisection) triangle. Degenerate
// geometry collapses to a single pixel rather than surfacing an error.
func renderLinear(v0, v1, v2 Vertex, c0, c1, c2 []int32, htmax []int32, mbands int32, noise *NoiseConfig, sink SpanSink) {
	geom := ComputeGeometry(v0.X, v0.Y, v1.X, v1.Y, v2.X, v2.Y)

	if geom.Degenerate() {
		x, y := v0.X, v0.Y
		sink.EmitSpan(Span{Y: y, X0: x, X1: x + 1, Colors: append([]int32(nil), c0...)})
		return
	}

	nchan := len(c0)
	ddas := make([]ChannelDDA, nchan)
	for ch := 0; ch < nchan; ch++ {
		plane := ComputeChannelPlane(v0.X, v0.Y, v1.X, v1.Y, v2.X, v2.Y, c0[ch], c1[ch], c2[ch])
		ddas[ch] = SetupChannel(geom, plane, c0[ch], htmax[ch], mbands)
	}

	ymin, ymax := triMinMax(v0.Y, v1.Y, v2.Y)

	// rowStart tracks each channel's banded color at the left edge of the
	// current scanline. It is seeded from the DDA set up at corner 0 and
	// thereafter only ever advances through StepY, so every row's first
	// pixel is as banded as the rest of the row.
	rowStart := make([]int32, nchan)
	for ch := range ddas {
		rowStart[ch] = ddas[ch].CQuant.CI
	}

	for y := ymin; y < ymax; y++ {
		x0, x1 := scanlineSpan(v0, v1, v2, y)
		if x1 <= x0 {
			for ch := range ddas {
				ddas[ch].StepY()
				rowStart[ch] = ddas[ch].CQuant.CI
			}
			continue
		}

		colors := append([]int32(nil), rowStart...)
		// The row is walked on a copy, so X steps never reach the next row.
		rowDDAs := append([]ChannelDDA(nil), ddas...)

		var noisers []*NoiseAdder
		if noise != nil {
			noisers = make([]*NoiseAdder, nchan)
			for ch := 0; ch < nchan; ch++ {
				noisers[ch] = NewNoiseAdder(NoiseSeed(x0, y, noise.Shift, int32(ch)), noise.Amplitude)
			}
		}

		x := x0
		for x < x1 {
			span := minSpanLength(rowDDAs, x1-x)
			out := append([]int32(nil), colors...)
			if noisers != nil {
				for ch := range out {
					out[ch] = noisers[ch].Perturb(out[ch], htmax[ch])
				}
			}
			sink.EmitSpan(Span{Y: y, X0: x, X1: x + span, Colors: out})

			for ch := range rowDDAs {
				rowDDAs[ch].StepX()
				colors[ch] = rowDDAs[ch].CQuant.CI
			}
			x += span
		}

		for ch := range ddas {
			ddas[ch].StepY()
			rowStart[ch] = ddas[ch].CQuant.CI
		}
	}
}

func minSpanLength(ddas []ChannelDDA, remaining int32) int32 {
	span := remaining
	for i := range ddas {
		if ddas[i].Mode == ModeFlat {
			continue
		}
		s := ddas[i].XPS
		if s < span {
			span = s
		}
	}
	if span < 1 {
		span = 1
	}
	return span
}

func triMinMax(a, b, c int32) (int32, int32) {
	min, max := a, a
	for _, v := range []int32{b, c} {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max <= min {
		max = min + 1
	}
	return min, max
}

// scanlineSpan intersects the triangle's edges with scanline y, returning
// [x0, x1). It assumes y lies within the triangle's vertical extent.
func scanlineSpan(v0, v1, v2 Vertex, y int32) (int32, int32) {
	xs := make([]int32, 0, 2)
	edges := [3][2]Vertex{{v0, v1}, {v1, v2}, {v2, v0}}
	for _, e := range edges {
		a, b := e[0], e[1]
		if a.Y == b.Y {
			continue
		}
		lo, hi := a, b
		if lo.Y > hi.Y {
			lo, hi = hi, lo
		}
		if y < lo.Y || y >= hi.Y {
			continue
		}
		t := float64(y-lo.Y) / float64(hi.Y-lo.Y)
		xs = append(xs, lo.X+int32(t*float64(hi.X-lo.X)))
	}
	if len(xs) < 2 {
		return 0, 0
	}
	if xs[0] > xs[1] {
		xs[0], xs[1] = xs[1], xs[0]
	}
	return xs[0], xs[1]
}
