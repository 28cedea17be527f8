// Package render ties the color, shading, expansion, shape-cache, and
// band-table packages into the per-band render loop: display-list object
// -> render info -> blit color -> scan conversion/Gouraud/image expansion
// -> blit chain -> band memory.
package render

import (
	"github.com/ripcore/raster/blitcolor"
	"github.com/ripcore/raster/gouraud"
	"github.com/ripcore/raster/patternshape"
)

// SpanSink is the terminal stage of a blit chain: band memory itself.
// Every span that survives clipping and pattern masking is packed and
// expanded before it reaches here.
type SpanSink interface {
	WriteSpan(y, x0, x1 int32, color *blitcolor.Color) bool
}

// ClipStage narrows a span to whatever portion of it lies inside the
// current clip shape. ok is false when the span is entirely clipped away,
// in which case the caller must not forward it (not a failure: an empty
// span is a normal outcome of clipping).
type ClipStage interface {
	Clip(y, x0, x1 int32) (nx0, nx1 int32, ok bool)
}

// PatternStage splits a span into the sub-runs where the current pattern
// shape's mask is set. Spans within a single scanline must come back in
// increasing X order.
type PatternStage interface {
	Mask(y, x0, x1 int32) []patternshape.Span
}

// BlitChain composes the clip, pattern, and base stages of the blit chain
// (base, clip, pattern, gouraud, intersect). Gouraud shading and image
// expansion sit upstream of the chain (they produce the span's color);
// "intersect" is the combination of Clip and Pattern both narrowing the
// span before it reaches Base.
type BlitChain struct {
	Clip    ClipStage
	Pattern PatternStage
	Base    SpanSink
}

// Span runs one already-colored span through clip and pattern narrowing
// before writing whatever remains to Base. It returns false only if Base
// itself fails; a span fully eliminated by clipping or pattern masking
// is a normal outcome and still returns true.
func (c *BlitChain) Span(y, x0, x1 int32, color *blitcolor.Color) bool {
	if c.Clip != nil {
		var ok bool
		x0, x1, ok = c.Clip.Clip(y, x0, x1)
		if !ok || x1 <= x0 {
			return true
		}
	}

	if c.Pattern == nil {
		return c.Base.WriteSpan(y, x0, x1, color)
	}

	for _, s := range c.Pattern.Mask(y, x0, x1) {
		if s.X1 <= s.X0 {
			continue
		}
		if !c.Base.WriteSpan(y, s.X0, s.X1, color) {
			return false
		}
	}
	return true
}

// GouraudSink adapts a BlitChain into a gouraud.SpanSink: each incoming
// span's per-channel quantised colors are written into a scratch
// blitcolor.Color, packed and expanded through the colormap's chosen
// PackExpander, then run through the chain. Quantise is not re-run here:
// Colors already arrive quantised (gouraud shades in quantised space), so
// only packing is needed before the span reaches band memory.
type GouraudSink struct {
	Chain   *BlitChain
	Scratch *blitcolor.Color
	Failed  bool
}

// NewGouraudSink allocates a scratch color bound to m for repeated span
// emission; the same scratch is reused (and overwritten) for every span.
func NewGouraudSink(chain *BlitChain, m *blitcolor.Colormap) *GouraudSink {
	scratch := &blitcolor.Color{}
	blitcolor.Init(scratch, m)
	// A shaded triangle contributes a value to every one of its color
	// channels for its whole lifetime, so presence is fixed up front
	// rather than tracked per span.
	for i := range m.Channels {
		blitcolor.MarkPresent(scratch, i)
	}
	return &GouraudSink{Chain: chain, Scratch: scratch}
}

// EmitSpan implements gouraud.SpanSink.
func (g *GouraudSink) EmitSpan(s gouraud.Span) {
	if g.Failed {
		return
	}
	for ch, qcv := range s.Colors {
		if ch >= len(g.Scratch.Quantised.QCV) {
			break
		}
		g.Scratch.Quantised.QCV[ch] = qcv
	}
	m := g.Scratch.Map
	if m.Expander != nil {
		m.Expander.Pack(g.Scratch)
		m.Expander.Expand(g.Scratch)
	}
	if !g.Chain.Span(s.Y, s.X0, s.X1, g.Scratch) {
		g.Failed = true
	}
}
