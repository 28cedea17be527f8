// Package bandtable assigns the per-colorant band buffers and scratch
// memory a render pass writes into, negotiates the page buffer device's
// raster-requirements handshake, and dispatches per-band render work
// across a worker pool.
package bandtable

// Colorant identifies one output separation.
type Colorant int32

// PageGeometry describes the page being rendered: its pixel dimensions and
// the band height every band buffer is sliced into.
type PageGeometry struct {
	Width, Height int32
	BandHeight    int32
}

// BandCount returns the number of bands needed to cover g's height.
func (g PageGeometry) BandCount() int32 {
	if g.BandHeight <= 0 {
		return 0
	}
	return (g.Height + g.BandHeight - 1) / g.BandHeight
}

// RasterStyle describes the output separations and their sample depth.
type RasterStyle struct {
	Colorants        []Colorant
	BitsPerComponent int
}

// Requirements is what the core tells the page buffer device it needs,
// and what the device needs to size its scratch allocation.
type Requirements struct {
	// Starting is false for the first call (page layout just fixed) and
	// true for the second (rendering about to begin), the two calls of
	// the raster_requirements handshake.
	Starting bool

	Geometry     PageGeometry
	Style        RasterStyle
	MinimumBands int32
	ScratchSize  int
	ScratchBand  int
}

// PageBufferDevice is the external consumer that owns scratch-band memory.
// It is notified of raster requirements twice (once when page layout is
// fixed, once when rendering starts) and returns the scratch buffer to use
// for subsequent bands.
type PageBufferDevice interface {
	RasterRequirements(req Requirements) ([]byte, error)
}

// Band is one colorant's worth of one output band, ready for hand-off to
// the consumer as (plane index, band index, colorant, row count, byte
// count, pointer). A blank band must be declared rather than transmitted,
// so Blank is checked before Data is used.
type Band struct {
	PlaneIndex int
	BandIndex  int32
	Colorant   Colorant
	Rows       int32
	Data       []byte
	Blank      bool
}

// Bytes reports the transmitted size of b; zero for a blank band.
func (b Band) Bytes() int {
	if b.Blank {
		return 0
	}
	return len(b.Data)
}
