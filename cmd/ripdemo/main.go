// Command ripdemo renders one flat-shaded triangle through the full
// render-core pipeline — band table, blit color, Gouraud scan conversion,
// blit chain — into an in-memory page buffer, then dumps a coverage
// summary per band. It exists to exercise the wiring end to end without a
// real page-buffer device or display-list source behind it.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/ripcore/raster/bandtable"
	"github.com/ripcore/raster/bitvector"
	"github.com/ripcore/raster/blitcolor"
	"github.com/ripcore/raster/gouraud"
	"github.com/ripcore/raster/internal/parallel"
	"github.com/ripcore/raster/render"
	"github.com/ripcore/raster/rerr"
)

// memoryDevice is a minimal bandtable.PageBufferDevice backed by plain
// Go memory: it hands back a scratch slice sized to whatever the manager
// asks for and otherwise does nothing.
type memoryDevice struct {
	scratch []byte
}

func (d *memoryDevice) RasterRequirements(req bandtable.Requirements) ([]byte, error) {
	if !req.Starting {
		return nil, nil
	}
	if req.ScratchSize > len(d.scratch) {
		d.scratch = make([]byte, req.ScratchSize)
	}
	return d.scratch, nil
}

// bandSink writes packed bytes directly into one band's output buffer; it
// implements render.SpanSink.
type bandSink struct {
	geom PageDims
	buf  []byte
}

type PageDims struct {
	Width, BandY0, BandHeight int32
}

func (s *bandSink) WriteSpan(y, x0, x1 int32, color *blitcolor.Color) bool {
	localY := y - s.geom.BandY0
	if localY < 0 || localY >= s.geom.BandHeight {
		return true
	}
	row := localY * s.geom.Width
	for x := x0; x < x1; x++ {
		s.buf[row+x] = color.Packed.Bytes[0]
	}
	return true
}

func main() {
	geom := bandtable.PageGeometry{Width: 64, Height: 64, BandHeight: 16}
	style := bandtable.RasterStyle{Colorants: []bandtable.Colorant{0}, BitsPerComponent: 8}

	pool := parallel.NewWorkerPool(4)
	defer pool.Close()

	mgr := bandtable.NewManager(geom, style, geom.BandCount(), 0, pool)
	device := &memoryDevice{}
	if err := mgr.FixLayout(device); err != nil {
		fail(errors.Wrap(err, "ripdemo: fix layout"))
	}
	if err := mgr.StartRendering(device); err != nil {
		fail(errors.Wrap(err, "ripdemo: start rendering"))
	}

	page := render.NewPage(mgr)
	defer page.Done()

	channels := []blitcolor.Channel{
		{Colorant: 0, Type: blitcolor.ChannelIsColor, BitOffset: 0, BitSize: 8, PackMul: 1},
	}
	colormap, err := blitcolor.NewColormap(channels, -1, -1, -1, 8, blitcolor.Generic8{})
	if err != nil {
		fail(errors.Wrap(err, "ripdemo: new colormap"))
	}

	triangle := &gouraud.Triangle{
		V0:    gouraud.Vertex{X: 8, Y: 4},
		V1:    gouraud.Vertex{X: 56, Y: 20},
		V2:    gouraud.Vertex{X: 8, Y: 56},
		C0:    []int32{255},
		C1:    []int32{255},
		C2:    []int32{255},
		HTMax: []int32{255},
		Flags: gouraud.NewFlagStream(bitvector.New(0)),
	}

	coverage := make([]int, geom.BandCount())
	ok := mgr.RenderBands(func(band int32) bool {
		bandBytes := int(geom.Width) * int(geom.BandHeight)
		buf := mgr.OutputBuffer(bandBytes)
		defer mgr.ReleaseOutputBuffer(buf)

		sink := &bandSink{geom: PageDims{Width: geom.Width, BandY0: band * geom.BandHeight, BandHeight: geom.BandHeight}, buf: buf}
		chain := &render.BlitChain{Base: sink}
		gsink := render.NewGouraudSink(chain, colormap)

		var reg rerr.Register
		triangle.Render(gsink, &reg, nil)

		n := 0
		for _, b := range buf {
			if b != 0 {
				n++
			}
		}
		coverage[band] = n
		return !gsink.Failed
	})

	if !ok {
		fmt.Fprintln(os.Stderr, "render failed")
		os.Exit(1)
	}

	for band, n := range coverage {
		fmt.Printf("band %d: %d pixels covered\n", band, n)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
