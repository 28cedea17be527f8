package bandtable

import (
	"github.com/pkg/errors"

	"github.com/ripcore/raster/bitvector"
	"github.com/ripcore/raster/internal/parallel"
)

// Manager assigns per-colorant band buffers, negotiates the page buffer
// device's two-call raster-requirements handshake, tracks which bands are
// reserved (output, clipping, pattern-shape), and dispatches per-band
// render work across a worker pool.
type Manager struct {
	Geometry     PageGeometry
	Style        RasterStyle
	MinimumBands int32
	ScratchBand  int

	scratch  []byte
	reserved *bitvector.Vector
	output   *bufferPool
	clip     *bufferPool
	pattern  *bufferPool

	pool *parallel.WorkerPool
}

// NewManager creates a band-table manager for one page. pool is shared
// across the whole render (workers own a band each); passing nil disables
// parallel dispatch and RenderBands runs sequentially.
func NewManager(geom PageGeometry, style RasterStyle, minimumBands int32, scratchBand int, pool *parallel.WorkerPool) *Manager {
	return &Manager{
		Geometry:     geom,
		Style:        style,
		MinimumBands: minimumBands,
		ScratchBand:  scratchBand,
		reserved:     bitvector.New(int(geom.BandCount())),
		output:       newBufferPool(),
		clip:         newBufferPool(),
		pattern:      newBufferPool(),
		pool:         pool,
	}
}

// FixLayout performs the first raster_requirements call, made once the
// page geometry is fixed but before rendering begins.
func (m *Manager) FixLayout(device PageBufferDevice) error {
	_, err := device.RasterRequirements(Requirements{
		Starting:     false,
		Geometry:     m.Geometry,
		Style:        m.Style,
		MinimumBands: m.MinimumBands,
		ScratchBand:  m.ScratchBand,
	})
	if err != nil {
		return errors.Wrap(err, "bandtable: fix layout")
	}
	return nil
}

// StartRendering performs the second raster_requirements call, made when
// rendering actually starts, and records the scratch buffer the device
// hands back for subsequent bands.
func (m *Manager) StartRendering(device PageBufferDevice) error {
	scratch, err := device.RasterRequirements(Requirements{
		Starting:     true,
		Geometry:     m.Geometry,
		Style:        m.Style,
		MinimumBands: m.MinimumBands,
		ScratchSize:  len(m.scratch),
		ScratchBand:  m.ScratchBand,
	})
	if err != nil {
		return errors.Wrap(err, "bandtable: start rendering")
	}
	m.scratch = scratch
	return nil
}

// Scratch returns the scratch buffer negotiated by StartRendering.
func (m *Manager) Scratch() []byte { return m.scratch }

// ReservedBands exposes the reserved-bands bitmap: a band with its bit set
// is held for output, clipping, or pattern-shape use and must not be
// reassigned.
func (m *Manager) ReservedBands() *bitvector.Vector { return m.reserved }

// Reserve marks band as reserved.
func (m *Manager) Reserve(band int32) { m.reserved.Set(int(band)) }

// Release clears band's reservation.
func (m *Manager) Release(band int32) { m.reserved.Clear(int(band)) }

// OutputBuffer returns a band buffer of bandBytes bytes for the output
// plane, reused from the pool when possible.
func (m *Manager) OutputBuffer(bandBytes int) []byte { return m.output.Get(bandBytes) }

// ReleaseOutputBuffer returns buf to the output pool for reuse.
func (m *Manager) ReleaseOutputBuffer(buf []byte) { m.output.Put(buf) }

// ClipBuffer returns a band buffer of bandBytes bytes for the clipping
// plane, reused from the pool when possible.
func (m *Manager) ClipBuffer(bandBytes int) []byte { return m.clip.Get(bandBytes) }

// ReleaseClipBuffer returns buf to the clip pool for reuse.
func (m *Manager) ReleaseClipBuffer(buf []byte) { m.clip.Put(buf) }

// PatternShapeBuffer returns a band buffer of bandBytes bytes for
// pattern-shape rasterization, reused from the pool when possible.
func (m *Manager) PatternShapeBuffer(bandBytes int) []byte { return m.pattern.Get(bandBytes) }

// ReleasePatternShapeBuffer returns buf to the pattern-shape pool for reuse.
func (m *Manager) ReleasePatternShapeBuffer(buf []byte) { m.pattern.Put(buf) }

// RenderBands dispatches one render(bandIndex) call per band in
// [0, Geometry.BandCount()), each worker owning its band independently.
// Band order is not guaranteed. RenderBands returns false if any band's
// render call returned false; each band records its result in its own
// slot, so the outcome does not depend on completion order.
func (m *Manager) RenderBands(render func(band int32) bool) bool {
	bandCount := m.Geometry.BandCount()
	if bandCount == 0 {
		return true
	}

	ok := make([]bool, bandCount)
	work := make([]func(), bandCount)
	for i := int32(0); i < bandCount; i++ {
		band := i
		work[i] = func() { ok[band] = render(band) }
	}

	if m.pool == nil {
		for _, fn := range work {
			fn()
		}
	} else {
		m.pool.ExecuteAll(work)
	}

	for _, bandOK := range ok {
		if !bandOK {
			return false
		}
	}
	return true
}
