package bandtable

import (
	"sync"
	"testing"

	"github.com/ripcore/raster/internal/parallel"
)

type recordingDevice struct {
	mu    sync.Mutex
	calls []Requirements
	buf   []byte
}

func (d *recordingDevice) RasterRequirements(req Requirements) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, req)
	return d.buf, nil
}

func TestRasterRequirementsHandshakeOrder(t *testing.T) {
	geom := PageGeometry{Width: 100, Height: 50, BandHeight: 10}
	m := NewManager(geom, RasterStyle{Colorants: []Colorant{0, 1}}, 4, 1024, nil)
	device := &recordingDevice{buf: make([]byte, 2048)}

	if err := m.FixLayout(device); err != nil {
		t.Fatalf("FixLayout: %v", err)
	}
	if err := m.StartRendering(device); err != nil {
		t.Fatalf("StartRendering: %v", err)
	}

	if len(device.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(device.calls))
	}
	if device.calls[0].Starting {
		t.Fatalf("first call should have Starting=false")
	}
	if !device.calls[1].Starting {
		t.Fatalf("second call should have Starting=true")
	}
	if len(m.Scratch()) != 2048 {
		t.Fatalf("expected scratch buffer to be recorded from the second call")
	}
}

func TestBandCountCoversPartialLastBand(t *testing.T) {
	geom := PageGeometry{Width: 10, Height: 25, BandHeight: 10}
	if geom.BandCount() != 3 {
		t.Fatalf("BandCount = %d, want 3", geom.BandCount())
	}
}

func TestReservedBandsTracksOutputClipPattern(t *testing.T) {
	geom := PageGeometry{Width: 10, Height: 30, BandHeight: 10}
	m := NewManager(geom, RasterStyle{}, 1, 0, nil)

	m.Reserve(1)
	if !m.ReservedBands().IsSet(1) {
		t.Fatalf("expected band 1 reserved")
	}
	m.Release(1)
	if m.ReservedBands().IsSet(1) {
		t.Fatalf("expected band 1 released")
	}
}

func TestBufferPoolReusesSameSizeBuffer(t *testing.T) {
	geom := PageGeometry{Width: 10, Height: 10, BandHeight: 10}
	m := NewManager(geom, RasterStyle{}, 1, 0, nil)

	buf := m.OutputBuffer(128)
	buf[0] = 0xAB
	m.ReleaseOutputBuffer(buf)

	reused := m.OutputBuffer(128)
	if &reused[0] != &buf[0] {
		t.Fatalf("expected the same backing array to be reused")
	}
	if reused[0] != 0 {
		t.Fatalf("expected reused buffer to be cleared")
	}
}

func TestRenderBandsSequentialWithoutPool(t *testing.T) {
	geom := PageGeometry{Width: 10, Height: 30, BandHeight: 10}
	m := NewManager(geom, RasterStyle{}, 1, 0, nil)

	var mu sync.Mutex
	var seen []int32
	ok := m.RenderBands(func(band int32) bool {
		mu.Lock()
		seen = append(seen, band)
		mu.Unlock()
		return true
	})
	if !ok {
		t.Fatalf("expected RenderBands to succeed")
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 bands rendered, got %d", len(seen))
	}
}

func TestRenderBandsWithWorkerPoolReportsFailure(t *testing.T) {
	geom := PageGeometry{Width: 10, Height: 40, BandHeight: 10}
	pool := parallel.NewWorkerPool(2)
	defer pool.Close()

	m := NewManager(geom, RasterStyle{}, 1, 0, pool)
	ok := m.RenderBands(func(band int32) bool {
		return band != 2
	})
	if ok {
		t.Fatalf("expected RenderBands to report the failing band")
	}
}
