package imexpand

import (
	"testing"

	"github.com/ripcore/raster/rerr"
)

// constStore returns the same byte pattern for any fetch, as if reading a
// single repeating tile.
type constStore struct{ b []byte }

func (s constStore) Fetch(plane int, x, y, n int32) ([]byte, error) {
	return s.b, nil
}

func TestWidenLUT1to8Folds4Samples(t *testing.T) {
	// Narrow 1-bit LUT over 2 entries, 1 byte each: 0 -> 0x00, 1 -> 0xFF.
	narrow := [][]byte{{0x00, 0xFF}}
	widened := WidenLUT(narrow, 1, 4, 1)
	if len(widened) != 1 {
		t.Fatalf("expected one output component")
	}
	// 16 entries (2^4), 4 bytes each (n = 4/1).
	if len(widened[0]) != 16*4 {
		t.Fatalf("widened table size = %d, want %d", len(widened[0]), 16*4)
	}
	// Composite index 0b1010 folds samples [1,0,1,0] -> bytes [FF,00,FF,00].
	entry := widened[0][10*4 : 10*4+4]
	want := []byte{0xFF, 0x00, 0xFF, 0x00}
	for i := range want {
		if entry[i] != want[i] {
			t.Fatalf("entry[%d] = %#x, want %#x", i, entry[i], want[i])
		}
	}
}

func TestDecodeSamplesPassThrough(t *testing.T) {
	store := constStore{b: []byte{1, 2, 3, 4}}
	p := Plane{StoreIndex: 0, LUT: nil, IBPP: 8, ExpIBPP: 8}
	out := make([]byte, 4)
	if err := decodeSamples(store, p, 0, 0, 4, out); err != nil {
		t.Fatalf("decodeSamples: %v", err)
	}
	for i, want := range []byte{1, 2, 3, 4} {
		if out[i] != want {
			t.Fatalf("out[%d] = %d, want %d", i, out[i], want)
		}
	}
}

func TestDecodeSamples1BitLUTToBytes(t *testing.T) {
	// 1 bpp input, LUT maps 0->0x00, 1->0xFF, one sample per lookup.
	store := constStore{b: []byte{0b10100000}} // samples: 1,0,1,0,0,0,0,0
	lut := &LUT{Bytes: []byte{0x00, 0xFF}, OutBytes: 1}
	p := Plane{StoreIndex: 0, LUT: lut, IBPP: 1, ExpIBPP: 1}
	out := make([]byte, 8)
	if err := decodeSamples(store, p, 0, 0, 8, out); err != nil {
		t.Fatalf("decodeSamples: %v", err)
	}
	want := []byte{0xFF, 0x00, 0xFF, 0x00, 0x00, 0x00, 0x00, 0x00}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d] = %#x, want %#x", i, out[i], want[i])
		}
	}
}

func TestExpansionBufferRefcounting(t *testing.T) {
	buf := NewExpansionBuffer(64)
	buf.Retain()
	if buf.Release() {
		t.Fatalf("buffer should still have one reference")
	}
	if !buf.Release() {
		t.Fatalf("buffer should be released at zero references")
	}
}

func TestRequestRepeatsCachedBuffer(t *testing.T) {
	store := constStore{b: []byte{1, 1, 1, 1}}
	e := &Expander{IBPP: 8, OBPP: 8, ExpIBPP: 8, Store: store, LUTs: []*LUT{nil}}
	e.SetBuffer(NewExpansionBuffer(16))

	reg := &rerr.Register{}
	data1, ok := e.Request(0, 0, 4, []int{0}, false, reg)
	if !ok {
		t.Fatalf("Request failed: %v", reg.Kind())
	}
	data2, ok := e.Request(0, 0, 4, []int{0}, false, reg)
	if !ok {
		t.Fatalf("Request failed: %v", reg.Kind())
	}
	if &data1[0] != &data2[0] {
		t.Fatalf("expected identical buffer on repeated identical request")
	}
}

type fakePageImages struct {
	expanders []*Expander
	shared    *ExpansionBuffer
}

func (f *fakePageImages) Expanders() []*Expander        { return f.expanders }
func (f *fakePageImages) Shared() *ExpansionBuffer       { return f.shared }
func (f *fakePageImages) SetShared(buf *ExpansionBuffer) { f.shared = buf }

func TestLowMemReleaseCoalescesOntoLargest(t *testing.T) {
	small := NewExpansionBuffer(16)
	big := NewExpansionBuffer(64)

	e1 := &Expander{}
	e1.SetBuffer(small)
	e2 := &Expander{}
	e2.SetBuffer(big)

	pages := &fakePageImages{expanders: []*Expander{e1, e2}}
	h := &LowMemHandler{PurgeAllowed: func() bool { return true }}

	if !h.Release(pages) {
		t.Fatalf("Release failed")
	}
	if e1.Buffer() != big || e2.Buffer() != big {
		t.Fatalf("expected both expanders sharing the largest buffer")
	}
	if pages.Shared() != big {
		t.Fatalf("expected page's shared buffer to be the largest")
	}
}

func TestLowMemSolicitRefusedDuringRender(t *testing.T) {
	h := &LowMemHandler{PurgeAllowed: func() bool { return false }}
	pages := &fakePageImages{}
	if _, ok := h.Solicit(pages, 1); ok {
		t.Fatalf("expected Solicit to refuse when purge is not allowed")
	}
}

func TestLUTCacheSharesIdenticalFingerprint(t *testing.T) {
	cache := NewLUTCache()
	fp := Fingerprint{ChainFingerprint: 1, Components: 1, InputBits: 1, Widened: true}
	narrow := [][]byte{{0x00, 0xFF}}

	builds := 0
	build := func() [][]byte { builds++; return narrow }
	lut1 := cache.Build(fp, build(), 1, 4, 1)
	lut2 := cache.Build(fp, build(), 1, 4, 1)

	if lut1 != lut2 {
		t.Fatalf("expected the second Build to return the cached LUT")
	}
	if builds != 2 {
		t.Fatalf("test helper invariant broken")
	}
	if lut1.OutBytes != 4 {
		t.Fatalf("widened OutBytes = %d, want 4", lut1.OutBytes)
	}
}
