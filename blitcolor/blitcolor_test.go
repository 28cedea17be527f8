package blitcolor

import "testing"

// fakeHalftone returns a fixed htmax for every colorant, as if a single
// spot/screen/type combination were in force.
type fakeHalftone struct{ max int32 }

func (f fakeHalftone) ClearScreen(spotno, httype, ci int32) int32 { return f.max }

func newCMYKMap(t *testing.T) *Colormap {
	t.Helper()
	channels := []Channel{
		{Colorant: 0, Type: ChannelIsColor, BitOffset: 0, BitSize: 8, PackMul: 1, PackAdd: 0},
		{Colorant: 1, Type: ChannelIsColor, BitOffset: 8, BitSize: 8, PackMul: 1, PackAdd: 0},
		{Colorant: 2, Type: ChannelIsColor, BitOffset: 16, BitSize: 8, PackMul: 1, PackAdd: 0},
		{Colorant: 3, Type: ChannelIsColor, BitOffset: 24, BitSize: 8, PackMul: 1, PackAdd: 0},
		{Colorant: ColorantAll, Type: ChannelIsColor, BitOffset: 0, BitSize: 0},
		{Colorant: ColorantAlpha, Type: ChannelIsAlpha, BitOffset: 0, BitSize: 0},
		{Type: ChannelIsType, BitOffset: 0, BitSize: 0},
	}
	m, err := NewColormap(channels, 4, 5, 6, 8, Generic8{})
	if err != nil {
		t.Fatalf("NewColormap: %v", err)
	}
	return m
}

type cmykSource struct{ c, m2, y, k ColorValue }

func (s cmykSource) Colorant(ci int32) (ColorValue, bool) {
	switch ci {
	case 0:
		return s.c, true
	case 1:
		return s.m2, true
	case 2:
		return s.y, true
	case 3:
		return s.k, true
	}
	return 0, false
}
func (cmykSource) Overprinted(int32) bool { return false }
func (s cmykSource) FirstColorant() (int32, ColorValue, bool) { return 0, s.c, true }

// TestScenarioCMYKPack reproduces end-to-end scenario 2: packing
// (0.25, 0.5, 0.75, 1.0) at 8bpc with identity pack-mul/add.
func TestScenarioCMYKPack(t *testing.T) {
	m := newCMYKMap(t)
	ht := fakeHalftone{max: 255}

	var color Color
	Init(&color, m)
	QuantiseSetScreen(&color, ht, 1, 0)

	src := cmykSource{
		c:  ColorValue(0.25 * 65536),
		m2: ColorValue(0.5 * 65536),
		y:  ColorValue(0.75 * 65536),
		k:  ColorValueOne,
	}
	Unpack(&color, src, 0, false, false, false, false)
	Quantise(&color)

	wantQCV := []int32{64, 128, 191, 255}
	for i, want := range wantQCV {
		if got := color.Quantised.QCV[i]; got != want {
			t.Errorf("channel %d quantised = %d, want %d", i, got, want)
		}
	}

	Pack(&color)
	wantBytes := []byte{64, 128, 191, 255}
	for i, want := range wantBytes {
		if got := color.Packed.Bytes[i]; got != want {
			t.Errorf("packed byte %d = %d, want %d", i, got, want)
		}
	}
}

func newMonochromeMap(t *testing.T) *Colormap {
	t.Helper()
	channels := []Channel{
		{Colorant: ColorantAll, Type: ChannelIsColor, BitOffset: 0, BitSize: 1, PackMul: 1, PackAdd: 0},
		{Colorant: ColorantAlpha, Type: ChannelIsAlpha, BitOffset: 0, BitSize: 0},
		{Type: ChannelIsType, BitOffset: 0, BitSize: 0},
	}
	m, err := NewColormap(channels, 0, 1, 2, 8, Mask{})
	if err != nil {
		t.Fatalf("NewColormap: %v", err)
	}
	return m
}

type allSource struct{ cv ColorValue }

func (s allSource) Colorant(ci int32) (ColorValue, bool) {
	if ci == ColorantAll {
		return s.cv, true
	}
	return 0, false
}
func (allSource) Overprinted(int32) bool                        { return false }
func (s allSource) FirstColorant() (int32, ColorValue, bool) { return ColorantAll, s.cv, true }

// TestScenarioMonochromeSpan reproduces end-to-end scenario 1.
func TestScenarioMonochromeSpan(t *testing.T) {
	m := newMonochromeMap(t)
	ht := fakeHalftone{max: 1}

	var color Color
	Init(&color, m)
	QuantiseSetScreen(&color, ht, 1, 0)

	Unpack(&color, allSource{cv: ColorValueZero}, 0, false, false, false, false)
	Quantise(&color)
	Pack(&color)
	if color.Packed.Bytes[0] != 0 {
		t.Fatalf("black packed[0] = %#x, want 0", color.Packed.Bytes[0])
	}

	Init(&color, m)
	QuantiseSetScreen(&color, ht, 1, 0)
	Unpack(&color, allSource{cv: ColorValueOne}, 0, false, false, false, false)
	Quantise(&color)
	Pack(&color)
	if color.Packed.Bytes[0] != 0xFF {
		t.Fatalf("white packed[0] = %#x, want 0xff", color.Packed.Bytes[0])
	}

	mask := make([]byte, len(color.Packed.Bytes))
	OverprintMask(mask, &color, ChannelPresent, ChannelPresent)
	if mask[0] != 0xFF {
		t.Fatalf("overprint mask[0] = %#x, want 0xff", mask[0])
	}
}

// TestMarkAbsentPresentRetainsDormantBits preserves the documented
// behaviour: MarkAbsent leaves Override/Maxblit bits set, and MarkPresent
// trusts them rather than recomputing.
func TestMarkAbsentPresentRetainsDormantBits(t *testing.T) {
	m := newCMYKMap(t)
	var color Color
	Init(&color, m)

	color.State[0] = ChannelPresent | ChannelOverride | ChannelMaxblit
	color.NChannels, color.NColors, color.NOverrides, color.NMaxblits = 1, 1, 1, 1

	MarkAbsent(&color, 0)
	if color.State[0]&ChannelPresent != 0 {
		t.Fatalf("expected channel 0 not present after MarkAbsent")
	}
	if color.State[0]&ChannelOverride == 0 || color.State[0]&ChannelMaxblit == 0 {
		t.Fatalf("expected dormant Override/Maxblit bits retained, got %v", color.State[0])
	}
	if color.NChannels != 0 || color.NColors != 0 || color.NOverrides != 0 || color.NMaxblits != 0 {
		t.Fatalf("counters not decremented correctly: %+v", color)
	}

	MarkPresent(&color, 0)
	if color.State[0]&ChannelPresent == 0 {
		t.Fatalf("expected channel 0 present after MarkPresent")
	}
	if color.NChannels != 1 || color.NColors != 1 || color.NOverrides != 1 || color.NMaxblits != 1 {
		t.Fatalf("counters not restored from dormant bits: %+v", color)
	}
}

// TestNChannelsInvariant checks c.nchannels = popcount(c.state & present).
func TestNChannelsInvariant(t *testing.T) {
	m := newCMYKMap(t)
	ht := fakeHalftone{max: 255}
	var color Color
	Init(&color, m)
	QuantiseSetScreen(&color, ht, 1, 0)
	Unpack(&color, cmykSource{c: 1000, m2: 2000, y: 0, k: ColorValueOne}, 0, false, false, false, false)

	popcount := 0
	for _, s := range color.State {
		if s&ChannelPresent != 0 {
			popcount++
		}
	}
	if popcount != color.NChannels {
		t.Fatalf("NChannels = %d, popcount = %d", color.NChannels, popcount)
	}
	if color.NColors > color.NChannels {
		t.Fatalf("NColors %d > NChannels %d", color.NColors, color.NChannels)
	}
}

// TestExpandIdempotent checks that re-expanding an already-expanded color
// does not change the bytes.
func TestExpandIdempotent(t *testing.T) {
	m := newCMYKMap(t)
	ht := fakeHalftone{max: 255}
	var color Color
	Init(&color, m)
	QuantiseSetScreen(&color, ht, 1, 0)
	Unpack(&color, cmykSource{c: 1000, m2: 2000, y: 3000, k: ColorValueOne}, 0, false, false, false, false)
	Quantise(&color)
	Pack(&color)
	Expand(&color)

	before := append([]byte(nil), color.Packed.Bytes...)
	Expand(&color)
	for i := range before {
		if color.Packed.Bytes[i] != before[i] {
			t.Fatalf("Expand not idempotent at byte %d: %d != %d", i, color.Packed.Bytes[i], before[i])
		}
	}
}

// TestQuantiseSetScreenSameScreenNoop checks calling QuantiseSetScreen
// twice with the same screen does not perturb htmax values already loaded.
func TestQuantiseSetScreenSameScreenNoop(t *testing.T) {
	m := newCMYKMap(t)
	ht := fakeHalftone{max: 255}
	var color Color
	Init(&color, m)
	QuantiseSetScreen(&color, ht, 1, 0)
	before := append([]int32(nil), color.Quantised.HTMax...)
	QuantiseSetScreen(&color, ht, 1, 0)
	for i := range before {
		if color.Quantised.HTMax[i] != before[i] {
			t.Fatalf("htmax[%d] changed on redundant QuantiseSetScreen", i)
		}
	}
}

func TestExpandMappingAllFallback(t *testing.T) {
	m := newCMYKMap(t)
	ht := fakeHalftone{max: 255}
	var color Color
	Init(&color, m)
	QuantiseSetScreen(&color, ht, 1, 0)
	// Only colorant 0 present directly; others fall through to /All.
	Unpack(&color, cmykSource{c: 1000}, 0, false, false, false, false)

	colorants := []int32{0, ColorantAll}
	expandedToPlane, blitToExpanded := ExpandMapping(&color, colorants, true)

	if len(expandedToPlane) == 0 {
		t.Fatalf("expected at least one expander plane")
	}
	if blitToExpanded[0] < 0 {
		t.Fatalf("channel 0 should map directly")
	}
}
