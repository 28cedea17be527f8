package imexpand

import (
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/draw"
)

// buildNarrowFromImage renders a synthetic gradient at full resolution and
// box-samples it down to a 2^ebpp-entry table with x/image/draw, so the
// widening round-trip below exercises real decoded pixel data rather than
// a handwritten byte sequence.
func buildNarrowFromImage(ebpp int) []byte {
	const srcSize = 64
	src := image.NewGray(image.Rect(0, 0, srcSize, srcSize))
	for x := 0; x < srcSize; x++ {
		v := uint8(x * 255 / (srcSize - 1))
		for y := 0; y < srcSize; y++ {
			src.SetGray(x, y, color.Gray{Y: v})
		}
	}

	entries := 1 << uint(ebpp)
	dst := image.NewGray(image.Rect(0, 0, entries, 1))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	table := make([]byte, entries)
	copy(table, dst.Pix)
	return table
}

// TestWidenLUTRoundTripsBoxSampledTable checks that WidenLUT's composite
// entries reassemble to exactly the per-sample lookups a narrow table
// built from box-sampled image data would have produced back to back.
func TestWidenLUTRoundTripsBoxSampledTable(t *testing.T) {
	const ebpp = 4
	const expibpp = 8
	const entryBytes = 1

	narrowTable := buildNarrowFromImage(ebpp)
	widened := WidenLUT([][]byte{narrowTable}, ebpp, expibpp, entryBytes)

	n := expibpp / ebpp
	colors := 1 << uint(ebpp)
	widenedColors := 1 << uint(expibpp)

	if len(widened) != 1 {
		t.Fatalf("expected one output component")
	}
	if len(widened[0]) != widenedColors*entryBytes*n {
		t.Fatalf("widened table size = %d, want %d", len(widened[0]), widenedColors*entryBytes*n)
	}

	for i := 0; i < widenedColors; i++ {
		for k := 0; k < n; k++ {
			shift := uint(ebpp * (n - 1 - k))
			sample := (i >> shift) & (colors - 1)
			want := narrowTable[sample]
			got := widened[0][(i*n+k)*entryBytes]
			if got != want {
				t.Fatalf("composite %d sample %d = %#x, want %#x (from box-sampled narrow table)", i, k, got, want)
			}
		}
	}
}
