package bandtable

import (
	"bytes"
	"image/png"
	"testing"

	"golang.org/x/image/draw"
)

func TestDumpBandPNGEncodesPackedContent(t *testing.T) {
	band := Band{Data: []byte{0, 64, 128, 192, 255, 32, 96, 160}, Rows: 2}
	var buf bytes.Buffer
	if err := DumpBandPNG(&buf, band, 4, 1, nil); err != nil {
		t.Fatalf("DumpBandPNG: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode dump: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Fatalf("dump size = %v, want 4x2", img.Bounds())
	}
	r, _, _, _ := img.At(2, 0).RGBA()
	if got := uint8(r >> 8); got != 128 {
		t.Fatalf("pixel (2,0) = %d, want 128", got)
	}
}

func TestDumpBandPNGScalesUpWithScaler(t *testing.T) {
	band := Band{Data: []byte{0, 255}, Rows: 1}
	var buf bytes.Buffer
	if err := DumpBandPNG(&buf, band, 2, 4, draw.NearestNeighbor); err != nil {
		t.Fatalf("DumpBandPNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode dump: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
		t.Fatalf("scaled dump size = %v, want 8x4", img.Bounds())
	}
}

func TestDumpBandPNGBlankBandDumpsPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	if err := DumpBandPNG(&buf, Band{Blank: true}, 4, 1, nil); err != nil {
		t.Fatalf("DumpBandPNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode dump: %v", err)
	}
	if img.Bounds().Dx() != 1 || img.Bounds().Dy() != 1 {
		t.Fatalf("blank dump size = %v, want 1x1", img.Bounds())
	}
}
