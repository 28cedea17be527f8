package bitvector

import "testing"

func TestSetClearIsSet(t *testing.T) {
	v := New(70)
	if v.IsSet(65) {
		t.Fatalf("expected bit 65 clear initially")
	}
	v.Set(65)
	if !v.IsSet(65) {
		t.Fatalf("expected bit 65 set")
	}
	v.Clear(65)
	if v.IsSet(65) {
		t.Fatalf("expected bit 65 clear after Clear")
	}
}

func TestSetAllMasksTrailingBits(t *testing.T) {
	v := New(40)
	v.SetAll()
	if v.PopCount() != 40 {
		t.Fatalf("PopCount = %d, want 40", v.PopCount())
	}
}

func TestCopyFlip(t *testing.T) {
	src := New(33)
	src.Set(0)
	src.Set(32)
	dst := New(33)

	CopyFlip(dst, src, false)
	if !dst.IsSet(0) || !dst.IsSet(32) {
		t.Fatalf("unflipped copy lost bits")
	}

	CopyFlip(dst, src, true)
	if dst.IsSet(0) || dst.IsSet(32) {
		t.Fatalf("flipped copy should clear bits 0 and 32")
	}
	if dst.PopCount() != 31 {
		t.Fatalf("flipped PopCount = %d, want 31", dst.PopCount())
	}
}

func TestIteratorOrderIsHighToLow(t *testing.T) {
	v := New(10)
	v.Set(0)
	v.Set(9)

	var seen []int
	for it := NewIterator(10); it.More(); it.Next() {
		if it.Test(v) {
			seen = append(seen, it.Bit)
		}
	}
	if len(seen) != 2 || seen[0] != 9 || seen[1] != 0 {
		t.Fatalf("unexpected iteration order: %v", seen)
	}
}

func TestIteratorEmptyVector(t *testing.T) {
	it := NewIterator(0)
	if it.More() {
		t.Fatalf("empty vector iterator should not have more bits")
	}
}

func TestPopCountAcrossElementBoundary(t *testing.T) {
	v := New(64)
	for i := 0; i < 64; i += 3 {
		v.Set(i)
	}
	want := 0
	for i := 0; i < 64; i += 3 {
		want++
	}
	if got := v.PopCount(); got != want {
		t.Fatalf("PopCount = %d, want %d", got, want)
	}
}
