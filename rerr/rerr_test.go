package rerr

import "testing"

func TestFailReturnsFalseAndRecordsKind(t *testing.T) {
	var reg Register
	ok := reg.Fail(Interrupt)
	if ok {
		t.Fatalf("Fail must return false")
	}
	if reg.Kind() != Interrupt {
		t.Fatalf("Kind() = %v, want Interrupt", reg.Kind())
	}
}

func TestClearResetsToNone(t *testing.T) {
	var reg Register
	reg.Fail(MemoryExhaustion)
	reg.Clear()
	if reg.Kind() != None {
		t.Fatalf("Kind() = %v, want None after Clear", reg.Kind())
	}
}

func TestRecoverableKinds(t *testing.T) {
	cases := map[Kind]bool{
		None:                    false,
		MemoryExhaustion:        false,
		Interrupt:               false,
		InvariantViolation:      false,
		LUTSizeOverflow:         true,
		ExpansionBufferTooSmall: true,
	}
	for kind, want := range cases {
		if got := kind.Recoverable(); got != want {
			t.Errorf("%v.Recoverable() = %v, want %v", kind, got, want)
		}
	}
}
