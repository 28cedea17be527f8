// Package gouraud renders Gouraud-shaded triangles by recursive bisection
// down to linearly-interpolable sub-triangles, tracking each channel's color
// across a span with a rational digital-differential-analyzer so that no
// intermediate arithmetic exceeds 32 bits.
package gouraud

// Denoms holds the two denominators shared by every DDA value derived from
// the same triangle/channel: a value's true magnitude is
// CI + CFH/Dhi + CFL/(Dhi*Dlo).
type Denoms struct {
	Dhi uint32
	Dlo uint32
}

// DDA is the three-part rational color carried through scan conversion.
// CI is signed so a value can represent a position before its reference
// origin; CFH and CFL are always held non-negative and below their
// respective denominators once normalised.
type DDA struct {
	CI  int32
	CFH uint32
	CFL uint32
}

// normalise folds any overflow in CFL into CFH, and any overflow in CFH
// into CI, restoring the invariant CFH < Dhi, CFL < Dlo.
func normalise(d DDA, denoms Denoms) DDA {
	if denoms.Dlo != 0 && d.CFL >= denoms.Dlo {
		d.CFH += d.CFL / denoms.Dlo
		d.CFL %= denoms.Dlo
	}
	if denoms.Dhi != 0 && d.CFH >= denoms.Dhi {
		d.CI += int32(d.CFH / denoms.Dhi)
		d.CFH %= denoms.Dhi
	}
	return d
}

// Add returns a+b, normalised against denoms.
func Add(a, b DDA, denoms Denoms) DDA {
	return normalise(DDA{CI: a.CI + b.CI, CFH: a.CFH + b.CFH, CFL: a.CFL + b.CFL}, denoms)
}

// Subtract returns a-b, borrowing across fractional terms so CFH and CFL
// stay within [0, denom).
func Subtract(a, b DDA, denoms Denoms) DDA {
	ci := a.CI - b.CI
	cfh := int64(a.CFH) - int64(b.CFH)
	cfl := int64(a.CFL) - int64(b.CFL)

	if cfl < 0 && denoms.Dlo != 0 {
		cfl += int64(denoms.Dlo)
		cfh--
	}
	if cfh < 0 && denoms.Dhi != 0 {
		cfh += int64(denoms.Dhi)
		ci--
	}
	return DDA{CI: ci, CFH: uint32(cfh), CFL: uint32(cfl)}
}

// AddN adds n whole units to d, leaving the fractional parts untouched.
func AddN(d DDA, n int32) DDA {
	d.CI += n
	return d
}

// MultiplyByTwo doubles d, normalising any resulting overflow.
func MultiplyByTwo(d DDA, denoms Denoms) DDA {
	return normalise(DDA{CI: d.CI * 2, CFH: d.CFH * 2, CFL: d.CFL * 2}, denoms)
}

// DivideByTwo halves d, carrying an odd whole unit into CFH and an odd CFH
// into CFL so magnitude (not just the integer part) is preserved across a
// bisection midpoint.
func DivideByTwo(d DDA, denoms Denoms) DDA {
	var borrowHi uint32
	if d.CI%2 != 0 {
		borrowHi = denoms.Dhi
	}
	ci := d.CI >> 1 // floor, so an odd negative CI borrows like a positive one

	cfh := d.CFH + borrowHi
	var borrowLo uint32
	if cfh%2 != 0 {
		borrowLo = denoms.Dlo
	}
	cfh /= 2

	cfl := (d.CFL + borrowLo) / 2

	return normalise(DDA{CI: ci, CFH: cfh, CFL: cfl}, denoms)
}

// Compare reports -1, 0, or 1 as a is less than, equal to, or greater than b.
func Compare(a, b DDA) int {
	switch {
	case a.CI != b.CI:
		if a.CI < b.CI {
			return -1
		}
		return 1
	case a.CFH != b.CFH:
		if a.CFH < b.CFH {
			return -1
		}
		return 1
	case a.CFL != b.CFL:
		if a.CFL < b.CFL {
			return -1
		}
		return 1
	}
	return 0
}
