package gouraud

// Mode selects how a channel's DDA advances across a scanline, chosen from
// the color gradient relative to pixel spacing.
type Mode int

const (
	// ModeFlat: all three corners quantise to the same band. No stepping.
	ModeFlat Mode = iota
	// ModeFastX: the color changes by at least one band per pixel.
	ModeFastX
	// ModeSlowX: the color changes by less than one band per pixel, but Y
	// convergence still fits comfortably.
	ModeSlowX
	// ModeVerySlowX: the gradient is so shallow that bands must be stepped
	// one fractional color unit at a time.
	ModeVerySlowX
)

// ChannelDDA is the per-channel incremental state used to walk a shaded
// triangle's color one pixel or one span at a time.
type ChannelDDA struct {
	Denoms Denoms

	CBand   DDA // color step per output halftone band
	CQuant  DDA // current color, quantised to a multiple of CBand
	CError  DDA // residual error, 0 <= CError < CBand

	CQX DDA // color quantum per unit X
	CEX DDA // color error per unit X, -CBand < CEX <= 0
	CQY DDA // color quantum per unit Y
	CEY DDA // color error per unit Y, -CBand < CEY <= 0

	XPS int32 // span length (pixels) per color step
	NXS int32 // remaining pixels in the current span
	XPY int32 // X phase shift carried per Y, 0 <= XPY < XPS

	MaxBand int32
	Mode    Mode
}

// largestFactorAtLeast returns the largest divisor of n that is >= min, or n
// itself if no smaller divisor qualifies (n always divides itself).
func largestFactorAtLeast(n, min int32) int32 {
	if n <= 0 {
		return 1
	}
	if min <= 1 {
		return n
	}
	best := n
	for d := int32(1); d*d <= n; d++ {
		if n%d != 0 {
			continue
		}
		hi := n / d
		if hi >= min && hi < best {
			best = hi
		}
		if d >= min && d < best {
			best = d
		}
	}
	return best
}

// SetupChannel derives a channel's DDA from its plane equation, the
// triangle's shared geometry, and the channel's halftone ceiling. plane
// carries the channel's cross-X and cross-Y gradients (Adx, Ady), both
// expressed against geom.Adz; c0 is corner 0's color; mbands is the
// caller's minimum band-count request.
func SetupChannel(geom Geometry, plane ChannelPlane, c0 int32, htmax int32, mbands int32) ChannelDDA {
	maxband := largestFactorAtLeast(htmax, mbands)

	adz := geom.Adz
	if adz < 0 {
		adz = -adz
	}
	if adz == 0 {
		adz = 1
	}

	denoms := Denoms{Dhi: uint32(adz), Dlo: uint32(maxband)}
	// cband = max_colorvalue / (adz * maxband): the whole part goes in CI,
	// and the remainder r over adz*maxband splits into CFH = r/maxband over
	// Dhi and CFL = r%maxband over Dhi*Dlo.
	bandDen := int64(adz) * int64(maxband)
	bandRem := int64(65535) % bandDen
	cband := DDA{CI: int32(int64(65535) / bandDen), CFH: uint32(bandRem / int64(maxband)), CFL: uint32(bandRem % int64(maxband))}

	cd := ChannelDDA{
		Denoms:  denoms,
		CBand:   cband,
		MaxBand: maxband,
	}

	// Initial quantum: corner 0's color, banded.
	band0 := bandQuantise(int64(c0), int64(65536), int64(maxband))
	cd.CQuant = DDA{CI: int32(band0), CFH: 0, CFL: 0}
	// cerror = cband/2 - cquant + c0, normalised into [0, cband).
	half := DivideByTwo(cband, denoms)
	cd.CError = Subtract(Add(half, DDA{CI: c0, CFH: 0, CFL: 0}, denoms), DDA{CI: int32(band0), CFH: 0, CFL: 0}, denoms)
	for Compare(cd.CError, cband) >= 0 {
		cd.CError = Subtract(cd.CError, cband, denoms)
		cd.CQuant = AddN(cd.CQuant, 1)
	}

	bandsPerX := float64(plane.Adx) / float64(adz) / (65536.0 / float64(maxband))
	bandsPerY := float64(plane.Ady) / float64(adz) / (65536.0 / float64(maxband))

	abs := func(f float64) float64 {
		if f < 0 {
			return -f
		}
		return f
	}

	switch {
	case abs(bandsPerX) < 1.0/65536.0 && abs(bandsPerY) < 1.0/65536.0:
		cd.Mode = ModeFlat
		cd.XPS = 1 << 30
		cd.NXS = cd.XPS
	case abs(bandsPerX) >= 1.0:
		cd.Mode = ModeFastX
		cd.XPS = 1
		cd.NXS = 1
		cd.CQX = signedQuantum(bandsPerX, denoms)
	case abs(bandsPerX) > 0:
		cd.Mode = ModeSlowX
		xps := int32(1.0 / abs(bandsPerX))
		if xps < 1 {
			xps = 1
		}
		cd.XPS = xps
		cd.NXS = xps
		cd.CQX = signedQuantum(bandsPerX*float64(xps), denoms)
	default:
		cd.Mode = ModeVerySlowX
		cd.XPS = 1
		cd.NXS = 1
	}

	cd.CQY = signedQuantum(bandsPerY, denoms)
	return cd
}

// bandQuantise maps a 0..scale color value to the nearest multiple-of-band
// index below or at it.
func bandQuantise(cv, scale, maxband int64) int64 {
	if scale == 0 {
		return 0
	}
	band := (cv * maxband) / scale
	if band < 0 {
		band = 0
	}
	if band > maxband {
		band = maxband
	}
	return band
}

// signedQuantum converts a floating bands-per-unit figure into a DDA
// quantum, used only at triangle setup where float64 has ample precision;
// all per-pixel stepping afterward stays in exact integer DDA arithmetic.
func signedQuantum(bandsPerUnit float64, denoms Denoms) DDA {
	whole := int32(bandsPerUnit)
	frac := bandsPerUnit - float64(whole)
	cfh := uint32(0)
	if denoms.Dhi > 0 {
		cfh = uint32(frac * float64(denoms.Dhi))
	}
	return normalise(DDA{CI: whole, CFH: cfh, CFL: 0}, denoms)
}

// StepX advances the channel's quantised color by one span (XPS pixels),
// folding CEX into the running error.
func (cd *ChannelDDA) StepX() {
	cd.CQuant = AddN(cd.CQuant, cd.CQX.CI)
	cd.CError = Add(cd.CError, cd.CEX, cd.Denoms)
	if Compare(cd.CError, cd.CBand) >= 0 {
		cd.CError = Subtract(cd.CError, cd.CBand, cd.Denoms)
		cd.CQuant = AddN(cd.CQuant, 1)
	}
}

// StepY advances the channel's quantised color by one scanline.
func (cd *ChannelDDA) StepY() {
	cd.CQuant = AddN(cd.CQuant, cd.CQY.CI)
	cd.CError = Add(cd.CError, cd.CEY, cd.Denoms)
	if Compare(cd.CError, cd.CBand) >= 0 {
		cd.CError = Subtract(cd.CError, cd.CBand, cd.Denoms)
		cd.CQuant = AddN(cd.CQuant, 1)
	}
}
