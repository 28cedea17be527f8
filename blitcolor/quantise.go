package blitcolor

import "github.com/ripcore/raster/bitvector"

// HalftoneEngine is the external collaborator supplying per-spot,
// per-type, per-colorant halftone ceilings.
type HalftoneEngine interface {
	// ClearScreen returns htmax for the given screen/type/colorant
	// combination.
	ClearScreen(spotno, httype int32, ci int32) int32
}

// QuantiseSetScreen loads each channel's htmax from ht for the given screen
// and type, skipping the reload if the screen/type pair hasn't changed
// since the last call (so calling it twice with the same screen is a
// correctness no-op, not just an optimisation: downstream views are not
// invalidated unnecessarily).
func QuantiseSetScreen(color *Color, ht HalftoneEngine, spotno, httype int32) {
	if color.Quantised.Spotno == spotno && color.Quantised.Type == httype {
		return
	}

	m := color.Map
	for it := bitvector.NewIterator(len(m.Channels)); it.More(); it.Next() {
		if !it.Test(m.Rendered) {
			continue
		}
		idx := it.Bit
		ch := &m.Channels[idx]

		switch {
		case ch.OverrideHTMax > 0:
			color.Quantised.HTMax[idx] = ch.OverrideHTMax
		case m.OverrideHTMax > 0:
			color.Quantised.HTMax[idx] = m.OverrideHTMax
		case ch.Type == ChannelIsColor:
			color.Quantised.HTMax[idx] = ht.ClearScreen(spotno, httype, ch.Colorant)
		}
	}

	color.Quantised.HTMax[m.TypeIndex] = m.TypeHTMax
	color.Quantised.HTMax[m.AlphaIndex] = int32(ColorValueOne)

	// The ceilings changed, so every view derived from them is stale.
	color.invalidate(validityQuantised | validityPacked | validityExpanded)

	color.Quantised.Spotno = spotno
	color.Quantised.Type = httype
}

// Quantise converts every present channel's unpacked intensity into a
// halftone-indexed code in [0, htmax], rounding to nearest.
func Quantise(color *Color) {
	m := color.Map
	for it := bitvector.NewIterator(len(m.Channels)); it.More(); it.Next() {
		idx := it.Bit
		if color.State[idx]&ChannelPresent == 0 {
			continue
		}
		htmax := color.Quantised.HTMax[idx]
		cv := int64(color.Unpacked[idx])
		color.Quantised.QCV[idx] = int32((cv*int64(htmax) + int64(ColorValueOne)/2) / int64(ColorValueOne))
	}
	color.Quantised.State = QuantiseUnknown
	color.invalidate(validityPacked | validityExpanded)
	color.markValid(validityQuantised)
}

// Dequantise reconstructs the unpacked view from the quantised codes,
// recovering the original intensity up to quantisation error bounded by
// 1/htmax.
func Dequantise(color *Color) {
	m := color.Map
	for it := bitvector.NewIterator(len(m.Channels)); it.More(); it.Next() {
		idx := it.Bit
		if color.State[idx]&ChannelPresent == 0 {
			continue
		}
		htmax := color.Quantised.HTMax[idx]
		if htmax <= 0 {
			continue
		}
		qcv := int64(color.Quantised.QCV[idx])
		color.Unpacked[idx] = ColorValue((qcv * int64(ColorValueOne)) / int64(htmax))
	}
	color.markValid(validityUnpacked)
}

// State returns a summary of where the quantised color channels sit
// relative to their halftone ceilings, computing and caching it on first
// use per quantised value (mirrors blit_quantise_state's lazy summary).
func State(color *Color) QuantiseState {
	if color.Quantised.State != QuantiseUnknown {
		return color.Quantised.State
	}

	m := color.Map
	var state QuantiseState
	for i := range m.Channels {
		if color.State[i]&ChannelPresent == 0 || m.Channels[i].Type != ChannelIsColor {
			continue
		}
		qcv := color.Quantised.QCV[i]
		switch {
		case qcv == 0:
			state |= QuantiseMin
		case qcv >= color.Quantised.HTMax[i]:
			state |= QuantiseMax
		default:
			state |= QuantiseMid
		}
	}
	color.Quantised.State = state
	return state
}
