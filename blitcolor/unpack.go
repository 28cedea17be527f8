package blitcolor

import "github.com/ripcore/raster/bitvector"

// ColorSource is the external collaborator that stands in for the
// display-list's compacted color representation: the caller supplies an
// implementation that knows how to look up a colorant's intensity and
// overprint status. blitcolor never inspects display-list internals
// directly.
type ColorSource interface {
	// Colorant returns the intensity for colorant ci and whether that
	// colorant has an explicit value in this color (false means
	// overprinted/transparent with respect to ci).
	Colorant(ci int32) (cv ColorValue, ok bool)
	// Overprinted reports whether colorant ci was explicitly marked as
	// overprinted in the source color.
	Overprinted(ci int32) bool
	// FirstColorant returns an arbitrary colorant present in the source,
	// used to derive a solid/clear erase fallback when a channel has no
	// direct value and no /All separation. ok is false if the source has
	// no colorants at all.
	FirstColorant() (ci int32, cv ColorValue, ok bool)
}

// constColorSource represents a solid black or white tint, used when the
// caller has already determined the whole color is constant (the DL_COLOR
// "black" and "white" fast paths).
type constColorSource struct {
	cv ColorValue
}

func (c constColorSource) Colorant(int32) (ColorValue, bool)     { return c.cv, true }
func (c constColorSource) Overprinted(int32) bool                { return false }
func (c constColorSource) FirstColorant() (int32, ColorValue, bool) { return 0, c.cv, true }

// Black and White are ready-made ColorSource values for the two constant
// tints the unpacker special-cases.
var (
	Black ColorSource = constColorSource{cv: ColorValueZero}
	White ColorSource = constColorSource{cv: ColorValueOne}
)

// Unpack fills color.Unpacked and color.State from src, following the rules
// in the original unpacker: a channel is present if its colorant has a
// value in src; knockout objects pull missing channels from the colormap's
// latched KnockoutColor; the erase color (is_erase) falls back to a
// solid/clear approximation from the source's first colorant rather than
// leaving a channel overprinted.
func Unpack(color *Color, src ColorSource, typeLabel uint8, knockout, selected, isErase, isKnockout bool) {
	m := color.Map

	color.State[m.AllIndex] = ChannelMissing
	color.State[m.TypeIndex] = ChannelMissing
	color.State[m.AlphaIndex] = ChannelMissing

	var nColors, nMaxblits, nOverrides, nChannels int

	for it := bitvector.NewIterator(len(m.Channels)); it.More(); it.Next() {
		if !it.Test(m.Rendered) {
			continue
		}
		idx := it.Bit
		ch := &m.Channels[idx]

		var cv ColorValue
		state := ChannelMissing

		switch ch.Type {
		case ChannelIsColor:
			cv, state = unpackColorChannel(color, src, ch, isErase, isKnockout, knockout, idx, &nMaxblits, &nOverrides)
		case ChannelIsAlpha:
			cv, state = ColorValueOne, ChannelPresent
		case ChannelIsType:
			cv, state = ColorValue(typeLabel)<<8, ChannelPresent
		}

		color.Unpacked[idx] = cv
		color.State[idx] = state
		if state&ChannelPresent != 0 {
			nChannels++
			if ch.Type == ChannelIsColor {
				nColors++
			}
		}
	}

	color.TypeLabel = typeLabel
	color.NColors, color.NMaxblits, color.NOverrides, color.NChannels = nColors, nMaxblits, nOverrides, nChannels
	color.invalidate(validityQuantised | validityPacked | validityExpanded)
	color.markValid(validityUnpacked)
}

func unpackColorChannel(color *Color, src ColorSource, ch *Channel, isErase, isKnockout, knockout bool, idx int, nMaxblits, nOverrides *int) (ColorValue, ChannelState) {
	m := color.Map
	ci := ch.Colorant

	if cv, ok := src.Colorant(ci); ok {
		state := ChannelPresent
		if ci != ColorantAll && src.Overprinted(ci) {
			state |= ChannelMaxblit
			(*nMaxblits)++
		}
		return cv, state
	}

	if isErase {
		// No direct colorant and no /All separation: approximate the
		// erase/knockout color as solid or clear from whichever
		// colorant the source does carry.
		if _, cv, ok := src.FirstColorant(); ok {
			if cv >= ColorValueHalf {
				return ColorValueOne, ChannelPresent
			}
			return ColorValueZero, ChannelPresent
		}
		return ColorValueZero, ChannelPresent
	}

	if knockout && isKnockout && m.KnockoutColor != nil {
		cv := m.KnockoutColor.Unpacked[idx]
		state := m.KnockoutColor.State[idx] | ChannelOverride | ChannelKnockout
		if state&ChannelMaxblit != 0 {
			(*nMaxblits)++
		}
		(*nOverrides)++
		return cv, state
	}

	// Not present, not covered by /All, not knocking out: overprinted.
	return ColorValueTransparent, ChannelMissing
}
