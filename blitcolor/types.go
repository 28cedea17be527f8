// Package blitcolor implements the four-view render-time color pipeline:
// unpacked intensities, halftone-quantised codes, bit-packed output, and
// blit-word-expanded output, with per-channel state tracking for overprint,
// knockout, maxblit, and mask semantics.
package blitcolor

// MaxChannels bounds the number of logical output lanes a colormap can
// describe: real colorants, alpha, the object-type tag, and the synthetic
// /All channel.
const MaxChannels = 256

// Special colorant identifiers, alongside ordinary non-negative colorant
// indices assigned by the caller.
const (
	ColorantUnknown int32 = -4
	ColorantNone    int32 = -3
	ColorantAlpha   int32 = -2
	ColorantAll     int32 = -1
)

// ColorValue is a 16-bit continuous-tone intensity, 0 (COLORVALUE_ZERO) to
// ColorValueOne (COLORVALUE_ONE = fully saturated).
type ColorValue = uint16

const (
	ColorValueZero        ColorValue = 0
	ColorValueOne         ColorValue = 0xFFFF
	ColorValueHalf        ColorValue = 0x8000
	ColorValueTransparent ColorValue = 0xFFFF // transparent is represented the same as solid at the unpacked stage; presence is tracked in State, not the intensity.
)

// ChannelType distinguishes a real colorant lane from the synthetic alpha
// and object-type-tag lanes, which are unpacked but never quantised against
// a colorant's halftone screen.
type ChannelType uint8

const (
	ChannelIsColor ChannelType = iota
	ChannelIsAlpha
	ChannelIsType
)

// ChannelState is a per-channel bitset tracking whether a channel
// contributes to the current blit color, and why.
type ChannelState uint8

const (
	// ChannelMissing is the zero value: the channel is not present and
	// carries no dormant state.
	ChannelMissing ChannelState = 0
	// ChannelPresent means the channel is consumed by a blit.
	ChannelPresent ChannelState = 1 << iota
	// ChannelOverride means the channel's value is a constant across a
	// self-colored object (images, shadings) rather than varying with
	// backdrop/gradient interpolation.
	ChannelOverride
	// ChannelKnockout means the channel's value was taken from the erase
	// color because an upper knockout-group object punches through.
	ChannelKnockout
	// ChannelMaxblit means the channel is compositing with a
	// maximum-of-source-and-destination overprint rule.
	ChannelMaxblit
)

// RenderProperty is a per-channel bitset describing how objects of
// different disposition types interact with a channel.
type RenderProperty uint8

const (
	PropertyRenderAll RenderProperty = 1 << iota
	PropertyMaskAll
	PropertyKnockoutAll
	PropertyIgnore
)

// QuantiseState summarises where a quantised color's channel values sit
// relative to their halftone ceilings.
type QuantiseState uint8

const (
	QuantiseUnknown QuantiseState = 0
	QuantiseMin     QuantiseState = 1 << iota
	QuantiseMax
	QuantiseMid
)

// Channel describes one logical output lane of a colormap.
type Channel struct {
	// Colorant identifies the physical colorant (or ColorantAlpha,
	// ColorantAll, ColorantNone, ColorantUnknown for non-colorant lanes).
	Colorant int32
	Type     ChannelType

	// BitOffset and BitSize locate this channel's packed value within the
	// colormap's packed storage.
	BitOffset uint
	BitSize   uint

	// PackMul and PackAdd are applied to the quantised value before
	// packing: out = qcv*PackMul + PackAdd, so subtractive channels can be
	// stored as n or max-n without the quantiser needing to know.
	PackMul int32
	PackAdd int32

	// RenderProperties governs how ApplyRenderProperties treats
	// this channel for different object dispositions.
	RenderProperties RenderProperty

	// OverrideHTMax, if > 0, fixes this channel's halftone ceiling
	// regardless of screen selection (used by mask channels and the type
	// channel).
	OverrideHTMax int32
}
