package blitcolor

import (
	"errors"

	"github.com/ripcore/raster/bitvector"
)

// Errors returned by colormap construction.
var (
	ErrTooManyChannels  = errors.New("blitcolor: channel count exceeds MaxChannels")
	ErrNoAllAlphaOrType = errors.New("blitcolor: colormap requires all, alpha, and type channel indices")
	ErrPackOverflow     = errors.New("blitcolor: packed channel overflows storage unit")
)

// PackExpander is the small closed set of polymorphic variants the original
// method-pointer dispatch offered: generic8, generic16, and mask. A
// Colormap picks one at construction time and every color built against it
// dispatches through the same variant.
type PackExpander interface {
	// Pack writes c.Quantised into c.Packed for every present channel.
	Pack(c *Color)
	// Expand replicates c.Packed up to the colormap's expanded byte width.
	Expand(c *Color)
	// OverprintMask writes an all-ones/all-zeros bit mask into packed,
	// one channel's worth of bits at a time, for every channel where
	// c.State[i]&mask == state.
	OverprintMask(packed []byte, c *Color, mask, state ChannelState)
}

// Colormap is the immutable, per-render-phase channel layout and policy.
// Once built it is never mutated; all mutable per-object state lives in
// Color.
type Colormap struct {
	Channels []Channel

	// PackedBits is the total bit width consumed by the packed
	// representation; ExpandedBytes is the LCM of PackedBits and the
	// native blit storage word, or 0 if no feasible LCM exists within a
	// reasonable bound.
	PackedBits    uint
	ExpandedBytes uint
	UnitBits      uint // 8 for generic8 and mask colormaps, 16 for generic16

	// Rendered is the subset of channels actually produced by the raster
	// style; its population count is NRendered.
	Rendered  *bitvector.Vector
	NRendered int
	NColors   int

	AllIndex   int
	AlphaIndex int
	TypeIndex  int

	// OverrideHTMax, when nonzero, fixes every color channel's halftone
	// ceiling (used by the monochrome mask colormap).
	OverrideHTMax int32
	TypeHTMax     int32

	EraseColor    *Color
	KnockoutColor *Color

	Expander PackExpander
}

// NewColormap validates channels and builds a Colormap. allIndex,
// alphaIndex, and typeIndex identify the synthetic /All, alpha, and
// object-type-tag channels within channels; pass -1 for any that the
// raster style does not carry.
func NewColormap(channels []Channel, allIndex, alphaIndex, typeIndex int, unitBits uint, expander PackExpander) (*Colormap, error) {
	if len(channels) > MaxChannels {
		return nil, ErrTooManyChannels
	}

	m := &Colormap{
		Channels:   channels,
		UnitBits:   unitBits,
		AllIndex:   allIndex,
		AlphaIndex: alphaIndex,
		TypeIndex:  typeIndex,
		Expander:   expander,
		Rendered:   bitvector.New(len(channels)),
	}

	var maxBit uint
	for i := range channels {
		ch := &channels[i]
		if ch.BitSize == 0 {
			continue
		}
		m.Rendered.Set(i)
		m.NRendered++
		if ch.Type == ChannelIsColor {
			m.NColors++
		}
		if ch.BitSize > unitBits {
			return nil, ErrPackOverflow
		}
		end := ch.BitOffset + ch.BitSize
		if end > maxBit {
			maxBit = end
		}
	}
	m.PackedBits = maxBit
	m.ExpandedBytes = expandedBytesFor(maxBit, unitBits)

	return m, nil
}

// expandedBytesFor computes the LCM of packedBits and the native blit
// storage word (taken as 32 bits, the common blit_t width), expressed in
// bytes. If packedBits is already a multiple of the word size the result
// equals packedBits/8 exactly (no expansion needed).
func expandedBytesFor(packedBits, unitBits uint) uint {
	if packedBits == 0 {
		return 0
	}
	const wordBits = 32
	lcm := lcmUint(packedBits, wordBits)
	bytes := lcm / 8
	if bytes*8 < lcm {
		bytes++
	}
	return bytes
}

func lcmUint(a, b uint) uint {
	return a / gcdUint(a, b) * b
}

func gcdUint(a, b uint) uint {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
