package blitcolor

import "github.com/ripcore/raster/packedpixel"

// Generic8 is the PackExpander variant whose packed storage is addressed
// in byte-sized units (U=8 in the packing algorithm).
type Generic8 struct{}

func (Generic8) Pack(c *Color) {
	m := c.Map
	for i := range m.Channels {
		if c.State[i]&ChannelPresent == 0 {
			continue
		}
		ch := &m.Channels[i]
		out := uint32(int32(c.Quantised.QCV[i])*ch.PackMul + ch.PackAdd)
		packedpixel.WriteBits8(c.Packed.Bytes, ch.BitOffset, ch.BitSize, out)
	}
	c.markValid(validityPacked)
}

func (Generic8) Expand(c *Color) {
	packedpixel.ExpandBytes(c.Packed.Bytes, c.Map.PackedBits, c.Map.ExpandedBytes)
	c.markValid(validityExpanded)
}

func (Generic8) OverprintMask(packed []byte, c *Color, mask, state ChannelState) {
	m := c.Map
	for i := range packed {
		packed[i] = 0
	}
	for i := range m.Channels {
		if c.State[i]&mask != state {
			continue
		}
		ch := &m.Channels[i]
		ones := uint32(1)<<ch.BitSize - 1
		packedpixel.SetBits8(packed, ch.BitOffset, ch.BitSize, ones)
	}
	packedpixel.ExpandBytes(packed, m.PackedBits, m.ExpandedBytes)
}

// Generic16 is the PackExpander variant whose packed storage is addressed
// in 16-bit-short-sized units (U=16).
type Generic16 struct{}

func (Generic16) Pack(c *Color) {
	m := c.Map
	for i := range m.Channels {
		if c.State[i]&ChannelPresent == 0 {
			continue
		}
		ch := &m.Channels[i]
		out := uint32(int32(c.Quantised.QCV[i])*ch.PackMul + ch.PackAdd)
		packedpixel.WriteBits16(c.Packed.Shorts, ch.BitOffset, ch.BitSize, out)
	}
	c.markValid(validityPacked)

	// If there's no guarantee the packed data fills one blit word, expand
	// immediately: a pack word is the minimum granularity blitting can use.
	if m.PackedBits < 16 {
		Generic16{}.Expand(c)
	}
}

func (Generic16) Expand(c *Color) {
	packedpixel.ExpandShorts(c.Packed.Shorts, c.Map.PackedBits, (c.Map.ExpandedBytes+1)/2)
	c.markValid(validityExpanded)
}

func (Generic16) OverprintMask(packed []byte, c *Color, mask, state ChannelState) {
	shorts := make([]uint16, len(packed)/2)
	m := c.Map
	for i := range m.Channels {
		if c.State[i]&mask != state {
			continue
		}
		ch := &m.Channels[i]
		ones := uint32(1)<<ch.BitSize - 1
		packedpixel.SetBits16(shorts, ch.BitOffset, ch.BitSize, ones)
	}
	packedpixel.ExpandShorts(shorts, m.PackedBits, (m.ExpandedBytes+1)/2)

	for i, s := range shorts {
		packed[2*i] = byte(s >> 8)
		packed[2*i+1] = byte(s)
	}
}

// Mask is the fixed monochrome colormap's PackExpander: a single /All
// channel, 1-bit packed, writing 0 or all-ones directly into the blit word
// and never needing a real expansion step beyond bit replication.
type Mask struct{}

func (Mask) Pack(c *Color) {
	m := c.Map
	qcv := c.Quantised.QCV[m.AllIndex]
	var out uint32
	if qcv != 0 {
		out = 1
	}
	for i := range c.Packed.Bytes {
		if out != 0 {
			c.Packed.Bytes[i] = 0xFF
		} else {
			c.Packed.Bytes[i] = 0x00
		}
	}
	c.markValid(validityPacked)
}

func (Mask) Expand(c *Color) {
	// The mask colormap's packed representation is already all-ones or
	// all-zeros across every byte of Packed.Bytes; no further expansion is
	// needed.
	c.markValid(validityExpanded)
}

func (Mask) OverprintMask(packed []byte, c *Color, mask, state ChannelState) {
	var fill byte
	if c.State[c.Map.AllIndex]&mask == state {
		fill = 0xFF
	}
	for i := range packed {
		packed[i] = fill
	}
}

// Pack dispatches to the colormap's configured PackExpander variant.
func Pack(c *Color) { c.Map.Expander.Pack(c) }

// Expand dispatches to the colormap's configured PackExpander variant.
// Expand is idempotent on an already-expanded color: re-running the
// replication over data that already satisfies the word-multiple produces
// the same bytes.
func Expand(c *Color) { c.Map.Expander.Expand(c) }

// OverprintMask writes a packed bit mask: channels where c.State[i]&mask ==
// state get all their packed bits set to one, every other channel (and all
// padding) gets zero.
func OverprintMask(packed []byte, c *Color, mask, state ChannelState) {
	c.Map.Expander.OverprintMask(packed, c, mask, state)
}
