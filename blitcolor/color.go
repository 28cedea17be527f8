package blitcolor

// Color is the mutable, four-view render-time color value: unpacked
// intensities, quantised halftone codes, packed bytes/shorts, and the
// expanded (blit-word-replicated) packed form, plus per-channel state.
type Color struct {
	Map *Colormap

	// Unpacked holds a 16-bit intensity per channel (or, for the
	// object-type channel, an 8-bit label stored in the low byte).
	Unpacked []ColorValue

	Quantised QuantisedView
	Packed    PackedView

	// State is a per-channel bitset; its length equals len(Map.Channels).
	State []ChannelState

	NColors    int
	NMaxblits  int
	NOverrides int
	NChannels  int

	Alpha           ColorValue
	TypeLabel       uint8
	RenderingIntent uint8

	valid validityBits
}

// QuantisedView is the halftone-quantised representation of a color.
type QuantisedView struct {
	QCV   []int32 // per-channel quantised code, 0..HTMax[ch]
	HTMax []int32 // per-channel halftone ceiling

	Spotno int32
	Type   int32

	State QuantiseState
}

// PackedView is the bit-packed output, addressable as bytes or shorts
// depending on the owning colormap's UnitBits.
type PackedView struct {
	Bytes  []byte
	Shorts []uint16
}

// SpotNoInvalid marks a quantised view as not yet associated with any
// halftone screen.
const SpotNoInvalid int32 = -1

// Init binds color to map, clearing all views. It must be called before any
// other operation on a freshly allocated Color.
func Init(color *Color, m *Colormap) {
	n := len(m.Channels)

	color.Map = m
	color.Unpacked = make([]ColorValue, n)
	color.State = make([]ChannelState, n)
	color.Quantised = QuantisedView{
		QCV:    make([]int32, n),
		HTMax:  make([]int32, n),
		Spotno: SpotNoInvalid,
	}

	bytes := m.ExpandedBytes
	if bytes == 0 {
		bytes = (m.PackedBits + 7) >> 3
	}
	if m.UnitBits == 16 {
		color.Packed.Shorts = make([]uint16, (bytes+1)/2)
	} else {
		color.Packed.Bytes = make([]byte, bytes)
	}

	color.NColors, color.NMaxblits, color.NOverrides, color.NChannels = 0, 0, 0, 0
	color.Alpha, color.TypeLabel = 0, 0

	color.valid = validityInvalid
}

// MarkAbsent removes a present channel from the color, retaining its
// Override and Maxblit state bits so the channel can be cleanly reinstated
// by MarkPresent. This dormant-bit retention is deliberate: it lets a
// channel toggle in and out of presence (e.g. across recombine steps)
// without losing track of how it should behave once reintroduced.
func MarkAbsent(color *Color, index int) {
	m := color.Map
	state := color.State[index]
	if state&ChannelPresent == 0 {
		return
	}

	color.NChannels--

	if index == m.AlphaIndex {
		color.Alpha = ColorValueOne
		color.Unpacked[index] = ColorValueOne
	} else {
		color.NColors--

		if state&ChannelOverride != 0 {
			color.NOverrides--
		}
		if state&ChannelMaxblit != 0 {
			color.NMaxblits--
		}

		color.Quantised.State = QuantiseUnknown
		color.Unpacked[index] = ColorValueTransparent
	}

	color.State[index] = state &^ ChannelPresent
	color.invalidate(validityPacked | validityExpanded)
}

// MarkPresent reinstates a previously-absent channel, trusting whatever
// Override/Maxblit bits MarkAbsent left dormant rather than recomputing
// them from scratch.
func MarkPresent(color *Color, index int) {
	m := color.Map
	state := color.State[index]
	if state&ChannelPresent != 0 {
		return
	}

	color.NChannels++

	if index != m.AlphaIndex {
		color.NColors++

		if state&ChannelOverride != 0 {
			color.NOverrides++
		}
		if state&ChannelMaxblit != 0 {
			color.NMaxblits++
		}

		color.Quantised.State = QuantiseUnknown
	}

	color.State[index] = state | ChannelPresent
	color.invalidate(validityPacked | validityExpanded)
}
