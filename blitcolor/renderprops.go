package blitcolor

// ApplyRenderProperties forces each rendered channel to its mask-white,
// mask-black, knockout, or overprint-absent value according to the
// channel's RenderProperties and the object's disposition, as described by
// classify. erase selects the erase/knockout-color unpacking path, where
// mask channels depend only on selected rather than on object disposition.
//
// classify reports, for a channel whose RenderProperties is props, which
// single disposition applies to this object: render, mask, knockout, or
// ignore (overprint-absent). renderOnly objects (grouping, watermark,
// erase) skip classify and take the render disposition for every channel;
// channels with a mask property still receive their mask value.
func ApplyRenderProperties(color *Color, ht HalftoneEngine, selected, erase, renderOnly bool, classify func(props RenderProperty) Disposition) {
	m := color.Map

	for i := range m.Channels {
		if !wasRendered(m, i) {
			continue
		}
		ch := &m.Channels[i]
		if ch.Type != ChannelIsColor {
			continue
		}

		disposition := DispositionRender
		if !renderOnly {
			disposition = classify(ch.RenderProperties)
		}

		switch {
		case disposition == DispositionIgnore:
			MarkAbsent(color, i)

		case ch.RenderProperties&PropertyMaskAll != 0:
			applyMaskChannel(color, i, selected, erase, disposition)

		case disposition == DispositionKnockout && m.KnockoutColor != nil:
			applyKnockoutChannel(color, i)

		default:
			// Render: leave the channel's existing unpacked/quantised
			// value untouched.
		}
	}
}

func wasRendered(m *Colormap, i int) bool {
	return m.Rendered.IsSet(i)
}

// Disposition is the single effective treatment selected for a channel on
// a given object: at most one of these applies per (channel, object) pair.
type Disposition int

const (
	DispositionRender Disposition = iota
	DispositionMask
	DispositionKnockout
	DispositionIgnore
)

func applyMaskChannel(color *Color, idx int, selected, erase bool, disposition Disposition) {
	htmax := color.Quantised.HTMax[idx]

	black := func() {
		color.Unpacked[idx] = ColorValueZero
		color.Quantised.QCV[idx] = 0
	}
	white := func() {
		color.Unpacked[idx] = ColorValueOne
		color.Quantised.QCV[idx] = htmax
	}

	switch {
	case erase:
		if selected {
			black()
		} else {
			white()
		}
	case color.State[idx]&(ChannelPresent|ChannelKnockout) == ChannelPresent:
		if selected && disposition == DispositionMask {
			black()
		} else {
			white()
		}
		if color.State[idx]&ChannelOverride == 0 {
			color.State[idx] |= ChannelOverride
			color.NOverrides++
		}
	}
	color.Quantised.State = QuantiseUnknown
}

func applyKnockoutChannel(color *Color, idx int) {
	m := color.Map
	cv := m.KnockoutColor.Unpacked[idx]
	color.Unpacked[idx] = cv
	color.Quantised.QCV[idx] = m.KnockoutColor.Quantised.QCV[idx]
	if color.State[idx]&ChannelKnockout == 0 {
		color.State[idx] |= ChannelKnockout | ChannelOverride
		color.NOverrides++
	}
	color.Quantised.State = QuantiseUnknown
}
