package blitcolor

// ExpandMapping builds the two mappings the image-expansion pipeline needs
// to connect an image's plane list to a blit color's channels:
//
//   - expandedToPlane[i]: which image plane (index into colorants) feeds
//     expander slot i.
//   - blitToExpanded[c]: which expander slot supplies blit channel c, or -1
//     if no mapping exists.
//
// overrides controls whether a channel's ChannelOverride bit excludes it
// from expansion: images obey override (pass true, since an overridden
// channel already has a constant value baked into the blit color and
// doesn't need per-pixel expansion), backdrops do not (pass false).
func ExpandMapping(color *Color, colorants []int32, overrides bool) (expandedToPlane []int, blitToExpanded []int) {
	m := color.Map
	n := len(m.Channels)
	blitToExpanded = make([]int, n)
	expandedToPlane = make([]int, 0, len(colorants))

	mask := ChannelPresent
	if overrides {
		mask |= ChannelOverride
	}

	usesAll := false
	nexpanded := 0

	for i := range m.Channels {
		blitToExpanded[i] = -1

		if color.State[i]&mask != ChannelPresent {
			continue
		}

		ch := &m.Channels[i]
		ci := ch.Colorant

		if ci == ColorantAll {
			usesAll = true
			continue
		}
		if ch.Type == ChannelIsType {
			continue
		}

		planeIndex := -1
		for p := len(colorants) - 1; p >= 0; p-- {
			if colorants[p] == ci {
				planeIndex = p
				break
			}
		}

		if planeIndex < 0 {
			if ci >= 0 {
				usesAll = true
			}
			continue
		}

		iexpanded := nexpanded
		for e, pi := range expandedToPlane {
			if pi == planeIndex {
				iexpanded = e
				nexpanded--
				break
			}
		}

		if iexpanded == len(expandedToPlane) {
			expandedToPlane = append(expandedToPlane, planeIndex)
		} else {
			expandedToPlane[iexpanded] = planeIndex
		}
		blitToExpanded[i] = iexpanded
		nexpanded++
	}

	if usesAll {
		planeIndex := -1
		for p := len(colorants) - 1; p >= 0; p-- {
			if colorants[p] == ColorantAll {
				planeIndex = p
				break
			}
		}

		if planeIndex >= 0 {
			for i := range m.Channels {
				if blitToExpanded[i] < 0 &&
					color.State[i]&mask == ChannelPresent &&
					m.Channels[i].Type == ChannelIsColor {
					blitToExpanded[i] = nexpanded
				}
			}
			expandedToPlane = append(expandedToPlane, planeIndex)
			nexpanded++
		}
	}

	return expandedToPlane, blitToExpanded
}

// CanUse1BitFastPath reports whether a color built from a 1-bit planar
// image expander can be blitted directly rather than going through a full
// expansion: the expander must be planar, the image's input must be 1 bit
// per sample, and its LUT must map one sample value to zero and the other
// to the channel's halftone ceiling.
func CanUse1BitFastPath(planar bool, ibpp int, lutZero, lutOne, htmax int32) bool {
	return planar && ibpp == 1 &&
		((lutZero == 0 && lutOne == htmax) || (lutOne == 0 && lutZero == htmax))
}
