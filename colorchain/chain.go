// Package colorchain declares the external device-color conversion object
// this core consumes: color management (ICC profiles, blend spaces,
// tint transforms) is out of scope here, so only the invocation contract
// is specified.
package colorchain

import "github.com/ripcore/raster/blitcolor"

// Chain converts an opaque color-chain reference (as carried on a
// display-list object's state) into device colorant intensities,
// presented as a blitcolor.ColorSource ready for Unpack.
type Chain interface {
	// InvokeSingle resolves one color reference.
	InvokeSingle(colorRef int32) (blitcolor.ColorSource, error)
	// InvokeBlock resolves many color references in one call, for
	// Gouraud corner colors and image LUT construction where batching
	// amortizes the chain's per-call overhead.
	InvokeBlock(colorRefs []int32) ([]blitcolor.ColorSource, error)
}
