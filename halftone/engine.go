// Package halftone declares the external screening engine this core
// consumes: screen selection and dot placement are out of scope here,
// only the ceiling lookup and scratch-form allocation the pipeline needs.
package halftone

// Engine supplies the halftone ceiling (the number of distinct quantised
// levels minus one) for a given spot number, object-type tag, and
// colorant, and allocates scratch forms for band-local mask rendering.
type Engine interface {
	// HTMax returns the halftone ceiling for (spotno, objType, colorant).
	HTMax(spotno, objType, colorant int32) int32
	// AllocateForm returns a zeroed scratch buffer sized for a band of
	// the given width and height, one bit per pixel.
	AllocateForm(width, height int32) []byte
}
