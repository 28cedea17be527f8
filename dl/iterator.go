// Package dl declares the display-list iterator this core consumes but
// does not define: display-list construction and storage are PDL-facing
// concerns out of scope here.
package dl

import "github.com/ripcore/raster/patternshape"

// ObjectKind distinguishes the small set of primitives a display-list
// object can carry; the fill field's concrete shape depends on it.
type ObjectKind int

const (
	KindFill ObjectKind = iota
	KindGouraud
	KindImage
	KindPattern
)

// State is the object's rendering state: the color chain color reference,
// clip and pattern-shape context, and disposition flags a render info
// needs to apply channel render properties.
type State struct {
	ColorRef      int32 // opaque handle into the color-chain object
	ClipShape     *patternshape.Shape
	PatternShape  *patternshape.Shape
	Knockout      bool
	IsErase       bool
	Selected      bool
}

// Object is one display-list primitive: its bounding box, state, and
// fill-kind-specific payload, left opaque (an interface{}) since fill
// geometry is owned by whichever of gouraud/imexpand/patternshape
// interprets it.
type Object struct {
	BBox  patternshape.BBox
	State State
	Kind  ObjectKind
	Fill  any
}

// Iterator yields display-list objects in z-order. Implementations own
// their own traversal (band-clipped range, depth-first HDL walk, …); this
// core only ever asks for the next object.
type Iterator interface {
	// Next returns the next object in z-order, or ok=false when the
	// iterator is exhausted.
	Next() (Object, bool)
}
