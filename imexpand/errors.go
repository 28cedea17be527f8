package imexpand

import "errors"

// Sentinel errors for imexpand package.
var (
	// errInvalidExpander is wrapped with call-specific context by
	// NewExpander when its LUT/colorant/output-depth arguments don't
	// describe a constructible Expander.
	errInvalidExpander = errors.New("imexpand: invalid expander configuration")
)
