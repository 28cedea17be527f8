package render

import (
	"github.com/ripcore/raster/gouraud"
	"github.com/ripcore/raster/imexpand"
	"github.com/ripcore/raster/rerr"
)

// Worker is the per-band render thread's state: its own thread-local
// error register, a borrowed slice of Gouraud DDA scratch space, and a
// claimed image-expansion buffer. The register and expander are not shared
// with any other worker while a band is in progress; the DDA scratch is the
// workspace's one slice, handed to every concurrent borrower.
type Worker struct {
	Reg rerr.Register

	workspace   *gouraud.Workspace
	channelDDAs []gouraud.ChannelDDA
	releaseDDAs func()

	expander *imexpand.Expander
}

// NewWorker creates a worker bound to the given Gouraud workspace (shared
// read/write-locked scratch pool) and image expander (its own expansion
// buffer, claimed for the life of one band).
func NewWorker(workspace *gouraud.Workspace, expander *imexpand.Expander) *Worker {
	return &Worker{workspace: workspace, expander: expander}
}

// BorrowChannelDDAs acquires nchannels' worth of scratch DDA space from
// the shared Gouraud workspace for the duration of one triangle's render.
// Callers must call ReleaseChannelDDAs when done with the triangle.
func (w *Worker) BorrowChannelDDAs(nchannels int) []gouraud.ChannelDDA {
	w.channelDDAs, w.releaseDDAs = w.workspace.Borrow(nchannels)
	return w.channelDDAs
}

// ReleaseChannelDDAs gives back the scratch space borrowed by the most
// recent BorrowChannelDDAs call.
func (w *Worker) ReleaseChannelDDAs() {
	if w.releaseDDAs != nil {
		w.releaseDDAs()
		w.releaseDDAs = nil
	}
}

// Expander returns the image expander bound to this worker, if image
// content needs expanding within the current band.
func (w *Worker) Expander() *imexpand.Expander { return w.expander }

// Clear resets the worker's error register at the start of a new
// top-level operation (one display-list object, or one band).
func (w *Worker) Clear() { w.Reg.Clear() }
