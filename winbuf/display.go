package winbuf

import (
	"fmt"
	"image"

	"github.com/gnustep/libs-back/pixfmt"
)

// Handle identifies a window on its display.
type Handle uint32

// Window is the toolkit window a buffer belongs to.
type Window interface {
	Handle() Handle
	Size() image.Point
}

// Invalidator is implemented by windows that can redraw a region from the
// toolkit's retained drawing model. Invalidate reports false when the
// window cannot repaint; an exposed region is then presented from the
// buffer as it is.
type Invalidator interface {
	Invalidate(r image.Rectangle) bool
}

// Display presents buffer contents.
type Display interface {
	// Visual describes the display's native pixel format.
	Visual() pixfmt.Visual

	// PutImage copies r of src to the window synchronously.
	PutImage(h Handle, src pixfmt.View, r image.Rectangle) error
}

// SharedMemoryDisplay is implemented by displays that can read buffers
// straight from a shared memory segment.
type SharedMemoryDisplay interface {
	Display

	AttachSegment(seg *Segment) error
	DetachSegment(seg *Segment) error

	// PutSegment starts an asynchronous put of r. The display reports
	// completion by passing tok to its EventHandler.
	PutSegment(h Handle, seg *Segment, src pixfmt.View, r image.Rectangle, tok Token) error
}

// Shaper is implemented by displays that can restrict a window's shape.
// rects lists the opaque parts of the window.
type Shaper interface {
	SetShape(h Handle, rects []image.Rectangle) error
}

// EventHandler receives asynchronous display events. Manager implements it.
type EventHandler interface {
	Complete(tok Token)
	Expose(h Handle, r image.Rectangle)
}

// EventSource is implemented by displays that deliver events to a handler.
type EventSource interface {
	SetEventHandler(EventHandler)
}

// Token identifies one allocation of a window's buffer. It travels with
// an asynchronous put and comes back with its completion.
type Token struct {
	Handle     Handle
	Generation uint64
}

// String implements fmt.Stringer.
func (t Token) String() string {
	return fmt.Sprintf("%d@%d", t.Handle, t.Generation)
}
