package back

import (
	"context"
	"image"
	"io"

	"github.com/gnustep/libs-back/gstate"
	"github.com/gnustep/libs-back/pixfmt"
	"github.com/gnustep/libs-back/winbuf"
)

// Backend draws into window buffers and presents them on one display.
type Backend struct {
	display winbuf.Display
	info    *pixfmt.DrawInfo
	manager *winbuf.Manager
}

// sharedMemoryReporter is implemented by displays that know whether the
// server side offers shared memory at all.
type sharedMemoryReporter interface {
	SharedMemory() bool
}

// New sets up a backend on display. The pixel layout is chosen once from
// the display's visual.
func New(display winbuf.Display, opts ...Option) *Backend {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger != nil {
		SetLogger(o.logger)
	}

	v := display.Visual()
	if o.visual != nil {
		v = *o.visual
	}
	info := pixfmt.Setup(v)

	shm := o.sharedMemory
	if r, ok := display.(sharedMemoryReporter); ok && !r.SharedMemory() {
		shm = false
	}
	wopts := []winbuf.Option{winbuf.WithSharedMemory(shm)}
	if o.allocator != nil {
		wopts = append(wopts, winbuf.WithSegmentAllocator(o.allocator))
	}

	b := &Backend{
		display: display,
		info:    info,
		manager: winbuf.NewManager(display, info, wopts...),
	}
	Logger().Info("back: backend ready",
		"layout", info.Layout, "shm", b.manager.SharedMemory())
	return b
}

// Info returns the pixel format of all window buffers.
func (b *Backend) Info() *pixfmt.DrawInfo { return b.info }

// Display returns the display the backend presents on.
func (b *Backend) Display() winbuf.Display { return b.display }

// Manager returns the window buffer manager.
func (b *Backend) Manager() *winbuf.Manager { return b.manager }

// GState returns a fresh graphics state drawing into win's buffer. The
// buffer is created, or reallocated after a resize, as needed.
func (b *Backend) GState(win winbuf.Window) *gstate.GState {
	return gstate.New(b.manager.Buffer(win))
}

// FlushWindow presents what was drawn into win since the last flush.
func (b *Backend) FlushWindow(win winbuf.Window) error {
	return b.manager.Flush(win)
}

// CloseWindow releases win's buffer.
func (b *Backend) CloseWindow(win winbuf.Window) {
	b.manager.Close(win)
}

// Complete hands an asynchronous put completion to the buffer manager.
// Displays that deliver events themselves do not need it.
func (b *Backend) Complete(tok winbuf.Token) {
	b.manager.Complete(tok)
}

// Expose repaints r of the window with handle h.
func (b *Backend) Expose(h winbuf.Handle, r image.Rectangle) {
	b.manager.Expose(h, r)
}

// Close releases all buffers and closes the display if it can be closed.
func (b *Backend) Close() error {
	b.manager.CloseAll()
	if c, ok := b.display.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// eventPump is implemented by displays that deliver events from the
// server, such as x11.
type eventPump interface {
	Run(ctx context.Context) error
}

// Run delivers display events until ctx is done. Displays without an
// event stream just wait for ctx.
func (b *Backend) Run(ctx context.Context) error {
	if p, ok := b.display.(eventPump); ok {
		return p.Run(ctx)
	}
	<-ctx.Done()
	return ctx.Err()
}
