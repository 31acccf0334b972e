package winbuf

import (
	"errors"
	"image"

	"github.com/gnustep/libs-back/pixfmt"
)

// ErrClosed is returned when using a buffer or manager after Close.
var ErrClosed = errors.New("winbuf: closed")

// State is the presentation state of a buffer.
type State int

const (
	// StateIdle: nothing to present and no put in flight.
	StateIdle State = iota

	// StateDirty: a rectangle waits to be presented.
	StateDirty

	// StateFlushing: an asynchronous put is in flight.
	StateFlushing

	// StateFlushingDirty: a put is in flight and more drawing has
	// accumulated behind it.
	StateFlushingDirty
)

var stateNames = [...]string{"idle", "dirty", "flushing", "flushing+dirty"}

// String implements fmt.Stringer.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Buffer is the pixel memory behind one window.
//
// Drawing into View is not synchronized; it must happen on the goroutine
// that owns the display connection. The presentation state is guarded by
// the manager and may be driven from the display's event goroutine.
type Buffer struct {
	m      *Manager
	win    Window
	handle Handle

	size image.Point
	gen  uint64
	view pixfmt.View
	seg  *Segment

	alpha bool

	pendingPut   bool
	pendingRect  image.Rectangle
	pendingEvent bool

	oldShape []byte
	closed   bool
}

// View returns the buffer's pixels. The view is replaced when the window
// is resized; do not keep it across Manager.Buffer calls.
func (b *Buffer) View() pixfmt.View {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	return b.view
}

// Size returns the buffer size in pixels.
func (b *Buffer) Size() image.Point {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	return b.size
}

// Bounds returns the buffer rectangle.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rectangle{Max: b.Size()}
}

// Handle returns the window handle.
func (b *Buffer) Handle() Handle { return b.handle }

// Generation returns the allocation counter. It advances on every resize
// and is never reused by another buffer of the same manager.
func (b *Buffer) Generation() uint64 {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	return b.gen
}

// Token returns the completion token for the current allocation.
func (b *Buffer) Token() Token {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	return Token{Handle: b.handle, Generation: b.gen}
}

// SharedMemory reports whether the buffer lives in a shared segment.
func (b *Buffer) SharedMemory() bool {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	return b.seg != nil
}

// HasAlpha reports whether the buffer carries an alpha channel.
func (b *Buffer) HasAlpha() bool {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	return b.view.HasAlpha()
}

// NeedsAlpha adds an alpha channel if the buffer has none. Existing pixels
// are opaque, so the channel starts at 255. It is kept across resizes.
func (b *Buffer) NeedsAlpha() {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	if b.closed || b.view.HasAlpha() {
		return
	}
	b.alpha = true
	b.addAlphaLocked()
	slogger().Debug("winbuf: alpha channel added",
		"window", b.handle, "inline", b.view.Info.InlineAlpha)
}

func (b *Buffer) addAlphaLocked() {
	v := b.view
	if v.Info.InlineAlpha {
		v = v.WithInlineAlpha()
		for y := 0; y < v.Height; y++ {
			row := v.AlphaRow(0, y)
			for x := 0; x < v.Width; x++ {
				row[x*v.AlphaStep] = 0xff
			}
		}
	} else {
		plane := make([]byte, v.Width*v.Height)
		for i := range plane {
			plane[i] = 0xff
		}
		v = v.WithAlphaPlane(plane, v.Width)
	}
	b.view = v
}

// MarkDirty adds r to the rectangle waiting to be presented.
func (b *Buffer) MarkDirty(r image.Rectangle) {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	b.markDirtyLocked(r)
}

func (b *Buffer) markDirtyLocked(r image.Rectangle) {
	r = r.Intersect(image.Rectangle{Max: b.size})
	if b.closed || r.Empty() {
		return
	}
	b.pendingRect = b.pendingRect.Union(r)
	b.pendingPut = true
}

// DirtyRect returns the rectangle waiting to be presented.
func (b *Buffer) DirtyRect() image.Rectangle {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	return b.pendingRect
}

// State returns the presentation state.
func (b *Buffer) State() State {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	return b.stateLocked()
}

func (b *Buffer) stateLocked() State {
	switch {
	case b.pendingEvent && b.pendingPut:
		return StateFlushingDirty
	case b.pendingEvent:
		return StateFlushing
	case b.pendingPut:
		return StateDirty
	}
	return StateIdle
}

// Flush presents the dirty rectangle. With shared memory the put is
// asynchronous; if one is already in flight the rectangle stays pending
// and is presented when the completion arrives.
func (b *Buffer) Flush() error {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	b.flushLocked()
	return nil
}

func (b *Buffer) flushLocked() {
	if !b.pendingPut || b.pendingEvent {
		return
	}
	r := b.pendingRect
	b.pendingPut = false
	b.pendingRect = image.Rectangle{}

	b.updateShapeLocked()

	m := b.m
	if b.seg != nil {
		tok := Token{Handle: b.handle, Generation: b.gen}
		err := m.shm.PutSegment(b.handle, b.seg, b.view, r, tok)
		if err == nil {
			b.pendingEvent = true
			return
		}
		slogger().Warn("winbuf: shared memory put failed, using plain put",
			"window", b.handle, "err", err)
	}
	if err := m.display.PutImage(b.handle, b.view, r); err != nil {
		slogger().Warn("winbuf: put failed", "window", b.handle, "rect", r, "err", err)
	}
}

// completeLocked handles the end of the asynchronous put.
func (b *Buffer) completeLocked() {
	b.pendingEvent = false
	if b.pendingPut {
		b.flushLocked()
	}
}

// Close releases the buffer and removes it from its manager. A completion
// still in flight for it is ignored when it arrives.
func (b *Buffer) Close() {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	b.m.closeLocked(b)
}

func (b *Buffer) releaseLocked() {
	if b.seg != nil {
		b.m.freeSegment(b.seg)
		b.seg = nil
	}
	b.view = pixfmt.View{Info: b.view.Info}
	b.pendingPut = false
	b.pendingEvent = false
	b.pendingRect = image.Rectangle{}
	b.oldShape = nil
}
