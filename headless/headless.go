// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package headless is a display that shows nothing. It records every
// present and can keep a copy of each window's contents, which makes it
// the target for tests and off-screen rendering.
//
// In shared memory mode puts stay pending until Drain delivers their
// completions, the way a display server would answer later.
package headless

import (
	"errors"
	"image"
	"image/draw"
	"sync"

	"github.com/gnustep/libs-back/pixfmt"
	"github.com/gnustep/libs-back/winbuf"
)

// ErrNotAttached is returned for puts from a segment that was never
// attached or has been detached.
var ErrNotAttached = errors.New("headless: segment not attached")

// Present is one recorded put.
type Present struct {
	Window winbuf.Handle
	Rect   image.Rectangle
	Async  bool
	Token  winbuf.Token
}

// Display is a headless display. It is safe for concurrent use.
type Display struct {
	visual       pixfmt.Visual
	sharedMemory bool
	capture      bool

	mu       sync.Mutex
	handler  winbuf.EventHandler
	presents []Present
	pending  []winbuf.Token
	attached map[int]bool
	frames   map[winbuf.Handle]*image.RGBA
	shapes   map[winbuf.Handle][]image.Rectangle
}

// Option configures a Display.
type Option func(*Display)

// WithVisual sets the visual reported to the backend. The default is a
// 32 bits per pixel TrueColor visual with blue in the lowest byte.
func WithVisual(v pixfmt.Visual) Option {
	return func(d *Display) { d.visual = v }
}

// WithSharedMemory makes puts asynchronous.
func WithSharedMemory(on bool) Option {
	return func(d *Display) { d.sharedMemory = on }
}

// WithCapture keeps a copy of each window's presented pixels.
func WithCapture(on bool) Option {
	return func(d *Display) { d.capture = on }
}

// New returns a headless display.
func New(opts ...Option) *Display {
	d := &Display{
		visual:   pixfmt.Layout32BGRA.Visual(),
		attached: make(map[int]bool),
		frames:   make(map[winbuf.Handle]*image.RGBA),
		shapes:   make(map[winbuf.Handle][]image.Rectangle),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Visual implements winbuf.Display.
func (d *Display) Visual() pixfmt.Visual { return d.visual }

// SharedMemory reports whether puts are asynchronous.
func (d *Display) SharedMemory() bool { return d.sharedMemory }

// SetEventHandler implements winbuf.EventSource.
func (d *Display) SetEventHandler(h winbuf.EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handler = h
}

// PutImage implements winbuf.Display.
func (d *Display) PutImage(h winbuf.Handle, src pixfmt.View, r image.Rectangle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.presents = append(d.presents, Present{Window: h, Rect: r})
	d.captureLocked(h, src, r)
	return nil
}

// AttachSegment implements winbuf.SharedMemoryDisplay.
func (d *Display) AttachSegment(seg *winbuf.Segment) error {
	if !d.sharedMemory {
		return winbuf.ErrNoSharedMemory
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.attached[seg.ID] = true
	return nil
}

// DetachSegment implements winbuf.SharedMemoryDisplay.
func (d *Display) DetachSegment(seg *winbuf.Segment) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.attached[seg.ID] {
		return ErrNotAttached
	}
	delete(d.attached, seg.ID)
	return nil
}

// PutSegment implements winbuf.SharedMemoryDisplay. The pixels are
// captured immediately; the completion waits for Drain.
func (d *Display) PutSegment(h winbuf.Handle, seg *winbuf.Segment, src pixfmt.View, r image.Rectangle, tok winbuf.Token) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.attached[seg.ID] {
		return ErrNotAttached
	}
	d.presents = append(d.presents, Present{Window: h, Rect: r, Async: true, Token: tok})
	d.pending = append(d.pending, tok)
	d.captureLocked(h, src, r)
	return nil
}

// SetShape implements winbuf.Shaper.
func (d *Display) SetShape(h winbuf.Handle, rects []image.Rectangle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shapes[h] = append([]image.Rectangle(nil), rects...)
	return nil
}

// Drain delivers all pending completions in order and returns how many
// were delivered. Completions queued by the handler while draining are
// delivered too.
func (d *Display) Drain() int {
	n := 0
	for {
		d.mu.Lock()
		if len(d.pending) == 0 || d.handler == nil {
			d.mu.Unlock()
			return n
		}
		tok := d.pending[0]
		d.pending = d.pending[1:]
		h := d.handler
		d.mu.Unlock()

		h.Complete(tok)
		n++
	}
}

// Expose reports r of window h as exposed to the event handler.
func (d *Display) Expose(h winbuf.Handle, r image.Rectangle) {
	d.mu.Lock()
	hd := d.handler
	d.mu.Unlock()
	if hd != nil {
		hd.Expose(h, r)
	}
}

// Pending returns the number of completions not yet delivered.
func (d *Display) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Presents returns the recorded puts and clears the record.
func (d *Display) Presents() []Present {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.presents
	d.presents = nil
	return p
}

// Frame returns a copy of the pixels last presented for h, or nil when
// capture is off or nothing was presented.
func (d *Display) Frame(h winbuf.Handle) *image.RGBA {
	d.mu.Lock()
	defer d.mu.Unlock()
	f, ok := d.frames[h]
	if !ok {
		return nil
	}
	c := image.NewRGBA(f.Rect)
	copy(c.Pix, f.Pix)
	return c
}

// Shape returns the last shape set for h.
func (d *Display) Shape(h winbuf.Handle) []image.Rectangle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]image.Rectangle(nil), d.shapes[h]...)
}

func (d *Display) captureLocked(h winbuf.Handle, src pixfmt.View, r image.Rectangle) {
	if !d.capture {
		return
	}
	f := d.frames[h]
	if f == nil || f.Rect != src.Bounds() {
		f = image.NewRGBA(src.Bounds())
		d.frames[h] = f
	}
	r = r.Intersect(src.Bounds())
	draw.Draw(f, r, src.Sub(r).ToRGBA(), image.Point{}, draw.Src)
}
