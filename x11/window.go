// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package x11

import (
	"fmt"
	"image"
	"sync"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/gnustep/libs-back/winbuf"
)

// Window is a top-level X window.
type Window struct {
	d  *Display
	id xproto.Window
	gc xproto.Gcontext

	mu        sync.Mutex
	size      image.Point
	onRepaint func(image.Rectangle)
	released  bool
}

// NewWindow creates and maps a window on the default screen.
func (d *Display) NewWindow(width, height int, title string) (*Window, error) {
	id, err := xproto.NewWindowId(d.conn)
	if err != nil {
		return nil, fmt.Errorf("x11: allocating window id: %w", err)
	}
	gc, err := xproto.NewGcontextId(d.conn)
	if err != nil {
		return nil, fmt.Errorf("x11: allocating gc id: %w", err)
	}
	s := d.screen
	err = xproto.CreateWindowChecked(d.conn, s.RootDepth, id, s.Root,
		0, 0, uint16(width), uint16(height), 0,
		xproto.WindowClassInputOutput, s.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{
			s.BlackPixel,
			xproto.EventMaskExposure | xproto.EventMaskStructureNotify,
		}).Check()
	if err != nil {
		return nil, fmt.Errorf("x11: creating window: %w", err)
	}
	xproto.CreateGC(d.conn, gc, xproto.Drawable(id), xproto.GcGraphicsExposures, []uint32{0})
	if title != "" {
		xproto.ChangeProperty(d.conn, xproto.PropModeReplace, id,
			xproto.AtomWmName, xproto.AtomString, 8, uint32(len(title)), []byte(title))
	}
	xproto.MapWindow(d.conn, id)

	w := &Window{d: d, id: id, gc: gc, size: image.Pt(width, height)}
	d.mu.Lock()
	d.windows[w.Handle()] = w
	d.mu.Unlock()
	return w, nil
}

// Handle implements winbuf.Window.
func (w *Window) Handle() winbuf.Handle { return winbuf.Handle(w.id) }

// Size implements winbuf.Window. It follows ConfigureNotify events.
func (w *Window) Size() image.Point {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

func (w *Window) setSize(width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.size = image.Pt(width, height)
}

// OnRepaint installs the function that redraws exposed or invalidated
// regions. Without one, exposed regions are presented from the buffer.
func (w *Window) OnRepaint(f func(image.Rectangle)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onRepaint = f
}

// Invalidate implements winbuf.Invalidator.
func (w *Window) Invalidate(r image.Rectangle) bool {
	w.mu.Lock()
	f := w.onRepaint
	w.mu.Unlock()
	if f == nil {
		return false
	}
	f(r)
	return true
}

// Close destroys the window. Close its buffer first so no put targets a
// destroyed drawable.
func (w *Window) Close() {
	w.mu.Lock()
	released := w.released
	w.released = true
	w.mu.Unlock()
	if released {
		return
	}
	w.d.mu.Lock()
	delete(w.d.windows, w.Handle())
	w.d.mu.Unlock()
	xproto.FreeGC(w.d.conn, w.gc)
	xproto.DestroyWindow(w.d.conn, w.id)
}
