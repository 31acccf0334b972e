// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package headless

import (
	"image"
	"sync"

	"github.com/gnustep/libs-back/winbuf"
)

// Window is an off-screen window of a fixed, settable size.
type Window struct {
	handle winbuf.Handle

	mu        sync.Mutex
	size      image.Point
	onRepaint func(image.Rectangle)
}

// NewWindow returns a window with handle h and the given size.
func NewWindow(h winbuf.Handle, width, height int) *Window {
	return &Window{handle: h, size: image.Pt(width, height)}
}

// Handle implements winbuf.Window.
func (w *Window) Handle() winbuf.Handle { return w.handle }

// Size implements winbuf.Window.
func (w *Window) Size() image.Point {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// SetSize resizes the window. The buffer follows on its next lookup.
func (w *Window) SetSize(width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.size = image.Pt(width, height)
}

// OnRepaint installs the function that redraws an invalidated region.
// Without one, exposed regions are presented from the buffer.
func (w *Window) OnRepaint(f func(image.Rectangle)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onRepaint = f
}

// Invalidate implements winbuf.Invalidator. It reports false when no
// repaint function is installed.
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
