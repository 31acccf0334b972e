// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package x11 presents window buffers on an X server through
// github.com/BurntSushi/xgb.
//
// Buffers in shared memory are presented with MIT-SHM puts that ask the
// server for a completion event; [Display.Run] turns those events into
// buffer completions and Expose events into repaints. Without MIT-SHM,
// or for remote servers where attaching fails, pixels travel in ordinary
// PutImage requests split to the server's request size.
package x11

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/shm"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/gnustep/libs-back/pixfmt"
	"github.com/gnustep/libs-back/winbuf"
)

// ErrUnknownWindow is returned for handles that name no window of the
// display.
var ErrUnknownWindow = errors.New("x11: unknown window")

// Display is a connection to an X server.
type Display struct {
	conn       *xgb.Conn
	screen     *xproto.ScreenInfo
	visual     pixfmt.Visual
	maxRequest int

	hasShm   bool
	hasShape bool

	mu       sync.Mutex
	handler  winbuf.EventHandler
	windows  map[winbuf.Handle]*Window
	inflight map[uint16]winbuf.Token
}

// Open connects to the display named by $DISPLAY.
func Open() (*Display, error) { return OpenDisplay("") }

// OpenDisplay connects to the named display, or $DISPLAY when name is
// empty.
func OpenDisplay(name string) (*Display, error) {
	c, err := xgb.NewConnDisplay(name)
	if err != nil {
		return nil, fmt.Errorf("x11: connecting to %q: %w", name, err)
	}
	setup := xproto.Setup(c)
	screen := setup.DefaultScreen(c)
	vis, err := visualFromSetup(setup, screen)
	if err != nil {
		c.Close()
		return nil, err
	}

	d := &Display{
		conn:       c,
		screen:     screen,
		visual:     vis,
		maxRequest: int(setup.MaximumRequestLength) * 4,
		windows:    make(map[winbuf.Handle]*Window),
		inflight:   make(map[uint16]winbuf.Token),
	}
	if err := shm.Init(c); err != nil {
		slogger().Info("x11: MIT-SHM not available", "err", err)
	} else {
		d.hasShm = true
	}
	if err := shape.Init(c); err != nil {
		slogger().Info("x11: SHAPE not available", "err", err)
	} else {
		d.hasShape = true
	}
	slogger().Info("x11: connected",
		"display", name, "depth", vis.Depth, "bpp", vis.BitsPerPixel,
		"shm", d.hasShm, "shape", d.hasShape)
	return d, nil
}

// Close closes the connection. Run returns once the connection is gone.
func (d *Display) Close() error {
	d.conn.Close()
	return nil
}

// Visual implements winbuf.Display.
func (d *Display) Visual() pixfmt.Visual { return d.visual }

// SharedMemory reports whether the server offers MIT-SHM.
func (d *Display) SharedMemory() bool { return d.hasShm }

// SetEventHandler implements winbuf.EventSource.
func (d *Display) SetEventHandler(h winbuf.EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handler = h
}

func (d *Display) window(h winbuf.Handle) (*Window, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownWindow, h)
	}
	return w, nil
}

// PutImage implements winbuf.Display.
func (d *Display) PutImage(h winbuf.Handle, src pixfmt.View, r image.Rectangle) error {
	w, err := d.window(h)
	if err != nil {
		return err
	}
	r = r.Intersect(src.Bounds())
	rowBytes := (r.Dx()*src.Info.BytesPerPixel + 3) &^ 3
	for _, band := range bands(r, rowBytes, d.maxRequest) {
		xproto.PutImage(d.conn, xproto.ImageFormatZPixmap, xproto.Drawable(w.id), w.gc,
			uint16(band.Dx()), uint16(band.Dy()), int16(band.Min.X), int16(band.Min.Y),
			0, byte(d.visual.Depth), packRows(src, band))
	}
	return nil
}

// AttachSegment implements winbuf.SharedMemoryDisplay. It fails for
// servers that cannot see the segment, such as remote ones.
func (d *Display) AttachSegment(seg *winbuf.Segment) error {
	if !d.hasShm {
		return winbuf.ErrNoSharedMemory
	}
	id, err := shm.NewSegId(d.conn)
	if err != nil {
		return fmt.Errorf("x11: allocating segment id: %w", err)
	}
	if err := shm.AttachChecked(d.conn, id, uint32(seg.ID), false).Check(); err != nil {
		return fmt.Errorf("x11: attaching segment %d: %w", seg.ID, err)
	}
	seg.Server = uint32(id)
	return nil
}

// DetachSegment implements winbuf.SharedMemoryDisplay.
func (d *Display) DetachSegment(seg *winbuf.Segment) error {
	shm.Detach(d.conn, shm.Seg(seg.Server))
	return nil
}

// PutSegment implements winbuf.SharedMemoryDisplay. The completion event
// carries the request's sequence number, which maps back to tok.
func (d *Display) PutSegment(h winbuf.Handle, seg *winbuf.Segment, src pixfmt.View, r image.Rectangle, tok winbuf.Token) error {
	w, err := d.window(h)
	if err != nil {
		return err
	}
	r = r.Intersect(src.Bounds())

	// Hold the lock across the request so the event goroutine cannot see
	// the completion before its token is recorded.
	d.mu.Lock()
	defer d.mu.Unlock()
	ck := shm.PutImage(d.conn, xproto.Drawable(w.id), w.gc,
		uint16(src.Width), uint16(src.Height),
		uint16(r.Min.X), uint16(r.Min.Y), uint16(r.Dx()), uint16(r.Dy()),
		int16(r.Min.X), int16(r.Min.Y), byte(d.visual.Depth),
		xproto.ImageFormatZPixmap, 1, shm.Seg(seg.Server), 0)
	d.inflight[ck.Sequence] = tok
	return nil
}

// SetShape implements winbuf.Shaper. Without the SHAPE extension windows
// stay rectangular.
func (d *Display) SetShape(h winbuf.Handle, rects []image.Rectangle) error {
	if !d.hasShape {
		return nil
	}
	w, err := d.window(h)
	if err != nil {
		return err
	}
	xr := make([]xproto.Rectangle, len(rects))
	for i, r := range rects {
		xr[i] = xproto.Rectangle{
			X: int16(r.Min.X), Y: int16(r.Min.Y),
			Width: uint16(r.Dx()), Height: uint16(r.Dy()),
		}
	}
	shape.Rectangles(d.conn, shape.SoSet, shape.SkBounding,
		xproto.ClipOrderingUnsorted, w.id, 0, 0, xr)
	return nil
}

// Run pumps events until ctx is done or the connection closes. Cancelling
// ctx closes the connection.
func (d *Display) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { d.conn.Close() })
	defer stop()
	for {
		ev, xerr := d.conn.WaitForEvent()
		if ev == nil && xerr == nil {
			return ctx.Err()
		}
		if xerr != nil {
			d.handleError(xerr)
			continue
		}
		d.handleEvent(ev)
	}
}

func (d *Display) handleEvent(ev xgb.Event) {
	switch ev := ev.(type) {
	case shm.CompletionEvent:
		d.complete(ev.Sequence)

	case xproto.ExposeEvent:
		r := image.Rect(int(ev.X), int(ev.Y), int(ev.X)+int(ev.Width), int(ev.Y)+int(ev.Height))
		if hd := d.eventHandler(); hd != nil {
			hd.Expose(winbuf.Handle(ev.Window), r)
		}

	case xproto.ConfigureNotifyEvent:
		if w, err := d.window(winbuf.Handle(ev.Window)); err == nil {
			w.setSize(int(ev.Width), int(ev.Height))
		}

	case xproto.DestroyNotifyEvent:
		d.mu.Lock()
		delete(d.windows, winbuf.Handle(ev.Window))
		d.mu.Unlock()
	}
}

// handleError logs a protocol error. A failed shared memory put sends no
// completion, so its buffer is released here instead.
func (d *Display) handleError(xerr xgb.Error) {
	slogger().Warn("x11: protocol error", "err", xerr)
	d.complete(xerr.SequenceId())
}

func (d *Display) complete(seq uint16) {
	d.mu.Lock()
	tok, ok := d.inflight[seq]
	delete(d.inflight, seq)
	hd := d.handler
	d.mu.Unlock()
	if ok && hd != nil {
		hd.Complete(tok)
	}
}

func (d *Display) eventHandler() winbuf.EventHandler {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.handler
}
