package winbuf

import (
	"errors"
	"image"

	"github.com/gnustep/libs-back/pixfmt"
)

type put struct {
	h     Handle
	r     image.Rectangle
	async bool
	tok   Token
}

// fakeDisplay records every request made to it.
type fakeDisplay struct {
	visual    pixfmt.Visual
	puts      []put
	attached  map[int]bool
	shapes    map[Handle][][]image.Rectangle
	handler   EventHandler
	attachErr error
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{
		visual:   pixfmt.Layout32BGRA.Visual(),
		attached: map[int]bool{},
		shapes:   map[Handle][][]image.Rectangle{},
	}
}

func (d *fakeDisplay) Visual() pixfmt.Visual { return d.visual }

func (d *fakeDisplay) PutImage(h Handle, _ pixfmt.View, r image.Rectangle) error {
	d.puts = append(d.puts, put{h: h, r: r})
	return nil
}

func (d *fakeDisplay) SetEventHandler(h EventHandler) { d.handler = h }

// plainDisplay hides the shared memory and shape methods.
type plainDisplay struct{ d *fakeDisplay }

func (p plainDisplay) Visual() pixfmt.Visual { return p.d.Visual() }
func (p plainDisplay) PutImage(h Handle, v pixfmt.View, r image.Rectangle) error {
	return p.d.PutImage(h, v, r)
}

type shmDisplay struct{ *fakeDisplay }

func (d shmDisplay) AttachSegment(seg *Segment) error {
	if d.attachErr != nil {
		return d.attachErr
	}
	d.attached[seg.ID] = true
	return nil
}

func (d shmDisplay) DetachSegment(seg *Segment) error {
	if !d.attached[seg.ID] {
		return errors.New("segment not attached")
	}
	delete(d.attached, seg.ID)
	return nil
}

func (d shmDisplay) PutSegment(h Handle, _ *Segment, _ pixfmt.View, r image.Rectangle, tok Token) error {
	d.puts = append(d.puts, put{h: h, r: r, async: true, tok: tok})
	return nil
}

func (d shmDisplay) SetShape(h Handle, rects []image.Rectangle) error {
	d.shapes[h] = append(d.shapes[h], rects)
	return nil
}

type fakeWindow struct {
	h           Handle
	size        image.Point
	invalidated []image.Rectangle
}

func (w *fakeWindow) Handle() Handle    { return w.h }
func (w *fakeWindow) Size() image.Point { return w.size }

// retainedWindow also repaints from a retained model.
type retainedWindow struct{ fakeWindow }

func (w *retainedWindow) Invalidate(r image.Rectangle) bool {
	w.invalidated = append(w.invalidated, r)
	return true
}

func newShmManager() (*Manager, shmDisplay) {
	d := shmDisplay{newFakeDisplay()}
	info := pixfmt.Setup(d.Visual())
	return NewManager(d, info, WithSegmentAllocator(&HeapAllocator{})), d
}
