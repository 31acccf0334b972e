package winbuf

import (
	"image"
	"slices"
	"sync"

	"github.com/gnustep/libs-back/pixfmt"
)

// Manager owns the buffers of one display connection, keyed by window.
type Manager struct {
	display Display
	shm     SharedMemoryDisplay
	alloc   SegmentAllocator
	info    *pixfmt.DrawInfo

	mu      sync.Mutex
	buffers map[Handle]*Buffer
	gen     uint64
	closed  bool
}

// NewManager creates the buffer registry for display. info is the format
// selected for the display's visual. If the display delivers events, the
// manager registers itself as their handler.
func NewManager(display Display, info *pixfmt.DrawInfo, opts ...Option) *Manager {
	o := defaultManagerOptions()
	for _, opt := range opts {
		opt(&o)
	}
	m := &Manager{
		display: display,
		info:    info,
		buffers: make(map[Handle]*Buffer),
	}
	if s, ok := display.(SharedMemoryDisplay); ok && o.sharedMemory && o.allocator != nil {
		m.shm = s
		m.alloc = o.allocator
	}
	slogger().Info("winbuf: manager created",
		"layout", info.Layout.String(), "shared_memory", m.shm != nil)
	if src, ok := display.(EventSource); ok {
		src.SetEventHandler(m)
	}
	return m
}

// Info returns the pixel format of all buffers.
func (m *Manager) Info() *pixfmt.DrawInfo { return m.info }

// SharedMemory reports whether new buffers try shared memory.
func (m *Manager) SharedMemory() bool { return m.shm != nil }

// Buffer returns the buffer for win, creating it on first use. If the
// window size changed since the last call the buffer is reallocated: its
// contents and any pending or in-flight put are discarded, its generation
// advances and the whole window is invalidated. A window that cannot
// repaint gets the new buffer presented instead.
func (m *Manager) Buffer(win Window) *Buffer {
	h := win.Handle()
	size := win.Size()

	m.mu.Lock()
	b, ok := m.buffers[h]
	if ok && b.size == size {
		m.mu.Unlock()
		return b
	}
	if !ok {
		b = &Buffer{m: m, win: win, handle: h}
		if !m.closed {
			m.buffers[h] = b
		}
	} else {
		b.releaseLocked()
		slogger().Debug("winbuf: window resized",
			"window", h, "from", b.size, "to", size)
	}
	b.win = win
	m.allocateLocked(b, size)
	m.mu.Unlock()

	if ok {
		r := image.Rectangle{Max: size}
		if inv, isInv := win.(Invalidator); !isInv || !inv.Invalidate(r) {
			m.mu.Lock()
			if !b.closed {
				b.markDirtyLocked(r)
				b.flushLocked()
			}
			m.mu.Unlock()
		}
	}
	return b
}

// Lookup returns the buffer registered for h.
func (m *Manager) Lookup(h Handle) (*Buffer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buffers[h]
	return b, ok
}

// Len returns the number of registered buffers.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buffers)
}

func (m *Manager) allocateLocked(b *Buffer, size image.Point) {
	w, h := max(size.X, 0), max(size.Y, 0)
	stride := pixfmt.RowBytes(m.info, w)
	n := stride * h

	// Generations are unique per manager so a completion for a closed
	// buffer never matches a later buffer of the same handle.
	m.gen++
	b.gen = m.gen
	b.size = image.Pt(w, h)

	var data []byte
	if m.shm != nil && n > 0 {
		if seg := m.attachSegment(n); seg != nil {
			b.seg = seg
			data = seg.Data[:n]
		}
	}
	if data == nil {
		data = make([]byte, n)
	}
	view, err := pixfmt.ViewOf(m.info, data, w, h, stride)
	if err != nil {
		// Not reachable with the stride computed above.
		panic(err)
	}
	b.view = view
	if b.alpha {
		b.addAlphaLocked()
	}
}

// attachSegment allocates and attaches a shared segment, or returns nil
// after logging why the buffer falls back to ordinary memory.
func (m *Manager) attachSegment(n int) *Segment {
	seg, err := m.alloc.Allocate(n)
	if err != nil {
		slogger().Warn("winbuf: shared memory unavailable, using synchronous puts", "err", err)
		return nil
	}
	if err := m.shm.AttachSegment(seg); err != nil {
		slogger().Warn("winbuf: display cannot attach segment, using synchronous puts", "err", err)
		if ferr := m.alloc.Free(seg); ferr != nil {
			slogger().Warn("winbuf: freeing segment", "err", ferr)
		}
		return nil
	}
	m.alloc.Attached(seg)
	return seg
}

func (m *Manager) freeSegment(seg *Segment) {
	if err := m.shm.DetachSegment(seg); err != nil {
		slogger().Warn("winbuf: detaching segment", "id", seg.ID, "err", err)
	}
	if err := m.alloc.Free(seg); err != nil {
		slogger().Warn("winbuf: freeing segment", "id", seg.ID, "err", err)
	}
}

// Close releases the buffer of win, if any.
func (m *Manager) Close(win Window) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.buffers[win.Handle()]; ok {
		m.closeLocked(b)
	}
}

func (m *Manager) closeLocked(b *Buffer) {
	if b.closed {
		return
	}
	b.releaseLocked()
	b.closed = true
	if m.buffers[b.handle] == b {
		delete(m.buffers, b.handle)
	}
}

// CloseAll releases every buffer. The manager keeps working for windows
// registered afterwards only until it is closed itself.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.buffers {
		m.closeLocked(b)
	}
	m.closed = true
}

// Flush presents the dirty rectangle of win's buffer.
func (m *Manager) Flush(win Window) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buffers[win.Handle()]
	if !ok {
		return nil
	}
	b.flushLocked()
	return nil
}

// FlushAll presents every dirty buffer in handle order.
func (m *Manager) FlushAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	handles := make([]Handle, 0, len(m.buffers))
	for h := range m.buffers {
		handles = append(handles, h)
	}
	slices.Sort(handles)
	for _, h := range handles {
		m.buffers[h].flushLocked()
	}
}

// Complete handles the completion of an asynchronous put. Completions for
// unknown windows, older generations or buffers with no put in flight are
// ignored.
func (m *Manager) Complete(tok Token) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buffers[tok.Handle]
	switch {
	case !ok:
		slogger().Debug("winbuf: completion for unknown window", "token", tok.String())
		return
	case b.gen != tok.Generation:
		slogger().Debug("winbuf: stale completion", "token", tok.String(), "generation", b.gen)
		return
	case !b.pendingEvent:
		slogger().Debug("winbuf: unexpected completion", "token", tok.String())
		return
	}
	b.completeLocked()
}

// Expose handles a region of window h becoming visible. The window redraws
// it when it is an Invalidator that can repaint; otherwise the region is
// presented again from the buffer.
func (m *Manager) Expose(h Handle, r image.Rectangle) {
	m.mu.Lock()
	b, ok := m.buffers[h]
	var win Window
	if ok {
		win = b.win
	}
	m.mu.Unlock()
	if !ok {
		return
	}
	if inv, isInv := win.(Invalidator); isInv && inv.Invalidate(r) {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	b.markDirtyLocked(r)
	b.flushLocked()
}
