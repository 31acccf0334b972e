package winbuf

import (
	"errors"
	"sync/atomic"
)

// ErrNoSharedMemory is returned by allocators on systems without SysV
// shared memory.
var ErrNoSharedMemory = errors.New("winbuf: shared memory not available")

// Segment is a block of memory shared with the display server.
type Segment struct {
	// ID is the system identifier the display attaches to.
	ID int

	// Data is the mapped memory.
	Data []byte

	// Server-side handle, owned by the display.
	Server uint32

	removed bool
}

// SegmentAllocator creates and destroys shared memory segments.
type SegmentAllocator interface {
	Allocate(size int) (*Segment, error)

	// Attached is called once the display has attached seg. The segment
	// can then be marked for removal so it disappears with its last user.
	Attached(seg *Segment)

	Free(seg *Segment) error
}

// HeapAllocator hands out ordinary Go memory as segments. It suits
// displays that live in the same process, such as the headless display.
type HeapAllocator struct {
	next atomic.Int64
}

func (a *HeapAllocator) Allocate(size int) (*Segment, error) {
	return &Segment{ID: int(a.next.Add(1)), Data: make([]byte, size)}, nil
}

func (a *HeapAllocator) Attached(*Segment) {}

func (a *HeapAllocator) Free(seg *Segment) error {
	seg.Data = nil
	return nil
}
