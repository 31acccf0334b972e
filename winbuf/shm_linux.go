//go:build linux

package winbuf

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// SysvAllocator allocates System V shared memory segments, the kind the
// X MIT-SHM extension attaches.
type SysvAllocator struct{}

// DefaultSegmentAllocator returns the platform allocator.
func DefaultSegmentAllocator() SegmentAllocator { return SysvAllocator{} }

func (SysvAllocator) Allocate(size int) (*Segment, error) {
	id, err := unix.SysvShmGet(unix.IPC_PRIVATE, size, unix.IPC_CREAT|0o600)
	if err != nil {
		return nil, fmt.Errorf("winbuf: shmget %d bytes: %w", size, err)
	}
	data, err := unix.SysvShmAttach(id, 0, 0)
	if err != nil {
		_, _ = unix.SysvShmCtl(id, unix.IPC_RMID, nil)
		return nil, fmt.Errorf("winbuf: shmat: %w", err)
	}
	return &Segment{ID: id, Data: data}, nil
}

// Attached marks the segment for removal; it stays valid until both sides
// have detached.
func (SysvAllocator) Attached(seg *Segment) {
	if seg.removed {
		return
	}
	if _, err := unix.SysvShmCtl(seg.ID, unix.IPC_RMID, nil); err != nil {
		slogger().Warn("winbuf: cannot mark segment for removal", "id", seg.ID, "err", err)
		return
	}
	seg.removed = true
}

func (a SysvAllocator) Free(seg *Segment) error {
	if !seg.removed {
		a.Attached(seg)
	}
	if seg.Data == nil {
		return nil
	}
	err := unix.SysvShmDetach(seg.Data)
	seg.Data = nil
	if err != nil {
		return fmt.Errorf("winbuf: shmdt: %w", err)
	}
	return nil
}
