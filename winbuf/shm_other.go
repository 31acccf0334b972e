//go:build !linux

package winbuf

// DefaultSegmentAllocator returns nil: SysV segments are only wired up on
// Linux, so buffers use synchronous puts elsewhere.
func DefaultSegmentAllocator() SegmentAllocator { return nil }
