//go:build linux

package winbuf

import "testing"

func TestSysvAllocator(t *testing.T) {
	var a SysvAllocator
	seg, err := a.Allocate(4096)
	if err != nil {
		t.Skipf("SysV shared memory unavailable: %v", err)
	}
	if len(seg.Data) < 4096 {
		t.Fatalf("segment size = %d, want >= 4096", len(seg.Data))
	}
	seg.Data[0], seg.Data[4095] = 1, 2

	a.Attached(seg)
	a.Attached(seg)
	if err := a.Free(seg); err != nil {
		t.Fatalf("Free: %v", err)
	}
	if seg.Data != nil {
		t.Error("Free kept the mapping")
	}
	if err := a.Free(seg); err != nil {
		t.Errorf("second Free: %v", err)
	}
}
