package winbuf

import "testing"

func TestHeapAllocatorIDs(t *testing.T) {
	var a HeapAllocator
	s1, _ := a.Allocate(10)
	s2, _ := a.Allocate(10)
	if s1.ID == s2.ID {
		t.Errorf("segment IDs not unique: %d", s1.ID)
	}
	_ = a.Free(s1)
	if s1.Data != nil {
		t.Error("Free kept the data")
	}
}
